package change_status

import (
	"fmt"
	"strings"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// ErrInternal возвращается при ошибках хранилища
var ErrInternal = fmt.Errorf("change_status: %w", domain.ErrPersistence)

// ErrAppointmentNotFound запись не найдена
var ErrAppointmentNotFound = fmt.Errorf("change_status: appointment %w", domain.ErrNotFound)

// EventFor имя события уведомления для статуса: appointment.confirmed, appointment.cancelled, ...
func EventFor(status domain.Status) string {
	return "appointment." + strings.ToLower(string(status))
}
