package reserve_appointment

import (
	"fmt"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// ErrInternal возвращается при ошибках хранилища
var ErrInternal = fmt.Errorf("reserve_appointment: %w", domain.ErrPersistence)

// EventScheduled событие успешного бронирования
const EventScheduled = "appointment.scheduled"

// Метки результата для метрик
const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultBlocked  = "blocked"
	resultInvalid  = "invalid"
	resultError    = "error"
)
