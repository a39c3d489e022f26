package change_status

import (
	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// Request запрос на смену статуса
type Request struct {
	AppointmentID uuid.UUID
	TargetStatus  domain.Status
	Reason        *string // сохраняется как cancellation_reason при отмене и в журнале
	ActorID       *string // X-User-ID инициатора, только для журнала
}
