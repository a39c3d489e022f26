package get_appointment_history

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	History(ctx context.Context, id uuid.UUID) (*models.HistoryResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
