package export_appointment_ics

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentService interface {
	ExportICS(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
