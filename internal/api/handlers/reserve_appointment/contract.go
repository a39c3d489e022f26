package reserve_appointment

import (
	"context"
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	reserveAppointment "github.com/m04kA/PGC-SchedulingService/internal/usecase/reserve_appointment"
)

type ReserveAppointmentUseCase interface {
	Execute(ctx context.Context, req *reserveAppointment.Request) (*domain.Appointment, error)
}

// DateParser разбирает YYYY-MM-DD в часовом поясе календаря
type DateParser interface {
	ParseDate(s string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
