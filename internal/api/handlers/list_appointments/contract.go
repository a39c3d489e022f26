package list_appointments

import (
	"context"
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error)
}

// DateParser разбирает YYYY-MM-DD в часовом поясе календаря
type DateParser interface {
	ParseDate(s string) (time.Time, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
