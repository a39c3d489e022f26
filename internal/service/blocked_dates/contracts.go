package blocked_dates

import (
	"context"
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// BlockedDateRepository интерфейс репозитория заблокированных дней
type BlockedDateRepository interface {
	Add(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error)
	Remove(ctx context.Context, day time.Time) error
	ListInRange(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error)
}

// AppointmentRepository нужен для предупреждения о записях на блокируемый день
type AppointmentRepository interface {
	LockSlotDay(ctx context.Context, serviceType domain.ServiceType, day time.Time) error
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// DateParser разбирает YYYY-MM-DD в часовом поясе календаря
type DateParser interface {
	ParseDate(s string) (time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
