package reserve_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockSlotDay(ctx context.Context, serviceType domain.ServiceType, day time.Time) error
	FindOverlapping(ctx context.Context, serviceType domain.ServiceType, span domain.TimeRange) ([]*domain.Appointment, error)
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	InsertHistory(ctx context.Context, change *domain.StatusChange) (*domain.StatusChange, error)
}

// BlockedDateRepository интерфейс репозитория заблокированных дней
type BlockedDateRepository interface {
	Get(ctx context.Context, day time.Time) (*domain.BlockedDate, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier асинхронная отправка уведомлений (fire-and-forget)
type Notifier interface {
	Dispatch(event string, a *domain.Appointment)
}

// MetricsRecorder счётчики бронирований
type MetricsRecorder interface {
	ObserveReservation(serviceType, result string)
}

// IDGenerator генератор идентификаторов записей
type IDGenerator func() uuid.UUID

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
