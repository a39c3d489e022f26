package change_status

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status, reason *string, at time.Time) (*domain.Appointment, error)
	InsertHistory(ctx context.Context, change *domain.StatusChange) (*domain.StatusChange, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier асинхронная отправка уведомлений (fire-and-forget)
type Notifier interface {
	Dispatch(event string, a *domain.Appointment)
}

// MetricsRecorder счётчики переходов
type MetricsRecorder interface {
	ObserveTransition(to, result string)
}

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
