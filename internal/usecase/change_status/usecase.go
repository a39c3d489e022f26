package change_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/PGC-SchedulingService/internal/infra/storage/appointment"
)

// UseCase переход записи по жизненному циклу статусов
// Чтение с блокировкой строки и условное обновление в одной транзакции исключают потерянные обновления
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет переход в TargetStatus
// Ошибки: ErrAppointmentNotFound (domain.ErrNotFound), domain.ErrInvalidTransition,
// domain.ErrValidation, ErrInternal
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeStatus: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ChangeStatus: appointment=%s, target=%s", req.AppointmentID, req.TargetStatus)

	var (
		result *domain.Appointment
		from   domain.Status
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Текущее состояние с блокировкой строки
		current, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return fmt.Errorf("%w: %s", ErrAppointmentNotFound, req.AppointmentID)
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}
		from = current.Status

		// 2. Таблица переходов
		if err := domain.ValidateTransition(current.Status, req.TargetStatus); err != nil {
			return err
		}

		// 3. Условное обновление со штампом времени перехода
		now := uc.timeProvider.Now()
		var reason *string
		if req.TargetStatus == domain.StatusCancelled {
			reason = req.Reason
		}

		updated, err := uc.appointmentRepo.UpdateStatus(txCtx, current.ID, current.Status, req.TargetStatus, reason, now)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusChanged) {
				return fmt.Errorf("%w: %s changed concurrently", domain.ErrInvalidTransition, current.ID)
			}
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		// 4. Журнал
		previous := current.Status
		_, err = uc.appointmentRepo.InsertHistory(txCtx, &domain.StatusChange{
			AppointmentID: current.ID,
			FromStatus:    &previous,
			ToStatus:      req.TargetStatus,
			Reason:        req.Reason,
			ActorID:       req.ActorID,
			ChangedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to write status history: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			uc.logger.Warn("ChangeStatus: %v", err)
			uc.metrics.ObserveTransition(string(req.TargetStatus), "not_found")
		case errors.Is(err, domain.ErrInvalidTransition):
			uc.logger.Warn("ChangeStatus: %v", err)
			uc.metrics.ObserveTransition(string(req.TargetStatus), "rejected")
		default:
			uc.logger.Error("ChangeStatus: %v", err)
			uc.metrics.ObserveTransition(string(req.TargetStatus), "error")
		}
		return nil, err
	}

	uc.metrics.ObserveTransition(string(req.TargetStatus), "success")
	uc.logger.Info("ChangeStatus: appointment=%s %s -> %s", result.ID, from, result.Status)

	// 5. Уведомление после commit
	uc.notifier.Dispatch(EventFor(result.Status), result)

	return result, nil
}
