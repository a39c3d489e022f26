package reserve_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/calendar"
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/PGC-SchedulingService/internal/infra/storage/appointment"
	blockedDateRepo "github.com/m04kA/PGC-SchedulingService/internal/infra/storage/blocked_date"
)

// UseCase бронирование слота без двойной записи
//
// Проверка пересечений всегда повторяется внутри той же транзакции, что и вставка:
// доступность из get_availability может устареть к моменту бронирования.
// Конкурентные бронирования одного дня и типа услуги сериализуются advisory-блокировкой,
// EXCLUDE ограничение в БД страхует инвариант на уровне хранилища.
type UseCase struct {
	rules           *calendar.Rules
	appointmentRepo AppointmentRepository
	blockedRepo     BlockedDateRepository
	txManager       TransactionManager
	notifier        Notifier
	metrics         MetricsRecorder
	newID           IDGenerator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rules *calendar.Rules,
	appointmentRepo AppointmentRepository,
	blockedRepo BlockedDateRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		rules:           rules,
		appointmentRepo: appointmentRepo,
		blockedRepo:     blockedRepo,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		newID:           uuid.New,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute бронирует слот
// Ошибки: domain.ErrValidation (и уточнения), domain.ErrBlocked (*domain.BlockedDateError),
// domain.ErrConflict, ErrInternal
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveAppointment: validation failed: %v", err)
		uc.metrics.ObserveReservation(string(reqServiceType(req)), resultInvalid)
		return nil, err
	}

	cfg := uc.rules.Config()
	day := cfg.Day(req.ScheduledDate)

	// 1. Интервал визита: timeEnd = timeStart + длительность услуги
	start, err := cfg.ParseTimeOnDay(day, req.TimeStart)
	if err != nil {
		uc.logger.Warn("ReserveAppointment: %v", err)
		uc.metrics.ObserveReservation(string(req.ServiceType), resultInvalid)
		return nil, err
	}
	duration, err := cfg.DurationFor(req.ServiceType)
	if err != nil {
		uc.metrics.ObserveReservation(string(req.ServiceType), resultInvalid)
		return nil, err
	}
	span := domain.TimeRange{Start: start, End: start.Add(duration)}

	uc.logger.Info("ReserveAppointment: service=%s, date=%s, time=%s",
		req.ServiceType, day.Format(domain.DateFormat), span.Label())

	// 2. Сетка календаря и окно бронирования
	now := uc.timeProvider.Now()
	if err := validateSchedule(uc.rules, span, now); err != nil {
		uc.logger.Warn("ReserveAppointment: schedule validation failed: %v", err)
		uc.metrics.ObserveReservation(string(req.ServiceType), resultInvalid)
		return nil, err
	}

	var result *domain.Appointment

	// 3. Проверка и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Сериализуем бронирования дня для этого типа услуги
		// Блокировка дня администратором берет ту же блокировку
		if err := uc.appointmentRepo.LockSlotDay(txCtx, req.ServiceType, day); err != nil {
			return fmt.Errorf("%w: failed to lock day: %w", ErrInternal, err)
		}

		// 3.2. Заблокированный день, читаем уже под блокировкой
		blocked, err := uc.blockedRepo.Get(txCtx, day)
		if err != nil && !errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
			return fmt.Errorf("%w: failed to check blocked date: %w", ErrInternal, err)
		}
		if blocked != nil {
			return &domain.BlockedDateError{Day: day.Format(domain.DateFormat), Reason: blocked.Reason}
		}

		// 3.3. Повторная проверка пересечений под блокировкой
		overlapping, err := uc.appointmentRepo.FindOverlapping(txCtx, req.ServiceType, span)
		if err != nil {
			return fmt.Errorf("%w: failed to find overlapping appointments: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			return fmt.Errorf("%w: %s %s %s is occupied by %s", domain.ErrConflict,
				req.ServiceType, day.Format(domain.DateFormat), span.Label(), overlapping[0].ID)
		}

		// 3.4. Вставка
		appointment := &domain.Appointment{
			ID:            uc.newID(),
			ServiceType:   req.ServiceType,
			ScheduledDate: day,
			TimeStart:     span.Start,
			TimeEnd:       span.End,
			Status:        domain.StatusScheduled,
			Customer: domain.Customer{
				Name:  strings.TrimSpace(req.Customer.Name),
				Email: strings.TrimSpace(req.Customer.Email),
				Phone: strings.TrimSpace(req.Customer.Phone),
			},
			Location: strings.TrimSpace(req.Location),
			Notes:    req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrOverlap) {
				return fmt.Errorf("%w: %w", domain.ErrConflict, err)
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		// 3.5. Первая запись журнала статусов
		_, err = uc.appointmentRepo.InsertHistory(txCtx, &domain.StatusChange{
			AppointmentID: created.ID,
			ToStatus:      domain.StatusScheduled,
			ChangedAt:     created.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to write status history: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		uc.observeFailure(req.ServiceType, err)
		return nil, err
	}

	uc.metrics.ObserveReservation(string(req.ServiceType), resultCreated)
	uc.logger.Info("ReserveAppointment: created appointment id=%s (%s %s %s)",
		result.ID, result.ServiceType, day.Format(domain.DateFormat), span.Label())

	// 4. Уведомление после commit, его ошибки бронирование не откатывают
	uc.notifier.Dispatch(EventScheduled, result)

	return result, nil
}

func (uc *UseCase) observeFailure(serviceType domain.ServiceType, err error) {
	switch {
	case errors.Is(err, domain.ErrConflict):
		uc.logger.Warn("ReserveAppointment: conflict: %v", err)
		uc.metrics.ObserveReservation(string(serviceType), resultConflict)
	case errors.Is(err, domain.ErrBlocked):
		uc.logger.Warn("ReserveAppointment: %v", err)
		uc.metrics.ObserveReservation(string(serviceType), resultBlocked)
	default:
		uc.logger.Error("ReserveAppointment: %v", err)
		uc.metrics.ObserveReservation(string(serviceType), resultError)
	}
}

func reqServiceType(req *Request) domain.ServiceType {
	if req == nil {
		return ""
	}
	return req.ServiceType
}
