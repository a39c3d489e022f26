package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/calendar"
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// Options ограничения диапазона запроса
type Options struct {
	DefaultRangeDays int // длина диапазона, если endDate не указан
	MaxRangeDays     int // 0 - без ограничения
}

// UseCase генератор доступности слотов
// Результат только подсказка для UI: бронирование перепроверяет пересечения в своей транзакции
type UseCase struct {
	rules           *calendar.Rules
	appointmentRepo AppointmentRepository
	blockedRepo     BlockedDateRepository
	timeProvider    TimeProvider
	logger          Logger
	opts            Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rules *calendar.Rules,
	appointmentRepo AppointmentRepository,
	blockedRepo BlockedDateRepository,
	logger Logger,
	opts Options,
) *UseCase {
	if opts.DefaultRangeDays <= 0 {
		opts.DefaultRangeDays = domain.DefaultAvailabilityRangeDays
	}
	return &UseCase{
		rules:           rules,
		appointmentRepo: appointmentRepo,
		blockedRepo:     blockedRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		opts:            opts,
	}
}

// Execute возвращает доступность по дням диапазона [startDate, endDate]
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	cfg := uc.rules.Config()

	start := cfg.Day(req.StartDate)
	end := start.AddDate(0, 0, uc.opts.DefaultRangeDays)
	if req.EndDate != nil {
		end = cfg.Day(*req.EndDate)
	}

	if err := validateRange(start, end, uc.opts.MaxRangeDays); err != nil {
		uc.logger.Warn("GetAvailability: invalid range: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailability: service=%s, range=%s..%s",
		req.ServiceType, start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	// 1. Заблокированные дни диапазона
	blockedList, err := uc.blockedRepo.ListInRange(ctx, &start, &end)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked dates: %v", ErrInternal, err)
	}
	blocked := domain.NewBlockedDays(blockedList)

	// 2. Активные записи того же типа услуги за диапазон
	serviceType := req.ServiceType
	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		From:        &start,
		To:          &end,
		ServiceType: &serviceType,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	byDay := indexByDay(appointments)
	today := cfg.Day(uc.timeProvider.Now())
	duration, err := cfg.DurationFor(req.ServiceType)
	if err != nil {
		return nil, err
	}

	// 3. Слоты по дням
	days := make([]Day, 0, daysBetween(start, end)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, uc.buildDay(day, today, duration, blocked, byDay[day.Format(domain.DateFormat)]))
	}

	return &Response{
		StartDate:   start,
		EndDate:     end,
		ServiceType: req.ServiceType,
		Location:    req.Location,
		Days:        days,
		Calendar: CalendarInfo{
			Timezone:               cfg.Location.String(),
			StartHour:              cfg.StartHour,
			EndHour:                cfg.EndHour,
			SlotDurationMinutes:    cfg.SlotDurationMinutes,
			BufferMinutes:          cfg.BufferMinutes,
			WorkingDays:            append([]time.Weekday(nil), cfg.WorkingDays...),
			ServiceDurationMinutes: int(duration.Minutes()),
			MaxAdvanceDays:         cfg.MaxAdvanceDays,
		},
	}, nil
}
