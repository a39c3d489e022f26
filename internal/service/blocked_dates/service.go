package blocked_dates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	blockedDateRepo "github.com/m04kA/PGC-SchedulingService/internal/infra/storage/blocked_date"
	"github.com/m04kA/PGC-SchedulingService/internal/service/blocked_dates/models"
)

// Service административное управление заблокированными днями
type Service struct {
	blockedRepo     BlockedDateRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	dates           DateParser
	logger          Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	blockedRepo BlockedDateRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	dates DateParser,
	logger Logger,
) *Service {
	return &Service{
		blockedRepo:     blockedRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		dates:           dates,
		logger:          logger,
	}
}

// Add блокирует день. Существующие записи не отменяются, они возвращаются в ответе
func (s *Service) Add(ctx context.Context, req *models.AddBlockedDateRequest) (*models.AddBlockedDateResponse, error) {
	day, err := s.dates.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		s.logger.Warn("Add: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	reason := strings.TrimSpace(req.Reason)
	if len(reason) > domain.MaxBlockedDateReasonLength {
		s.logger.Warn("Add: reason too long for %s", req.Date)
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxBlockedDateReasonLength)
	}

	s.logger.Info("Add: blocking %s (%s)", day.Format(domain.DateFormat), reason)

	var (
		created  *domain.BlockedDate
		affected []*domain.Appointment
	)

	// Те же блокировки дня, что и при бронировании: запись либо успевает
	// зафиксироваться и попадает в affected, либо видит блокировку дня
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, st := range domain.AllServiceTypes {
			if err := s.appointmentRepo.LockSlotDay(txCtx, st, day); err != nil {
				return fmt.Errorf("lock %s: %w", st, err)
			}
		}

		var err error
		created, err = s.blockedRepo.Add(txCtx, &domain.BlockedDate{Day: day, Reason: reason})
		if err != nil {
			return err
		}

		affected, err = s.appointmentRepo.List(txCtx, domain.AppointmentsFilter{From: &day, To: &day})
		if err != nil {
			return fmt.Errorf("list appointments: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, blockedDateRepo.ErrAlreadyBlocked) {
			s.logger.Warn("Add: %s is already blocked", day.Format(domain.DateFormat))
			return nil, ErrAlreadyBlocked
		}
		s.logger.Error("Add: repository error for %s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	resp := &models.AddBlockedDateResponse{
		BlockedDateResponse:  models.FromDomainBlockedDate(created),
		AffectedAppointments: make([]string, 0, len(affected)),
	}
	for _, a := range affected {
		resp.AffectedAppointments = append(resp.AffectedAppointments, a.ID.String())
	}
	if len(affected) > 0 {
		s.logger.Warn("Add: %d active appointments on blocked day %s", len(affected), day.Format(domain.DateFormat))
	}

	return resp, nil
}

// Remove снимает блокировку дня
func (s *Service) Remove(ctx context.Context, date string) error {
	day, err := s.dates.ParseDate(strings.TrimSpace(date))
	if err != nil {
		s.logger.Warn("Remove: %v", err)
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.blockedRepo.Remove(ctx, day); err != nil {
		if errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("Remove: %s is not blocked", date)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("Remove: repository error for %s: %v", date, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: unblocked %s", day.Format(domain.DateFormat))
	return nil
}

// List возвращает заблокированные дни в диапазоне
func (s *Service) List(ctx context.Context, req *models.ListBlockedDatesRequest) (*models.BlockedDateListResponse, error) {
	from, err := s.parseOptional(req.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := s.parseOptional(req.EndDate)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidRange)
	}

	list, err := s.blockedRepo.ListInRange(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedDateList(list), nil
}

func (s *Service) parseOptional(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	day, err := s.dates.ParseDate(strings.TrimSpace(*value))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return &day, nil
}
