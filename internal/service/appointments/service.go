package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	appointmentRepo "github.com/m04kA/PGC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/PGC-SchedulingService/internal/service/appointments/models"
)

// Service сервис чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	productID       string
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
// productID используется как PRODID в экспорте iCalendar
func NewService(appointmentRepo AppointmentRepository, productID string, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		productID:       productID,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(a), nil
}

// History возвращает журнал статусов записи в хронологическом порядке
func (s *Service) History(ctx context.Context, id uuid.UUID) (*models.HistoryResponse, error) {
	s.logger.Info("History: fetching history for appointment id=%s", id)

	// Пустой журнал у несуществующей записи неотличим от ошибки, поэтому проверяем запись
	if _, err := s.appointmentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("History: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("History: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	changes, err := s.appointmentRepo.ListHistory(ctx, id)
	if err != nil {
		s.logger.Error("History: failed to list history for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHistory(id, changes), nil
}

// List возвращает записи по фильтру, упорядоченные по времени начала
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d appointments", len(list))
	return models.FromDomainAppointmentList(list), nil
}
