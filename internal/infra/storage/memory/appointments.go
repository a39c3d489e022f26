package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/PGC-SchedulingService/internal/infra/storage/appointment"
)

// AppointmentRepository in-memory реализация репозитория записей
type AppointmentRepository struct {
	store *Store
}

// NewAppointmentRepository создает репозиторий поверх общего хранилища
func NewAppointmentRepository(store *Store) *AppointmentRepository {
	return &AppointmentRepository{store: store}
}

// Create сохраняет запись; пересечение с активной записью того же типа - ErrOverlap
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	err := r.store.write(ctx, func(st *state) error {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if _, exists := st.appointments[a.ID]; exists {
			return fmt.Errorf("%w: Create - duplicate id %s", appointmentRepo.ErrExecQuery, a.ID)
		}

		if a.Status.IsActive() {
			for _, other := range st.appointments {
				if other.ServiceType == a.ServiceType && other.Status.IsActive() && other.Range().Overlaps(a.Range()) {
					return fmt.Errorf("%w: Create - %s %s", appointmentRepo.ErrOverlap, a.ServiceType, a.Range().Label())
				}
			}
		}

		now := r.store.now().In(r.store.loc)
		a.CreatedAt = now
		a.UpdatedAt = now
		st.appointments[a.ID] = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID получает запись по ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	var result *domain.Appointment
	err := r.store.read(ctx, func(st *state) error {
		a, ok := st.appointments[id]
		if !ok {
			return appointmentRepo.ErrAppointmentNotFound
		}
		result = &a
		return nil
	})
	return result, err
}

// GetByIDForUpdate получает запись внутри транзакции (мьютекс уже взят)
func (r *AppointmentRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if !inTx(ctx) {
		return nil, fmt.Errorf("%w: GetByIDForUpdate", appointmentRepo.ErrNoTransaction)
	}
	return r.GetByID(ctx, id)
}

// LockSlotDay транзакции и так сериализованы мьютексом хранилища
func (r *AppointmentRepository) LockSlotDay(ctx context.Context, _ domain.ServiceType, _ time.Time) error {
	if !inTx(ctx) {
		return fmt.Errorf("%w: LockSlotDay", appointmentRepo.ErrNoTransaction)
	}
	return nil
}

// FindOverlapping возвращает активные записи того же типа, пересекающие span
func (r *AppointmentRepository) FindOverlapping(ctx context.Context, serviceType domain.ServiceType, span domain.TimeRange) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, a := range st.appointments {
			if a.ServiceType == serviceType && a.Status.IsActive() && a.Range().Overlaps(span) {
				a := a
				result = append(result, &a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortAppointments(result)
	return result, nil
}

// List возвращает записи по фильтру (семантика как у PostgreSQL репозитория)
func (r *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var from, to string
	if filter.From != nil {
		from = filter.From.In(r.store.loc).Format(domain.DateFormat)
	}
	if filter.To != nil {
		to = filter.To.In(r.store.loc).Format(domain.DateFormat)
	}

	result := make([]*domain.Appointment, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, a := range st.appointments {
			day := a.ScheduledDate.Format(domain.DateFormat)
			if from != "" && day < from {
				continue
			}
			if to != "" && day > to {
				continue
			}
			if filter.ServiceType != nil && a.ServiceType != *filter.ServiceType {
				continue
			}
			if filter.Status != nil {
				if a.Status != *filter.Status {
					continue
				}
			} else if !filter.IncludeCancelled && !a.Status.IsActive() {
				continue
			}
			a := a
			result = append(result, &a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortAppointments(result)
	return result, nil
}

// UpdateStatus условный переход from -> to
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status, reason *string, at time.Time) (*domain.Appointment, error) {
	var result *domain.Appointment
	err := r.store.write(ctx, func(st *state) error {
		a, ok := st.appointments[id]
		if !ok || a.Status != from {
			return fmt.Errorf("%w: UpdateStatus - id=%s expected %s", appointmentRepo.ErrStatusChanged, id, from)
		}

		stamp := at
		a.Status = to
		a.UpdatedAt = at
		switch to {
		case domain.StatusConfirmed:
			a.ConfirmedAt = &stamp
		case domain.StatusInProgress:
			a.StartedAt = &stamp
		case domain.StatusCompleted:
			a.CompletedAt = &stamp
		case domain.StatusCancelled:
			a.CancelledAt = &stamp
			a.CancellationReason = reason
		}

		st.appointments[id] = a
		result = &a
		return nil
	})
	return result, err
}

// InsertHistory добавляет запись в журнал статусов
func (r *AppointmentRepository) InsertHistory(ctx context.Context, change *domain.StatusChange) (*domain.StatusChange, error) {
	err := r.store.write(ctx, func(st *state) error {
		if _, ok := st.appointments[change.AppointmentID]; !ok {
			return fmt.Errorf("%w: InsertHistory - unknown appointment %s", appointmentRepo.ErrExecQuery, change.AppointmentID)
		}
		change.ID = st.nextHistory
		st.nextHistory++
		st.history = append(st.history, *change)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

// ListHistory журнал статусов записи в порядке добавления
func (r *AppointmentRepository) ListHistory(ctx context.Context, appointmentID uuid.UUID) ([]*domain.StatusChange, error) {
	result := make([]*domain.StatusChange, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, c := range st.history {
			if c.AppointmentID == appointmentID {
				c := c
				result = append(result, &c)
			}
		}
		return nil
	})
	return result, err
}

func sortAppointments(list []*domain.Appointment) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].TimeStart.Equal(list[j].TimeStart) {
			return list[i].TimeStart.Before(list[j].TimeStart)
		}
		return list[i].ID.String() < list[j].ID.String()
	})
}
