package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer контакты клиента на момент бронирования
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Appointment запись на визит в журнале
type Appointment struct {
	ID            uuid.UUID
	ServiceType   ServiceType
	ScheduledDate time.Time // полночь дня в часовом поясе календаря
	TimeStart     time.Time
	TimeEnd       time.Time
	Status        Status

	Customer Customer
	Location string
	Notes    *string

	CancellationReason *string

	ConfirmedAt *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись всё ещё занимает свой интервал
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// Range полуоткрытый интервал, занятый записью
func (a *Appointment) Range() TimeRange {
	return TimeRange{Start: a.TimeStart, End: a.TimeEnd}
}

// DurationMinutes длительность записи в минутах
func (a *Appointment) DurationMinutes() int {
	return int(a.TimeEnd.Sub(a.TimeStart) / time.Minute)
}

// StatusChange запись журнала смены статусов (только добавление)
type StatusChange struct {
	ID            int64
	AppointmentID uuid.UUID
	FromStatus    *Status // nil для записи о создании
	ToStatus      Status
	Reason        *string
	ActorID       *string
	ChangedAt     time.Time
}

// AppointmentsFilter фильтр для чтения журнала записей
type AppointmentsFilter struct {
	From             *time.Time   // день включительно
	To               *time.Time   // день включительно
	ServiceType      *ServiceType // nil - все типы услуг
	Status           *Status
	IncludeCancelled bool
}
