package notifier

import (
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// Event тело webhook запроса
type Event struct {
	Event       string             `json:"event"` // appointment.scheduled, appointment.cancelled, appointment.reminder, ...
	OccurredAt  time.Time          `json:"occurredAt"`
	Appointment AppointmentPayload `json:"appointment"`
}

// AppointmentPayload снимок записи на момент события
type AppointmentPayload struct {
	ID                 string  `json:"id"`
	ServiceType        string  `json:"serviceType"`
	ScheduledDate      string  `json:"scheduledDate"`
	TimeStart          string  `json:"timeStart"`
	TimeEnd            string  `json:"timeEnd"`
	Status             string  `json:"status"`
	CustomerName       string  `json:"customerName"`
	CustomerEmail      string  `json:"customerEmail"`
	CustomerPhone      string  `json:"customerPhone"`
	Location           string  `json:"location"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// NewEvent собирает событие по записи
func NewEvent(name string, a *domain.Appointment, at time.Time) *Event {
	return &Event{
		Event:      name,
		OccurredAt: at,
		Appointment: AppointmentPayload{
			ID:                 a.ID.String(),
			ServiceType:        string(a.ServiceType),
			ScheduledDate:      a.ScheduledDate.Format(domain.DateFormat),
			TimeStart:          a.TimeStart.Format(domain.TimeFormat),
			TimeEnd:            a.TimeEnd.Format(domain.TimeFormat),
			Status:             string(a.Status),
			CustomerName:       a.Customer.Name,
			CustomerEmail:      a.Customer.Email,
			CustomerPhone:      a.Customer.Phone,
			Location:           a.Location,
			CancellationReason: a.CancellationReason,
		},
	}
}
