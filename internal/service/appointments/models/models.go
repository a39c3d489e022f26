package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	ServiceType      *string    `json:"serviceType,omitempty"`
	Status           *string    `json:"status,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр с валидацией
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		From:             r.StartDate,
		To:               r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return filter, domain.ErrInvalidRange
	}

	if r.ServiceType != nil {
		st, err := domain.ParseServiceType(*r.ServiceType)
		if err != nil {
			return filter, err
		}
		filter.ServiceType = &st
	}

	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// явный фильтр по CANCELLED подразумевает отменённые записи
		if status == domain.StatusCancelled {
			filter.IncludeCancelled = true
		}
	}

	return filter, nil
}

// Response модели

// CustomerResponse контакт клиента
type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              string           `json:"id"`
	ServiceType     string           `json:"serviceType"`
	ScheduledDate   string           `json:"scheduledDate"` // "2026-10-19"
	TimeStart       string           `json:"timeStart"`     // "09:00"
	TimeEnd         string           `json:"timeEnd"`       // "11:00"
	DurationMinutes int              `json:"durationMinutes"`
	Status          string           `json:"status"`
	NextStatuses    []string         `json:"nextStatuses"`
	Customer        CustomerResponse `json:"customer"`
	Location        string           `json:"location"`
	Notes           *string          `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`

	// ISO 8601
	ConfirmedAt *string `json:"confirmedAt,omitempty"`
	StartedAt   *string `json:"startedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// StatusChangeResponse запись журнала статусов
type StatusChangeResponse struct {
	ID         int64     `json:"id"`
	FromStatus *string   `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	Reason     *string   `json:"reason,omitempty"`
	ActorID    *string   `json:"actorId,omitempty"`
	ChangedAt  time.Time `json:"changedAt"`
}

// HistoryResponse журнал статусов записи
type HistoryResponse struct {
	AppointmentID string                 `json:"appointmentId"`
	History       []StatusChangeResponse `json:"history"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	next := a.Status.NextStatuses()
	nextStatuses := make([]string, len(next))
	for i, s := range next {
		nextStatuses[i] = string(s)
	}

	return &AppointmentResponse{
		ID:              a.ID.String(),
		ServiceType:     string(a.ServiceType),
		ScheduledDate:   a.ScheduledDate.Format(domain.DateFormat),
		TimeStart:       a.TimeStart.Format(domain.TimeFormat),
		TimeEnd:         a.TimeEnd.Format(domain.TimeFormat),
		DurationMinutes: a.DurationMinutes(),
		Status:          string(a.Status),
		NextStatuses:    nextStatuses,
		Customer: CustomerResponse{
			Name:  a.Customer.Name,
			Email: a.Customer.Email,
			Phone: a.Customer.Phone,
		},
		Location:           a.Location,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		ConfirmedAt:        formatTimestamp(a.ConfirmedAt),
		StartedAt:          formatTimestamp(a.StartedAt),
		CompletedAt:        formatTimestamp(a.CompletedAt),
		CancelledAt:        formatTimestamp(a.CancelledAt),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}
	for _, a := range list {
		if dto := FromDomainAppointment(a); dto != nil {
			resp.Appointments = append(resp.Appointments, *dto)
		}
	}
	return resp
}

// FromDomainHistory конвертирует журнал статусов в DTO
func FromDomainHistory(appointmentID uuid.UUID, changes []*domain.StatusChange) *HistoryResponse {
	resp := &HistoryResponse{
		AppointmentID: appointmentID.String(),
		History:       make([]StatusChangeResponse, 0, len(changes)),
	}
	for _, c := range changes {
		item := StatusChangeResponse{
			ID:        c.ID,
			ToStatus:  string(c.ToStatus),
			Reason:    c.Reason,
			ActorID:   c.ActorID,
			ChangedAt: c.ChangedAt,
		}
		if c.FromStatus != nil {
			from := string(*c.FromStatus)
			item.FromStatus = &from
		}
		resp.History = append(resp.History, item)
	}
	return resp
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
