package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/PGC-SchedulingService/internal/infra/storage/appointment"
)

// ExportICS формирует iCalendar (RFC 5545) с одним VEVENT для записи
func (s *Service) ExportICS(ctx context.Context, id uuid.UUID) ([]byte, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("ExportICS: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("ExportICS: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: ExportICS - repository error: %v", ErrInternal, err)
	}

	return []byte(s.buildCalendar(a).Serialize()), nil
}

func (s *Service) buildCalendar(a *domain.Appointment) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(s.productID)
	if a.Status == domain.StatusCancelled {
		cal.SetMethod(ics.MethodCancel)
	} else {
		cal.SetMethod(ics.MethodPublish)
	}

	event := cal.AddEvent(a.ID.String() + "@appointments")
	event.SetCreatedTime(a.CreatedAt)
	event.SetDtStampTime(a.UpdatedAt)
	event.SetModifiedAt(a.UpdatedAt)
	event.SetStartAt(a.TimeStart)
	event.SetEndAt(a.TimeEnd)
	event.SetSummary(a.ServiceType.Title() + " appointment")
	event.SetLocation(a.Location)
	event.SetDescription(description(a))
	event.SetStatus(eventStatus(a.Status))
	if a.Customer.Email != "" {
		event.AddAttendee(a.Customer.Email,
			ics.WithCN(a.Customer.Name),
			ics.ParticipationRoleReqParticipant,
		)
	}

	return cal
}

func description(a *domain.Appointment) string {
	lines := []string{
		fmt.Sprintf("%s visit %s", a.ServiceType.Title(), a.Range().Label()),
		"Customer: " + a.Customer.Name,
	}
	if a.Customer.Phone != "" {
		lines = append(lines, "Phone: "+a.Customer.Phone)
	}
	if a.Notes != nil && *a.Notes != "" {
		lines = append(lines, "Notes: "+*a.Notes)
	}
	return strings.Join(lines, "\n")
}

func eventStatus(status domain.Status) ics.ObjectStatus {
	switch status {
	case domain.StatusScheduled:
		return ics.ObjectStatusTentative
	case domain.StatusCancelled:
		return ics.ObjectStatusCancelled
	default:
		return ics.ObjectStatusConfirmed
	}
}
