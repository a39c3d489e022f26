package appointments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/PGC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/PGC-SchedulingService/pkg/logger"
	"github.com/m04kA/PGC-SchedulingService/pkg/ptr"
)

var testLoc = time.FixedZone("EST", -5*3600)

func newService(t *testing.T) (*Service, *memory.AppointmentRepository) {
	t.Helper()
	repo := memory.NewAppointmentRepository(memory.NewStore(testLoc))
	return NewService(repo, "-//PGC//Scheduling//EN", logger.Nop()), repo
}

func seed(t *testing.T, repo *memory.AppointmentRepository, st domain.ServiceType, d, hour int, dur time.Duration) *domain.Appointment {
	t.Helper()
	start := time.Date(2026, 10, d, hour, 0, 0, 0, testLoc)
	a, err := repo.Create(context.Background(), &domain.Appointment{
		ServiceType:   st,
		ScheduledDate: time.Date(2026, 10, d, 0, 0, 0, 0, testLoc),
		TimeStart:     start,
		TimeEnd:       start.Add(dur),
		Status:        domain.StatusScheduled,
		Customer:      domain.Customer{Name: "Jane Doe", Email: "jane@example.com", Phone: "+1-555-0100"},
		Location:      "12 Main St",
		Notes:         ptr.Ptr("Bay window"),
	})
	require.NoError(t, err)
	return a
}

func TestGetByID(t *testing.T) {
	svc, repo := newService(t)
	a := seed(t, repo, domain.ServiceMeasurement, 19, 11, 2*time.Hour)

	resp, err := svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", resp.ScheduledDate)
	assert.Equal(t, "11:00", resp.TimeStart)
	assert.Equal(t, "13:00", resp.TimeEnd)
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Equal(t, []string{"CONFIRMED", "CANCELLED"}, resp.NextStatuses)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistory(t *testing.T) {
	svc, repo := newService(t)
	a := seed(t, repo, domain.ServiceMeasurement, 19, 9, 2*time.Hour)
	from := domain.StatusScheduled
	_, err := repo.InsertHistory(context.Background(), &domain.StatusChange{AppointmentID: a.ID, ToStatus: domain.StatusScheduled, ChangedAt: a.CreatedAt})
	require.NoError(t, err)
	_, err = repo.InsertHistory(context.Background(), &domain.StatusChange{AppointmentID: a.ID, FromStatus: &from, ToStatus: domain.StatusConfirmed, ChangedAt: a.CreatedAt})
	require.NoError(t, err)

	resp, err := svc.History(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, resp.History, 2)
	assert.Nil(t, resp.History[0].FromStatus)
	assert.Equal(t, "SCHEDULED", ptr.Deref(resp.History[1].FromStatus))
	assert.Equal(t, "CONFIRMED", resp.History[1].ToStatus)

	_, err = svc.History(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList(t *testing.T) {
	svc, repo := newService(t)
	seed(t, repo, domain.ServiceInstallation, 20, 9, 4*time.Hour)
	seed(t, repo, domain.ServiceMeasurement, 19, 9, 2*time.Hour)
	cancelled := seed(t, repo, domain.ServiceMeasurement, 19, 13, 2*time.Hour)
	_, err := repo.UpdateStatus(context.Background(), cancelled.ID, domain.StatusScheduled, domain.StatusCancelled, ptr.Ptr("moved"), time.Now())
	require.NoError(t, err)

	all, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})
	require.NoError(t, err)
	require.Len(t, all.Appointments, 2)
	assert.Equal(t, "2026-10-19", all.Appointments[0].ScheduledDate)

	measurement, err := svc.List(context.Background(), &models.ListAppointmentsRequest{ServiceType: ptr.Ptr("measurement"), IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, measurement.Appointments, 2)

	onlyCancelled, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Status: ptr.Ptr("CANCELLED")})
	require.NoError(t, err)
	require.Len(t, onlyCancelled.Appointments, 1)
	assert.Equal(t, "moved", ptr.Deref(onlyCancelled.Appointments[0].CancellationReason))
	assert.Empty(t, onlyCancelled.Appointments[0].NextStatuses)

	day := time.Date(2026, 10, 20, 0, 0, 0, 0, testLoc)
	tuesday, err := svc.List(context.Background(), &models.ListAppointmentsRequest{StartDate: &day, EndDate: &day})
	require.NoError(t, err)
	require.Len(t, tuesday.Appointments, 1)
	assert.Equal(t, "INSTALLATION", tuesday.Appointments[0].ServiceType)
}

func TestList_InvalidFilter(t *testing.T) {
	svc, _ := newService(t)
	start := time.Date(2026, 10, 20, 0, 0, 0, 0, testLoc)
	end := time.Date(2026, 10, 19, 0, 0, 0, 0, testLoc)

	tests := []struct {
		name string
		req  *models.ListAppointmentsRequest
		err  error
	}{
		{"reversed range", &models.ListAppointmentsRequest{StartDate: &start, EndDate: &end}, domain.ErrInvalidRange},
		{"unknown service", &models.ListAppointmentsRequest{ServiceType: ptr.Ptr("ROOFING")}, domain.ErrInvalidServiceType},
		{"unknown status", &models.ListAppointmentsRequest{Status: ptr.Ptr("LOST")}, domain.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestExportICS(t *testing.T) {
	svc, repo := newService(t)
	a := seed(t, repo, domain.ServiceInstallation, 21, 9, 4*time.Hour)

	body, err := svc.ExportICS(context.Background(), a.ID)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.HasPrefix(text, "BEGIN:VCALENDAR"))
	assert.Contains(t, text, "PRODID:-//PGC//Scheduling//EN")
	assert.Contains(t, text, "METHOD:PUBLISH")
	assert.Contains(t, text, "UID:"+a.ID.String()+"@appointments")
	// 09:00 EST = 14:00 UTC
	assert.Contains(t, text, "DTSTART:20261021T140000Z")
	assert.Contains(t, text, "DTEND:20261021T180000Z")
	assert.Contains(t, text, "SUMMARY:Installation appointment")
	assert.Contains(t, text, "STATUS:TENTATIVE")
	assert.Contains(t, text, "jane@example.com")

	_, err = svc.ExportICS(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExportICS_Cancelled(t *testing.T) {
	svc, repo := newService(t)
	a := seed(t, repo, domain.ServiceConsultation, 21, 9, time.Hour)
	_, err := repo.UpdateStatus(context.Background(), a.ID, domain.StatusScheduled, domain.StatusCancelled, nil, time.Now())
	require.NoError(t, err)

	body, err := svc.ExportICS(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Contains(t, string(body), "METHOD:CANCEL")
	assert.Contains(t, string(body), "STATUS:CANCELLED")
}
