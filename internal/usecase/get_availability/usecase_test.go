package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PGC-SchedulingService/internal/calendar"
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/PGC-SchedulingService/pkg/logger"
	"github.com/m04kA/PGC-SchedulingService/pkg/ptr"
)

var testLoc = time.FixedZone("EST", -5*3600)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc           *UseCase
	appointments *memory.AppointmentRepository
	blocked      *memory.BlockedDateRepository
}

// today - воскресенье 18.10.2026
func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg, err := domain.NewCalendarConfig(9, 17, 120, 0, domain.DefaultWorkingDays, testLoc,
		map[domain.ServiceType]int{
			domain.ServiceConsultation: 60,
			domain.ServiceMeasurement:  120,
			domain.ServiceInstallation: 240,
		}, 90)
	require.NoError(t, err)

	store := memory.NewStore(testLoc)
	f := &fixture{
		appointments: memory.NewAppointmentRepository(store),
		blocked:      memory.NewBlockedDateRepository(store),
	}
	f.uc = NewUseCase(calendar.NewRules(cfg), f.appointments, f.blocked, logger.Nop(), Options{MaxRangeDays: 62})
	f.uc.timeProvider = fixedClock{now: time.Date(2026, 10, 18, 10, 0, 0, 0, testLoc)}
	return f
}

func (f *fixture) book(t *testing.T, st domain.ServiceType, day time.Time, hour int, d time.Duration) *domain.Appointment {
	t.Helper()
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, testLoc)
	a, err := f.appointments.Create(context.Background(), &domain.Appointment{
		ServiceType:   st,
		ScheduledDate: day,
		TimeStart:     start,
		TimeEnd:       start.Add(d),
		Status:        domain.StatusScheduled,
		Customer:      domain.Customer{Name: "Jane", Email: "jane@example.com", Phone: "555"},
		Location:      "12 Main St",
	})
	require.NoError(t, err)
	return a
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, testLoc)
}

func labels(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label
	}
	return out
}

func TestExecute_WorkingDayHasFourSlots(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)

	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: &monday, ServiceType: domain.ServiceMeasurement})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	slots := resp.Days[0].Slots
	assert.Equal(t, []string{"09:00-11:00", "11:00-13:00", "13:00-15:00", "15:00-17:00"}, labels(slots))
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Nil(t, s.Reason)
	}
}

func TestExecute_WeekendIsEmpty(t *testing.T) {
	f := newFixture(t)
	saturday := day(2026, 10, 24)
	sunday := day(2026, 10, 25)

	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: saturday, EndDate: &sunday, ServiceType: domain.ServiceConsultation})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.Empty(t, resp.Days[0].Slots)
	assert.Empty(t, resp.Days[1].Slots)
}

func TestExecute_DefaultRangeIsFourteenDays(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)

	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: monday, ServiceType: domain.ServiceMeasurement})
	require.NoError(t, err)

	assert.Len(t, resp.Days, 15)
	assert.Equal(t, "2026-11-02", resp.EndDate.Format(domain.DateFormat))
}

func TestExecute_BookedSlotIsUnavailable(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)
	f.book(t, domain.ServiceMeasurement, monday, 11, 2*time.Hour)

	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: &monday, ServiceType: domain.ServiceMeasurement})
	require.NoError(t, err)

	slot := resp.Days[0].Slots[1]
	assert.Equal(t, "11:00-13:00", slot.Label)
	assert.False(t, slot.Available)
	require.NotNil(t, slot.Reason)
	assert.Equal(t, domain.ReasonAlreadyBooked, *slot.Reason)
	assert.Equal(t, 3, countAvailable(resp.Days[0].Slots))
}

func TestExecute_OtherServiceTypeDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)
	f.book(t, domain.ServiceInstallation, monday, 9, 4*time.Hour)

	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: &monday, ServiceType: domain.ServiceMeasurement})
	require.NoError(t, err)
	assert.Equal(t, 4, countAvailable(resp.Days[0].Slots))
}

func TestExecute_LongAppointmentBlocksSeveralSlots(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)
	f.book(t, domain.ServiceInstallation, monday, 10, 4*time.Hour)

	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: &monday, ServiceType: domain.ServiceInstallation})
	require.NoError(t, err)

	// визит 4 часа: 09-13, 11-15, 13-17 задевают 10:00-14:00, 15-19 не помещается в день
	assert.Equal(t, []string{
		domain.ReasonAlreadyBooked,
		domain.ReasonAlreadyBooked,
		domain.ReasonAlreadyBooked,
		domain.ReasonOutsideHours,
	}, reasons(resp.Days[0].Slots))
	assert.Equal(t, 0, countAvailable(resp.Days[0].Slots))
}

func TestExecute_SlotCheckedAgainstServiceDuration(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)

	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: &monday, ServiceType: domain.ServiceInstallation})
	require.NoError(t, err)

	slots := resp.Days[0].Slots
	assert.Equal(t, []string{"09:00-11:00", "11:00-13:00", "13:00-15:00", "15:00-17:00"}, labels(slots))
	assert.Equal(t, []string{"", "", "", domain.ReasonOutsideHours}, reasons(slots))

	// установка 11:00-15:00 закрывает все слоты, с которых 4-часовой визит начать нельзя
	f.book(t, domain.ServiceInstallation, monday, 11, 4*time.Hour)

	resp, err = f.uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: &monday, ServiceType: domain.ServiceInstallation})
	require.NoError(t, err)
	assert.Equal(t, []string{
		domain.ReasonAlreadyBooked,
		domain.ReasonAlreadyBooked,
		domain.ReasonAlreadyBooked,
		domain.ReasonOutsideHours,
	}, reasons(resp.Days[0].Slots))

	// замер (2 часа) в это время свободен: конфликты считаются по типу услуги
	resp, err = f.uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: &monday, ServiceType: domain.ServiceMeasurement})
	require.NoError(t, err)
	assert.Equal(t, 4, countAvailable(resp.Days[0].Slots))
}

func TestExecute_ShortServiceOnLongGrid(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)
	// консультация 10:00-11:00 не пересекается с визитом 09:00-10:00
	f.book(t, domain.ServiceConsultation, monday, 10, time.Hour)

	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: &monday, ServiceType: domain.ServiceConsultation})
	require.NoError(t, err)
	assert.Equal(t, 4, countAvailable(resp.Days[0].Slots))
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)
	a := f.book(t, domain.ServiceMeasurement, monday, 9, 2*time.Hour)
	_, err := f.appointments.UpdateStatus(context.Background(), a.ID, domain.StatusScheduled, domain.StatusCancelled, nil, time.Now())
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: &monday, ServiceType: domain.ServiceMeasurement})
	require.NoError(t, err)
	assert.True(t, resp.Days[0].Slots[0].Available)
}

func TestExecute_PastDayHasPassed(t *testing.T) {
	f := newFixture(t)
	lastFriday := day(2026, 10, 16)

	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: lastFriday, EndDate: &lastFriday, ServiceType: domain.ServiceMeasurement})
	require.NoError(t, err)

	slots := resp.Days[0].Slots
	require.Len(t, slots, 4)
	for _, s := range slots {
		assert.False(t, s.Available)
		require.NotNil(t, s.Reason)
		assert.Equal(t, domain.ReasonDateHasPassed, *s.Reason)
	}
}

func TestExecute_BlockedDate(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)
	_, err := f.blocked.Add(context.Background(), &domain.BlockedDate{Day: monday, Reason: "Inventory count"})
	require.NoError(t, err)

	tuesday := day(2026, 10, 20)
	resp, err := f.uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: &tuesday, ServiceType: domain.ServiceMeasurement})
	require.NoError(t, err)

	assert.Empty(t, resp.Days[0].Slots)
	require.NotNil(t, resp.Days[0].BlockedReason)
	assert.Equal(t, "Inventory count", *resp.Days[0].BlockedReason)
	assert.Len(t, resp.Days[1].Slots, 4)
	assert.Nil(t, resp.Days[1].BlockedReason)
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)
	friday := day(2026, 10, 23)
	f.book(t, domain.ServiceMeasurement, day(2026, 10, 21), 13, 2*time.Hour)

	req := &Request{StartDate: monday, EndDate: &friday, ServiceType: domain.ServiceMeasurement}
	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_CalendarEcho(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)

	resp, err := f.uc.Execute(context.Background(), &Request{
		StartDate:   monday,
		EndDate:     &monday,
		ServiceType: domain.ServiceInstallation,
		Location:    ptr.Ptr("12 Main St"),
	})
	require.NoError(t, err)

	assert.Equal(t, 9, resp.Calendar.StartHour)
	assert.Equal(t, 17, resp.Calendar.EndHour)
	assert.Equal(t, 240, resp.Calendar.ServiceDurationMinutes)
	assert.Equal(t, domain.DefaultWorkingDays, resp.Calendar.WorkingDays)
	assert.Equal(t, "12 Main St", *resp.Location)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)
	monday := day(2026, 10, 19)
	sunday := day(2026, 10, 18)
	farAway := day(2027, 3, 1)

	tests := []struct {
		name string
		req  *Request
		err  error
	}{
		{"end before start", &Request{StartDate: monday, EndDate: &sunday, ServiceType: domain.ServiceMeasurement}, domain.ErrInvalidRange},
		{"missing start", &Request{ServiceType: domain.ServiceMeasurement}, domain.ErrInvalidDate},
		{"unknown service", &Request{StartDate: monday, ServiceType: "PAINTING"}, domain.ErrInvalidServiceType},
		{"range too long", &Request{StartDate: monday, EndDate: &farAway, ServiceType: domain.ServiceMeasurement}, domain.ErrRangeTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

type failingAppointments struct{}

func (failingAppointments) List(context.Context, domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return nil, errors.New("connection reset")
}

func TestExecute_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.uc.appointmentRepo = failingAppointments{}
	monday := day(2026, 10, 19)

	_, err := f.uc.Execute(context.Background(), &Request{StartDate: monday, ServiceType: domain.ServiceMeasurement})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func reasons(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		if s.Reason != nil {
			out[i] = *s.Reason
		}
	}
	return out
}

func countAvailable(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
