package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

var testLoc = time.FixedZone("EST", -5*3600)

func newTestRules(t *testing.T, slot, buffer int) *Rules {
	t.Helper()
	cfg, err := domain.NewCalendarConfig(9, 17, slot, buffer, domain.DefaultWorkingDays, testLoc,
		map[domain.ServiceType]int{
			domain.ServiceConsultation: 60,
			domain.ServiceMeasurement:  120,
			domain.ServiceInstallation: 240,
		}, 0)
	require.NoError(t, err)
	return NewRules(cfg)
}

func labels(slots []domain.TimeRange) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label()
	}
	return out
}

func TestNominalSlots_WorkingDay(t *testing.T) {
	rules := newTestRules(t, 120, 0)
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, testLoc)

	slots := rules.NominalSlots(monday, nil)

	assert.Equal(t, []string{"09:00-11:00", "11:00-13:00", "13:00-15:00", "15:00-17:00"}, labels(slots))
}

func TestNominalSlots_NonWorkingDays(t *testing.T) {
	rules := newTestRules(t, 120, 0)
	saturday := time.Date(2026, 10, 24, 0, 0, 0, 0, testLoc)
	sunday := time.Date(2026, 10, 25, 0, 0, 0, 0, testLoc)

	assert.Empty(t, rules.NominalSlots(saturday, nil))
	assert.Empty(t, rules.NominalSlots(sunday, nil))
	assert.NotNil(t, rules.NominalSlots(sunday, nil))
}

func TestNominalSlots_BlockedDay(t *testing.T) {
	rules := newTestRules(t, 120, 0)
	day := time.Date(2026, 12, 24, 0, 0, 0, 0, testLoc)
	blocked := domain.NewBlockedDays([]*domain.BlockedDate{{Day: day, Reason: "Holiday closure"}})

	assert.Empty(t, rules.NominalSlots(day, blocked))

	reason, ok := rules.BlockReason(day, blocked)
	require.True(t, ok)
	assert.Equal(t, "Holiday closure", reason)

	_, ok = rules.BlockReason(day.AddDate(0, 0, 1), blocked)
	assert.False(t, ok)
}

func TestNominalSlots_WithBuffer(t *testing.T) {
	rules := newTestRules(t, 60, 30)
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, testLoc)

	slots := rules.NominalSlots(monday, nil)

	assert.Equal(t, []string{"09:00-10:00", "10:30-11:30", "12:00-13:00", "13:30-14:30", "15:00-16:00"}, labels(slots))
}

func TestNominalSlots_LastSlotMustFit(t *testing.T) {
	rules := newTestRules(t, 180, 0)
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, testLoc)

	// 09-12, 12-15; 15-18 выходит за 17:00
	assert.Equal(t, []string{"09:00-12:00", "12:00-15:00"}, labels(rules.NominalSlots(monday, nil)))
}

func TestNominalSlots_TimeOfDayIgnored(t *testing.T) {
	rules := newTestRules(t, 120, 0)
	midday := time.Date(2026, 10, 19, 14, 37, 0, 0, testLoc)
	midnight := time.Date(2026, 10, 19, 0, 0, 0, 0, testLoc)

	assert.Equal(t, rules.NominalSlots(midnight, nil), rules.NominalSlots(midday, nil))
}

func TestIsSlotStart(t *testing.T) {
	rules := newTestRules(t, 120, 0)

	assert.True(t, rules.IsSlotStart(time.Date(2026, 10, 19, 9, 0, 0, 0, testLoc)))
	assert.True(t, rules.IsSlotStart(time.Date(2026, 10, 19, 15, 0, 0, 0, testLoc)))
	assert.False(t, rules.IsSlotStart(time.Date(2026, 10, 19, 10, 0, 0, 0, testLoc)))
	assert.False(t, rules.IsSlotStart(time.Date(2026, 10, 19, 17, 0, 0, 0, testLoc)))
}

func TestFitsBusinessHours(t *testing.T) {
	rules := newTestRules(t, 120, 0)

	assert.True(t, rules.FitsBusinessHours(time.Date(2026, 10, 19, 13, 0, 0, 0, testLoc), 4*time.Hour))
	assert.False(t, rules.FitsBusinessHours(time.Date(2026, 10, 19, 15, 0, 0, 0, testLoc), 4*time.Hour))
	assert.False(t, rules.FitsBusinessHours(time.Date(2026, 10, 19, 8, 0, 0, 0, testLoc), time.Hour))
}
