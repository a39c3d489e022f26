package get_availability

import (
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/pkg/ptr"
)

// indexByDay группирует активные записи по дню (YYYY-MM-DD)
// Проверка слота дальше идёт только по записям своего дня
func indexByDay(appointments []*domain.Appointment) map[string][]domain.TimeRange {
	idx := make(map[string][]domain.TimeRange)
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		key := a.ScheduledDate.Format(domain.DateFormat)
		idx[key] = append(idx[key], a.Range())
	}
	return idx
}

// buildDay строит слоты одного дня
// Слот сетки проверяется по реальному интервалу визита [start, start+duration),
// тем же, который потом займёт бронирование
func (uc *UseCase) buildDay(day, today time.Time, duration time.Duration, blocked domain.BlockedDays, booked []domain.TimeRange) Day {
	result := Day{Date: day, Slots: make([]Slot, 0)}

	if reason, ok := uc.rules.BlockReason(day, blocked); ok {
		result.BlockedReason = ptr.Ptr(reason)
		return result
	}

	passed := day.Before(today)

	for _, r := range uc.rules.NominalSlots(day, blocked) {
		slot := Slot{Start: r.Start, End: r.End, Label: r.Label(), Available: true}
		visit := domain.TimeRange{Start: r.Start, End: r.Start.Add(duration)}

		switch {
		case passed:
			slot.Available = false
			slot.Reason = ptr.Ptr(domain.ReasonDateHasPassed)
		case !uc.rules.FitsBusinessHours(visit.Start, duration):
			slot.Available = false
			slot.Reason = ptr.Ptr(domain.ReasonOutsideHours)
		case overlapsAny(visit, booked):
			slot.Available = false
			slot.Reason = ptr.Ptr(domain.ReasonAlreadyBooked)
		}

		result.Slots = append(result.Slots, slot)
	}

	return result
}

func overlapsAny(r domain.TimeRange, booked []domain.TimeRange) bool {
	for _, b := range booked {
		if r.Overlaps(b) {
			return true
		}
	}
	return false
}
