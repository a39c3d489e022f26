// Package calendar turns the business calendar into nominal appointment slots.
// Everything here is pure: no storage, no clock, no errors for "no slots".
package calendar

import (
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// Rules генерирует номинальные слоты по конфигурации календаря
type Rules struct {
	cfg domain.CalendarConfig
}

// NewRules создает правила календаря
func NewRules(cfg domain.CalendarConfig) *Rules {
	return &Rules{cfg: cfg}
}

// Config возвращает конфигурацию календаря (read-only)
func (r *Rules) Config() domain.CalendarConfig {
	return r.cfg
}

// NominalSlots возвращает упорядоченный список слотов на день
// Пустой результат, если день не рабочий или заблокирован администратором
func (r *Rules) NominalSlots(date time.Time, blocked domain.BlockedDays) []domain.TimeRange {
	day := r.cfg.Day(date)

	if !r.cfg.IsWorkingDay(day.Weekday()) {
		return []domain.TimeRange{}
	}

	if _, ok := blocked.Lookup(day); ok {
		return []domain.TimeRange{}
	}

	return r.grid(day)
}

// BlockReason возвращает причину блокировки дня, если день заблокирован
func (r *Rules) BlockReason(date time.Time, blocked domain.BlockedDays) (string, bool) {
	b, ok := blocked.Lookup(r.cfg.Day(date))
	if !ok {
		return "", false
	}
	return b.Reason, true
}

// IsSlotStart проверяет, что момент совпадает с началом одного из слотов сетки
// Рабочий день и блокировки здесь не учитываются
func (r *Rules) IsSlotStart(start time.Time) bool {
	for _, slot := range r.grid(r.cfg.Day(start)) {
		if slot.Start.Equal(start) {
			return true
		}
	}
	return false
}

// FitsBusinessHours проверяет, что интервал [start, start+d) заканчивается до закрытия
func (r *Rules) FitsBusinessHours(start time.Time, d time.Duration) bool {
	day := r.cfg.Day(start)
	openAt := r.cfg.At(day, r.cfg.StartHour, 0)
	closeAt := r.cfg.At(day, r.cfg.EndHour, 0)
	return !start.Before(openAt) && !start.Add(d).After(closeAt)
}

// grid шагает от начала рабочего дня с шагом slotDuration + buffer
// Слот включается, только если целиком помещается до конца рабочего дня
func (r *Rules) grid(day time.Time) []domain.TimeRange {
	slotDuration := time.Duration(r.cfg.SlotDurationMinutes) * time.Minute
	step := slotDuration + time.Duration(r.cfg.BufferMinutes)*time.Minute

	closeAt := r.cfg.At(day, r.cfg.EndHour, 0)
	slots := make([]domain.TimeRange, 0)

	for start := r.cfg.At(day, r.cfg.StartHour, 0); !start.Add(slotDuration).After(closeAt); start = start.Add(step) {
		slots = append(slots, domain.TimeRange{Start: start, End: start.Add(slotDuration)})
	}

	return slots
}
