package domain

import (
	"fmt"
	"sort"
	"time"
)

// CalendarConfig рабочий календарь процесса
// Создается один раз при старте и дальше не изменяется
type CalendarConfig struct {
	StartHour           int
	EndHour             int
	SlotDurationMinutes int
	BufferMinutes       int
	WorkingDays         []time.Weekday
	Location            *time.Location
	ServiceDurations    map[ServiceType]int // минуты
	MaxAdvanceDays      int                 // 0 - без ограничения
}

// NewCalendarConfig копирует изменяемые входные данные и валидирует результат
func NewCalendarConfig(
	startHour, endHour, slotDuration, buffer int,
	workingDays []time.Weekday,
	loc *time.Location,
	durations map[ServiceType]int,
	maxAdvanceDays int,
) (CalendarConfig, error) {
	days := make([]time.Weekday, len(workingDays))
	copy(days, workingDays)
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	durationsCopy := make(map[ServiceType]int, len(durations))
	for k, v := range durations {
		durationsCopy[k] = v
	}

	if loc == nil {
		loc = time.UTC
	}

	cfg := CalendarConfig{
		StartHour:           startHour,
		EndHour:             endHour,
		SlotDurationMinutes: slotDuration,
		BufferMinutes:       buffer,
		WorkingDays:         days,
		Location:            loc,
		ServiceDurations:    durationsCopy,
		MaxAdvanceDays:      maxAdvanceDays,
	}

	if err := cfg.Validate(); err != nil {
		return CalendarConfig{}, err
	}
	return cfg, nil
}

// Validate проверяет корректность календаря
func (c CalendarConfig) Validate() error {
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("%w: start hour %d out of range", ErrInvalidCalendar, c.StartHour)
	}
	if c.EndHour <= c.StartHour || c.EndHour > 24 {
		return fmt.Errorf("%w: end hour %d must be after start hour %d", ErrInvalidCalendar, c.EndHour, c.StartHour)
	}
	if c.SlotDurationMinutes < MinSlotDurationMinutes || c.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration %d out of range", ErrInvalidCalendar, c.SlotDurationMinutes)
	}
	if c.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer must not be negative", ErrInvalidCalendar)
	}
	if c.MaxAdvanceDays < 0 {
		return fmt.Errorf("%w: max advance days must not be negative", ErrInvalidCalendar)
	}
	for _, st := range AllServiceTypes {
		minutes, ok := c.ServiceDurations[st]
		if !ok || minutes <= 0 {
			return fmt.Errorf("%w: missing duration for %s", ErrInvalidCalendar, st)
		}
	}
	return nil
}

// DurationFor фиксированная длительность типа услуги
func (c CalendarConfig) DurationFor(st ServiceType) (time.Duration, error) {
	minutes, ok := c.ServiceDurations[st]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidServiceType, st)
	}
	return time.Duration(minutes) * time.Minute, nil
}

// IsWorkingDay возвращает true, если в этот день недели принимаются записи
func (c CalendarConfig) IsWorkingDay(wd time.Weekday) bool {
	for _, d := range c.WorkingDays {
		if d == wd {
			return true
		}
	}
	return false
}

// Day обрезает t до полуночи его дня в часовом поясе календаря
func (c CalendarConfig) Day(t time.Time) time.Time {
	local := t.In(c.Location)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location)
}

// At момент hour:minute в указанный день
func (c CalendarConfig) At(day time.Time, hour, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, c.Location)
}

// ParseDate разбирает YYYY-MM-DD как день в часовом поясе календаря
func (c CalendarConfig) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, c.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseTimeOnDay разбирает HH:MM в указанный день в часовом поясе календаря
func (c CalendarConfig) ParseTimeOnDay(day time.Time, s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeFormat, s, c.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return c.At(day, t.Hour(), t.Minute()), nil
}

// BlockedDate день, закрытый администратором для записи
type BlockedDate struct {
	Day       time.Time
	Reason    string
	CreatedAt time.Time
}

// DayKey ключ YYYY-MM-DD заблокированного дня
func (b BlockedDate) DayKey() string {
	return b.Day.Format(DateFormat)
}

// BlockedDays индекс заблокированных дней по дате
type BlockedDays map[string]BlockedDate

// NewBlockedDays строит индекс по списку заблокированных дней
func NewBlockedDays(list []*BlockedDate) BlockedDays {
	idx := make(BlockedDays, len(list))
	for _, b := range list {
		if b == nil {
			continue
		}
		idx[b.DayKey()] = *b
	}
	return idx
}

// Lookup возвращает блокировку дня, если она есть
func (b BlockedDays) Lookup(day time.Time) (BlockedDate, bool) {
	if b == nil {
		return BlockedDate{}, false
	}
	blocked, ok := b[day.Format(DateFormat)]
	return blocked, ok
}
