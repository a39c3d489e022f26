package reserve_appointment

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/calendar"
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", domain.ErrValidation)
	}

	if !req.ServiceType.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidServiceType, req.ServiceType)
	}

	if req.ScheduledDate.IsZero() {
		return fmt.Errorf("%w: scheduledDate is required", domain.ErrInvalidDate)
	}

	if err := validateCustomer(req.Customer); err != nil {
		return err
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalidLocation)
	}
	if len(location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location exceeds %d characters", domain.ErrInvalidLocation, domain.MaxLocationLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", domain.ErrValidation, domain.MaxNotesLength)
	}

	return nil
}

func validateCustomer(c domain.Customer) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidCustomer)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", domain.ErrInvalidCustomer, domain.MaxCustomerNameLength)
	}

	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidCustomer)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", domain.ErrInvalidCustomer, c.Email)
	}

	if strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: phone is required", domain.ErrInvalidCustomer)
	}

	return nil
}

// validateSchedule проверяет, что визит попадает в сетку рабочего дня и в окно бронирования
func validateSchedule(rules *calendar.Rules, span domain.TimeRange, now time.Time) error {
	cfg := rules.Config()
	day := cfg.Day(span.Start)

	if !cfg.IsWorkingDay(day.Weekday()) {
		return fmt.Errorf("%w: %s is %s", domain.ErrNotWorkingDay, day.Format(domain.DateFormat), day.Weekday())
	}

	if !rules.IsSlotStart(span.Start) {
		return fmt.Errorf("%w: %s", domain.ErrOffGrid, span.Start.Format(domain.TimeFormat))
	}

	if !rules.FitsBusinessHours(span.Start, span.Duration()) {
		return fmt.Errorf("%w: %s ends after %02d:00", domain.ErrOutsideHours, span.Label(), cfg.EndHour)
	}

	if span.Start.Before(now) {
		return fmt.Errorf("%w: %s %s", domain.ErrDateHasPassed, day.Format(domain.DateFormat), span.Label())
	}

	if cfg.MaxAdvanceDays > 0 {
		limit := cfg.Day(now).AddDate(0, 0, cfg.MaxAdvanceDays)
		if day.After(limit) {
			return fmt.Errorf("%w: can only book %d days in advance", domain.ErrDateTooFar, cfg.MaxAdvanceDays)
		}
	}

	return nil
}
