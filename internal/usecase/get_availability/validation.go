package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", domain.ErrInvalidDate)
	}
	if req.EndDate != nil && req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is zero", domain.ErrInvalidDate)
	}
	if !req.ServiceType.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidServiceType, req.ServiceType)
	}
	return nil
}

// validateRange проверяет порядок и длину диапазона (границы - полночь дня)
func validateRange(start, end time.Time, maxDays int) error {
	if end.Before(start) {
		return fmt.Errorf("%w: %s < %s", domain.ErrInvalidRange,
			end.Format(domain.DateFormat), start.Format(domain.DateFormat))
	}
	if maxDays > 0 && daysBetween(start, end) > maxDays {
		return fmt.Errorf("%w: at most %d days", domain.ErrRangeTooLong, maxDays)
	}
	return nil
}

// daysBetween количество календарных дней между двумя полуночами
// Считается по датам, а не по 24 часам, чтобы переход на летнее время не сбивал счёт
func daysBetween(start, end time.Time) int {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
