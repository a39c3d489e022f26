package get_availability

import (
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/PGC-SchedulingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	ServiceType string       `json:"serviceType"`
	Location    *string      `json:"location,omitempty"`
	Calendar    CalendarInfo `json:"calendar"`
	Days        []Day        `json:"days"`
}

// CalendarInfo конфигурация календаря для отрисовки сетки
type CalendarInfo struct {
	Timezone               string   `json:"timezone"`
	StartHour              int      `json:"startHour"`
	EndHour                int      `json:"endHour"`
	SlotDurationMinutes    int      `json:"slotDurationMinutes"`
	BufferMinutes          int      `json:"bufferMinutes"`
	WorkingDays            []string `json:"workingDays"` // "Monday", ...
	ServiceDurationMinutes int      `json:"serviceDurationMinutes"`
	MaxAdvanceDays         int      `json:"maxAdvanceDays"`
}

// Day слоты одного дня
type Day struct {
	Date          string  `json:"date"`
	Weekday       string  `json:"weekday"`
	BlockedReason *string `json:"blockedReason,omitempty"`
	Slots         []Slot  `json:"slots"`
}

// Slot номинальный слот
type Slot struct {
	Start     string  `json:"start"` // "09:00"
	End       string  `json:"end"`   // "11:00"
	Label     string  `json:"label"` // "09:00-11:00"
	Available bool    `json:"available"`
	Reason    *string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	workingDays := make([]string, len(resp.Calendar.WorkingDays))
	for i, wd := range resp.Calendar.WorkingDays {
		workingDays[i] = wd.String()
	}

	days := make([]Day, len(resp.Days))
	for i, d := range resp.Days {
		slots := make([]Slot, len(d.Slots))
		for j, s := range d.Slots {
			slots[j] = Slot{
				Start:     s.Start.Format(domain.TimeFormat),
				End:       s.End.Format(domain.TimeFormat),
				Label:     s.Label,
				Available: s.Available,
				Reason:    s.Reason,
			}
		}
		days[i] = Day{
			Date:          d.Date.Format(domain.DateFormat),
			Weekday:       d.Date.Weekday().String(),
			BlockedReason: d.BlockedReason,
			Slots:         slots,
		}
	}

	return &AvailabilityResponse{
		StartDate:   resp.StartDate.Format(domain.DateFormat),
		EndDate:     resp.EndDate.Format(domain.DateFormat),
		ServiceType: string(resp.ServiceType),
		Location:    resp.Location,
		Calendar: CalendarInfo{
			Timezone:               resp.Calendar.Timezone,
			StartHour:              resp.Calendar.StartHour,
			EndHour:                resp.Calendar.EndHour,
			SlotDurationMinutes:    resp.Calendar.SlotDurationMinutes,
			BufferMinutes:          resp.Calendar.BufferMinutes,
			WorkingDays:            workingDays,
			ServiceDurationMinutes: resp.Calendar.ServiceDurationMinutes,
			MaxAdvanceDays:         resp.Calendar.MaxAdvanceDays,
		},
		Days: days,
	}
}
