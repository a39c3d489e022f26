package get_calendar_config

import "github.com/m04kA/PGC-SchedulingService/internal/domain"

// CalendarConfigResponse HTTP response model
type CalendarConfigResponse struct {
	Timezone            string              `json:"timezone"`
	StartHour           int                 `json:"startHour"`
	EndHour             int                 `json:"endHour"`
	SlotDurationMinutes int                 `json:"slotDurationMinutes"`
	BufferMinutes       int                 `json:"bufferMinutes"`
	WorkingDays         []string            `json:"workingDays"`
	MaxAdvanceDays      int                 `json:"maxAdvanceDays"`
	Services            []ServiceInfo       `json:"services"`
	Statuses            []string            `json:"statuses"`
	Transitions         map[string][]string `json:"transitions"`
}

// ServiceInfo тип услуги и его длительность
type ServiceInfo struct {
	ServiceType     string `json:"serviceType"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromDomainConfig конвертирует конфигурацию календаря в DTO
func FromDomainConfig(cfg domain.CalendarConfig) *CalendarConfigResponse {
	workingDays := make([]string, len(cfg.WorkingDays))
	for i, wd := range cfg.WorkingDays {
		workingDays[i] = wd.String()
	}

	services := make([]ServiceInfo, 0, len(domain.AllServiceTypes))
	for _, st := range domain.AllServiceTypes {
		services = append(services, ServiceInfo{
			ServiceType:     string(st),
			Title:           st.Title(),
			DurationMinutes: cfg.ServiceDurations[st],
		})
	}

	statuses := make([]string, len(domain.AllStatuses))
	transitions := make(map[string][]string, len(domain.AllStatuses))
	for i, s := range domain.AllStatuses {
		statuses[i] = string(s)
		next := s.NextStatuses()
		targets := make([]string, len(next))
		for j, n := range next {
			targets[j] = string(n)
		}
		transitions[string(s)] = targets
	}

	return &CalendarConfigResponse{
		Timezone:            cfg.Location.String(),
		StartHour:           cfg.StartHour,
		EndHour:             cfg.EndHour,
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		BufferMinutes:       cfg.BufferMinutes,
		WorkingDays:         workingDays,
		MaxAdvanceDays:      cfg.MaxAdvanceDays,
		Services:            services,
		Statuses:            statuses,
		Transitions:         transitions,
	}
}
