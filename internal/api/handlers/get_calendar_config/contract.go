package get_calendar_config

import "github.com/m04kA/PGC-SchedulingService/internal/domain"

// CalendarProvider источник конфигурации календаря
type CalendarProvider interface {
	Config() domain.CalendarConfig
}
