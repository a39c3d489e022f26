package get_availability

import (
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// Request запрос доступности
type Request struct {
	StartDate   time.Time          // День начала (в часовом поясе календаря)
	EndDate     *time.Time         // День окончания включительно; nil - StartDate + 14 дней
	ServiceType domain.ServiceType // Тип услуги
	Location    *string            // Адрес визита, только отражается в ответе
}

// Response доступность по дням плюс конфигурация календаря для отрисовки
type Response struct {
	StartDate   time.Time
	EndDate     time.Time
	ServiceType domain.ServiceType
	Location    *string
	Days        []Day
	Calendar    CalendarInfo
}

// Day слоты одного дня
type Day struct {
	Date          time.Time
	Slots         []Slot
	BlockedReason *string // день закрыт администратором
}

// Slot номинальный слот с признаком доступности
type Slot struct {
	Start     time.Time
	End       time.Time
	Label     string // "09:00-11:00"
	Available bool
	Reason    *string // "Already booked" / "Date has passed"
}

// CalendarInfo конфигурация календаря, отдаваемая клиенту
type CalendarInfo struct {
	Timezone               string
	StartHour              int
	EndHour                int
	SlotDurationMinutes    int
	BufferMinutes          int
	WorkingDays            []time.Weekday
	ServiceDurationMinutes int
	MaxAdvanceDays         int
}
