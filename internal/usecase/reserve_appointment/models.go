package reserve_appointment

import (
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// Request запрос на бронирование
type Request struct {
	ServiceType   domain.ServiceType
	ScheduledDate time.Time // день визита в часовом поясе календаря
	TimeStart     string    // "HH:MM", должно совпадать с началом номинального слота
	Customer      domain.Customer
	Location      string
	Notes         *string
}
