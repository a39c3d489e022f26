package reserve_appointment

import (
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	reserveAppointment "github.com/m04kA/PGC-SchedulingService/internal/usecase/reserve_appointment"
)

// CustomerRequest контакт клиента
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ReserveAppointmentRequest HTTP request model
type ReserveAppointmentRequest struct {
	ServiceType   string          `json:"serviceType"`
	ScheduledDate string          `json:"scheduledDate"` // "2026-10-19"
	TimeStart     string          `json:"timeStart"`     // "09:00"
	Customer      CustomerRequest `json:"customer"`
	Location      string          `json:"location"`
	Notes         *string         `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveAppointmentRequest) ToUseCaseRequest(dates DateParser) (*reserveAppointment.Request, error) {
	serviceType, err := domain.ParseServiceType(r.ServiceType)
	if err != nil {
		return nil, err
	}

	day, err := dates.ParseDate(r.ScheduledDate)
	if err != nil {
		return nil, err
	}

	return &reserveAppointment.Request{
		ServiceType:   serviceType,
		ScheduledDate: day,
		TimeStart:     r.TimeStart,
		Customer: domain.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		Location: r.Location,
		Notes:    r.Notes,
	}, nil
}
