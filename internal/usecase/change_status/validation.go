package change_status

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || req.AppointmentID == uuid.Nil {
		return fmt.Errorf("%w: appointmentId is required", domain.ErrValidation)
	}
	status, err := domain.ParseStatus(string(req.TargetStatus))
	if err != nil {
		return err
	}
	req.TargetStatus = status
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", domain.ErrValidation, domain.MaxReasonLength)
	}
	return nil
}
