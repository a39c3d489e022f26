package reserve_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/PGC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSlotOccupied       = "selected time slot is no longer available"
	msgDateBlocked        = "selected date is not available for appointments"

	ReasonSlotOccupied = "slot_occupied"
	ReasonDateBlocked  = "date_blocked"
)

type Handler struct {
	useCase ReserveAppointmentUseCase
	dates   DateParser
	logger  Logger
}

func NewHandler(useCase ReserveAppointmentUseCase, dates DateParser, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		dates:   dates,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.dates)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var blocked *domain.BlockedDateError
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /appointments - Slot occupied: service=%s, date=%s, time=%s",
				req.ServiceType, req.ScheduledDate, req.TimeStart)
			handlers.RespondErrorWithReason(w, http.StatusConflict, msgSlotOccupied, ReasonSlotOccupied, "")

		case errors.As(err, &blocked):
			h.logger.Warn("POST /appointments - Date blocked: date=%s", req.ScheduledDate)
			handlers.RespondErrorWithReason(w, http.StatusConflict, msgDateBlocked, ReasonDateBlocked, blocked.Reason)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to reserve appointment: service=%s, date=%s, error=%v",
				req.ServiceType, req.ScheduledDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment reserved: id=%s", appointment.ID)
	w.Header().Set("Location", "/api/v1/appointments/"+appointment.ID.String())
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(appointment))
}
