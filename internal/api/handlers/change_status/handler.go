package change_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/PGC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PGC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/internal/service/appointments/models"
	changeStatus "github.com/m04kA/PGC-SchedulingService/internal/usecase/change_status"
)

const (
	msgInvalidAppointmentID = "invalid appointment ID"
	msgInvalidRequestBody   = "invalid request body"
	msgMissingUserID        = "missing user ID"
	msgNotFound             = "appointment not found"

	ReasonInvalidTransition = "invalid_transition"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), &changeStatus.Request{
		AppointmentID: id,
		TargetStatus:  domain.Status(req.Status),
		Reason:        req.Reason,
		ActorID:       &userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Rejected: id=%s, user=%s, error=%v", id, userID, err)
			handlers.RespondErrorWithReason(w, http.StatusConflict, err.Error(), ReasonInvalidTransition, "")

		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to change status: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - id=%s is now %s (user=%s)", id, appointment.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(appointment))
}
