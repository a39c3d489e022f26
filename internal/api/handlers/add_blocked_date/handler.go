package add_blocked_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/PGC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/internal/service/blocked_dates/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgAlreadyBlocked     = "date is already blocked"
)

type Handler struct {
	service BlockedDateService
	logger  Logger
}

func NewHandler(service BlockedDateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Add(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			handlers.RespondConflict(w, msgAlreadyBlocked)
		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /admin/blocked-dates - Failed to block date %s: %v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-dates - Blocked %s, affected appointments: %d", resp.Date, len(resp.AffectedAppointments))
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
