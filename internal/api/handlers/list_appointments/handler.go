package list_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/PGC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidStartDate        = "invalid startDate, expected YYYY-MM-DD"
	msgInvalidEndDate          = "invalid endDate, expected YYYY-MM-DD"
	msgInvalidIncludeCancelled = "includeCancelled must be true or false"
)

type Handler struct {
	service AppointmentService
	dates   DateParser
	logger  Logger
}

func NewHandler(service AppointmentService, dates DateParser, logger Logger) *Handler {
	return &Handler{
		service: service,
		dates:   dates,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments?startDate=&endDate=&serviceType=&status=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListAppointmentsRequest{
		ServiceType: handlers.QueryParam(r, "serviceType"),
		Status:      handlers.QueryParam(r, "status"),
	}

	if raw := handlers.QueryParam(r, "startDate"); raw != nil {
		day, err := h.dates.ParseDate(*raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		req.StartDate = &day
	}
	if raw := handlers.QueryParam(r, "endDate"); raw != nil {
		day, err := h.dates.ParseDate(*raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		req.EndDate = &day
	}
	if raw := handlers.QueryParam(r, "includeCancelled"); raw != nil {
		include, err := strconv.ParseBool(*raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidIncludeCancelled)
			return
		}
		req.IncludeCancelled = include
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /admin/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
