package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/PGC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/PGC-SchedulingService/internal/usecase/get_availability"
)

const (
	msgMissingStartDate   = "startDate is required, expected YYYY-MM-DD"
	msgInvalidStartDate   = "invalid startDate, expected YYYY-MM-DD"
	msgInvalidEndDate     = "invalid endDate, expected YYYY-MM-DD"
	msgMissingServiceType = "serviceType is required"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	dates   DateParser
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, dates DateParser, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		dates:   dates,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?startDate=&endDate=&serviceType=&location=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	startRaw := q.Get("startDate")
	if startRaw == "" {
		handlers.RespondBadRequest(w, msgMissingStartDate)
		return
	}
	start, err := h.dates.ParseDate(startRaw)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	req := &getAvailability.Request{
		StartDate: start,
		Location:  handlers.QueryParam(r, "location"),
	}

	if endRaw := q.Get("endDate"); endRaw != "" {
		end, err := h.dates.ParseDate(endRaw)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		req.EndDate = &end
	}

	stRaw := q.Get("serviceType")
	if stRaw == "" {
		handlers.RespondBadRequest(w, msgMissingServiceType)
		return
	}
	serviceType, err := domain.ParseServiceType(stRaw)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	req.ServiceType = serviceType

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /availability - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /availability - Failed to get availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
