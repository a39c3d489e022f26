package get_calendar_config

import (
	"net/http"

	"github.com/m04kA/PGC-SchedulingService/internal/api/handlers"
)

type Handler struct {
	calendar CalendarProvider
}

func NewHandler(calendar CalendarProvider) *Handler {
	return &Handler{calendar: calendar}
}

// Handle GET /api/v1/calendar/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromDomainConfig(h.calendar.Config()))
}
