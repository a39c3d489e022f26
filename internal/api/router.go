package api

import (
	"net/http"

	"github.com/gorilla/mux"

	addBlockedDateHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/add_blocked_date"
	changeStatusHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/change_status"
	exportICSHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/export_appointment_ics"
	getAppointmentHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/get_appointment"
	getHistoryHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/get_appointment_history"
	getAvailabilityHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/get_availability"
	getCalendarConfigHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/get_calendar_config"
	listAppointmentsHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/list_appointments"
	listBlockedDatesHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/list_blocked_dates"
	removeBlockedDateHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/remove_blocked_date"
	reserveAppointmentHandler "github.com/m04kA/PGC-SchedulingService/internal/api/handlers/reserve_appointment"
	"github.com/m04kA/PGC-SchedulingService/internal/api/middleware"
)

// Handlers все HTTP обработчики сервиса
type Handlers struct {
	GetAvailability    *getAvailabilityHandler.Handler
	GetCalendarConfig  *getCalendarConfigHandler.Handler
	ReserveAppointment *reserveAppointmentHandler.Handler
	GetAppointment     *getAppointmentHandler.Handler
	GetHistory         *getHistoryHandler.Handler
	ExportICS          *exportICSHandler.Handler
	ChangeStatus       *changeStatusHandler.Handler
	ListAppointments   *listAppointmentsHandler.Handler
	ListBlockedDates   *listBlockedDatesHandler.Handler
	AddBlockedDate     *addBlockedDateHandler.Handler
	RemoveBlockedDate  *removeBlockedDateHandler.Handler
}

// Options параметры роутера
type Options struct {
	AdminToken     string
	HTTPMetrics    middleware.HTTPMetrics  // nil - без метрик
	MetricsPath    string
	MetricsHandler http.Handler            // promhttp.Handler(), nil - endpoint не публикуется
	ReserveLimiter *middleware.RateLimiter // nil - без ограничения
}

// NewRouter собирает маршруты /api/v1
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	if opts.HTTPMetrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.HTTPMetrics))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/availability", h.GetAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar/config", h.GetCalendarConfig.Handle).Methods(http.MethodGet)

	api.Handle("/appointments",
		opts.ReserveLimiter.Middleware(http.HandlerFunc(h.ReserveAppointment.Handle))).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", h.GetAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/history", h.GetHistory.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/calendar.ics", h.ExportICS.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments/{appointmentId}/status", h.ChangeStatus.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminToken(opts.AdminToken))

	admin.HandleFunc("/appointments", h.ListAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-dates", h.ListBlockedDates.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-dates", h.AddBlockedDate.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-dates/{date}", h.RemoveBlockedDate.Handle).Methods(http.MethodDelete)

	return r
}
