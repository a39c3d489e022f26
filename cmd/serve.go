package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/PGC-SchedulingService/internal/api"
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
	"github.com/m04kA/PGC-SchedulingService/internal/infra/storage/migrations"
	"github.com/m04kA/PGC-SchedulingService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/PGC-SchedulingService/internal/service/appointments"
	blockedDatesService "github.com/m04kA/PGC-SchedulingService/internal/service/blocked_dates"
	changeStatusUC "github.com/m04kA/PGC-SchedulingService/internal/usecase/change_status"
	getAvailabilityUC "github.com/m04kA/PGC-SchedulingService/internal/usecase/get_availability"
	reserveAppointmentUC "github.com/m04kA/PGC-SchedulingService/internal/usecase/reserve_appointment"
	"github.com/m04kA/PGC-SchedulingService/internal/worker/reminders"
)

const (
	icsProductID      = "-//PGC//Appointment Scheduling//EN"
	poolStatsInterval = 15 * time.Second
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminders scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *configPath, migrateUp)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before start")
	return cmd
}

func runServe(ctx context.Context, configPath string, migrateUp bool) error {
	a, err := newApp(ctx, configPath, true)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg
	log := a.log
	log.Info("Starting PGC-SchedulingService...")
	log.Info("Configuration loaded from %s", configPath)

	if migrateUp {
		if a.db == nil {
			return ErrSQLDriverRequired
		}
		applied, err := migrations.Up(ctx, a.db, log)
		if err != nil {
			return err
		}
		log.Info("Migrations applied: %d", applied)
	}

	// Уведомления
	var sender notifier.Sender
	if cfg.Notifier.Enabled {
		sender = notifier.NewClient(cfg.Notifier.URL, time.Duration(cfg.Notifier.Timeout)*time.Second)
		log.Info("Notifier enabled (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	}
	dispatcher := notifier.NewDispatcher(sender, time.Duration(cfg.Notifier.Timeout)*time.Second, a.metrics, log)

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		a.rules,
		a.appointments,
		a.blockedDates,
		log,
		getAvailabilityUC.Options{
			DefaultRangeDays: cfg.Booking.DefaultRangeDays,
			MaxRangeDays:     cfg.Booking.MaxRangeDays,
		},
	)
	reserveAppointmentUseCase := reserveAppointmentUC.NewUseCase(
		a.rules,
		a.appointments,
		a.blockedDates,
		a.txManager,
		dispatcher,
		a.metrics,
		log,
	)
	changeStatusUseCase := changeStatusUC.NewUseCase(
		a.appointments,
		a.txManager,
		dispatcher,
		a.metrics,
		log,
	)

	// Сервисы
	appointmentSvc := appointmentsService.NewService(a.appointments, icsProductID, log)
	blockedDatesSvc := blockedDatesService.NewService(a.blockedDates, a.appointments, a.txManager, a.calendar, log)

	// Handlers
	handlers := api.Handlers{
		GetAvailability:    getAvailabilityHandler.NewHandler(getAvailabilityUseCase, a.calendar, log),
		GetCalendarConfig:  getCalendarConfigHandler.NewHandler(a.rules),
		ReserveAppointment: reserveAppointmentHandler.NewHandler(reserveAppointmentUseCase, a.calendar, log),
		GetAppointment:     getAppointmentHandler.NewHandler(appointmentSvc, log),
		GetHistory:         getHistoryHandler.NewHandler(appointmentSvc, log),
		ExportICS:          exportICSHandler.NewHandler(appointmentSvc, log),
		ChangeStatus:       changeStatusHandler.NewHandler(changeStatusUseCase, log),
		ListAppointments:   listAppointmentsHandler.NewHandler(appointmentSvc, a.calendar, log),
		ListBlockedDates:   listBlockedDatesHandler.NewHandler(blockedDatesSvc, log),
		AddBlockedDate:     addBlockedDateHandler.NewHandler(blockedDatesSvc, log),
		RemoveBlockedDate:  removeBlockedDateHandler.NewHandler(blockedDatesSvc, log),
	}

	opts := api.Options{
		AdminToken:     cfg.Admin.Token,
		ReserveLimiter: middleware.NewRateLimiter(cfg.Booking.RateLimitPerMinute, cfg.Booking.RateLimitBurst),
	}
	if opts.ReserveLimiter != nil {
		log.Info("Reservation rate limit: %d/min per client, burst %d",
			cfg.Booking.RateLimitPerMinute, cfg.Booking.RateLimitBurst)
	}
	if a.metrics != nil {
		opts.HTTPMetrics = a.metrics
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	if cfg.Admin.Token == "" {
		log.Warn("Admin token is empty, admin routes are disabled")
	}

	router := api.NewRouter(handlers, opts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}
		return nil
	})

	if cfg.Reminders.Enabled {
		job := reminders.NewJob(a.appointments, dispatcher, a.calendar.Location, log)
		scheduler, err := reminders.NewScheduler(cfg.Reminders.Schedule, a.calendar.Location, job, log)
		if err != nil {
			return err
		}
		g.Go(func() error {
			log.Info("Reminders scheduled (%s, %s)", cfg.Reminders.Schedule, a.calendar.Location)
			return scheduler.Run(gctx)
		})
	}

	if a.db != nil && a.metrics != nil {
		g.Go(func() error {
			a.db.CollectPoolStats(gctx, poolStatsInterval)
			return nil
		})
		log.Info("Database metrics collection started")
	}

	groupErr := g.Wait()

	// HTTP сервер и планировщик остановлены, новых событий больше не будет
	drainCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := dispatcher.Wait(drainCtx); err != nil {
		log.Warn("Pending notifications dropped: %v", err)
	}

	if groupErr != nil {
		return groupErr
	}

	log.Info("Server stopped gracefully")
	return nil
}
