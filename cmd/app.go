package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/m04kA/PGC-SchedulingService/internal/calendar"
	"github.com/m04kA/PGC-SchedulingService/internal/config"
	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/PGC-SchedulingService/internal/infra/storage/appointment"
	blockedDateRepo "github.com/m04kA/PGC-SchedulingService/internal/infra/storage/blocked_date"
	"github.com/m04kA/PGC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/PGC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/PGC-SchedulingService/pkg/logger"
	"github.com/m04kA/PGC-SchedulingService/pkg/metrics"
	"github.com/m04kA/PGC-SchedulingService/pkg/txmanager"
)

// ErrSQLDriverRequired команда требует SQL хранилище
var ErrSQLDriverRequired = errors.New("command requires database.driver postgres or pgx")

// appointmentStore полный набор операций хранилища записей (postgres и memory)
type appointmentStore interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	LockSlotDay(ctx context.Context, serviceType domain.ServiceType, day time.Time) error
	FindOverlapping(ctx context.Context, serviceType domain.ServiceType, span domain.TimeRange) ([]*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status, reason *string, at time.Time) (*domain.Appointment, error)
	InsertHistory(ctx context.Context, change *domain.StatusChange) (*domain.StatusChange, error)
	ListHistory(ctx context.Context, appointmentID uuid.UUID) ([]*domain.StatusChange, error)
}

// blockedDateStore хранилище заблокированных дней
type blockedDateStore interface {
	Add(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error)
	Remove(ctx context.Context, day time.Time) error
	Get(ctx context.Context, day time.Time) (*domain.BlockedDate, error)
	ListInRange(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error)
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// app общие зависимости команд
type app struct {
	cfg      *config.Config
	calendar domain.CalendarConfig
	rules    *calendar.Rules
	log      *logger.Logger
	metrics  *metrics.Metrics // nil, если метрики выключены

	db           *dbmetrics.DB // nil для memory
	appointments appointmentStore
	blockedDates blockedDateStore
	txManager    transactionManager
}

// newApp загружает конфигурацию, поднимает логгер и хранилище
// withMetrics регистрирует коллекторы Prometheus (только для serve)
func newApp(ctx context.Context, configPath string, withMetrics bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	calendarCfg, err := cfg.CalendarConfig()
	if err != nil {
		log.Close()
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		calendar: calendarCfg,
		rules:    calendar.NewRules(calendarCfg),
		log:      log,
	}

	if withMetrics && cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	if err := a.openStorage(ctx); err != nil {
		log.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) openStorage(ctx context.Context) error {
	loc := a.calendar.Location

	if a.cfg.Database.Driver == config.DriverMemory {
		store := memory.NewStore(loc)
		a.appointments = memory.NewAppointmentRepository(store)
		a.blockedDates = memory.NewBlockedDateRepository(store)
		a.txManager = memory.NewTxManager(store)
		a.log.Warn("Using in-memory storage, data is lost on restart")
		return nil
	}

	// Подключаемся к базе данных
	db, err := sql.Open(a.cfg.Database.Driver, a.cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(a.cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(a.cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(a.cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	a.log.Info("Successfully connected to database (driver=%s, host=%s, port=%d, db=%s)",
		a.cfg.Database.Driver, a.cfg.Database.Host, a.cfg.Database.Port, a.cfg.Database.DBName)

	a.db = dbmetrics.Wrap(db, a.metrics)
	a.appointments = appointmentRepo.NewRepository(a.db, loc)
	a.blockedDates = blockedDateRepo.NewRepository(a.db, loc)
	a.txManager = txmanager.New(a.db, a.log,
		txmanager.WithTimeout(a.cfg.Booking.TxTimeout()),
		txmanager.WithRetries(a.cfg.Booking.MaxRetries, a.cfg.Booking.RetryBackoff()),
	)
	return nil
}

// Close освобождает соединения и файл лога
func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Unwrap().Close(); err != nil {
			a.log.Error("Failed to close database: %v", err)
		}
	}
	a.log.Close()
}
