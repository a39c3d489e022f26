package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres" // lib/pq
	DriverPgx      = "pgx"      // jackc/pgx/v5/stdlib
	DriverMemory   = "memory"   // in-memory реестр для локальной разработки
)

// Переменные окружения, переопределяющие секреты из файла
const (
	EnvDatabasePassword = "SCHEDULING_DB_PASSWORD"
	EnvAdminToken       = "SCHEDULING_ADMIN_TOKEN"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Database  DatabaseConfig  `toml:"database" yaml:"database"`
	Logs      LogsConfig      `toml:"logs" yaml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics" yaml:"metrics"`
	Calendar  CalendarConfig  `toml:"calendar" yaml:"calendar"`
	Services  ServicesConfig  `toml:"services" yaml:"services"`
	Booking   BookingConfig   `toml:"booking" yaml:"booking"`
	Notifier  NotifierConfig  `toml:"notifier" yaml:"notifier"`
	Reminders RemindersConfig `toml:"reminders" yaml:"reminders"`
	Admin     AdminConfig     `toml:"admin" yaml:"admin"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" yaml:"http_port"`
	ReadTimeout     int `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Driver          string `toml:"driver" yaml:"driver"`
	Host            string `toml:"host" yaml:"host"`
	Port            int    `toml:"port" yaml:"port"`
	User            string `toml:"user" yaml:"user"`
	Password        string `toml:"password" yaml:"password"`
	DBName          string `toml:"dbname" yaml:"dbname"`
	SSLMode         string `toml:"sslmode" yaml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" yaml:"conn_max_lifetime"` // секунды
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file" yaml:"file"`
	Level string `toml:"level" yaml:"level"`
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" yaml:"enabled"`
	Path        string `toml:"path" yaml:"path"`
	ServiceName string `toml:"service_name" yaml:"service_name"`
}

// CalendarConfig бизнес-календарь
type CalendarConfig struct {
	Timezone            string   `toml:"timezone" yaml:"timezone"`
	StartHour           int      `toml:"start_hour" yaml:"start_hour"`
	EndHour             int      `toml:"end_hour" yaml:"end_hour"`
	SlotDurationMinutes int      `toml:"slot_duration_minutes" yaml:"slot_duration_minutes"`
	BufferMinutes       int      `toml:"buffer_minutes" yaml:"buffer_minutes"`
	WorkingDays         []string `toml:"working_days" yaml:"working_days"`
	MaxAdvanceDays      int      `toml:"max_advance_days" yaml:"max_advance_days"`
}

// ServicesConfig длительность услуг в минутах
type ServicesConfig struct {
	ConsultationMinutes int `toml:"consultation_minutes" yaml:"consultation_minutes"`
	MeasurementMinutes  int `toml:"measurement_minutes" yaml:"measurement_minutes"`
	InstallationMinutes int `toml:"installation_minutes" yaml:"installation_minutes"`
}

// BookingConfig параметры бронирования
type BookingConfig struct {
	TxTimeoutMs      int `toml:"tx_timeout_ms" yaml:"tx_timeout_ms"`
	MaxRetries       int `toml:"max_retries" yaml:"max_retries"`
	RetryBackoffMs   int `toml:"retry_backoff_ms" yaml:"retry_backoff_ms"`
	DefaultRangeDays int `toml:"default_range_days" yaml:"default_range_days"`
	MaxRangeDays     int `toml:"max_range_days" yaml:"max_range_days"`

	// Ограничение POST /appointments с одного клиента, 0 - выключено
	RateLimitPerMinute int `toml:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`
	RateLimitBurst     int `toml:"rate_limit_burst" yaml:"rate_limit_burst"`
}

// NotifierConfig webhook уведомлений
type NotifierConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	URL     string `toml:"url" yaml:"url"`
	Timeout int    `toml:"timeout" yaml:"timeout"` // секунды
}

// RemindersConfig напоминания о визите накануне
type RemindersConfig struct {
	Enabled  bool   `toml:"enabled" yaml:"enabled"`
	Schedule string `toml:"schedule" yaml:"schedule"`
}

// AdminConfig доступ к административным маршрутам
type AdminConfig struct {
	Token string `toml:"token" yaml:"token"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "scheduling",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "scheduling-service",
		},
		Calendar: CalendarConfig{
			Timezone:            "UTC",
			StartHour:           domain.DefaultStartHour,
			EndHour:             domain.DefaultEndHour,
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			BufferMinutes:       domain.DefaultBufferMinutes,
			WorkingDays:         []string{"mon", "tue", "wed", "thu", "fri"},
			MaxAdvanceDays:      domain.DefaultMaxAdvanceDays,
		},
		Services: ServicesConfig{
			ConsultationMinutes: domain.DefaultConsultationMinutes,
			MeasurementMinutes:  domain.DefaultMeasurementMinutes,
			InstallationMinutes: domain.DefaultInstallationMinutes,
		},
		Booking: BookingConfig{
			TxTimeoutMs:      5000,
			MaxRetries:       3,
			RetryBackoffMs:   50,
			DefaultRangeDays: domain.DefaultAvailabilityRangeDays,
			MaxRangeDays:     domain.DefaultMaxRangeDays,

			RateLimitPerMinute: 5,
			RateLimitBurst:     5,
		},
		Notifier: NotifierConfig{
			Timeout: 5,
		},
		Reminders: RemindersConfig{
			Schedule: "0 17 * * *",
		},
	}
}

// Load загружает конфигурацию из файла
// Формат определяется по расширению: .yaml/.yml - YAML, иначе TOML
// Незаданные поля остаются со значениями по умолчанию
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse toml config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabasePassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvAdminToken); v != "" {
		c.Admin.Token = v
	}
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort))
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverPgx, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q must be one of postgres, pgx, memory", c.Database.Driver))
	}

	if c.Booking.MaxRangeDays <= 0 {
		errs = append(errs, errors.New("booking.max_range_days must be positive"))
	}
	if c.Booking.DefaultRangeDays <= 0 || c.Booking.DefaultRangeDays > c.Booking.MaxRangeDays {
		errs = append(errs, errors.New("booking.default_range_days must be in 1..max_range_days"))
	}
	if c.Booking.RateLimitPerMinute < 0 || c.Booking.RateLimitBurst < 0 {
		errs = append(errs, errors.New("booking.rate_limit_per_minute and rate_limit_burst must not be negative"))
	}
	if c.Booking.MaxRetries < 0 {
		errs = append(errs, errors.New("booking.max_retries must not be negative"))
	}

	if c.Notifier.Enabled && c.Notifier.URL == "" {
		errs = append(errs, errors.New("notifier.url is required when notifier is enabled"))
	}

	if _, err := c.CalendarConfig(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// DSN строка подключения к PostgreSQL (формат key=value понимают и lib/pq, и pgx)
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// TxTimeout таймаут транзакции бронирования
func (b BookingConfig) TxTimeout() time.Duration {
	return time.Duration(b.TxTimeoutMs) * time.Millisecond
}

// RetryBackoff начальная задержка между повторами
func (b BookingConfig) RetryBackoff() time.Duration {
	return time.Duration(b.RetryBackoffMs) * time.Millisecond
}

// CalendarConfig строит доменную конфигурацию календаря
func (c *Config) CalendarConfig() (domain.CalendarConfig, error) {
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return domain.CalendarConfig{}, fmt.Errorf("calendar.timezone %q: %w", c.Calendar.Timezone, err)
	}

	days := make([]time.Weekday, 0, len(c.Calendar.WorkingDays))
	for _, s := range c.Calendar.WorkingDays {
		wd, err := ParseWeekday(s)
		if err != nil {
			return domain.CalendarConfig{}, err
		}
		days = append(days, wd)
	}

	return domain.NewCalendarConfig(
		c.Calendar.StartHour,
		c.Calendar.EndHour,
		c.Calendar.SlotDurationMinutes,
		c.Calendar.BufferMinutes,
		days,
		loc,
		map[domain.ServiceType]int{
			domain.ServiceConsultation: c.Services.ConsultationMinutes,
			domain.ServiceMeasurement:  c.Services.MeasurementMinutes,
			domain.ServiceInstallation: c.Services.InstallationMinutes,
		},
		c.Calendar.MaxAdvanceDays,
	)
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday разбирает день недели ("mon" или "monday", регистр не важен)
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return wd, nil
}
