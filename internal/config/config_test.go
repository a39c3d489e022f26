package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[server]
http_port = 9090

[database]
driver = "pgx"
host = "db"
dbname = "appointments"

[calendar]
timezone = "UTC"
start_hour = 8
end_hour = 18
slot_duration_minutes = 60
buffer_minutes = 15
working_days = ["mon", "wednesday", "Fri"]

[booking]
max_retries = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, DriverPgx, cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port, "defaults survive partial files")
	assert.Equal(t, 5, cfg.Booking.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.Booking.TxTimeout())
	assert.Equal(t, 5, cfg.Booking.RateLimitPerMinute)

	cal, err := cfg.CalendarConfig()
	require.NoError(t, err)
	assert.Equal(t, 8, cal.StartHour)
	assert.Equal(t, 15, cal.BufferMinutes)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, cal.WorkingDays)

	d, err := cal.DurationFor(domain.ServiceInstallation)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, d)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
database:
  driver: memory
services:
  consultation_minutes: 30
reminders:
  enabled: true
  schedule: "0 18 * * *"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Services.ConsultationMinutes)
	assert.True(t, cfg.Reminders.Enabled)
	assert.Equal(t, "0 18 * * *", cfg.Reminders.Schedule)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvAdminToken, "secret")
	t.Setenv(EnvDatabasePassword, "pw")

	cfg, err := Load(writeFile(t, "config.toml", ""))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Admin.Token)
	assert.Contains(t, cfg.Database.DSN(), "password=pw")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "[database]\ndriver = \"mysql\"\n"},
		{"bad timezone", "[calendar]\ntimezone = \"Mars/Olympus\"\n"},
		{"bad weekday", "[calendar]\nworking_days = [\"funday\"]\n"},
		{"bad hours", "[calendar]\nstart_hour = 18\nend_hour = 9\n"},
		{"notifier without url", "[notifier]\nenabled = true\n"},
		{"negative rate limit", "[booking]\nrate_limit_per_minute = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.toml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
