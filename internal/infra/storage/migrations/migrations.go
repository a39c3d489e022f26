package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/PGC-SchedulingService/pkg/dbmetrics"
)

//go:embed *.sql
var files embed.FS

// ErrApply ошибка применения миграции
var ErrApply = errors.New("migrations: failed to apply migration")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Versions возвращает упорядоченный список встроенных миграций
func Versions() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		versions = append(versions, e.Name())
	}
	sort.Strings(versions)
	return versions, nil
}

// Up применяет все ещё не применённые миграции по порядку
// Возвращает количество применённых миграций
func Up(ctx context.Context, db dbmetrics.DBExecutor, logger Logger) (int, error) {
	versions, err := Versions()
	if err != nil {
		return 0, err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())`); err != nil {
		return 0, fmt.Errorf("%w: create schema_migrations: %w", ErrApply, err)
	}

	applied := 0
	for _, v := range versions {
		var exists bool
		if err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, v).Scan(&exists); err != nil {
			return applied, fmt.Errorf("%w: check %s: %w", ErrApply, v, err)
		}
		if exists {
			continue
		}

		body, err := files.ReadFile(v)
		if err != nil {
			return applied, err
		}

		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return applied, fmt.Errorf("%w: %s: %w", ErrApply, v, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, v); err != nil {
			return applied, fmt.Errorf("%w: record %s: %w", ErrApply, v, err)
		}

		logger.Info("migrations: applied %s", v)
		applied++
	}

	return applied, nil
}
