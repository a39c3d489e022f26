package blocked_date

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/PGC-SchedulingService/pkg/pgerr"
	"github.com/m04kA/PGC-SchedulingService/pkg/psqlbuilder"
)

const table = "blocked_dates"

// Repository репозиторий заблокированных дней
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// Add блокирует день
func (r *Repository) Add(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("day", "reason").
		Values(b.DayKey(), b.Reason).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt time.Time
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyBlocked, b.DayKey())
		}
		return nil, fmt.Errorf("%w: Add - execute insert: %w", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.In(r.loc)
	return b, nil
}

// Remove снимает блокировку дня
func (r *Repository) Remove(ctx context.Context, day time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"day": day.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Remove - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Remove - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Remove - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

// Get возвращает блокировку дня
func (r *Repository) Get(ctx context.Context, day time.Time) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day", "reason", "created_at").
		From(table).
		Where(squirrel.Eq{"day": day.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scan(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockedDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan row: %w", ErrScanRow, err)
	}

	return b, nil
}

// ListInRange возвращает заблокированные дни в диапазоне [from, to] включительно
// nil границы означают отсутствие ограничения
func (r *Repository) ListInRange(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("day", "reason", "created_at").
		From(table).
		OrderBy("day")

	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"day": from.Format(domain.DateFormat)})
	}
	if to != nil {
		builder = builder.Where(squirrel.LtOrEq{"day": to.Format(domain.DateFormat)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	list := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		b, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListInRange - scan row: %w", ErrScanRow, err)
		}
		list = append(list, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInRange - rows iteration: %w", ErrScanRow, err)
	}

	return list, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scan(row rowScanner) (*domain.BlockedDate, error) {
	var b domain.BlockedDate
	var day time.Time

	if err := row.Scan(&day, &b.Reason, &b.CreatedAt); err != nil {
		return nil, err
	}

	y, m, d := day.UTC().Date()
	b.Day = time.Date(y, m, d, 0, 0, 0, 0, r.loc)
	b.CreatedAt = b.CreatedAt.In(r.loc)

	return &b, nil
}
