package appointment

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/PGC-SchedulingService/pkg/psqlbuilder"
)

const historyTable = "appointment_status_history"

// InsertHistory добавляет запись в журнал смены статусов (только append)
func (r *Repository) InsertHistory(ctx context.Context, change *domain.StatusChange) (*domain.StatusChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(historyTable).
		Columns("appointment_id", "from_status", "to_status", "reason", "actor_id", "changed_at").
		Values(change.AppointmentID, change.FromStatus, change.ToStatus, change.Reason, change.ActorID, change.ChangedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: InsertHistory - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&change.ID); err != nil {
		return nil, fmt.Errorf("%w: InsertHistory - execute insert: %w", ErrExecQuery, err)
	}

	return change, nil
}

// ListHistory возвращает журнал статусов записи в хронологическом порядке
func (r *Repository) ListHistory(ctx context.Context, appointmentID uuid.UUID) ([]*domain.StatusChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "appointment_id", "from_status", "to_status", "reason", "actor_id", "changed_at").
		From(historyTable).
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("changed_at", "id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHistory - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	history := make([]*domain.StatusChange, 0)
	for rows.Next() {
		var c domain.StatusChange
		if err := rows.Scan(&c.ID, &c.AppointmentID, &c.FromStatus, &c.ToStatus, &c.Reason, &c.ActorID, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("%w: ListHistory - scan row: %w", ErrScanRow, err)
		}
		c.ChangedAt = c.ChangedAt.In(r.loc)
		history = append(history, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHistory - rows iteration: %w", ErrScanRow, err)
	}

	return history, nil
}
