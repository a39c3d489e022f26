package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/PGC-SchedulingService/pkg/pgerr"
	"github.com/m04kA/PGC-SchedulingService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"service_type",
	"scheduled_date",
	"time_start",
	"time_end",
	"status",
	"customer_name",
	"customer_email",
	"customer_phone",
	"location",
	"notes",
	"cancellation_reason",
	"confirmed_at",
	"started_at",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на визит
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория
// loc - часовой пояс бизнес-календаря, в нём возвращаются даты и время
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// Create сохраняет новую запись
// Пересечение с активной записью того же типа услуги (EXCLUDE ограничение) возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"service_type",
			"scheduled_date",
			"time_start",
			"time_end",
			"status",
			"customer_name",
			"customer_email",
			"customer_phone",
			"location",
			"notes",
		).
		Values(
			a.ID,
			a.ServiceType,
			a.ScheduledDate.Format(domain.DateFormat),
			a.TimeStart,
			a.TimeEnd,
			a.Status,
			a.Customer.Name,
			a.Customer.Email,
			a.Customer.Phone,
			a.Location,
			a.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if pgerr.IsExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create - %s %s", ErrOverlap, a.ServiceType, a.Range().Label())
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.In(r.loc)
	a.UpdatedAt = updatedAt.In(r.loc)

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает запись по ID с блокировкой строки до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, fmt.Errorf("%w: GetByIDForUpdate", ErrNoTransaction)
	}
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// LockSlotDay берет транзакционную advisory-блокировку на пару (тип услуги, день)
// Сериализует конкурентные бронирования одного дня, блокировка снимается при commit/rollback
func (r *Repository) LockSlotDay(ctx context.Context, serviceType domain.ServiceType, day time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockSlotDay", ErrNoTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	key := fmt.Sprintf("%s:%s:%s", table, serviceType, day.In(r.loc).Format(domain.DateFormat))
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("%w: LockSlotDay - acquire lock: %w", ErrExecQuery, err)
	}
	return nil
}

// FindOverlapping возвращает активные записи того же типа услуги, пересекающие [start, end)
func (r *Repository) FindOverlapping(ctx context.Context, serviceType domain.ServiceType, span domain.TimeRange) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"service_type": serviceType}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"time_start": span.End}).
		Where(squirrel.Gt{"time_end": span.Start}).
		OrderBy("time_start").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// List возвращает записи по фильтру, упорядоченные по времени начала
//
// Примеры:
//
// 1. Активные записи на замер за неделю:
//
//	st := domain.ServiceMeasurement
//	filter := domain.AppointmentsFilter{From: &monday, To: &friday, ServiceType: &st}
//
// 2. Все записи дня включая отменённые:
//
//	filter := domain.AppointmentsFilter{From: &day, To: &day, IncludeCancelled: true}
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("time_start", "id")

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"scheduled_date": filter.From.In(r.loc).Format(domain.DateFormat)})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"scheduled_date": filter.To.In(r.loc).Format(domain.DateFormat)})
	}
	if filter.ServiceType != nil {
		builder = builder.Where(squirrel.Eq{"service_type": *filter.ServiceType})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// UpdateStatus переводит запись из статуса from в статус to
// Обновление условное (WHERE status = from); если статус уже другой, возвращается ErrStatusChanged
// Соответствующая переходу временная метка (confirmed_at, started_at, ...) выставляется в at
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status, reason *string, at time.Time) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if col := timestampColumn(to); col != "" {
		builder = builder.Set(col, at)
	}
	if to == domain.StatusCancelled {
		builder = builder.Set("cancellation_reason", reason)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	a, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: UpdateStatus - id=%s expected %s", ErrStatusChanged, id, from)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return a, nil
}

// timestampColumn колонка времени перехода в статус
func timestampColumn(to domain.Status) string {
	switch to {
	case domain.StatusConfirmed:
		return "confirmed_at"
	case domain.StatusInProgress:
		return "started_at"
	case domain.StatusCompleted:
		return "completed_at"
	case domain.StatusCancelled:
		return "cancelled_at"
	default:
		return ""
	}
}

// scanAppointment сканирует одну запись
func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var scheduledDate time.Time

	err := row.Scan(
		&a.ID,
		&a.ServiceType,
		&scheduledDate,
		&a.TimeStart,
		&a.TimeEnd,
		&a.Status,
		&a.Customer.Name,
		&a.Customer.Email,
		&a.Customer.Phone,
		&a.Location,
		&a.Notes,
		&a.CancellationReason,
		&a.ConfirmedAt,
		&a.StartedAt,
		&a.CompletedAt,
		&a.CancelledAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// DATE приходит как полночь UTC, переносим день в часовой пояс календаря
	y, m, d := scheduledDate.UTC().Date()
	a.ScheduledDate = time.Date(y, m, d, 0, 0, 0, 0, r.loc)
	a.TimeStart = a.TimeStart.In(r.loc)
	a.TimeEnd = a.TimeEnd.In(r.loc)
	a.CreatedAt = a.CreatedAt.In(r.loc)
	a.UpdatedAt = a.UpdatedAt.In(r.loc)

	return &a, nil
}

// scanAppointments сканирует все строки результата
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows iteration: %w", ErrScanRow, err)
	}

	return appointments, nil
}
