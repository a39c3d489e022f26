package blocked_date

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

var testLoc = time.FixedZone("EST", -5*3600)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db, testLoc), mock
}

func TestAdd(t *testing.T) {
	repo, mock := newRepo(t)
	day := time.Date(2026, 12, 25, 0, 0, 0, 0, testLoc)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO blocked_dates \\(day,reason\\) VALUES \\(\\$1,\\$2\\) RETURNING created_at").
		WithArgs("2026-12-25", "Christmas").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	b, err := repo.Add(context.Background(), &domain.BlockedDate{Day: day, Reason: "Christmas"})
	require.NoError(t, err)
	assert.True(t, now.Equal(b.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdd_Duplicate(t *testing.T) {
	repo, mock := newRepo(t)
	day := time.Date(2026, 12, 25, 0, 0, 0, 0, testLoc)

	mock.ExpectQuery("INSERT INTO blocked_dates").WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Add(context.Background(), &domain.BlockedDate{Day: day})
	assert.ErrorIs(t, err, ErrAlreadyBlocked)
}

func TestRemove(t *testing.T) {
	repo, mock := newRepo(t)
	day := time.Date(2026, 12, 25, 0, 0, 0, 0, testLoc)

	mock.ExpectExec("DELETE FROM blocked_dates WHERE day = \\$1").
		WithArgs("2026-12-25").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM blocked_dates").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Remove(context.Background(), day))
	assert.ErrorIs(t, repo.Remove(context.Background(), day), ErrBlockedDateNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT day, reason, created_at FROM blocked_dates").
		WillReturnRows(sqlmock.NewRows([]string{"day", "reason", "created_at"}))

	_, err := repo.Get(context.Background(), time.Date(2026, 12, 25, 0, 0, 0, 0, testLoc))
	assert.ErrorIs(t, err, ErrBlockedDateNotFound)
}

func TestListInRange(t *testing.T) {
	repo, mock := newRepo(t)
	from := time.Date(2026, 12, 1, 0, 0, 0, 0, testLoc)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, testLoc)
	now := time.Now()

	mock.ExpectQuery("SELECT day, reason, created_at FROM blocked_dates WHERE day >= \\$1 AND day <= \\$2 ORDER BY day").
		WithArgs("2026-12-01", "2026-12-31").
		WillReturnRows(sqlmock.NewRows([]string{"day", "reason", "created_at"}).
			AddRow(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), "Christmas", now).
			AddRow(time.Date(2026, 12, 26, 0, 0, 0, 0, time.UTC), "Boxing Day", now))

	list, err := repo.ListInRange(context.Background(), &from, &to)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "2026-12-25", list[0].DayKey())
	assert.Equal(t, testLoc, list[0].Day.Location())
	assert.Equal(t, "Boxing Day", list[1].Reason)

	idx := domain.NewBlockedDays(list)
	_, ok := idx.Lookup(time.Date(2026, 12, 25, 0, 0, 0, 0, testLoc))
	assert.True(t, ok)
}
