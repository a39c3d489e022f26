package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	blockedDateRepo "github.com/m04kA/PGC-SchedulingService/internal/infra/storage/blocked_date"
)

// BlockedDateRepository in-memory реализация репозитория заблокированных дней
type BlockedDateRepository struct {
	store *Store
}

// NewBlockedDateRepository создает репозиторий поверх общего хранилища
func NewBlockedDateRepository(store *Store) *BlockedDateRepository {
	return &BlockedDateRepository{store: store}
}

func (r *BlockedDateRepository) key(day time.Time) string {
	return day.In(r.store.loc).Format(domain.DateFormat)
}

// Add блокирует день
func (r *BlockedDateRepository) Add(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error) {
	err := r.store.write(ctx, func(st *state) error {
		k := r.key(b.Day)
		if _, exists := st.blocked[k]; exists {
			return fmt.Errorf("%w: %s", blockedDateRepo.ErrAlreadyBlocked, k)
		}
		b.CreatedAt = r.store.now().In(r.store.loc)
		st.blocked[k] = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Remove снимает блокировку дня
func (r *BlockedDateRepository) Remove(ctx context.Context, day time.Time) error {
	return r.store.write(ctx, func(st *state) error {
		k := r.key(day)
		if _, exists := st.blocked[k]; !exists {
			return blockedDateRepo.ErrBlockedDateNotFound
		}
		delete(st.blocked, k)
		return nil
	})
}

// Get возвращает блокировку дня
func (r *BlockedDateRepository) Get(ctx context.Context, day time.Time) (*domain.BlockedDate, error) {
	var result *domain.BlockedDate
	err := r.store.read(ctx, func(st *state) error {
		b, ok := st.blocked[r.key(day)]
		if !ok {
			return blockedDateRepo.ErrBlockedDateNotFound
		}
		result = &b
		return nil
	})
	return result, err
}

// ListInRange заблокированные дни в [from, to], упорядоченные по дню
func (r *BlockedDateRepository) ListInRange(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error) {
	var lo, hi string
	if from != nil {
		lo = r.key(*from)
	}
	if to != nil {
		hi = r.key(*to)
	}

	result := make([]*domain.BlockedDate, 0)
	err := r.store.read(ctx, func(st *state) error {
		for k, b := range st.blocked {
			if lo != "" && k < lo {
				continue
			}
			if hi != "" && k > hi {
				continue
			}
			b := b
			result = append(result, &b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Day.Before(result[j].Day) })
	return result, nil
}
