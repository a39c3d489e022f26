// Package memory is an in-process ledger with the same contracts as the
// PostgreSQL repositories. A single mutex serializes transactions; a failed
// transaction restores the snapshot taken when it began.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

type state struct {
	appointments map[uuid.UUID]domain.Appointment
	history      []domain.StatusChange
	blocked      map[string]domain.BlockedDate
	nextHistory  int64
}

func (s *state) clone() *state {
	c := &state{
		appointments: make(map[uuid.UUID]domain.Appointment, len(s.appointments)),
		history:      make([]domain.StatusChange, len(s.history)),
		blocked:      make(map[string]domain.BlockedDate, len(s.blocked)),
		nextHistory:  s.nextHistory,
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	copy(c.history, s.history)
	for k, v := range s.blocked {
		c.blocked[k] = v
	}
	return c
}

// Store общее состояние in-memory хранилища
type Store struct {
	mu    sync.Mutex
	state *state
	loc   *time.Location
	now   func() time.Time
}

// NewStore создает пустое хранилище
func NewStore(loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{
		state: &state{
			appointments: make(map[uuid.UUID]domain.Appointment),
			blocked:      make(map[string]domain.BlockedDate),
			nextHistory:  1,
		},
		loc: loc,
		now: time.Now,
	}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	held, _ := ctx.Value(txKey{}).(bool)
	return held
}

// read выполняет fn под мьютексом, если вызов не внутри транзакции
func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if inTx(ctx) {
		return fn(s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// write как read, но вне транзакции изменения применяются атомарно (autocommit)
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if inTx(ctx) {
		return fn(s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(s.state); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// TxManager менеджер транзакций in-memory хранилища
type TxManager struct {
	store *Store
}

// NewTxManager создает менеджер транзакций
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Do выполняет fn атомарно: при ошибке состояние откатывается
// Вложенные вызовы присоединяются к внешней транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.state.clone()
	defer func() {
		if p := recover(); p != nil {
			s.state = snapshot
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// DoReadOnly выполняет fn под тем же мьютексом
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
