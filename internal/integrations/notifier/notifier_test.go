package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	"github.com/m04kA/PGC-SchedulingService/pkg/logger"
)

func appointment() *domain.Appointment {
	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:            uuid.MustParse("7f1d0c2e-4b7a-4d0e-9a51-3c2f8b6d9e10"),
		ServiceType:   domain.ServiceMeasurement,
		ScheduledDate: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		TimeStart:     start,
		TimeEnd:       start.Add(2 * time.Hour),
		Status:        domain.StatusScheduled,
		Customer:      domain.Customer{Name: "Jane", Email: "jane@example.com", Phone: "555"},
		Location:      "12 Main St",
	}
}

type recordingMetrics struct {
	mu     sync.Mutex
	ok     int
	failed int
}

func (m *recordingMetrics) ObserveNotification(_ string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failed++
		return
	}
	m.ok++
}

func TestClient_Send(t *testing.T) {
	var received Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "appointment.scheduled", r.Header.Get("X-Event"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	err := client.Send(context.Background(), NewEvent("appointment.scheduled", appointment(), time.Now()))
	require.NoError(t, err)

	assert.Equal(t, "appointment.scheduled", received.Event)
	assert.Equal(t, "7f1d0c2e-4b7a-4d0e-9a51-3c2f8b6d9e10", received.Appointment.ID)
	assert.Equal(t, "2026-10-19", received.Appointment.ScheduledDate)
	assert.Equal(t, "09:00", received.Appointment.TimeStart)
	assert.Equal(t, "11:00", received.Appointment.TimeEnd)
}

func TestClient_SendNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewClient(server.URL, time.Second).Send(context.Background(), NewEvent("appointment.cancelled", appointment(), time.Now()))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	err := NewClient(server.URL, 20*time.Millisecond).Send(context.Background(), NewEvent("appointment.cancelled", appointment(), time.Now()))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestDispatcher_DeliversAsync(t *testing.T) {
	var (
		mu     sync.Mutex
		events []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, r.Header.Get("X-Event"))
	}))
	defer server.Close()

	m := &recordingMetrics{}
	d := NewDispatcher(NewClient(server.URL, time.Second), time.Second, m, logger.Nop())
	d.Dispatch("appointment.scheduled", appointment())
	d.Dispatch("appointment.confirmed", appointment())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Wait(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"appointment.scheduled", "appointment.confirmed"}, events)
	assert.Equal(t, 2, m.ok)
}

type failingSender struct{}

func (failingSender) Send(context.Context, *Event) error {
	return errors.New("connection refused")
}

func TestDispatcher_FailureIsSwallowed(t *testing.T) {
	m := &recordingMetrics{}
	d := NewDispatcher(failingSender{}, time.Second, m, logger.Nop())

	d.Dispatch("appointment.cancelled", appointment())
	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, 1, m.failed)
}

func TestDispatcher_Disabled(t *testing.T) {
	m := &recordingMetrics{}
	d := NewDispatcher(nil, time.Second, m, logger.Nop())

	d.Dispatch("appointment.scheduled", appointment())
	require.NoError(t, d.Wait(context.Background()))
	assert.Zero(t, m.ok+m.failed)

	var nilDispatcher *Dispatcher
	assert.NotPanics(t, func() { nilDispatcher.Dispatch("appointment.scheduled", appointment()) })
}

type countingSender struct {
	mu   sync.Mutex
	sent int
}

func (s *countingSender) Send(context.Context, *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent++
	return nil
}

func TestDispatcher_RejectsAfterWait(t *testing.T) {
	sender := &countingSender{}
	d := NewDispatcher(sender, time.Second, nil, logger.Nop())

	d.Dispatch("appointment.scheduled", appointment())
	require.NoError(t, d.Wait(context.Background()))

	d.Dispatch("appointment.reminder", appointment())
	require.NoError(t, d.Wait(context.Background()))

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Equal(t, 1, sender.sent)
}

func TestDispatcher_DispatchDuringWait(t *testing.T) {
	sender := &countingSender{}
	d := NewDispatcher(sender, time.Second, nil, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch("appointment.reminder", appointment())
		}()
	}

	require.NoError(t, d.Wait(context.Background()))
	wg.Wait()

	// всё, что принято до закрытия, доставлено к возврату Wait
	sender.mu.Lock()
	accepted := sender.sent
	sender.mu.Unlock()
	require.NoError(t, d.Wait(context.Background()))
	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Equal(t, accepted, sender.sent)
}
