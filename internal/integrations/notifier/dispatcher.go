package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// Dispatcher асинхронная отправка уведомлений (fire-and-forget)
// Каждая отправка идёт в своей горутине со своим контекстом: отмена запроса клиента
// не прерывает уведомление, а ошибка отправки только логируется
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	metrics MetricsRecorder
	logger  Logger
	now     func() time.Time

	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// NewDispatcher создает диспетчер; sender == nil означает, что уведомления выключены
func NewDispatcher(sender Sender, timeout time.Duration, metrics MetricsRecorder, logger Logger) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Dispatch ставит событие в отправку и сразу возвращает управление
func (d *Dispatcher) Dispatch(event string, a *domain.Appointment) {
	if d == nil || d.sender == nil || a == nil {
		return
	}

	payload := NewEvent(event, a, d.now())

	// Add только под mu и до начала Wait
	d.mu.Lock()
	if d.closing {
		d.mu.Unlock()
		d.logger.Warn("Notifier: shutting down, %s for appointment id=%s dropped", event, payload.Appointment.ID)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		err := d.sender.Send(ctx, payload)
		if d.metrics != nil {
			d.metrics.ObserveNotification(event, err)
		}
		if err != nil {
			d.logger.Error("Notifier: failed to deliver %s for appointment id=%s: %v", event, payload.Appointment.ID, err)
			return
		}
		d.logger.Info("Notifier: delivered %s for appointment id=%s", event, payload.Appointment.ID)
	}()
}

// Wait дожидается незавершённых отправок (graceful shutdown)
// После вызова Wait новые события не принимаются
func (d *Dispatcher) Wait(ctx context.Context) error {
	if d == nil {
		return nil
	}

	d.mu.Lock()
	d.closing = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
