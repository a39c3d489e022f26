package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler запускает Job по cron расписанию
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// NewScheduler создает планировщик; schedule в стандартном 5-польном формате, например "0 17 * * *"
func NewScheduler(schedule string, loc *time.Location, job *Job, logger Logger) (*Scheduler, error) {
	adapter := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(adapter),
		cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
	)

	if _, err := c.AddFunc(schedule, job.runScheduled); err != nil {
		return nil, fmt.Errorf("invalid reminders schedule %q: %w", schedule, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Run запускает планировщик и блокируется до отмены ctx, затем дожидается текущего запуска
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.logger.Info("Reminders: scheduler started")

	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.logger.Info("Reminders: scheduler stopped")
	return nil
}

// cronLogger адаптер Logger под интерфейс cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// cron пишет каждую итерацию планировщика, это шум
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("Reminders: %s: %v %v", msg, err, keysAndValues)
}
