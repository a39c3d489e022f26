package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// EventReminder событие напоминания за день до визита
const EventReminder = "appointment.reminder"

// Job рассылает напоминания о записях на следующий календарный день
type Job struct {
	appointmentRepo AppointmentRepository
	notifier        Notifier
	loc             *time.Location
	timeout         time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewJob создает задачу напоминаний; loc - часовой пояс календаря
func NewJob(appointmentRepo AppointmentRepository, notifier Notifier, loc *time.Location, logger Logger) *Job {
	return &Job{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		loc:             loc,
		timeout:         30 * time.Second,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Run отправляет напоминания по записям на завтра и возвращает их количество
// Напоминания получают только SCHEDULED и CONFIRMED записи
func (j *Job) Run(ctx context.Context) (int, error) {
	now := j.timeProvider.Now().In(j.loc)
	y, m, d := now.Date()
	tomorrow := time.Date(y, m, d+1, 0, 0, 0, 0, j.loc)

	list, err := j.appointmentRepo.List(ctx, domain.AppointmentsFilter{From: &tomorrow, To: &tomorrow})
	if err != nil {
		return 0, fmt.Errorf("%w: reminders - failed to list appointments: %v", domain.ErrPersistence, err)
	}

	sent := 0
	for _, a := range list {
		if a.Status != domain.StatusScheduled && a.Status != domain.StatusConfirmed {
			continue
		}
		j.notifier.Dispatch(EventReminder, a)
		sent++
	}

	j.logger.Info("Reminders: dispatched %d reminders for %s", sent, tomorrow.Format(domain.DateFormat))
	return sent, nil
}

// runScheduled точка входа для планировщика: свой контекст с таймаутом, ошибка только логируется
func (j *Job) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.Run(ctx); err != nil {
		j.logger.Error("Reminders: %v", err)
	}
}
