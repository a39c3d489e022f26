package notifier

import "context"

// Sender доставляет одно событие получателю
type Sender interface {
	Send(ctx context.Context, event *Event) error
}

// MetricsRecorder счётчик отправленных уведомлений
type MetricsRecorder interface {
	ObserveNotification(event string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
