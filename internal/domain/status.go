package domain

import (
	"fmt"
	"strings"
)

// Status состояние жизненного цикла записи
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// transitions таблица переходов. Состояния без ключа терминальные
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// AllStatuses все состояния в порядке жизненного цикла
var AllStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ParseStatus разбирает статус без учёта регистра
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range AllStatuses {
		if candidate == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsValid возвращает true для известного статуса
func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// IsActive возвращает true для всех состояний, кроме CANCELLED
func (s Status) IsActive() bool {
	return s != StatusCancelled
}

// IsTerminal возвращает true, если из состояния нет переходов
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo разрешен ли переход s -> target
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// NextStatuses состояния, достижимые из s за один шаг
func (s Status) NextStatuses() []Status {
	next := make([]Status, len(transitions[s]))
	copy(next, transitions[s])
	return next
}

// ValidateTransition возвращает ErrInvalidTransition для запрещенного перехода s -> target
func ValidateTransition(from, to Status) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
