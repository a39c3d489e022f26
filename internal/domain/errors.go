package domain

import (
	"errors"
	"fmt"
)

// Категории ошибок для всех слоёв. Конкретные ошибки оборачивают одну из них,
// вызывающий код проверяет категорию через errors.Is
var (
	// ErrValidation некорректные входные данные, не повторяется
	ErrValidation = errors.New("validation error")

	// ErrConflict слот занят другой активной записью
	ErrConflict = errors.New("slot conflict")

	// ErrBlocked день закрыт администратором
	ErrBlocked = errors.New("date blocked")

	// ErrInvalidTransition недопустимый переход статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPersistence сбой хранилища или транспорта
	ErrPersistence = errors.New("persistence error")

	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")
)

// Ошибки валидации
var (
	ErrInvalidRange       = fmt.Errorf("%w: end date precedes start date", ErrValidation)
	ErrRangeTooLong       = fmt.Errorf("%w: date range too long", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidTime        = fmt.Errorf("%w: invalid time", ErrValidation)
	ErrInvalidServiceType = fmt.Errorf("%w: invalid service type", ErrValidation)
	ErrInvalidStatus      = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidCustomer    = fmt.Errorf("%w: invalid customer", ErrValidation)
	ErrInvalidLocation    = fmt.Errorf("%w: invalid location", ErrValidation)
	ErrDateHasPassed      = fmt.Errorf("%w: date has passed", ErrValidation)
	ErrDateTooFar         = fmt.Errorf("%w: date is too far in the future", ErrValidation)
	ErrNotWorkingDay      = fmt.Errorf("%w: not a working day", ErrValidation)
	ErrOffGrid            = fmt.Errorf("%w: start time is not a slot boundary", ErrValidation)
	ErrOutsideHours       = fmt.Errorf("%w: appointment does not fit in business hours", ErrValidation)
	ErrInvalidCalendar    = fmt.Errorf("%w: invalid calendar config", ErrValidation)
)

// BlockedDateError причина, по которой день закрыт
type BlockedDateError struct {
	Day    string
	Reason string
}

func (e *BlockedDateError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", ErrBlocked.Error(), e.Day)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrBlocked.Error(), e.Day, e.Reason)
}

// Unwrap для errors.Is(err, ErrBlocked)
func (e *BlockedDateError) Unwrap() error {
	return ErrBlocked
}
