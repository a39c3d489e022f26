package domain

import "time"

// Значения конфигурации по умолчанию
const (
	DefaultStartHour             = 9
	DefaultEndHour               = 17
	DefaultSlotDurationMinutes   = 120
	DefaultBufferMinutes         = 0
	DefaultAvailabilityRangeDays = 14
	DefaultMaxRangeDays          = 62
	DefaultMaxAdvanceDays        = 90

	DefaultConsultationMinutes = 60
	DefaultMeasurementMinutes  = 120
	DefaultInstallationMinutes = 240
)

// DefaultWorkingDays с понедельника по пятницу
var DefaultWorkingDays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// Ограничения бизнес-валидации
const (
	MinSlotDurationMinutes     = 15
	MaxSlotDurationMinutes     = 480 // 8 часов
	MaxCustomerNameLength      = 200
	MaxLocationLength          = 500
	MaxNotesLength             = 1000
	MaxReasonLength            = 500
	MaxBlockedDateReasonLength = 200
)

// Причины недоступности слота, показываемые клиенту
const (
	ReasonAlreadyBooked = "Already booked"
	ReasonDateHasPassed = "Date has passed"
	ReasonOutsideHours  = "Ends after business hours"
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
