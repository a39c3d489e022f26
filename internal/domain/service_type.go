package domain

import (
	"fmt"
	"strings"
)

// ServiceType тип визита. Пересечения проверяются в пределах одного типа услуги
type ServiceType string

const (
	ServiceConsultation ServiceType = "CONSULTATION"
	ServiceMeasurement  ServiceType = "MEASUREMENT"
	ServiceInstallation ServiceType = "INSTALLATION"
)

// AllServiceTypes поддерживаемые типы услуг
var AllServiceTypes = []ServiceType{
	ServiceConsultation,
	ServiceMeasurement,
	ServiceInstallation,
}

// ParseServiceType разбирает тип услуги без учёта регистра
func ParseServiceType(s string) (ServiceType, error) {
	candidate := ServiceType(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range AllServiceTypes {
		if candidate == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidServiceType, s)
}

// IsValid возвращает true для известного типа услуги
func (t ServiceType) IsValid() bool {
	_, err := ParseServiceType(string(t))
	return err == nil
}

// Title название для людей, например "Measurement"
func (t ServiceType) Title() string {
	s := strings.ToLower(string(t))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
