package blocked_dates

import (
	"fmt"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

var (
	// ErrBlockedDateNotFound возвращается, когда день не заблокирован
	ErrBlockedDateNotFound = fmt.Errorf("blocked date %w", domain.ErrNotFound)

	// ErrAlreadyBlocked возвращается при повторной блокировке дня
	ErrAlreadyBlocked = fmt.Errorf("%w: date already blocked", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid blocked date", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("service: %w", domain.ErrPersistence)
)
