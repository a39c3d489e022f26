package get_availability

import (
	"fmt"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// ErrInternal возвращается при ошибках чтения хранилища
var ErrInternal = fmt.Errorf("get_availability: %w", domain.ErrPersistence)
