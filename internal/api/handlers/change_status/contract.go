package change_status

import (
	"context"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
	changeStatus "github.com/m04kA/PGC-SchedulingService/internal/usecase/change_status"
)

type ChangeStatusUseCase interface {
	Execute(ctx context.Context, req *changeStatus.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
