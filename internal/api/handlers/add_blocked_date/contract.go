package add_blocked_date

import (
	"context"

	"github.com/m04kA/PGC-SchedulingService/internal/service/blocked_dates/models"
)

type BlockedDateService interface {
	Add(ctx context.Context, req *models.AddBlockedDateRequest) (*models.AddBlockedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
