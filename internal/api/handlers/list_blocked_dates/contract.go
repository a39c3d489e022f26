package list_blocked_dates

import (
	"context"

	"github.com/m04kA/PGC-SchedulingService/internal/service/blocked_dates/models"
)

type BlockedDateService interface {
	List(ctx context.Context, req *models.ListBlockedDatesRequest) (*models.BlockedDateListResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
