package models

import (
	"time"

	"github.com/m04kA/PGC-SchedulingService/internal/domain"
)

// AddBlockedDateRequest запрос на блокировку дня
type AddBlockedDateRequest struct {
	Date   string `json:"date"` // "2026-12-25"
	Reason string `json:"reason"`
}

// ListBlockedDatesRequest запрос списка блокировок, границы включительно
type ListBlockedDatesRequest struct {
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}

// BlockedDateResponse заблокированный день
type BlockedDateResponse struct {
	Date      string    `json:"date"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddBlockedDateResponse ответ на блокировку дня
// AffectedAppointments - активные записи на этот день, их нужно перенести вручную
type AddBlockedDateResponse struct {
	BlockedDateResponse
	AffectedAppointments []string `json:"affectedAppointments"`
}

// BlockedDateListResponse список заблокированных дней
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) BlockedDateResponse {
	return BlockedDateResponse{
		Date:      b.DayKey(),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список domain моделей в DTO
func FromDomainBlockedDateList(list []*domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{
		BlockedDates: make([]BlockedDateResponse, 0, len(list)),
	}
	for _, b := range list {
		if b != nil {
			resp.BlockedDates = append(resp.BlockedDates, FromDomainBlockedDate(b))
		}
	}
	return resp
}
