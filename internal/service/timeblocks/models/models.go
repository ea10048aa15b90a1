package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CreateRequest запрос на создание блока времени
// Для повторяющихся блоков из StartAt/EndAt используется только время суток
type CreateRequest struct {
	ProfessionalID    string    `json:"professionalId"`
	Title             string    `json:"title"`
	StartAt           time.Time `json:"startAt"`
	EndAt             time.Time `json:"endAt"`
	IsRecurring       bool      `json:"isRecurring"`
	RecurrenceType    *string   `json:"recurrenceType,omitempty"`    // daily | weekly
	RecurrenceDays    []int     `json:"recurrenceDays,omitempty"`    // 0 = воскресенье
	RecurrenceEndDate *string   `json:"recurrenceEndDate,omitempty"` // YYYY-MM-DD, включительно
}

// TimeBlockResponse блок времени
type TimeBlockResponse struct {
	ID                string    `json:"id"`
	ProfessionalID    string    `json:"professionalId"`
	Title             string    `json:"title"`
	StartAt           time.Time `json:"startAt"`
	EndAt             time.Time `json:"endAt"`
	IsRecurring       bool      `json:"isRecurring"`
	RecurrenceType    *string   `json:"recurrenceType"`
	RecurrenceDays    []int     `json:"recurrenceDays"`
	RecurrenceEndDate *string   `json:"recurrenceEndDate"`
	CreatedAt         time.Time `json:"createdAt"`
}

// TimeBlockListResponse список блоков профессионала
type TimeBlockListResponse struct {
	Items []TimeBlockResponse `json:"items"`
}

// FromDomain конвертирует блок в ответ
func FromDomain(b *domain.TimeBlock) TimeBlockResponse {
	resp := TimeBlockResponse{
		ID:             b.ID,
		ProfessionalID: b.ProfessionalID,
		Title:          b.Title,
		StartAt:        b.StartAt,
		EndAt:          b.EndAt,
		IsRecurring:    b.IsRecurring(),
		CreatedAt:      b.CreatedAt,
	}

	if !b.IsRecurring() {
		return resp
	}

	kind := string(b.Recurrence.Kind())
	resp.RecurrenceType = &kind
	if b.Recurrence.Kind() == domain.RecurrenceWeekly {
		resp.RecurrenceDays = b.Recurrence.Days().Days()
	}
	if until := b.Recurrence.Until(); until != nil {
		s := until.Format(domain.DateFormat)
		resp.RecurrenceEndDate = &s
	}

	return resp
}

// FromDomainList конвертирует список блоков
func FromDomainList(blocks []*domain.TimeBlock) *TimeBlockListResponse {
	items := make([]TimeBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		items = append(items, FromDomain(b))
	}
	return &TimeBlockListResponse{Items: items}
}
