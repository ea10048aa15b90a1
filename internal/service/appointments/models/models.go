package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/money"
)

// ErrInvalidService возвращается при некорректной услуге
var ErrInvalidService = errors.New("invalid appointment service")

// AddServiceRequest запрос на добавление услуги в запись
type AddServiceRequest struct {
	ServiceID    string          `json:"serviceId"`
	ServiceName  string          `json:"serviceName"`
	PriceCharged decimal.Decimal `json:"priceCharged"`
}

// ToDomain проверяет и конвертирует услугу
func (r *AddServiceRequest) ToDomain() (domain.AppointmentService, error) {
	if strings.TrimSpace(r.ServiceID) == "" {
		return domain.AppointmentService{}, fmt.Errorf("%w: serviceId is required", ErrInvalidService)
	}
	if strings.TrimSpace(r.ServiceName) == "" {
		return domain.AppointmentService{}, fmt.Errorf("%w: serviceName is required", ErrInvalidService)
	}
	if r.PriceCharged.IsNegative() {
		return domain.AppointmentService{}, fmt.Errorf("%w: priceCharged must not be negative", ErrInvalidService)
	}
	return domain.AppointmentService{
		ServiceID:    r.ServiceID,
		ServiceName:  strings.TrimSpace(r.ServiceName),
		PriceCharged: r.PriceCharged,
	}, nil
}

// ServiceResponse услуга записи
type ServiceResponse struct {
	ServiceID    string     `json:"serviceId"`
	ServiceName  string     `json:"serviceName"`
	PriceCharged money.View `json:"priceCharged"`
}

// AppointmentResponse запись
type AppointmentResponse struct {
	ID             string            `json:"id"`
	ProfessionalID string            `json:"professionalId"`
	ClientName     string            `json:"clientName"`
	StartAt        time.Time         `json:"startAt"`
	EndAt          time.Time         `json:"endAt"`
	Status         string            `json:"status"`
	Services       []ServiceResponse `json:"services"`
	Total          money.View        `json:"total"`
	PaymentMethod  *string           `json:"paymentMethod,omitempty"`
	Installments   *int              `json:"installments,omitempty"`
	CompletedAt    *time.Time        `json:"completedAt,omitempty"`
}

// FromDomain конвертирует запись в ответ
func FromDomain(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:             a.ID,
		ProfessionalID: a.ProfessionalID,
		ClientName:     a.ClientName,
		StartAt:        a.StartAt,
		EndAt:          a.EndAt,
		Status:         string(a.Status),
		Services:       make([]ServiceResponse, 0, len(a.Services)),
		Total:          money.NewView(a.TotalCharged()),
		Installments:   a.Installments,
		CompletedAt:    a.CompletedAt,
	}
	if a.PaymentMethod != nil {
		method := string(*a.PaymentMethod)
		resp.PaymentMethod = &method
	}
	for _, s := range a.Services {
		resp.Services = append(resp.Services, ServiceResponse{
			ServiceID:    s.ServiceID,
			ServiceName:  s.ServiceName,
			PriceCharged: money.NewView(s.PriceCharged),
		})
	}
	return resp
}
