package complete_appointment

import (
	"time"

	commissionModels "github.com/m04kA/SMC-SalonService/internal/service/commission/models"
	completeAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/complete_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/money"
)

// CompleteAppointmentRequest HTTP request model
type CompleteAppointmentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	Installments  int    `json:"installments"`
}

// CompleteAppointmentResponse HTTP response model
type CompleteAppointmentResponse struct {
	AppointmentID  string                               `json:"appointmentId"`
	ProfessionalID string                               `json:"professionalId"`
	Status         string                               `json:"status"`
	CompletedAt    string                               `json:"completedAt"`
	ServicesTotal  money.View                           `json:"servicesTotal"`
	EntryID        int64                                `json:"entryId"`
	Commission     *commissionModels.CommissionResponse `json:"commission"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CompleteAppointmentRequest) ToUseCaseRequest(appointmentID string) *completeAppointment.Request {
	return &completeAppointment.Request{
		AppointmentID: appointmentID,
		PaymentMethod: r.PaymentMethod,
		Installments:  r.Installments,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeAppointment.Response) *CompleteAppointmentResponse {
	commission := commissionModels.FromDomainResult(resp.Commission, resp.Payment)
	commission.AppointmentID = &resp.AppointmentID
	commission.ProfessionalID = &resp.ProfessionalID
	commission.Source = commissionModels.SourceRecorded

	return &CompleteAppointmentResponse{
		AppointmentID:  resp.AppointmentID,
		ProfessionalID: resp.ProfessionalID,
		Status:         string(resp.Status),
		CompletedAt:    resp.CompletedAt.Format(time.RFC3339),
		ServicesTotal:  money.NewView(resp.ServicesTotal),
		EntryID:        resp.EntryID,
		Commission:     commission,
	}
}
