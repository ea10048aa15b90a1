package complete_appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateRequest валидирует входные данные и нормализует способ оплаты
func validateRequest(req *Request) (domain.PaymentSelection, error) {
	if _, err := uuid.Parse(req.AppointmentID); err != nil {
		return domain.PaymentSelection{}, fmt.Errorf("%w: appointmentId must be a UUID", ErrInvalidInput)
	}

	payment, err := domain.NewPaymentSelection(req.PaymentMethod, req.Installments)
	if err != nil {
		return domain.PaymentSelection{}, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	}

	return payment, nil
}
