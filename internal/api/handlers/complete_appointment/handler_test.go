package complete_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	completeAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/complete_appointment"
)

const appointmentID = "a1c2e3f4-5b6a-4c7d-8e9f-0a1b2c3d4e5f"

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *completeAppointment.Request
	resp *completeAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *completeAppointment.Request) (*completeAppointment.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(id, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/complete", strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"appointmentId": id})
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &completeAppointment.Response{
		AppointmentID:  appointmentID,
		ProfessionalID: "7b1f3c8e-2a51-4c1a-9d51-0d7c8a9e1f01",
		Status:         domain.AppointmentStatusCompleted,
		Payment:        domain.PaymentSelection{Method: domain.PaymentMethodPix, Installments: 1},
		CompletedAt:    time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		ServicesTotal:  decimal.RequireFromString("100"),
		Commission: domain.CommissionResult{
			GrossCommission: decimal.RequireFromString("40"),
			AdminFeePercent: decimal.RequireFromString("10"),
			AdminFeeAmount:  decimal.RequireFromString("4"),
			NetCommission:   decimal.RequireFromString("36"),
		},
		EntryID: 7,
	}}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(appointmentID, `{"paymentMethod":"pix","installments":0}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, appointmentID, uc.got.AppointmentID)
	assert.Equal(t, "pix", uc.got.PaymentMethod)

	var body CompleteAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "completed", body.Status)
	assert.Equal(t, int64(7), body.EntryID)
	assert.Equal(t, "100.00", body.ServicesTotal.Value)
	assert.Equal(t, "36.00", body.Commission.NetCommission.Value)
	assert.Equal(t, "recorded", body.Commission.Source)
	assert.Equal(t, "2026-03-10T15:00:00Z", body.CompletedAt)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", id: "42", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "bad body", id: appointmentID, body: `{`, wantStatus: http.StatusBadRequest},
		{name: "invalid payment", id: appointmentID, body: `{"paymentMethod":"boleto"}`,
			err: completeAppointment.ErrInvalidPayment, wantStatus: http.StatusBadRequest},
		{name: "not found", id: appointmentID, body: `{"paymentMethod":"cash"}`,
			err: completeAppointment.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "not confirmed", id: appointmentID, body: `{"paymentMethod":"cash"}`,
			err: completeAppointment.ErrNotConfirmed, wantStatus: http.StatusConflict},
		{name: "already completed", id: appointmentID, body: `{"paymentMethod":"cash"}`,
			err: completeAppointment.ErrAlreadyCompleted, wantStatus: http.StatusConflict},
		{name: "no services", id: appointmentID, body: `{"paymentMethod":"cash"}`,
			err: completeAppointment.ErrNoServices, wantStatus: http.StatusUnprocessableEntity},
		{name: "internal", id: appointmentID, body: `{"paymentMethod":"cash"}`,
			err: completeAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.id, tt.body))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
