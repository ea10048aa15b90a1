package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sampleEvent() *AppointmentCompleted {
	return NewAppointmentCompleted(&domain.CommissionEntry{
		AppointmentID:   "apt-1",
		ProfessionalID:  "pro-1",
		PaymentMethod:   domain.PaymentMethodPix,
		Installments:    1,
		ServicesTotal:   decimal.NewFromInt(100),
		GrossCommission: decimal.NewFromInt(40),
		CardFeeAmount:   decimal.Zero,
		AdminFeeAmount:  decimal.NewFromInt(4),
		NetCommission:   decimal.NewFromInt(36),
	}, time.Date(2030, 6, 3, 15, 0, 0, 0, time.UTC))
}

func TestWebhookPublisher_Delivers(t *testing.T) {
	var got AppointmentCompleted
	var headers http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	p := NewWebhookPublisher(server.URL, "s3cret", time.Second, nopLogger{})
	event := sampleEvent()

	require.NoError(t, p.PublishAppointmentCompleted(context.Background(), event))

	assert.Equal(t, EventAppointmentCompleted, headers.Get("X-Event-Type"))
	assert.Equal(t, "s3cret", headers.Get("X-Webhook-Secret"))
	assert.Equal(t, event.EventID, got.EventID)
	assert.Equal(t, "36.00", got.NetCommission)
	assert.Equal(t, "0.00", got.CardFeeAmount)
}

func TestWebhookPublisher_RejectsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewWebhookPublisher(server.URL, "", time.Second, nopLogger{})

	err := p.PublishAppointmentCompleted(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestNewAppointmentCompleted(t *testing.T) {
	event := sampleEvent()

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "pix", event.PaymentMethod)
	assert.Equal(t, "100.00", event.ServicesTotal)
	assert.Equal(t, "40.00", event.GrossCommission)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishAppointmentCompleted(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}
