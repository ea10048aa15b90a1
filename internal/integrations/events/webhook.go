package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookPublisher отправляет события POST-запросом на внешний URL
type WebhookPublisher struct {
	url        string
	secret     string
	httpClient *http.Client
	log        Logger
}

// NewWebhookPublisher создает новый экземпляр webhook-публикатора
// secret передается в заголовке X-Webhook-Secret, если не пустой
func NewWebhookPublisher(url, secret string, timeout time.Duration, log Logger) *WebhookPublisher {
	return &WebhookPublisher{
		url:    url,
		secret: secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// PublishAppointmentCompleted отправляет событие завершения записи
func (p *WebhookPublisher) PublishAppointmentCompleted(ctx context.Context, event *AppointmentCompleted) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", EventAppointmentCompleted)
	req.Header.Set("X-Event-Id", event.EventID)
	if p.secret != "" {
		req.Header.Set("X-Webhook-Secret", p.secret)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	p.log.Info("Delivered %s event id=%s to webhook", EventAppointmentCompleted, event.EventID)
	return nil
}

// Close ничего не держит открытым
func (p *WebhookPublisher) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
