package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sterkbouw_quotes/internal/domain/entities"
	"sterkbouw_quotes/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type webhookMessage struct {
	Event     string            `json:"event"`
	Recipient string            `json:"recipient"`
	Payload   map[string]string `json:"payload,omitempty"`
	SentAt    string            `json:"sent_at"`
}

// WebhookDispatcher posts notification events to the configured webhook.
// Delivery is fire-and-forget from the caller's perspective: errors are
// returned so the use case can record a warning, but nothing retries here.
type WebhookDispatcher struct {
	client     *http.Client
	webhookURL string
	logger     *zap.Logger
}

var _ interfaces.INotificationDispatcher = (*WebhookDispatcher)(nil)

func NewWebhookDispatcher(webhookURL string, timeout time.Duration, logger *zap.Logger) *WebhookDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookDispatcher{
		client:     &http.Client{Timeout: timeout},
		webhookURL: webhookURL,
		logger:     logger,
	}
}

func (d *WebhookDispatcher) Send(ctx context.Context, event entities.NotificationEvent, recipient string, payload map[string]string) error {
	if d.webhookURL == "" {
		d.logger.Debug("notification webhook not configured, dropping event",
			zap.String("event", string(event)))
		return nil
	}

	body, err := json.Marshal(webhookMessage{
		Event:     string(event),
		Recipient: recipient,
		Payload:   payload,
		SentAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Warn("notification send failed", zap.String("event", string(event)), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		err := fmt.Errorf("notification webhook returned status %d", resp.StatusCode)
		d.logger.Warn("notification rejected", zap.String("event", string(event)), zap.Error(err))
		return err
	}

	d.logger.Info("notification sent",
		zap.String("event", string(event)),
		zap.String("recipient", recipient))
	return nil
}
