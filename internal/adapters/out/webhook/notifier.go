// Package webhook delivers pipeline notifications to the surrounding system
// over HTTP. Notification rendering (emails, portal messages) happens on the
// receiving side; the pipeline only posts the template name and payload.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"freightflow/internal/core/ports"

	"github.com/google/uuid"
)

// Notifier posts notifications to a single webhook endpoint. With an empty
// endpoint it runs in log-only mode, which is what local development uses.
type Notifier struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewNotifier creates a webhook notifier. The HTTP client carries no timeout
// of its own; callers bound each send through the context.
func NewNotifier(endpoint string, logger *slog.Logger) *Notifier {
	return &Notifier{
		endpoint: endpoint,
		client:   &http.Client{},
		logger:   logger.With("component", "webhook_notifier"),
	}
}

type notificationBody struct {
	MessageID    string         `json:"message_id"`
	AudienceKind string         `json:"audience_kind"`
	RecipientID  string         `json:"recipient_id"`
	Template     string         `json:"template"`
	Payload      map[string]any `json:"payload"`
}

// Notify delivers one notification. Returns an error when the endpoint is
// unreachable or answers with a non-2xx status.
func (n *Notifier) Notify(ctx context.Context, audience ports.Audience, template string, payload map[string]any) (ports.DeliveryReceipt, error) {
	receipt := ports.DeliveryReceipt{
		MessageID: uuid.NewString(),
		SentAt:    time.Now(),
	}

	if n.endpoint == "" {
		n.logger.InfoContext(ctx, "Notification (log-only mode)",
			"template", template, "recipient", audience.RecipientID)
		return receipt, nil
	}

	body, err := json.Marshal(notificationBody{
		MessageID:    receipt.MessageID,
		AudienceKind: string(audience.Kind),
		RecipientID:  audience.RecipientID,
		Template:     template,
		Payload:      payload,
	})
	if err != nil {
		return ports.DeliveryReceipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.DeliveryReceipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return ports.DeliveryReceipt{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.DeliveryReceipt{}, fmt.Errorf("notification endpoint answered %d for template %s", resp.StatusCode, template)
	}

	return receipt, nil
}
