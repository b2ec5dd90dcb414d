package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// webhookPayload is the JSON body POSTed to push and SMS gateways.
type webhookPayload struct {
	Kind     string `json:"kind"`
	EntityID string `json:"entity_id"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	Priority string `json:"priority"`
}

// WebhookAdapter delivers notifications by POSTing JSON to a gateway
// endpoint. One instance serves one channel (push or SMS).
type WebhookAdapter struct {
	channel model.Channel
	url     string
	client  *resty.Client
}

// NewWebhookAdapter creates an adapter for the given channel and endpoint.
// The token, when non-empty, is sent as a bearer credential.
func NewWebhookAdapter(channel model.Channel, url, token string) *WebhookAdapter {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2)
	if token != "" {
		client.SetAuthToken(token)
	}
	return &WebhookAdapter{channel: channel, url: url, client: client}
}

// Channel implements Adapter.
func (a *WebhookAdapter) Channel() model.Channel {
	return a.channel
}

// Send implements Adapter.
func (a *WebhookAdapter) Send(ctx context.Context, n Notification) error {
	if a.url == "" {
		return fmt.Errorf("%s webhook not configured", a.channel)
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{
			Kind:     string(n.Kind),
			EntityID: n.EntityID,
			Title:    n.Title,
			Body:     n.Body,
			Priority: string(n.Priority),
		}).
		Post(a.url)
	if err != nil {
		return fmt.Errorf("posting to %s webhook: %w", a.channel, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s webhook returned %s", a.channel, resp.Status())
	}
	return nil
}
