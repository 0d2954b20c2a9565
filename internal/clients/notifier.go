package clients

import (
	"context"
	"net/http"
	"time"
	"venued/internal/models"
	"venued/internal/providers"
	"venued/internal/structures"
)

const (
	NotificationReminder     = "checkin_reminder"
	NotificationAutoCheckout = "auto_checkout"
	NotificationExposure     = "venue_exposure"
)

type notification struct {
	Kind    string    `json:"kind"`
	Venue   string    `json:"venue,omitempty"`
	Count   int       `json:"count,omitempty"`
	SentAt  time.Time `json:"sent_at"`
	Message string    `json:"message"`
}

// WebhookNotifier logs every notification and, when a webhook is configured,
// posts it there. Delivery failures are logged and dropped.
type WebhookNotifier struct {
	client  *http.Client
	url     string
	logger  providers.Logger
	timeout time.Duration
}

func NewWebhookNotifier(conf *structures.Config, client *http.Client, logger providers.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		client:  client,
		url:     conf.Notifier.WebhookUrl,
		logger:  logger,
		timeout: 10 * time.Second,
	}
}

func (n *WebhookNotifier) NotifyReminder(ctx context.Context, record models.VenueRecord) {
	n.send(ctx, notification{
		Kind:    NotificationReminder,
		Venue:   record.Name,
		Message: "You are still checked in to " + record.Name,
	})
}

func (n *WebhookNotifier) NotifyAutoCheckout(ctx context.Context, record models.VenueRecord) {
	n.send(ctx, notification{
		Kind:    NotificationAutoCheckout,
		Venue:   record.Name,
		Message: "You were automatically checked out of " + record.Name,
	})
}

func (n *WebhookNotifier) NotifyExposure(ctx context.Context, records []models.VenueRecord) {
	n.send(ctx, notification{
		Kind:    NotificationExposure,
		Count:   len(records),
		Message: "A place you visited was reported as a possible exposure site",
	})
}

func (n *WebhookNotifier) send(ctx context.Context, msg notification) {
	msg.SentAt = time.Now().UTC()
	n.logger.Infof(providers.TypeApp, "Notification %s: %s", msg.Kind, msg.Message)
	if n.url == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err := postJSON(ctx, n.client, n.url, nil, msg); err != nil {
		n.logger.Warnf(providers.TypeApp, "Notification %s not delivered: %s", msg.Kind, err)
	}
}
