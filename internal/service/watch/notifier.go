package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/KNICEX/watchlist-agent/internal/service/notification"
)

// consoleNotifier logs alerts instead of delivering them, the default for
// dry runs and local development.
type consoleNotifier struct {
}

func NewConsoleNotifier() Notifier {
	return consoleNotifier{}
}

func (c consoleNotifier) Notify(ctx context.Context, alert Alert) error {
	slog.Info("price alert", "symbol", alert.Symbol, "direction", alert.Direction,
		"threshold", alert.Threshold, "price", alert.Price, "recipient", alert.Recipient)
	return nil
}

var _ Notifier = (*EmailNotifier)(nil)

// EmailNotifier delivers alerts to the per-alert recipient through an
// EmailService.
type EmailNotifier struct {
	emailSvc notification.EmailService
}

func NewEmailNotifier(emailSvc notification.EmailService) *EmailNotifier {
	return &EmailNotifier{
		emailSvc: emailSvc,
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, alert Alert) error {
	return n.emailSvc.SendText(ctx, alert.Recipient, alert.Subject(), alert.Body())
}

var _ Notifier = (*WebhookNotifier)(nil)

// WebhookNotifier posts alerts to a fixed webhook URL.
type WebhookNotifier struct {
	webhookSvc notification.WebhookService
	url        string
}

func NewWebhookNotifier(webhookSvc notification.WebhookService, url string) *WebhookNotifier {
	return &WebhookNotifier{
		webhookSvc: webhookSvc,
		url:        url,
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, alert Alert) error {
	return n.webhookSvc.Send(ctx, n.url, map[string]any{
		"subject":   alert.Subject(),
		"body":      alert.Body(),
		"symbol":    alert.Symbol,
		"direction": string(alert.Direction),
		"threshold": alert.Threshold.String(),
		"price":     alert.Price.String(),
		"at":        alert.At.UTC().Format(time.RFC3339),
	})
}
