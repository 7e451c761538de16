package notification

import "context"

// EmailService delivers a single message to a single recipient.
type EmailService interface {
	SendText(ctx context.Context, to, subject, body string) error
	SendHTML(ctx context.Context, to, subject, body string) error
}

// WebhookService posts a JSON payload to an endpoint.
type WebhookService interface {
	Send(ctx context.Context, url string, data map[string]any) error
}
