package smtp

import (
	"context"

	"github.com/KNICEX/watchlist-agent/internal/service/notification"
	"gopkg.in/gomail.v2"
)

var _ notification.EmailService = (*Service)(nil)

// Service delivers mail through a single SMTP account, SSL on port 465 for
// Gmail-style providers.
type Service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(dialer *gomail.Dialer, from string) *Service {
	return &Service{
		dialer: dialer,
		from:   from,
	}
}

func (svc *Service) SendText(ctx context.Context, to, subject, body string) error {
	return svc.send(ctx, to, subject, "text/plain", body)
}

func (svc *Service) SendHTML(ctx context.Context, to, subject, body string) error {
	return svc.send(ctx, to, subject, "text/html", body)
}

// send blocks for the whole SMTP conversation; gomail has no context
// support, so cancellation is only honored between sends.
func (svc *Service) send(ctx context.Context, to, subject, contentType, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", svc.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody(contentType, body)
	return svc.dialer.DialAndSend(m)
}
