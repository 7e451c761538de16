package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/KNICEX/watchlist-agent/internal/service/notification"
)

var _ notification.WebhookService = (*Service)(nil)

// Service posts JSON payloads to webhook endpoints.
type Service struct {
	cli *http.Client
}

func NewService() *Service {
	return &Service{
		cli: &http.Client{Timeout: 15 * time.Second},
	}
}

func (svc *Service) Send(ctx context.Context, url string, data map[string]any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := svc.cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
