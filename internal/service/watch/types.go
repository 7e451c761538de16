package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/KNICEX/watchlist-agent/internal/entity"
	"github.com/shopspring/decimal"
)

// Alert is one threshold crossing selected for notification.
type Alert struct {
	Symbol    string           `json:"symbol"`
	Direction entity.Direction `json:"direction"`
	Threshold decimal.Decimal  `json:"threshold"`
	Price     decimal.Decimal  `json:"price"`
	Recipient string           `json:"recipient"`
	At        time.Time        `json:"at"`
}

// Comparator is the textual operator of the crossed threshold.
func (a Alert) Comparator() string {
	if a.Direction == entity.DirectionBelow {
		return "<="
	}
	return ">="
}

// Subject renders the notification subject line.
func (a Alert) Subject() string {
	return fmt.Sprintf("Price alert: %s %s %s", a.Symbol, a.Comparator(), a.Threshold)
}

// Body renders the plain-text notification body.
func (a Alert) Body() string {
	verb := "reached or rose above"
	if a.Direction == entity.DirectionBelow {
		verb = "reached or fell below"
	}
	return fmt.Sprintf("%s traded at %s, which %s the configured alert level of %s.\n\nUTC time: %s\n",
		a.Symbol, a.Price, verb, a.Threshold, a.At.UTC().Format(time.RFC3339))
}

// Notifier delivers a rendered alert. A non-nil error means the alert was
// not delivered; the ledger stays untouched so the next eligible pass
// retries.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// PassResult is the outcome of one evaluation pass.
type PassResult struct {
	Instruments []entity.Instrument
	Ledger      entity.Ledger
	Sent        []Alert

	FetchFailures    int
	DeliveryFailures int
}
