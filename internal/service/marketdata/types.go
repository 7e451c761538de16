package marketdata

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Interval is a candle interval token.
type Interval string

const (
	Interval4h Interval = "4h"
	Interval1d Interval = "1d"
	Interval1w Interval = "1wk"
)

// Range is how far back a candle request reaches.
type Range string

const (
	Range1mo Range = "1mo"
	Range3mo Range = "3mo"
	Range1y  Range = "1y"
)

// Duration converts the range token to a time span, for providers that take
// an explicit start time instead of a range parameter.
func (r Range) Duration() time.Duration {
	switch r {
	case Range3mo:
		return 90 * 24 * time.Hour
	case Range1y:
		return 365 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// Window pairs a candle interval with the range used to populate its chart.
type Window struct {
	Interval Interval
	Range    Range
}

// DefaultWindows are the chart windows refreshed for every watched symbol.
var DefaultWindows = []Window{
	{Interval: Interval4h, Range: Range1mo},
	{Interval: Interval1d, Range: Range3mo},
	{Interval: Interval1w, Range: Range1y},
}

// Candle is one OHLC point. All fields are required; providers drop points
// with missing members instead of defaulting them.
type Candle struct {
	Time  time.Time
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal
}

// QuoteService returns the current market price for a symbol.
type QuoteService interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// HistoryService returns recent candles for a symbol. It never errors: any
// failure yields an empty slice, so a chart gap cannot break an evaluation
// pass.
type HistoryService interface {
	GetCandles(ctx context.Context, symbol string, interval Interval, rng Range) []Candle
}

// Provider serves both quotes and history for the symbols it owns.
type Provider interface {
	QuoteService
	HistoryService
}
