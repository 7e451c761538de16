package entity

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Instrument is one watched asset and its alert configuration.
// Thresholds are optional and evaluated independently of each other.
type Instrument struct {
	Symbol     string           `json:"symbol"`
	AlertAbove *decimal.Decimal `json:"alert_above,omitempty"`
	AlertBelow *decimal.Decimal `json:"alert_below,omitempty"`
	// Email overrides the process-wide alert recipient for this asset.
	Email       string           `json:"email,omitempty"`
	LastPrice   *decimal.Decimal `json:"last_price,omitempty"`
	LastUpdated *time.Time       `json:"last_updated,omitempty"`
}

// Watchlist is the persisted watchlist document.
type Watchlist struct {
	Assets []Instrument `json:"assets"`
}

// Normalize upper-cases symbols, drops entries without a symbol and keeps
// only the first occurrence of a duplicated symbol.
func (w Watchlist) Normalize() Watchlist {
	assets := lo.Map(w.Assets, func(asset Instrument, _ int) Instrument {
		asset.Symbol = strings.ToUpper(strings.TrimSpace(asset.Symbol))
		return asset
	})
	assets = lo.Reject(assets, func(asset Instrument, _ int) bool {
		return asset.Symbol == ""
	})
	w.Assets = lo.UniqBy(assets, func(asset Instrument) string {
		return asset.Symbol
	})
	return w
}
