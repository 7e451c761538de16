package marketdata

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

var _ Provider = (*Router)(nil)

// cryptoQuotes are the quote-currency suffixes routed to the crypto provider.
var cryptoQuotes = []string{"USDT", "USDC", "BUSD"}

// Router dispatches per symbol: pairs quoted in a crypto stablecoin go to
// the crypto provider, everything else to the default provider.
type Router struct {
	def    Provider
	crypto Provider
}

func NewRouter(def Provider, crypto Provider) *Router {
	return &Router{
		def:    def,
		crypto: crypto,
	}
}

// provider picks the backend for a symbol. Pairs like BTC-USDT belong to
// the crypto provider; BTC-USD and stock tickers stay with the default one.
func (r *Router) provider(symbol string) Provider {
	if r.crypto == nil {
		return r.def
	}
	upper := strings.ToUpper(symbol)
	for _, quote := range cryptoQuotes {
		if strings.HasSuffix(upper, "-"+quote) {
			return r.crypto
		}
	}
	return r.def
}

func (r *Router) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return r.provider(symbol).GetPrice(ctx, symbol)
}

func (r *Router) GetCandles(ctx context.Context, symbol string, interval Interval, rng Range) []Candle {
	return r.provider(symbol).GetCandles(ctx, symbol, interval, rng)
}
