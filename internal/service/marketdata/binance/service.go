package binance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KNICEX/watchlist-agent/internal/service/marketdata"
	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

var _ marketdata.Provider = (*Service)(nil)

// Service serves crypto pairs from Binance spot endpoints. Watchlist symbols
// use the dashed form (BTC-USDT); Binance wants the compact one (BTCUSDT).
type Service struct {
	cli *binance.Client
}

func NewService(cli *binance.Client) *Service {
	return &Service{cli: cli}
}

func toBinanceSymbol(symbol string) string {
	return strings.ReplaceAll(strings.ToUpper(symbol), "-", "")
}

func (svc *Service) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := svc.cli.NewListPricesService().Symbol(toBinanceSymbol(symbol)).Do(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if len(prices) == 0 {
		return decimal.Zero, fmt.Errorf("symbol %s not found", symbol)
	}
	return decimal.NewFromString(prices[0].Price)
}

var binanceIntervals = map[marketdata.Interval]string{
	marketdata.Interval4h: "4h",
	marketdata.Interval1d: "1d",
	marketdata.Interval1w: "1w",
}

func (svc *Service) GetCandles(ctx context.Context, symbol string, interval marketdata.Interval, rng marketdata.Range) []marketdata.Candle {
	candles, err := svc.fetchCandles(ctx, symbol, interval, rng)
	if err != nil {
		slog.Warn("failed to fetch candles", "symbol", symbol, "interval", interval, "error", err)
		return nil
	}
	return candles
}

func (svc *Service) fetchCandles(ctx context.Context, symbol string, interval marketdata.Interval, rng marketdata.Range) ([]marketdata.Candle, error) {
	token, ok := binanceIntervals[interval]
	if !ok {
		return nil, fmt.Errorf("unsupported interval %s", interval)
	}
	end := time.Now()
	start := end.Add(-rng.Duration())
	klines, err := svc.cli.NewKlinesService().
		Symbol(toBinanceSymbol(symbol)).
		Interval(token).
		StartTime(start.UnixMilli()).
		EndTime(end.UnixMilli()).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	return convertKlines(klines), nil
}

// convertKlines maps Binance klines to candles. Binance serves prices as
// strings; a row that fails to parse is dropped, not defaulted.
func convertKlines(klines []*binance.Kline) []marketdata.Candle {
	candles := make([]marketdata.Candle, 0, len(klines))
	for _, k := range klines {
		open, errOpen := decimal.NewFromString(k.Open)
		high, errHigh := decimal.NewFromString(k.High)
		low, errLow := decimal.NewFromString(k.Low)
		closePrice, errClose := decimal.NewFromString(k.Close)
		if errOpen != nil || errHigh != nil || errLow != nil || errClose != nil {
			continue
		}
		candles = append(candles, marketdata.Candle{
			Time:  time.UnixMilli(k.OpenTime).UTC(),
			Open:  open,
			High:  high,
			Low:   low,
			Close: closePrice,
		})
	}
	return candles
}
