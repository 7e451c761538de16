package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KNICEX/watchlist-agent/internal/service/marketdata"
	"github.com/shopspring/decimal"
)

var _ marketdata.Provider = (*Service)(nil)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"
	// Yahoo rejects requests without a browser-ish user agent.
	userAgent = "Mozilla/5.0 (compatible; watchlist-agent/1.0)"
)

type Option func(svc *Service)

// WithBaseURL points the service at a different endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(svc *Service) {
		svc.baseURL = baseURL
	}
}

func WithHTTPClient(cli *http.Client) Option {
	return func(svc *Service) {
		svc.cli = cli
	}
}

// Service fetches quotes and chart candles from the public Yahoo Finance
// endpoints. Symbols use Yahoo's own notation (AAPL, BTC-USD, EURUSD=X).
type Service struct {
	baseURL string
	cli     *http.Client
}

func NewService(opts ...Option) *Service {
	svc := &Service{
		baseURL: defaultBaseURL,
		cli:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string   `json:"symbol"`
			RegularMarketPrice *float64 `json:"regularMarketPrice"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteResponse"`
}

func (svc *Service) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", svc.baseURL, url.QueryEscape(symbol))
	var res quoteResponse
	if err := svc.getJSON(ctx, endpoint, &res); err != nil {
		return decimal.Zero, fmt.Errorf("quote %s: %w", symbol, err)
	}
	if res.QuoteResponse.Error != nil {
		return decimal.Zero, fmt.Errorf("quote %s: %s", symbol, res.QuoteResponse.Error.Description)
	}
	if len(res.QuoteResponse.Result) == 0 || res.QuoteResponse.Result[0].RegularMarketPrice == nil {
		return decimal.Zero, fmt.Errorf("quote %s: no market price in response", symbol)
	}
	return decimal.NewFromFloat(*res.QuoteResponse.Result[0].RegularMarketPrice), nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
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
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s&indicators=quote&includeTimestamps=true",
		svc.baseURL, url.PathEscape(symbol), rng, interval)
	var res chartResponse
	if err := svc.getJSON(ctx, endpoint, &res); err != nil {
		return nil, err
	}
	if res.Chart.Error != nil {
		return nil, fmt.Errorf("chart error: %s", res.Chart.Error.Description)
	}
	if len(res.Chart.Result) == 0 || len(res.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("empty chart result")
	}

	result := res.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	candles := make([]marketdata.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		open := at(quote.Open, i)
		high := at(quote.High, i)
		low := at(quote.Low, i)
		closePrice := at(quote.Close, i)
		// Yahoo pads unclosed periods with nulls; such rows are dropped.
		if open == nil || high == nil || low == nil || closePrice == nil {
			continue
		}
		candles = append(candles, marketdata.Candle{
			Time:  time.Unix(ts, 0).UTC(),
			Open:  decimal.NewFromFloat(*open),
			High:  decimal.NewFromFloat(*high),
			Low:   decimal.NewFromFloat(*low),
			Close: decimal.NewFromFloat(*closePrice),
		})
	}
	return candles, nil
}

func at(vals []*float64, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}

func (svc *Service) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := svc.cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
