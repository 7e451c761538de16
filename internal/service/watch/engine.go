package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/KNICEX/watchlist-agent/internal/entity"
	"github.com/KNICEX/watchlist-agent/internal/repo"
	"github.com/KNICEX/watchlist-agent/internal/service/marketdata"
	"github.com/KNICEX/watchlist-agent/internal/store"
	"github.com/shopspring/decimal"
)

const (
	DefaultCooldown       = 24 * time.Hour
	DefaultQuoteTimeout   = 15 * time.Second
	DefaultHistoryTimeout = 20 * time.Second
)

// Engine evaluates the watchlist against live prices: one RunPass per
// scheduler tick, at most one notification per (symbol, direction) per
// cooldown window.
type Engine struct {
	quoteSvc   marketdata.QuoteService
	historySvc marketdata.HistoryService
	historyW   *store.HistoryWriter
	notifier   Notifier
	auditRepo  repo.NotificationRepo

	defaultRecipient string
	cooldown         time.Duration
	quoteTimeout     time.Duration
	historyTimeout   time.Duration
}

type Option func(e *Engine)

func WithNotifier(notifier Notifier) Option {
	return func(e *Engine) {
		e.notifier = notifier
	}
}

// WithHistory enables per-symbol chart snapshots, fetched from svc and
// written by w on every pass.
func WithHistory(svc marketdata.HistoryService, w *store.HistoryWriter) Option {
	return func(e *Engine) {
		e.historySvc = svc
		e.historyW = w
	}
}

// WithAudit records every delivered alert through r, best effort.
func WithAudit(r repo.NotificationRepo) Option {
	return func(e *Engine) {
		e.auditRepo = r
	}
}

// WithDefaultRecipient sets the recipient for instruments without their own
// email override.
func WithDefaultRecipient(addr string) Option {
	return func(e *Engine) {
		e.defaultRecipient = addr
	}
}

func WithCooldown(d time.Duration) Option {
	return func(e *Engine) {
		e.cooldown = d
	}
}

func WithQuoteTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.quoteTimeout = d
	}
}

func WithHistoryTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.historyTimeout = d
	}
}

func NewEngine(quoteSvc marketdata.QuoteService, opts ...Option) *Engine {
	e := &Engine{
		quoteSvc:       quoteSvc,
		notifier:       consoleNotifier{},
		cooldown:       DefaultCooldown,
		quoteTimeout:   DefaultQuoteTimeout,
		historyTimeout: DefaultHistoryTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunPass evaluates every instrument once against a fresh quote. It never
// fails as a whole: per-symbol errors are logged and isolated, and the
// returned state reflects everything that did succeed. The input ledger is
// not mutated.
func (e *Engine) RunPass(ctx context.Context, instruments []entity.Instrument, ledger entity.Ledger, now time.Time) PassResult {
	res := PassResult{
		Instruments: make([]entity.Instrument, 0, len(instruments)),
		Ledger:      ledger.Clone(),
	}

	for _, inst := range instruments {
		if inst.Symbol == "" {
			res.Instruments = append(res.Instruments, inst)
			continue
		}

		price, err := e.fetchPrice(ctx, inst.Symbol)
		if err != nil {
			// Stored price and ledger entries stay as they were.
			slog.Error("failed to fetch price", "symbol", inst.Symbol, "error", err)
			res.FetchFailures++
			res.Instruments = append(res.Instruments, inst)
			continue
		}

		inst.LastPrice = &price
		seen := now
		inst.LastUpdated = &seen

		e.refreshHistory(ctx, inst.Symbol)

		e.evaluate(ctx, inst, entity.DirectionAbove, price, now, &res)
		e.evaluate(ctx, inst, entity.DirectionBelow, price, now, &res)

		res.Instruments = append(res.Instruments, inst)
	}
	return res
}

// evaluate handles one threshold direction for one instrument. Each
// direction fires independently; a price satisfying both thresholds sends
// two notifications.
func (e *Engine) evaluate(ctx context.Context, inst entity.Instrument, dir entity.Direction, price decimal.Decimal, now time.Time, res *PassResult) {
	threshold := inst.AlertAbove
	crossed := func(t decimal.Decimal) bool { return price.GreaterThanOrEqual(t) }
	if dir == entity.DirectionBelow {
		threshold = inst.AlertBelow
		crossed = func(t decimal.Decimal) bool { return price.LessThanOrEqual(t) }
	}
	if threshold == nil || !crossed(*threshold) {
		return
	}
	if !e.notifyEligible(res.Ledger.LastNotified(inst.Symbol, dir), now) {
		return
	}

	alert := Alert{
		Symbol:    inst.Symbol,
		Direction: dir,
		Threshold: *threshold,
		Price:     price,
		Recipient: e.recipient(inst),
		At:        now,
	}
	if err := e.notifier.Notify(ctx, alert); err != nil {
		// Ledger stays untouched so the next eligible pass retries.
		slog.Error("failed to deliver alert", "symbol", inst.Symbol, "direction", dir, "error", err)
		res.DeliveryFailures++
		return
	}

	res.Ledger.SetNotified(inst.Symbol, dir, now)
	res.Sent = append(res.Sent, alert)
	e.audit(ctx, alert)
	slog.Info("alert sent", "symbol", inst.Symbol, "direction", dir,
		"price", price, "threshold", *threshold, "recipient", alert.Recipient)
}

// notifyEligible reports whether a crossing may notify given the stored
// last-notified value. Absent and unparsable values both count as never
// notified.
func (e *Engine) notifyEligible(last string, now time.Time) bool {
	if last == "" {
		return true
	}
	t, err := time.Parse(time.RFC3339, last)
	if err != nil {
		return true
	}
	return now.Sub(t) >= e.cooldown
}

func (e *Engine) recipient(inst entity.Instrument) string {
	if inst.Email != "" {
		return inst.Email
	}
	return e.defaultRecipient
}

func (e *Engine) fetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	qctx, cancel := context.WithTimeout(ctx, e.quoteTimeout)
	defer cancel()
	return e.quoteSvc.GetPrice(qctx, symbol)
}

// refreshHistory rebuilds the per-symbol chart snapshot. Best effort: a
// failure here never affects price updates or alerting.
func (e *Engine) refreshHistory(ctx context.Context, symbol string) {
	if e.historySvc == nil || e.historyW == nil {
		return
	}
	series := make(map[marketdata.Interval][]marketdata.Candle, len(marketdata.DefaultWindows))
	for _, w := range marketdata.DefaultWindows {
		hctx, cancel := context.WithTimeout(ctx, e.historyTimeout)
		series[w.Interval] = e.historySvc.GetCandles(hctx, symbol, w.Interval, w.Range)
		cancel()
	}
	if err := e.historyW.Save(symbol, series); err != nil {
		slog.Warn("failed to save history snapshot", "symbol", symbol, "error", err)
	}
}

func (e *Engine) audit(ctx context.Context, alert Alert) {
	if e.auditRepo == nil {
		return
	}
	_, err := e.auditRepo.Create(ctx, entity.NotificationRecord{
		Symbol:    alert.Symbol,
		Direction: string(alert.Direction),
		Threshold: alert.Threshold.String(),
		Price:     alert.Price.String(),
		Recipient: alert.Recipient,
		SentAt:    alert.At,
	})
	if err != nil {
		slog.Error("failed to record notification", "symbol", alert.Symbol, "error", err)
	}
}
