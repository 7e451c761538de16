package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KNICEX/watchlist-agent/internal/repo"
	"github.com/KNICEX/watchlist-agent/internal/schedule"
	"github.com/KNICEX/watchlist-agent/internal/store"
)

// Task loads the persisted state, runs one evaluation pass and saves the
// results back. It is the schedule.Task the runner drives.
type Task struct {
	engine    *Engine
	watchlist *store.WatchlistStore
	ledger    *store.LedgerStore
	auditRepo repo.NotificationRepo
}

type TaskOption func(t *Task)

// WithTaskAudit lets the pass summary include delivery counts from the
// audit trail.
func WithTaskAudit(r repo.NotificationRepo) TaskOption {
	return func(t *Task) {
		t.auditRepo = r
	}
}

func NewTask(engine *Engine, watchlist *store.WatchlistStore, ledger *store.LedgerStore, opts ...TaskOption) schedule.Task {
	task := &Task{
		engine:    engine,
		watchlist: watchlist,
		ledger:    ledger,
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}

func (t *Task) Run(ctx context.Context) error {
	watchlist, ok := t.watchlist.Load()
	if !ok {
		slog.Info("no stored watchlist, starting from an empty one")
	}
	ledger, _ := t.ledger.Load()

	now := time.Now().UTC()
	res := t.engine.RunPass(ctx, watchlist.Assets, ledger, now)

	watchlist.Assets = res.Instruments
	if err := t.watchlist.Save(watchlist); err != nil {
		return fmt.Errorf("save watchlist: %w", err)
	}
	if err := t.ledger.Save(res.Ledger); err != nil {
		return fmt.Errorf("save alert ledger: %w", err)
	}

	t.logPass(ctx, now, res)
	return nil
}

func (t *Task) logPass(ctx context.Context, now time.Time, res PassResult) {
	args := []any{
		"symbols", len(res.Instruments),
		"sent", len(res.Sent),
		"fetch_failures", res.FetchFailures,
		"delivery_failures", res.DeliveryFailures,
	}
	if t.auditRepo != nil {
		if count, err := t.auditRepo.CountSince(ctx, now.Add(-24*time.Hour)); err == nil {
			args = append(args, "sent_last_24h", count)
		}
	}
	slog.Info("pass complete", args...)
}

func (t *Task) Name() string {
	return "watchlist price alert task"
}
