package schedule

import (
	"context"
	"log/slog"
	"time"
)

// IntervalRunner drives a task on a fixed cadence: run to completion, sleep
// the interval, run again. Sleeping after completion keeps runs from ever
// overlapping, which single-writer state files depend on.
type IntervalRunner struct {
	interval time.Duration
}

func NewIntervalRunner(interval time.Duration) *IntervalRunner {
	return &IntervalRunner{interval: interval}
}

// Run loops until ctx is cancelled and returns the cancellation cause. Task
// errors are logged, never fatal: the next iteration is the retry.
func (r *IntervalRunner) Run(ctx context.Context, task Task) error {
	for {
		if err := task.Run(ctx); err != nil {
			slog.Error("task run failed", "task", task.Name(), "error", err)
		}

		timer := time.NewTimer(r.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
