package entity

import "time"

// Direction of a threshold crossing. Together with a symbol it keys the
// alert ledger.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// LedgerEntry holds the last notification instant per direction as RFC3339
// strings. Values are only parsed at evaluation time, so one bad entry
// cannot poison the rest of the document.
type LedgerEntry struct {
	Above string `json:"above,omitempty"`
	Below string `json:"below,omitempty"`
}

func (e LedgerEntry) For(dir Direction) string {
	if dir == DirectionBelow {
		return e.Below
	}
	return e.Above
}

// Ledger is the persisted alert log document. Entries are written on
// successful delivery and never removed.
type Ledger struct {
	Alerts map[string]LedgerEntry `json:"alerts"`
}

func NewLedger() Ledger {
	return Ledger{Alerts: make(map[string]LedgerEntry)}
}

// LastNotified returns the stored timestamp for (symbol, dir), or the empty
// string when never notified.
func (l Ledger) LastNotified(symbol string, dir Direction) string {
	return l.Alerts[symbol].For(dir)
}

// SetNotified records now as the last notification instant for (symbol, dir).
func (l Ledger) SetNotified(symbol string, dir Direction, now time.Time) {
	entry := l.Alerts[symbol]
	ts := now.UTC().Format(time.RFC3339)
	if dir == DirectionBelow {
		entry.Below = ts
	} else {
		entry.Above = ts
	}
	l.Alerts[symbol] = entry
}

// Clone deep-copies the ledger so an evaluation pass can record deliveries
// without mutating its input.
func (l Ledger) Clone() Ledger {
	out := NewLedger()
	for symbol, entry := range l.Alerts {
		out.Alerts[symbol] = entry
	}
	return out
}
