package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/KNICEX/watchlist-agent/internal/entity"
)

// LedgerStore persists the alert ledger as JSON on disk.
type LedgerStore struct {
	path string
}

func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// Load reads the ledger from disk. A missing, unreadable or corrupt file
// yields an empty ledger and ok=false; the next Save heals the file.
func (s *LedgerStore) Load() (entity.Ledger, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read alert ledger, starting fresh", "path", s.path, "error", err)
		}
		return entity.NewLedger(), false
	}
	var l entity.Ledger
	if err = json.Unmarshal(data, &l); err != nil {
		slog.Warn("failed to parse alert ledger, starting fresh", "path", s.path, "error", err)
		return entity.NewLedger(), false
	}
	if l.Alerts == nil {
		l.Alerts = make(map[string]entity.LedgerEntry)
	}
	return l, true
}

func (s *LedgerStore) Save(l entity.Ledger) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal alert ledger: %w", err)
	}
	return writeFileAtomic(s.path, append(data, '\n'))
}
