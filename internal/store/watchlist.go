package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/KNICEX/watchlist-agent/internal/entity"
)

// WatchlistStore persists the watchlist document as JSON on disk.
type WatchlistStore struct {
	path string
}

func NewWatchlistStore(path string) *WatchlistStore {
	return &WatchlistStore{path: path}
}

// Load reads the watchlist from disk. A missing, unreadable or corrupt file
// yields an empty watchlist and ok=false; the next Save heals the file.
func (s *WatchlistStore) Load() (entity.Watchlist, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read watchlist, starting fresh", "path", s.path, "error", err)
		}
		return entity.Watchlist{}, false
	}
	var w entity.Watchlist
	if err = json.Unmarshal(data, &w); err != nil {
		slog.Warn("failed to parse watchlist, starting fresh", "path", s.path, "error", err)
		return entity.Watchlist{}, false
	}
	return w.Normalize(), true
}

func (s *WatchlistStore) Save(w entity.Watchlist) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal watchlist: %w", err)
	}
	return writeFileAtomic(s.path, append(data, '\n'))
}
