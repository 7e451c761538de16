package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KNICEX/watchlist-agent/internal/service/marketdata"
)

// historyPoint is one chart point in the snapshot format: millisecond
// timestamp and abbreviated OHLC keys. Values are plain JSON numbers so
// chart consumers can plot them directly.
type historyPoint struct {
	T int64   `json:"t"`
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	C float64 `json:"c"`
}

// HistoryWriter writes per-symbol candle snapshots for chart consumers.
type HistoryWriter struct {
	dir string
}

func NewHistoryWriter(dir string) *HistoryWriter {
	return &HistoryWriter{dir: dir}
}

// Save writes historical_<SYMBOL>.json atomically, one array of points per
// interval token. Slashes in the symbol are flattened so every symbol maps
// to a plain file name.
func (w *HistoryWriter) Save(symbol string, series map[marketdata.Interval][]marketdata.Candle) error {
	doc := make(map[string][]historyPoint, len(series))
	for interval, candles := range series {
		points := make([]historyPoint, 0, len(candles))
		for _, c := range candles {
			points = append(points, historyPoint{
				T: c.Time.UnixMilli(),
				O: c.Open.InexactFloat64(),
				H: c.High.InexactFloat64(),
				L: c.Low.InexactFloat64(),
				C: c.Close.InexactFloat64(),
			})
		}
		doc[string(interval)] = points
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history for %s: %w", symbol, err)
	}
	name := fmt.Sprintf("historical_%s.json", strings.ReplaceAll(symbol, "/", "_"))
	return writeFileAtomic(filepath.Join(w.dir, name), append(data, '\n'))
}
