package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KNICEX/watchlist-agent/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerStore_LoadMissingFile(t *testing.T) {
	s := NewLedgerStore(filepath.Join(t.TempDir(), "alerts_log.json"))
	l, ok := s.Load()
	assert.False(t, ok)
	assert.NotNil(t, l.Alerts)
	assert.Empty(t, l.Alerts)
}

func TestLedgerStore_RoundTrip(t *testing.T) {
	s := NewLedgerStore(filepath.Join(t.TempDir(), "alerts_log.json"))

	l := entity.NewLedger()
	l.SetNotified("XYZ", entity.DirectionAbove, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	l.SetNotified("XYZ", entity.DirectionBelow, time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC))
	l.SetNotified("BTC-USD", entity.DirectionAbove, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(l))

	loaded, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, "2025-06-01T12:00:00Z", loaded.LastNotified("XYZ", entity.DirectionAbove))
	assert.Equal(t, "2025-06-02T08:30:00Z", loaded.LastNotified("XYZ", entity.DirectionBelow))
	assert.Equal(t, "2025-05-20T00:00:00Z", loaded.LastNotified("BTC-USD", entity.DirectionAbove))
	assert.Empty(t, loaded.LastNotified("BTC-USD", entity.DirectionBelow))
}

func TestLedgerStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts_log.json")
	require.NoError(t, os.WriteFile(path, []byte("]["), 0o644))

	l, ok := NewLedgerStore(path).Load()
	assert.False(t, ok)
	assert.NotNil(t, l.Alerts)
}

func TestLedgerStore_LoadKeepsUnknownTimestampShapes(t *testing.T) {
	// Entries written by older tools may carry fractional seconds or plain
	// garbage; loading keeps them verbatim for the engine to judge.
	path := filepath.Join(t.TempDir(), "alerts_log.json")
	doc := `{"alerts":{"XYZ":{"above":"2025-06-01T12:00:00.123456+00:00","below":"whenever"}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	l, ok := NewLedgerStore(path).Load()
	require.True(t, ok)
	assert.Equal(t, "2025-06-01T12:00:00.123456+00:00", l.LastNotified("XYZ", entity.DirectionAbove))
	assert.Equal(t, "whenever", l.LastNotified("XYZ", entity.DirectionBelow))
}

func TestLedgerStore_LoadEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts_log.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	l, ok := NewLedgerStore(path).Load()
	require.True(t, ok)
	// A nil map would panic on the first SetNotified.
	require.NotNil(t, l.Alerts)
	l.SetNotified("XYZ", entity.DirectionAbove, time.Now())
	assert.NotEmpty(t, l.LastNotified("XYZ", entity.DirectionAbove))
}
