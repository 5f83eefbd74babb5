package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/rangebreak/sim"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func testRecord(entry time.Time, pnl float64) TradeRecord {
	tr := sim.Trade{
		EntryTime: entry,
		Side:      sim.Long,
		Entry:     1.1062,
		Stop:      1.1054,
		Take:      1.1074,
		ExitTime:  entry.Add(5 * time.Minute),
		Exit:      1.1054,
		Reason:    sim.ExitStop,
	}
	return NewRecord("EUR_USD", tr, pnl)
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`)
	require.NoError(t, err)
	defer rows.Close()

	assert.True(t, rows.Next(), "trades table should exist")
	assert.NoError(t, rows.Err())
}

func TestSQLiteRecordAndList(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	t0 := time.Date(2024, 3, 5, 9, 31, 0, 0, time.UTC)
	rec := testRecord(t0, -0.0010)
	require.NoError(t, j.RecordTrade(rec))

	got, err := j.ListTrades()
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, rec.TradeID, got[0].TradeID)
	assert.Equal(t, "EUR_USD", got[0].Instrument)
	assert.Equal(t, "long", got[0].Side)
	assert.Equal(t, "SL", got[0].Reason)
	assert.InDelta(t, -0.0010, got[0].PNL, 1e-12)
	assert.True(t, got[0].EntryTime.Equal(t0))
}

func TestSQLiteListOrderedByEntry(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	t0 := time.Date(2024, 3, 5, 9, 31, 0, 0, time.UTC)
	// Insert out of order; listing must come back chronological.
	require.NoError(t, j.RecordTrade(testRecord(t0.Add(24*time.Hour), 0.0012)))
	require.NoError(t, j.RecordTrade(testRecord(t0, -0.0010)))

	got, err := j.ListTrades()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].EntryTime.Before(got[1].EntryTime))
}

func TestSQLiteListBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	t0 := time.Date(2024, 3, 5, 9, 31, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(testRecord(t0, 1)))
	require.NoError(t, j.RecordTrade(testRecord(t0.Add(24*time.Hour), 2)))
	require.NoError(t, j.RecordTrade(testRecord(t0.Add(48*time.Hour), 3)))

	got, err := j.ListTradesBetween(t0, t0.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)

	pnls := PNLs(got)
	assert.Equal(t, []float64{1, 2}, pnls)
}
