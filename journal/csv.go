package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends trade rows to a single CSV file, header first. This is
// the format the CLI exports after a run.
type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(tradesPath string) (*CSVJournal, error) {
	f, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	header := []string{
		"trade_id", "instrument", "side", "entry_time", "exit_time",
		"entry", "exit", "stop", "take", "reason", "pnl",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.w.Write([]string{
		t.TradeID,
		t.Instrument,
		t.Side,
		t.EntryTime.UTC().Format(time.RFC3339),
		t.ExitTime.UTC().Format(time.RFC3339),
		f(t.Entry),
		f(t.Exit),
		f(t.Stop),
		f(t.Take),
		t.Reason,
		f(t.PNL),
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
