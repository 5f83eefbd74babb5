// Package backtest wires the pipeline together: session windowing, the
// per-day breakout simulation, fill costing, journaling, and the summary
// statistics.
package backtest

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/rangebreak/config"
	"github.com/rustyeddy/rangebreak/journal"
	"github.com/rustyeddy/rangebreak/market"
	"github.com/rustyeddy/rangebreak/sim"
	"github.com/rustyeddy/rangebreak/stats"
)

// Runner drives one backtest over a pre-fetched candle series.
type Runner struct {
	Config  *config.Config
	Journal journal.Journal // optional; nil skips persistence
	Log     zerolog.Logger
}

// Result is the outcome of a run: the costed ledger plus its summary.
type Result struct {
	Instrument string
	Start      time.Time
	End        time.Time
	Days       int

	Ledger  []journal.TradeRecord
	Summary stats.Summary
}

// Run executes the backtest. An empty or fully out-of-session series is a
// valid run with an empty ledger and zero summary, not an error.
func (r *Runner) Run(candles []market.Candle) (Result, error) {
	if r.Config == nil {
		return Result{}, fmt.Errorf("backtest: Config is required")
	}

	window, err := r.Config.Session.Window()
	if err != nil {
		return Result{}, fmt.Errorf("backtest: %w", err)
	}

	days := window.Partition(candles)
	trades := sim.Run(days, r.Config.SimParams())

	r.Log.Info().
		Str("instrument", r.Config.Instrument).
		Int("candles", len(candles)).
		Int("days", len(days)).
		Int("trades", len(trades)).
		Msg("simulation complete")

	costs := r.Config.CostModel()

	ledger := make([]journal.TradeRecord, 0, len(trades))
	pnls := make([]float64, 0, len(trades))
	for _, t := range trades {
		pnl := costs.RealizedPL(t, r.Config.Instrument)
		rec := journal.NewRecord(r.Config.Instrument, t, pnl)

		if r.Journal != nil {
			if err := r.Journal.RecordTrade(rec); err != nil {
				return Result{}, fmt.Errorf("backtest: record trade: %w", err)
			}
		}

		ledger = append(ledger, rec)
		pnls = append(pnls, pnl)
	}

	res := Result{
		Instrument: r.Config.Instrument,
		Days:       len(days),
		Ledger:     ledger,
		Summary:    stats.Compute(pnls),
	}
	if len(candles) > 0 {
		res.Start = candles[0].Time
		res.End = candles[len(candles)-1].Time
	}
	return res, nil
}

// OpenJournal builds the configured journal backend.
func OpenJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.TradesFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
