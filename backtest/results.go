package backtest

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rustyeddy/rangebreak/config"
)

// PrintResult writes the run summary block to w.
func PrintResult(w io.Writer, cfg *config.Config, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Opening-Range Breakout Backtest")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Instrument:    %s\n", r.Instrument)
	fmt.Fprintf(w, "Granularity:   %s\n", cfg.Data.Granularity)
	if !r.Start.IsZero() {
		fmt.Fprintf(w, "Start:         %s\n", r.Start.Format(time.RFC3339))
		fmt.Fprintf(w, "End:           %s\n", r.End.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Trading Days:  %d\n", r.Days)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rule Configuration")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Session:       %s-%s UTC, %d min opening range\n",
		cfg.Session.Start, cfg.Session.End, cfg.Session.WindowMinutes)
	fmt.Fprintf(w, "Buffer:        %.1f pips\n", cfg.Breakout.BufferPips)
	fmt.Fprintf(w, "Stop Loss:     %.1f pips\n", cfg.Breakout.StopPips)
	fmt.Fprintf(w, "Take Profit:   %.1f pips\n", cfg.Breakout.TakePips)
	fmt.Fprintf(w, "BE Trigger:    %.1f pips (lock %.1f)\n",
		cfg.Breakout.TriggerPips, cfg.Breakout.LockPips)
	fmt.Fprintf(w, "Costs:         %.1f spread + %.1f slippage pips\n",
		cfg.Costs.SpreadPips, cfg.Costs.SlippagePips)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Results")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", r.Summary.Trades)
	fmt.Fprintf(w, "Net P/L:       %.5f\n", r.Summary.PNL)
	fmt.Fprintf(w, "Sharpe:        %.2f\n", r.Summary.Sharpe)
	fmt.Fprintf(w, "Max Drawdown:  %.5f\n", r.Summary.MaxDD)
	fmt.Fprintf(w, "Hit Rate:      %.2f%%\n", r.Summary.HitRate*100)
	if math.IsInf(r.Summary.PF, 1) {
		fmt.Fprintf(w, "Profit Factor: inf (no losing trades)\n")
	} else {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", r.Summary.PF)
	}

	fmt.Fprintln(w)
}
