package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/rangebreak/journal"
	"github.com/rustyeddy/rangebreak/stats"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect a SQLite trade journal",
	Long: `Journal lists the trades recorded in a SQLite journal and recomputes the
summary statistics from the stored ledger.

Example:
  rangebreak journal --db backtest.sqlite`,
	RunE: runJournal,
}

var jnDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)

	journalCmd.Flags().StringVarP(&jnDBPath, "db", "d", "./backtest.sqlite", "path to SQLite journal")
}

func runJournal(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(jnDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	records, err := j.ListTrades()
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("journal is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTRY\tSIDE\tINSTRUMENT\tENTRY PX\tEXIT PX\tREASON\tPNL")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.5f\t%.5f\t%s\t%.5f\n",
			r.EntryTime.UTC().Format(time.RFC3339), r.Side, r.Instrument,
			r.Entry, r.Exit, r.Reason, r.PNL)
	}
	w.Flush()

	s := stats.Compute(journal.PNLs(records))
	fmt.Printf("\ntrades=%d pnl=%.5f sharpe=%.2f max_dd=%.5f hit=%.2f", s.Trades, s.PNL, s.Sharpe, s.MaxDD, s.HitRate)
	if math.IsInf(s.PF, 1) {
		fmt.Printf(" pf=inf\n")
	} else {
		fmt.Printf(" pf=%.2f\n", s.PF)
	}
	return nil
}
