package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/rangebreak/internal/logging"
)

var (
	flagVerbose bool
	flagLogFile string

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rangebreak",
	Short: "Backtest the opening-range breakout rule against historical FX candles",
	Long: `Rangebreak simulates a session-based opening-range breakout rule over
historical OHLC candles and reports cost-adjusted performance statistics.

It can fetch candles from OANDA, replay recorded CSV datasets (plain,
.xz or .zip), journal every closed trade to CSV or SQLite, and print a
summary with P/L, Sharpe, drawdown, hit rate and profit factor.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := logging.Default()
		if flagVerbose {
			cfg.Level = "debug"
		}
		cfg.FilePath = flagLogFile
		log = logging.New(cfg)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also log JSON to this file (rotated)")
}
