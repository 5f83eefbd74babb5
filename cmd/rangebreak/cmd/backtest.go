package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/rangebreak/backtest"
	"github.com/rustyeddy/rangebreak/config"
	"github.com/rustyeddy/rangebreak/feed"
	"github.com/rustyeddy/rangebreak/market"
	"github.com/rustyeddy/rangebreak/oanda"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run the breakout rule over historical candles",
	Long: `Backtest runs the opening-range breakout rule over a candle series and
prints the cost-adjusted summary.

Candles come either from a recorded dataset (--candles, CSV / .xz / .zip)
or from OANDA (--token or OANDA_API_KEY).

Example:
  rangebreak backtest --config eurusd.yaml --candles data/eurusd_m5.csv.xz`,
	RunE: runBacktest,
}

var (
	btConfigPath  string
	btCandlesPath string
	btInstrument  string
	btToken       string
	btLive        bool
	btWorkers     int
	btNoJournal   bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to YAML/JSON config (defaults apply when omitted)")
	backtestCmd.Flags().StringVarP(&btCandlesPath, "candles", "f", "", "candle dataset (CSV, .xz or .zip); skips OANDA")
	backtestCmd.Flags().StringVarP(&btInstrument, "instrument", "i", "", "override configured instrument")
	backtestCmd.Flags().StringVar(&btToken, "token", "", "OANDA API token (default $OANDA_API_KEY)")
	backtestCmd.Flags().BoolVar(&btLive, "live", false, "use the OANDA live environment instead of practice")
	backtestCmd.Flags().IntVar(&btWorkers, "workers", 0, "simulate days across N goroutines (0 = sequential)")
	backtestCmd.Flags().BoolVar(&btNoJournal, "no-journal", false, "skip trade journaling")
}

func loadConfig() (*config.Config, error) {
	if btConfigPath != "" {
		return config.LoadFromFile(btConfigPath)
	}
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if btInstrument != "" {
		cfg.Instrument = btInstrument
	}
	if btWorkers > 0 {
		cfg.Workers = btWorkers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	candles, err := loadSeries(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	runner := backtest.Runner{Config: cfg, Log: log}

	if !btNoJournal {
		j, err := backtest.OpenJournal(cfg.Journal)
		if err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		defer j.Close()
		runner.Journal = j
	}

	res, err := runner.Run(candles)
	if err != nil {
		return err
	}

	backtest.PrintResult(os.Stdout, cfg, res)

	if !btNoJournal {
		switch cfg.Journal.Type {
		case "csv":
			fmt.Printf("Saved trades -> %s\n", cfg.Journal.TradesFile)
		case "sqlite":
			fmt.Printf("Saved trades -> %s\n", cfg.Journal.DBPath)
		}
	}
	return nil
}

func loadSeries(ctx context.Context, cfg *config.Config) ([]market.Candle, error) {
	if btCandlesPath != "" {
		candles, err := feed.LoadCandles(btCandlesPath)
		if err != nil {
			return nil, fmt.Errorf("load candles: %w", err)
		}
		log.Info().Str("path", btCandlesPath).Int("candles", len(candles)).Msg("loaded dataset")
		return candles, nil
	}

	token := btToken
	if token == "" {
		token = os.Getenv("OANDA_API_KEY")
	}
	if token == "" {
		return nil, fmt.Errorf("no --candles dataset and no OANDA token (--token or OANDA_API_KEY)")
	}

	client := oanda.NewClient(token, !btLive, log)
	candles, err := client.FetchHistory(ctx, cfg.Instrument, cfg.Data.Lookback,
		oanda.Granularity(cfg.Data.Granularity))
	if err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	return candles, nil
}
