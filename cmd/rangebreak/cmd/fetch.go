package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/rangebreak/feed"
	"github.com/rustyeddy/rangebreak/oanda"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download candles from OANDA into a CSV dataset",
	Long: `Fetch downloads historical mid-price candles from OANDA and writes them
in the canonical CSV format, ready for offline backtests.

Example:
  rangebreak fetch -i EUR_USD -g M5 -n 5000 -o data/eurusd_m5.csv`,
	RunE: runFetch,
}

var (
	fetchInstrument  string
	fetchGranularity string
	fetchCount       int
	fetchOut         string
	fetchToken       string
	fetchLive        bool
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchInstrument, "instrument", "i", "EUR_USD", "instrument to fetch")
	fetchCmd.Flags().StringVarP(&fetchGranularity, "granularity", "g", "M5", "candle granularity")
	fetchCmd.Flags().IntVarP(&fetchCount, "count", "n", 1000, "number of candles")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "output CSV path (default stdout)")
	fetchCmd.Flags().StringVar(&fetchToken, "token", "", "OANDA API token (default $OANDA_API_KEY)")
	fetchCmd.Flags().BoolVar(&fetchLive, "live", false, "use the OANDA live environment instead of practice")
}

func runFetch(cmd *cobra.Command, args []string) error {
	token := fetchToken
	if token == "" {
		token = os.Getenv("OANDA_API_KEY")
	}
	if token == "" {
		return fmt.Errorf("OANDA token required (--token or OANDA_API_KEY)")
	}

	client := oanda.NewClient(token, !fetchLive, log)
	candles, err := client.FetchHistory(cmd.Context(), fetchInstrument, fetchCount,
		oanda.Granularity(fetchGranularity))
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	out := os.Stdout
	if fetchOut != "" {
		f, err := os.Create(fetchOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := feed.WriteCandles(out, candles); err != nil {
		return fmt.Errorf("write candles: %w", err)
	}

	log.Info().Int("candles", len(candles)).Str("out", fetchOut).Msg("dataset written")
	return nil
}
