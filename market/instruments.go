// market/instruments.go
package market

import "strings"

// InstrumentMeta describes a tradable FX pair.
type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	PipSize       float64
}

var Instruments = map[string]InstrumentMeta{
	"EUR_USD": {
		Name:          "EUR_USD",
		BaseCurrency:  "EUR",
		QuoteCurrency: "USD",
		PipSize:       0.0001,
	},
	"GBP_USD": {
		Name:          "GBP_USD",
		BaseCurrency:  "GBP",
		QuoteCurrency: "USD",
		PipSize:       0.0001,
	},
	"USD_JPY": {
		Name:          "USD_JPY",
		BaseCurrency:  "USD",
		QuoteCurrency: "JPY",
		PipSize:       0.01,
	},
	"EUR_JPY": {
		Name:          "EUR_JPY",
		BaseCurrency:  "EUR",
		QuoteCurrency: "JPY",
		PipSize:       0.01,
	},
}

const (
	// DefaultPipSize is the fallback pip size for instruments missing from
	// the table. Unknown pairs are deliberately treated as non-JPY quotes
	// rather than rejected, so a backtest over an unlisted major still runs.
	DefaultPipSize = 0.0001

	jpyPipSize = 0.01
)

// PipSize returns the pip size for an instrument in OANDA naming
// (BASE_QUOTE). Pairs quoted in JPY use 0.01, everything else 0.0001.
// Instruments absent from the metadata table fall back on the quote-currency
// suffix, then on DefaultPipSize.
func PipSize(instrument string) float64 {
	if meta, ok := Instruments[instrument]; ok {
		return meta.PipSize
	}
	if strings.HasSuffix(instrument, "_JPY") {
		return jpyPipSize
	}
	return DefaultPipSize
}
