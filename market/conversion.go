package market

// PipsToPrice converts a distance in pips to price units for an instrument.
// All strategy distances (buffer, stop, target, spread, slippage) are
// configured in pips and converted exactly once at this boundary.
func PipsToPrice(pips float64, instrument string) float64 {
	return pips * PipSize(instrument)
}
