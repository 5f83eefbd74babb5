package sim

import "github.com/rustyeddy/rangebreak/market"

// Costs is the fill cost model: a flat spread plus slippage charge, both in
// pips, applied direction-aware. Longs pay up, shorts receive less. Stateless.
type Costs struct {
	SpreadPips   float64
	SlippagePips float64
}

// Fill converts a raw fill price into a cost-adjusted one for the given
// side. Unknown instruments use the non-JPY pip size (market.DefaultPipSize),
// an explicit fallback rather than an error.
func (c Costs) Fill(raw float64, side Side, instrument string) float64 {
	adj := market.PipsToPrice(c.SpreadPips+c.SlippagePips, instrument)
	if side == Long {
		return raw + adj
	}
	return raw - adj
}

// RealizedPL computes the trade's cost-adjusted P&L in price units. The
// entry is charged on the trade's own side, the exit on the opposite side,
// since closing a long is a sell fill and vice versa.
func (c Costs) RealizedPL(t Trade, instrument string) float64 {
	entry := c.Fill(t.Entry, t.Side, instrument)
	exit := c.Fill(t.Exit, t.Side.Opposite(), instrument)
	if t.Side == Long {
		return exit - entry
	}
	return entry - exit
}
