// Package stats rolls a ledger of per-trade P&Ls into summary performance
// numbers. All figures are recomputed fresh from the ledger on every call.
package stats

import "math"

// sharpeEpsilon keeps the ratio finite for a flat return series.
const sharpeEpsilon = 1e-9

// annualization scales the per-trade Sharpe as if trades were daily
// returns. That conflates trade count with trading-day count; it is kept
// deliberately as the rule's historical definition, so the number is a
// comparable score across runs, not a statistically sound Sharpe ratio.
var annualization = math.Sqrt(252)

// Summary is the aggregate view of a trade ledger.
type Summary struct {
	Trades  int     `json:"trades"`
	PNL     float64 `json:"pnl"`
	Sharpe  float64 `json:"sharpe"`
	MaxDD   float64 `json:"max_dd"` // largest peak-to-trough decline, <= 0
	HitRate float64 `json:"hit"`    // wins / decisive trades
	PF      float64 `json:"pf"`     // +Inf when there are no losers
}

// Compute summarizes the P&L series in ledger order. An empty series returns
// the zero Summary; that is a defined result, not an error.
func Compute(pnls []float64) Summary {
	if len(pnls) == 0 {
		return Summary{}
	}

	var (
		total    float64
		grossWin float64
		grossLos float64
		wins     int
		losses   int
	)
	for _, pl := range pnls {
		total += pl
		switch {
		case pl > 0:
			wins++
			grossWin += pl
		case pl < 0:
			losses++
			grossLos += -pl
		}
		// pl == 0 counts toward Trades but is neither win nor loss
	}

	pf := math.Inf(1)
	if losses > 0 {
		pf = grossWin / grossLos
	}

	decisive := wins + losses
	if decisive == 0 {
		decisive = 1 // denominator floor, hit rate 0
	}

	return Summary{
		Trades:  len(pnls),
		PNL:     total,
		Sharpe:  sharpe(pnls),
		MaxDD:   maxDrawdown(pnls),
		HitRate: float64(wins) / float64(decisive),
		PF:      pf,
	}
}

// sharpe is mean/(stddev+eps) scaled by sqrt(252). Standard deviation is the
// sample one; a single trade has no spread and is treated as stddev 0.
func sharpe(pnls []float64) float64 {
	n := float64(len(pnls))

	var sum float64
	for _, pl := range pnls {
		sum += pl
	}
	mean := sum / n

	var sd float64
	if len(pnls) > 1 {
		var ss float64
		for _, pl := range pnls {
			d := pl - mean
			ss += d * d
		}
		sd = math.Sqrt(ss / (n - 1))
	}

	return mean / (sd + sharpeEpsilon) * annualization
}

// maxDrawdown walks the cumulative P&L curve and returns the minimum of
// (curve - running peak): 0 when the curve never dips below a prior peak.
func maxDrawdown(pnls []float64) float64 {
	var (
		curve float64
		peak  float64
		maxDD float64
	)
	for i, pl := range pnls {
		curve += pl
		if i == 0 || curve > peak {
			peak = curve
		}
		if dd := curve - peak; dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
