package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeEmptyLedger(t *testing.T) {
	s := Compute(nil)
	assert.Equal(t, Summary{}, s)

	s = Compute([]float64{})
	assert.Zero(t, s.Trades)
	assert.Zero(t, s.PNL)
	assert.Zero(t, s.Sharpe)
	assert.Zero(t, s.MaxDD)
	assert.Zero(t, s.HitRate)
	assert.Zero(t, s.PF)
}

func TestComputeAllWinners(t *testing.T) {
	s := Compute([]float64{0.0010, 0.0004, 0.0012})

	assert.Equal(t, 3, s.Trades)
	assert.InDelta(t, 0.0026, s.PNL, 1e-12)
	assert.True(t, math.IsInf(s.PF, 1), "pf should be +Inf with no losers")
	assert.Equal(t, 1.0, s.HitRate)
	assert.Zero(t, s.MaxDD, "monotone curve has no drawdown")
	assert.Greater(t, s.Sharpe, 0.0)
}

func TestComputeMixedLedger(t *testing.T) {
	// curve: 10, 4, 12, 3 -> peak 10, 10, 12, 12 -> dd 0, -6, 0, -9
	s := Compute([]float64{10, -6, 8, -9})

	assert.Equal(t, 4, s.Trades)
	assert.InDelta(t, 3.0, s.PNL, 1e-12)
	assert.InDelta(t, -9.0, s.MaxDD, 1e-12)
	assert.InDelta(t, 0.5, s.HitRate, 1e-12)
	assert.InDelta(t, 18.0/15.0, s.PF, 1e-12)
}

func TestComputeSharpeDefinition(t *testing.T) {
	pnls := []float64{2, 4, 6}
	mean := 4.0
	sd := 2.0 // sample stddev
	want := mean / (sd + 1e-9) * math.Sqrt(252)

	s := Compute(pnls)
	assert.InDelta(t, want, s.Sharpe, 1e-6)
}

func TestComputeSingleTrade(t *testing.T) {
	// One trade has no sample spread; stddev is defined as 0 and the
	// epsilon keeps the ratio finite.
	s := Compute([]float64{0.001})
	assert.False(t, math.IsNaN(s.Sharpe))
	assert.False(t, math.IsInf(s.Sharpe, 0))
	assert.Greater(t, s.Sharpe, 0.0)
}

func TestComputeTiesExcludedFromHitRate(t *testing.T) {
	s := Compute([]float64{5, 0, -5, 0})

	assert.Equal(t, 4, s.Trades)
	assert.InDelta(t, 0.5, s.HitRate, 1e-12, "scratch trades must not dilute the hit rate")
}

func TestComputeAllScratchTrades(t *testing.T) {
	s := Compute([]float64{0, 0})

	assert.Equal(t, 2, s.Trades)
	assert.Zero(t, s.HitRate, "denominator floors at 1 with no decisive trades")
	assert.True(t, math.IsInf(s.PF, 1), "no losers -> +Inf sentinel")
}

func TestComputeAllLosers(t *testing.T) {
	s := Compute([]float64{-1, -2})

	assert.Zero(t, s.HitRate)
	assert.Zero(t, s.PF)
	assert.InDelta(t, -3.0, s.MaxDD, 1e-12)
	assert.Less(t, s.Sharpe, 0.0)
}
