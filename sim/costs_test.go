package sim

import (
	"math"
	"testing"
)

func TestFillDirectionAware(t *testing.T) {
	c := Costs{SpreadPips: 0.8, SlippagePips: 0.2} // 1 pip total

	if got := c.Fill(1.1000, Long, "EUR_USD"); !approx(got, 1.1001) {
		t.Fatalf("long fill = %v, want 1.1001", got)
	}
	if got := c.Fill(1.1000, Short, "EUR_USD"); !approx(got, 1.0999) {
		t.Fatalf("short fill = %v, want 1.0999", got)
	}
	// JPY quote scales through the 0.01 pip size.
	if got := c.Fill(150.00, Long, "USD_JPY"); !approx(got, 150.01) {
		t.Fatalf("JPY long fill = %v, want 150.01", got)
	}
	// Unknown instrument uses the non-JPY fallback pip size.
	if got := c.Fill(1.1000, Long, "ABC_DEF"); !approx(got, 1.1001) {
		t.Fatalf("fallback fill = %v, want 1.1001", got)
	}
}

func TestRealizedPLChargesBothFills(t *testing.T) {
	c := Costs{SpreadPips: 0.8, SlippagePips: 0.2}

	long := Trade{Side: Long, Entry: 1.1000, Exit: 1.1020}
	// entry 1.1001, exit (short fill) 1.1019 -> 18 pips
	if got := c.RealizedPL(long, "EUR_USD"); !approx(got, 0.0018) {
		t.Fatalf("long pl = %v, want 0.0018", got)
	}

	short := Trade{Side: Short, Entry: 1.1000, Exit: 1.0980}
	// entry 1.0999, exit (long fill) 1.0981 -> 18 pips
	if got := c.RealizedPL(short, "EUR_USD"); !approx(got, 0.0018) {
		t.Fatalf("short pl = %v, want 0.0018", got)
	}
}

func TestZeroCostsAreIdentity(t *testing.T) {
	var c Costs
	tr := Trade{Side: Long, Entry: 1.1000, Exit: 1.1012}
	if got := c.RealizedPL(tr, "EUR_USD"); !approx(got, 0.0012) {
		t.Fatalf("zero-cost pl = %v, want raw 0.0012", got)
	}
}

// Undoing each fill with the opposite side recovers the raw price exactly.
func TestCostRoundTrip(t *testing.T) {
	c := Costs{SpreadPips: 0.8, SlippagePips: 0.2}

	raw := 1.10425
	costed := c.Fill(raw, Long, "EUR_USD")
	back := c.Fill(costed, Short, "EUR_USD")
	if math.Abs(back-raw) > 1e-12 {
		t.Fatalf("round trip drifted: %v -> %v -> %v", raw, costed, back)
	}
}
