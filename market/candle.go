package market

import "time"

// Candle is one completed OHLC bar. Series handed to the simulator must be
// UTC, strictly time-ordered and duplicate-free; the data layer (oanda, feed)
// is responsible for that before the core ever sees them.
type Candle struct {
	Time time.Time

	Open  float64
	High  float64
	Low   float64
	Close float64

	Volume float64 // supplied by the provider, unused by the breakout rule
}

// Day returns the candle's UTC calendar day truncated to midnight, the
// grouping key for session windowing.
func (c Candle) Day() time.Time {
	t := c.Time.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MinuteOfDay returns the candle's UTC minute-of-day in [0, 1439].
func (c Candle) MinuteOfDay() int {
	t := c.Time.UTC()
	return t.Hour()*60 + t.Minute()
}
