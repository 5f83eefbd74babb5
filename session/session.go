// Package session partitions a candle series into UTC trading days and
// identifies, within each day, the in-session bars and the opening-range
// window the breakout rule measures.
package session

import (
	"fmt"
	"time"

	"github.com/rustyeddy/rangebreak/market"
)

// Window describes the trading session in UTC minutes-of-day plus the length
// of the opening range measured from the first in-session bar.
type Window struct {
	StartMinute   int // inclusive, 0..1439
	EndMinute     int // inclusive, 0..1439
	OpeningLength time.Duration
}

// New validates the session bounds and opening length.
func New(startMinute, endMinute, openingMinutes int) (Window, error) {
	if startMinute < 0 || startMinute > 1439 {
		return Window{}, fmt.Errorf("session start minute %d out of range [0,1439]", startMinute)
	}
	if endMinute < 0 || endMinute > 1439 {
		return Window{}, fmt.Errorf("session end minute %d out of range [0,1439]", endMinute)
	}
	if startMinute > endMinute {
		return Window{}, fmt.Errorf("session start %d after end %d", startMinute, endMinute)
	}
	if openingMinutes <= 0 {
		return Window{}, fmt.Errorf("opening window must be positive, got %d minutes", openingMinutes)
	}
	return Window{
		StartMinute:   startMinute,
		EndMinute:     endMinute,
		OpeningLength: time.Duration(openingMinutes) * time.Minute,
	}, nil
}

// Contains reports whether the candle's UTC time-of-day falls inside the
// session, bounds inclusive.
func (w Window) Contains(c market.Candle) bool {
	m := c.MinuteOfDay()
	return m >= w.StartMinute && m <= w.EndMinute
}

// Day is one UTC calendar day's in-session bars. Opening counts the leading
// bars inside [first bar time, first bar time + OpeningLength); the slice
// Bars[:Opening] is the opening range, Bars keeps the original order.
type Day struct {
	Date    time.Time // UTC midnight
	Bars    []market.Candle
	Opening int
}

// OpeningBars returns the opening-range bars for the day.
func (d Day) OpeningBars() []market.Candle {
	return d.Bars[:d.Opening]
}

// Partition groups the series into trading days, in first-bar order. Days
// with no in-session bars are dropped; days whose opening window ends up
// empty are dropped too, so callers never see a day they cannot measure a
// range on. The input is assumed time-sorted; grouping happens in one pass
// with no per-bar key recomputation downstream.
func (w Window) Partition(candles []market.Candle) []Day {
	var days []Day

	for _, c := range candles {
		if !w.Contains(c) {
			continue
		}
		day := c.Day()
		if len(days) == 0 || !days[len(days)-1].Date.Equal(day) {
			days = append(days, Day{Date: day})
		}
		d := &days[len(days)-1]
		d.Bars = append(d.Bars, c)
		if c.Time.Sub(d.Bars[0].Time) < w.OpeningLength {
			d.Opening++
		}
	}

	// An opening count of zero cannot happen once a first bar exists, but
	// guard anyway: such a day has no measurable range.
	out := days[:0]
	for _, d := range days {
		if d.Opening == 0 {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
