// Package sim runs the opening-range breakout rule: one independent state
// machine per trading day, at most one trade per day, exits by stop, target
// or forced end-of-day close.
package sim

import (
	"sort"
	"sync"
	"time"

	"github.com/rustyeddy/rangebreak/market"
	"github.com/rustyeddy/rangebreak/session"
)

// Params are the breakout rule's distances, all in pips, converted to price
// units through the instrument's pip size.
type Params struct {
	Instrument string

	BufferPips  float64 // added above/below the opening range before a close counts as a breakout
	StopPips    float64 // initial stop distance from entry
	TakePips    float64 // target distance from entry, fixed for the life of the trade
	TriggerPips float64 // favorable excursion required before the stop moves to breakeven
	LockPips    float64 // profit locked beyond entry when the breakeven ratchet fires

	// Workers > 1 fans independent days out across goroutines. Output order
	// is restored afterward, so results are identical either way.
	Workers int
}

// Run simulates every trading day and returns the closed trades in
// chronological entry order. Days that never break out contribute nothing;
// an empty day list yields an empty ledger.
func Run(days []session.Day, p Params) []Trade {
	if p.Workers > 1 && len(days) > 1 {
		return runParallel(days, p)
	}

	var ledger []Trade
	for _, d := range days {
		if t, ok := runDay(d, p); ok {
			ledger = append(ledger, t)
		}
	}
	return ledger
}

// runParallel distributes days over a small worker pool. Each day writes only
// its own slot, then the ledger is re-sorted by entry time; chronological
// order is an output invariant, not an execution one.
func runParallel(days []session.Day, p Params) []Trade {
	type result struct {
		trade Trade
		ok    bool
	}

	results := make([]result, len(days))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				t, ok := runDay(days[i], p)
				results[i] = result{trade: t, ok: ok}
			}
		}()
	}
	for i := range days {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var ledger []Trade
	for _, r := range results {
		if r.ok {
			ledger = append(ledger, r.trade)
		}
	}
	sort.Slice(ledger, func(i, j int) bool {
		return ledger[i].EntryTime.Before(ledger[j].EntryTime)
	})
	return ledger
}

// runDay walks one day's in-session bars through the state machine:
// waiting-for-breakout -> in-position -> closed. Returns the closed trade,
// or ok=false when no breakout occurred.
func runDay(d session.Day, p Params) (Trade, bool) {
	rngHigh, rngLow := openingRange(d.OpeningBars())

	buf := market.PipsToPrice(p.BufferPips, p.Instrument)
	longTrig := rngHigh + buf
	shortTrig := rngLow - buf

	stopDist := market.PipsToPrice(p.StopPips, p.Instrument)
	takeDist := market.PipsToPrice(p.TakePips, p.Instrument)
	trigDist := market.PipsToPrice(p.TriggerPips, p.Instrument)
	lockDist := market.PipsToPrice(p.LockPips, p.Instrument)

	var (
		t         Trade
		open      bool
		movedBE   bool
		watermark float64 // running high (long) or low (short) since entry
	)

	for _, c := range d.Bars {
		if !open {
			// Entry fills at the bar close. A close that clears both
			// triggers counts as a long: the long check runs first.
			switch {
			case c.Close > longTrig:
				t = Trade{
					EntryTime: c.Time,
					Side:      Long,
					Entry:     c.Close,
					Stop:      c.Close - stopDist,
					Take:      c.Close + takeDist,
				}
				open = true
				watermark = c.High
			case c.Close < shortTrig:
				t = Trade{
					EntryTime: c.Time,
					Side:      Short,
					Entry:     c.Close,
					Stop:      c.Close + stopDist,
					Take:      c.Close - takeDist,
				}
				open = true
				watermark = c.Low
			}
			// Stop/target are never evaluated on the entry bar itself.
			continue
		}

		if t.Side == Long {
			if c.High > watermark {
				watermark = c.High
			}
			// Breakeven ratchet: fires at most once, and only ever
			// tightens the stop.
			if !movedBE && watermark >= t.Entry+trigDist {
				if newStop := t.Entry + lockDist; newStop > t.Stop {
					t.Stop = newStop
				}
				movedBE = true
			}
			// Stop wins when a bar spans both stop and target.
			if c.Low <= t.Stop {
				t.close(c.Time, t.Stop, ExitStop)
				return t, true
			}
			if c.High >= t.Take {
				t.close(c.Time, t.Take, ExitTake)
				return t, true
			}
		} else {
			if c.Low < watermark {
				watermark = c.Low
			}
			if !movedBE && watermark <= t.Entry-trigDist {
				if newStop := t.Entry - lockDist; newStop < t.Stop {
					t.Stop = newStop
				}
				movedBE = true
			}
			if c.High >= t.Stop {
				t.close(c.Time, t.Stop, ExitStop)
				return t, true
			}
			if c.Low <= t.Take {
				t.close(c.Time, t.Take, ExitTake)
				return t, true
			}
		}
	}

	if open {
		// Session ran out with the position still on: force-close at the
		// last in-session bar's close.
		last := d.Bars[len(d.Bars)-1]
		t.close(last.Time, last.Close, ExitEOD)
		return t, true
	}
	return Trade{}, false
}

func (t *Trade) close(at time.Time, price float64, reason ExitReason) {
	t.ExitTime = at
	t.Exit = price
	t.Reason = reason
}

func openingRange(bars []market.Candle) (high, low float64) {
	high = bars[0].High
	low = bars[0].Low
	for _, c := range bars[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low
}
