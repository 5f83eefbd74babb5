package sim

import "time"

type Side int8

const (
	Long  Side = +1
	Short Side = -1
)

func (s Side) String() string {
	if s == Short {
		return "short"
	}
	return "long"
}

// Opposite returns the other side. Closing a long is economically a short
// fill, which is how the cost model charges exits.
func (s Side) Opposite() Side {
	return -s
}

// ParseSide maps the journal/CSV representation back to a Side.
func ParseSide(s string) Side {
	if s == "short" {
		return Short
	}
	return Long
}

// ExitReason records how a trade left the market.
type ExitReason string

const (
	ExitStop ExitReason = "SL"  // stop-loss touched
	ExitTake ExitReason = "TP"  // take-profit touched
	ExitEOD  ExitReason = "EOD" // forced close on the session's last bar
)

// Trade is one closed round trip. The engine only ever emits terminal
// trades: Entry, Stop and Take are set atomically when the position opens,
// Take never changes, Stop only ratchets toward profit, and Exit/ExitTime/
// Reason are filled exactly once.
type Trade struct {
	EntryTime time.Time
	Side      Side
	Entry     float64
	Stop      float64 // final stop after any breakeven ratchet
	Take      float64

	ExitTime time.Time
	Exit     float64
	Reason   ExitReason
}
