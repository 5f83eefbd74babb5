// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/rangebreak/pkg/id"
	"github.com/rustyeddy/rangebreak/sim"
)

// TradeRecord is one closed trade as persisted: the raw fills plus the
// cost-adjusted P&L in price units.
type TradeRecord struct {
	TradeID    string
	Instrument string
	Side       string
	EntryTime  time.Time
	ExitTime   time.Time
	Entry      float64
	Exit       float64
	Stop       float64
	Take       float64
	Reason     string
	PNL        float64
}

// NewRecord stamps a simulator trade with a ULID and its costed P&L.
func NewRecord(instrument string, t sim.Trade, pnl float64) TradeRecord {
	return TradeRecord{
		TradeID:    id.New(),
		Instrument: instrument,
		Side:       t.Side.String(),
		EntryTime:  t.EntryTime,
		ExitTime:   t.ExitTime,
		Entry:      t.Entry,
		Exit:       t.Exit,
		Stop:       t.Stop,
		Take:       t.Take,
		Reason:     string(t.Reason),
		PNL:        pnl,
	}
}

type Journal interface {
	RecordTrade(TradeRecord) error
	Close() error
}
