package journal

import "time"

const selectCols = `
	SELECT trade_id, instrument, side, entry_time, exit_time,
	       entry, exit, stop, take, reason, pnl
	FROM trades`

// ListTrades returns every recorded trade in chronological entry order.
func (j *SQLiteJournal) ListTrades() ([]TradeRecord, error) {
	rows, err := j.db.Query(selectCols + ` ORDER BY entry_time, trade_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		err := rows.Scan(&t.TradeID, &t.Instrument, &t.Side, &t.EntryTime, &t.ExitTime,
			&t.Entry, &t.Exit, &t.Stop, &t.Take, &t.Reason, &t.PNL)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListTradesBetween returns trades whose entry lies in [from, to).
func (j *SQLiteJournal) ListTradesBetween(from, to time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(selectCols+`
		WHERE entry_time >= ? AND entry_time < ?
		ORDER BY entry_time, trade_id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		err := rows.Scan(&t.TradeID, &t.Instrument, &t.Side, &t.EntryTime, &t.ExitTime,
			&t.Entry, &t.Exit, &t.Stop, &t.Take, &t.Reason, &t.PNL)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// PNLs extracts the P&L series in record order, ready for stats.Compute.
func PNLs(records []TradeRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.PNL
	}
	return out
}
