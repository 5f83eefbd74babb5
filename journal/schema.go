// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	instrument TEXT NOT NULL,
	side TEXT NOT NULL,
	entry_time DATETIME NOT NULL,
	exit_time DATETIME NOT NULL,
	entry REAL NOT NULL,
	exit REAL NOT NULL,
	stop REAL NOT NULL,
	take REAL NOT NULL,
	reason TEXT NOT NULL,
	pnl REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_entry_time ON trades(entry_time);
`
