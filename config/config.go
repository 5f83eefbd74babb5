// Package config holds the single immutable configuration value the CLI
// builds at startup and hands into the core. Core packages never read the
// environment or any other ambient state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/rangebreak/session"
	"github.com/rustyeddy/rangebreak/sim"
)

// Config is the complete backtest configuration.
type Config struct {
	Instrument string         `json:"instrument" yaml:"instrument"`
	Data       DataConfig     `json:"data" yaml:"data"`
	Session    SessionConfig  `json:"session" yaml:"session"`
	Breakout   BreakoutConfig `json:"breakout" yaml:"breakout"`
	Costs      CostsConfig    `json:"costs" yaml:"costs"`
	Journal    JournalConfig  `json:"journal" yaml:"journal"`
	Workers    int            `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// DataConfig controls candle retrieval.
type DataConfig struct {
	Lookback    int    `json:"lookback" yaml:"lookback"`
	Granularity string `json:"granularity" yaml:"granularity"`
}

// SessionConfig bounds the trading session. Times are "HHMM" strings in UTC,
// end inclusive; Window is the opening-range length in minutes.
type SessionConfig struct {
	Start         string `json:"start" yaml:"start"`
	End           string `json:"end" yaml:"end"`
	WindowMinutes int    `json:"window_minutes" yaml:"window_minutes"`
}

// BreakoutConfig carries the rule's distances in pips.
type BreakoutConfig struct {
	BufferPips  float64 `json:"buffer_pips" yaml:"buffer_pips"`
	StopPips    float64 `json:"stop_pips" yaml:"stop_pips"`
	TakePips    float64 `json:"take_pips" yaml:"take_pips"`
	TriggerPips float64 `json:"be_trigger_pips" yaml:"be_trigger_pips"`
	LockPips    float64 `json:"lock_profit_pips" yaml:"lock_profit_pips"`
}

// CostsConfig is the fill cost model in pips.
type CostsConfig struct {
	SpreadPips   float64 `json:"spread_pips" yaml:"spread_pips"`
	SlippagePips float64 `json:"slippage_pips" yaml:"slippage_pips"`
}

// JournalConfig selects where closed trades are recorded.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML (.yaml/.yml) or indented JSON.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks every field. Any failure here is fatal at startup; nothing
// downstream re-validates.
func (c *Config) Validate() error {
	if c.Instrument == "" {
		return fmt.Errorf("instrument is required")
	}
	if c.Data.Lookback <= 0 {
		return fmt.Errorf("data.lookback must be positive")
	}
	if c.Data.Granularity == "" {
		return fmt.Errorf("data.granularity is required")
	}
	if _, err := c.Session.Window(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	for name, v := range map[string]float64{
		"breakout.buffer_pips":      c.Breakout.BufferPips,
		"breakout.stop_pips":        c.Breakout.StopPips,
		"breakout.take_pips":        c.Breakout.TakePips,
		"breakout.be_trigger_pips":  c.Breakout.TriggerPips,
		"breakout.lock_profit_pips": c.Breakout.LockPips,
		"costs.spread_pips":         c.Costs.SpreadPips,
		"costs.slippage_pips":       c.Costs.SlippagePips,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}
	if c.Breakout.StopPips == 0 {
		return fmt.Errorf("breakout.stop_pips must be positive")
	}
	if c.Breakout.TakePips == 0 {
		return fmt.Errorf("breakout.take_pips must be positive")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" {
			return fmt.Errorf("journal.trades_file required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}
	return nil
}

// Window builds the validated session window from the HHMM bounds.
func (s SessionConfig) Window() (session.Window, error) {
	start, err := parseHHMM(s.Start)
	if err != nil {
		return session.Window{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseHHMM(s.End)
	if err != nil {
		return session.Window{}, fmt.Errorf("end: %w", err)
	}
	return session.New(start, end, s.WindowMinutes)
}

// SimParams maps the config onto the simulator's parameter set.
func (c *Config) SimParams() sim.Params {
	return sim.Params{
		Instrument:  c.Instrument,
		BufferPips:  c.Breakout.BufferPips,
		StopPips:    c.Breakout.StopPips,
		TakePips:    c.Breakout.TakePips,
		TriggerPips: c.Breakout.TriggerPips,
		LockPips:    c.Breakout.LockPips,
		Workers:     c.Workers,
	}
}

// CostModel maps the config onto the fill cost model.
func (c *Config) CostModel() sim.Costs {
	return sim.Costs{
		SpreadPips:   c.Costs.SpreadPips,
		SlippagePips: c.Costs.SlippagePips,
	}
}

// parseHHMM converts a "HHMM" string like "0700" to minute-of-day.
func parseHHMM(s string) (int, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("bad session time %q: want HHMM", s)
	}
	hh, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("bad session time %q: %w", s, err)
	}
	mm, err := strconv.Atoi(s[2:])
	if err != nil {
		return 0, fmt.Errorf("bad session time %q: %w", s, err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("session time %q out of range", s)
	}
	return hh*60 + mm, nil
}

// Default mirrors the rule's historical defaults.
func Default() *Config {
	return &Config{
		Instrument: "EUR_USD",
		Data: DataConfig{
			Lookback:    1000,
			Granularity: "M5",
		},
		Session: SessionConfig{
			Start:         "0700",
			End:           "1700",
			WindowMinutes: 30,
		},
		Breakout: BreakoutConfig{
			BufferPips:  1.0,
			StopPips:    8.0,
			TakePips:    12.0,
			TriggerPips: 6.0,
			LockPips:    0.0,
		},
		Costs: CostsConfig{
			SpreadPips:   0.8,
			SlippagePips: 0.2,
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
		},
	}
}
