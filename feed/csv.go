// Package feed reads recorded candle datasets so backtests can run offline.
//
// The canonical format is CSV rows of
//
//	time,open,high,low,close[,volume]
//
// with RFC3339 timestamps. A header row is allowed and blank/short rows are
// skipped. Datasets may also arrive compressed: ".xz" files are decompressed
// on the fly and ".zip" archives are extracted to a scratch directory first.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"

	"github.com/rustyeddy/rangebreak/market"
)

// LoadCandles reads a candle dataset from path, transparently handling .xz
// and .zip archives, and returns a normalized (sorted, deduplicated) series.
func LoadCandles(path string) ([]market.Candle, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		return loadXZ(path)
	case ".zip":
		return loadZip(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCandles(f)
	}
}

func loadXZ(path string) ([]market.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open xz stream %s: %w", path, err)
	}
	return ReadCandles(r)
}

// loadZip extracts the archive into a scratch directory and reads the first
// .csv entry found.
func loadZip(path string) ([]market.Candle, error) {
	dir, err := os.MkdirTemp("", "rangebreak-feed-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	var csvPath string
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if csvPath == "" && !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".csv") {
			csvPath = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if csvPath == "" {
		return nil, fmt.Errorf("no .csv entry in %s", path)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCandles(f)
}

// ReadCandles parses candle CSV rows from r.
func ReadCandles(r io.Reader) ([]market.Candle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var candles []market.Candle
	sawFirst := false

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		// Allow a single header row
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		c, ok, err := parseCandleRow(row)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		candles = append(candles, c)
	}

	return market.SortDedupe(candles), nil
}

func parseCandleRow(row []string) (market.Candle, bool, error) {
	// Need at least: time,open,high,low,close
	if len(row) < 5 {
		return market.Candle{}, false, nil
	}

	ts := strings.TrimSpace(row[0])
	if ts == "" {
		return market.Candle{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339Nano, ts)
		if err2 != nil {
			return market.Candle{}, false, fmt.Errorf("bad time %q: %w", ts, err)
		}
		t = t2
	}

	vals := make([]float64, 4)
	for i := 1; i <= 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return market.Candle{}, false, fmt.Errorf("bad price %q: %w", row[i], err)
		}
		vals[i-1] = v
	}

	c := market.Candle{
		Time:  t.UTC(),
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}
	if len(row) > 5 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64); err == nil {
			c.Volume = v
		}
	}
	return c, true, nil
}

// WriteCandles emits the series in the canonical CSV format, header first.
func WriteCandles(w io.Writer, candles []market.Candle) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}
	for _, c := range candles {
		err := cw.Write([]string{
			c.Time.UTC().Format(time.RFC3339),
			fprice(c.Open),
			fprice(c.High),
			fprice(c.Low),
			fprice(c.Close),
			strconv.FormatFloat(c.Volume, 'f', 0, 64),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fprice(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
