package feed

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const sampleCSV = `time,open,high,low,close,volume
2024-03-05T09:00:00Z,1.1000,1.1005,1.0995,1.1002,120
2024-03-05T09:05:00Z,1.1002,1.1010,1.1001,1.1008,95
2024-03-05T09:10:00Z,1.1008,1.1012,1.1004,1.1006,80
`

func TestReadCandles(t *testing.T) {
	candles, err := ReadCandles(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, candles, 3)

	first := candles[0]
	assert.Equal(t, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), first.Time)
	assert.InDelta(t, 1.1000, first.Open, 1e-9)
	assert.InDelta(t, 1.1005, first.High, 1e-9)
	assert.InDelta(t, 1.0995, first.Low, 1e-9)
	assert.InDelta(t, 1.1002, first.Close, 1e-9)
	assert.Equal(t, 120.0, first.Volume)
}

func TestReadCandlesSkipsShortRowsAndSorts(t *testing.T) {
	in := "2024-03-05T09:05:00Z,1.1002,1.1010,1.1001,1.1008\n" +
		"short,row\n" +
		"2024-03-05T09:00:00Z,1.1000,1.1005,1.0995,1.1002\n" +
		"2024-03-05T09:00:00Z,9.9999,9.9999,9.9999,9.9999\n" // duplicate timestamp, dropped

	candles, err := ReadCandles(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.True(t, candles[0].Time.Before(candles[1].Time))
	assert.InDelta(t, 1.1002, candles[0].Close, 1e-9, "keep-first on duplicate timestamps")
}

func TestReadCandlesBadPrice(t *testing.T) {
	_, err := ReadCandles(strings.NewReader("2024-03-05T09:00:00Z,abc,1,1,1\n"))
	assert.Error(t, err)
}

func TestReadCandlesBadTime(t *testing.T) {
	_, err := ReadCandles(strings.NewReader("yesterday,1,1,1,1\n"))
	assert.Error(t, err)
}

func TestLoadCandlesPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	candles, err := LoadCandles(path)
	require.NoError(t, err)
	assert.Len(t, candles, 3)
}

func TestLoadCandlesXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.csv.xz")

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	candles, err := LoadCandles(path)
	require.NoError(t, err)
	assert.Len(t, candles, 3)
}

func TestLoadCandlesZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.zip")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("eurusd/candles.csv")
	require.NoError(t, err)
	_, err = f.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	candles, err := LoadCandles(path)
	require.NoError(t, err)
	assert.Len(t, candles, 3)
}

func TestLoadCandlesZipWithoutCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.zip")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("no data here"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	_, err = LoadCandles(path)
	assert.Error(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	candles, err := ReadCandles(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCandles(&buf, candles))

	back, err := ReadCandles(&buf)
	require.NoError(t, err)
	require.Len(t, back, len(candles))
	for i := range candles {
		assert.True(t, candles[i].Time.Equal(back[i].Time))
		assert.InDelta(t, candles[i].Close, back[i].Close, 1e-9)
	}
}
