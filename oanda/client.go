// Package oanda retrieves historical candles from the OANDA v20 REST API.
// It is the data-supplier side of the system: everything it returns is a
// completed, chronologically sorted, duplicate-free series the core consumes
// as-is.
package oanda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/rangebreak/market"
)

const (
	// PracticeURL is OANDA's practice/demo environment.
	PracticeURL = "https://api-fxpractice.oanda.com"
	// LiveURL is OANDA's live environment.
	LiveURL = "https://api-fxtrade.oanda.com"

	// maxBatch is the per-request candle cap imposed by the API endpoint
	// we use (count-based requests).
	maxBatch = 500

	// batchDelay spaces successive history requests out a little.
	batchDelay = 100 * time.Millisecond
)

// Granularity is the candle timeframe in OANDA naming.
type Granularity string

const (
	M1  Granularity = "M1"
	M5  Granularity = "M5"
	M15 Granularity = "M15"
	M30 Granularity = "M30"
	H1  Granularity = "H1"
	H4  Granularity = "H4"
	D   Granularity = "D"
)

// Client is a thin OANDA REST client for instrument candles.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient builds a client for the practice or live environment.
func NewClient(token string, practice bool, log zerolog.Logger) *Client {
	baseURL := LiveURL
	if practice {
		baseURL = PracticeURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type candleData struct {
	O string `json:"o"`
	H string `json:"h"`
	L string `json:"l"`
	C string `json:"c"`
}

type apiCandle struct {
	Complete bool       `json:"complete"`
	Volume   int        `json:"volume"`
	Time     string     `json:"time"`
	Mid      candleData `json:"mid"`
}

type candlesResponse struct {
	Instrument  string      `json:"instrument"`
	Granularity string      `json:"granularity"`
	Candles     []apiCandle `json:"candles"`
}

// GetCandles fetches up to maxBatch recent mid-price candles. Incomplete
// (still-forming) candles are dropped so the simulator never sees a bar that
// could still change.
func (c *Client) GetCandles(ctx context.Context, instrument string, count int, granularity Granularity) ([]market.Candle, error) {
	if instrument == "" {
		return nil, fmt.Errorf("instrument is required")
	}
	if count <= 0 || count > maxBatch {
		count = maxBatch
	}

	params := url.Values{}
	params.Set("price", "M")
	params.Set("granularity", string(granularity))
	params.Set("count", strconv.Itoa(count))

	apiURL := fmt.Sprintf("%s/v3/instruments/%s/candles?%s", c.baseURL, instrument, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp candlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candles := make([]market.Candle, 0, len(apiResp.Candles))
	for _, ac := range apiResp.Candles {
		if !ac.Complete {
			continue
		}

		t, err := time.Parse(time.RFC3339, ac.Time)
		if err != nil {
			return nil, fmt.Errorf("parse time %s: %w", ac.Time, err)
		}

		open, err := strconv.ParseFloat(ac.Mid.O, 64)
		if err != nil {
			return nil, fmt.Errorf("parse open price: %w", err)
		}
		high, err := strconv.ParseFloat(ac.Mid.H, 64)
		if err != nil {
			return nil, fmt.Errorf("parse high price: %w", err)
		}
		low, err := strconv.ParseFloat(ac.Mid.L, 64)
		if err != nil {
			return nil, fmt.Errorf("parse low price: %w", err)
		}
		cls, err := strconv.ParseFloat(ac.Mid.C, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close price: %w", err)
		}

		candles = append(candles, market.Candle{
			Time:   t.UTC(),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  cls,
			Volume: float64(ac.Volume),
		})
	}

	c.log.Debug().
		Str("instrument", instrument).
		Str("granularity", string(granularity)).
		Int("candles", len(candles)).
		Msg("fetched candle batch")

	return candles, nil
}

// FetchHistory pulls up to lookback candles in maxBatch-sized requests and
// returns the most recent lookback candles, oldest first. A short batch ends
// the loop early; an empty first batch returns an empty, valid series.
func (c *Client) FetchHistory(ctx context.Context, instrument string, lookback int, granularity Granularity) ([]market.Candle, error) {
	if lookback <= 0 {
		return nil, fmt.Errorf("lookback must be positive, got %d", lookback)
	}

	var history []market.Candle
	remaining := lookback

	for remaining > 0 {
		count := remaining
		if count > maxBatch {
			count = maxBatch
		}

		batch, err := c.GetCandles(ctx, instrument, count, granularity)
		if err != nil {
			return nil, fmt.Errorf("fetch history %s: %w", instrument, err)
		}
		if len(batch) == 0 {
			break
		}

		history = append(history, batch...)
		remaining -= len(batch)

		if len(batch) < count {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(batchDelay):
		}
	}

	history = market.SortDedupe(history)
	if len(history) > lookback {
		history = history[len(history)-lookback:]
	}
	return history, nil
}
