package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

const DefaultBaseURL = "https://api.binance.com"

// Client talks to the Binance spot REST API. It is the authoritative
// candle source per timeframe.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type Ticker24h struct {
	Symbol             string `json:"symbol"`
	PriceChangePercent string `json:"priceChangePercent"`
	LastPrice          string `json:"lastPrice"`
	QuoteVolume        string `json:"quoteVolume"`
}

type exchangeInfo struct {
	Symbols []symbolInfo `json:"symbols"`
}

type symbolInfo struct {
	Symbol string `json:"symbol"`
	Status string `json:"status"`
}

// GetTradableSymbols returns spot symbols with status "TRADING".
func (c *Client) GetTradableSymbols(ctx context.Context) ([]string, error) {
	var info exchangeInfo
	if err := c.getJSON(ctx, c.baseURL+"/api/v3/exchangeInfo", &info); err != nil {
		return nil, err
	}

	var active []string
	for _, s := range info.Symbols {
		if s.Status == "TRADING" {
			active = append(active, s.Symbol)
		}
	}
	return active, nil
}

// Get24hTickers returns 24hr statistics for all spot markets.
func (c *Client) Get24hTickers(ctx context.Context) ([]Ticker24h, error) {
	var tickers []Ticker24h
	if err := c.getJSON(ctx, c.baseURL+"/api/v3/ticker/24hr", &tickers); err != nil {
		return nil, err
	}
	return tickers, nil
}

// FetchSeries returns the last limit candles for symbol at interval.
// Binance klines come as [ open_time, open, high, low, close, volume, ... ]
// with prices encoded as strings.
func (c *Client) FetchSeries(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error) {
	url := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d", c.baseURL, symbol, interval, limit)
	var klines [][]any
	if err := c.getJSON(ctx, url, &klines); err != nil {
		return nil, err
	}
	if len(klines) == 0 {
		return nil, domain.ErrNoData
	}

	candles := make([]domain.Candle, 0, len(klines))
	for _, k := range klines {
		if len(k) < 6 {
			continue
		}
		openTime, ok := k[0].(float64)
		if !ok {
			continue
		}
		candles = append(candles, domain.Candle{
			OpenTime: int64(openTime),
			Open:     parsePrice(k[1]),
			High:     parsePrice(k[2]),
			Low:      parsePrice(k[3]),
			Close:    parsePrice(k[4]),
			Volume:   parsePrice(k[5]),
		})
	}
	if len(candles) == 0 {
		return nil, domain.ErrNoData
	}
	return candles, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("binance API error: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func parsePrice(v any) float64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
