package gecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Client fetches the ranked market listing from CoinGecko. The sparkline
// field carries roughly seven days of hourly closes, which seeds
// approximate snapshots before per-timeframe candles arrive.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

type marketRow struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
	MarketCap    float64 `json:"market_cap"`
	TotalVolume  float64 `json:"total_volume"`
	ChangePct24h float64 `json:"price_change_percentage_24h"`
	Sparkline    struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d"`
}

// Stablecoins and wrapped assets clutter the board without being
// tradeable setups.
var excludedSymbols = map[string]bool{
	"usdt": true, "usdc": true, "dai": true, "busd": true, "tusd": true,
	"usde": true, "fdusd": true, "wbtc": true, "wsteth": true, "steth": true,
	"weth": true, "weeth": true,
}

// FetchMarkets returns up to limit listings ranked by market cap,
// stablecoins and wrapped assets filtered out. Symbols are normalized to
// the USDT pair form the candle source uses.
func (c *Client) FetchMarkets(ctx context.Context, limit int) ([]domain.MarketListing, error) {
	if limit < 1 {
		limit = 50
	}
	// Over-fetch so filtering still fills the requested count.
	url := fmt.Sprintf(
		"%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1&sparkline=true&price_change_percentage=24h",
		c.baseURL, limit+len(excludedSymbols),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko API error: %d", resp.StatusCode)
	}

	var rows []marketRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNoData
	}

	out := make([]domain.MarketListing, 0, limit)
	for _, row := range rows {
		sym := strings.ToLower(row.Symbol)
		if excludedSymbols[sym] {
			continue
		}
		out = append(out, domain.MarketListing{
			Symbol:       strings.ToUpper(row.Symbol) + "USDT",
			Display:      row.Name,
			Price:        row.CurrentPrice,
			ChangePct24h: row.ChangePct24h,
			Volume24h:    row.TotalVolume,
			MarketCap:    row.MarketCap,
			HourlyCloses: row.Sparkline.Price,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
