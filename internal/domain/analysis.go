package domain

import "time"

// Light is the discrete per-timeframe bull/neutral/bear classification.
type Light string

const (
	LightGreen  Light = "GREEN"
	LightOrange Light = "ORANGE"
	LightRed    Light = "RED"
)

// Signal is the discrete trading signal derived from the composite score.
// SignalPending marks an entity with no authoritative data loaded yet; it
// carries no score and must never be read as NEUTRAL.
type Signal string

const (
	SignalStrongBuy  Signal = "STRONG_BUY"
	SignalBuy        Signal = "BUY"
	SignalNeutral    Signal = "NEUTRAL"
	SignalSell       Signal = "SELL"
	SignalStrongSell Signal = "STRONG_SELL"
	SignalPending    Signal = "PENDING"
)

// Direction of a trade setup.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Provenance marks where an entity's snapshots come from. It transitions
// approximate -> authoritative and never reverts within one load cycle.
type Provenance string

const (
	ProvenanceApproximate   Provenance = "approximate"
	ProvenanceAuthoritative Provenance = "authoritative"
)

// IndicatorSnapshot holds the derived indicator state for one
// (symbol, timeframe) pair. Every numeric field is total: when the input
// series is too short the field carries its neutral sentinel instead of
// being omitted.
type IndicatorSnapshot struct {
	Timeframe  string   `json:"timeframe"`
	EMAFast    float64  `json:"emaFast"`
	EMAMid     float64  `json:"emaMid"`
	EMALong    float64  `json:"emaLong"`
	MACDLine   float64  `json:"macdLine"`
	MACDSignal float64  `json:"macdSignal"`
	MACDHist   float64  `json:"macdHist"`
	RSI        float64  `json:"rsi"`
	StochK     *float64 `json:"stochK"`
	StochD     *float64 `json:"stochD"`
	VWAP       float64  `json:"vwap"`
	VWAPAbove  bool     `json:"vwapAbove"`
	BBUpper    float64  `json:"bbUpper"`
	BBMiddle   float64  `json:"bbMiddle"`
	BBLower    float64  `json:"bbLower"`
	BBSqueeze  bool     `json:"bbSqueeze"`
	ATR        float64  `json:"atr"`
	LastClose  float64  `json:"lastClose"`
	Light      Light    `json:"light"`
}

// SRKind tags a clustered level as support or resistance.
type SRKind string

const (
	SRSupport    SRKind = "support"
	SRResistance SRKind = "resistance"
)

// SRStrength ranks a clustered level by proximity to the current price.
type SRStrength string

const (
	SRMajor SRStrength = "major"
	SRMinor SRStrength = "minor"
)

// SRLevel is a clustered historical price extremum. By construction every
// support price is below the current price and every resistance above it.
type SRLevel struct {
	Price           float64    `json:"price"`
	Kind            SRKind     `json:"kind"`
	Strength        SRStrength `json:"strength"`
	SourceTimeframe string     `json:"sourceTimeframe"`
}

// TradeLevels is the ATR-based stop/target pair.
type TradeLevels struct {
	StopLoss   float64 `json:"stopLoss"`
	TakeProfit float64 `json:"takeProfit"`
	RiskReward float64 `json:"riskReward"`
}

// TightLevels is the tighter scalp-style variant with three targets,
// snapped to clustered S/R levels where one is close enough.
type TightLevels struct {
	Direction     Direction `json:"direction"`
	Entry         float64   `json:"entry"`
	StopLoss      float64   `json:"stopLoss"`
	TP1           float64   `json:"tp1"`
	TP2           float64   `json:"tp2"`
	TP3           float64   `json:"tp3"`
	SLDistancePct float64   `json:"slDistancePct"`
}

// Analysis is the full per-entity view: market listing fields, one snapshot
// per timeframe, the fused score/signal and the derived trade levels.
// Score is nil while the signal is PENDING.
type Analysis struct {
	Symbol         string                       `json:"symbol"`
	Rank           int                          `json:"rank"`
	Price          float64                      `json:"price"`
	ChangePct24h   float64                      `json:"changePct24h"`
	QuoteVolume24h float64                      `json:"quoteVolume24h"`
	MarketCap      float64                      `json:"marketCap"`
	Snapshots      map[string]IndicatorSnapshot `json:"snapshots"`
	Score          *float64                     `json:"score"`
	Signal         Signal                       `json:"signal"`
	Levels         *TradeLevels                 `json:"levels,omitempty"`
	Tight          *TightLevels                 `json:"tight,omitempty"`
	SRLevels       []SRLevel                    `json:"srLevels,omitempty"`
	Provenance     Provenance                   `json:"provenance"`
	UpdatedAt      time.Time                    `json:"updatedAt"`
}

// CloneSnapshots returns a copy of the analysis with its own snapshot map,
// so a loader can mutate one entity without sharing state with the
// repository's copy.
func (a Analysis) CloneSnapshots() Analysis {
	snaps := make(map[string]IndicatorSnapshot, len(a.Snapshots))
	for tf, s := range a.Snapshots {
		snaps[tf] = s
	}
	a.Snapshots = snaps
	return a
}

// MarketListing is one row of the coarse fallback market listing: current
// price, 24h stats and a multi-day hourly close series with no explicit OHLC.
type MarketListing struct {
	Symbol       string    // trading pair identity, e.g. BTCUSDT
	Display      string    // base asset, e.g. BTC
	Price        float64
	ChangePct24h float64
	Volume24h    float64
	MarketCap    float64
	HourlyCloses []float64
}

// SetupRecord is one qualifying high-confidence setup, logged as a
// fire-and-forget side effect.
type SetupRecord struct {
	Symbol     string    `json:"symbol"`
	Signal     Signal    `json:"signal"`
	Score      float64   `json:"score"`
	Price      float64   `json:"price"`
	StopLoss   float64   `json:"stopLoss"`
	TakeProfit float64   `json:"takeProfit"`
	RiskReward float64   `json:"riskReward"`
	CreatedAt  time.Time `json:"createdAt"`
}
