package usecase

import (
	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

// ScoreInput is the snapshot triple for the fixed short/medium/long
// timeframes plus the current price.
type ScoreInput struct {
	Short  domain.IndicatorSnapshot
	Medium domain.IndicatorSnapshot
	Long   domain.IndicatorSnapshot
	Price  float64
}

// ScoreResult carries the fused score and its parts for the detail view.
type ScoreResult struct {
	Score   float64       `json:"score"`
	Raw     float64       `json:"raw"`
	Ceiling float64       `json:"ceiling"`
	Signal  domain.Signal `json:"signal"`
}

// ceilingRules is the hard score cap keyed by the light distribution of the
// triple. First match wins; the table is exhaustive over three lights and
// monotone: more bullish lights never lower the ceiling.
var ceilingRules = []struct {
	name    string
	match   func(red, orange, green int) bool
	ceiling float64
}{
	{"two-or-more-red", func(r, o, g int) bool { return r >= 2 }, 25},
	{"one-red", func(r, o, g int) bool { return r == 1 }, 40},
	{"two-or-more-orange", func(r, o, g int) bool { return o >= 2 }, 55},
	{"one-orange-two-green", func(r, o, g int) bool { return o == 1 && g == 2 }, 65},
	{"all-green", func(r, o, g int) bool { return g == 3 }, 100},
}

// ScoreCeiling maps a light distribution to its hard cap.
func ScoreCeiling(red, orange, green int) float64 {
	for _, rule := range ceilingRules {
		if rule.match(red, orange, green) {
			return rule.ceiling
		}
	}
	return 100
}

// ComputeScore fuses the timeframe triple into the capped composite score
// and its signal.
func ComputeScore(in ScoreInput) ScoreResult {
	snaps := [3]domain.IndicatorSnapshot{in.Short, in.Medium, in.Long}

	red, orange, green := 0, 0, 0
	for _, s := range snaps {
		switch s.Light {
		case domain.LightRed:
			red++
		case domain.LightOrange:
			orange++
		case domain.LightGreen:
			green++
		}
	}
	ceiling := ScoreCeiling(red, orange, green)

	raw := 0.0

	// Lights: up to 30.
	lightPts := float64(green*10 + orange*3)
	if lightPts > 30 {
		lightPts = 30
	}
	raw += lightPts

	// VWAP agreement across all timeframes: up to 20.
	above := 0
	for _, s := range snaps {
		if s.VWAPAbove {
			above++
		}
	}
	switch above {
	case 3:
		raw += 20
	case 2:
		raw += 14
	case 1:
		raw += 7
	}

	// RSI zone on the medium timeframe: up to 15.
	rsi := in.Medium.RSI
	switch {
	case rsi > 50 && rsi <= 65:
		raw += 15
	case rsi > 65 && rsi <= 70:
		raw += 10
	case rsi >= 45 && rsi <= 50:
		raw += 8
	case rsi > 70:
		raw += 3
	}

	// MACD state, histogram sign per timeframe: up to 15.
	macdUp := 0
	for _, s := range snaps {
		if s.MACDHist > 0 {
			macdUp++
		}
	}
	raw += float64(macdUp * 5)

	// Price against the long timeframe's EMAs: up to 15.
	switch {
	case in.Price > in.Long.EMALong:
		raw += 15
	case in.Price > in.Long.EMAMid:
		raw += 8
	}

	// Bollinger position plus volume weighting: up to 5.
	switch {
	case in.Price > in.Medium.BBMiddle && in.Medium.VWAPAbove:
		raw += 5
	case in.Price > in.Medium.BBMiddle:
		raw += 3
	}

	if raw > 100 {
		raw = 100
	}

	score := raw
	if score > ceiling {
		score = ceiling
	}
	if score < 0 {
		score = 0
	}

	return ScoreResult{
		Score:   score,
		Raw:     raw,
		Ceiling: ceiling,
		Signal:  SignalForScore(score),
	}
}

// SignalForScore partitions [0,100] into the five score-based signals.
// PENDING never comes from a score; it marks entities with no
// authoritative data.
func SignalForScore(score float64) domain.Signal {
	switch {
	case score > 75:
		return domain.SignalStrongBuy
	case score > 60:
		return domain.SignalBuy
	case score > 40:
		return domain.SignalNeutral
	case score > 25:
		return domain.SignalSell
	default:
		return domain.SignalStrongSell
	}
}

// DirectionForSignal maps buy-side signals to LONG and sell-side to SHORT;
// neutral and pending setups have no direction.
func DirectionForSignal(sig domain.Signal) (domain.Direction, bool) {
	switch sig {
	case domain.SignalStrongBuy, domain.SignalBuy:
		return domain.DirectionLong, true
	case domain.SignalStrongSell, domain.SignalSell:
		return domain.DirectionShort, true
	default:
		return "", false
	}
}
