package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
	"github.com/johnboisvert/tradingview-sub001/internal/infrastructure/indicators"
)

// Indicator periods shared by every timeframe.
const (
	emaFastPeriod = 9
	emaMidPeriod  = 21
	emaLongPeriod = 50

	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9

	rsiPeriod = 14
	atrPeriod = 14

	bbPeriod = 20
	bbMult   = 2.0

	stochRSIPeriod = 14
	stochPeriod    = 14
	stochKSmooth   = 3
	stochDSmooth   = 3
)

// BuildSnapshot derives one IndicatorSnapshot from a candle series. It is
// pure: no I/O, total output, light classified by the vote table below.
func BuildSnapshot(timeframe string, candles []domain.Candle) domain.IndicatorSnapshot {
	closes := domain.Closes(candles)
	highs := domain.Highs(candles)
	lows := domain.Lows(candles)
	volumes := domain.Volumes(candles)

	lastClose := 0.0
	if len(closes) > 0 {
		lastClose = closes[len(closes)-1]
	}

	macd := indicators.CalculateMACD(closes, macdFast, macdSlow, macdSignal)
	bb := indicators.CalculateBollingerBands(closes, bbPeriod, bbMult)
	stoch := indicators.CalculateStochRSI(closes, stochRSIPeriod, stochPeriod, stochKSmooth, stochDSmooth)
	vwap := indicators.CalculateVWAP(highs, lows, closes, volumes, sessionWindow(timeframe))

	snap := domain.IndicatorSnapshot{
		Timeframe:  timeframe,
		EMAFast:    indicators.LastEMA(closes, emaFastPeriod),
		EMAMid:     indicators.LastEMA(closes, emaMidPeriod),
		EMALong:    indicators.LastEMA(closes, emaLongPeriod),
		MACDLine:   macd.Line,
		MACDSignal: macd.Signal,
		MACDHist:   macd.Histogram,
		RSI:        indicators.LastRSI(closes, rsiPeriod),
		StochK:     stoch.K,
		StochD:     stoch.D,
		VWAP:       vwap,
		VWAPAbove:  lastClose > vwap,
		BBUpper:    bb.Upper,
		BBMiddle:   bb.Middle,
		BBLower:    bb.Lower,
		BBSqueeze:  bb.Squeeze,
		ATR:        indicators.CalculateATR(highs, lows, closes, atrPeriod),
		LastClose:  lastClose,
	}
	snap.Light = ClassifyLight(snap)
	return snap
}

// voteRule contributes up to weight bull points toward the light.
type voteRule struct {
	name   string
	weight int
	points func(s domain.IndicatorSnapshot) int
}

// lightVoteRules is the full weighted vote (total weight 10). Ties count as
// agreement on the EMA rule and as half weight on MACD, so sentinel-filled
// snapshots from short series land in the orange band instead of red.
var lightVoteRules = []voteRule{
	{name: "ema-alignment", weight: 3, points: func(s domain.IndicatorSnapshot) int {
		fastUp := s.EMAFast >= s.EMAMid
		priceUp := s.LastClose >= s.EMALong
		switch {
		case fastUp && priceUp:
			return 3
		case fastUp || priceUp:
			return 1
		default:
			return 0
		}
	}},
	{name: "macd-agreement", weight: 2, points: func(s domain.IndicatorSnapshot) int {
		if s.MACDHist > 0 && s.MACDLine >= s.MACDSignal {
			return 2
		}
		if s.MACDHist == 0 {
			return 1
		}
		return 0
	}},
	{name: "rsi-zone", weight: 2, points: func(s domain.IndicatorSnapshot) int {
		switch {
		case s.RSI >= 50 && s.RSI <= 70:
			return 2
		case s.RSI > 70:
			return 1
		case s.RSI < 30:
			return 1
		default:
			return 0
		}
	}},
	{name: "vwap-side", weight: 3, points: func(s domain.IndicatorSnapshot) int {
		if s.VWAPAbove {
			return 3
		}
		return 0
	}},
}

const (
	totalVoteWeight = 10
	greenThreshold  = 0.7
	redThreshold    = 0.3
)

// ClassifyLight runs the weighted vote over one snapshot.
func ClassifyLight(s domain.IndicatorSnapshot) domain.Light {
	bull := 0
	for _, rule := range lightVoteRules {
		bull += rule.points(s)
	}
	ratio := float64(bull) / float64(totalVoteWeight)
	switch {
	case ratio >= greenThreshold:
		return domain.LightGreen
	case ratio <= redThreshold:
		return domain.LightRed
	default:
		return domain.LightOrange
	}
}

// sessionWindow returns the candle count of one trading day for a
// timeframe string like "15m", "1h" or "4h". Unknown formats fall back to
// 24 candles.
func sessionWindow(timeframe string) int {
	per := 24 * time.Hour
	var unit time.Duration
	var digits string
	switch {
	case strings.HasSuffix(timeframe, "m"):
		unit = time.Minute
		digits = strings.TrimSuffix(timeframe, "m")
	case strings.HasSuffix(timeframe, "h"):
		unit = time.Hour
		digits = strings.TrimSuffix(timeframe, "h")
	case strings.HasSuffix(timeframe, "d"):
		unit = 24 * time.Hour
		digits = strings.TrimSuffix(timeframe, "d")
	default:
		return 24
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 24
	}
	window := int(per / (time.Duration(n) * unit))
	if window < 1 {
		window = 1
	}
	return window
}
