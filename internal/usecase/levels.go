package usecase

import (
	"math"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

// Simple ATR variant.
const (
	atrStopMult   = 1.5
	atrTargetMult = 2.0
)

// Tight variant.
const (
	slRangeCandles = 20
	slRangeMult    = 1.5
	slMinPct       = 0.3
	slMaxPct       = 0.8

	tp1Mult = 1.2
	tp2Mult = 2.0
	tp3Mult = 3.0

	// Snap a target to a clustered S/R level when it sits within this
	// share of the SL distance around the raw target.
	snapToleranceShare = 0.4
	// Minimum step between adjacent levels after snapping, as a percent
	// of entry.
	minStepPct = 0.05
)

// ComputeTradeLevels derives the simple ATR stop/target pair. Returns nil
// when price or ATR carry their zero sentinels.
func ComputeTradeLevels(price, atr float64) *domain.TradeLevels {
	if price <= 0 || atr <= 0 {
		return nil
	}
	stop := price - atr*atrStopMult
	target := price + atr*atrTargetMult
	return &domain.TradeLevels{
		StopLoss:   stop,
		TakeProfit: target,
		RiskReward: (target - price) / (price - stop),
	}
}

// ComputeTightLevels derives the tight scalp-style levels: SL distance is
// the average candle range over the last slRangeCandles candles scaled by
// slRangeMult and clamped to [slMinPct, slMaxPct] percent of entry; the
// three targets sit at tpNMult times the SL distance, snapped to clustered
// S/R levels within tolerance. The ordering invariant (LONG: sl < entry <
// tp1 < tp2 < tp3, SHORT mirrored) is enforced after snapping.
func ComputeTightLevels(direction domain.Direction, entry float64, candles []domain.Candle, srLevels []domain.SRLevel) *domain.TightLevels {
	if entry <= 0 {
		return nil
	}

	slPct := tightStopDistancePct(candles)
	dist := entry * slPct / 100

	sign := 1.0
	if direction == domain.DirectionShort {
		sign = -1.0
	}

	sl := entry - sign*dist
	tp1 := snapToLevel(entry+sign*dist*tp1Mult, dist*snapToleranceShare, srLevels)
	tp2 := snapToLevel(entry+sign*dist*tp2Mult, dist*snapToleranceShare, srLevels)
	tp3 := snapToLevel(entry+sign*dist*tp3Mult, dist*snapToleranceShare, srLevels)

	// Re-impose ordering; snapping may have pulled a target across its
	// neighbor.
	step := entry * minStepPct / 100
	if direction == domain.DirectionLong {
		sl = math.Min(sl, entry-step)
		tp1 = math.Max(tp1, entry+step)
		tp2 = math.Max(tp2, tp1+step)
		tp3 = math.Max(tp3, tp2+step)
	} else {
		sl = math.Max(sl, entry+step)
		tp1 = math.Min(tp1, entry-step)
		tp2 = math.Min(tp2, tp1-step)
		tp3 = math.Min(tp3, tp2-step)
	}

	return &domain.TightLevels{
		Direction:     direction,
		Entry:         entry,
		StopLoss:      sl,
		TP1:           tp1,
		TP2:           tp2,
		TP3:           tp3,
		SLDistancePct: slPct,
	}
}

// tightStopDistancePct averages (high-low)/close over the last
// slRangeCandles candles, scales and clamps it.
func tightStopDistancePct(candles []domain.Candle) float64 {
	n := len(candles)
	if n == 0 {
		return slMinPct
	}
	start := maxInt(0, n-slRangeCandles)
	sum := 0.0
	count := 0
	for _, c := range candles[start:] {
		if c.Close <= 0 {
			continue
		}
		sum += (c.High - c.Low) / c.Close
		count++
	}
	if count == 0 {
		return slMinPct
	}

	pct := sum / float64(count) * slRangeMult * 100
	if pct < slMinPct {
		return slMinPct
	}
	if pct > slMaxPct {
		return slMaxPct
	}
	return pct
}

// snapToLevel moves a raw target onto the nearest S/R level when one falls
// within the tolerance band; otherwise the raw target is kept.
func snapToLevel(target, tolerance float64, levels []domain.SRLevel) float64 {
	best := target
	bestDist := tolerance
	for _, lvl := range levels {
		d := math.Abs(lvl.Price - target)
		if d <= bestDist {
			best = lvl.Price
			bestDist = d
		}
	}
	return best
}
