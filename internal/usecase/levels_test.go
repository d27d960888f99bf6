package usecase

import (
	"math"
	"testing"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

func TestComputeTradeLevels(t *testing.T) {
	levels := ComputeTradeLevels(100, 2)
	if levels == nil {
		t.Fatal("expected levels for valid inputs")
	}
	if levels.StopLoss != 97 {
		t.Errorf("stop = %f, want 97", levels.StopLoss)
	}
	if levels.TakeProfit != 104 {
		t.Errorf("target = %f, want 104", levels.TakeProfit)
	}
	if math.Abs(levels.RiskReward-4.0/3.0) > 1e-9 {
		t.Errorf("rr = %f, want %f", levels.RiskReward, 4.0/3.0)
	}
}

func TestComputeTradeLevelsSentinels(t *testing.T) {
	if ComputeTradeLevels(0, 2) != nil {
		t.Error("zero price should yield nil levels")
	}
	if ComputeTradeLevels(100, 0) != nil {
		t.Error("zero ATR should yield nil levels")
	}
}

func flatCandles(price, rangePct float64, n int) []domain.Candle {
	candles := make([]domain.Candle, n)
	for i := range candles {
		candles[i] = domain.Candle{
			OpenTime: int64(i) * 3600_000,
			Open:     price,
			High:     price * (1 + rangePct/200),
			Low:      price * (1 - rangePct/200),
			Close:    price,
			Volume:   100,
		}
	}
	return candles
}

func TestComputeTightLevelsLongOrdering(t *testing.T) {
	entry := 100.0
	tl := ComputeTightLevels(domain.DirectionLong, entry, flatCandles(entry, 0.5, 50), nil)
	if tl == nil {
		t.Fatal("expected tight levels")
	}
	if !(tl.StopLoss < entry && entry < tl.TP1 && tl.TP1 < tl.TP2 && tl.TP2 < tl.TP3) {
		t.Fatalf("LONG ordering violated: sl=%f entry=%f tp1=%f tp2=%f tp3=%f",
			tl.StopLoss, entry, tl.TP1, tl.TP2, tl.TP3)
	}
	if tl.SLDistancePct < slMinPct || tl.SLDistancePct > slMaxPct {
		t.Fatalf("SL distance %f%% outside [%f, %f]", tl.SLDistancePct, slMinPct, slMaxPct)
	}
}

func TestComputeTightLevelsShortOrdering(t *testing.T) {
	entry := 100.0
	tl := ComputeTightLevels(domain.DirectionShort, entry, flatCandles(entry, 0.5, 50), nil)
	if tl == nil {
		t.Fatal("expected tight levels")
	}
	if !(tl.StopLoss > entry && entry > tl.TP1 && tl.TP1 > tl.TP2 && tl.TP2 > tl.TP3) {
		t.Fatalf("SHORT ordering violated: sl=%f entry=%f tp1=%f tp2=%f tp3=%f",
			tl.StopLoss, entry, tl.TP1, tl.TP2, tl.TP3)
	}
}

func TestComputeTightLevelsSnapsToNearbyLevel(t *testing.T) {
	entry := 100.0
	candles := flatCandles(entry, 1.0, 50)
	// SL distance is clamped to slMaxPct (0.8%), so TP1 sits near 100.96.
	// A resistance just beside it should capture the target.
	res := []domain.SRLevel{{Price: 101.05, Kind: domain.SRResistance, Strength: domain.SRMinor, SourceTimeframe: "1h"}}
	tl := ComputeTightLevels(domain.DirectionLong, entry, candles, res)
	if tl == nil {
		t.Fatal("expected tight levels")
	}
	if tl.TP1 != 101.05 {
		t.Fatalf("TP1 = %f, want snapped 101.05", tl.TP1)
	}
}

func TestComputeTightLevelsOrderingSurvivesBadSnap(t *testing.T) {
	entry := 100.0
	candles := flatCandles(entry, 1.0, 50)
	// Snapping TP1 down toward a nearby level must keep the full ladder
	// ordered above the entry.
	res := []domain.SRLevel{{Price: 100.7, Kind: domain.SRResistance, Strength: domain.SRMinor, SourceTimeframe: "1h"}}
	tl := ComputeTightLevels(domain.DirectionLong, entry, candles, res)
	if tl == nil {
		t.Fatal("expected tight levels")
	}
	if !(tl.TP1 > entry && tl.TP1 < tl.TP2 && tl.TP2 < tl.TP3) {
		t.Fatalf("ordering violated after snap: tp1=%f tp2=%f tp3=%f", tl.TP1, tl.TP2, tl.TP3)
	}
}

func TestComputeTightLevelsZeroEntry(t *testing.T) {
	if ComputeTightLevels(domain.DirectionLong, 0, nil, nil) != nil {
		t.Fatal("zero entry should yield nil")
	}
}

func TestTightStopDistanceClamped(t *testing.T) {
	// A tiny range clamps to the minimum.
	if got := tightStopDistancePct(flatCandles(100, 0.01, 50)); got != slMinPct {
		t.Errorf("tiny range pct = %f, want clamp %f", got, slMinPct)
	}
	// A huge range clamps to the maximum.
	if got := tightStopDistancePct(flatCandles(100, 10, 50)); got != slMaxPct {
		t.Errorf("huge range pct = %f, want clamp %f", got, slMaxPct)
	}
	// No candles falls back to the minimum.
	if got := tightStopDistancePct(nil); got != slMinPct {
		t.Errorf("empty pct = %f, want %f", got, slMinPct)
	}
}
