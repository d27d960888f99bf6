package usecase

import (
	"testing"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

func snapshotWithLight(light domain.Light) domain.IndicatorSnapshot {
	var s domain.IndicatorSnapshot
	switch light {
	case domain.LightGreen:
		s = bullishSnapshot()
	case domain.LightRed:
		s = bearishSnapshot()
	default:
		s = bearishSnapshot()
		s.VWAPAbove = true
		s.RSI = 60
	}
	s.Light = ClassifyLight(s)
	return s
}

func TestScoreCeilingTable(t *testing.T) {
	cases := []struct {
		red, orange, green int
		want               float64
	}{
		{3, 0, 0, 25},
		{2, 1, 0, 25},
		{2, 0, 1, 25},
		{1, 2, 0, 40},
		{1, 1, 1, 40},
		{1, 0, 2, 40},
		{0, 3, 0, 55},
		{0, 2, 1, 55},
		{0, 1, 2, 65},
		{0, 0, 3, 100},
	}
	for _, tc := range cases {
		if got := ScoreCeiling(tc.red, tc.orange, tc.green); got != tc.want {
			t.Errorf("ScoreCeiling(%d,%d,%d) = %f, want %f", tc.red, tc.orange, tc.green, got, tc.want)
		}
	}
}

func TestScoreCeilingMonotone(t *testing.T) {
	// Upgrading one red to orange, or one orange to green, must never
	// lower the ceiling.
	for red := 0; red <= 3; red++ {
		for orange := 0; orange+red <= 3; orange++ {
			green := 3 - red - orange
			base := ScoreCeiling(red, orange, green)
			if red > 0 && ScoreCeiling(red-1, orange+1, green) < base {
				t.Errorf("red->orange upgrade lowered ceiling at (%d,%d,%d)", red, orange, green)
			}
			if orange > 0 && ScoreCeiling(red, orange-1, green+1) < base {
				t.Errorf("orange->green upgrade lowered ceiling at (%d,%d,%d)", red, orange, green)
			}
		}
	}
}

func TestComputeScoreCappedByRedLight(t *testing.T) {
	// A strongly bullish short and medium timeframe cannot push the score
	// past the one-red ceiling when the long timeframe disagrees.
	in := ScoreInput{
		Short:  snapshotWithLight(domain.LightGreen),
		Medium: snapshotWithLight(domain.LightGreen),
		Long:   snapshotWithLight(domain.LightRed),
		Price:  120,
	}
	res := ComputeScore(in)
	if res.Ceiling != 40 {
		t.Fatalf("ceiling = %f, want 40", res.Ceiling)
	}
	if res.Score > 40 {
		t.Fatalf("score %f exceeds ceiling 40", res.Score)
	}
	if res.Raw < res.Score {
		t.Fatalf("raw %f should be at least the capped score %f", res.Raw, res.Score)
	}
}

func TestComputeScoreAllGreenReachesStrongBuy(t *testing.T) {
	green := snapshotWithLight(domain.LightGreen)
	in := ScoreInput{Short: green, Medium: green, Long: green, Price: 120}
	res := ComputeScore(in)
	if res.Ceiling != 100 {
		t.Fatalf("ceiling = %f, want 100", res.Ceiling)
	}
	if res.Score <= 75 {
		t.Fatalf("all-green triple scored %f, want > 75", res.Score)
	}
	if res.Signal != domain.SignalStrongBuy {
		t.Fatalf("signal = %s, want STRONG_BUY", res.Signal)
	}
}

func TestComputeScoreAllRedIsStrongSell(t *testing.T) {
	red := snapshotWithLight(domain.LightRed)
	in := ScoreInput{Short: red, Medium: red, Long: red, Price: 95}
	res := ComputeScore(in)
	if res.Ceiling != 25 {
		t.Fatalf("ceiling = %f, want 25", res.Ceiling)
	}
	if res.Signal != domain.SignalStrongSell {
		t.Fatalf("signal = %s, want STRONG_SELL", res.Signal)
	}
}

func TestSignalForScorePartition(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.Signal
	}{
		{100, domain.SignalStrongBuy},
		{75.5, domain.SignalStrongBuy},
		{75, domain.SignalBuy},
		{61, domain.SignalBuy},
		{60, domain.SignalNeutral},
		{41, domain.SignalNeutral},
		{40, domain.SignalSell},
		{26, domain.SignalSell},
		{25, domain.SignalStrongSell},
		{0, domain.SignalStrongSell},
	}
	for _, tc := range cases {
		got := SignalForScore(tc.score)
		if got != tc.want {
			t.Errorf("SignalForScore(%f) = %s, want %s", tc.score, got, tc.want)
		}
		if got == domain.SignalPending {
			t.Errorf("score %f mapped to PENDING", tc.score)
		}
	}
}

func TestDirectionForSignal(t *testing.T) {
	if dir, ok := DirectionForSignal(domain.SignalStrongBuy); !ok || dir != domain.DirectionLong {
		t.Fatal("STRONG_BUY should map to LONG")
	}
	if dir, ok := DirectionForSignal(domain.SignalSell); !ok || dir != domain.DirectionShort {
		t.Fatal("SELL should map to SHORT")
	}
	if _, ok := DirectionForSignal(domain.SignalNeutral); ok {
		t.Fatal("NEUTRAL should have no direction")
	}
	if _, ok := DirectionForSignal(domain.SignalPending); ok {
		t.Fatal("PENDING should have no direction")
	}
}
