package usecase

import (
	"math"
	"testing"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

// rangeCandles builds a series oscillating between lo and hi so both
// extremes repeat as local minima and maxima.
func rangeCandles(lo, hi float64, n int) []domain.Candle {
	candles := make([]domain.Candle, n)
	for i := range candles {
		mid := (lo + hi) / 2
		span := (hi - lo) / 2
		offset := span * math.Sin(float64(i)/8)
		c := mid + offset
		candles[i] = domain.Candle{
			OpenTime: int64(i) * 3600_000,
			Open:     c,
			High:     c + span*0.1,
			Low:      c - span*0.1,
			Close:    c,
			Volume:   100,
		}
	}
	return candles
}

func TestDetectSRLevelsSidesPartitioned(t *testing.T) {
	price := 100.0
	levels := DetectSRLevels(rangeCandles(90, 110, 300), price, "1h")
	if len(levels) == 0 {
		t.Fatal("expected levels from an oscillating series")
	}
	for _, lvl := range levels {
		switch lvl.Kind {
		case domain.SRSupport:
			if lvl.Price >= price {
				t.Errorf("support %f at or above price %f", lvl.Price, price)
			}
		case domain.SRResistance:
			if lvl.Price <= price {
				t.Errorf("resistance %f at or below price %f", lvl.Price, price)
			}
		default:
			t.Errorf("unexpected kind %q", lvl.Kind)
		}
		if lvl.SourceTimeframe != "1h" {
			t.Errorf("source timeframe = %q, want 1h", lvl.SourceTimeframe)
		}
	}
}

func TestDetectSRLevelsMaxPerSide(t *testing.T) {
	levels := DetectSRLevels(rangeCandles(50, 150, 300), 100, "1h")
	supports, resistances := 0, 0
	for _, lvl := range levels {
		if lvl.Kind == domain.SRSupport {
			supports++
		} else {
			resistances++
		}
	}
	if supports > srMaxPerSide {
		t.Errorf("%d supports, max %d", supports, srMaxPerSide)
	}
	if resistances > srMaxPerSide {
		t.Errorf("%d resistances, max %d", resistances, srMaxPerSide)
	}
}

func TestDetectSRLevelsEmptyInput(t *testing.T) {
	if got := DetectSRLevels(nil, 100, "1h"); got != nil {
		t.Fatalf("expected nil for empty candles, got %v", got)
	}
	if got := DetectSRLevels(rangeCandles(90, 110, 50), 0, "1h"); got != nil {
		t.Fatalf("expected nil for zero price, got %v", got)
	}
}

func TestClusterPricesMergesNearbyValues(t *testing.T) {
	// Three values within 0.5% of each other collapse to one cluster,
	// the distant one stays separate.
	clusters := clusterPrices([]float64{100.0, 100.2, 100.4, 120.0})
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2: %v", len(clusters), clusters)
	}
	if math.Abs(clusters[0]-100.2) > 0.2 {
		t.Errorf("first cluster mean %f, want near 100.2", clusters[0])
	}
	if clusters[1] != 120.0 {
		t.Errorf("second cluster %f, want 120", clusters[1])
	}
}

func TestSRStrengthByDistance(t *testing.T) {
	if srStrength(100.5, 100) != domain.SRMajor {
		t.Error("level within 1% of price should be MAJOR")
	}
	if srStrength(110, 100) != domain.SRMinor {
		t.Error("level 10% away should be MINOR")
	}
}
