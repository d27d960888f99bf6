package indicators

import (
	"math"
	"testing"
)

func TestCalculateStochRSI_ShortInputReturnsNil(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(i)
	}
	got := CalculateStochRSI(closes, 14, 14, 3, 3)
	if got.K != nil || got.D != nil {
		t.Errorf("expected nil K/D for short input, got %+v", got)
	}
}

func TestCalculateStochRSI_Bounded(t *testing.T) {
	closes := make([]float64, 200)
	for i := range closes {
		closes[i] = 100 + 15*math.Sin(float64(i)/5)
	}
	got := CalculateStochRSI(closes, 14, 14, 3, 3)
	if got.K == nil || got.D == nil {
		t.Fatal("expected K and D for sufficient input")
	}
	if *got.K < 0 || *got.K > 100 {
		t.Errorf("%%K out of [0,100]: %f", *got.K)
	}
	if *got.D < 0 || *got.D > 100 {
		t.Errorf("%%D out of [0,100]: %f", *got.D)
	}
}

func TestCalculateStochRSI_FlatRSIWindowIsMidpoint(t *testing.T) {
	// A flat price series keeps RSI pinned at the neutral sentinel, so
	// every min-max window is degenerate and raw %K defaults to 50.
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 100
	}
	got := CalculateStochRSI(closes, 14, 14, 3, 3)
	if got.K == nil || got.D == nil {
		t.Fatal("expected K and D")
	}
	if *got.K != 50 || *got.D != 50 {
		t.Errorf("expected 50/50 for flat series, got K=%f D=%f", *got.K, *got.D)
	}
}
