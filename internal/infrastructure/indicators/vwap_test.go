package indicators

import (
	"math"
	"testing"
)

func TestCalculateVWAP_SingleCandleIsTypicalPrice(t *testing.T) {
	got := CalculateVWAP([]float64{12}, []float64{8}, []float64{10}, []float64{100}, 1)
	want := (12.0 + 8.0 + 10.0) / 3.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestCalculateVWAP_ZeroVolumeFallsBackToLastClose(t *testing.T) {
	got := CalculateVWAP([]float64{12, 13}, []float64{8, 9}, []float64{10, 11}, []float64{0, 0}, 2)
	if got != 11 {
		t.Errorf("expected last close 11 for zero volume, got %f", got)
	}
}

func TestCalculateVWAP_WeightsByVolume(t *testing.T) {
	// Second candle carries 9x the volume; VWAP must sit near its typical
	// price.
	h := []float64{10, 20}
	l := []float64{10, 20}
	c := []float64{10, 20}
	v := []float64{1, 9}
	got := CalculateVWAP(h, l, c, v, 2)
	if math.Abs(got-19) > 1e-12 {
		t.Errorf("expected 19, got %f", got)
	}
}

func TestCalculateVWAP_WindowLimitsSession(t *testing.T) {
	h := []float64{100, 10}
	l := []float64{100, 10}
	c := []float64{100, 10}
	v := []float64{5, 5}
	// Window of 1 ignores the older candle entirely.
	if got := CalculateVWAP(h, l, c, v, 1); got != 10 {
		t.Errorf("expected 10 with window 1, got %f", got)
	}
}
