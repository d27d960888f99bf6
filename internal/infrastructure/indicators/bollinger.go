package indicators

import "math"

// squeezeThreshold is the fixed bandwidth below which the bands count as
// squeezed.
const squeezeThreshold = 0.04

// BollingerBands holds the band state over the trailing window at the last
// candle. Bandwidth = 2*mult*std/mean.
type BollingerBands struct {
	Upper     float64
	Middle    float64
	Lower     float64
	Bandwidth float64
	Squeeze   bool
}

// CalculateBollingerBands computes mean/stddev of the last period closes.
// Input shorter than period collapses all bands onto the last close with
// bandwidth 0 and no squeeze.
func CalculateBollingerBands(closes []float64, period int, multiplier float64) BollingerBands {
	if len(closes) == 0 {
		return BollingerBands{}
	}

	last := closes[len(closes)-1]
	if period < 1 || len(closes) < period {
		return BollingerBands{Upper: last, Middle: last, Lower: last}
	}

	window := closes[len(closes)-period:]
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	mean := sum / float64(period)

	sumSqDiff := 0.0
	for _, v := range window {
		diff := v - mean
		sumSqDiff += diff * diff
	}
	std := math.Sqrt(sumSqDiff / float64(period))

	bandwidth := 0.0
	if mean != 0 {
		bandwidth = 2 * multiplier * std / mean
	}

	return BollingerBands{
		Upper:     mean + multiplier*std,
		Middle:    mean,
		Lower:     mean - multiplier*std,
		Bandwidth: bandwidth,
		Squeeze:   bandwidth < squeezeThreshold,
	}
}
