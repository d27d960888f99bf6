package indicators

import "math"

// CalculateATR computes Wilder's Average True Range at the last candle.
// The seed is a simple mean of the first period true ranges, then
// atr = (atr*(period-1) + tr) / period. Input shorter than period+1
// returns the 0 sentinel.
func CalculateATR(highs, lows, closes []float64, period int) float64 {
	length := len(closes)
	if period < 1 || length < period+1 || len(highs) < length || len(lows) < length {
		return 0
	}

	trs := make([]float64, length)
	trs[0] = highs[0] - lows[0]
	for i := 1; i < length; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		trs[i] = math.Max(hl, math.Max(hc, lc))
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += trs[i]
	}
	atr := sum / float64(period)

	for i := period; i < length; i++ {
		atr = (atr*float64(period-1) + trs[i]) / float64(period)
	}

	return atr
}
