package indicators

// CalculateVWAP computes the Volume Weighted Average Price over the last
// window candles (the session-relative intraday window; callers pass the
// candle count of one trading day for the timeframe). With zero traded
// volume the last close is returned so the value stays total.
func CalculateVWAP(highs, lows, closes, volumes []float64, window int) float64 {
	n := len(closes)
	if n == 0 || len(highs) < n || len(lows) < n || len(volumes) < n {
		return 0
	}
	if window < 1 || window > n {
		window = n
	}

	sumTPV := 0.0
	sumVol := 0.0
	for i := n - window; i < n; i++ {
		typical := (highs[i] + lows[i] + closes[i]) / 3.0
		sumTPV += typical * volumes[i]
		sumVol += volumes[i]
	}

	if sumVol == 0 {
		return closes[n-1]
	}
	return sumTPV / sumVol
}
