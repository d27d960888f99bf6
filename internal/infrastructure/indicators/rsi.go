package indicators

// NeutralRSI is the sentinel returned when the series is too short to
// compute RSI, and the chosen convention for a perfectly flat series
// (avgGain = avgLoss = 0).
const NeutralRSI = 50.0

// CalculateRSISeries computes Wilder's RSI. Values at indices before the
// first computable point hold NeutralRSI, so the series is total.
func CalculateRSISeries(closes []float64, period int) []float64 {
	rsi := make([]float64, len(closes))
	for i := range rsi {
		rsi[i] = NeutralRSI
	}
	if period < 1 || len(closes) < period+1 {
		return rsi
	}

	gains := make([]float64, 0, len(closes)-1)
	losses := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	sumGain, sumLoss := 0.0, 0.0
	for i := 0; i < period; i++ {
		sumGain += gains[i]
		sumLoss += losses[i]
	}
	avgGain := sumGain / float64(period)
	avgLoss := sumLoss / float64(period)

	rsi[period] = rsiValue(avgGain, avgLoss)

	// Wilder smoothing: avg = (avg*(period-1) + current) / period.
	for i := period + 1; i < len(closes); i++ {
		avgGain = ((avgGain * float64(period-1)) + gains[i-1]) / float64(period)
		avgLoss = ((avgLoss * float64(period-1)) + losses[i-1]) / float64(period)
		rsi[i] = rsiValue(avgGain, avgLoss)
	}

	return rsi
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			// Flat series: both averages zero.
			return NeutralRSI
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// LastRSI returns the most recent RSI value, or NeutralRSI when the input
// is shorter than period+1.
func LastRSI(closes []float64, period int) float64 {
	if period < 1 || len(closes) < period+1 {
		return NeutralRSI
	}
	rsi := CalculateRSISeries(closes, period)
	return rsi[len(rsi)-1]
}
