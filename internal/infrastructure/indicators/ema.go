package indicators

// CalculateEMA computes the Exponential Moving Average series.
//
// The series is seeded with the first raw sample rather than an SMA of the
// first period samples, so it is defined at every index. This deviates from
// the conventional EMA definition and is kept deliberately for behavioral
// compatibility with the charted values.
func CalculateEMA(data []float64, period int) []float64 {
	ema := make([]float64, len(data))
	if len(data) == 0 {
		return ema
	}
	if period < 1 {
		period = 1
	}

	k := 2.0 / (float64(period) + 1.0)

	ema[0] = data[0]
	for i := 1; i < len(data); i++ {
		ema[i] = (data[i] * k) + (ema[i-1] * (1 - k))
	}

	return ema
}

// LastEMA returns the most recent EMA value, or 0 for an empty series.
func LastEMA(data []float64, period int) float64 {
	if len(data) == 0 {
		return 0
	}
	ema := CalculateEMA(data, period)
	return ema[len(ema)-1]
}
