package indicators

// MACD holds the Moving Average Convergence/Divergence state at the last
// candle. The zero value {0, 0, 0} is the sentinel for short input.
type MACD struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// CalculateMACD computes MACD at the last candle: line = EMA(fast) -
// EMA(slow), signal = EMA(signalPeriod) of the line, histogram = line -
// signal. Input shorter than slow+signalPeriod returns the zero sentinel.
func CalculateMACD(closes []float64, fast, slow, signalPeriod int) MACD {
	if len(closes) < slow+signalPeriod {
		return MACD{}
	}

	emaFast := CalculateEMA(closes, fast)
	emaSlow := CalculateEMA(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signal := CalculateEMA(line, signalPeriod)

	n := len(closes) - 1
	return MACD{
		Line:      line[n],
		Signal:    signal[n],
		Histogram: line[n] - signal[n],
	}
}
