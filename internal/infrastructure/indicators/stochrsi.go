package indicators

// StochRSI is the stochastic oscillator applied to the RSI series. K and D
// are nil when the input is too short.
type StochRSI struct {
	K *float64
	D *float64
}

// CalculateStochRSI min-max normalizes each RSI value against the trailing
// stochPeriod window into raw %K (50 when the window is flat), smooths raw
// %K with a kSmooth simple average, then averages %K over dSmooth into %D.
// Requires len(closes) >= rsiPeriod+stochPeriod+kSmooth+dSmooth.
func CalculateStochRSI(closes []float64, rsiPeriod, stochPeriod, kSmooth, dSmooth int) StochRSI {
	if rsiPeriod < 1 || stochPeriod < 1 || kSmooth < 1 || dSmooth < 1 {
		return StochRSI{}
	}
	if len(closes) < rsiPeriod+stochPeriod+kSmooth+dSmooth {
		return StochRSI{}
	}

	// Only the computed portion of the RSI series; the leading sentinel
	// values would skew the min-max window.
	rsi := CalculateRSISeries(closes, rsiPeriod)[rsiPeriod:]

	raw := make([]float64, 0, len(rsi)-stochPeriod+1)
	for i := stochPeriod - 1; i < len(rsi); i++ {
		lo, hi := rsi[i-stochPeriod+1], rsi[i-stochPeriod+1]
		for _, v := range rsi[i-stochPeriod+1 : i+1] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if hi == lo {
			raw = append(raw, 50)
		} else {
			raw = append(raw, (rsi[i]-lo)/(hi-lo)*100)
		}
	}

	// %K values for the last dSmooth positions, then %D as their mean.
	kVals := make([]float64, 0, dSmooth)
	for j := len(raw) - dSmooth; j < len(raw); j++ {
		kVals = append(kVals, mean(raw[j-kSmooth+1:j+1]))
	}

	k := kVals[len(kVals)-1]
	d := mean(kVals)
	return StochRSI{K: &k, D: &d}
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}
