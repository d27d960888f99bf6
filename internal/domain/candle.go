package domain

import "time"

// Candle is one time-bucketed OHLCV bar. Within a series, OpenTime is
// strictly increasing and the series is ordered oldest to newest.
type Candle struct {
	OpenTime int64   `json:"openTime"` // unix millis
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume"`
}

// Closes extracts the close series from a candle slice.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Highs extracts the high series from a candle slice.
func Highs(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.High
	}
	return out
}

// Lows extracts the low series from a candle slice.
func Lows(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Low
	}
	return out
}

// Volumes extracts the volume series from a candle slice.
func Volumes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}
	return out
}

// ApproxCandlesFromCloses synthesizes candles from a bare close series, for
// sources that only publish a coarse price history. High/low are taken from
// adjacent closes and totalVolume is amortized evenly across the points.
func ApproxCandlesFromCloses(closes []float64, totalVolume float64, interval time.Duration, end time.Time) []Candle {
	n := len(closes)
	if n == 0 {
		return nil
	}

	perCandle := 0.0
	if totalVolume > 0 {
		perCandle = totalVolume / float64(n)
	}

	candles := make([]Candle, n)
	for i, close := range closes {
		open := close
		if i > 0 {
			open = closes[i-1]
		}
		high, low := open, close
		if close > open {
			high, low = close, open
		}
		openTime := end.Add(-time.Duration(n-i) * interval)
		candles[i] = Candle{
			OpenTime: openTime.UnixMilli(),
			Open:     open,
			High:     high,
			Low:      low,
			Close:    close,
			Volume:   perCandle,
		}
	}
	return candles
}
