package usecase

import (
	"math"
	"sort"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

const (
	srHalfWidth        = 3     // extremum window half-width, in candles
	srClusterTolerance = 0.005 // 0.5% relative distance to the cluster mean
	srMajorDistance    = 0.01  // within 1% of current price counts as major
	srMaxPerSide       = 4
)

// DetectSRLevels finds local price extrema in the candle window, clusters
// them into levels and keeps the nearest srMaxPerSide on each side of the
// current price. All supports sit below currentPrice and all resistances
// above it.
func DetectSRLevels(candles []domain.Candle, currentPrice float64, timeframe string) []domain.SRLevel {
	if len(candles) == 0 || currentPrice <= 0 {
		return nil
	}

	var minima, maxima []float64
	for i := range candles {
		lo, hi := true, true
		for j := maxInt(0, i-srHalfWidth); j <= minInt(len(candles)-1, i+srHalfWidth); j++ {
			if j == i {
				continue
			}
			if candles[j].Low < candles[i].Low {
				lo = false
			}
			if candles[j].High > candles[i].High {
				hi = false
			}
		}
		if lo {
			minima = append(minima, candles[i].Low)
		}
		if hi {
			maxima = append(maxima, candles[i].High)
		}
	}

	supports := filterBelow(clusterPrices(minima), currentPrice)
	resistances := filterAbove(clusterPrices(maxima), currentPrice)

	// Nearest-first on both sides.
	sort.Sort(sort.Reverse(sort.Float64Slice(supports)))
	sort.Float64s(resistances)
	if len(supports) > srMaxPerSide {
		supports = supports[:srMaxPerSide]
	}
	if len(resistances) > srMaxPerSide {
		resistances = resistances[:srMaxPerSide]
	}

	levels := make([]domain.SRLevel, 0, len(supports)+len(resistances))
	for _, p := range supports {
		levels = append(levels, domain.SRLevel{
			Price:           p,
			Kind:            domain.SRSupport,
			Strength:        srStrength(p, currentPrice),
			SourceTimeframe: timeframe,
		})
	}
	for _, p := range resistances {
		levels = append(levels, domain.SRLevel{
			Price:           p,
			Kind:            domain.SRResistance,
			Strength:        srStrength(p, currentPrice),
			SourceTimeframe: timeframe,
		})
	}
	return levels
}

// clusterPrices sorts the extrema and greedily merges consecutive values
// whose relative distance to the running cluster mean stays below the
// tolerance. Each cluster collapses to its mean.
func clusterPrices(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var clusters []float64
	sum := sorted[0]
	count := 1
	for _, v := range sorted[1:] {
		avg := sum / float64(count)
		if avg > 0 && (v-avg)/avg < srClusterTolerance {
			sum += v
			count++
			continue
		}
		clusters = append(clusters, avg)
		sum = v
		count = 1
	}
	clusters = append(clusters, sum/float64(count))
	return clusters
}

func srStrength(price, current float64) domain.SRStrength {
	if math.Abs(price-current)/current <= srMajorDistance {
		return domain.SRMajor
	}
	return domain.SRMinor
}

func filterBelow(values []float64, limit float64) []float64 {
	out := values[:0]
	for _, v := range values {
		if v < limit {
			out = append(out, v)
		}
	}
	return out
}

func filterAbove(values []float64, limit float64) []float64 {
	out := values[:0]
	for _, v := range values {
		if v > limit {
			out = append(out, v)
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
