package s2_signals

import "math"

// TrendStrength calculates RSL: latest close / SMA of the trailing period closes
// ok=false: 이력 부족 또는 평균 ≤ 0
func TrendStrength(closes []float64, period int) (float64, bool) {
	n := len(closes)
	if period <= 0 || n < period {
		return 0, false
	}

	sma := calculateSMA(closes[n-period:])
	if sma <= 0 || math.IsNaN(sma) {
		return 0, false
	}

	return closes[n-1] / sma, true
}

func calculateSMA(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
