package s2_signals

import "math"

// DefaultSkipDays excludes the most recent month (≈21 sessions)
const DefaultSkipDays = 21

// MomentumReturn calculates the percentage change between the close
// lookback+skip sessions ago and the close skip sessions ago.
// closes must be chronologically ascending.
// ok=false: 이력 부족 또는 시작 가격 ≤ 0
func MomentumReturn(closes []float64, lookback, skip int) (float64, bool) {
	if lookback <= 0 || skip < 0 {
		return 0, false
	}
	n := len(closes)
	if n < lookback+skip {
		return 0, false
	}

	start := closes[n-(lookback+skip)]
	if start <= 0 || math.IsNaN(start) {
		return 0, false
	}

	// skip == 0 → 최근 종가
	end := closes[n-1]
	if skip > 0 {
		end = closes[n-skip]
	}
	if math.IsNaN(end) {
		return 0, false
	}

	return (end/start - 1) * 100, true
}
