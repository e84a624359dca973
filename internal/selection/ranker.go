package selection

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/logger"
	"github.com/wonny/momentum-screener/pkg/numeric"
)

// ErrInsufficientSurvivors is returned when fewer than top-N instruments pass the trend filter
var ErrInsufficientSurvivors = errors.New("insufficient survivors after trend filter")

// Ranker implements S4: percentile composite ranking
// ⭐ SSOT: S4 랭킹 로직은 여기서만
type Ranker struct {
	weights WeightConfig
	topN    int
	logger  *logger.Logger
}

// WeightConfig defines window weights for composite score calculation
type WeightConfig struct {
	Mom12M float64 // 12개월 (기본: 0.40)
	Mom6M  float64 // 6개월 (기본: 0.35)
	Mom3M  float64 // 3개월 (기본: 0.25)
}

// NewRanker creates a new ranker
func NewRanker(weights WeightConfig, topN int, logger *logger.Logger) *Ranker {
	if !weights.ValidateWeights() {
		logger.WithFields(map[string]interface{}{
			"mom_12m": weights.Mom12M,
			"mom_6m":  weights.Mom6M,
			"mom_3m":  weights.Mom3M,
			"sum":     weights.Mom12M + weights.Mom6M + weights.Mom3M,
		}).Warn("Ranking weights do not sum to 1.0")
	}
	return &Ranker{
		weights: weights,
		topN:    topN,
		logger:  logger,
	}
}

// Rank calculates composite scores and ranks every survivor
// 동점은 입력 순서 유지 (stable sort)
func (r *Ranker) Rank(ctx context.Context, survivors []contracts.StockMetrics) ([]contracts.RankedStock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(survivors) < r.topN {
		return nil, fmt.Errorf("%w: %d < top %d", ErrInsufficientSurvivors, len(survivors), r.topN)
	}

	n := len(survivors)
	mom12 := make([]float64, n)
	mom6 := make([]float64, n)
	mom3 := make([]float64, n)
	for i, m := range survivors {
		mom12[i] = m.Mom12M
		mom6[i] = m.Mom6M
		mom3[i] = m.Mom3M
	}

	p12 := PercentileRanks(mom12)
	p6 := PercentileRanks(mom6)
	p3 := PercentileRanks(mom3)

	ranked := make([]contracts.RankedStock, n)
	for i, m := range survivors {
		ranked[i] = contracts.RankedStock{
			StockMetrics: m,
			Composite:    r.calculateComposite(p12[i], p6[i], p3[i]),
		}
	}

	// Sort by composite (descending)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Composite > ranked[j].Composite
	})

	// Assign ranks
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	if n > 0 {
		r.logger.WithFields(map[string]interface{}{
			"total_stocks": n,
			"top_score":    ranked[0].Composite,
			"top_ticker":   ranked[0].Ticker,
		}).Info("Ranking completed")
	}

	return ranked, nil
}

// calculateComposite calculates weighted composite score (2자리 반올림)
func (r *Ranker) calculateComposite(p12, p6, p3 float64) float64 {
	return numeric.Round(
		p12*r.weights.Mom12M+
			p6*r.weights.Mom6M+
			p3*r.weights.Mom3M, 2)
}

// PercentileRanks maps each value to its percentile position (0~100)
// position = 오름차순 정렬에서 첫 등장 인덱스 / max(N-1, 1) * 100
// 동점은 평균하지 않고 첫 인덱스를 공유
func PercentileRanks(values []float64) []float64 {
	n := len(values)
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	denom := float64(n - 1)
	if n < 2 {
		denom = 1
	}

	out := make([]float64, n)
	for i, v := range values {
		idx := sort.SearchFloat64s(sorted, v)
		out[i] = float64(idx) / denom * 100
	}
	return out
}

// ValidateWeights checks if weights sum to 1.0
func (w *WeightConfig) ValidateWeights() bool {
	sum := w.Mom12M + w.Mom6M + w.Mom3M
	// Allow small floating point error
	return math.Abs(sum-1.0) <= 1e-6
}
