package selection

import (
	"context"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/logger"
)

// Screener implements S3: trend filter
// ⭐ SSOT: S3 스크리닝 로직은 여기서만
type Screener struct {
	config ScreenerConfig
	logger *logger.Logger
}

// ScreenerConfig defines hard cut conditions
// SSOT: config/strategy/compound_momentum.yaml screening
type ScreenerConfig struct {
	MinRSL float64 // RSL 최소값 (기본: 1.0 = 이동평균 이상)
}

// NewScreener creates a new screener
func NewScreener(config ScreenerConfig, logger *logger.Logger) *Screener {
	return &Screener{
		config: config,
		logger: logger,
	}
}

// Screen drops instruments below the trend threshold, keeping input order
func (s *Screener) Screen(ctx context.Context, metrics []contracts.StockMetrics) ([]contracts.StockMetrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	passed := make([]contracts.StockMetrics, 0, len(metrics))
	filtered := make(map[string]int) // Filter name -> count

	for _, m := range metrics {
		reason := s.checkConditions(m)
		if reason == "" {
			passed = append(passed, m)
		} else {
			filtered[reason]++
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"input":    len(metrics),
		"passed":   len(passed),
		"filtered": filtered,
	}).Info("Screening completed")

	return passed, nil
}

// checkConditions returns the filter name that rejected m, or ""
func (s *Screener) checkConditions(m contracts.StockMetrics) string {
	if !m.InUptrend(s.config.MinRSL) {
		return "below_trend"
	}
	return ""
}
