package strategyconfig

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	// === Data ===
	if cfg.Data.MinSessions <= 0 {
		return ValidationError{"data.min_sessions", "must be > 0"}
	}
	if cfg.Data.LookbackCalendarDays <= 0 {
		return ValidationError{"data.lookback_calendar_days", "must be > 0"}
	}

	// === Signals ===
	m := cfg.Signals.Momentum
	if m.SkipDays < 1 {
		return ValidationError{"signals.momentum.skip_days", "must be >= 1"}
	}
	if m.Lookback3M <= 0 || m.Lookback6M <= 0 || m.Lookback12M <= 0 {
		return ValidationError{"signals.momentum", "lookbacks must be > 0"}
	}
	if !(m.Lookback3M < m.Lookback6M && m.Lookback6M < m.Lookback12M) {
		return ValidationError{"signals.momentum", "lookbacks must satisfy 3m < 6m < 12m"}
	}
	if cfg.Signals.Trend.RSLPeriod <= 0 {
		return ValidationError{"signals.trend.rsl_period", "must be > 0"}
	}

	// === Screening ===
	if cfg.Screening.MinRSL <= 0 || math.IsNaN(cfg.Screening.MinRSL) {
		return ValidationError{"screening.min_rsl", "must be > 0"}
	}

	// === Ranking ===
	w := cfg.Ranking.Weights
	if err := validateWeightsSum([]float64{w.Mom12M, w.Mom6M, w.Mom3M}, 1.0, 1e-6); err != nil {
		return ValidationError{"ranking.weights", err.Error()}
	}
	if cfg.Ranking.TopN <= 0 {
		return ValidationError{"ranking.top_n", "must be > 0"}
	}

	// === History ===
	if cfg.History.MaxEntries <= 0 {
		return ValidationError{"history.max_entries", "must be > 0"}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	// 조회 기간이 12개월 구간을 담기에 부족
	// 252 거래일 ≈ 365 달력일
	needed := int(float64(cfg.Signals.Momentum.RequiredSessions()) * 365 / 252)
	if cfg.Data.LookbackCalendarDays < needed {
		warnings = append(warnings, Warning{
			Code:    "SHORT_LOOKBACK",
			Message: fmt.Sprintf("lookback_calendar_days=%d < ~%d: 12M 모멘텀 계산 불가 종목 증가", cfg.Data.LookbackCalendarDays, needed),
		})
	}

	if cfg.Data.MinSessions < cfg.Signals.Trend.RSLPeriod {
		warnings = append(warnings, Warning{
			Code:    "MIN_SESSIONS_BELOW_RSL",
			Message: "min_sessions < rsl_period: RSL 미정의 종목이 수집 단계를 통과함",
		})
	}

	if cfg.Screening.MinRSL < 1.0 {
		warnings = append(warnings, Warning{
			Code:    "LOOSE_TREND_FILTER",
			Message: "min_rsl < 1.0: 이동평균 하회 종목 허용",
		})
	}

	return warnings
}

// === Helper Functions ===

func validateWeightsSum(weights []float64, target float64, epsilon float64) error {
	if len(weights) == 0 {
		return errors.New("must not be empty")
	}
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("must be non-negative, got %.4f", w)
		}
		sum += w
	}
	if math.Abs(sum-target) > epsilon {
		return fmt.Errorf("must sum to %.2f, got %.4f", target, sum)
	}
	return nil
}
