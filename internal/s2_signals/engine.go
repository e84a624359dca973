package s2_signals

import (
	"errors"
	"fmt"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/internal/strategyconfig"
	"github.com/wonny/momentum-screener/pkg/logger"
	"github.com/wonny/momentum-screener/pkg/numeric"
)

// ErrInsufficientHistory is returned when any metric is undefined for a series
var ErrInsufficientHistory = errors.New("insufficient history")

// MetricConfig holds the window lengths (trading sessions)
type MetricConfig struct {
	LongWindow   int // 12M
	MediumWindow int // 6M
	ShortWindow  int // 3M
	SkipDays     int
	RSLPeriod    int
}

// MetricConfigFrom extracts metric windows from the strategy config
func MetricConfigFrom(cfg *strategyconfig.Config) MetricConfig {
	m := cfg.Signals.Momentum
	return MetricConfig{
		LongWindow:   m.Lookback12M,
		MediumWindow: m.Lookback6M,
		ShortWindow:  m.Lookback3M,
		SkipDays:     m.SkipDays,
		RSLPeriod:    cfg.Signals.Trend.RSLPeriod,
	}
}

// Engine computes per-instrument momentum metrics
// ⭐ SSOT: 모멘텀/RSL 계산은 여기서만
type Engine struct {
	cfg    MetricConfig
	logger *logger.Logger
}

// NewEngine creates a new metric engine
func NewEngine(cfg MetricConfig, log *logger.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: log,
	}
}

// Config returns the engine's window configuration
func (e *Engine) Config() MetricConfig {
	return e.cfg
}

// Compute builds StockMetrics for one instrument
// 가격 2자리, RSL 4자리, 모멘텀 2자리 반올림
func (e *Engine) Compute(name string, series *contracts.PriceSeries) (contracts.StockMetrics, error) {
	closes := series.Closes()

	mom12, ok12 := MomentumReturn(closes, e.cfg.LongWindow, e.cfg.SkipDays)
	mom6, ok6 := MomentumReturn(closes, e.cfg.MediumWindow, e.cfg.SkipDays)
	mom3, ok3 := MomentumReturn(closes, e.cfg.ShortWindow, e.cfg.SkipDays)
	rsl, okRSL := TrendStrength(closes, e.cfg.RSLPeriod)

	if !(ok12 && ok6 && ok3 && okRSL) {
		return contracts.StockMetrics{}, fmt.Errorf("%s: %w (%d days)", series.Ticker, ErrInsufficientHistory, len(closes))
	}

	latest, _ := series.Latest()
	metrics := contracts.StockMetrics{
		Name:   name,
		Ticker: series.Ticker,
		Price:  numeric.Round(latest.Close, 2),
		RSL:    numeric.Round(rsl, 4),
		Mom12M: numeric.Round(mom12, 2),
		Mom6M:  numeric.Round(mom6, 2),
		Mom3M:  numeric.Round(mom3, 2),
	}

	e.logger.WithFields(map[string]interface{}{
		"ticker":  metrics.Ticker,
		"rsl":     metrics.RSL,
		"mom_12m": metrics.Mom12M,
		"mom_6m":  metrics.Mom6M,
		"mom_3m":  metrics.Mom3M,
	}).Debug("Calculated momentum metrics")

	return metrics, nil
}
