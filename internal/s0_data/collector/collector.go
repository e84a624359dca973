package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/internal/s0_data/quality"
	"github.com/wonny/momentum-screener/internal/s2_signals"
	"github.com/wonny/momentum-screener/pkg/logger"
)

// maxErrorLen 스킵 사유에 남길 에러 메시지 최대 길이
const maxErrorLen = 50

// Collector fetches each instrument's series and computes its metrics
// ⭐ SSOT: 데이터 수집 오케스트레이션은 이 패키지에서만
type Collector struct {
	provider contracts.PriceProvider
	engine   *s2_signals.Engine
	gate     *quality.Gate
	logger   *logger.Logger
}

// Config holds collector configuration
type Config struct {
	LookbackCalendarDays int // 조회 기간 (달력일)
}

// NewCollector creates a new Collector instance
func NewCollector(
	provider contracts.PriceProvider,
	engine *s2_signals.Engine,
	gate *quality.Gate,
	log *logger.Logger,
) *Collector {
	return &Collector{
		provider: provider,
		engine:   engine,
		gate:     gate,
		logger:   log.WithField("module", "collector"),
	}
}

// Result is the output of one collection pass
type Result struct {
	Metrics []contracts.StockMetrics
	Skipped []contracts.SkippedStock
	Report  quality.Report
}

// Collect processes instruments one at a time in universe order.
// Per-instrument failures become skip entries; only context cancellation aborts.
func (c *Collector) Collect(ctx context.Context, instruments []contracts.Instrument, now time.Time, cfg Config) (*Result, error) {
	to, from := Window(now, cfg.LookbackCalendarDays)

	c.logger.WithFields(map[string]interface{}{
		"stock_count": len(instruments),
		"from":        from.Format("2006-01-02"),
		"to":          to.Format("2006-01-02"),
	}).Info("Starting price collection")

	res := &Result{
		Metrics: make([]contracts.StockMetrics, 0, len(instruments)),
		Skipped: make([]contracts.SkippedStock, 0),
		Report:  quality.Report{Attempted: len(instruments)},
	}

	for i, inst := range instruments {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collection cancelled at %d/%d: %w", i, len(instruments), err)
		}

		metrics, skip := c.collectOne(ctx, inst, from, to)
		if skip != nil {
			// 진행 중 fetch가 취소로 실패한 경우 실행 중단
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("collection cancelled at %d/%d: %w", i, len(instruments), ctxErr)
			}
			res.Skipped = append(res.Skipped, *skip)
			if skip.Days > 0 {
				res.Report.Fetched++
			}
			c.logger.WithFields(map[string]interface{}{
				"progress": fmt.Sprintf("%d/%d", i+1, len(instruments)),
				"ticker":   inst.Ticker,
				"reason":   skip.Reason,
			}).Warn("Instrument skipped")
			continue
		}

		res.Report.Fetched++
		res.Metrics = append(res.Metrics, metrics)
		c.logger.WithFields(map[string]interface{}{
			"progress": fmt.Sprintf("%d/%d", i+1, len(instruments)),
			"ticker":   inst.Ticker,
			"rsl":      metrics.RSL,
			"mom_12m":  metrics.Mom12M,
		}).Debug("Instrument collected")
	}
	res.Report.Valid = len(res.Metrics)

	c.logger.WithFields(map[string]interface{}{
		"valid":    res.Report.Valid,
		"skipped":  len(res.Skipped),
		"total":    res.Report.Attempted,
		"coverage": fmt.Sprintf("%.1f%%", res.Report.Coverage()*100),
	}).Info("Price collection completed")

	return res, nil
}

// Window returns the [from, to) fetch range: both bounds are UTC midnights,
// so the still-open session of the run day is excluded
func Window(now time.Time, lookbackDays int) (to, from time.Time) {
	u := now.UTC()
	to = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	from = to.AddDate(0, 0, -lookbackDays)
	return to, from
}

// collectOne returns metrics, or a skip record describing why there are none
func (c *Collector) collectOne(ctx context.Context, inst contracts.Instrument, from, to time.Time) (contracts.StockMetrics, *contracts.SkippedStock) {
	skip := func(reason string, days int) *contracts.SkippedStock {
		return &contracts.SkippedStock{Name: inst.Name, Ticker: inst.Ticker, Reason: reason, Days: days}
	}

	series, err := c.provider.FetchSeries(ctx, inst.Ticker, from, to)
	if err != nil {
		return contracts.StockMetrics{}, skip(ErrorReason(err), 0)
	}

	if reason := c.gate.Check(series); reason != "" {
		days := 0
		if series != nil {
			days = series.Len()
		}
		return contracts.StockMetrics{}, skip(reason, days)
	}

	metrics, err := c.engine.Compute(inst.Name, series)
	if errors.Is(err, s2_signals.ErrInsufficientHistory) {
		return contracts.StockMetrics{}, skip(HistoryReason(series.Len()), series.Len())
	}
	if err != nil {
		return contracts.StockMetrics{}, skip(ErrorReason(err), 0)
	}
	return metrics, nil
}

// ErrorReason formats a fetch failure, message truncated to 50 characters
func ErrorReason(err error) string {
	msg := []rune(err.Error())
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	return "Error: " + string(msg)
}

// HistoryReason formats an undefined-metric skip
func HistoryReason(days int) string {
	return fmt.Sprintf("Insufficient history (%d days)", days)
}
