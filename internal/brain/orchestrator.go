package brain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/internal/history"
	"github.com/wonny/momentum-screener/internal/s0_data/collector"
	"github.com/wonny/momentum-screener/internal/s1_universe"
	"github.com/wonny/momentum-screener/internal/selection"
	"github.com/wonny/momentum-screener/internal/snapshot"
	"github.com/wonny/momentum-screener/pkg/logger"
)

// ErrInsufficientValid is returned when fewer than top-N instruments produce metrics
var ErrInsufficientValid = errors.New("insufficient valid instruments after metric computation")

// Orchestrator coordinates the screening pipeline
// ⭐ SSOT: 파이프라인 조율은 여기서만
type Orchestrator struct {
	// Stage components
	universeBuilder *s1_universe.Builder
	collector       *collector.Collector
	screener        *selection.Screener
	ranker          *selection.Ranker
	snapshotBuilder *snapshot.Builder
	ledger          *history.Ledger

	// Persisted state
	store contracts.StateStore

	collectConfig collector.Config
	topN          int

	logger *logger.Logger
}

// RunConfig holds configuration for a pipeline run
type RunConfig struct {
	Date   time.Time // 실행 시각 (스냅샷 날짜 = UTC 기준)
	RunID  string
	DryRun bool // If true, skip the state commit
}

// RunResult holds the results of a complete pipeline run
type RunResult struct {
	RunID           string
	Date            time.Time
	Success         bool
	Error           error
	CompletedStages []string
	Stages          []contracts.PipelineResult // 단계별 입력/출력 건수, 소요 시간
	Universe        *s1_universe.Universe
	Collected       *collector.Result
	Screened        []contracts.StockMetrics
	RankedStocks    []contracts.RankedStock
	Snapshot        *contracts.Snapshot
	PriorRanks      contracts.PriorRankIndex // 이번 실행으로 교체된 인덱스
	History         []contracts.HistoryEntry
	Committed       bool
	Duration        time.Duration
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	universeBuilder *s1_universe.Builder,
	collector *collector.Collector,
	screener *selection.Screener,
	ranker *selection.Ranker,
	snapshotBuilder *snapshot.Builder,
	ledger *history.Ledger,
	store contracts.StateStore,
	collectConfig collector.Config,
	topN int,
	logger *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		universeBuilder: universeBuilder,
		collector:       collector,
		screener:        screener,
		ranker:          ranker,
		snapshotBuilder: snapshotBuilder,
		ledger:          ledger,
		store:           store,
		collectConfig:   collectConfig,
		topN:            topN,
		logger:          logger,
	}
}

// Run executes the complete pipeline
// S1 → S0(+S2) → S3 → S4 → S5 → S6
// 치명적 실패 시 상태 파일은 하나도 쓰지 않음
func (o *Orchestrator) Run(ctx context.Context, config RunConfig) (*RunResult, error) {
	startTime := time.Now()

	result := &RunResult{
		RunID:           config.RunID,
		Date:            config.Date,
		Success:         false,
		CompletedStages: make([]string, 0),
		Stages:          make([]contracts.PipelineResult, 0, 7),
	}

	o.logger.WithFields(map[string]interface{}{
		"run_id":  config.RunID,
		"date":    config.Date.UTC().Format("2006-01-02"),
		"top_n":   o.topN,
		"dry_run": config.DryRun,
	}).Info("Starting pipeline run")

	stageStart := time.Now()
	record := func(stage contracts.Stage, in, out int, err error) {
		r := contracts.PipelineResult{
			Stage:       stage,
			Success:     err == nil,
			InputCount:  in,
			OutputCount: out,
			Duration:    time.Since(stageStart).Milliseconds(),
		}
		if err != nil {
			r.Error = err.Error()
		}
		result.Stages = append(result.Stages, r)
		stageStart = time.Now()
	}

	fail := func(stage contracts.Stage, err error) (*RunResult, error) {
		record(stage, 0, 0, err)
		result.Error = fmt.Errorf("%s failed: %w", stage.ShortName(), err)
		result.Duration = time.Since(startTime)
		o.logger.WithError(err).WithField("stage", stage.String()).Error("Pipeline run aborted")
		return result, result.Error
	}
	done := func(stage contracts.Stage, in, out int) {
		record(stage, in, out, nil)
		result.CompletedStages = append(result.CompletedStages, stage.ShortName()+":"+stage.Description())
	}

	// S1: Universe
	universe, err := o.universeBuilder.Build(ctx)
	if err != nil {
		return fail(contracts.StageUniverse, err)
	}
	result.Universe = universe
	done(contracts.StageUniverse, universe.Size()+universe.Duplicates, universe.Size())

	// S0 + S2: 수집 및 지표 계산
	collected, err := o.collector.Collect(ctx, universe.Instruments, config.Date, o.collectConfig)
	if err != nil {
		return fail(contracts.StageData, err)
	}
	result.Collected = collected
	done(contracts.StageData, collected.Report.Attempted, collected.Report.Fetched)

	if len(collected.Metrics) < o.topN {
		return fail(contracts.StageSignals, fmt.Errorf("%w: %d < top %d", ErrInsufficientValid, len(collected.Metrics), o.topN))
	}
	done(contracts.StageSignals, collected.Report.Fetched, len(collected.Metrics))

	// S3: Trend filter
	screened, err := o.screener.Screen(ctx, collected.Metrics)
	if err != nil {
		return fail(contracts.StageScreener, err)
	}
	result.Screened = screened
	done(contracts.StageScreener, len(collected.Metrics), len(screened))

	// S4: Ranking
	ranked, err := o.ranker.Rank(ctx, screened)
	if err != nil {
		return fail(contracts.StageRanker, err)
	}
	result.RankedStocks = ranked
	done(contracts.StageRanker, len(screened), len(ranked))

	// S5: Snapshot
	prior, err := o.store.LoadPriorRanks()
	if err != nil {
		return fail(contracts.StageSnapshot, fmt.Errorf("load prior ranks: %w", err))
	}
	counts := contracts.RunCounts{
		Attempted: universe.Size(),
		Valid:     len(collected.Metrics),
		Screened:  len(screened),
	}
	snap, nextPrior := o.snapshotBuilder.Build(ranked, prior, counts, collected.Skipped, config.Date)
	result.Snapshot = snap
	result.PriorRanks = nextPrior
	done(contracts.StageSnapshot, len(ranked), len(snap.Top))

	// S6: History
	entries, err := o.store.LoadHistory()
	if err != nil {
		return fail(contracts.StageHistory, fmt.Errorf("load history: %w", err))
	}
	result.History = o.ledger.Append(entries, snap)

	if err := ctx.Err(); err != nil {
		return fail(contracts.StageHistory, err)
	}

	if config.DryRun {
		o.logger.Info("Skipping state commit (dry run mode)")
	} else {
		if err := o.store.Commit(snap, nextPrior, result.History); err != nil {
			return fail(contracts.StageHistory, err)
		}
		result.Committed = true
	}
	done(contracts.StageHistory, len(entries), len(result.History))

	// Mark success
	result.Success = true
	result.Duration = time.Since(startTime)

	o.logger.WithFields(map[string]interface{}{
		"run_id":    config.RunID,
		"duration":  result.Duration.Seconds(),
		"stages":    len(result.CompletedStages),
		"attempted": counts.Attempted,
		"valid":     counts.Valid,
		"screened":  counts.Screened,
		"top":       snap.Top[0].Ticker,
	}).Info("Pipeline run completed successfully")

	return result, nil
}

// GenerateRunID generates a unique run ID
func GenerateRunID() string {
	return fmt.Sprintf("run_%s", time.Now().Format("20060102_150405"))
}
