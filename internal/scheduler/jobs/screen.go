package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/wonny/momentum-screener/internal/brain"
	"github.com/wonny/momentum-screener/internal/scheduler"
	"github.com/wonny/momentum-screener/internal/selection"
	"github.com/wonny/momentum-screener/pkg/logger"
)

// Runner is the pipeline entry point used by the job
type Runner interface {
	Run(ctx context.Context, config brain.RunConfig) (*brain.RunResult, error)
}

// ScreenJob runs the momentum screening pipeline on a schedule
// ⭐ SSOT: 주간 스크리닝 스케줄은 이 Job에서만
type ScreenJob struct {
	runner   Runner
	schedule string
	now      func() time.Time
	logger   *logger.Logger
}

// NewScreenJob creates a new screening job
func NewScreenJob(runner Runner, schedule string, log *logger.Logger) *ScreenJob {
	if schedule == "" {
		schedule = DefaultScreenSchedule
	}
	return &ScreenJob{
		runner:   runner,
		schedule: schedule,
		now:      time.Now,
		logger:   log,
	}
}

const (
	// ScreenJobName is the registered job name
	ScreenJobName = "momentum_screen"
	// DefaultScreenSchedule 매주 토요일 06:00 (초 단위 포함)
	DefaultScreenSchedule = "0 0 6 * * 6"
)

// Name returns the job name
func (j *ScreenJob) Name() string {
	return ScreenJobName
}

// Schedule returns the cron schedule
func (j *ScreenJob) Schedule() string {
	return j.schedule
}

// Run executes one pipeline run
func (j *ScreenJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled momentum screen")

	result, err := j.runner.Run(ctx, brain.RunConfig{
		Date:  j.now(),
		RunID: brain.GenerateRunID(),
	})
	if err != nil {
		// 종목 수 부족은 재시도로 해결되지 않음
		if errors.Is(err, brain.ErrInsufficientValid) || errors.Is(err, selection.ErrInsufficientSurvivors) {
			return scheduler.Permanent(err)
		}
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":   result.RunID,
		"date":     result.Snapshot.Date,
		"top":      result.Snapshot.Top[0].Ticker,
		"screened": result.Snapshot.TotalScreened,
	}).Info("Scheduled momentum screen completed")

	return nil
}
