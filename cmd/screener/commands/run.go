package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/momentum-screener/internal/brain"
	"github.com/wonny/momentum-screener/internal/selection"
	"github.com/wonny/momentum-screener/internal/strategyconfig"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "스크리닝 파이프라인 1회 실행",
	Long: `유니버스 로드부터 히스토리 저장까지 파이프라인을 1회 실행합니다.

S1 → S0 → S2 → S3 → S4 → S5 → S6

각 단계:
- S1: Universe (종목 목록 로드/중복 제거)
- S0: Price Data (가격 이력 수집, 품질 게이트)
- S2: Metrics (모멘텀 12/6/3개월, RSL)
- S3: Trend Filter (RSL 기준)
- S4: Ranking (퍼센타일 가중 합성 점수)
- S5: Snapshot (상위 N, 직전 순위)
- S6: History (날짜별 원장, 최대 104개)

유효 종목 또는 필터 통과 종목이 N개 미만이면 아무 파일도 쓰지 않고
non-zero 코드로 종료합니다.

Example:
  go run ./cmd/screener run
  go run ./cmd/screener run --dry-run
  go run ./cmd/screener run --strategy config/strategy/compound_momentum.yaml`,
	RunE: runScreener,
}

var (
	runDryRun      bool
	runShowSkipped bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	// Flags
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "결과만 출력 (상태 파일 저장 X)")
	runCmd.Flags().BoolVar(&runShowSkipped, "show-skipped", false, "스킵된 종목 목록 출력")
}

func runScreener(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	d, err := bootstrap()
	if err != nil {
		return err
	}

	hash, err := strategyconfig.Hash(d.strategy)
	if err != nil {
		return fmt.Errorf("hash strategy: %w", err)
	}

	// Ctrl+C 시 진행 중인 수집 중단 (상태 파일은 쓰지 않음)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch, closer, err := d.orchestrator(ctx)
	if err != nil {
		return fmt.Errorf("init orchestrator: %w", err)
	}
	defer closer()

	runConfig := brain.RunConfig{
		Date:   time.Now().UTC(),
		RunID:  brain.GenerateRunID(),
		DryRun: runDryRun,
	}

	PrintDoubleSeparator(out)
	fmt.Fprintln(out, "  Compound Momentum Screener")
	fmt.Fprintf(out, "  Universe : %s\n", d.cfg.Universe.Label)
	fmt.Fprintf(out, "  Strategy : %s v%s (%s)\n", d.strategy.Meta.StrategyID, d.strategy.Meta.Version, hash[:12])
	fmt.Fprintf(out, "  Run ID   : %s\n", runConfig.RunID)
	fmt.Fprintf(out, "  Dry Run  : %v\n", runConfig.DryRun)
	PrintDoubleSeparator(out)

	d.log.WithFields(map[string]interface{}{
		"run_id":        runConfig.RunID,
		"strategy_id":   d.strategy.Meta.StrategyID,
		"strategy_hash": hash,
	}).Info("Starting screener run")

	result, err := orch.Run(ctx, runConfig)
	if err != nil {
		switch {
		case errors.Is(err, brain.ErrInsufficientValid), errors.Is(err, selection.ErrInsufficientSurvivors):
			PrintWarning(out, fmt.Sprintf("Aborting: %v", err))
		default:
			PrintError(out, fmt.Sprintf("Run failed: %v", err))
		}
		if result != nil {
			PrintStages(out, result.Stages)
			if result.Collected != nil && runShowSkipped {
				PrintSkipped(out, result.Collected.Skipped)
			}
		}
		return err
	}

	if runShowSkipped {
		PrintSkipped(out, result.Snapshot.Skipped)
	}
	PrintStages(out, result.Stages)
	PrintTopTable(out, result.Snapshot)

	if result.Committed {
		PrintSuccess(out, fmt.Sprintf("Saved → %s", d.cfg.State.SnapshotPath()))
		PrintSuccess(out, fmt.Sprintf("History → %s (%d entries stored)", d.cfg.State.HistoryPath(), len(result.History)))
	} else {
		PrintWarning(out, "Dry run: no state written")
	}
	fmt.Fprintf(out, "Completed in %.2fs\n", result.Duration.Seconds())

	return nil
}
