package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/momentum-screener/internal/scheduler"
	"github.com/wonny/momentum-screener/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `주간 스크리닝 스케줄러를 시작하거나 작업을 즉시 실행합니다.

Subcommands:
  start   - 스케줄러 시작 (SCHEDULE_SPEC, 기본 매주 토요일 06:00)
  run     - 스크리닝 작업 즉시 1회 실행

Example:
  go run ./cmd/screener scheduler start
  go run ./cmd/screener scheduler run`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 momentum_screen 작업을 등록합니다.

실행 중인 작업이 있으면 다음 틱은 건너뜁니다.
유니버스 부족으로 인한 중단은 재시도하지 않습니다.

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run",
		Short: "스크리닝 작업 즉시 실행 (재시도 포함)",
		RunE:  runScreenJobNow,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Momentum Screener Scheduler ===")

	sched, closer, err := initScheduler(context.Background())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer closer()

	// Start scheduler
	sched.Start()

	fmt.Fprintln(out, "\n✅ Scheduler started successfully")
	fmt.Fprintln(out, "\nRegistered jobs:")
	for jobName, stat := range sched.GetJobStats() {
		fmt.Fprintf(out, "  - %s (%s)\n", jobName, stat.Schedule)
	}
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Fprintln(out, "\nShutting down scheduler...")
	sched.Stop()
	fmt.Fprintln(out, "Scheduler stopped")

	return nil
}

func runScreenJobNow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	sched, closer, err := initScheduler(context.Background())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer closer()

	result, err := sched.RunJobSync(jobs.ScreenJobName)
	if err != nil {
		PrintError(out, fmt.Sprintf("%s failed: %v", jobs.ScreenJobName, err))
		return err
	}

	PrintSuccess(out, fmt.Sprintf("%s completed in %.2fs", result.JobName, result.Duration.Seconds()))
	return nil
}

func initScheduler(ctx context.Context) (*scheduler.Scheduler, func(), error) {
	d, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}

	orch, closer, err := d.orchestrator(ctx)
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(d.log)
	if err := sched.AddJob(jobs.NewScreenJob(orch, d.cfg.ScheduleSpec, d.log)); err != nil {
		closer()
		return nil, nil, fmt.Errorf("add job: %w", err)
	}

	return sched, closer, nil
}
