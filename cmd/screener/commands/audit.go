package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/momentum-screener/internal/audit"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "히스토리 기반 top-N 회전율/지속성 분석",
	Long: `저장된 히스토리 원장으로 주간 top-N 변화를 분석합니다.

- 기간별 신규 편입/제외 종목과 회전율
- 종목별 top-N 포함 횟수, 최고 순위, 최신 순위

Example:
  go run ./cmd/screener audit
  go run ./cmd/screener audit --top 10`,
	RunE: runAudit,
}

var auditTop int

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().IntVar(&auditTop, "top", 20, "출력할 지속성 상위 종목 수")
}

func runAudit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	d, err := bootstrap()
	if err != nil {
		return err
	}

	entries, err := d.store.LoadHistory()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(entries) == 0 {
		PrintWarning(out, "No history stored yet (run `screener run` first)")
		return nil
	}

	report, err := audit.NewAnalyzer(d.log).Analyze(entries)
	if err != nil {
		return fmt.Errorf("analyze history: %w", err)
	}

	PrintAuditReport(out, report, auditTop)
	return nil
}
