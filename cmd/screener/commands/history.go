package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/momentum-screener/internal/history"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [ticker]",
	Short: "저장된 순위 / 종목별 순위 추이 조회",
	Long: `저장된 상태 파일을 읽어 출력합니다.

인자 없이 실행하면 마지막 스냅샷의 순위와 히스토리 요약을,
티커를 지정하면 해당 종목의 날짜별 순위 추이를 출력합니다.

Example:
  go run ./cmd/screener history
  go run ./cmd/screener history SAP.DE`,
	Args: cobra.MaximumNArgs(1),
	RunE: showHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func showHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	d, err := bootstrap()
	if err != nil {
		return err
	}

	entries, err := d.store.LoadHistory()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(args) == 1 {
		ticker := strings.ToUpper(strings.TrimSpace(args[0]))
		points := history.Trend(entries, ticker)
		if len(points) == 0 {
			PrintWarning(out, fmt.Sprintf("%s not found in %d history entries", ticker, len(entries)))
			return nil
		}
		PrintTrend(out, ticker, points)
		return nil
	}

	snap, err := d.store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		PrintWarning(out, "No snapshot stored yet (run `screener run` first)")
		return nil
	}

	PrintPriorRanks(out, snap)
	PrintSeparator(out)
	latest, ok := history.Latest(entries)
	if !ok {
		fmt.Fprintln(out, "History: 0 entries")
		return nil
	}
	fmt.Fprintf(out, "History: %d entries (%s ~ %s)\n", len(entries), entries[0].Date, latest.Date)
	if latest.Date != snap.Date {
		PrintWarning(out, fmt.Sprintf("Latest history entry %s differs from snapshot %s", latest.Date, snap.Date))
	}

	return nil
}
