package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/momentum-screener/internal/s1_universe"
	"github.com/wonny/momentum-screener/pkg/httputil"
)

// universeCmd represents the universe command
var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "유니버스 종목 목록 출력",
	Long: `설정된 소스(file | index)에서 유니버스를 로드하고
중복 제거 후 종목 목록을 출력합니다.

Example:
  go run ./cmd/screener universe
  UNIVERSE_SOURCE=index go run ./cmd/screener universe`,
	RunE: showUniverse,
}

func init() {
	rootCmd.AddCommand(universeCmd)
}

func showUniverse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	d, err := bootstrap()
	if err != nil {
		return err
	}

	httpClient := httputil.New(d.cfg, d.log)
	builder := s1_universe.NewBuilder(d.universeSource(httpClient), d.cfg.Universe.Label, d.log)

	u, err := builder.Build(context.Background())
	if err != nil {
		return fmt.Errorf("build universe: %w", err)
	}

	fmt.Fprintf(out, "Universe: %s (%s)\n", u.Label, d.cfg.Universe.Source)
	PrintSeparator(out)
	for i, inst := range u.Instruments {
		fmt.Fprintf(out, "  [%3d] %-18s %s\n", i+1, inst.Ticker, inst.Name)
	}
	PrintSeparator(out)
	fmt.Fprintf(out, "%d instruments, %d duplicates dropped\n", u.Size(), u.Duplicates)
	if u.Size() < s1_universe.MinExpectedSize {
		PrintWarning(out, fmt.Sprintf("Expected at least %d instruments", s1_universe.MinExpectedSize))
	}

	return nil
}
