package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/wonny/momentum-screener/internal/audit"
	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/internal/history"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const lineWidth = 65

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("═", lineWidth))
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("─", lineWidth))
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "❌ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n", message)
}

// RankMarker renders the previous-rank marker of one row
func RankMarker(r contracts.RankedStock) string {
	if r.IsNewEntrant() {
		return "(new)"
	}
	return fmt.Sprintf("(prev #%d)", *r.PrevRank)
}

// formatChange renders a rank delta as ▲n / ▼n / =
func formatChange(change int) string {
	switch {
	case change > 0:
		return fmt.Sprintf("▲%d", change)
	case change < 0:
		return fmt.Sprintf("▼%d", -change)
	default:
		return "="
	}
}

// PrintTopTable prints the top-N summary of a snapshot
func PrintTopTable(w io.Writer, snap *contracts.Snapshot) {
	fmt.Fprintln(w)
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "  TOP %d - COMPOUND MOMENTUM (%s)\n", len(snap.Top), snap.Universe)
	fmt.Fprintf(w, "  Updated: %s\n", snap.Updated)
	PrintDoubleSeparator(w)
	for _, r := range snap.Top {
		marker := RankMarker(r)
		if change, ok := r.RankChange(); ok {
			marker += " " + formatChange(change)
		}
		fmt.Fprintf(w, "  #%2d  %-18s Score=%5.1f  12m=%+6.1f%%  RSL=%.3f  %s\n",
			r.Rank, r.Ticker, r.Composite, r.Mom12M, r.RSL, marker)
	}
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "  Attempted: %d   Passed filter: %d   Skipped: %d\n",
		snap.TotalAttempted, snap.TotalScreened, snap.SkippedCount)
	fmt.Fprintln(w)
}

// PrintStages prints one line per executed pipeline stage
func PrintStages(w io.Writer, stages []contracts.PipelineResult) {
	for _, st := range stages {
		mark := "✓"
		if !st.Success {
			mark = "✗"
		}
		fmt.Fprintf(w, "  %s %-3s %-16s %4d → %-4d %6dms\n",
			mark, st.Stage.ShortName(), st.Stage.Description(), st.InputCount, st.OutputCount, st.Duration)
	}
}

// PrintSkipped prints the skip list of a run
func PrintSkipped(w io.Writer, skipped []contracts.SkippedStock) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(w, "Skipped (%d):\n", len(skipped))
	for _, s := range skipped {
		fmt.Fprintf(w, "  ✗ %-18s %-28s %s (%d days)\n", s.Ticker, s.Name, s.Reason, s.Days)
	}
	fmt.Fprintln(w)
}

// PrintPriorRanks prints the stored ticker → rank index ordered by rank
func PrintPriorRanks(w io.Writer, snap *contracts.Snapshot) {
	fmt.Fprintf(w, "Stored ranks as of %s:\n", snap.Date)
	PrintSeparator(w)
	for _, r := range snap.Top {
		fmt.Fprintf(w, "  #%2d  %-18s %s\n", r.Rank, r.Ticker, r.Name)
	}
}

// PrintTrend prints one ticker's rank trend
func PrintTrend(w io.Writer, ticker string, points []history.TrendPoint) {
	fmt.Fprintf(w, "Rank trend: %s (%d entries)\n", ticker, len(points))
	PrintSeparator(w)
	for _, p := range points {
		change := "-"
		if p.Change != nil {
			change = formatChange(*p.Change)
		}
		fmt.Fprintf(w, "  %s  #%2d  Score=%5.1f  Price=%9.2f  %s\n",
			p.Date, p.Rank, p.Composite, p.Price, change)
	}
}

// PrintAuditReport prints turnover per period and the most persistent tickers
func PrintAuditReport(w io.Writer, report *audit.Report, top int) {
	fmt.Fprintf(w, "History audit: %d entries (%s ~ %s)\n", report.Entries, report.From, report.To)
	PrintSeparator(w)
	for _, p := range report.Periods {
		fmt.Fprintf(w, "  %s → %s  turnover=%5.1f%%  +%d -%d\n",
			p.From, p.To, p.Turnover*100, len(p.Entered), len(p.Exited))
	}
	fmt.Fprintf(w, "  Average turnover: %.1f%%\n", report.AvgTurnover*100)
	PrintSeparator(w)

	n := len(report.Persistence)
	if top > 0 && top < n {
		n = top
	}
	for _, p := range report.Persistence[:n] {
		latest := "-"
		if p.LatestRank != nil {
			latest = fmt.Sprintf("#%d", *p.LatestRank)
		}
		fmt.Fprintf(w, "  %-18s entries=%3d  best=#%-2d  latest=%s\n", p.Ticker, p.Entries, p.BestRank, latest)
	}
}
