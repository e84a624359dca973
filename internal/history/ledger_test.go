package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/logger"
)

func snapFor(date string, tickers ...string) *contracts.Snapshot {
	s := &contracts.Snapshot{Date: date}
	for i, tk := range tickers {
		s.Top = append(s.Top, contracts.RankedStock{
			StockMetrics: contracts.StockMetrics{Ticker: tk, Name: tk, Price: float64(10 + i)},
			Composite:    float64(90 - i),
			Rank:         i + 1,
		})
	}
	return s
}

func TestAppend_SameDateReplaces(t *testing.T) {
	l := NewLedger(104, logger.Nop())

	entries := l.Append(nil, snapFor("2024-06-01", "A", "B"))
	entries = l.Append(entries, snapFor("2024-06-08", "A"))
	entries = l.Append(entries, snapFor("2024-06-08", "B", "A"))

	require.Len(t, entries, 2)
	assert.Equal(t, "2024-06-01", entries[0].Date)
	assert.Equal(t, "2024-06-08", entries[1].Date)
	assert.Equal(t, "B", entries[1].Stocks[0].Ticker)
}

func TestAppend_Cap(t *testing.T) {
	l := NewLedger(104, logger.Nop())
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	var entries []contracts.HistoryEntry
	for i := 0; i < 110; i++ {
		entries = l.Append(entries, snapFor(start.AddDate(0, 0, 7*i).Format("2006-01-02"), "A"))
		assert.LessOrEqual(t, len(entries), 104)
	}

	require.Len(t, entries, 104)
	assert.Equal(t, start.AddDate(0, 0, 7*6).Format("2006-01-02"), entries[0].Date)
	assert.Equal(t, start.AddDate(0, 0, 7*109).Format("2006-01-02"), entries[103].Date)
}

func TestAppend_DoesNotMutateInput(t *testing.T) {
	l := NewLedger(2, logger.Nop())
	in := []contracts.HistoryEntry{{Date: "2024-01-01"}, {Date: "2024-01-08"}}
	out := l.Append(in, snapFor("2024-01-15", "A"))

	assert.Equal(t, "2024-01-01", in[0].Date)
	require.Len(t, out, 2)
	assert.Equal(t, "2024-01-08", out[0].Date)
}

func TestNewLedger_DefaultCap(t *testing.T) {
	l := NewLedger(0, logger.Nop())
	assert.Equal(t, DefaultMaxEntries, l.maxEntries)
}

func TestTrend(t *testing.T) {
	l := NewLedger(10, logger.Nop())
	var entries []contracts.HistoryEntry
	for i, tickers := range [][]string{{"A", "B"}, {"B", "C"}, {"C", "B", "A"}} {
		entries = l.Append(entries, snapFor(fmt.Sprintf("2024-06-0%d", i+1), tickers...))
	}

	trend := Trend(entries, "A")
	require.Len(t, trend, 2)
	assert.Equal(t, TrendPoint{Date: "2024-06-01", Rank: 1, Composite: 90, Price: 10}, trend[0])
	assert.Equal(t, "2024-06-03", trend[1].Date)
	assert.Equal(t, 3, trend[1].Rank)

	assert.Nil(t, trend[1].Change)

	// B: 2위 → 1위 → 2위
	trendB := Trend(entries, "B")
	require.Len(t, trendB, 3)
	assert.Nil(t, trendB[0].Change)
	require.NotNil(t, trendB[1].Change)
	assert.Equal(t, 1, *trendB[1].Change)
	require.NotNil(t, trendB[2].Change)
	assert.Equal(t, -1, *trendB[2].Change)

	assert.Empty(t, Trend(entries, "ZZZ"))

	latest, ok := Latest(entries)
	require.True(t, ok)
	assert.Equal(t, "2024-06-03", latest.Date)

	_, ok = Latest(nil)
	assert.False(t, ok)
}
