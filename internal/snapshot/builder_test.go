package snapshot

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/logger"
)

func rankedList(n int) []contracts.RankedStock {
	out := make([]contracts.RankedStock, n)
	for i := range out {
		out[i] = contracts.RankedStock{
			StockMetrics: contracts.StockMetrics{Name: fmt.Sprintf("Stock %d", i), Ticker: fmt.Sprintf("T%d.DE", i)},
			Composite:    float64(100 - i),
			Rank:         i + 1,
		}
	}
	return out
}

func TestBuild_TruncatesAndAttachesPrevRank(t *testing.T) {
	b := NewBuilder(3, "DAX + MDAX + SDAX", logger.Nop())
	prior := contracts.PriorRankIndex{"T1.DE": 7, "OLD.DE": 1}
	now := time.Date(2024, 6, 1, 6, 5, 0, 0, time.UTC)

	snap, next := b.Build(rankedList(5), prior, contracts.RunCounts{Attempted: 8, Valid: 6, Screened: 5}, []contracts.SkippedStock{
		{Name: "X", Ticker: "X.DE", Reason: "Insufficient data", Days: 10},
	}, now)

	require.Len(t, snap.Top, 3)
	assert.Nil(t, snap.Top[0].PrevRank)
	require.NotNil(t, snap.Top[1].PrevRank)
	assert.Equal(t, 7, *snap.Top[1].PrevRank)

	assert.Equal(t, "2024-06-01 06:05 UTC", snap.Updated)
	assert.Equal(t, "2024-06-01", snap.Date)
	assert.Equal(t, "DAX + MDAX + SDAX", snap.Universe)
	assert.Equal(t, 5, snap.TotalScreened)
	assert.Equal(t, 8, snap.TotalAttempted)
	assert.Equal(t, 1, snap.SkippedCount)

	// 새 인덱스는 이번 top-N만
	assert.Equal(t, contracts.PriorRankIndex{"T0.DE": 1, "T1.DE": 2, "T2.DE": 3}, next)
	assert.NotContains(t, next, "OLD.DE")
}

func TestBuild_NonUTCClock(t *testing.T) {
	b := NewBuilder(2, "", logger.Nop())
	berlin := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2024, 6, 2, 1, 30, 0, 0, berlin) // UTC 2024-06-01 23:30

	snap, _ := b.Build(rankedList(2), nil, contracts.RunCounts{}, nil, now)
	assert.Equal(t, "2024-06-01", snap.Date)
	assert.Equal(t, "2024-06-01 23:30 UTC", snap.Updated)
	assert.NotNil(t, snap.Skipped)
	assert.Empty(t, snap.Skipped)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	b := NewBuilder(2, "", logger.Nop())
	ranked := rankedList(2)
	b.Build(ranked, contracts.PriorRankIndex{"T0.DE": 2}, contracts.RunCounts{}, nil, time.Now())
	assert.Nil(t, ranked[0].PrevRank)
}
