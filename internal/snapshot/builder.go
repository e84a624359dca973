package snapshot

import (
	"time"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/logger"
)

const (
	// UpdatedLayout is the human readable run timestamp (UTC)
	UpdatedLayout = "2006-01-02 15:04 UTC"
	// DateLayout is the run date key used for history dedup
	DateLayout = "2006-01-02"
)

// Builder implements S5: snapshot assembly
// ⭐ SSOT: 스냅샷/직전 순위 인덱스 생성은 여기서만
type Builder struct {
	topN          int
	universeLabel string
	logger        *logger.Logger
}

// NewBuilder creates a new snapshot builder
func NewBuilder(topN int, universeLabel string, logger *logger.Logger) *Builder {
	return &Builder{
		topN:          topN,
		universeLabel: universeLabel,
		logger:        logger,
	}
}

// Build truncates ranked to top-N, attaches previous ranks and returns
// the snapshot together with the replacement prior-rank index
// 새 인덱스 = 이번 실행의 top-N만 (병합하지 않음)
func (b *Builder) Build(
	ranked []contracts.RankedStock,
	prior contracts.PriorRankIndex,
	counts contracts.RunCounts,
	skipped []contracts.SkippedStock,
	now time.Time,
) (*contracts.Snapshot, contracts.PriorRankIndex) {
	n := b.topN
	if len(ranked) < n {
		n = len(ranked)
	}

	top := make([]contracts.RankedStock, n)
	next := make(contracts.PriorRankIndex, n)
	newEntrants := 0
	for i := 0; i < n; i++ {
		rs := ranked[i]
		rs.PrevRank = prior.Lookup(rs.Ticker)
		if rs.PrevRank == nil {
			newEntrants++
		}
		top[i] = rs
		next[rs.Ticker] = rs.Rank
	}

	if skipped == nil {
		skipped = []contracts.SkippedStock{}
	}

	utc := now.UTC()
	snap := &contracts.Snapshot{
		Updated:        utc.Format(UpdatedLayout),
		Date:           utc.Format(DateLayout),
		Universe:       b.universeLabel,
		TotalScreened:  counts.Screened,
		TotalAttempted: counts.Attempted,
		SkippedCount:   len(skipped),
		Top:            top,
		Skipped:        skipped,
	}

	b.logger.WithFields(map[string]interface{}{
		"date":         snap.Date,
		"top":          len(top),
		"new_entrants": newEntrants,
		"skipped":      snap.SkippedCount,
	}).Info("Snapshot built")

	return snap, next
}
