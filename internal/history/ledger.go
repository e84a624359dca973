package history

import (
	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/logger"
)

// DefaultMaxEntries ≈ 2년 주간 실행
const DefaultMaxEntries = 104

// Ledger implements S6: append-then-trim history
// ⭐ SSOT: 히스토리 변경은 여기서만
type Ledger struct {
	maxEntries int
	logger     *logger.Logger
}

// NewLedger creates a new history ledger
func NewLedger(maxEntries int, logger *logger.Logger) *Ledger {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Ledger{
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// Append removes any entry with the snapshot's date, appends the new
// entry and keeps the newest maxEntries. entries is not modified.
func (l *Ledger) Append(entries []contracts.HistoryEntry, snap *contracts.Snapshot) []contracts.HistoryEntry {
	out := make([]contracts.HistoryEntry, 0, len(entries)+1)
	replaced := false
	for _, e := range entries {
		if e.Date == snap.Date {
			replaced = true
			continue
		}
		out = append(out, e)
	}
	out = append(out, snap.ToHistoryEntry())

	evicted := 0
	if len(out) > l.maxEntries {
		evicted = len(out) - l.maxEntries
		out = out[evicted:]
	}

	l.logger.WithFields(map[string]interface{}{
		"date":     snap.Date,
		"entries":  len(out),
		"replaced": replaced,
		"evicted":  evicted,
	}).Info("History updated")

	return out
}

// TrendPoint is one ticker's position on a history date
type TrendPoint struct {
	Date      string  `json:"date"`
	Rank      int     `json:"rank"`
	Composite float64 `json:"composite"`
	Price     float64 `json:"price"`
	// 직전 엔트리 대비 순위 변화 (양수 = 상승), 직전 엔트리에 없으면 nil
	Change *int `json:"change"`
}

// Trend returns a ticker's rank over time in ledger order
// top-N 밖이었던 날짜는 생략
func Trend(entries []contracts.HistoryEntry, ticker string) []TrendPoint {
	points := make([]TrendPoint, 0)
	for i, e := range entries {
		s, ok := e.Find(ticker)
		if !ok {
			continue
		}
		p := TrendPoint{
			Date:      e.Date,
			Rank:      s.Rank,
			Composite: s.Composite,
			Price:     s.Price,
		}
		if i > 0 {
			if prev, ok := entries[i-1].Find(ticker); ok {
				change := prev.Rank - s.Rank
				p.Change = &change
			}
		}
		points = append(points, p)
	}
	return points
}

// Latest returns the most recent entry
func Latest(entries []contracts.HistoryEntry) (contracts.HistoryEntry, bool) {
	if len(entries) == 0 {
		return contracts.HistoryEntry{}, false
	}
	return entries[len(entries)-1], true
}
