package contracts

import (
	"context"
	"time"
)

// UniverseSource supplies the ordered instrument list (S1)
// ⭐ SSOT: S1 유니버스 소스 인터페이스
type UniverseSource interface {
	Load(ctx context.Context) ([]Instrument, error)
}

// PriceProvider fetches one instrument's adjusted close series
// ⭐ SSOT: 가격 데이터 제공자 인터페이스
type PriceProvider interface {
	FetchSeries(ctx context.Context, ticker string, from, to time.Time) (*PriceSeries, error)
}

// StateStore persists the three run documents
// ⭐ SSOT: 상태 저장 인터페이스
type StateStore interface {
	LoadPriorRanks() (PriorRankIndex, error)
	LoadHistory() ([]HistoryEntry, error)
	LoadSnapshot() (*Snapshot, error)
	Commit(snapshot *Snapshot, prior PriorRankIndex, history []HistoryEntry) error
}
