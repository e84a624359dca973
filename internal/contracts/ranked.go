package contracts

// RankedStock represents a stock with ranking information passed from S4 to S5
// ⭐ SSOT: S4 → S5 랭킹 결과 전달
type RankedStock struct {
	StockMetrics
	Composite float64 `json:"composite"`
	Rank      int     `json:"rank"`      // 1-based, dense
	PrevRank  *int    `json:"prev_rank"` // nil = 신규 진입
}

// IsNewEntrant reports whether the stock had no rank in the previous run
func (r *RankedStock) IsNewEntrant() bool {
	return r.PrevRank == nil
}

// RankChange returns prev-rank minus rank (positive = moved up)
func (r *RankedStock) RankChange() (int, bool) {
	if r.PrevRank == nil {
		return 0, false
	}
	return *r.PrevRank - r.Rank, true
}

// PriorRankIndex maps ticker to the rank held in the immediately preceding run
type PriorRankIndex map[string]int

// Lookup returns the previous rank of a ticker, nil if absent
func (p PriorRankIndex) Lookup(ticker string) *int {
	rank, ok := p[ticker]
	if !ok {
		return nil
	}
	return &rank
}
