package contracts

// Snapshot is one run's ranked output plus metadata
// ⭐ SSOT: S5 → 저장/히스토리 전달 단위
type Snapshot struct {
	Updated        string         `json:"updated"`
	Date           string         `json:"date"`
	Universe       string         `json:"universe"`
	TotalScreened  int            `json:"total_screened"`
	TotalAttempted int            `json:"total_attempted"`
	SkippedCount   int            `json:"skipped_count"`
	Top            []RankedStock  `json:"top20"`
	Skipped        []SkippedStock `json:"skipped"`
}

// RunCounts carries universe-wide counts into the snapshot
type RunCounts struct {
	Attempted int // universe size
	Valid     int // metrics defined
	Screened  int // passed the trend filter
}

// HistoryStock is the per-stock record kept in the history ledger
type HistoryStock struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Rank      int     `json:"rank"`
	Composite float64 `json:"composite"`
	RSL       float64 `json:"rsl"`
	Mom12M    float64 `json:"mom_12m"`
	Mom6M     float64 `json:"mom_6m"`
	Mom3M     float64 `json:"mom_3m"`
	Price     float64 `json:"price"`
}

// HistoryEntry is one dated snapshot in the history ledger
type HistoryEntry struct {
	Date   string         `json:"date"`
	Stocks []HistoryStock `json:"stocks"`
}

// ToHistoryEntry converts a snapshot into its ledger form
func (s *Snapshot) ToHistoryEntry() HistoryEntry {
	stocks := make([]HistoryStock, 0, len(s.Top))
	for _, r := range s.Top {
		stocks = append(stocks, HistoryStock{
			Ticker:    r.Ticker,
			Name:      r.Name,
			Rank:      r.Rank,
			Composite: r.Composite,
			RSL:       r.RSL,
			Mom12M:    r.Mom12M,
			Mom6M:     r.Mom6M,
			Mom3M:     r.Mom3M,
			Price:     r.Price,
		})
	}
	return HistoryEntry{Date: s.Date, Stocks: stocks}
}

// Find returns the entry's record of a ticker
func (e *HistoryEntry) Find(ticker string) (HistoryStock, bool) {
	for _, s := range e.Stocks {
		if s.Ticker == ticker {
			return s, true
		}
	}
	return HistoryStock{}, false
}
