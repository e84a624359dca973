package audit

import (
	"fmt"
	"sort"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/logger"
	"github.com/wonny/momentum-screener/pkg/numeric"
)

// Analyzer reports top-N stability over the history ledger
// ⭐ SSOT: 순위 회전율/지속성 분석은 여기서만
type Analyzer struct {
	logger *logger.Logger
}

// NewAnalyzer creates a new history analyzer
func NewAnalyzer(logger *logger.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// PeriodTurnover compares two consecutive history entries
type PeriodTurnover struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Entered  []string `json:"entered"`
	Exited   []string `json:"exited"`
	Turnover float64  `json:"turnover"` // 신규 편입 수 / 이번 top-N 크기
}

// Persistence is one ticker's presence across the ledger
type Persistence struct {
	Ticker     string `json:"ticker"`
	Name       string `json:"name"`
	Entries    int    `json:"entries"`     // top-N에 포함된 엔트리 수
	BestRank   int    `json:"best_rank"`
	LatestRank *int   `json:"latest_rank"` // 마지막 엔트리에 없으면 nil
}

// Report summarizes turnover and persistence
type Report struct {
	Entries     int              `json:"entries"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	AvgTurnover float64          `json:"avg_turnover"`
	Periods     []PeriodTurnover `json:"periods"`
	Persistence []Persistence    `json:"persistence"`
}

// Analyze builds the report; entries must be oldest first
func (a *Analyzer) Analyze(entries []contracts.HistoryEntry) (*Report, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no history entries")
	}

	report := &Report{
		Entries:     len(entries),
		From:        entries[0].Date,
		To:          entries[len(entries)-1].Date,
		Periods:     make([]PeriodTurnover, 0, len(entries)-1),
		Persistence: persistence(entries),
	}

	var sum float64
	for i := 1; i < len(entries); i++ {
		p := compare(entries[i-1], entries[i])
		sum += p.Turnover
		report.Periods = append(report.Periods, p)
	}
	if len(report.Periods) > 0 {
		report.AvgTurnover = numeric.Round(sum/float64(len(report.Periods)), 4)
	}

	a.logger.WithFields(map[string]interface{}{
		"entries":      report.Entries,
		"from":         report.From,
		"to":           report.To,
		"avg_turnover": report.AvgTurnover,
		"tickers":      len(report.Persistence),
	}).Info("History audit completed")

	return report, nil
}

// compare lists tickers that entered/exited between two entries
func compare(prev, cur contracts.HistoryEntry) PeriodTurnover {
	p := PeriodTurnover{
		From:    prev.Date,
		To:      cur.Date,
		Entered: make([]string, 0),
		Exited:  make([]string, 0),
	}

	for _, s := range cur.Stocks {
		if _, ok := prev.Find(s.Ticker); !ok {
			p.Entered = append(p.Entered, s.Ticker)
		}
	}
	for _, s := range prev.Stocks {
		if _, ok := cur.Find(s.Ticker); !ok {
			p.Exited = append(p.Exited, s.Ticker)
		}
	}

	if len(cur.Stocks) > 0 {
		p.Turnover = numeric.Round(float64(len(p.Entered))/float64(len(cur.Stocks)), 4)
	}
	return p
}

// persistence counts appearances per ticker
// 정렬: 포함 횟수 내림차순 → 최고 순위 오름차순 → 티커
func persistence(entries []contracts.HistoryEntry) []Persistence {
	byTicker := make(map[string]*Persistence)
	for _, e := range entries {
		for _, s := range e.Stocks {
			p, ok := byTicker[s.Ticker]
			if !ok {
				p = &Persistence{Ticker: s.Ticker, Name: s.Name, BestRank: s.Rank}
				byTicker[s.Ticker] = p
			}
			p.Entries++
			if s.Rank < p.BestRank {
				p.BestRank = s.Rank
			}
		}
	}

	last := entries[len(entries)-1]
	out := make([]Persistence, 0, len(byTicker))
	for _, p := range byTicker {
		if s, ok := last.Find(p.Ticker); ok {
			rank := s.Rank
			p.LatestRank = &rank
		}
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Entries != out[j].Entries {
			return out[i].Entries > out[j].Entries
		}
		if out[i].BestRank != out[j].BestRank {
			return out[i].BestRank < out[j].BestRank
		}
		return out[i].Ticker < out[j].Ticker
	})
	return out
}
