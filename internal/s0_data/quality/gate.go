package quality

import (
	"github.com/wonny/momentum-screener/internal/contracts"
)

// Skip reasons recorded for instruments that fail the gate
const (
	ReasonInsufficientData = "Insufficient data"
	ReasonUnorderedData    = "Unordered data"
)

// Gate validates fetched series before metric computation
type Gate struct {
	config Config
}

// Config holds quality gate thresholds
type Config struct {
	MinSessions int `yaml:"min_sessions"` // 60
}

// NewGate creates a new quality gate
func NewGate(config Config) *Gate {
	return &Gate{config: config}
}

// Check returns a skip reason, or "" when the series may proceed
// ⭐ SSOT: S0 시계열 품질 검증
func (g *Gate) Check(series *contracts.PriceSeries) string {
	if series == nil || series.Len() < g.config.MinSessions {
		return ReasonInsufficientData
	}
	// 지표 계산은 마지막 인덱스 = 최신 종가를 전제로 함
	if err := series.Validate(); err != nil {
		return ReasonUnorderedData
	}
	return ""
}

// Report summarizes one collection pass
type Report struct {
	Attempted int
	Fetched   int // 수집 성공
	Valid     int // 지표 계산 성공
}

// Coverage returns the share of attempted instruments with valid metrics
func (r Report) Coverage() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Valid) / float64(r.Attempted)
}
