package contracts

// Instrument is one (display name, identifier) pair of the universe
type Instrument struct {
	Name   string `json:"name" yaml:"name"`
	Ticker string `json:"ticker" yaml:"ticker"`
}

// StockMetrics represents the per-instrument momentum metrics passed from S2 to S3/S4
// ⭐ SSOT: S2 → S3/S4 지표 전달
type StockMetrics struct {
	Name   string  `json:"name"`
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
	RSL    float64 `json:"rsl"`     // 최근 종가 / N일 SMA
	Mom12M float64 `json:"mom_12m"` // %
	Mom6M  float64 `json:"mom_6m"`  // %
	Mom3M  float64 `json:"mom_3m"`  // %
}

// InUptrend checks if the price is at or above its moving average
func (m StockMetrics) InUptrend(minRSL float64) bool {
	return m.RSL >= minRSL
}

// SkippedStock records why an instrument was excluded from a run
type SkippedStock struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Reason string `json:"reason"`
	Days   int    `json:"days"`
}
