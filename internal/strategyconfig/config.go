package strategyconfig

// Config는 복합 모멘텀 스크리닝 전략의 전체 설정
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Data      Data      `yaml:"data" json:"data"`
	Signals   Signals   `yaml:"signals" json:"signals"`
	Screening Screening `yaml:"screening" json:"screening"`
	Ranking   Ranking   `yaml:"ranking" json:"ranking"`
	History   History   `yaml:"history" json:"history"`
}

// Meta 메타 정보
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// Data S0: 가격 데이터 수집 범위
type Data struct {
	LookbackCalendarDays int `yaml:"lookback_calendar_days" json:"lookback_calendar_days"` // 조회 기간 (달력일)
	MinSessions          int `yaml:"min_sessions" json:"min_sessions"`                     // 최소 거래일 수
}

// Signals S2: 모멘텀 지표
type Signals struct {
	Momentum Momentum `yaml:"momentum" json:"momentum"`
	Trend    Trend    `yaml:"trend" json:"trend"`
}

// Momentum 구간별 lookback (거래일), 최근 skip 거래일 제외
type Momentum struct {
	Lookback12M int `yaml:"lookback_12m" json:"lookback_12m"`
	Lookback6M  int `yaml:"lookback_6m" json:"lookback_6m"`
	Lookback3M  int `yaml:"lookback_3m" json:"lookback_3m"`
	SkipDays    int `yaml:"skip_days" json:"skip_days"`
}

// RequiredSessions returns the sessions needed for the longest window
func (m Momentum) RequiredSessions() int {
	return m.Lookback12M + m.SkipDays
}

// Trend RSL = 최근 종가 / SMA(period)
type Trend struct {
	RSLPeriod int `yaml:"rsl_period" json:"rsl_period"`
}

// Screening S3: 추세 필터
type Screening struct {
	MinRSL float64 `yaml:"min_rsl" json:"min_rsl"`
}

// Ranking S4: 복합 점수 가중치
type Ranking struct {
	Weights RankingWeights `yaml:"weights" json:"weights"`
	TopN    int            `yaml:"top_n" json:"top_n"`
}

// RankingWeights 구간별 백분위 가중치 (합 = 1.0)
type RankingWeights struct {
	Mom12M float64 `yaml:"mom_12m" json:"mom_12m"`
	Mom6M  float64 `yaml:"mom_6m" json:"mom_6m"`
	Mom3M  float64 `yaml:"mom_3m" json:"mom_3m"`
}

// Sum returns the total of all weights
func (w RankingWeights) Sum() float64 {
	return w.Mom12M + w.Mom6M + w.Mom3M
}

// History S6: 히스토리 보관
type History struct {
	MaxEntries int `yaml:"max_entries" json:"max_entries"`
}

// Default returns the built-in compound momentum strategy
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "compound_momentum",
			Version:    "1",
		},
		Data: Data{
			LookbackCalendarDays: 420,
			MinSessions:          60,
		},
		Signals: Signals{
			Momentum: Momentum{
				Lookback12M: 252,
				Lookback6M:  126,
				Lookback3M:  63,
				SkipDays:    21,
			},
			Trend: Trend{RSLPeriod: 130},
		},
		Screening: Screening{MinRSL: 1.0},
		Ranking: Ranking{
			Weights: RankingWeights{Mom12M: 0.40, Mom6M: 0.35, Mom3M: 0.25},
			TopN:    20,
		},
		History: History{MaxEntries: 104},
	}
}
