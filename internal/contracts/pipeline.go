package contracts

// Pipeline Stage 정의 (SSOT)
// 모든 로그와 실행 결과에서 이 상수를 사용해야 함
//
// 파이프라인 흐름:
//   S0 → S1 → S2 → S3 → S4 → S5 → S6
//   Data  Universe  Signals  Screener  Ranker  Snapshot  History

// Stage represents a pipeline stage
type Stage string

const (
	// StageData S0: 가격 데이터 수집
	// 책임: 종목별 조정 종가 수집, 수집 실패/이력 부족 기록
	// 위치: internal/s0_data/
	StageData Stage = "S0_DATA"

	// StageUniverse S1: 스크리닝 대상 종목
	// 책임: 종목 목록 로드, 중복 제거
	// 위치: internal/s1_universe/
	StageUniverse Stage = "S1_UNIVERSE"

	// StageSignals S2: 모멘텀 지표 계산
	// 책임: 12/6/3개월 수익률(최근 1개월 제외), RSL
	// 위치: internal/s2_signals/
	StageSignals Stage = "S2_SIGNALS"

	// StageScreener S3: 추세 필터
	// 책임: RSL < 기준값 종목 제거
	// 위치: internal/selection/screener.go
	StageScreener Stage = "S3_SCREENER"

	// StageRanker S4: 백분위 복합 점수 및 순위
	// 책임: 구간별 백분위, 가중 합산, 순위 부여, 직전 순위 연결
	// 위치: internal/selection/ranker.go
	StageRanker Stage = "S4_RANKER"

	// StageSnapshot S5: 스냅샷 구성
	// 책임: 상위 N 종목 + 메타데이터 문서 생성
	// 위치: internal/snapshot/
	StageSnapshot Stage = "S5_SNAPSHOT"

	// StageHistory S6: 히스토리 원장
	// 책임: 날짜별 중복 제거, 최대 보관 개수 유지, 저장
	// 위치: internal/history/, internal/store/
	StageHistory Stage = "S6_HISTORY"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S0", "S1")
func (s Stage) ShortName() string {
	switch s {
	case StageData:
		return "S0"
	case StageUniverse:
		return "S1"
	case StageSignals:
		return "S2"
	case StageScreener:
		return "S3"
	case StageRanker:
		return "S4"
	case StageSnapshot:
		return "S5"
	case StageHistory:
		return "S6"
	default:
		return "UNKNOWN"
	}
}

// Description returns Korean description of the stage
func (s Stage) Description() string {
	switch s {
	case StageData:
		return "가격 데이터 수집"
	case StageUniverse:
		return "스크리닝 대상 종목"
	case StageSignals:
		return "모멘텀 지표 계산"
	case StageScreener:
		return "추세 필터"
	case StageRanker:
		return "복합 점수/순위"
	case StageSnapshot:
		return "스냅샷 구성"
	case StageHistory:
		return "히스토리 저장"
	default:
		return "알 수 없음"
	}
}

// PipelineResult represents the result of a pipeline stage execution
type PipelineResult struct {
	Stage       Stage                  `json:"stage"`
	Success     bool                   `json:"success"`
	InputCount  int                    `json:"input_count"`
	OutputCount int                    `json:"output_count"`
	Duration    int64                  `json:"duration_ms"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
