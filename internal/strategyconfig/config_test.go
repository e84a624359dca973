package strategyconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := "../../config/strategy/compound_momentum.yaml"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("config file not found")
	}

	cfg, yamlData, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, yamlData)

	assert.Equal(t, "compound_momentum", cfg.Meta.StrategyID)
	assert.Equal(t, 273, cfg.Signals.Momentum.RequiredSessions())

	// 파일 = 기본값
	hash, err := Hash(cfg)
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	defHash, err := Hash(Default())
	require.NoError(t, err)
	assert.Equal(t, defHash, hash)
}

func TestParse_PartialOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("ranking:\n  top_n: 10\n"))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Ranking.TopN)
	assert.Equal(t, 0.40, cfg.Ranking.Weights.Mom12M)
	assert.Equal(t, 130, cfg.Signals.Trend.RSLPeriod)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("ranking:\n  topn: 10\n"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("screening:\n  min_rsl: 1.05\n"), 0o644))

	cfg, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, 1.05, cfg.Screening.MinRSL)

	_, err = LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestHash_Deterministic(t *testing.T) {
	a, err := Hash(Default())
	require.NoError(t, err)
	b, _ := Hash(Default())
	assert.Equal(t, a, b)

	changed := Default()
	changed.Ranking.TopN = 25
	c, _ := Hash(changed)
	assert.NotEqual(t, a, c)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"default ok", func(c *Config) {}, ""},
		{"missing strategy id", func(c *Config) { c.Meta.StrategyID = "" }, "meta.strategy_id"},
		{"weights sum", func(c *Config) { c.Ranking.Weights.Mom3M = 0.30 }, "ranking.weights"},
		{"negative weight", func(c *Config) {
			c.Ranking.Weights = RankingWeights{Mom12M: 1.2, Mom6M: -0.2, Mom3M: 0}
		}, "ranking.weights"},
		{"top n zero", func(c *Config) { c.Ranking.TopN = 0 }, "ranking.top_n"},
		{"skip zero", func(c *Config) { c.Signals.Momentum.SkipDays = 0 }, "signals.momentum.skip_days"},
		{"lookback order", func(c *Config) { c.Signals.Momentum.Lookback6M = 300 }, "signals.momentum"},
		{"rsl period", func(c *Config) { c.Signals.Trend.RSLPeriod = 0 }, "signals.trend.rsl_period"},
		{"min rsl", func(c *Config) { c.Screening.MinRSL = 0 }, "screening.min_rsl"},
		{"min sessions", func(c *Config) { c.Data.MinSessions = 0 }, "data.min_sessions"},
		{"history cap", func(c *Config) { c.History.MaxEntries = 0 }, "history.max_entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := Validate(cfg)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestWarn(t *testing.T) {
	// 기본값: min_sessions(60) < rsl_period(130)
	warnings := Warn(Default())
	codes := make([]string, 0, len(warnings))
	for _, w := range warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, "MIN_SESSIONS_BELOW_RSL")
	assert.NotContains(t, codes, "SHORT_LOOKBACK")

	cfg := Default()
	cfg.Data.LookbackCalendarDays = 200
	cfg.Screening.MinRSL = 0.9
	codes = codes[:0]
	for _, w := range Warn(cfg) {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, "SHORT_LOOKBACK")
	assert.Contains(t, codes, "LOOSE_TREND_FILTER")
}
