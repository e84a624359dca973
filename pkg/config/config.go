package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Persisted state
	State StateConfig

	// Strategy / universe files
	StrategyFile string
	Universe     UniverseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	Yahoo YahooConfig

	// Scheduler
	ScheduleSpec string

	// Logging
	LogLevel  string
	LogFormat string
}

// StateConfig holds the locations of the three persisted JSON documents
type StateConfig struct {
	Dir          string
	SnapshotFile string
	PrevRankFile string
	HistoryFile  string
}

// SnapshotPath returns the full path of the current snapshot document
func (s StateConfig) SnapshotPath() string {
	return filepath.Join(s.Dir, s.SnapshotFile)
}

// PrevRankPath returns the full path of the prior-rank document
func (s StateConfig) PrevRankPath() string {
	return filepath.Join(s.Dir, s.PrevRankFile)
}

// HistoryPath returns the full path of the history document
func (s StateConfig) HistoryPath() string {
	return filepath.Join(s.Dir, s.HistoryFile)
}

// UniverseConfig selects the instrument universe source
type UniverseConfig struct {
	Source       string   // file | index
	File         string   // YAML universe file (Source=file)
	Label        string   // e.g. "DAX + MDAX + SDAX"
	IndexURLs    []string // constituent table pages (Source=index)
	TickerSuffix string   // appended to scraped symbols, e.g. ".DE"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// YahooConfig holds Yahoo Finance chart API configuration
type YahooConfig struct {
	BaseURL         string
	RequestInterval time.Duration // 요청 간 최소 간격
	Timeout         time.Duration
	MaxRetries      int
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		State: StateConfig{
			Dir:          getEnv("STATE_DIR", "."),
			SnapshotFile: getEnv("SNAPSHOT_FILE", "screener_data.json"),
			PrevRankFile: getEnv("PREV_RANKS_FILE", "prev_ranks.json"),
			HistoryFile:  getEnv("HISTORY_FILE", "history.json"),
		},

		StrategyFile: getEnv("STRATEGY_FILE", ""),

		Universe: UniverseConfig{
			Source:       getEnv("UNIVERSE_SOURCE", "file"),
			File:         getEnv("UNIVERSE_FILE", "config/universe/germany.yaml"),
			Label:        getEnv("UNIVERSE_LABEL", "DAX + MDAX + SDAX"),
			IndexURLs:    getEnvAsList("UNIVERSE_INDEX_URLS", nil),
			TickerSuffix: getEnv("UNIVERSE_TICKER_SUFFIX", ".DE"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Yahoo: YahooConfig{
			BaseURL:         getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			RequestInterval: getEnvAsDuration("YAHOO_REQUEST_INTERVAL", "300ms"),
			Timeout:         getEnvAsDuration("YAHOO_TIMEOUT", "30s"),
			MaxRetries:      getEnvAsInt("YAHOO_MAX_RETRIES", 3),
		},

		// 매주 토요일 06:00 (초 단위 포함)
		ScheduleSpec: getEnv("SCHEDULE_SPEC", "0 0 6 * * 6"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Universe.Source {
	case "file":
		if c.Universe.File == "" {
			return fmt.Errorf("UNIVERSE_FILE is required when UNIVERSE_SOURCE=file")
		}
	case "index":
		if len(c.Universe.IndexURLs) == 0 {
			return fmt.Errorf("UNIVERSE_INDEX_URLS is required when UNIVERSE_SOURCE=index")
		}
	default:
		return fmt.Errorf("UNIVERSE_SOURCE must be one of: file, index")
	}

	if c.Yahoo.RequestInterval < 0 {
		return fmt.Errorf("YAHOO_REQUEST_INTERVAL must not be negative")
	}

	if c.State.SnapshotFile == "" || c.State.PrevRankFile == "" || c.State.HistoryFile == "" {
		return fmt.Errorf("state file names must not be empty")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated value, dropping empty items
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
