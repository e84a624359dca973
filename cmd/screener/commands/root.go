package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/momentum-screener/internal/brain"
	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/internal/external/yahoo"
	"github.com/wonny/momentum-screener/internal/s1_universe"
	"github.com/wonny/momentum-screener/internal/store"
	"github.com/wonny/momentum-screener/internal/strategyconfig"
	"github.com/wonny/momentum-screener/pkg/config"
	"github.com/wonny/momentum-screener/pkg/httputil"
	"github.com/wonny/momentum-screener/pkg/logger"
	"github.com/wonny/momentum-screener/pkg/redis"
)

var (
	// Global flags
	strategyFile string
	stateDir     string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Compound Momentum Screener - DAX/MDAX/SDAX 주간 모멘텀 랭킹",
	Long: `Compound Momentum Screener CLI

독일 주식 유니버스의 가격 이력으로 복합 모멘텀 점수를 계산하고
추세 필터(RSL) 통과 종목의 상위 N개를 스냅샷/히스토리로 저장합니다.

Usage:
  go run ./cmd/screener [command]

Examples:
  go run ./cmd/screener run
  go run ./cmd/screener run --dry-run
  go run ./cmd/screener history SAP.DE
  go run ./cmd/screener api
  go run ./cmd/screener scheduler start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML (default: STRATEGY_FILE or built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "state directory (default: STATE_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug log level)")
}

// deps holds the shared dependencies of every command
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	strategy *strategyconfig.Config
	store    *store.JSONStore
}

// bootstrap loads env config, logger, strategy and state store
func bootstrap() (*deps, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if stateDir != "" {
		cfg.State.Dir = stateDir
	}
	if strategyFile != "" {
		cfg.StrategyFile = strategyFile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Load strategy
	strategy, err := strategyconfig.LoadOrDefault(cfg.StrategyFile)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}
	for _, w := range strategyconfig.Warn(strategy) {
		log.WithFields(map[string]interface{}{
			"code":    w.Code,
			"message": w.Message,
		}).Warn("Strategy config warning")
	}

	return &deps{
		cfg:      cfg,
		log:      log,
		strategy: strategy,
		store:    store.New(cfg.State, log),
	}, nil
}

// universeSource picks the file or index universe source
func (d *deps) universeSource(httpClient *httputil.Client) contracts.UniverseSource {
	if d.cfg.Universe.Source == "index" {
		return s1_universe.NewIndexSource(httpClient, d.cfg.Universe.IndexURLs, d.cfg.Universe.TickerSuffix, d.log)
	}
	return s1_universe.NewFileSource(d.cfg.Universe.File)
}

// orchestrator wires the full pipeline; the returned closer releases Redis
func (d *deps) orchestrator(ctx context.Context) (*brain.Orchestrator, func(), error) {
	// 1. Create HTTP client (pacing + retry)
	httpClient := httputil.New(d.cfg, d.log)

	// 2. Connect to Redis (optional)
	redisClient, err := redis.New(ctx, d.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	if redisClient.Enabled() {
		d.log.Info("Connected to Redis")
	}
	cache := redis.NewCache(redisClient, "screener")

	// 3. Create price provider
	provider := yahoo.NewClient(httpClient, cache, d.cfg.Yahoo.BaseURL, d.log)

	// 4. Assemble pipeline
	orch := brain.Build(
		d.strategy,
		d.universeSource(httpClient),
		d.cfg.Universe.Label,
		provider,
		d.store,
		d.log,
	)

	closer := func() {
		if err := redisClient.Close(); err != nil {
			d.log.WithError(err).Warn("Failed to close redis")
		}
	}
	return orch, closer, nil
}
