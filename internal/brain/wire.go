package brain

import (
	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/internal/history"
	"github.com/wonny/momentum-screener/internal/s0_data/collector"
	"github.com/wonny/momentum-screener/internal/s0_data/quality"
	"github.com/wonny/momentum-screener/internal/s1_universe"
	"github.com/wonny/momentum-screener/internal/s2_signals"
	"github.com/wonny/momentum-screener/internal/selection"
	"github.com/wonny/momentum-screener/internal/snapshot"
	"github.com/wonny/momentum-screener/internal/strategyconfig"
	"github.com/wonny/momentum-screener/pkg/logger"
)

// Build assembles every stage from one strategy config
func Build(
	strategy *strategyconfig.Config,
	source contracts.UniverseSource,
	universeLabel string,
	provider contracts.PriceProvider,
	store contracts.StateStore,
	log *logger.Logger,
) *Orchestrator {
	engine := s2_signals.NewEngine(s2_signals.MetricConfigFrom(strategy), log)
	gate := quality.NewGate(quality.Config{MinSessions: strategy.Data.MinSessions})

	w := strategy.Ranking.Weights
	weights := selection.WeightConfig{Mom12M: w.Mom12M, Mom6M: w.Mom6M, Mom3M: w.Mom3M}

	return NewOrchestrator(
		s1_universe.NewBuilder(source, universeLabel, log),
		collector.NewCollector(provider, engine, gate, log),
		selection.NewScreener(selection.ScreenerConfig{MinRSL: strategy.Screening.MinRSL}, log),
		selection.NewRanker(weights, strategy.Ranking.TopN, log),
		snapshot.NewBuilder(strategy.Ranking.TopN, universeLabel, log),
		history.NewLedger(strategy.History.MaxEntries, log),
		store,
		collector.Config{LookbackCalendarDays: strategy.Data.LookbackCalendarDays},
		strategy.Ranking.TopN,
		log,
	)
}
