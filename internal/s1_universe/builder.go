package s1_universe

import (
	"context"
	"fmt"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/logger"
)

// MinExpectedSize 이보다 작으면 소스 이상 가능성 경고
const MinExpectedSize = 100

// Universe is the ordered, deduplicated instrument list of one run
type Universe struct {
	Label       string
	Instruments []contracts.Instrument
	Duplicates  int
}

// Size returns the number of instruments
func (u *Universe) Size() int {
	return len(u.Instruments)
}

// Builder constructs the screening universe
type Builder struct {
	source  contracts.UniverseSource
	label   string
	minSize int
	logger  *logger.Logger
}

// NewBuilder creates a new Universe Builder
func NewBuilder(source contracts.UniverseSource, label string, log *logger.Logger) *Builder {
	return &Builder{
		source:  source,
		label:   label,
		minSize: MinExpectedSize,
		logger:  log,
	}
}

// Build loads the source and deduplicates by ticker (first wins)
// ⭐ SSOT: S1 유니버스 생성
func (b *Builder) Build(ctx context.Context) (*Universe, error) {
	raw, err := b.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}

	instruments, dups := Dedupe(raw)
	if len(instruments) == 0 {
		return nil, fmt.Errorf("universe is empty")
	}

	u := &Universe{
		Label:       b.label,
		Instruments: instruments,
		Duplicates:  dups,
	}

	fields := map[string]interface{}{
		"label":      u.Label,
		"size":       u.Size(),
		"duplicates": dups,
	}
	if u.Size() < b.minSize {
		b.logger.WithFields(fields).Warn("Universe smaller than expected")
	} else {
		b.logger.WithFields(fields).Info("Universe built")
	}

	return u, nil
}

// Dedupe drops repeated tickers and blank entries, keeping first occurrence order
func Dedupe(in []contracts.Instrument) ([]contracts.Instrument, int) {
	seen := make(map[string]bool, len(in))
	out := make([]contracts.Instrument, 0, len(in))
	dups := 0
	for _, inst := range in {
		if inst.Ticker == "" {
			continue
		}
		if seen[inst.Ticker] {
			dups++
			continue
		}
		seen[inst.Ticker] = true
		if inst.Name == "" {
			inst.Name = "Unknown"
		}
		out = append(out, inst)
	}
	return out, dups
}
