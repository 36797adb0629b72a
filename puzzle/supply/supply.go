// Package supply decides which shapes are offered to the player next.
//
// A Supplier runs one of several selection strategies against a read-only
// board view. Two modes override the configured strategy: the post-revive
// window, which wants every offered shape placeable, and rescue mode, which
// wants at least one. Both report whether the guarantee held.
package supply

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/tenten/puzzle"
	"github.com/plus3/tenten/puzzle/analysis"
)

// Mode is the configured selection strategy.
type Mode int

const (
	WeightedRandom Mode = iota
	CategoryBalanced
	BalancedWeighted
	AdaptiveBalanced
	StrategicWeighted
)

// Modes lists every configurable mode.
var Modes = []Mode{WeightedRandom, CategoryBalanced, BalancedWeighted, AdaptiveBalanced, StrategicWeighted}

func (m Mode) String() string {
	switch m {
	case WeightedRandom:
		return StrategyWeightedRandom
	case CategoryBalanced:
		return StrategyCategoryBalanced
	case BalancedWeighted:
		return StrategyBalancedWeighted
	case AdaptiveBalanced:
		return StrategyAdaptiveBalanced
	case StrategicWeighted:
		return StrategyStrategicWeighted
	default:
		return "unknown"
	}
}

// ParseMode looks a mode up by name.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown supply mode %q", name)
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Strategy names reported in Batch.Strategy and Stats.
const (
	StrategyWeightedRandom    = "weightedRandom"
	StrategyCategoryBalanced  = "categoryBalanced"
	StrategyBalancedWeighted  = "balancedWeighted"
	StrategyAdaptiveBalanced  = "adaptiveBalanced"
	StrategyStrategicWeighted = "strategicWeighted"
	StrategyRescue            = "rescue"
	StrategyPostRevive        = "postRevive"
)

// Batch is one offer of shapes.
type Batch struct {
	Shapes   []*puzzle.Shape
	Strategy string
	// Detail names the sub-strategy: the difficulty band for adaptive
	// batches or the preset for hybrid ones.
	Detail string
	// Guaranteed is false when a rescue or post-revive batch could not meet
	// its placeability guarantee. Other strategies promise nothing and
	// always report true.
	Guaranteed bool
}

// Option configures a Supplier.
type Option func(*Supplier)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Supplier) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand sets the random source, for reproducible sequences.
func WithRand(r *rand.Rand) Option {
	return func(s *Supplier) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithSeed seeds a PCG source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithCatalog sets the shape library. The default is puzzle.DefaultCatalog.
func WithCatalog(c *puzzle.Catalog) Option {
	return func(s *Supplier) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithParams replaces the tuning constants.
func WithParams(p Params) Option {
	return func(s *Supplier) {
		s.params = p
	}
}

// WithMode sets the configured strategy. The default is AdaptiveBalanced.
func WithMode(m Mode) Option {
	return func(s *Supplier) {
		s.mode = m
	}
}

// Supplier produces batches of shapes. It is not safe for concurrent use.
type Supplier struct {
	catalog    *puzzle.Catalog
	params     Params
	mode       Mode
	rng        *rand.Rand
	log        *zap.Logger
	postRevive int
	stats      statsRecorder
}

// New creates a supplier.
func New(opts ...Option) *Supplier {
	s := &Supplier{
		catalog: puzzle.DefaultCatalog(),
		params:  DefaultParams(),
		mode:    AdaptiveBalanced,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.params.BatchSize < 1 {
		s.params.BatchSize = 1
	}
	return s
}

// Mode returns the configured strategy.
func (s *Supplier) Mode() Mode {
	return s.mode
}

// SetMode changes the configured strategy.
func (s *Supplier) SetMode(m Mode) {
	s.mode = m
}

// Params returns the tuning constants in use.
func (s *Supplier) Params() Params {
	return s.params
}

// Catalog returns the shape library in use.
func (s *Supplier) Catalog() *puzzle.Catalog {
	return s.catalog
}

// ArmPostRevive makes the next batches post-revive batches.
func (s *Supplier) ArmPostRevive(batches int) {
	s.postRevive = max(batches, 0)
}

// PostReviveRemaining returns the number of post-revive batches still armed.
func (s *Supplier) PostReviveRemaining() int {
	return s.postRevive
}

// Next returns a batch for the configured mode.
func (s *Supplier) Next(view puzzle.BoardView) Batch {
	return s.NextBatch(view, s.mode)
}

// NextBatch returns BatchSize shapes. An armed post-revive window takes
// precedence, then rescue mode, then mode.
func (s *Supplier) NextBatch(view puzzle.BoardView, mode Mode) Batch {
	start := time.Now()
	n := s.params.BatchSize

	var b Batch
	switch {
	case s.postRevive > 0:
		s.postRevive--
		b = s.PostRevive(view, n)
	case s.params.Thresholds.IsRescue(view.Capacity()):
		b = s.Rescue(view, n)
	default:
		b = s.Select(view, mode, n)
	}

	s.stats.record(b.Strategy, time.Since(start), !b.Guaranteed)
	return b
}

// Select runs one configured strategy without any override.
func (s *Supplier) Select(view puzzle.BoardView, mode Mode, n int) Batch {
	switch mode {
	case WeightedRandom:
		return s.WeightedRandom(n)
	case CategoryBalanced:
		return s.CategoryBalanced(n)
	case BalancedWeighted:
		return s.BalancedWeighted(n)
	case StrategicWeighted:
		return s.Hybrid(view, n)
	default:
		return s.Adaptive(view, n)
	}
}

// Stats returns per-strategy execution statistics.
func (s *Supplier) Stats() Stats {
	return s.stats.snapshot()
}

// ResetStats clears the execution statistics.
func (s *Supplier) ResetStats() {
	s.stats = statsRecorder{}
}

func (s *Supplier) difficulty(view puzzle.BoardView) analysis.Difficulty {
	return s.params.Thresholds.Level(view.Capacity())
}
