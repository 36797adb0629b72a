// Package config loads game tuning from YAML on top of built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plus3/tenten/puzzle"
	"github.com/plus3/tenten/puzzle/supply"
)

// Tuning holds every tunable constant of a game.
type Tuning struct {
	Mode        supply.Mode        `yaml:"mode"`
	ClearPolicy puzzle.ClearPolicy `yaml:"clear_policy"`
	Supply      supply.Params      `yaml:"supply"`
	Scoring     Scoring            `yaml:"scoring"`
	Revive      Revive             `yaml:"revive"`
}

// Scoring awards CellPoints per placed cell and LinePoints times the square
// of the lines a move clears.
type Scoring struct {
	CellPoints int `yaml:"cell_points"`
	LinePoints int `yaml:"line_points"`
}

// Revive bounds revives and the post-revive selection window.
type Revive struct {
	Batches    int `yaml:"batches"`
	MaxRevives int `yaml:"max_revives"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		Mode:        supply.AdaptiveBalanced,
		ClearPolicy: puzzle.DropWhileClearing,
		Supply:      supply.DefaultParams(),
		Scoring: Scoring{
			CellPoints: 1,
			LinePoints: 10,
		},
		Revive: Revive{
			Batches:    6,
			MaxRevives: 1,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read config: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Tuning, error) {
	t := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("decode config: %w", err)
	}

	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Marshal encodes t as YAML.
func (t Tuning) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}

// Validate reports every out-of-range value.
func (t Tuning) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	unit := func(v float64) bool { return v >= 0 && v <= 1 }

	p := t.Supply
	check(p.BatchSize >= 1, "supply.batch_size must be at least 1, got %d", p.BatchSize)
	check(p.WeightedRetries >= 1, "supply.weighted_retries must be at least 1, got %d", p.WeightedRetries)
	check(p.HybridRetries >= 1, "supply.hybrid_retries must be at least 1, got %d", p.HybridRetries)
	check(p.PostRevivePasses >= 1, "supply.post_revive_passes must be at least 1, got %d", p.PostRevivePasses)

	th := p.Thresholds
	for name, v := range map[string]float64{
		"moderate":    th.Moderate,
		"challenging": th.Challenging,
		"difficult":   th.Difficult,
		"critical":    th.Critical,
		"rescue":      th.Rescue,
	} {
		check(unit(v), "supply.thresholds.%s must be within [0,1], got %g", name, v)
	}
	check(th.Moderate <= th.Challenging && th.Challenging <= th.Difficult && th.Difficult <= th.Critical,
		"supply.thresholds must be ascending from moderate to critical")

	hp := p.Hybrid
	check(hp.ClearingMax > 0 && hp.FragmentationMax > 0 && hp.StrategicMax > 0,
		"supply.hybrid maxima must be positive")

	ap := p.Adaptive
	check(unit(ap.LineMakerBias) && unit(ap.ModerateBias) && unit(ap.DifficultBias) && unit(ap.CriticalBias),
		"supply.adaptive biases must be within [0,1]")

	check(t.Scoring.CellPoints >= 0 && t.Scoring.LinePoints >= 0, "scoring points must not be negative")
	check(t.Revive.Batches >= 0, "revive.batches must not be negative, got %d", t.Revive.Batches)
	check(t.Revive.MaxRevives >= 0, "revive.max_revives must not be negative, got %d", t.Revive.MaxRevives)

	return errors.Join(errs...)
}

// SupplyOptions returns the supplier options for t.
func (t Tuning) SupplyOptions() []supply.Option {
	return []supply.Option{supply.WithParams(t.Supply), supply.WithMode(t.Mode)}
}

// BoardOptions returns the board options for t.
func (t Tuning) BoardOptions() []puzzle.BoardOption {
	return []puzzle.BoardOption{puzzle.WithClearPolicy(t.ClearPolicy)}
}
