// Package analysis computes read-only reports over a board: difficulty,
// line-completion gaps, empty-space fragmentation and placement opportunities
// for large gaps. Nothing here mutates the board.
package analysis

import (
	"fmt"

	"github.com/plus3/tenten/puzzle"
)

// Difficulty is a capacity band.
type Difficulty int

const (
	Comfortable Difficulty = iota
	Moderate
	Challenging
	Difficult
	Critical
)

// Difficulties lists every level from least to most crowded.
var Difficulties = []Difficulty{Comfortable, Moderate, Challenging, Difficult, Critical}

func (d Difficulty) String() string {
	switch d {
	case Comfortable:
		return "comfortable"
	case Moderate:
		return "moderate"
	case Challenging:
		return "challenging"
	case Difficult:
		return "difficult"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the level by name.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a level name.
func (d *Difficulty) UnmarshalText(text []byte) error {
	for _, level := range Difficulties {
		if level.String() == string(text) {
			*d = level
			return nil
		}
	}
	return fmt.Errorf("unknown difficulty %q", text)
}

// Thresholds are the capacity boundaries of each band. Rescue is a separate
// scale from the difficulty bands and is tuned independently.
type Thresholds struct {
	Moderate    float64 `yaml:"moderate"`
	Challenging float64 `yaml:"challenging"`
	Difficult   float64 `yaml:"difficult"`
	Critical    float64 `yaml:"critical"`
	Rescue      float64 `yaml:"rescue"`
}

// DefaultThresholds returns the stock capacity boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Moderate:    0.40,
		Challenging: 0.55,
		Difficult:   0.70,
		Critical:    0.80,
		Rescue:      0.50,
	}
}

// Level maps a capacity to its band. Lower bounds are inclusive.
func (t Thresholds) Level(capacity float64) Difficulty {
	switch {
	case capacity >= t.Critical:
		return Critical
	case capacity >= t.Difficult:
		return Difficult
	case capacity >= t.Challenging:
		return Challenging
	case capacity >= t.Moderate:
		return Moderate
	default:
		return Comfortable
	}
}

// IsRescue reports whether capacity has reached the rescue threshold.
func (t Thresholds) IsRescue(capacity float64) bool {
	return capacity >= t.Rescue
}

// DifficultyLevel classifies the board with the default thresholds.
func DifficultyLevel(view puzzle.BoardView) Difficulty {
	return DefaultThresholds().Level(view.Capacity())
}

// IsRescueMode reports whether the board is at or above the default rescue threshold.
func IsRescueMode(view puzzle.BoardView) bool {
	return DefaultThresholds().IsRescue(view.Capacity())
}
