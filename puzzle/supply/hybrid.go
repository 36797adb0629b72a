package supply

import (
	"go.uber.org/zap"

	"github.com/plus3/tenten/puzzle"
	"github.com/plus3/tenten/puzzle/analysis"
)

// Preset is a fixed utility weighting used by the hybrid strategy.
type Preset int

const (
	PresetBalanced Preset = iota
	PresetClearing
	PresetFragmentation
	PresetStrategic
)

func (p Preset) String() string {
	switch p {
	case PresetClearing:
		return "clearing"
	case PresetFragmentation:
		return "fragmentation"
	case PresetStrategic:
		return "strategic"
	default:
		return "balanced"
	}
}

// Weights returns the preset's utility weights normalised to sum to 1.
func (p Preset) Weights() map[puzzle.Utility]float64 {
	var w map[puzzle.Utility]float64
	switch p {
	case PresetClearing:
		w = map[puzzle.Utility]float64{
			puzzle.UtilityLineMaker:   0.45,
			puzzle.UtilityVersatile:   0.20,
			puzzle.UtilityFiller:      0.15,
			puzzle.UtilitySpaceFiller: 0.10,
			puzzle.UtilityBulky:       0.10,
		}
	case PresetFragmentation:
		w = map[puzzle.Utility]float64{
			puzzle.UtilityFiller:      0.40,
			puzzle.UtilitySpaceFiller: 0.30,
			puzzle.UtilityVersatile:   0.20,
			puzzle.UtilityLineMaker:   0.10,
			puzzle.UtilityBulky:       0,
		}
	case PresetStrategic:
		w = map[puzzle.Utility]float64{
			puzzle.UtilityLineMaker:   0.35,
			puzzle.UtilitySpaceFiller: 0.25,
			puzzle.UtilityVersatile:   0.20,
			puzzle.UtilityFiller:      0.10,
			puzzle.UtilityBulky:       0.10,
		}
	default:
		w = make(map[puzzle.Utility]float64, len(puzzle.Utilities))
		for _, u := range puzzle.Utilities {
			w[u] = 0.2
		}
	}

	total := 0.0
	for _, v := range w {
		total += v
	}
	if total > 0 {
		for u, v := range w {
			w[u] = v / total
		}
	}
	return w
}

// HybridScores are the three bias scores, each in [0,1].
type HybridScores struct {
	Clearing      float64 `json:"clearing"`
	Fragmentation float64 `json:"fragmentation"`
	Strategic     float64 `json:"strategic"`
}

// Scores computes the hybrid bias scores for view.
//
//	clearing      = 2*(single-gap rows+columns) + multi-line potential
//	fragmentation = 10*isolated + 5*small clusters + 50*fragmentation level
//	strategic     = strategic gaps + placements that clear a line
//
// Each raw value is divided by its configured maximum and clamped.
func (s *Supplier) Scores(view puzzle.BoardView) HybridScores {
	hp := s.params.Hybrid

	lc := analysis.LineCompletionAnalysis(view)
	clearing := float64(2*(lc.SingleGapRows+lc.SingleGapColumns) + lc.PotentialMultiLineClear)

	sp := analysis.SpacePatternAnalysis(view)
	frag := float64(sp.Isolated*10+sp.SmallClusters*5) + sp.Fragmentation*50

	st := analysis.StrategicPlacementAnalysis(view, s.catalog)
	strategic := float64(len(st.Gaps))
	for _, pl := range st.Placements {
		if pl.ClearingPotential > 0 {
			strategic++
		}
	}

	return HybridScores{
		Clearing:      normalize(clearing, hp.ClearingMax),
		Fragmentation: normalize(frag, hp.FragmentationMax),
		Strategic:     normalize(strategic, hp.StrategicMax),
	}
}

func normalize(v, maximum float64) float64 {
	if maximum <= 0 {
		return 0
	}
	return min(max(v/maximum, 0), 1)
}

// ChoosePreset applies the preset cutoffs to scores.
func (s *Supplier) ChoosePreset(scores HybridScores) Preset {
	hp := s.params.Hybrid
	switch {
	case scores.Clearing*hp.ClearingScale > hp.ClearingCutoff:
		return PresetClearing
	case scores.Fragmentation*hp.FragmentationScale > hp.FragmentationCut:
		return PresetFragmentation
	case scores.Strategic*hp.StrategicScale > hp.StrategicCutoff:
		return PresetStrategic
	default:
		return PresetBalanced
	}
}

// Hybrid samples a utility per slot from the chosen preset's weights, then a
// rarity-weighted shape of that utility, rejecting repeats for up to
// HybridRetries*n draws before padding with unused shapes.
func (s *Supplier) Hybrid(view puzzle.BoardView, n int) Batch {
	scores := s.Scores(view)
	preset := s.ChoosePreset(scores)
	weights := preset.Weights()

	s.log.Debug("hybrid preset",
		zap.Stringer("preset", preset),
		zap.Float64("clearing", scores.Clearing),
		zap.Float64("fragmentation", scores.Fragmentation),
		zap.Float64("strategic", scores.Strategic),
	)

	p := newPicker(n)
	for range s.params.HybridRetries * n {
		if p.full() {
			break
		}
		u, ok := s.sampleUtility(weights)
		if !ok {
			break
		}
		p.add(s.pickByRarity(s.catalog.ByUtility(u)))
	}
	p.pad(s.shuffled(s.catalog.All()))

	return Batch{
		Shapes:     p.shapes,
		Strategy:   StrategyStrategicWeighted,
		Detail:     preset.String(),
		Guaranteed: true,
	}
}

// sampleUtility draws a utility by weight, skipping utilities with no shapes.
func (s *Supplier) sampleUtility(weights map[puzzle.Utility]float64) (puzzle.Utility, bool) {
	total := 0.0
	for _, u := range puzzle.Utilities {
		if len(s.catalog.ByUtility(u)) > 0 {
			total += weights[u]
		}
	}
	if total <= 0 {
		return 0, false
	}

	roll := s.rng.Float64() * total
	var last puzzle.Utility
	for _, u := range puzzle.Utilities {
		w := weights[u]
		if w <= 0 || len(s.catalog.ByUtility(u)) == 0 {
			continue
		}
		last = u
		if roll < w {
			return u, true
		}
		roll -= w
	}
	return last, true
}
