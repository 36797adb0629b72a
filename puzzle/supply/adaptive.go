package supply

import (
	"slices"

	"github.com/plus3/tenten/puzzle"
	"github.com/plus3/tenten/puzzle/analysis"
)

// Adaptive picks a sub-strategy from the board's difficulty band. Comfortable
// boards lean toward line makers, crowded ones toward fillers and versatile
// shapes, challenging ones use the hybrid weighting, and critical boards
// always get at least one minimal shape.
func (s *Supplier) Adaptive(view puzzle.BoardView, n int) Batch {
	level := s.difficulty(view)
	ap := s.params.Adaptive

	var p *picker
	switch level {
	case analysis.Comfortable:
		p = s.biased(n, s.catalog.ByUtility(puzzle.UtilityLineMaker), ap.LineMakerBias)
	case analysis.Moderate:
		p = s.biased(n, s.compact(), ap.ModerateBias)
	case analysis.Challenging:
		b := s.Hybrid(view, n)
		return Batch{
			Shapes:     b.Shapes,
			Strategy:   StrategyAdaptiveBalanced,
			Detail:     level.String() + "/" + b.Detail,
			Guaranteed: true,
		}
	case analysis.Difficult:
		p = s.biased(n, s.compact(), ap.DifficultBias)
	default:
		p = s.biased(n, s.compact(), ap.CriticalBias)
		s.forceMinimal(view, p)
	}

	return Batch{
		Shapes:     p.shapes,
		Strategy:   StrategyAdaptiveBalanced,
		Detail:     level.String(),
		Guaranteed: true,
	}
}

// compact returns the filler and versatile shapes.
func (s *Supplier) compact() []*puzzle.Shape {
	return slices.Concat(
		s.catalog.ByUtility(puzzle.UtilityFiller),
		s.catalog.ByUtility(puzzle.UtilityVersatile),
	)
}

// MinimalShape returns the smallest shape that fits on view, or the smallest
// shape overall when nothing fits.
func (s *Supplier) MinimalShape(view puzzle.BoardView) *puzzle.Shape {
	sized := s.catalog.BySize()
	if len(sized) == 0 {
		return nil
	}
	for _, sh := range sized {
		if view.CanPlaceAnywhere(sh) {
			return sh
		}
	}
	return sized[0]
}

// forceMinimal replaces the largest shape in p with the minimal shape unless
// the batch already holds one at least as small.
func (s *Supplier) forceMinimal(view puzzle.BoardView, p *picker) {
	minimal := s.MinimalShape(view)
	if minimal == nil || len(p.shapes) == 0 {
		return
	}

	largest := 0
	for i, sh := range p.shapes {
		if sh.CellCount() <= minimal.CellCount() {
			return
		}
		if sh.CellCount() > p.shapes[largest].CellCount() {
			largest = i
		}
	}
	p.replace(largest, minimal)
}
