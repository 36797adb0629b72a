package supply

import (
	"go.uber.org/zap"

	"github.com/plus3/tenten/puzzle"
)

// Rescue returns a batch with at least one shape that fits somewhere. It
// keeps a BalancedWeighted batch when that already holds a placeable shape,
// otherwise it collects the smallest placeable shapes. When nothing in the
// catalog fits, the n smallest shapes come back with Guaranteed false.
func (s *Supplier) Rescue(view puzzle.BoardView, n int) Batch {
	first := s.BalancedWeighted(n)
	if placeableCount(view, first.Shapes) > 0 {
		return Batch{Shapes: first.Shapes, Strategy: StrategyRescue, Detail: StrategyBalancedWeighted, Guaranteed: true}
	}

	p := newPicker(n)
	s.collectPlaceable(view, p)
	placeable := len(p.shapes)
	p.pad(s.catalog.BySize())

	b := Batch{Shapes: p.shapes, Strategy: StrategyRescue, Detail: "smallest", Guaranteed: placeable > 0}
	if !b.Guaranteed {
		s.degraded(view, b, placeable, 1)
	}
	return b
}

// collectPlaceable walks the catalog from the smallest shape up, adding every
// unused shape that fits until p is full.
func (s *Supplier) collectPlaceable(view puzzle.BoardView, p *picker) {
	for _, sh := range s.catalog.BySize() {
		if p.full() {
			return
		}
		if p.has(sh) || !view.CanPlaceAnywhere(sh) {
			continue
		}
		p.add(sh)
	}
}

func (s *Supplier) degraded(view puzzle.BoardView, b Batch, placeable, wanted int) {
	s.log.Warn("supply guarantee degraded",
		zap.String("strategy", b.Strategy),
		zap.Float64("capacity", view.Capacity()),
		zap.Int("placeable", placeable),
		zap.Int("wanted", wanted),
	)
}
