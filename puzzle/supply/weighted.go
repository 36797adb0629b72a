package supply

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/tenten/puzzle"
)

// WeightedRandomShape draws a rarity tier by weight (50/30/15/5) and then a
// shape uniformly within that tier.
func (s *Supplier) WeightedRandomShape() *puzzle.Shape {
	return s.pickByRarity(s.catalog.All())
}

// WeightedRandom draws n rarity-weighted shapes, rejecting repeats for up to
// WeightedRetries*n draws, then pads with unused shapes.
func (s *Supplier) WeightedRandom(n int) Batch {
	p := newPicker(n)
	for range s.params.WeightedRetries * n {
		if p.full() {
			break
		}
		p.add(s.WeightedRandomShape())
	}
	p.pad(s.shuffled(s.catalog.All()))
	return Batch{Shapes: p.shapes, Strategy: StrategyWeightedRandom, Guaranteed: true}
}

// CategoryBalanced makes one rarity-weighted pick per category, visiting the
// categories in random order.
func (s *Supplier) CategoryBalanced(n int) Batch {
	p := newPicker(n)

	order := make([]puzzle.Category, len(puzzle.Categories))
	copy(order, puzzle.Categories)
	s.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	for _, c := range order {
		if p.full() {
			break
		}
		p.add(s.pickByRarity(s.catalog.ByCategory(c)))
	}
	for range s.params.WeightedRetries * n {
		if p.full() {
			break
		}
		p.add(s.WeightedRandomShape())
	}
	p.pad(s.shuffled(s.catalog.All()))
	return Batch{Shapes: p.shapes, Strategy: StrategyCategoryBalanced, Guaranteed: true}
}

// BalancedWeighted draws rarity-weighted shapes from the whole catalog but
// rejects a second shape of an already offered category while the retry
// budget lasts. Unlike CategoryBalanced the category mix follows the rarity
// weights rather than being uniform.
func (s *Supplier) BalancedWeighted(n int) Batch {
	p := newPicker(n)
	seen := intmap.New[puzzle.Category, struct{}](n)

	budget := s.params.WeightedRetries * n
	for range budget {
		if p.full() {
			break
		}
		sh := s.WeightedRandomShape()
		if seen.Has(sh.Category) && seen.Len() < len(puzzle.Categories) {
			continue
		}
		if p.add(sh) {
			seen.Put(sh.Category, struct{}{})
		}
	}
	for range budget {
		if p.full() {
			break
		}
		p.add(s.WeightedRandomShape())
	}
	p.pad(s.shuffled(s.catalog.All()))
	return Batch{Shapes: p.shapes, Strategy: StrategyBalancedWeighted, Guaranteed: true}
}

// biased fills n slots, drawing each from preferred with probability bias and
// from the whole catalog otherwise.
func (s *Supplier) biased(n int, preferred []*puzzle.Shape, bias float64) *picker {
	p := newPicker(n)
	for range s.params.WeightedRetries * n {
		if p.full() {
			break
		}
		if len(preferred) > 0 && s.rng.Float64() < bias {
			p.add(s.pickByRarity(preferred))
			continue
		}
		p.add(s.WeightedRandomShape())
	}
	p.pad(s.shuffled(s.catalog.All()))
	return p
}
