package supply

import (
	"cmp"
	"slices"

	"github.com/plus3/tenten/puzzle"
)

type tier struct {
	rarity  puzzle.Rarity
	utility puzzle.Utility
	any     bool
}

// revivePriority is the candidate order for post-revive batches. The last
// entry matches any common shape.
var revivePriority = []tier{
	{rarity: puzzle.RarityPremium, utility: puzzle.UtilityVersatile},
	{rarity: puzzle.RarityCommon, utility: puzzle.UtilityFiller},
	{rarity: puzzle.RarityUseful, utility: puzzle.UtilityLineMaker},
	{rarity: puzzle.RarityUseful, utility: puzzle.UtilitySpaceFiller},
	{rarity: puzzle.RarityCommon, any: true},
}

// ReviveCandidates returns the post-revive candidate list: shapes from the
// priority tiers, without repeats, smallest first with ties going to the
// preferred utility.
func (s *Supplier) ReviveCandidates() []*puzzle.Shape {
	var out []*puzzle.Shape
	for _, t := range revivePriority {
		for _, sh := range s.catalog.ByRarity(t.rarity) {
			if !t.any && sh.Utility != t.utility {
				continue
			}
			if !slices.Contains(out, sh) {
				out = append(out, sh)
			}
		}
	}

	slices.SortStableFunc(out, func(a, b *puzzle.Shape) int {
		if n := cmp.Compare(a.CellCount(), b.CellCount()); n != 0 {
			return n
		}
		return cmp.Compare(a.Utility.PreferenceRank(), b.Utility.PreferenceRank())
	})
	return out
}

// PostRevive returns a batch in which every shape fits somewhere on view. It
// scans the candidate list for up to PostRevivePasses passes, tops up from
// the smallest placeable shapes, and as a last resort pads with the smallest
// shapes regardless of fit, reporting Guaranteed false.
func (s *Supplier) PostRevive(view puzzle.BoardView, n int) Batch {
	candidates := s.ReviveCandidates()
	p := newPicker(n)

	for range s.params.PostRevivePasses {
		added := false
		for _, sh := range candidates {
			if p.full() {
				break
			}
			if p.has(sh) || !view.CanPlaceAnywhere(sh) {
				continue
			}
			added = p.add(sh) || added
		}
		// the board is fixed while selecting, so a pass that adds nothing
		// means every later pass would too
		if p.full() || !added {
			break
		}
	}

	s.collectPlaceable(view, p)
	placeable := len(p.shapes)
	p.pad(s.catalog.BySize())

	b := Batch{Shapes: p.shapes, Strategy: StrategyPostRevive, Guaranteed: placeable >= n}
	if !b.Guaranteed {
		s.degraded(view, b, placeable, n)
	}
	return b
}
