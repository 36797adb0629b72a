package supply

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/tenten/puzzle"
)

// picker accumulates a batch without repeating a shape.
type picker struct {
	want   int
	shapes []*puzzle.Shape
	used   *intmap.Map[puzzle.ShapeID, struct{}]
}

func newPicker(want int) *picker {
	return &picker{
		want:   want,
		shapes: make([]*puzzle.Shape, 0, want),
		used:   intmap.New[puzzle.ShapeID, struct{}](want),
	}
}

func (p *picker) full() bool {
	return len(p.shapes) >= p.want
}

func (p *picker) has(s *puzzle.Shape) bool {
	return p.used.Has(s.ID)
}

// add appends s unless it is nil, already picked or the batch is full.
func (p *picker) add(s *puzzle.Shape) bool {
	if s == nil || p.full() || p.has(s) {
		return false
	}
	p.used.Put(s.ID, struct{}{})
	p.shapes = append(p.shapes, s)
	return true
}

// pad fills the batch from list, unused shapes first. Repeats are allowed
// only once list has nothing new to give.
func (p *picker) pad(list []*puzzle.Shape) {
	for _, s := range list {
		if p.full() {
			return
		}
		p.add(s)
	}
	for i := 0; !p.full() && len(list) > 0; i++ {
		p.shapes = append(p.shapes, list[i%len(list)])
	}
}

// replace swaps the shape in slot i for s.
func (p *picker) replace(i int, s *puzzle.Shape) {
	p.used.Del(p.shapes[i].ID)
	p.used.Put(s.ID, struct{}{})
	p.shapes[i] = s
}

// pickByRarity draws a tier by weight among the tiers present in shapes, then
// a shape uniformly within it.
func (s *Supplier) pickByRarity(shapes []*puzzle.Shape) *puzzle.Shape {
	if len(shapes) == 0 {
		return nil
	}

	var tiers [4][]*puzzle.Shape
	total := 0
	for _, sh := range shapes {
		r := int(sh.Rarity)
		if r < 0 || r >= len(tiers) {
			continue
		}
		if len(tiers[r]) == 0 {
			total += sh.Rarity.Weight()
		}
		tiers[r] = append(tiers[r], sh)
	}
	if total == 0 {
		return shapes[s.rng.IntN(len(shapes))]
	}

	roll := s.rng.IntN(total)
	for _, r := range puzzle.Rarities {
		tier := tiers[r]
		if len(tier) == 0 {
			continue
		}
		if roll < r.Weight() {
			return tier[s.rng.IntN(len(tier))]
		}
		roll -= r.Weight()
	}
	return shapes[len(shapes)-1]
}

func (s *Supplier) shuffled(shapes []*puzzle.Shape) []*puzzle.Shape {
	s.rng.Shuffle(len(shapes), func(i, j int) {
		shapes[i], shapes[j] = shapes[j], shapes[i]
	})
	return shapes
}

// placeableCount counts the shapes that fit somewhere on view.
func placeableCount(view puzzle.BoardView, shapes []*puzzle.Shape) int {
	n := 0
	for _, sh := range shapes {
		if view.CanPlaceAnywhere(sh) {
			n++
		}
	}
	return n
}
