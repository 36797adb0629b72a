// Package animated provides a puzzle.Renderer that plays clear animations
// over time. A host advances it once per frame with Tick (or Advance) and
// reads the frame, ghost and fade progress back when drawing.
package animated

import (
	"slices"
	"time"

	"github.com/plus3/tenten/puzzle"
)

// DefaultFade is the length of a clear animation.
const DefaultFade = 300 * time.Millisecond

// Renderer keeps the drawn occupancy and the running fades.
type Renderer struct {
	frame    [puzzle.Rows][puzzle.Columns]puzzle.Color
	fading   [puzzle.Rows][puzzle.Columns]float64
	ghost    []puzzle.Cell
	fades    []*fade
	duration time.Duration
}

type fade struct {
	cells      []puzzle.Cell
	elapsed    time.Duration
	onComplete func()
}

var _ puzzle.Renderer = (*Renderer)(nil)

// New creates a renderer whose clears take d. A non-positive d means DefaultFade.
func New(d time.Duration) *Renderer {
	if d <= 0 {
		d = DefaultFade
	}
	return &Renderer{duration: d}
}

func (r *Renderer) DrawOccupant(cell puzzle.Cell, color puzzle.Color) {
	if !cell.InBounds() {
		return
	}
	r.frame[cell.Row][cell.Col] = color
	if color == puzzle.NoColor {
		r.fading[cell.Row][cell.Col] = 0
	}
}

// RunClearAnimation starts a fade. onComplete runs from the Tick that
// finishes it, or is returned by Advance.
func (r *Renderer) RunClearAnimation(cells []puzzle.Cell, onComplete func()) {
	r.fades = append(r.fades, &fade{cells: slices.Clone(cells), onComplete: onComplete})
}

func (r *Renderer) ShowGhostPreview(cells []puzzle.Cell) {
	r.ghost = slices.Clone(cells)
}

// ClearGhost drops the preview, e.g. when the cursor leaves the board.
func (r *Renderer) ClearGhost() {
	r.ghost = nil
}

// Tick advances every fade by dt and completes the finished ones in the
// order they started. Fades started by a completion begin on the next Tick.
func (r *Renderer) Tick(dt time.Duration) {
	for _, done := range r.Advance(dt) {
		done()
	}
}

// Advance is Tick without running the completions: it returns them, oldest
// first, for the caller to run once it is safe to change the board.
func (r *Renderer) Advance(dt time.Duration) []func() {
	running := r.fades[:0:0]
	var finished []func()
	for _, f := range r.fades {
		f.elapsed += dt
		if f.elapsed >= r.duration {
			finished = append(finished, f.onComplete)
			continue
		}
		running = append(running, f)
	}
	r.fades = running

	r.fading = [puzzle.Rows][puzzle.Columns]float64{}
	for _, f := range r.fades {
		progress := float64(f.elapsed) / float64(r.duration)
		for _, c := range f.cells {
			r.fading[c.Row][c.Col] = max(r.fading[c.Row][c.Col], progress)
		}
	}
	return finished
}

// Animating reports whether any fade is running.
func (r *Renderer) Animating() bool {
	return len(r.fades) > 0
}

// Color returns the occupant drawn at cell.
func (r *Renderer) Color(cell puzzle.Cell) puzzle.Color {
	if !cell.InBounds() {
		return puzzle.NoColor
	}
	return r.frame[cell.Row][cell.Col]
}

// Alpha returns the opacity to draw cell with: 1 for settled cells, falling
// towards 0 while the cell fades out.
func (r *Renderer) Alpha(cell puzzle.Cell) float64 {
	if !cell.InBounds() {
		return 0
	}
	return 1 - r.fading[cell.Row][cell.Col]
}

// Ghost returns the current preview cells.
func (r *Renderer) Ghost() []puzzle.Cell {
	return r.ghost
}
