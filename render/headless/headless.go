// Package headless provides a puzzle.Renderer for hosts without a screen.
package headless

import (
	"slices"

	"github.com/plus3/tenten/puzzle"
)

// Renderer buffers clear animations and completes them when Flush runs,
// so a board under a headless host stays in its clearing state until the
// host's next tick. Draw calls are mirrored into a frame the host can read.
type Renderer struct {
	clears []clearCommand
	frame  [puzzle.Rows][puzzle.Columns]puzzle.Color
	ghost  []puzzle.Cell
	draws  int
}

type clearCommand struct {
	cells      []puzzle.Cell
	onComplete func()
}

var _ puzzle.Renderer = (*Renderer)(nil)

// New creates an empty renderer.
func New() *Renderer {
	return &Renderer{}
}

// DrawOccupant records the cell's new occupant in the frame.
func (r *Renderer) DrawOccupant(cell puzzle.Cell, color puzzle.Color) {
	if !cell.InBounds() {
		return
	}
	r.frame[cell.Row][cell.Col] = color
	r.draws++
}

// RunClearAnimation queues the completion callback for the next Flush.
func (r *Renderer) RunClearAnimation(cells []puzzle.Cell, onComplete func()) {
	r.clears = append(r.clears, clearCommand{cells: cells, onComplete: onComplete})
}

// ShowGhostPreview remembers the most recent preview.
func (r *Renderer) ShowGhostPreview(cells []puzzle.Cell) {
	r.ghost = slices.Clone(cells)
}

// Pending returns the number of queued clear animations.
func (r *Renderer) Pending() int {
	return len(r.clears)
}

// PendingCells returns the cells of every queued clear animation.
func (r *Renderer) PendingCells() []puzzle.Cell {
	var cells []puzzle.Cell
	for _, cmd := range r.clears {
		cells = append(cells, cmd.cells...)
	}
	return cells
}

// Flush completes every queued clear in order and resets the queue. Clears
// started by those completions stay queued for the next Flush. It returns
// the number of completions run.
func (r *Renderer) Flush() int {
	queued := r.clears
	r.clears = nil
	for _, cmd := range queued {
		cmd.onComplete()
	}
	return len(queued)
}

// Drain flushes until nothing is queued, giving up after limit rounds.
func (r *Renderer) Drain(limit int) int {
	total := 0
	for range limit {
		if len(r.clears) == 0 {
			break
		}
		total += r.Flush()
	}
	return total
}

// Frame returns the mirrored occupancy as of the last draw.
func (r *Renderer) Frame() puzzle.BoardSnapshot {
	return puzzle.BoardSnapshot{Grid: r.frame}
}

// Ghost returns the most recent preview cells.
func (r *Renderer) Ghost() []puzzle.Cell {
	return slices.Clone(r.ghost)
}

// Draws returns the number of DrawOccupant calls so far.
func (r *Renderer) Draws() int {
	return r.draws
}
