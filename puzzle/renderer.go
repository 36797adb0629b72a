package puzzle

// Renderer is the view-layer collaborator the board calls out to. The board
// expects RunClearAnimation to invoke onComplete exactly once per call.
type Renderer interface {
	DrawOccupant(cell Cell, color Color)
	RunClearAnimation(cells []Cell, onComplete func())
	ShowGhostPreview(cells []Cell)
}

// NopRenderer draws nothing and completes clear animations synchronously.
type NopRenderer struct{}

func (NopRenderer) DrawOccupant(Cell, Color) {}

func (NopRenderer) RunClearAnimation(_ []Cell, onComplete func()) {
	onComplete()
}

func (NopRenderer) ShowGhostPreview([]Cell) {}
