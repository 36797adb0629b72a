package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/tenten/debugui"
	debugui_ebiten "github.com/plus3/tenten/debugui/ebiten"
	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/puzzle"
)

// Game implements ebiten.Game by running the scheduler once per update and
// drawing from the singletons it maintains.
type Game struct {
	scheduler *ecs.Scheduler
	backend   *debugui_ebiten.ImguiBackend
	timer     *debugui.FrameTimer

	table  *ecs.Singleton[Table]
	pick   *ecs.Singleton[Selection]
	toasts *ecs.Query[struct{ *Toast }]
}

func NewGame(storage *ecs.Storage, scheduler *ecs.Scheduler, backend *debugui_ebiten.ImguiBackend) *Game {
	return &Game{
		scheduler: scheduler,
		backend:   backend,
		timer:     debugui.NewFrameTimer(),
		table:     ecs.NewSingleton[Table](storage),
		pick:      ecs.NewSingleton[Selection](storage),
		toasts:    ecs.NewQuery[struct{ *Toast }](storage),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	dt := g.timer.DeltaTime()
	g.backend.Frame(func() {
		g.scheduler.Once(float64(dt))
	})
	return nil
}

// status returns the line shown under the score: the game over notice, or
// the newest toast.
func (g *Game) status() string {
	if g.table.Get().Session.Over() {
		return "game over: V to revive, R to restart"
	}
	g.toasts.Execute()
	var text string
	var newest uint64
	for item := range g.toasts.Values() {
		if item.Serial > newest {
			newest, text = item.Serial, item.Text
		}
	}
	return text
}

func (g *Game) Draw(screen *ebiten.Image) {
	t := g.table.Get()
	screen.Fill(backgroundColor)

	for row := range puzzle.Rows {
		for col := range puzzle.Columns {
			c := puzzle.Cell{Row: row, Col: col}
			x, y, size := cellRect(c)
			vector.DrawFilledRect(screen, x, y, size, size, emptyCellColor, false)
			if occ := t.Renderer.Color(c); occ != puzzle.NoColor {
				vector.DrawFilledRect(screen, x, y, size, size, occupantColor(occ, t.Renderer.Alpha(c)), false)
			}
		}
	}
	for _, c := range t.Renderer.Ghost() {
		x, y, size := cellRect(c)
		vector.DrawFilledRect(screen, x, y, size, size, ghostColor, false)
	}

	g.drawTray(screen)

	s := t.Session
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score %d   Lines %d   Moves %d", s.Score(), s.Lines(), s.Moves()), BoardX, 20)
	ebitenutil.DebugPrintAt(screen, g.status(), BoardX, 40)
	ebitenutil.DebugPrintAt(screen, "click a piece, then a cell   R restart   V revive   F1 debug   Q quit", BoardX, ScreenHeight-30)

	g.backend.Draw(screen)
}

func (g *Game) drawTray(screen *ebiten.Image) {
	selected := g.pick.Get().Slot
	for slot, s := range g.table.Get().Session.Offer() {
		top := float32(TrayY + slot*TraySlotH)
		if slot == selected {
			vector.StrokeRect(screen, TrayX-6, top-6, 5*TrayCell+12, 5*TrayCell+12, 2, selectedColor, false)
		}
		if s == nil {
			continue
		}
		tl := s.TopLeft()
		for o := range s.Offsets() {
			x := float32(TrayX + (o.Col-tl.Col)*TrayCell)
			y := top + float32((o.Row-tl.Row)*TrayCell)
			vector.DrawFilledRect(screen, x, y, TrayCell-2, TrayCell-2, occupantColor(s.Color, 1), false)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return ScreenWidth, ScreenHeight
}
