package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/tenten/debugui"
	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/puzzle"
	"github.com/plus3/tenten/render/animated"
	"github.com/plus3/tenten/session"
)

const toastSeconds = 3.0

// Table is the singleton holding the running game.
type Table struct {
	Session  *session.Game
	Renderer *animated.Renderer
	Log      *zap.Logger

	toasts uint64
}

// say queues a status line for the next frames.
func (t *Table) say(frame *ecs.UpdateFrame, text string) {
	t.toasts++
	frame.Commands.Spawn(Toast{Text: text, Remaining: toastSeconds, Serial: t.toasts})
}

// Selection is the singleton tracking the picked offer slot and the cell
// under the cursor.
type Selection struct {
	Slot    int
	Cursor  puzzle.Cell
	OnBoard bool
}

func (s *Selection) clear(t *Table) {
	s.Slot = -1
	t.Renderer.ClearGhost()
}

// TraySlot is a component marking the screen area of one offer slot.
type TraySlot struct {
	Index      int
	X, Y, W, H int
}

func (s *TraySlot) Contains(x, y int) bool {
	return x >= s.X && x < s.X+s.W && y >= s.Y && y < s.Y+s.H
}

// Toast is a component holding a status line until it expires.
type Toast struct {
	Text      string
	Remaining float64
	Serial    uint64
}

// KeySystem handles the keyboard shortcuts.
type KeySystem struct {
	Device  Input
	Table   ecs.Singleton[Table]
	Pick    ecs.Singleton[Selection]
	Overlay ecs.Singleton[debugui.Overlay]
	Imgui   ecs.Singleton[debugui.InputState]
}

func (s *KeySystem) Execute(frame *ecs.UpdateFrame) {
	t, sel := s.Table.Get(), s.Pick.Get()
	switch {
	case s.Device.JustPressed(ebiten.KeyF1):
		s.Overlay.Get().Toggle()
	case s.Imgui.Get().WantCaptureKeyboard:
	case s.Device.JustPressed(ebiten.KeyEscape):
		sel.clear(t)
	case s.Device.JustPressed(ebiten.KeyR):
		t.Session.Restart()
		sel.clear(t)
		t.say(frame, "restarted")
	case s.Device.JustPressed(ebiten.KeyV):
		if err := t.Session.Revive(); err != nil {
			t.say(frame, err.Error())
			return
		}
		sel.clear(t)
		t.say(frame, fmt.Sprintf("revived (%d batches of easy pieces)", t.Session.State().PostReviveRemaining))
	}
}

// PointerSystem previews the selected piece under the cursor, picks offer
// slots and places pieces.
type PointerSystem struct {
	Device Input
	Slots  ecs.Query[struct{ *TraySlot }]
	Table  ecs.Singleton[Table]
	Pick   ecs.Singleton[Selection]
	Imgui  ecs.Singleton[debugui.InputState]
}

func (s *PointerSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Imgui.Get().WantCaptureMouse {
		return
	}
	t, sel := s.Table.Get(), s.Pick.Get()

	mx, my := s.Device.Cursor()
	sel.Cursor, sel.OnBoard = cellAt(mx, my)
	if !sel.OnBoard || sel.Slot < 0 {
		t.Renderer.ClearGhost()
	} else if _, err := t.Session.Preview(sel.Slot, sel.Cursor); err != nil {
		t.Renderer.ClearGhost()
	}

	if !s.Device.Clicked() {
		return
	}
	for slot := range s.Slots.Values() {
		if !slot.Contains(mx, my) {
			continue
		}
		if offer := t.Session.Offer(); slot.Index < len(offer) && offer[slot.Index] != nil {
			sel.Slot = slot.Index
		}
		return
	}
	if !sel.OnBoard || sel.Slot < 0 {
		return
	}

	res, err := t.Session.Place(sel.Slot, sel.Cursor)
	switch {
	case errors.Is(err, session.ErrCannotPlace):
		t.say(frame, "does not fit there")
		return
	case err != nil:
		t.say(frame, err.Error())
		return
	}

	sel.clear(t)
	if n := res.Cleared.Lines(); n > 0 {
		t.say(frame, fmt.Sprintf("+%d (%d lines)", res.Points, n))
	}
	t.Log.Debug("placed",
		zap.Stringer("shape", res.Shape),
		zap.Stringer("origin", res.Origin),
		zap.Int("points", res.Points),
	)
}

// AnimationSystem advances the clear fades. Finished fades settle the board
// after every system has run for the frame.
type AnimationSystem struct {
	Table ecs.Singleton[Table]
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	dt := time.Duration(frame.DeltaTime * float64(time.Second))
	for _, done := range s.Table.Get().Renderer.Advance(dt) {
		frame.Commands.Defer(done)
	}
}

// ToastSystem expires status lines.
type ToastSystem struct {
	Toasts ecs.Query[struct{ *Toast }]
}

func (s *ToastSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Toasts.Iter() {
		item.Remaining -= frame.DeltaTime
		if item.Remaining <= 0 {
			frame.Commands.Delete(id)
		}
	}
}

// newWorld builds the storage and scheduler for one table with the given
// number of offer slots. Systems run in the order input, animation, toasts,
// overlay.
func newWorld(t Table, slots int, device Input) (*ecs.Storage, *ecs.Scheduler) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[TraySlot](registry)
	ecs.RegisterComponent[Toast](registry)
	ecs.RegisterComponent[debugui.ImguiItem](registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton(storage, t)
	ecs.NewSingleton(storage, Selection{Slot: -1})
	ecs.NewSingleton[debugui.Overlay](storage)
	ecs.NewSingleton[debugui.InputState](storage)

	for i := range slots {
		storage.Spawn(TraySlot{Index: i, X: TrayX, Y: TrayY + i*TraySlotH, W: 5 * TrayCell, H: TraySlotH})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&KeySystem{Device: device})
	scheduler.Register(&PointerSystem{Device: device})
	scheduler.Register(&AnimationSystem{})
	scheduler.Register(&ToastSystem{})
	scheduler.Register(&debugui.ImguiSystem{})
	return storage, scheduler
}
