// Package debugui draws Dear ImGui panels over a running game: board
// analysis, supply statistics and frame timing. Panels live as ImguiItem
// entities and are drawn by ImguiSystem.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/session"
)

// Panel renders one ImGui window for the game.
type Panel interface {
	Render(g *session.Game, deltaTime float32)
}

// ImguiItem is a component that draws one ImGui window.
type ImguiItem struct {
	Render func(deltaTime float32)
}

// InputState is a singleton tracking whether ImGui is consuming mouse or
// keyboard input. Hosts should ignore board clicks while WantCaptureMouse
// is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is a singleton holding whether the panels are shown.
type Overlay struct {
	Visible bool
}

func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

// DefaultPanels are the performance, analysis and supply panels. The
// performance panel reports on scheduler, which may be nil.
func DefaultPanels(scheduler *ecs.Scheduler) []Panel {
	return []Panel{
		NewPerformancePanel(120, scheduler),
		NewAnalysisPanel(240),
		NewSupplyPanel(),
	}
}

// Spawn adds one ImguiItem entity per panel, each drawing for g.
func Spawn(storage *ecs.Storage, g *session.Game, panels ...Panel) []ecs.EntityId {
	ids := make([]ecs.EntityId, len(panels))
	for i, p := range panels {
		ids[i] = storage.Spawn(ImguiItem{Render: func(dt float32) { p.Render(g, dt) }})
	}
	return ids
}

// ImguiSystem refreshes InputState and queues every ImguiItem to render
// when the frame's commands are flushed. The host must run the scheduler
// between the backend's BeginFrame and EndFrame.
type ImguiSystem struct {
	Items   ecs.Query[struct{ *ImguiItem }]
	Overlay ecs.Singleton[Overlay]
	Input   ecs.Singleton[InputState]

	capture func() InputState
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if overlay := s.Overlay.Get(); overlay == nil || !overlay.Visible {
		if input != nil {
			*input = InputState{}
		}
		return
	}

	if input != nil {
		*input = s.readInput()
	}
	dt := float32(frame.DeltaTime)
	for item := range s.Items.Values() {
		render := item.Render
		frame.Commands.Defer(func() { render(dt) })
	}
}

func (s *ImguiSystem) readInput() InputState {
	if s.capture != nil {
		return s.capture()
	}
	io := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}
