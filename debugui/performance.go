package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/session"
)

// PerformancePanel shows frame timing, board counters and, given a
// scheduler, per-system timings and entity counts.
type PerformancePanel struct {
	frames    *History
	scheduler *ecs.Scheduler
}

func NewPerformancePanel(historyFrames int, scheduler *ecs.Scheduler) *PerformancePanel {
	return &PerformancePanel{frames: NewHistory(historyFrames), scheduler: scheduler}
}

func (p *PerformancePanel) Render(g *session.Game, deltaTime float32) {
	p.frames.Push(deltaTime * 1000.0)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 320), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := p.frames.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))
	imgui.Text(fmt.Sprintf("Occupied: %d  Pending: %d", g.Board().OccupiedCount(), len(g.State().Pending)))
	imgui.Text(fmt.Sprintf("Score: %d  Moves: %d  Lines: %d", g.Score(), g.Moves(), g.Lines()))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	if values := p.frames.Values(); len(values) > 0 {
		imgui.PlotLinesFloatPtr("##frametime", &values[0], int32(len(values)))
	}

	if p.scheduler != nil {
		p.renderSystems()
	}

	imgui.End()
}

func (p *PerformancePanel) renderSystems() {
	storage := p.scheduler.Storage().CollectStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		storage.EntityCount, storage.ArchetypeCount, storage.SingletonCount))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemsTable", int32(len(systemColumns)), tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	for _, col := range systemColumns {
		imgui.TableSetupColumn(col)
	}
	imgui.TableHeadersRow()
	for _, row := range systemRows(p.scheduler.Stats()) {
		imgui.TableNextRow()
		for _, cell := range row {
			imgui.TableNextColumn()
			imgui.Text(cell)
		}
	}
	imgui.EndTable()
}

var systemColumns = []string{"System", "Runs", "Last", "Avg", "Max"}

func systemRows(stats []ecs.SystemStats) [][]string {
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			s.Name,
			fmt.Sprintf("%d", s.ExecutionCount),
			s.LastDuration.String(),
			s.AvgDuration.String(),
			s.MaxDuration.String(),
		}
	}
	return rows
}

// FrameTimer measures the time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// DeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) DeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
