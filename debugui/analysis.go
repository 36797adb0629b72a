package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tenten/puzzle/analysis"
	"github.com/plus3/tenten/session"
)

// AnalysisPanel shows the analyzer's report for the current board and a
// capacity graph over recent frames.
type AnalysisPanel struct {
	capacity *History
}

func NewAnalysisPanel(historyFrames int) *AnalysisPanel {
	return &AnalysisPanel{capacity: NewHistory(historyFrames)}
}

func (p *AnalysisPanel) Render(g *session.Game, _ float32) {
	rep := g.Analyze()
	p.capacity.Push(float32(rep.Capacity))

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 220), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 420), imgui.CondOnce)
	if !imgui.BeginV("Board Analysis", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.ProgressBarV(float32(rep.Capacity), imgui.NewVec2(-1, 0), fmt.Sprintf("capacity %.0f%%", rep.Capacity*100))
	c := difficultyColor(rep.Difficulty)
	imgui.TextColored(imgui.NewVec4(c[0], c[1], c[2], c[3]), strings.ToUpper(rep.Difficulty.String()))
	if rep.Rescue {
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), "RESCUE")
	}
	if values := p.capacity.Values(); len(values) > 0 {
		imgui.PlotLinesFloatPtr("##capacity", &values[0], int32(len(values)))
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Near complete: %d  Multi-line potential: %d", rep.Lines.NearComplete, rep.Lines.PotentialMultiLineClear))
	if imgui.TreeNodeStr("Lines") {
		for _, line := range lineSummaries(rep.Lines) {
			imgui.BulletText(line)
		}
		imgui.TreePop()
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Regions: %d  Largest: %d  Empty: %d", len(rep.Space.RegionSizes), rep.Space.Largest, rep.Space.TotalEmpty))
	imgui.Text(fmt.Sprintf("Fragmentation: %.2f  Isolated: %d  Small clusters: %d", rep.Space.Fragmentation, rep.Space.Isolated, rep.Space.SmallClusters))

	if imgui.TreeNodeStr("Strategic Placements") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("StrategicTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Shape")
			imgui.TableSetupColumn("Origin")
			imgui.TableSetupColumn("Potential")
			imgui.TableSetupColumn("Efficiency")
			imgui.TableHeadersRow()

			for _, pl := range rep.Strategic.Placements {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(pl.Shape.Name)
				imgui.TableNextColumn()
				imgui.Text(pl.Origin.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pl.ClearingPotential))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.2f", pl.Efficiency))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// difficultyColor runs from green to red as the board fills.
func difficultyColor(d analysis.Difficulty) [4]float32 {
	switch d {
	case analysis.Comfortable:
		return [4]float32{0.3, 0.9, 0.3, 1}
	case analysis.Moderate:
		return [4]float32{0.7, 0.9, 0.3, 1}
	case analysis.Challenging:
		return [4]float32{1.0, 0.8, 0.0, 1}
	case analysis.Difficult:
		return [4]float32{1.0, 0.5, 0.1, 1}
	default:
		return [4]float32{1.0, 0.2, 0.2, 1}
	}
}

func lineSummaries(lc analysis.LineCompletion) []string {
	out := make([]string, 0, len(lc.Rows)+len(lc.Columns))
	for _, g := range lc.Rows {
		out = append(out, fmt.Sprintf("row %d: %d empty", g.Index, g.Empty))
	}
	for _, g := range lc.Columns {
		out = append(out, fmt.Sprintf("column %d: %d empty", g.Index, g.Empty))
	}
	return out
}
