package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tenten/puzzle/supply"
	"github.com/plus3/tenten/session"
)

// SupplyPanel shows the current batch and the per-strategy statistics.
type SupplyPanel struct{}

func NewSupplyPanel() *SupplyPanel {
	return &SupplyPanel{}
}

func (p *SupplyPanel) Render(g *session.Game, _ float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(380, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(460, 300), imgui.CondOnce)
	if !imgui.BeginV("Piece Supply", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	batch := g.Batch()
	imgui.Text(fmt.Sprintf("Strategy: %s", batchLabel(batch)))
	if !batch.Guaranteed {
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), "DEGRADED")
	}
	for i, s := range g.Offer() {
		if s == nil {
			imgui.BulletText(fmt.Sprintf("slot %d: used", i))
			continue
		}
		imgui.BulletText(fmt.Sprintf("slot %d: %s (%s, %s)", i, s.Name, s.Rarity, s.Category))
	}
	if rem := g.State().PostReviveRemaining; rem > 0 {
		imgui.Text(fmt.Sprintf("Post-revive batches left: %d", rem))
	}

	stats := g.SupplyStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Batches: %d  Degraded: %d", stats.TotalBatches, stats.TotalDegraded))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SupplyStatsTable", int32(len(statsColumns)), tableFlags, imgui.NewVec2(0, 0), 0) {
		for _, col := range statsColumns {
			imgui.TableSetupColumn(col)
		}
		imgui.TableHeadersRow()

		for _, row := range statsRows(stats) {
			imgui.TableNextRow()
			for _, cell := range row {
				imgui.TableNextColumn()
				imgui.Text(cell)
			}
		}
		imgui.EndTable()
	}

	imgui.End()
}

var statsColumns = []string{"Strategy", "Runs", "Degraded", "Avg", "Min", "Max"}

func statsRows(stats supply.Stats) [][]string {
	rows := make([][]string, 0, len(stats.Strategies))
	for _, s := range stats.Strategies {
		rows = append(rows, []string{
			s.Name,
			fmt.Sprintf("%d", s.ExecutionCount),
			fmt.Sprintf("%d", s.DegradedCount),
			s.AvgDuration.String(),
			s.MinDuration.String(),
			s.MaxDuration.String(),
		})
	}
	return rows
}

func batchLabel(b supply.Batch) string {
	if b.Detail == "" {
		return b.Strategy
	}
	return b.Strategy + " / " + b.Detail
}
