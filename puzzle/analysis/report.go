package analysis

import "github.com/plus3/tenten/puzzle"

// Report bundles every analysis of one board state.
type Report struct {
	Capacity   float64            `json:"capacity"`
	Difficulty Difficulty         `json:"difficulty"`
	Rescue     bool               `json:"rescue"`
	Lines      LineCompletion     `json:"lines"`
	Space      SpacePattern       `json:"space"`
	Strategic  StrategicPlacement `json:"strategic"`
}

// Analyze runs every analysis against view. A nil catalog means the default one.
func Analyze(view puzzle.BoardView, cat *puzzle.Catalog, th Thresholds) Report {
	capacity := view.Capacity()
	return Report{
		Capacity:   capacity,
		Difficulty: th.Level(capacity),
		Rescue:     th.IsRescue(capacity),
		Lines:      LineCompletionAnalysis(view),
		Space:      SpacePatternAnalysis(view),
		Strategic:  StrategicPlacementAnalysis(view, cat),
	}
}
