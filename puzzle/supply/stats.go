package supply

import (
	"slices"
	"time"
)

// Stats provides statistics about batch selection.
type Stats struct {
	StrategyCount int
	TotalBatches  int64
	TotalDegraded int64
	Strategies    []StrategyStats
}

// StrategyStats provides execution statistics for a single strategy.
type StrategyStats struct {
	Name           string
	ExecutionCount int64
	DegradedCount  int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type strategyStatsInternal struct {
	name           string
	executionCount int64
	degradedCount  int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// statsRecorder keeps strategies in first-use order.
type statsRecorder struct {
	strategies []*strategyStatsInternal
}

func (r *statsRecorder) record(name string, duration time.Duration, degraded bool) {
	var stats *strategyStatsInternal
	for _, st := range r.strategies {
		if st.name == name {
			stats = st
			break
		}
	}
	if stats == nil {
		stats = &strategyStatsInternal{
			name:        name,
			minDuration: time.Duration(1<<63 - 1),
		}
		r.strategies = append(r.strategies, stats)
	}

	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	if degraded {
		stats.degradedCount++
	}

	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

func (r *statsRecorder) snapshot() Stats {
	stats := Stats{
		StrategyCount: len(r.strategies),
		Strategies:    make([]StrategyStats, len(r.strategies)),
	}

	for i, internal := range r.strategies {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Strategies[i] = StrategyStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			DegradedCount:  internal.degradedCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalBatches += internal.executionCount
		stats.TotalDegraded += internal.degradedCount
	}

	return stats
}

// Strategy returns the statistics for one strategy name.
func (s Stats) Strategy(name string) (StrategyStats, bool) {
	for _, st := range s.Strategies {
		if st.Name == name {
			return st, true
		}
	}
	return StrategyStats{}, false
}

// Merge combines two sets of statistics, matching strategies by name.
// Strategies keep s's order, followed by those only other has seen.
func (s Stats) Merge(other Stats) Stats {
	out := Stats{Strategies: slices.Clone(s.Strategies)}
	for _, o := range other.Strategies {
		i := slices.IndexFunc(out.Strategies, func(st StrategyStats) bool { return st.Name == o.Name })
		if i < 0 {
			out.Strategies = append(out.Strategies, o)
			continue
		}
		st := &out.Strategies[i]
		st.MinDuration = min(st.MinDuration, o.MinDuration)
		st.MaxDuration = max(st.MaxDuration, o.MaxDuration)
		st.ExecutionCount += o.ExecutionCount
		st.DegradedCount += o.DegradedCount
		st.TotalDuration += o.TotalDuration
		st.LastDuration = o.LastDuration
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		}
	}

	out.StrategyCount = len(out.Strategies)
	for _, st := range out.Strategies {
		out.TotalBatches += st.ExecutionCount
		out.TotalDegraded += st.DegradedCount
	}
	return out
}
