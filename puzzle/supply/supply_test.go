package supply_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/plus3/tenten/puzzle"
	"github.com/plus3/tenten/puzzle/supply"
)

func boardFrom(lines ...string) *puzzle.Board {
	b := puzzle.NewBoard()
	b.Restore(puzzle.ParseSnapshot(lines...))
	return b
}

func fullBoard() *puzzle.Board {
	return boardFrom("########", "########", "########", "########", "########", "########", "########", "########")
}

// squareHole is full except a 2x2 hole.
func squareHole() *puzzle.Board {
	return boardFrom(
		"########",
		"########",
		"########",
		"###..###",
		"###..###",
		"########",
		"########",
		"########",
	)
}

// twoSingles is full except two isolated cells.
func twoSingles() *puzzle.Board {
	return boardFrom(
		".#######",
		"########",
		"########",
		"########",
		"########",
		"########",
		"########",
		"#######.",
	)
}

func ids(shapes []*puzzle.Shape) []puzzle.ShapeID {
	out := make([]puzzle.ShapeID, len(shapes))
	for i, s := range shapes {
		out[i] = s.ID
	}
	return out
}

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestRarityDistribution(t *testing.T) {
	s := supply.New(supply.WithSeed(1))

	const draws = 100_000
	counts := make(map[puzzle.Rarity]int)
	for range draws {
		counts[s.WeightedRandomShape().Rarity]++
	}

	for _, r := range puzzle.Rarities {
		got := float64(counts[r]) / draws
		want := float64(r.Weight()) / 100
		assert.InDelta(t, want, got, 0.01, "tier %s", r)
	}
}

func TestModesFillDistinctBatches(t *testing.T) {
	boards := map[string]*puzzle.Board{
		"empty":       puzzle.NewBoard(),
		"moderate":    boardFrom("########", "########", "########", "#.#.#.#."),
		"challenging": boardFrom("########", "########", "########", "########", "######.."),
		"critical":    boardFrom("########", "########", "########", "########", "########", "########", "####...."),
	}

	for _, mode := range supply.Modes {
		for name, board := range boards {
			t.Run(mode.String()+"/"+name, func(t *testing.T) {
				s := supply.New(supply.WithSeed(42))
				for range 50 {
					b := s.Select(board, mode, 3)
					require.Len(t, b.Shapes, 3)
					assert.True(t, b.Guaranteed)
					assert.NotEmpty(t, b.Strategy)

					seen := make(map[puzzle.ShapeID]bool)
					for _, sh := range b.Shapes {
						require.NotNil(t, sh)
						assert.False(t, seen[sh.ID], "repeated %s in %v", sh.Name, ids(b.Shapes))
						seen[sh.ID] = true
					}
				}
			})
		}
	}
}

func TestSameSeedSameBatches(t *testing.T) {
	a := supply.New(supply.WithSeed(9), supply.WithMode(supply.WeightedRandom))
	b := supply.New(supply.WithSeed(9), supply.WithMode(supply.WeightedRandom))
	board := puzzle.NewBoard()

	for range 20 {
		assert.Equal(t, ids(a.Next(board).Shapes), ids(b.Next(board).Shapes))
	}
}

func TestCategoryBalancedAvoidsRepeatedCategories(t *testing.T) {
	s := supply.New(supply.WithSeed(3))
	for range 100 {
		b := s.CategoryBalanced(3)
		cats := make(map[puzzle.Category]bool)
		for _, sh := range b.Shapes {
			assert.False(t, cats[sh.Category])
			cats[sh.Category] = true
		}
	}
}

func TestBatchLargerThanCatalog(t *testing.T) {
	cat := puzzle.NewCatalog(
		puzzle.NewShape(1, "dot", puzzle.CategorySquares, puzzle.RarityCommon, puzzle.UtilityFiller, puzzle.Cell{}),
		puzzle.NewShape(2, "bar", puzzle.CategorySticks, puzzle.RarityUseful, puzzle.UtilityLineMaker,
			puzzle.Cell{}, puzzle.Cell{Col: 1}),
	)
	s := supply.New(supply.WithSeed(5), supply.WithCatalog(cat))

	b := s.WeightedRandom(3)
	require.Len(t, b.Shapes, 3)
	assert.ElementsMatch(t, []puzzle.ShapeID{1, 2}, ids(b.Shapes[:2]), "unused shapes come first")
}

func TestRescue(t *testing.T) {
	t.Run("at least one placeable shape", func(t *testing.T) {
		s := supply.New(supply.WithSeed(11))
		rng := rand.New(rand.NewPCG(2, 3))
		checked := 0

		for range 300 {
			var snap puzzle.BoardSnapshot
			fill := 0.5 + rng.Float64()*0.45
			for row := range puzzle.Rows {
				for col := range puzzle.Columns {
					if rng.Float64() < fill {
						snap.Grid[row][col] = puzzle.ColorGray
					}
				}
			}
			board := puzzle.NewBoard()
			board.Restore(snap)
			if board.Capacity() < 0.5 || !board.CanPlaceAnywhere(s.Catalog().BySize()[0]) {
				continue
			}
			checked++

			b := s.Rescue(board, 3)
			require.Len(t, b.Shapes, 3)
			assert.True(t, b.Guaranteed)
			assert.False(t, puzzle.IsTerminal(b.Shapes, board), "board:\n%s", board)
		}
		assert.Greater(t, checked, 100)
	})

	t.Run("falls back to the smallest placeable shapes", func(t *testing.T) {
		s := supply.New(supply.WithSeed(1))
		board := twoSingles()

		b := s.Rescue(board, 3)
		assert.True(t, b.Guaranteed)
		assert.Contains(t, ids(b.Shapes), puzzle.ShapeSingle)
	})

	t.Run("degenerate board", func(t *testing.T) {
		log, logs := observed(zap.WarnLevel)
		s := supply.New(supply.WithSeed(1), supply.WithLogger(log))

		b := s.Rescue(fullBoard(), 3)
		assert.False(t, b.Guaranteed)
		assert.Equal(t, ids(s.Catalog().Smallest(3)), ids(b.Shapes))

		entries := logs.FilterMessage("supply guarantee degraded").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, supply.StrategyRescue, fields["strategy"])
		assert.Equal(t, int64(0), fields["placeable"])
		assert.Equal(t, int64(1), fields["wanted"])
	})
}

func TestPostRevive(t *testing.T) {
	t.Run("every shape placeable", func(t *testing.T) {
		log, logs := observed(zap.WarnLevel)
		s := supply.New(supply.WithSeed(1), supply.WithLogger(log))
		board := squareHole()

		b := s.PostRevive(board, 3)
		require.Len(t, b.Shapes, 3)
		assert.True(t, b.Guaranteed)
		for _, sh := range b.Shapes {
			assert.True(t, board.CanPlaceAnywhere(sh), sh.Name)
		}
		assert.Equal(t, []puzzle.ShapeID{puzzle.ShapeSingle, puzzle.ShapeDominoH, puzzle.ShapeDominoV}, ids(b.Shapes))
		assert.Zero(t, logs.Len())
	})

	t.Run("tops up from placeable shapes outside the priority tiers", func(t *testing.T) {
		s := supply.New(supply.WithSeed(1))
		board := boardFrom(
			"........",
			"########",
			"########",
			"########",
			"########",
			"########",
			"########",
			"########",
		)

		b := s.PostRevive(board, 5)
		require.Len(t, b.Shapes, 5)
		assert.True(t, b.Guaranteed)
		for _, sh := range b.Shapes {
			assert.True(t, board.CanPlaceAnywhere(sh), sh.Name)
		}
		assert.Contains(t, ids(b.Shapes), puzzle.ShapeLine5H, "valuable line is only reachable through the top-up")
	})

	t.Run("degraded when too few shapes fit", func(t *testing.T) {
		log, logs := observed(zap.WarnLevel)
		s := supply.New(supply.WithSeed(1), supply.WithLogger(log))

		b := s.PostRevive(twoSingles(), 3)
		assert.False(t, b.Guaranteed)
		assert.Equal(t, []puzzle.ShapeID{puzzle.ShapeSingle, puzzle.ShapeDominoH, puzzle.ShapeDominoV}, ids(b.Shapes))

		entries := logs.FilterMessage("supply guarantee degraded").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, supply.StrategyPostRevive, fields["strategy"])
		assert.Equal(t, int64(1), fields["placeable"])
		assert.Equal(t, int64(3), fields["wanted"])
	})
}

func TestReviveCandidates(t *testing.T) {
	s := supply.New()
	candidates := s.ReviveCandidates()

	require.NotEmpty(t, candidates)
	assert.Equal(t, puzzle.ShapeSingle, candidates[0].ID)
	assert.Contains(t, ids(candidates), puzzle.ShapePlus)
	assert.NotContains(t, ids(candidates), puzzle.ShapeSquare3, "premium but bulky")
	assert.NotContains(t, ids(candidates), puzzle.ShapeTUp, "versatile but only useful")

	seen := make(map[puzzle.ShapeID]bool)
	for i, c := range candidates {
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
		if i > 0 {
			assert.LessOrEqual(t, candidates[i-1].CellCount(), c.CellCount())
		}
	}

	for _, c := range candidates {
		if c.CellCount() == 4 {
			assert.Equal(t, puzzle.ShapeSquare2, c.ID, "versatile wins ties")
			break
		}
	}
}

func TestNextBatchOverrides(t *testing.T) {
	s := supply.New(supply.WithSeed(1), supply.WithMode(supply.WeightedRandom))
	empty := puzzle.NewBoard()
	crowded := squareHole()

	s.ArmPostRevive(2)
	assert.Equal(t, 2, s.PostReviveRemaining())

	assert.Equal(t, supply.StrategyPostRevive, s.Next(crowded).Strategy)
	assert.Equal(t, supply.StrategyPostRevive, s.Next(empty).Strategy, "post-revive wins even on an empty board")
	assert.Zero(t, s.PostReviveRemaining())

	assert.Equal(t, supply.StrategyRescue, s.Next(crowded).Strategy)
	assert.Equal(t, supply.StrategyWeightedRandom, s.Next(empty).Strategy)
	assert.Equal(t, supply.StrategyCategoryBalanced, s.NextBatch(empty, supply.CategoryBalanced).Strategy)

	stats := s.Stats()
	assert.Equal(t, int64(5), stats.TotalBatches)
	assert.Zero(t, stats.TotalDegraded)
	revive, ok := stats.Strategy(supply.StrategyPostRevive)
	require.True(t, ok)
	assert.Equal(t, int64(2), revive.ExecutionCount)
	assert.LessOrEqual(t, revive.MinDuration, revive.MaxDuration)

	s.ResetStats()
	assert.Zero(t, s.Stats().StrategyCount)
}

func TestStatsMerge(t *testing.T) {
	a := supply.Stats{Strategies: []supply.StrategyStats{
		{Name: supply.StrategyRescue, ExecutionCount: 2, DegradedCount: 1, MinDuration: 2 * time.Microsecond, MaxDuration: 5 * time.Microsecond, TotalDuration: 7 * time.Microsecond},
	}}
	b := supply.Stats{Strategies: []supply.StrategyStats{
		{Name: supply.StrategyWeightedRandom, ExecutionCount: 1, MinDuration: time.Microsecond, MaxDuration: time.Microsecond, TotalDuration: time.Microsecond},
		{Name: supply.StrategyRescue, ExecutionCount: 1, MinDuration: time.Microsecond, MaxDuration: 2 * time.Microsecond, TotalDuration: 2 * time.Microsecond},
	}}

	m := a.Merge(b)
	assert.Equal(t, 2, m.StrategyCount)
	assert.Equal(t, int64(4), m.TotalBatches)
	assert.Equal(t, int64(1), m.TotalDegraded)

	rescue, ok := m.Strategy(supply.StrategyRescue)
	require.True(t, ok)
	assert.Equal(t, int64(3), rescue.ExecutionCount)
	assert.Equal(t, time.Microsecond, rescue.MinDuration)
	assert.Equal(t, 5*time.Microsecond, rescue.MaxDuration)
	assert.Equal(t, 3*time.Microsecond, rescue.AvgDuration)
	assert.Equal(t, supply.StrategyWeightedRandom, m.Strategies[1].Name)

	assert.Equal(t, int64(2), a.Strategies[0].ExecutionCount, "receiver untouched")
	assert.Equal(t, m, supply.Stats{}.Merge(m).Merge(supply.Stats{}))
}

func TestArmPostReviveNegative(t *testing.T) {
	s := supply.New()
	s.ArmPostRevive(-3)
	assert.Zero(t, s.PostReviveRemaining())
}

func TestAdaptive(t *testing.T) {
	t.Run("comfortable", func(t *testing.T) {
		s := supply.New(supply.WithSeed(2))
		b := s.Adaptive(puzzle.NewBoard(), 3)
		assert.Equal(t, supply.StrategyAdaptiveBalanced, b.Strategy)
		assert.Equal(t, "comfortable", b.Detail)
	})

	t.Run("challenging defers to hybrid", func(t *testing.T) {
		s := supply.New(supply.WithSeed(2))
		b := s.Adaptive(boardFrom("########", "########", "########", "########", "######.."), 3)
		assert.Equal(t, "challenging/balanced", b.Detail)
	})

	t.Run("critical always offers a minimal shape", func(t *testing.T) {
		s := supply.New(supply.WithSeed(2))
		board := boardFrom("########", "########", "########", "########", "########", "########", "####....")
		for range 100 {
			b := s.Adaptive(board, 3)
			assert.Equal(t, "critical", b.Detail)
			assert.Contains(t, ids(b.Shapes), puzzle.ShapeSingle)
		}
	})

	t.Run("critical minimal shape must fit", func(t *testing.T) {
		s := supply.New()
		board := boardFrom(
			"#.######",
			"########",
			"########",
			"########",
			"########",
			"########",
			"########",
			"########",
		)
		assert.Equal(t, puzzle.ShapeSingle, s.MinimalShape(board).ID)
		assert.Equal(t, puzzle.ShapeSingle, s.MinimalShape(fullBoard()).ID, "smallest overall when nothing fits")
	})
}

func TestHybridPresets(t *testing.T) {
	s := supply.New()
	assert.Equal(t, supply.PresetBalanced, s.ChoosePreset(supply.HybridScores{Clearing: 1, Fragmentation: 1, Strategic: 1}),
		"stock cutoffs sit above what clamped scores can reach")

	p := supply.DefaultParams()
	p.Hybrid.ClearingCutoff = 0.25
	p.Hybrid.FragmentationCut = 0.15
	p.Hybrid.StrategicCutoff = 0.1
	tuned := supply.New(supply.WithParams(p))

	tests := []struct {
		scores supply.HybridScores
		want   supply.Preset
	}{
		{supply.HybridScores{Clearing: 0.6}, supply.PresetClearing},
		{supply.HybridScores{Clearing: 0.6, Fragmentation: 1}, supply.PresetClearing},
		{supply.HybridScores{Clearing: 0.4, Fragmentation: 0.6}, supply.PresetFragmentation},
		{supply.HybridScores{Strategic: 0.6}, supply.PresetStrategic},
		{supply.HybridScores{Strategic: 0.4}, supply.PresetBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tuned.ChoosePreset(tt.scores))
		})
	}
}

func TestPresetWeightsNormalised(t *testing.T) {
	for _, p := range []supply.Preset{supply.PresetBalanced, supply.PresetClearing, supply.PresetFragmentation, supply.PresetStrategic} {
		total := 0.0
		for _, w := range p.Weights() {
			total += w
		}
		assert.InDelta(t, 1.0, total, 1e-9, p.String())
	}
	assert.Zero(t, supply.PresetFragmentation.Weights()[puzzle.UtilityBulky])
}

func TestHybridScores(t *testing.T) {
	s := supply.New()

	empty := s.Scores(puzzle.NewBoard())
	assert.Zero(t, empty.Clearing)
	assert.Zero(t, empty.Fragmentation)
	assert.InDelta(t, 1.0, empty.Strategic, 1e-9, "sixteen open lines saturate the strategic score")

	holes := s.Scores(twoSingles())
	// four single-gap lines doubled, four near lines and two crossings
	assert.InDelta(t, 14.0/20, holes.Clearing, 1e-9)
	assert.InDelta(t, (20.0+50)/100, holes.Fragmentation, 1e-9)
	assert.Zero(t, holes.Strategic)
}

func TestHybridUsesChosenPreset(t *testing.T) {
	p := supply.DefaultParams()
	p.Hybrid.ClearingCutoff = 0
	log, logs := observed(zap.DebugLevel)
	s := supply.New(supply.WithSeed(4), supply.WithParams(p), supply.WithLogger(log))

	b := s.Hybrid(boardFrom("#######.", "#######."), 3)
	assert.Equal(t, supply.StrategyStrategicWeighted, b.Strategy)
	assert.Equal(t, "clearing", b.Detail)
	assert.Len(t, b.Shapes, 3)
	assert.Equal(t, 1, logs.FilterMessage("hybrid preset").Len())
}

func TestParseMode(t *testing.T) {
	for _, m := range supply.Modes {
		parsed, err := supply.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := supply.ParseMode("chaos")
	assert.Error(t, err)

	var m supply.Mode
	require.NoError(t, m.UnmarshalText([]byte("strategicWeighted")))
	assert.Equal(t, supply.StrategicWeighted, m)
}

func BenchmarkNextBatch(b *testing.B) {
	board := boardFrom("########", "########", "########", "##...###", "#.....##")
	s := supply.New(supply.WithSeed(1), supply.WithMode(supply.StrategicWeighted))

	for b.Loop() {
		s.Next(board)
	}
}
