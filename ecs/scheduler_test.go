package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tenten/ecs"
)

// FadeSystem counts fades down and deletes the finished ones.
type FadeSystem struct {
	Fades ecs.Query[struct{ *Fade }]
	Total ecs.Singleton[Points]
	Runs  int
}

func (s *FadeSystem) Execute(frame *ecs.UpdateFrame) {
	s.Runs++
	for id, item := range s.Fades.Iter() {
		item.Remaining -= frame.DeltaTime
		if item.Remaining <= 0 {
			frame.Commands.Delete(id)
			frame.Commands.Defer(func() { *s.Total.Get() += 1 })
		}
	}
}

// TileCounter records how many tiles it saw each frame.
type TileCounter struct {
	Tiles ecs.Query[struct{ *Tile }]
	Seen  []int
	spawn bool
}

func (s *TileCounter) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Tiles.Len())
	if s.spawn {
		frame.Commands.Spawn(Tile{})
	}
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Points](storage)
	scheduler := ecs.NewScheduler(storage)

	fades := &FadeSystem{}
	scheduler.Register(fades)
	require.Same(t, storage, scheduler.Storage())

	storage.Spawn(Fade{Remaining: 0.5})
	storage.Spawn(Fade{Remaining: 1.5})

	scheduler.Once(1)
	assert.Equal(t, 1, fades.Runs)
	assert.Equal(t, Points(1), *fades.Total.Get(), "deferred after the delete")

	scheduler.Once(1)
	assert.Equal(t, Points(2), *fades.Total.Get())
	assert.Zero(t, storage.CollectStats().EntityCount)
}

func TestCommandsApplyAfterTheFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	counter := &TileCounter{spawn: true}
	scheduler.Register(counter)

	scheduler.Once(0)
	scheduler.Once(0)
	scheduler.Once(0)
	assert.Equal(t, []int{0, 1, 2}, counter.Seen)
}

func TestDeferQueuedDuringFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	var cmds ecs.Commands
	var order []string
	cmds.Defer(func() {
		order = append(order, "first")
		cmds.Defer(func() { order = append(order, "nested") })
	})
	cmds.Defer(func() { order = append(order, "second") })

	cmds.Flush(storage)
	assert.Equal(t, []string{"first", "second", "nested"}, order)

	cmds.Flush(storage)
	assert.Len(t, order, 3, "buffer is reset")
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Points](storage)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&FadeSystem{})
	scheduler.Register(&TileCounter{})

	for range 3 {
		scheduler.Once(0.016)
	}

	stats := scheduler.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, "FadeSystem", stats[0].Name)
	assert.Equal(t, "TileCounter", stats[1].Name)
	for _, s := range stats {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
	}
}
