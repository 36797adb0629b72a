package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tenten/ecs"
)

func TestSpawnAndGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Tile{Row: 2, Col: 3}, Label{Text: "a"}, Points(7))
	require.True(t, storage.Exists(id))

	assert.Equal(t, &Tile{Row: 2, Col: 3}, ecs.Get[Tile](storage, id))
	assert.Equal(t, Points(7), *ecs.Get[Points](storage, id))
	assert.Nil(t, ecs.Get[Fade](storage, id))

	label := storage.GetComponent(id, reflect.TypeFor[Label]())
	require.IsType(t, &Label{}, label)
	label.(*Label).Text = "b"
	assert.Equal(t, "b", ecs.Get[Label](storage, id).Text, "GetComponent returns the stored value")
}

func TestSpawnOrderDoesNotMatter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Tile{}, Label{})
	b := storage.Spawn(Label{}, Tile{})
	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a, b)
	assert.Equal(t, 1, storage.CollectStats().ArchetypeCount)
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn(Tile{}, Tile{}) }, "duplicate component")
	assert.Panics(t, func() { storage.Spawn(struct{ X int }{}) }, "unregistered component")
	assert.Panics(t, func() { storage.Spawn(nil) })
	assert.Panics(t, func() { ecs.RegisterComponent[*Tile](ecs.NewComponentRegistry()) })
	assert.Panics(t, func() { ecs.RegisterComponent[func()](ecs.NewComponentRegistry()) })
}

func TestDeleteReusesRows(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Tile{Row: 1})
	second := storage.Spawn(Tile{Row: 2})

	assert.True(t, storage.Delete(first))
	assert.False(t, storage.Delete(first), "already gone")
	assert.False(t, storage.Exists(first))
	assert.Nil(t, ecs.Get[Tile](storage, first))
	assert.False(t, storage.Delete(ecs.EntityId(99<<32)), "unknown archetype")

	third := storage.Spawn(Tile{Row: 3})
	assert.Equal(t, first, third, "freed row is taken first")
	assert.Equal(t, 3, ecs.Get[Tile](storage, third).Row)
	assert.Equal(t, 2, ecs.Get[Tile](storage, second).Row)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Points(1))
	p := ecs.Get[Points](storage, id)
	for i := range 500 {
		storage.Spawn(Points(i))
	}
	*p = 42
	assert.Equal(t, Points(42), *ecs.Get[Points](storage, id))
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var label *Label
	assert.False(t, storage.ReadSingleton(&label))

	storage.AddSingleton(Label{Text: "first"})
	require.True(t, storage.ReadSingleton(&label))
	assert.Equal(t, "first", label.Text)

	storage.AddSingleton(&Label{Text: "second"})
	assert.Equal(t, "second", label.Text, "re-adding overwrites in place")

	assert.Panics(t, func() { storage.ReadSingleton(label) })
	assert.Panics(t, func() { storage.AddSingleton(nil) })
}

func TestSingletonAccessor(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var missing ecs.Singleton[Fade]
	missing.Init(storage)
	assert.False(t, missing.Exists())
	assert.Nil(t, missing.Get())

	fade := ecs.NewSingleton(storage, Fade{Remaining: 1})
	assert.True(t, missing.Exists(), "found once added")
	missing.Get().Remaining = 0.5
	assert.InDelta(t, 0.5, fade.Get().Remaining, 1e-9)

	again := ecs.NewSingleton(storage, Fade{Remaining: 9})
	assert.InDelta(t, 0.5, again.Get().Remaining, 1e-9, "existing value wins over the initializer")
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Tile{})
	storage.Spawn(Tile{})
	gone := storage.Spawn(Tile{}, Fade{})
	storage.Delete(gone)
	storage.AddSingleton(Points(3))
	storage.AddSingleton(Label{})

	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 2, stats.EntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []ecs.ArchetypeStats{
		{Components: []string{"ecs_test.Tile"}, Entities: 2},
		{Components: []string{"ecs_test.Fade", "ecs_test.Tile"}, Entities: 0},
	}, stats.Archetypes)
	assert.Equal(t, []string{"ecs_test.Label", "ecs_test.Points"}, stats.Singletons)
}

func TestEntityId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Label{})
	id := storage.Spawn(Tile{})
	storage.Spawn(Tile{})
	id2 := storage.Spawn(Tile{})

	assert.Equal(t, uint32(1), id.ArchetypeId())
	assert.Equal(t, uint32(0), id.Index())
	assert.Equal(t, uint32(2), id2.Index())
	assert.Equal(t, "1:2", id2.String())
}
