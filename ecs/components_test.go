package ecs_test

import "github.com/plus3/tenten/ecs"

type Tile struct {
	Row, Col int
}

type Fade struct {
	Remaining float64
}

type Label struct {
	Text string
}

type Points int32

func newTestRegistry() *ecs.ComponentRegistry {
	r := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Tile](r)
	ecs.RegisterComponent[Fade](r)
	ecs.RegisterComponent[Label](r)
	ecs.RegisterComponent[Points](r)
	return r
}
