package ecs

import "iter"

// Query is a View whose results are collected once per frame by Execute.
// The scheduler executes every registered query before the first system
// runs, so systems see the entities as they were at the start of the frame.
type Query[T any] struct {
	view       *View[T]
	archetypes int
	matched    []*archetype
	ids        []EntityId
	items      []T
	ready      bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. The scheduler calls it on Register.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.archetypes = 0
	q.matched = nil
	q.ready = false
}

// Execute refreshes the cached results.
func (q *Query[T]) Execute() {
	// archetypes are only ever appended, so only the new ones need matching
	all := q.view.storage.archetypes
	for _, a := range all[q.archetypes:] {
		if q.view.matches(a) {
			q.matched = append(q.matched, a)
		}
	}
	q.archetypes = len(all)

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, a := range q.matched {
		for row := range a.rows() {
			var item T
			q.view.fill(a, row, &item)
			q.ids = append(q.ids, newEntityId(a.id, row))
			q.items = append(q.items, item)
		}
	}
	q.ready = true
}

// Len returns the number of results from the last Execute.
func (q *Query[T]) Len() int {
	return len(q.items)
}

// Iter yields the results of the last Execute. It panics if Execute has
// never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.ready {
		panic("ecs: Query.Iter called before Execute")
	}
	return func(yield func(EntityId, T) bool) {
		for i, id := range q.ids {
			if !yield(id, q.items[i]) {
				return
			}
		}
	}
}

// Values is Iter without the entity ids.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.ready {
		panic("ecs: Query.Values called before Execute")
	}
	return func(yield func(T) bool) {
		for _, item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}
