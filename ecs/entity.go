package ecs

import "fmt"

// EntityId identifies an entity by its archetype (high 32 bits) and its row
// within that archetype (low 32 bits). Rows are reused after Delete.
type EntityId uint64

func newEntityId(archetype, row uint32) EntityId {
	return EntityId(uint64(archetype)<<32 | uint64(row))
}

func (id EntityId) ArchetypeId() uint32 {
	return uint32(id >> 32)
}

func (id EntityId) Index() uint32 {
	return uint32(id)
}

func (id EntityId) String() string {
	return fmt.Sprintf("%d:%d", id.ArchetypeId(), id.Index())
}
