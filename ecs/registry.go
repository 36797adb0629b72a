package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

const blockSize = 64

// ComponentRegistry records which types may be stored as components.
type ComponentRegistry struct {
	columns map[reflect.Type]func() column
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{columns: make(map[reflect.Type]func() column)}
}

// RegisterComponent makes T spawnable. Components are plain values: pointer,
// func and interface types panic. Wrap them in a struct instead.
func RegisterComponent[T any](r *ComponentRegistry) {
	typ := reflect.TypeFor[T]()
	switch typ.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Interface:
		panic("ecs: component " + typ.String() + " must be a value type")
	}
	r.columns[typ] = func() column { return &blockColumn[T]{} }
}

func (r *ComponentRegistry) newColumn(typ reflect.Type) column {
	factory, ok := r.columns[typ]
	if !ok {
		panic("ecs: component " + typ.String() + " not registered")
	}
	return factory()
}

// column holds one component type for every row of an archetype.
type column interface {
	set(row uint32, value any)
	at(row uint32) unsafe.Pointer
	reset(row uint32)
}

// blockColumn grows in fixed blocks so pointers returned by at stay valid
// while more entities are spawned.
type blockColumn[T any] struct {
	blocks []*[blockSize]T
}

func (c *blockColumn[T]) set(row uint32, value any) {
	for int(row/blockSize) >= len(c.blocks) {
		c.blocks = append(c.blocks, new([blockSize]T))
	}
	slot := &c.blocks[row/blockSize][row%blockSize]
	switch v := value.(type) {
	case T:
		*slot = v
	case *T:
		*slot = *v
	default:
		panic(fmt.Sprintf("ecs: %T stored in a %s column", value, reflect.TypeFor[T]()))
	}
}

func (c *blockColumn[T]) at(row uint32) unsafe.Pointer {
	return unsafe.Pointer(&c.blocks[row/blockSize][row%blockSize])
}

func (c *blockColumn[T]) reset(row uint32) {
	var zero T
	c.blocks[row/blockSize][row%blockSize] = zero
}
