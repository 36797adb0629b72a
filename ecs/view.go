package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View reads entities through a struct of component pointers. Each field of
// T must be a pointer to a registered component. Embedded fields are
// required; a named field tagged `ecs:"optional"` is nil when the entity
// lacks that component.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: view type must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := range structType.NumField() {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: view field " + field.Name + " must be a pointer")
		}

		optional := false
		switch tag := field.Tag.Get("ecs"); {
		case tag == "":
		case tag == "optional" && !field.Anonymous:
			optional = true
		default:
			panic("ecs: invalid tag " + tag + " on view field " + field.Name)
		}
		fields = append(fields, viewField{typ: field.Type.Elem(), offset: field.Offset, optional: optional})
	}
	return &View[T]{storage: storage, fields: fields}
}

func (v *View[T]) matches(a *archetype) bool {
	for _, f := range v.fields {
		if !f.optional && a.column(f.typ) < 0 {
			return false
		}
	}
	return true
}

func (v *View[T]) fill(a *archetype, row uint32, out *T) {
	base := unsafe.Pointer(out)
	for _, f := range v.fields {
		slot := (*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if col := a.column(f.typ); col >= 0 {
			*slot = a.columns[col].at(row)
		} else {
			*slot = nil
		}
	}
}

// Fill points the fields of out at the entity's components. It returns false
// when the entity is gone or lacks a required component.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	a, ok := v.storage.lookup(id)
	if !ok || !v.matches(a) {
		return false
	}
	v.fill(a, id.Index(), out)
	return true
}

// Iter walks every matching entity straight from storage. Systems should
// prefer a Query, which caches the matching set once per frame.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, a := range v.storage.archetypes {
			if !v.matches(a) {
				continue
			}
			for row := range a.rows() {
				var item T
				v.fill(a, row, &item)
				if !yield(newEntityId(a.id, row), item) {
					return
				}
			}
		}
	}
}
