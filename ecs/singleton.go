package ecs

import "reflect"

// Singleton gives a system typed access to one value that belongs to no
// entity, such as the running game or the input state.
type Singleton[T any] struct {
	storage *Storage
	value   *T
}

// NewSingleton returns an accessor for T, storing initial (or the zero
// value) first when T is not in storage yet.
func NewSingleton[T any](storage *Storage, initial ...T) *Singleton[T] {
	if storage.singleton(reflect.TypeFor[T]()) == nil {
		var v T
		if len(initial) > 0 {
			v = initial[0]
		}
		storage.AddSingleton(&v)
	}
	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. The scheduler calls it on Register.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.value = nil
}

// Get returns the stored value, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.value == nil && s.storage != nil {
		s.value = (*T)(s.storage.singleton(reflect.TypeFor[T]()))
	}
	return s.value
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
