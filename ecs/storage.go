package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
	"strings"
	"unsafe"
)

// archetype stores every entity that has exactly the same component types.
// All columns share the row numbering.
type archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	alive   []bool
	free    []uint32
	count   int
}

func (a *archetype) column(typ reflect.Type) int {
	for i, t := range a.types {
		if t == typ {
			return i
		}
	}
	return -1
}

func (a *archetype) spawn(components []any) uint32 {
	var row uint32
	if n := len(a.free); n > 0 {
		row = a.free[n-1]
		a.free = a.free[:n-1]
		a.alive[row] = true
	} else {
		row = uint32(len(a.alive))
		a.alive = append(a.alive, true)
	}
	for _, c := range components {
		a.columns[a.column(componentType(c))].set(row, c)
	}
	a.count++
	return row
}

func (a *archetype) live(row uint32) bool {
	return int(row) < len(a.alive) && a.alive[row]
}

func (a *archetype) remove(row uint32) bool {
	if !a.live(row) {
		return false
	}
	for _, c := range a.columns {
		c.reset(row)
	}
	a.alive[row] = false
	a.free = append(a.free, row)
	a.count--
	return true
}

func (a *archetype) rows() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for row, ok := range a.alive {
			if ok && !yield(uint32(row)) {
				return
			}
		}
	}
}

func componentType(c any) reflect.Type {
	typ := reflect.TypeOf(c)
	if typ == nil {
		panic("ecs: nil component")
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

func typeKey(typ reflect.Type) string {
	return typ.PkgPath() + "." + typ.String()
}

// Storage owns all entities, their components and the singletons. It is not
// safe for concurrent use; systems touch it from the scheduler's goroutine.
type Storage struct {
	registry   *ComponentRegistry
	archetypes []*archetype
	signatures map[string]uint32
	singletons map[reflect.Type]reflect.Value
}

func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		signatures: make(map[string]uint32),
		singletons: make(map[reflect.Type]reflect.Value),
	}
}

// Spawn creates an entity from components given as values or pointers to
// values. Each component type may appear once.
func (s *Storage) Spawn(components ...any) EntityId {
	types := make([]reflect.Type, len(components))
	for i, c := range components {
		types[i] = componentType(c)
	}
	a := s.archetypeFor(types)
	return newEntityId(a.id, a.spawn(components))
}

func (s *Storage) archetypeFor(types []reflect.Type) *archetype {
	sorted := slices.Clone(types)
	slices.SortFunc(sorted, func(a, b reflect.Type) int {
		return cmp.Compare(typeKey(a), typeKey(b))
	})
	keys := make([]string, len(sorted))
	for i, t := range sorted {
		keys[i] = typeKey(t)
		if i > 0 && sorted[i-1] == t {
			panic("ecs: duplicate component " + t.String())
		}
	}
	signature := strings.Join(keys, ",")
	if id, ok := s.signatures[signature]; ok {
		return s.archetypes[id]
	}

	a := &archetype{
		id:      uint32(len(s.archetypes)),
		types:   sorted,
		columns: make([]column, len(sorted)),
	}
	for i, t := range sorted {
		a.columns[i] = s.registry.newColumn(t)
	}
	s.archetypes = append(s.archetypes, a)
	s.signatures[signature] = a.id
	return a
}

func (s *Storage) lookup(id EntityId) (*archetype, bool) {
	idx := id.ArchetypeId()
	if int(idx) >= len(s.archetypes) {
		return nil, false
	}
	a := s.archetypes[idx]
	return a, a.live(id.Index())
}

// Delete removes the entity. It reports false when the entity does not exist.
func (s *Storage) Delete(id EntityId) bool {
	a, ok := s.lookup(id)
	return ok && a.remove(id.Index())
}

// Exists reports whether id names a live entity.
func (s *Storage) Exists(id EntityId) bool {
	_, ok := s.lookup(id)
	return ok
}

// GetComponent returns a pointer to the entity's component of type typ, or
// nil when the entity is gone or lacks it.
func (s *Storage) GetComponent(id EntityId, typ reflect.Type) any {
	a, ok := s.lookup(id)
	if !ok {
		return nil
	}
	col := a.column(typ)
	if col < 0 {
		return nil
	}
	return reflect.NewAt(typ, a.columns[col].at(id.Index())).Interface()
}

// Get is the typed form of GetComponent.
func Get[T any](s *Storage, id EntityId) *T {
	a, ok := s.lookup(id)
	if !ok {
		return nil
	}
	col := a.column(reflect.TypeFor[T]())
	if col < 0 {
		return nil
	}
	return (*T)(a.columns[col].at(id.Index()))
}

// AddSingleton stores value, or the value it points to, as the one instance
// of its type. Adding a type again overwrites the stored value in place so
// pointers taken earlier stay valid.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		panic("ecs: nil singleton")
	}
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if ptr, ok := s.singletons[v.Type()]; ok {
		ptr.Elem().Set(v)
		return
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = ptr
}

func (s *Storage) singleton(typ reflect.Type) unsafe.Pointer {
	ptr, ok := s.singletons[typ]
	if !ok {
		return nil
	}
	return ptr.UnsafePointer()
}

// ReadSingleton sets *target to the stored singleton. target must be a **T.
// It reports whether a singleton of type T exists.
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Pointer || tv.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton needs a pointer to a pointer")
	}
	ptr, ok := s.singletons[tv.Elem().Type().Elem()]
	if !ok {
		return false
	}
	tv.Elem().Set(ptr)
	return true
}

// StorageStats summarizes what a Storage holds.
type StorageStats struct {
	ArchetypeCount int
	EntityCount    int
	SingletonCount int
	Archetypes     []ArchetypeStats
	Singletons     []string
}

type ArchetypeStats struct {
	Components []string
	Entities   int
}

// CollectStats walks the storage. Archetypes are listed in creation order
// and singletons by type name.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}
	for _, a := range s.archetypes {
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		stats.EntityCount += a.count
		stats.Archetypes = append(stats.Archetypes, ArchetypeStats{Components: names, Entities: a.count})
	}
	for t := range s.singletons {
		stats.Singletons = append(stats.Singletons, t.String())
	}
	slices.Sort(stats.Singletons)
	return stats
}
