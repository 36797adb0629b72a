package ecs

import (
	"reflect"
	"time"
)

// System is run by the Scheduler once per frame.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees during one Scheduler.Once.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

// SystemStats describes how long a system has taken so far.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
}

type registered struct {
	system  System
	queries []interface{ Execute() }
	stats   SystemStats
	total   time.Duration
}

// Scheduler runs systems in registration order against one Storage.
type Scheduler struct {
	storage  *Storage
	commands Commands
	systems  []*registered
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends system. Exported Query and Singleton fields of a struct
// system are bound to the scheduler's storage.
func (s *Scheduler) Register(system System) {
	r := &registered{system: system}

	rv := reflect.ValueOf(system)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	r.stats.Name = rv.Type().Name()

	if rv.Kind() == reflect.Struct {
		for i := range rv.NumField() {
			field := rv.Field(i)
			if !field.CanAddr() || !field.CanInterface() {
				continue
			}
			target := field.Addr().Interface()
			binder, ok := target.(interface{ Init(*Storage) })
			if !ok {
				continue
			}
			binder.Init(s.storage)
			if q, ok := target.(interface{ Execute() }); ok {
				r.queries = append(r.queries, q)
			}
		}
	}

	s.systems = append(s.systems, r)
}

// Once runs every system with dt seconds, then flushes the commands they
// queued.
func (s *Scheduler) Once(dt float64) {
	for _, r := range s.systems {
		for _, q := range r.queries {
			q.Execute()
		}
	}

	frame := &UpdateFrame{DeltaTime: dt, Commands: &s.commands, Storage: s.storage}
	for _, r := range s.systems {
		start := time.Now()
		r.system.Execute(frame)
		r.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

func (r *registered) record(d time.Duration) {
	st := &r.stats
	if st.ExecutionCount == 0 || d < st.MinDuration {
		st.MinDuration = d
	}
	st.MaxDuration = max(st.MaxDuration, d)
	st.ExecutionCount++
	st.LastDuration = d
	r.total += d
	st.AvgDuration = r.total / time.Duration(st.ExecutionCount)
}

// Stats returns per-system timings in registration order.
func (s *Scheduler) Stats() []SystemStats {
	out := make([]SystemStats, len(s.systems))
	for i, r := range s.systems {
		out[i] = r.stats
	}
	return out
}
