package ecs

import (
	"time"

	"github.com/milk9111/orbitdash/ecs/component"
)

// Time is the frame clock shared by every system.
type Time struct {
	Delta   time.Duration
	Elapsed time.Duration
	Frame   uint64
}

// DeltaSeconds returns the last frame's delta in seconds.
func (t Time) DeltaSeconds() float64 {
	return t.Delta.Seconds()
}

// World owns entities, component stores, frame mailboxes and the clock.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	mailboxes map[component.ComponentID]mailbox
	clock     Time
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		mailboxes: make(map[component.ComponentID]mailbox),
	}
}

// Advance moves the clock forward by dt. Called once per frame before the
// scheduler runs.
func (w *World) Advance(dt time.Duration) {
	if w == nil {
		return
	}
	w.clock.Delta = dt
	w.clock.Elapsed += dt
	w.clock.Frame++
}

// Time returns the current frame clock.
func (w *World) Time() Time {
	if w == nil {
		return Time{}
	}
	return w.clock
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	s, ok := w.stores[id]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// DestroyRecursive destroys e and every entity attached to it, depth first.
func DestroyRecursive(w *World, e Entity) bool {
	if w == nil || !IsAlive(w, e) {
		return false
	}
	var children []Entity
	ForEach(w, component.AttachmentComponent.Kind(), func(child Entity, a *component.Attachment) {
		if a.Parent == uint64(e) {
			children = append(children, child)
		}
	})
	for _, child := range children {
		DestroyRecursive(w, child)
	}
	return DestroyEntity(w, e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}
