package system

import (
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
)

// LifetimeSystem expires entities carrying a Lifetime. A lifetime starts on
// the frame it is first seen, so an entity lives at least its full duration.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	now := w.Time().Elapsed
	ecs.ForEach(w, component.LifetimeComponent.Kind(), func(e ecs.Entity, l *component.Lifetime) {
		if !l.Armed {
			l.Armed = true
			l.Deadline = now + l.Duration
			return
		}
		if now < l.Deadline {
			return
		}
		ecs.DestroyRecursive(w, e)
	})
}
