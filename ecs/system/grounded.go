package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
)

// IsGrounded casts e's collider straight down by half its height, ignoring e
// itself. Any hit within that distance means e is standing on something.
//
// Debris is deliberately masked out as well, unlike a probe that excludes only
// the character's own body: loose debris under the feet never counts as
// ground, so it cannot enable a jump.
func IsGrounded(w *ecs.World, caster ShapeCaster, e ecs.Entity) bool {
	if w == nil || caster == nil {
		return false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return false
	}

	_, hit := caster.CastShape(ShapeCast{
		Origin:      t.Position,
		HalfExtents: col.HalfExtents,
		Direction:   mgl64.Vec3{0, -1, 0},
		MaxDistance: col.HalfExtents.Y(),
		Exclude:     e,
		Mask:        CategoryStatic | CategoryCharacter,
	})
	return hit
}
