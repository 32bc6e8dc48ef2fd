package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"github.com/milk9111/orbitdash/prefabs"
)

// NewLevel spawns one fixed box per block of the level prefab.
func NewLevel(w *ecs.World, prefabPath string) ([]ecs.Entity, error) {
	spec, err := prefabs.LoadLevelSpec(prefabPath)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}

	blocks := make([]ecs.Entity, 0, len(spec.Blocks))
	for _, b := range spec.Blocks {
		e, err := newBlock(w, b)
		if err != nil {
			for _, spawned := range blocks {
				ecs.DestroyEntity(w, spawned)
			}
			return nil, fmt.Errorf("level: block %q: %w", b.Name, err)
		}
		blocks = append(blocks, e)
	}
	return blocks, nil
}

func newBlock(w *ecs.World, b prefabs.BlockSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	err := addAll(
		func() error {
			return ecs.Add(w, e, component.PlatformTagComponent.Kind(), &component.PlatformTag{})
		},
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
				Position: b.Position.Vec3(),
				Rotation: mgl64.QuatIdent(),
			})
		},
		func() error {
			return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Type: component.BodyFixed})
		},
		func() error {
			return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{HalfExtents: b.HalfExtents.Vec3()})
		},
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func addAll(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
