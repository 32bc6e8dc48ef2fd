package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
)

// NewCamera spawns the main orbit camera and places it on its orbit, so the
// first frame already sees a consistent pose.
func NewCamera(w *ecs.World) (ecs.Entity, error) {
	e, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}

	cam, ok := ecs.Get(w, e, component.OrbitCameraComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: prefab has no orbit_camera component")
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: prefab has no transform component")
	}
	transform.Position = cam.Focus.Add(transform.Rotation.Rotate(mgl64.Vec3{0, 0, cam.Radius}))

	return e, nil
}
