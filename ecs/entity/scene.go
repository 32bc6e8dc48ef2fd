package entity

import (
	"fmt"

	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/prefabs"
)

// Scene holds the entities and templates a freshly built world needs.
type Scene struct {
	Input     ecs.Entity
	Character ecs.Entity
	Camera    ecs.Entity
	Level     []ecs.Entity
	Debris    *Template
	Overlay   prefabs.OverlaySpec
}

// BuildScene fills an empty world from the prefabs and checks that the
// character and main camera exist.
func BuildScene(w *ecs.World) (*Scene, error) {
	if w == nil {
		return nil, fmt.Errorf("scene: world is nil")
	}

	controlsSpec, err := prefabs.LoadControlsSpec("controls.yaml")
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	scene := &Scene{Overlay: controlsSpec.Overlay}

	if scene.Input, err = NewInput(w, NewControls(controlsSpec)); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if scene.Level, err = NewLevel(w, "level.yaml"); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if _, err = NewCamera(w); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if _, err = NewCharacter(w); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if scene.Debris, err = LoadTemplate("debris.yaml"); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if !scene.Debris.Has("lifetime") {
		return nil, fmt.Errorf("scene: debris prefab must define a lifetime")
	}

	if scene.Camera, err = MainCamera(w); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if scene.Character, err = Character(w); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return scene, nil
}
