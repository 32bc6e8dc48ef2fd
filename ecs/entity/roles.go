package entity

import (
	"errors"

	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
)

var (
	ErrMissingCamera    = errors.New("entity: no main camera")
	ErrMissingCharacter = errors.New("entity: no character")
)

// MainCamera returns the camera that drives camera-relative movement.
func MainCamera(w *ecs.World) (ecs.Entity, error) {
	e, ok := ecs.First(w, component.MainCameraTagComponent.Kind())
	if !ok || !ecs.Has(w, e, component.TransformComponent.Kind()) {
		return 0, ErrMissingCamera
	}
	return e, nil
}

// Character returns the single player-controlled character.
func Character(w *ecs.World) (ecs.Entity, error) {
	e, ok := ecs.First(w, component.CharacterTagComponent.Kind())
	if !ok || !ecs.Has(w, e, component.CharacterComponent.Kind()) {
		return 0, ErrMissingCharacter
	}
	return e, nil
}
