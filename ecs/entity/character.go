package entity

import (
	"fmt"

	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
)

func NewCharacter(w *ecs.World) (ecs.Entity, error) {
	e, err := BuildEntity(w, "character.yaml")
	if err != nil {
		return 0, fmt.Errorf("character: %w", err)
	}
	if !ecs.Has(w, e, component.CharacterComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("character: prefab has no character component")
	}
	return e, nil
}
