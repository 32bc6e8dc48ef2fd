package entity

import (
	"fmt"

	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"github.com/milk9111/orbitdash/prefabs"
)

// NewControls converts a controls prefab into bindings.
func NewControls(spec prefabs.ControlsSpec) *component.Controls {
	trigger := component.TriggerEdge
	if spec.ButtonTrigger == string(component.TriggerLevel) {
		trigger = component.TriggerLevel
	}
	return &component.Controls{
		Forward:       keys(spec.Forward),
		Back:          keys(spec.Back),
		Left:          keys(spec.Left),
		Right:         keys(spec.Right),
		Jump:          keys(spec.Jump),
		Dash:          keys(spec.Dash),
		ToggleOverlay: keys(spec.ToggleOverlay),
		Quit:          keys(spec.Quit),
		ButtonTrigger: trigger,
	}
}

func keys(names []string) []component.Key {
	out := make([]component.Key, 0, len(names))
	for _, n := range names {
		out = append(out, component.Key(n))
	}
	return out
}

// NewInput spawns the input singleton: bindings, the raw device snapshot and
// the aggregated frame.
func NewInput(w *ecs.World, controls *component.Controls) (ecs.Entity, error) {
	if controls == nil {
		return 0, fmt.Errorf("input: controls are nil")
	}
	e := ecs.CreateEntity(w)
	err := addAll(
		func() error { return ecs.Add(w, e, component.ControlsComponent.Kind(), controls) },
		func() error { return ecs.Add(w, e, component.RawInputComponent.Kind(), &component.RawInput{}) },
		func() error { return ecs.Add(w, e, component.InputFrameComponent.Kind(), &component.InputFrame{}) },
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("input: %w", err)
	}
	return e, nil
}
