package prefabs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Vec3Spec is a YAML vector, written either as {x, y, z} or as [x, y, z].
type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v *Vec3Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var xyz []float64
		if err := node.Decode(&xyz); err != nil {
			return err
		}
		if len(xyz) != 3 {
			return fmt.Errorf("prefabs: line %d: vector needs 3 components, got %d", node.Line, len(xyz))
		}
		v.X, v.Y, v.Z = xyz[0], xyz[1], xyz[2]
		return nil
	}
	type plain Vec3Spec
	return node.Decode((*plain)(v))
}

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// LevelSpec lists the fixed blocks of a level.
type LevelSpec struct {
	Name   string      `yaml:"name"`
	Blocks []BlockSpec `yaml:"blocks"`
}

type BlockSpec struct {
	Name        string   `yaml:"name"`
	Position    Vec3Spec `yaml:"position"`
	HalfExtents Vec3Spec `yaml:"half_extents"`
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return LevelSpec{}, err
	}
	for i, b := range spec.Blocks {
		if b.HalfExtents.X <= 0 || b.HalfExtents.Y <= 0 || b.HalfExtents.Z <= 0 {
			return LevelSpec{}, fmt.Errorf("prefabs: %s: block %d (%q): half extents must be positive", filename, i, b.Name)
		}
	}
	return spec, nil
}

// ControlsSpec is the key binding table plus on-screen overlay settings.
type ControlsSpec struct {
	Forward       []string    `yaml:"forward"`
	Back          []string    `yaml:"back"`
	Left          []string    `yaml:"left"`
	Right         []string    `yaml:"right"`
	Jump          []string    `yaml:"jump"`
	Dash          []string    `yaml:"dash"`
	ToggleOverlay []string    `yaml:"toggle_overlay"`
	Quit          []string    `yaml:"quit"`
	ButtonTrigger string      `yaml:"button_trigger"`
	Overlay       OverlaySpec `yaml:"overlay"`
}

// OverlaySpec configures the virtual joystick and buttons.
type OverlaySpec struct {
	Visible         bool    `yaml:"visible"`
	DeadZoneHidden  float64 `yaml:"dead_zone_hidden"`
	DeadZoneVisible float64 `yaml:"dead_zone_visible"`
	JoystickRadius  float64 `yaml:"joystick_radius"`
	GamepadDeadZone float64 `yaml:"gamepad_dead_zone"`
	ShowOnTouch     *bool   `yaml:"show_on_touch"`
}

func LoadControlsSpec(filename string) (ControlsSpec, error) {
	spec, err := LoadSpec[ControlsSpec](filename)
	if err != nil {
		return ControlsSpec{}, err
	}
	switch spec.ButtonTrigger {
	case "", "level", "edge":
	default:
		return ControlsSpec{}, fmt.Errorf("prefabs: %s: button_trigger must be level or edge, got %q", filename, spec.ButtonTrigger)
	}
	return spec, nil
}
