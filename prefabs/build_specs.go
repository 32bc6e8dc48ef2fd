package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Position Vec3Spec `yaml:"position"`
	// LookAt orients the entity toward a world point.
	LookAt *Vec3Spec `yaml:"look_at"`
	// YawDegrees turns the entity about world up; ignored with LookAt.
	YawDegrees float64 `yaml:"yaw_degrees"`
}

type CharacterComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	DashSpeed float64 `yaml:"dash_speed"`
	JumpPower float64 `yaml:"jump_power"`
	TurnRate  float64 `yaml:"turn_rate"`
}

type OrbitCameraComponentSpec struct {
	Focus            Vec3Spec `yaml:"focus"`
	Radius           *float64 `yaml:"radius"`
	MinRadius        float64  `yaml:"min_radius"`
	MaxRadius        float64  `yaml:"max_radius"`
	ZoomEnabled      *bool    `yaml:"zoom_enabled"`
	CursorLockKey    string   `yaml:"cursor_lock_key"`
	TouchSensitivity float64  `yaml:"touch_sensitivity"`
	ZoomSensitivity  float64  `yaml:"zoom_sensitivity"`
}

type RigidBodyComponentSpec struct {
	Type         string  `yaml:"type"`
	Mass         float64 `yaml:"mass"`
	LockRotation bool    `yaml:"lock_rotation"`
}

type ColliderComponentSpec struct {
	HalfExtents Vec3Spec `yaml:"half_extents"`
}

type DampingComponentSpec struct {
	Linear  float64 `yaml:"linear"`
	Angular float64 `yaml:"angular"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type LifetimeComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
}
