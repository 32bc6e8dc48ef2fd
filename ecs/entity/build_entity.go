package entity

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdash/common"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"github.com/milk9111/orbitdash/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"character_tag":        addCharacterTag,
	"main_camera_tag":      addMainCameraTag,
	"debris_tag":           addDebrisTag,
	"platform_tag":         addPlatformTag,
	"character":            addCharacter,
	"transform":            addTransform,
	"orbit_camera":         addOrbitCamera,
	"rigid_body":           addRigidBody,
	"collider":             addCollider,
	"damping":              addDamping,
	"gravity_scale":        addGravityScale,
	"velocity":             addVelocity,
	"kinematic_controller": addKinematicController,
	"external_impulse":     addExternalImpulse,
	"lifetime":             addLifetime,
}

// componentBuildOrder puts tags first so later builders can rely on them.
var componentBuildOrder = []string{
	"character_tag",
	"main_camera_tag",
	"debris_tag",
	"platform_tag",
	"character",
	"transform",
	"orbit_camera",
	"rigid_body",
	"collider",
	"damping",
	"gravity_scale",
	"velocity",
	"kinematic_controller",
	"external_impulse",
	"lifetime",
}

// Template is a decoded entity prefab that can be spawned repeatedly without
// re-reading it.
type Template struct {
	path string
	spec prefabs.EntityBuildSpec
}

// LoadTemplate reads and validates an entity prefab.
func LoadTemplate(prefabPath string) (*Template, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return nil, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return nil, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	var unknown []string
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("build entity: %q: no builder for components %s", prefabPath, strings.Join(unknown, ", "))
	}
	return &Template{path: prefabPath, spec: spec}, nil
}

func (t *Template) Name() string {
	if t == nil {
		return ""
	}
	return t.spec.Name
}

// Has reports whether the template defines the named component.
func (t *Template) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.spec.Components[name]
	return ok
}

// Spawn creates one entity from the template. On error nothing is left in
// the world.
func (t *Template) Spawn(w *ecs.World) (ecs.Entity, error) {
	if t == nil {
		return 0, fmt.Errorf("build entity: template is nil")
	}
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: t.path}

	for _, name := range componentBuildOrder {
		raw, ok := t.spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", t.path, name, err)
		}
	}

	return e, nil
}

// BuildEntity loads a prefab and spawns it once.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	t, err := LoadTemplate(prefabPath)
	if err != nil {
		return 0, err
	}
	return t.Spawn(w)
}

func addCharacterTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CharacterTagComponent.Kind(), &component.CharacterTag{})
}

func addMainCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MainCameraTagComponent.Kind(), &component.MainCameraTag{})
}

func addDebrisTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.DebrisTagComponent.Kind(), &component.DebrisTag{})
}

func addPlatformTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlatformTagComponent.Kind(), &component.PlatformTag{})
}

func addCharacter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CharacterComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character spec: %w", err)
	}
	if spec.MoveSpeed < 0 || spec.DashSpeed < 0 || spec.JumpPower < 0 || spec.TurnRate < 0 {
		return fmt.Errorf("character tunables must not be negative")
	}
	return ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{
		MoveSpeed: spec.MoveSpeed,
		DashSpeed: spec.DashSpeed,
		JumpPower: spec.JumpPower,
		TurnRate:  spec.TurnRate,
	})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}

	pos := spec.Position.Vec3()
	rot := mgl64.QuatRotate(mgl64.DegToRad(spec.YawDegrees), common.WorldUp)
	if spec.LookAt != nil {
		q, ok := common.LookRotation(spec.LookAt.Vec3().Sub(pos), common.WorldUp)
		if !ok {
			return fmt.Errorf("transform look_at must differ from position and not be straight up or down")
		}
		rot = q
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: pos,
		Rotation: rot,
	})
}

func addOrbitCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.OrbitCameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode orbit_camera spec: %w", err)
	}
	if spec.MinRadius <= 0 || spec.MaxRadius < spec.MinRadius {
		return fmt.Errorf("orbit_camera needs 0 < min_radius <= max_radius, got %v..%v", spec.MinRadius, spec.MaxRadius)
	}

	radius := (spec.MinRadius + spec.MaxRadius) / 2
	if spec.Radius != nil {
		radius = *spec.Radius
	}
	zoom := true
	if spec.ZoomEnabled != nil {
		zoom = *spec.ZoomEnabled
	}
	touch := spec.TouchSensitivity
	if touch == 0 {
		touch = 1
	}
	zoomSens := spec.ZoomSensitivity
	if zoomSens == 0 {
		zoomSens = 1
	}

	cam := &component.OrbitCamera{
		Focus:            spec.Focus.Vec3(),
		Radius:           radius,
		MinRadius:        spec.MinRadius,
		MaxRadius:        spec.MaxRadius,
		OrbitEnabled:     true,
		ZoomEnabled:      zoom,
		CursorLockKey:    component.Key(spec.CursorLockKey),
		TouchSensitivity: touch,
		ZoomSensitivity:  zoomSens,
	}
	cam.ClampRadius()
	return ecs.Add(w, e, component.OrbitCameraComponent.Kind(), cam)
}

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RigidBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid_body spec: %w", err)
	}

	var bodyType component.BodyType
	switch strings.ToLower(spec.Type) {
	case "", "dynamic":
		bodyType = component.BodyDynamic
	case "fixed", "static":
		bodyType = component.BodyFixed
	default:
		return fmt.Errorf("unknown rigid_body type %q", spec.Type)
	}
	mass := spec.Mass
	if mass == 0 {
		mass = 1
	}
	if mass < 0 {
		return fmt.Errorf("rigid_body mass must be positive, got %v", mass)
	}
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{
		Type:         bodyType,
		Mass:         mass,
		LockRotation: spec.LockRotation,
	})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	he := spec.HalfExtents.Vec3()
	if he.X() <= 0 || he.Y() <= 0 || he.Z() <= 0 {
		return fmt.Errorf("collider half_extents must be positive, got %v", he)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{HalfExtents: he})
}

func addDamping(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DampingComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode damping spec: %w", err)
	}
	return ecs.Add(w, e, component.DampingComponent.Kind(), &component.Damping{
		Linear:  math.Max(spec.Linear, 0),
		Angular: math.Max(spec.Angular, 0),
	})
}

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.GravityScaleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity_scale spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.Scale})
}

func addVelocity(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

func addKinematicController(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.KinematicControllerComponent.Kind(), &component.KinematicController{})
}

func addExternalImpulse(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ExternalImpulseComponent.Kind(), &component.ExternalImpulse{})
}

func addLifetime(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LifetimeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode lifetime spec: %w", err)
	}
	if spec.Seconds <= 0 {
		return fmt.Errorf("lifetime seconds must be positive, got %v", spec.Seconds)
	}
	return ecs.Add(w, e, component.LifetimeComponent.Kind(), &component.Lifetime{
		Duration: time.Duration(spec.Seconds * float64(time.Second)),
	})
}
