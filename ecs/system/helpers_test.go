package system

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"github.com/stretchr/testify/require"
)

const tick = time.Second / 60

// fakeCaster answers every cast with the same result and records the casts.
type fakeCaster struct {
	hit   bool
	casts []ShapeCast
}

func (f *fakeCaster) CastShape(cast ShapeCast) (ShapeHit, bool) {
	f.casts = append(f.casts, cast)
	if !f.hit {
		return ShapeHit{}, false
	}
	return ShapeHit{Entity: 99}, true
}

type testScene struct {
	w         *ecs.World
	input     ecs.Entity
	camera    ecs.Entity
	character ecs.Entity
}

// facingPlusZ turns local forward (-Z) onto world +Z.
var facingPlusZ = mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0})

func defaultControls() *component.Controls {
	return &component.Controls{
		Forward:       []component.Key{"W", "ArrowUp"},
		Back:          []component.Key{"S", "ArrowDown"},
		Left:          []component.Key{"A", "ArrowLeft"},
		Right:         []component.Key{"D", "ArrowRight"},
		Jump:          []component.Key{"Space"},
		Dash:          []component.Key{"ShiftLeft"},
		ToggleOverlay: []component.Key{"Tab"},
		ButtonTrigger: component.TriggerEdge,
	}
}

func newTestScene(t *testing.T) *testScene {
	t.Helper()
	w := ecs.NewWorld()
	s := &testScene{w: w}

	s.input = ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, s.input, component.ControlsComponent.Kind(), defaultControls()))
	require.NoError(t, ecs.Add(w, s.input, component.RawInputComponent.Kind(), &component.RawInput{
		Held:        map[component.Key]bool{},
		JustPressed: map[component.Key]bool{},
		Viewport:    mgl64.Vec2{1280, 720},
	}))
	require.NoError(t, ecs.Add(w, s.input, component.InputFrameComponent.Kind(), &component.InputFrame{}))

	s.camera = ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, s.camera, component.MainCameraTagComponent.Kind(), &component.MainCameraTag{}))
	require.NoError(t, ecs.Add(w, s.camera, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{0, 0, -10},
		Rotation: facingPlusZ,
	}))
	require.NoError(t, ecs.Add(w, s.camera, component.OrbitCameraComponent.Kind(), &component.OrbitCamera{
		Radius:           10,
		MinRadius:        4,
		MaxRadius:        16,
		OrbitEnabled:     true,
		ZoomEnabled:      true,
		CursorLockKey:    "Backquote",
		TouchSensitivity: 1,
		ZoomSensitivity:  1,
	}))

	s.character = ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, s.character, component.CharacterTagComponent.Kind(), &component.CharacterTag{}))
	require.NoError(t, ecs.Add(w, s.character, component.CharacterComponent.Kind(), &component.Character{
		MoveSpeed: 0.1,
		DashSpeed: 32,
		JumpPower: 32,
		TurnRate:  16,
	}))
	require.NoError(t, ecs.Add(w, s.character, component.TransformComponent.Kind(), &component.Transform{
		Rotation: facingPlusZ,
	}))
	require.NoError(t, ecs.Add(w, s.character, component.ColliderComponent.Kind(), &component.Collider{
		HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5},
	}))
	require.NoError(t, ecs.Add(w, s.character, component.KinematicControllerComponent.Kind(), &component.KinematicController{}))
	require.NoError(t, ecs.Add(w, s.character, component.ExternalImpulseComponent.Kind(), &component.ExternalImpulse{}))

	w.Advance(tick)
	return s
}

func (s *testScene) frame() *component.InputFrame {
	f, _ := ecs.Get(s.w, s.input, component.InputFrameComponent.Kind())
	return f
}

func (s *testScene) raw() *component.RawInput {
	r, _ := ecs.Get(s.w, s.input, component.RawInputComponent.Kind())
	return r
}

func (s *testScene) orbitCamera() *component.OrbitCamera {
	c, _ := ecs.Get(s.w, s.camera, component.OrbitCameraComponent.Kind())
	return c
}

func (s *testScene) transform(e ecs.Entity) *component.Transform {
	t, _ := ecs.Get(s.w, e, component.TransformComponent.Kind())
	return t
}

func (s *testScene) translation() mgl64.Vec3 {
	kc, _ := ecs.Get(s.w, s.character, component.KinematicControllerComponent.Kind())
	return kc.Translation
}

func (s *testScene) impulse() mgl64.Vec3 {
	imp, _ := ecs.Get(s.w, s.character, component.ExternalImpulseComponent.Kind())
	return imp.Impulse
}

func assertVec3InDelta(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		require.InDeltaf(t, want[i], got[i], delta, "component %d: want %v got %v", i, want, got)
	}
}
