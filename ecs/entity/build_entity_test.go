package entity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"github.com/milk9111/orbitdash/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overridePrefab(t *testing.T, name, body string) {
	t.Helper()
	dir := t.TempDir()
	prev := prefabs.DiskDir()
	prefabs.SetDiskDir(dir)
	t.Cleanup(func() { prefabs.SetDiskDir(prev) })
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestBuildScene(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := BuildScene(w)
	require.NoError(t, err)

	character, ok := ecs.Get(w, scene.Character, component.CharacterComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Character{MoveSpeed: 0.1, DashSpeed: 32, JumpPower: 32, TurnRate: 16}, *character)
	assert.True(t, ecs.Has(w, scene.Character, component.KinematicControllerComponent.Kind()))
	assert.True(t, ecs.Has(w, scene.Character, component.ExternalImpulseComponent.Kind()))

	cam, ok := ecs.Get(w, scene.Camera, component.OrbitCameraComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 4.0, cam.MinRadius)
	assert.Equal(t, 16.0, cam.MaxRadius)
	assert.Equal(t, 10.0, cam.Radius, "radius defaults to the midpoint")
	assert.Equal(t, component.Key("Backquote"), cam.CursorLockKey)

	camTransform, ok := ecs.Get(w, scene.Camera, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, cam.Radius, camTransform.Position.Sub(cam.Focus).Len(), 1e-9)
	assert.Greater(t, camTransform.Up().Y(), 0.0)

	assert.Len(t, scene.Level, 4)
	controls, ok := ecs.Get(w, scene.Input, component.ControlsComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.TriggerEdge, controls.ButtonTrigger)

	require.NotNil(t, scene.Debris)
	assert.Equal(t, "debris", scene.Debris.Name())
}

func TestTemplateSpawn(t *testing.T) {
	tmpl, err := LoadTemplate("debris.yaml")
	require.NoError(t, err)

	w := ecs.NewWorld()
	a, err := tmpl.Spawn(w)
	require.NoError(t, err)
	b, err := tmpl.Spawn(w)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	l, ok := ecs.Get(w, a, component.LifetimeComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, time.Second, l.Duration)
	assert.False(t, l.Armed)

	col, ok := ecs.Get(w, a, component.ColliderComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0.05, 0.05, 0.05}, col.HalfExtents)
	assert.True(t, ecs.Has(w, a, component.DebrisTagComponent.Kind()))

	// each spawn owns its components
	tb, _ := ecs.Get(w, b, component.TransformComponent.Kind())
	tb.Position = mgl64.Vec3{1, 1, 1}
	ta, _ := ecs.Get(w, a, component.TransformComponent.Kind())
	assert.Equal(t, mgl64.Vec3{}, ta.Position)
}

func TestLoadTemplateRejectsUnknownComponents(t *testing.T) {
	overridePrefab(t, "weird.yaml", "name: weird\ncomponents:\n  transform: {}\n  jetpack: {}\n  sprite: {}\n")

	_, err := LoadTemplate("weird.yaml")
	assert.ErrorContains(t, err, "no builder for components jetpack, sprite")
}

func TestSpawnFailureLeavesNothing(t *testing.T) {
	overridePrefab(t, "broken.yaml", "name: broken\ncomponents:\n  transform: {}\n  lifetime:\n    seconds: 0\n")

	tmpl, err := LoadTemplate("broken.yaml")
	require.NoError(t, err)

	w := ecs.NewWorld()
	_, err = tmpl.Spawn(w)
	assert.ErrorContains(t, err, "lifetime seconds must be positive")
	assert.Empty(t, ecs.Entities(w))
}

func TestRoles(t *testing.T) {
	w := ecs.NewWorld()

	_, err := MainCamera(w)
	assert.ErrorIs(t, err, ErrMissingCamera)
	_, err = Character(w)
	assert.ErrorIs(t, err, ErrMissingCharacter)

	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.MainCameraTagComponent.Kind(), &component.MainCameraTag{}))
	_, err = MainCamera(w)
	assert.ErrorIs(t, err, ErrMissingCamera, "a camera needs a transform")

	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
	got, err := MainCamera(w)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}
