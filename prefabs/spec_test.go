package prefabs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// useDiskDir points the prefab override at a temp dir for one test.
func useDiskDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := DiskDir()
	SetDiskDir(dir)
	t.Cleanup(func() { SetDiskDir(prev) })
	return dir
}

func writePrefab(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestVec3SpecDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    mgl64.Vec3
		wantErr bool
	}{
		{"sequence", "[1, 2.5, -3]", mgl64.Vec3{1, 2.5, -3}, false},
		{"mapping", "{x: 1, y: 2, z: 3}", mgl64.Vec3{1, 2, 3}, false},
		{"partial mapping", "{y: 4}", mgl64.Vec3{0, 4, 0}, false},
		{"short sequence", "[1, 2]", mgl64.Vec3{}, true},
		{"not numbers", "[a, b, c]", mgl64.Vec3{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var v Vec3Spec
			err := yaml.Unmarshal([]byte(tc.in), &v)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.Vec3())
		})
	}
}

func TestEmbeddedPrefabsLoad(t *testing.T) {
	for _, name := range []string{"character.yaml", "camera.yaml", "debris.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Name)
			assert.NotEmpty(t, spec.Components)
		})
	}

	level, err := LoadLevelSpec("prefabs/level.yaml")
	require.NoError(t, err)
	require.Len(t, level.Blocks, 4)
	assert.Equal(t, mgl64.Vec3{0, -0.5, 0}, level.Blocks[0].Position.Vec3())

	controls, err := LoadControlsSpec("controls.yaml")
	require.NoError(t, err)
	assert.Equal(t, "edge", controls.ButtonTrigger)
	assert.Contains(t, controls.Forward, "W")
	assert.False(t, controls.Overlay.Visible)
	assert.Equal(t, 80.0, controls.Overlay.DeadZoneHidden)
}

func TestDiskOverride(t *testing.T) {
	dir := useDiskDir(t)
	writePrefab(t, dir, "debris.yaml", "name: override\ncomponents:\n  debris_tag: {}\n")

	spec, err := LoadEntityBuildSpec("debris.yaml")
	require.NoError(t, err)
	assert.Equal(t, "override", spec.Name)

	_, ok := ModTime("debris.yaml")
	assert.True(t, ok)
	_, ok = ModTime("camera.yaml")
	assert.False(t, ok, "embedded-only prefabs have no mod time")

	camera, err := LoadEntityBuildSpec("camera.yaml")
	require.NoError(t, err)
	assert.Equal(t, "camera", camera.Name, "missing disk files fall back to the embedded copy")
}

func TestLoadControlsSpecValidation(t *testing.T) {
	dir := useDiskDir(t)
	writePrefab(t, dir, "controls.yaml", "forward: [W]\nbutton_trigger: sometimes\n")

	_, err := LoadControlsSpec("controls.yaml")
	assert.ErrorContains(t, err, "button_trigger")
}

func TestLoadLevelSpecValidation(t *testing.T) {
	dir := useDiskDir(t)
	writePrefab(t, dir, "level.yaml", "blocks:\n  - name: flat\n    position: [0, 0, 0]\n    half_extents: [1, 0, 1]\n")

	_, err := LoadLevelSpec("level.yaml")
	assert.ErrorContains(t, err, "half extents must be positive")
}

func TestDecodeComponentSpec(t *testing.T) {
	raw := map[string]any{"move_speed": 0.2, "dash_speed": 10}
	spec, err := DecodeComponentSpec[CharacterComponentSpec](raw)
	require.NoError(t, err)
	assert.Equal(t, 0.2, spec.MoveSpeed)
	assert.Equal(t, 10.0, spec.DashSpeed)

	empty, err := DecodeComponentSpec[CharacterComponentSpec](nil)
	require.NoError(t, err)
	assert.Equal(t, CharacterComponentSpec{}, empty)
}
