package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookRotation(t *testing.T) {
	tests := []struct {
		name    string
		forward mgl64.Vec3
	}{
		{"-Z is identity", mgl64.Vec3{0, 0, -1}},
		{"+Z", mgl64.Vec3{0, 0, 1}},
		{"+X", mgl64.Vec3{1, 0, 0}},
		{"diagonal", mgl64.Vec3{1, 0, 1}},
		{"pitched down", mgl64.Vec3{0, -1, -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, ok := LookRotation(tc.forward, WorldUp)
			require.True(t, ok)

			got := q.Rotate(mgl64.Vec3{0, 0, -1})
			want := tc.forward.Normalize()
			for i := range want {
				assert.InDelta(t, want[i], got[i], 1e-9)
			}
			assert.Greater(t, q.Rotate(WorldUp).Y(), 0.0)
		})
	}
}

func TestLookRotationDegenerate(t *testing.T) {
	_, ok := LookRotation(mgl64.Vec3{}, WorldUp)
	assert.False(t, ok)
	_, ok = LookRotation(WorldUp, WorldUp)
	assert.False(t, ok)
}

func TestSlerpDirection(t *testing.T) {
	from := mgl64.Vec3{1, 0, 0}
	to := mgl64.Vec3{0, 0, 1}

	assert.Equal(t, from, SlerpDirection(from, to, 0))

	end := SlerpDirection(from, to, 1)
	assert.InDelta(t, 0, end.X(), 1e-9)
	assert.InDelta(t, 1, end.Z(), 1e-9)

	mid := SlerpDirection(from, to, 0.5)
	assert.InDelta(t, 1, mid.Len(), 1e-9)
	assert.InDelta(t, math.Sqrt2/2, mid.X(), 1e-9)
	assert.InDelta(t, math.Sqrt2/2, mid.Z(), 1e-9)

	// t is clamped
	over := SlerpDirection(from, to, 3)
	assert.InDelta(t, 1, over.Z(), 1e-9)

	// opposite directions turn about world up
	back := SlerpDirection(from, mgl64.Vec3{-1, 0, 0}, 0.5)
	assert.InDelta(t, 1, back.Len(), 1e-9)
	assert.InDelta(t, 0, back.Y(), 1e-9)
}

func TestVectorHelpers(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{1, 0, 3}, Flatten(mgl64.Vec3{1, 2, 3}))
	assert.Equal(t, mgl64.Vec3{}, NormalizeOrZero(mgl64.Vec3{1e-4, 0, 0}))
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, NormalizeOrZero(mgl64.Vec3{0, 0, 5}))
	assert.True(t, IsZero(mgl64.Vec3{}))
	assert.False(t, IsZero(WorldUp))
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 1.0, Clamp01(2))
	assert.Equal(t, 0.0, Clamp01(-1))
}
