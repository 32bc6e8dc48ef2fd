package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbitdash/ecs"
)

// ShapeCast sweeps an axis-aligned box from Origin along Direction.
type ShapeCast struct {
	Origin      mgl64.Vec3
	HalfExtents mgl64.Vec3
	Direction   mgl64.Vec3
	MaxDistance float64
	Exclude     ecs.Entity
	// Mask selects the collision categories to test; zero tests all.
	Mask uint
}

// ShapeHit is the nearest body a cast touched.
type ShapeHit struct {
	Entity   ecs.Entity
	Distance float64
}

// ShapeCaster answers shape-cast queries against the physics world.
type ShapeCaster interface {
	CastShape(cast ShapeCast) (ShapeHit, bool)
}

// CastShape implements ShapeCaster. A box already touching the cast at its
// origin is a hit at distance zero.
func (ps *PhysicsSystem) CastShape(cast ShapeCast) (ShapeHit, bool) {
	if ps == nil || ps.space == nil || cast.Direction.LenSqr() == 0 || cast.MaxDistance < 0 {
		return ShapeHit{}, false
	}
	dir := cast.Direction.Normalize()
	end := cast.Origin.Add(dir.Mul(cast.MaxDistance))

	he := cast.HalfExtents
	swept := cp.BB{
		L: math.Min(cast.Origin.X(), end.X()) - he.X(),
		R: math.Max(cast.Origin.X(), end.X()) + he.X(),
		B: math.Min(cast.Origin.Z(), end.Z()) - he.Z(),
		T: math.Max(cast.Origin.Z(), end.Z()) + he.Z(),
	}
	mask := cast.Mask
	if mask == 0 {
		mask = cp.ALL_CATEGORIES
	}

	best := ShapeHit{Distance: math.Inf(1)}
	found := false
	ps.space.BBQuery(swept, cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask), func(shape *cp.Shape, _ interface{}) {
		info, ok := shape.UserData.(*bodyInfo)
		if !ok || info.entity == cast.Exclude {
			return
		}
		lo, hi := info.bounds()
		// Minkowski sum: sweep a point against the target grown by the cast box.
		t, ok := sweepPoint(cast.Origin, dir, cast.MaxDistance, lo.Sub(he), hi.Add(he))
		if !ok || t >= best.Distance {
			return
		}
		best = ShapeHit{Entity: info.entity, Distance: t}
		found = true
	}, nil)

	return best, found
}

func (info *bodyInfo) bounds() (mgl64.Vec3, mgl64.Vec3) {
	fp := info.footprint()
	bottom, top := info.verticalRange()
	return mgl64.Vec3{fp.L, bottom, fp.B}, mgl64.Vec3{fp.R, top, fp.T}
}

// sweepPoint intersects the segment origin + t*dir, t in [0, maxDist], with
// an axis-aligned box. Starting on a face counts as a hit unless the sweep
// leaves through it; on axes the sweep does not move along the point must be
// strictly inside.
func sweepPoint(origin, dir mgl64.Vec3, maxDist float64, lo, hi mgl64.Vec3) (float64, bool) {
	tEnter, tExit := 0.0, maxDist
	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		if math.Abs(d) < 1e-12 {
			if o <= lo[axis]+contactEpsilon || o >= hi[axis]-contactEpsilon {
				return 0, false
			}
			continue
		}
		t0 := (lo[axis] - o) / d
		t1 := (hi[axis] - o) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tEnter = math.Max(tEnter, t0)
		tExit = math.Min(tExit, t1)
		if tEnter > tExit+contactEpsilon {
			return 0, false
		}
	}
	// touching a face while moving away from it
	if tExit <= contactEpsilon && maxDist > contactEpsilon {
		return 0, false
	}
	return tEnter, true
}
