package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbitdash/common"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
)

// Gravity is world gravity along Y, before GravityScale.
const Gravity = -9.81

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeStatic
)

// Collision categories. A zero mask in a ShapeCast matches all of them.
const (
	CategoryStatic uint = 1 << iota
	CategoryCharacter
	CategoryDebris
)

const (
	debrisGroup    uint = 1
	contactEpsilon      = 1e-4
)

// PhysicsSystem simulates box bodies in 2.5D: the horizontal plane (world X
// and Z) is a Chipmunk space, height is integrated per body. Plane contacts
// only resolve between bodies whose vertical extents overlap.
type PhysicsSystem struct {
	space *cp.Space

	bodies map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	entity ecs.Entity
	body   *cp.Body
	shape  *cp.Shape
	fixed  bool

	halfExtents mgl64.Vec3
	mass        float64
	category    uint

	// vertical state, world Y
	y  float64
	vy float64

	gravityScale   float64
	linearDamping  float64
	angularDamping float64
	lockRotation   bool
}

func NewPhysicsSystem() *PhysicsSystem {
	ps := &PhysicsSystem{
		bodies: make(map[ecs.Entity]*bodyInfo),
	}
	ps.resetSpace()
	return ps
}

func (ps *PhysicsSystem) resetSpace() {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})

	for _, pair := range [][2]cp.CollisionType{
		{collisionTypeBody, collisionTypeBody},
		{collisionTypeBody, collisionTypeStatic},
	} {
		handler := space.NewCollisionHandler(pair[0], pair[1])
		handler.PreSolveFunc = verticalOverlapPreSolve
	}

	ps.space = space
	ps.bodies = make(map[ecs.Entity]*bodyInfo)
}

// Space exposes the plane simulation for debug drawing.
func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset drops every body. Used when the world is rebuilt.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.resetSpace()
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.resetSpace()
	}

	ps.syncEntities(w)
	ps.applyCommands(w)

	dt := w.Time().DeltaSeconds()
	if dt > 0 {
		ps.space.Step(dt)
		ps.integrateVertical(dt)
	}

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.RigidBodyComponent.Kind()) {
			continue
		}
		ps.removeBody(info)
		delete(ps.bodies, e)
	}

	ecs.ForEach3(w,
		component.RigidBodyComponent.Kind(),
		component.ColliderComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, rb *component.RigidBody, col *component.Collider, t *component.Transform) {
			if _, ok := ps.bodies[e]; ok {
				return
			}
			info := ps.createBody(w, e, rb, col, t)
			ps.bodies[e] = info
			rb.Body = info.body
		},
	)
}

func (ps *PhysicsSystem) createBody(w *ecs.World, e ecs.Entity, rb *component.RigidBody, col *component.Collider, t *component.Transform) *bodyInfo {
	he := col.HalfExtents
	info := &bodyInfo{
		entity:       e,
		fixed:        rb.Type == component.BodyFixed,
		halfExtents:  he,
		mass:         rb.Mass,
		y:            t.Position.Y(),
		gravityScale: 1,
		lockRotation: rb.LockRotation,
	}
	if gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
		info.gravityScale = gs.Scale
	}
	if d, ok := ecs.Get(w, e, component.DampingComponent.Kind()); ok {
		info.linearDamping = d.Linear
		info.angularDamping = d.Angular
	}

	switch {
	case info.fixed:
		info.category = CategoryStatic
	case ecs.Has(w, e, component.DebrisTagComponent.Kind()):
		info.category = CategoryDebris
	default:
		info.category = CategoryCharacter
	}

	if info.fixed {
		bb := cp.NewBBForExtents(cp.Vector{X: t.Position.X(), Y: t.Position.Z()}, he.X(), he.Z())
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetCollisionType(collisionTypeStatic)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryStatic, cp.ALL_CATEGORIES))
		shape.SetFriction(0)
		shape.UserData = info
		ps.space.AddShape(shape)
		info.body = ps.space.StaticBody
		info.shape = shape
		return info
	}

	mass := rb.Mass
	if mass <= 0 {
		mass = 1
		info.mass = 1
	}
	moment := math.Inf(1)
	if !rb.LockRotation {
		moment = cp.MomentForBox(mass, he.X()*2, he.Z()*2)
	}
	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: t.Position.X(), Y: t.Position.Z()})
	if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		body.SetVelocity(v.Linear.X(), v.Linear.Z())
		body.SetAngularVelocity(v.Angular)
		info.vy = v.Linear.Y()
	}
	body.SetVelocityUpdateFunc(info.updateVelocity)
	ps.space.AddBody(body)

	shape := cp.NewBox(body, he.X()*2, he.Z()*2, 0)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetFriction(0)
	shape.UserData = info
	switch info.category {
	case CategoryDebris:
		shape.SetFilter(cp.NewShapeFilter(debrisGroup, CategoryDebris, CategoryStatic))
	default:
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, info.category, CategoryStatic|CategoryCharacter))
	}
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	return info
}

func (ps *PhysicsSystem) removeBody(info *bodyInfo) {
	if info == nil || ps.space == nil {
		return
	}
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if !info.fixed && info.body != nil {
		ps.space.RemoveBody(info.body)
	}
}

// updateVelocity damps plane velocity as v /= 1 + dt*damping.
func (info *bodyInfo) updateVelocity(body *cp.Body, gravity cp.Vector, _ float64, dt float64) {
	angular := body.AngularVelocity()
	cp.BodyUpdateVelocity(body, gravity, 1/(1+dt*info.linearDamping), dt)
	if !info.lockRotation {
		body.SetAngularVelocity(angular / (1 + dt*info.angularDamping))
	}
}

// applyCommands consumes kinematic translations and impulses queued this
// tick, then clears them.
func (ps *PhysicsSystem) applyCommands(w *ecs.World) {
	ecs.ForEach(w, component.KinematicControllerComponent.Kind(), func(e ecs.Entity, kc *component.KinematicController) {
		info, ok := ps.bodies[e]
		if !ok || info.fixed {
			kc.Translation = mgl64.Vec3{}
			return
		}
		d := kc.Translation
		if d.LenSqr() > 0 {
			pos := info.body.Position()
			info.body.SetPosition(cp.Vector{X: pos.X + d.X(), Y: pos.Y + d.Z()})
			info.y += d.Y()
			info.body.Activate()
		}
		kc.Translation = mgl64.Vec3{}
	})

	ecs.ForEach(w, component.ExternalImpulseComponent.Kind(), func(e ecs.Entity, imp *component.ExternalImpulse) {
		info, ok := ps.bodies[e]
		if !ok || info.fixed {
			imp.Impulse = mgl64.Vec3{}
			return
		}
		j := imp.Impulse
		if j.LenSqr() > 0 {
			info.body.ApplyImpulseAtWorldPoint(cp.Vector{X: j.X(), Y: j.Z()}, info.body.Position())
			info.vy += j.Y() / info.mass
		}
		imp.Impulse = mgl64.Vec3{}
	})
}

// integrateVertical moves every dynamic body along Y and resolves landings
// on, and bumps into, fixed colliders.
func (ps *PhysicsSystem) integrateVertical(dt float64) {
	for _, info := range ps.bodies {
		if info.fixed {
			continue
		}
		prevBottom := info.y - info.halfExtents.Y()
		prevTop := info.y + info.halfExtents.Y()

		info.vy += Gravity * info.gravityScale * dt
		info.vy /= 1 + dt*info.linearDamping
		info.y += info.vy * dt

		bottom := info.y - info.halfExtents.Y()
		top := info.y + info.halfExtents.Y()
		footprint := info.footprint()

		ps.space.BBQuery(footprint, cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, CategoryStatic), func(shape *cp.Shape, _ interface{}) {
			other, ok := shape.UserData.(*bodyInfo)
			if !ok || other == info || !other.fixed {
				return
			}
			if !strictOverlap(footprint, other.footprint()) {
				return
			}
			otherTop := other.y + other.halfExtents.Y()
			otherBottom := other.y - other.halfExtents.Y()
			switch {
			case info.vy <= 0 && prevBottom >= otherTop-contactEpsilon && bottom < otherTop:
				info.y = otherTop + info.halfExtents.Y()
				info.vy = 0
				bottom = otherTop
			case info.vy > 0 && prevTop <= otherBottom+contactEpsilon && top > otherBottom:
				info.y = otherBottom - info.halfExtents.Y()
				info.vy = 0
				top = otherBottom
			}
		}, nil)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		if info.fixed {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		p := info.body.Position()
		t.Position = mgl64.Vec3{p.X, info.y, p.Y}
		if !info.lockRotation {
			// plane angle turns X toward Z, which is a negative turn about Y
			t.Rotation = mgl64.QuatRotate(-info.body.Angle(), common.WorldUp)
		}

		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			pv := info.body.Velocity()
			v.Linear = mgl64.Vec3{pv.X, info.vy, pv.Y}
			v.Angular = info.body.AngularVelocity()
		}
	}
}

func (info *bodyInfo) footprint() cp.BB {
	if info.fixed {
		return info.shape.BB()
	}
	p := info.body.Position()
	return cp.NewBBForExtents(p, info.halfExtents.X(), info.halfExtents.Z())
}

func (info *bodyInfo) verticalRange() (float64, float64) {
	return info.y - info.halfExtents.Y(), info.y + info.halfExtents.Y()
}

// Grounded reports whether e currently stands on something, for debug views.
func (ps *PhysicsSystem) Grounded(w *ecs.World, e ecs.Entity) bool {
	return IsGrounded(w, ps, e)
}

func strictOverlap(a, b cp.BB) bool {
	return a.L < b.R-contactEpsilon && b.L < a.R-contactEpsilon &&
		a.B < b.T-contactEpsilon && b.B < a.T-contactEpsilon
}

// verticalOverlapPreSolve drops plane contacts between bodies that are apart
// in height, such as a body standing on a platform.
func verticalOverlapPreSolve(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Shapes()
	ia, okA := a.UserData.(*bodyInfo)
	ib, okB := b.UserData.(*bodyInfo)
	if !okA || !okB {
		return true
	}
	aBottom, aTop := ia.verticalRange()
	bBottom, bTop := ib.verticalRange()
	return aBottom < bTop-contactEpsilon && bBottom < aTop-contactEpsilon
}
