package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"github.com/milk9111/orbitdash/ecs/system"
)

const (
	debugMapSize  = 220
	debugMapScale = 4.0 // pixels per world unit
	debugMargin   = 10
	debugDotSize  = 4
)

// drawPhysicsDebug draws the physics plane top-down (world X right, world Z
// down) centred on the character, in the top-right corner.
func drawPhysicsDebug(ps *system.PhysicsSystem, w *ecs.World, screen *ebiten.Image) {
	space := ps.Space()
	if space == nil || w == nil || screen == nil {
		return
	}

	originX := float64(screen.Bounds().Dx() - debugMapSize - debugMargin)
	originY := float64(debugMargin)
	vector.DrawFilledRect(screen, float32(originX), float32(originY), debugMapSize, debugMapSize, color.NRGBA{A: 0xa0}, false)

	var focus cp.Vector
	if e, ok := ecs.First(w, component.CharacterTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			focus = cp.Vector{X: t.Position.X(), Y: t.Position.Z()}
		}
	}

	drawer := &physicsDebugDrawer{
		screen:  screen,
		focus:   focus,
		originX: originX + debugMapSize/2,
		originY: originY + debugMapSize/2,
		minX:    originX,
		minY:    originY,
	}
	cp.DrawSpace(space, drawer)
}

// drawDebugHUD prints controller and camera state.
func drawDebugHUD(ps *system.PhysicsSystem, w *ecs.World, screen *ebiten.Image) {
	grounded := false
	var pos, vel [3]float64
	if e, ok := ecs.First(w, component.CharacterTagComponent.Kind()); ok {
		grounded = ps.Grounded(w, e)
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			pos = t.Position
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			vel = v.Linear
		}
	}

	radius, orbit, zoom := 0.0, false, false
	if e, ok := ecs.First(w, component.OrbitCameraComponent.Kind()); ok {
		cam, _ := ecs.Get(w, e, component.OrbitCameraComponent.Kind())
		radius, orbit, zoom = cam.Radius, cam.OrbitEnabled, cam.ZoomEnabled
	}

	debris := len(ecs.Query(w, component.DebrisTagComponent.Kind()))

	text := fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\nPosition: %.2f %.2f %.2f\nVelocity: %.2f %.2f %.2f\nGrounded: %v\nCamera radius: %.2f  orbit: %v  zoom: %v\nDebris: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		pos[0], pos[1], pos[2],
		vel[0], vel[1], vel[2],
		grounded, radius, orbit, zoom, debris,
	)
	ebitenutil.DebugPrintAt(screen, text, debugMargin, debugMargin)
}

type physicsDebugDrawer struct {
	screen           *ebiten.Image
	focus            cp.Vector
	originX, originY float64
	minX, minY       float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	x, y := d.toScreen(pos)
	vector.StrokeCircle(d.screen, x, y, float32(radius*debugMapScale), 1, toNRGBA(outline), true)
	d.drawLine(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.toScreen(pos)
	if !d.inside(x, y) {
		return
	}
	vector.DrawFilledCircle(d.screen, x, y, float32(size/2), toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

// drawLine clamps both ends to the map square.
func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x0, y0 := d.toScreen(a)
	x1, y1 := d.toScreen(b)
	x0, y0 = d.clamp(x0, y0)
	x1, y1 = d.clamp(x1, y1)
	if x0 == x1 && y0 == y1 {
		return
	}
	vector.StrokeLine(d.screen, x0, y0, x1, y1, 1, toNRGBA(c), true)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float32, float32) {
	return float32(d.originX + (v.X-d.focus.X)*debugMapScale), float32(d.originY + (v.Y-d.focus.Y)*debugMapScale)
}

func (d *physicsDebugDrawer) inside(x, y float32) bool {
	return float64(x) >= d.minX && float64(x) <= d.minX+debugMapSize &&
		float64(y) >= d.minY && float64(y) <= d.minY+debugMapSize
}

func (d *physicsDebugDrawer) clamp(x, y float32) (float32, float32) {
	minX, minY := float32(d.minX), float32(d.minY)
	maxX, maxY := minX+debugMapSize, minY+debugMapSize
	return min(max(x, minX), maxX), min(max(y, minY), maxY)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
