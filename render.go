package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
)

const (
	fieldOfView = 60.0
	nearPlane   = 0.1
	farPlane    = 500.0
	gridHalf    = 32
	gridStep    = 4
)

var (
	colorPlatform  = color.NRGBA{R: 0x9a, G: 0x9a, B: 0xa8, A: 0xff}
	colorCharacter = color.NRGBA{R: 0x4f, G: 0xa3, B: 0xff, A: 0xff}
	colorFacing    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorDebris    = color.NRGBA{R: 0xff, G: 0xa0, B: 0x30, A: 0xff}
	colorGrid      = color.NRGBA{R: 0x40, G: 0x44, B: 0x4c, A: 0xff}
)

// boxEdges indexes the corners produced by boxCorners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// wireframe draws every collider box as seen from the main camera.
type wireframe struct {
	viewProj mgl64.Mat4
	width    float64
	height   float64
}

func newWireframe(w *ecs.World, width, height float64) (*wireframe, bool) {
	cam, ok := ecs.First(w, component.MainCameraTagComponent.Kind())
	if !ok || width <= 0 || height <= 0 {
		return nil, false
	}
	t, ok := ecs.Get(w, cam, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	view := t.Rotation.Inverse().Mat4().Mul4(mgl64.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z()))
	proj := mgl64.Perspective(mgl64.DegToRad(fieldOfView), width/height, nearPlane, farPlane)
	return &wireframe{viewProj: proj.Mul4(view), width: width, height: height}, true
}

func (r *wireframe) project(p mgl64.Vec3) (float32, float32, bool) {
	clip := r.viewProj.Mul4x1(p.Vec4(1))
	if clip.W() < nearPlane {
		return 0, 0, false
	}
	x := (clip.X()/clip.W() + 1) / 2 * r.width
	y := (1 - clip.Y()/clip.W()) / 2 * r.height
	return float32(x), float32(y), true
}

func (r *wireframe) line(screen *ebiten.Image, a, b mgl64.Vec3, clr color.Color) {
	x0, y0, ok0 := r.project(a)
	x1, y1, ok1 := r.project(b)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
}

func boxCorners(t *component.Transform, he mgl64.Vec3) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	for i := range out {
		local := mgl64.Vec3{he.X(), he.Y(), he.Z()}
		if i&1 == 0 {
			local[0] = -local[0]
		}
		if i&2 == 0 {
			local[2] = -local[2]
		}
		if i&4 == 0 {
			local[1] = -local[1]
		}
		out[i] = t.Position.Add(t.Rotation.Rotate(local))
	}
	return out
}

func (r *wireframe) box(screen *ebiten.Image, t *component.Transform, he mgl64.Vec3, clr color.Color) {
	corners := boxCorners(t, he)
	for _, edge := range boxEdges {
		r.line(screen, corners[edge[0]], corners[edge[1]], clr)
	}
}

func (r *wireframe) grid(screen *ebiten.Image) {
	for i := -gridHalf; i <= gridHalf; i += gridStep {
		f := float64(i)
		r.line(screen, mgl64.Vec3{f, 0, -gridHalf}, mgl64.Vec3{f, 0, gridHalf}, colorGrid)
		r.line(screen, mgl64.Vec3{-gridHalf, 0, f}, mgl64.Vec3{gridHalf, 0, f}, colorGrid)
	}
}

func drawScene(w *ecs.World, screen *ebiten.Image) {
	bounds := screen.Bounds()
	r, ok := newWireframe(w, float64(bounds.Dx()), float64(bounds.Dy()))
	if !ok {
		return
	}
	r.grid(screen)

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		switch {
		case ecs.Has(w, e, component.CharacterTagComponent.Kind()):
			r.box(screen, t, col.HalfExtents, colorCharacter)
			r.line(screen, t.Position, t.Position.Add(t.Forward()), colorFacing)
		case ecs.Has(w, e, component.DebrisTagComponent.Kind()):
			r.box(screen, t, col.HalfExtents, colorDebris)
		case ecs.Has(w, e, component.PlatformTagComponent.Kind()):
			// the floor is far larger than the grid; its outline would only clutter
			if col.HalfExtents.X() > gridHalf {
				return
			}
			r.box(screen, t, col.HalfExtents, colorPlatform)
		}
	})
}
