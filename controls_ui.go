package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/orbitdash/ecs/component"
	"github.com/milk9111/orbitdash/prefabs"
	"golang.org/x/image/font/basicfont"
)

const (
	overlayButtonSize = 96
	overlayPadding    = 32
)

// controlsOverlay is the on-screen control layer: Jump and Dash buttons plus
// the virtual joystick drawn under the finger that drives it.
type controlsOverlay struct {
	ui      *ebitenui.UI
	spec    prefabs.OverlaySpec
	visible bool

	jump overlayButton
	dash overlayButton

	joystickActive bool
	joystickBase   mgl64.Vec2
	joystickKnob   mgl64.Vec2
}

type overlayButton struct {
	held bool
	// down is set by the pressed handler and consumed by state.
	down bool
}

func (b *overlayButton) state(visible bool) component.ButtonState {
	s := component.ButtonState{Pressed: visible && b.held, JustPressed: visible && b.down}
	b.down = false
	return s
}

func newControlsOverlay(spec prefabs.OverlaySpec) *controlsOverlay {
	o := &controlsOverlay{spec: spec, visible: spec.Visible}

	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 180})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 220})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	newButton := func(label string, b *overlayButton) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(overlayButtonSize, overlayButtonSize)),
			widget.ButtonOpts.PressedHandler(func(*widget.ButtonPressedEventArgs) {
				b.held = true
				b.down = true
			}),
			widget.ButtonOpts.ReleasedHandler(func(*widget.ButtonReleasedEventArgs) {
				b.held = false
			}),
		)
	}

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(16),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	buttons.AddChild(newButton("Dash", &o.dash))
	buttons.AddChild(newButton("Jump", &o.jump))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: overlayPadding, Bottom: overlayPadding, Left: overlayPadding, Right: overlayPadding}),
		)),
	)
	root.AddChild(buttons)

	o.ui = &ebitenui.UI{Container: root}
	return o
}

func (o *controlsOverlay) Visible() bool {
	return o != nil && o.visible
}

func (o *controlsOverlay) SetVisible(v bool) {
	if o == nil {
		return
	}
	o.visible = v
	if !v {
		o.jump = overlayButton{}
		o.dash = overlayButton{}
	}
}

func (o *controlsOverlay) Toggle() {
	if o == nil {
		return
	}
	o.SetVisible(!o.visible)
}

// DeadZone is how far, in pixels, a joystick drag must travel before it
// counts as movement.
func (o *controlsOverlay) DeadZone() float64 {
	if o == nil {
		return 0
	}
	if o.visible {
		return o.spec.DeadZoneVisible
	}
	return o.spec.DeadZoneHidden
}

func (o *controlsOverlay) JoystickRadius() float64 {
	if o == nil || o.spec.JoystickRadius <= 0 {
		return 120
	}
	return o.spec.JoystickRadius
}

func (o *controlsOverlay) ShowOnTouch() bool {
	return o != nil && (o.spec.ShowOnTouch == nil || *o.spec.ShowOnTouch)
}

// Buttons reports this tick's button states; hidden buttons are never pressed.
func (o *controlsOverlay) Buttons() (jump, dash component.ButtonState) {
	if o == nil {
		return component.ButtonState{}, component.ButtonState{}
	}
	return o.jump.state(o.visible), o.dash.state(o.visible)
}

func (o *controlsOverlay) setJoystick(active bool, base, knob mgl64.Vec2) {
	o.joystickActive = active
	o.joystickBase = base
	o.joystickKnob = knob
}

func (o *controlsOverlay) Update() {
	if o == nil || !o.visible {
		return
	}
	o.ui.Update()
}

func (o *controlsOverlay) Draw(screen *ebiten.Image) {
	if o == nil || !o.visible {
		return
	}
	if o.joystickActive {
		r := float32(o.JoystickRadius())
		bx, by := float32(o.joystickBase.X()), float32(o.joystickBase.Y())
		kx, ky := float32(o.joystickKnob.X()), float32(o.joystickKnob.Y())
		vector.StrokeCircle(screen, bx, by, r, 2, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}, true)
		vector.DrawFilledCircle(screen, kx, ky, r/3, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xa0}, true)
	}
	o.ui.Draw(screen)
}
