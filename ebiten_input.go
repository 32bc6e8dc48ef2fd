package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/orbitdash/common"
	"github.com/milk9111/orbitdash/ecs/component"
	"go.uber.org/zap"
)

// mouseTouchID is the touch id reported for a left-mouse drag.
const mouseTouchID = -1

// ebitenInput reads keyboard, mouse, touch and gamepad state from ebiten and
// implements system.InputSource.
type ebitenInput struct {
	overlay  *controlsOverlay
	viewport mgl64.Vec2

	keys      map[component.Key]ebiten.Key
	extraKeys []component.Key

	touches  map[ebiten.TouchID]*component.Touch
	order    []ebiten.TouchID
	mouse    *component.Touch
	joystick ebiten.TouchID
	hasStick bool

	gamepadDeadZone float64

	touchIDs   []ebiten.TouchID
	gamepadIDs []ebiten.GamepadID
}

func newEbitenInput(overlay *controlsOverlay, gamepadDeadZone float64) *ebitenInput {
	return &ebitenInput{
		overlay:         overlay,
		keys:            make(map[component.Key]ebiten.Key),
		touches:         make(map[ebiten.TouchID]*component.Touch),
		gamepadDeadZone: gamepadDeadZone,
	}
}

// Watch adds keys outside the binding table, such as the camera lock key.
func (in *ebitenInput) Watch(keys ...component.Key) {
	in.extraKeys = append(in.extraKeys, keys...)
}

func (in *ebitenInput) SetViewport(w, h float64) {
	in.viewport = mgl64.Vec2{w, h}
}

func (in *ebitenInput) resolve(name component.Key) (ebiten.Key, bool) {
	if k, ok := in.keys[name]; ok {
		return k, k >= 0
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		common.Logger().Warn("unknown key binding", zap.String("key", string(name)), zap.Error(err))
		in.keys[name] = -1
		return 0, false
	}
	in.keys[name] = k
	return k, true
}

func (in *ebitenInput) Poll(controls *component.Controls) (component.RawInput, []component.JoystickEvent) {
	raw := component.RawInput{
		Held:        make(map[component.Key]bool),
		JustPressed: make(map[component.Key]bool),
		Viewport:    in.viewport,
	}

	for _, name := range append(controls.Keys(), in.extraKeys...) {
		k, ok := in.resolve(name)
		if !ok {
			continue
		}
		raw.Held[name] = ebiten.IsKeyPressed(k)
		raw.JustPressed[name] = inpututil.IsKeyJustPressed(k)
	}

	if controls != nil && raw.AnyJustPressed(controls.ToggleOverlay) {
		in.overlay.Toggle()
	}

	in.pollTouches()
	if len(inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])) > 0 && in.overlay.ShowOnTouch() {
		in.overlay.SetVisible(true)
	}
	in.pollMouse()
	for _, id := range in.order {
		raw.Touches = append(raw.Touches, *in.touches[id])
	}
	if in.mouse != nil {
		raw.Touches = append(raw.Touches, *in.mouse)
	}

	_, raw.WheelY = ebiten.Wheel()
	raw.JumpButton, raw.DashButton = in.overlay.Buttons()

	var joysticks []component.JoystickEvent
	if evt, ok := in.touchJoystick(); ok {
		joysticks = append(joysticks, evt)
	}
	if evt, ok := in.gamepadJoystick(); ok {
		joysticks = append(joysticks, evt)
	}
	return raw, joysticks
}

func (in *ebitenInput) pollTouches() {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	live := make(map[ebiten.TouchID]struct{}, len(in.touchIDs))
	for _, id := range in.touchIDs {
		live[id] = struct{}{}
		x, y := ebiten.TouchPosition(id)
		pos := mgl64.Vec2{float64(x), float64(y)}
		if t, ok := in.touches[id]; ok {
			t.Previous = t.Position
			t.Position = pos
			continue
		}
		in.touches[id] = &component.Touch{ID: int(id), Start: pos, Position: pos, Previous: pos}
		in.order = append(in.order, id)
		// the first touch that starts on the left half steers
		if !in.hasStick && pos.X() < in.viewport.X()/2 {
			in.joystick = id
			in.hasStick = true
		}
	}

	kept := in.order[:0]
	for _, id := range in.order {
		if _, ok := live[id]; ok {
			kept = append(kept, id)
			continue
		}
		delete(in.touches, id)
		if in.hasStick && in.joystick == id {
			in.hasStick = false
		}
	}
	in.order = kept
}

func (in *ebitenInput) pollMouse() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		in.mouse = nil
		return
	}
	x, y := ebiten.CursorPosition()
	pos := mgl64.Vec2{float64(x), float64(y)}
	if in.mouse == nil {
		in.mouse = &component.Touch{ID: mouseTouchID, Start: pos, Position: pos, Previous: pos}
		return
	}
	in.mouse.Previous = in.mouse.Position
	in.mouse.Position = pos
}

// touchJoystick turns the steering touch into a move axis once it leaves the
// dead zone. Screen Y grows downward, so it is flipped.
func (in *ebitenInput) touchJoystick() (component.JoystickEvent, bool) {
	if !in.hasStick {
		in.overlay.setJoystick(false, mgl64.Vec2{}, mgl64.Vec2{})
		return component.JoystickEvent{}, false
	}
	t := in.touches[in.joystick]
	delta := t.Delta()
	radius := in.overlay.JoystickRadius()
	knob := delta
	if knob.Len() > radius {
		knob = knob.Normalize().Mul(radius)
	}
	in.overlay.setJoystick(true, t.Start, t.Start.Add(knob))

	if delta.Len() <= in.overlay.DeadZone() {
		return component.JoystickEvent{}, false
	}
	axis := knob.Mul(1 / radius)
	return component.JoystickEvent{
		ID:   component.JoystickMove,
		Axis: mgl64.Vec2{axis.X(), -axis.Y()},
	}, true
}

func (in *ebitenInput) gamepadJoystick() (component.JoystickEvent, bool) {
	in.gamepadIDs = ebiten.AppendGamepadIDs(in.gamepadIDs[:0])
	for _, id := range in.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(x, y) <= in.gamepadDeadZone {
			return component.JoystickEvent{}, false
		}
		return component.JoystickEvent{ID: component.JoystickMove, Axis: mgl64.Vec2{x, -y}}, true
	}
	return component.JoystickEvent{}, false
}
