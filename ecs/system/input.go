package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
)

// InputSource is the platform input boundary. Poll is called once per frame
// and reports the device snapshot plus the joysticks engaged this frame.
type InputSource interface {
	Poll(controls *component.Controls) (component.RawInput, []component.JoystickEvent)
}

// InputCollectSystem copies the platform input into the RawInput singleton
// and forwards joystick activity to the frame mailbox.
type InputCollectSystem struct {
	source InputSource
}

func NewInputCollectSystem(source InputSource) *InputCollectSystem {
	return &InputCollectSystem{source: source}
}

func (s *InputCollectSystem) Update(w *ecs.World) {
	if s == nil || s.source == nil || w == nil {
		return
	}

	e, ok := ecs.First(w, component.RawInputComponent.Kind())
	if !ok {
		return
	}
	raw, _ := ecs.Get(w, e, component.RawInputComponent.Kind())
	controls, _ := ecs.Get(w, e, component.ControlsComponent.Kind())

	snapshot, joysticks := s.source.Poll(controls)
	*raw = snapshot
	for _, evt := range joysticks {
		ecs.Send(w, component.JoystickEvents, evt)
	}
}

// InputAggregateSystem merges keys, joystick axes and on-screen buttons into
// the InputFrame singleton.
type InputAggregateSystem struct{}

func NewInputAggregateSystem() *InputAggregateSystem {
	return &InputAggregateSystem{}
}

func (s *InputAggregateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	e, ok := ecs.First(w, component.InputFrameComponent.Kind())
	if !ok {
		return
	}
	frame, _ := ecs.Get(w, e, component.InputFrameComponent.Kind())
	raw, _ := ecs.Get(w, e, component.RawInputComponent.Kind())
	controls, _ := ecs.Get(w, e, component.ControlsComponent.Kind())

	*frame = Aggregate(raw, controls, ecs.Read(w, component.JoystickEvents))
}

// Aggregate builds one tick's InputFrame. Each held direction group adds one
// unit along its axis, move-joystick axes are added on top, and the result is
// not normalized. Keys and the jump button request actions on their press edge
// only; the character stays inside the grounded probe for a few ticks after
// takeoff, so a level-triggered jump would fire twice. The dash button follows
// the controls' trigger mode.
func Aggregate(raw *component.RawInput, controls *component.Controls, joysticks []component.JoystickEvent) component.InputFrame {
	var frame component.InputFrame
	if raw == nil || controls == nil {
		return frame
	}

	var move mgl64.Vec2
	if raw.AnyHeld(controls.Forward) {
		move[1]++
	}
	if raw.AnyHeld(controls.Back) {
		move[1]--
	}
	if raw.AnyHeld(controls.Left) {
		move[0]--
	}
	if raw.AnyHeld(controls.Right) {
		move[0]++
	}
	for _, evt := range joysticks {
		if evt.ID == component.JoystickMove {
			move = move.Add(evt.Axis)
		}
	}
	frame.Move = move

	frame.DashRequested = raw.AnyJustPressed(controls.Dash) || buttonFires(raw.DashButton, controls.ButtonTrigger)
	frame.JumpRequested = raw.AnyJustPressed(controls.Jump) || raw.JumpButton.JustPressed
	return frame
}

func buttonFires(b component.ButtonState, mode component.TriggerMode) bool {
	if mode == component.TriggerEdge {
		return b.JustPressed
	}
	return b.Pressed
}
