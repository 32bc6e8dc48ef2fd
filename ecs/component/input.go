package component

import "github.com/go-gl/mathgl/mgl64"

// Key names a physical key using ebiten's key names ("W", "ArrowUp",
// "ShiftLeft", "Backquote"). Matching is case-insensitive on the platform side.
type Key string

// TriggerMode selects how an on-screen button turns into an action request.
type TriggerMode string

const (
	// TriggerLevel requests a dash on every tick the dash button is held. The
	// jump button stays edge-triggered so one press cannot jump twice.
	TriggerLevel TriggerMode = "level"
	// TriggerEdge requests the action only on the tick the button goes down.
	TriggerEdge TriggerMode = "edge"
)

// Controls is the key binding table. A direction is held when any of its keys
// is held; each direction contributes at most one unit.
type Controls struct {
	Forward       []Key
	Back          []Key
	Left          []Key
	Right         []Key
	Jump          []Key
	Dash          []Key
	ToggleOverlay []Key
	Quit          []Key
	ButtonTrigger TriggerMode
}

// Keys returns every key the bindings reference, without duplicates.
func (c *Controls) Keys() []Key {
	if c == nil {
		return nil
	}
	seen := make(map[Key]struct{})
	var out []Key
	for _, group := range [][]Key{c.Forward, c.Back, c.Left, c.Right, c.Jump, c.Dash, c.ToggleOverlay, c.Quit} {
		for _, k := range group {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

var ControlsComponent = NewComponent[Controls]()

// Touch is one active touch or pointer drag, in screen pixels.
type Touch struct {
	ID       int
	Start    mgl64.Vec2
	Position mgl64.Vec2
	// Previous is the position on the prior tick, for pinch deltas.
	Previous mgl64.Vec2
}

// Delta returns the drag offset since the gesture started.
func (t Touch) Delta() mgl64.Vec2 {
	return t.Position.Sub(t.Start)
}

// ButtonState is an on-screen button's interaction state this tick.
type ButtonState struct {
	Pressed     bool
	JustPressed bool
}

// RawInput is the per-frame snapshot of every input device. One singleton
// entity carries it.
type RawInput struct {
	Held        map[Key]bool
	JustPressed map[Key]bool
	// Touches lists active touches; a left-mouse drag is reported as touch -1.
	Touches    []Touch
	WheelY     float64
	Viewport   mgl64.Vec2
	JumpButton ButtonState
	DashButton ButtonState
}

// AnyHeld reports whether any of keys is held.
func (r *RawInput) AnyHeld(keys []Key) bool {
	if r == nil {
		return false
	}
	for _, k := range keys {
		if r.Held[k] {
			return true
		}
	}
	return false
}

// AnyJustPressed reports whether any of keys went down this tick.
func (r *RawInput) AnyJustPressed(keys []Key) bool {
	if r == nil {
		return false
	}
	for _, k := range keys {
		if r.JustPressed[k] {
			return true
		}
	}
	return false
}

var RawInputComponent = NewComponent[RawInput]()

// InputFrame is the aggregated movement intent for one tick. Move is not
// normalized.
type InputFrame struct {
	Move          mgl64.Vec2
	DashRequested bool
	JumpRequested bool
}

var InputFrameComponent = NewComponent[InputFrame]()
