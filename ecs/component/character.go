package component

// Character holds the movement tunables of a controllable character. Values
// come from the prefab at spawn and are never written afterwards.
type Character struct {
	MoveSpeed float64
	DashSpeed float64
	JumpPower float64
	TurnRate  float64
}

var CharacterComponent = NewComponent[Character]()
