package component

// Door leads to another level. An empty TargetLevel returns to level select.
// Locked doors also carry ColorCode and GateState and only admit the player
// while open.
type Door struct {
	TargetLevel string
}

var DoorComponent = NewComponent[Door]()
