package component

// LevelChangeRequest is a one-shot request emitted by DoorSystem to ask the
// outer game loop to load a different level.
//
// Systems only emit data; the Game loop owns the session transition.
type LevelChangeRequest struct {
	TargetLevel string
}

var LevelChangeRequestComponent = NewComponent[LevelChangeRequest]()
