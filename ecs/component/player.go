package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
}

var PlayerComponent = NewComponent[Player]()
