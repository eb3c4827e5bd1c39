package component

// Input is the per-tick control intent written by the input poller.
type Input struct {
	MoveX       float64
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
