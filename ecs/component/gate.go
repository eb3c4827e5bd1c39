package component

// GateState is an activation sink. ClosedY is the authored resting Y and never
// changes after spawn. IsOpen is written only by ColorActivationSystem.
type GateState struct {
	ClosedY float64
	IsOpen  bool
}

// GateMotion configures how a gate travels when its channel opens. World Y
// grows downward, so an open gate rises TravelDistance above ClosedY and lifts
// whatever rests on it. TravelDistance is in world pixels; Rate is in world
// pixels per second.
type GateMotion struct {
	TravelDistance float64
	Rate           float64
}

// TargetY returns the Y the gate should settle at for its current state.
func (g GateState) TargetY(travel float64) float64 {
	if g.IsOpen {
		return g.ClosedY - travel
	}
	return g.ClosedY
}

var GateStateComponent = NewComponent[GateState]()
var GateMotionComponent = NewComponent[GateMotion]()
