package component

// CrystalState is an activation source. It asserts its color while at least
// one activator touches it.
type CrystalState struct {
	NumActivators uint
}

func (c CrystalState) Active() bool {
	return c.NumActivators > 0
}

// Crystal holds per-crystal tuning from the prefab.
type Crystal struct {
	SensorMargin float64
}

var CrystalStateComponent = NewComponent[CrystalState]()
var CrystalComponent = NewComponent[Crystal]()
