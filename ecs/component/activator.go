package component

// Activator marks bodies whose contact weighs down crystals.
type Activator struct{}

var ActivatorComponent = NewComponent[Activator]()
