package component

// LevelOwned tags every entity spawned by a level load. The lifecycle
// despawns all of them before the next level is requested.
type LevelOwned struct {
	Level string
}

// LevelRoot marks the parent entity of one populated level.
type LevelRoot struct {
	Name string
}

var LevelOwnedComponent = NewComponent[LevelOwned]()
var LevelRootComponent = NewComponent[LevelRoot]()
