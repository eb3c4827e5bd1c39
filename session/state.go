package session

// Mode is fixed for the lifetime of a Session.
type Mode int

const (
	ModeGame Mode = iota
	ModeEditor
)

func (m Mode) String() string {
	if m == ModeEditor {
		return "editor"
	}
	return "game"
}

type State int

const (
	StateMenu State = iota
	StateEditor
	StateLoadLevel
	StateGame
)

var stateNames = [...]string{
	StateMenu:      "menu",
	StateEditor:    "editor",
	StateLoadLevel: "load_level",
	StateGame:      "game",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MenuState selects the menu screen. It is only meaningful in StateMenu.
type MenuState int

const (
	MenuMain MenuState = iota
	MenuLevelSelect
	MenuPause
)

var menuNames = [...]string{
	MenuMain:        "main",
	MenuLevelSelect: "level_select",
	MenuPause:       "pause",
}

func (m MenuState) String() string {
	if m < 0 || int(m) >= len(menuNames) {
		return "unknown"
	}
	return menuNames[m]
}

// AppState is the current top-level state of the application.
type AppState struct {
	State State
	Menu  MenuState
}

func (a AppState) String() string {
	if a.State == StateMenu {
		return a.State.String() + "(" + a.Menu.String() + ")"
	}
	return a.State.String()
}

// Menu returns the AppState for menu screen m.
func Menu(m MenuState) AppState {
	return AppState{State: StateMenu, Menu: m}
}

// To returns the AppState for a non-menu state.
func To(s State) AppState {
	return AppState{State: s}
}

// LevelProgress records which level should be loaded next. An empty
// CurrentLevel means none has been chosen.
type LevelProgress struct {
	CurrentLevel string
}
