package session

import (
	"errors"
	"log"

	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/entity"
	"github.com/milk9111/chromagate/levels"
)

// ErrNoPendingLevel is the panic value when LoadLevel is entered with no level
// chosen. Reaching it means a caller skipped SetCurrentLevel.
var ErrNoPendingLevel = errors.New("session: entered load_level with no current level")

// LevelLoader starts asynchronous level loads.
type LevelLoader interface {
	Load(path string) uint64
	Cancel()
}

// PhysicsToggle receives the physics enable flag once per Update.
type PhysicsToggle interface {
	SetActive(active bool)
}

// Session drives the Menu, Editor, LoadLevel and Game lifecycle. Transitions
// are queued by Request and applied in order by Update.
type Session struct {
	mode    Mode
	world   *ecs.World
	loader  LevelLoader
	physics PhysicsToggle

	state    AppState
	progress LevelProgress
	pending  []AppState

	physicsActive bool

	// OnEnter, when set, observes each applied transition.
	OnEnter func(prev, next AppState)
}

func New(mode Mode, world *ecs.World, loader LevelLoader, physics PhysicsToggle) *Session {
	return &Session{
		mode:    mode,
		world:   world,
		loader:  loader,
		physics: physics,
		state:   Menu(MenuMain),
	}
}

// Startup queues the initial transitions. In game mode the main menu is
// shown, then startLevel is loaded when given. In editor mode the session
// opens the editor on startLevel.
func (s *Session) Startup(startLevel string) {
	if startLevel != "" {
		s.SetCurrentLevel(startLevel)
	}

	if s.mode == ModeEditor {
		s.Request(To(StateEditor))
		return
	}

	s.Request(Menu(MenuMain))
	if startLevel != "" {
		s.Request(To(StateLoadLevel))
	}
}

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) State() AppState { return s.state }

func (s *Session) Progress() LevelProgress { return s.progress }

// PhysicsActive reports the flag from the last Update.
func (s *Session) PhysicsActive() bool { return s.physicsActive }

// SetCurrentLevel chooses the level the next LoadLevel reads.
func (s *Session) SetCurrentLevel(name string) {
	s.progress.CurrentLevel = levels.NormalizeName(name)
}

// Request queues a transition for the next Update.
func (s *Session) Request(next AppState) {
	s.pending = append(s.pending, next)
}

// LoadLevel chooses name and queues its load.
func (s *Session) LoadLevel(name string) {
	s.SetCurrentLevel(name)
	s.Request(To(StateLoadLevel))
}

// Update applies queued transitions, including any queued by on-enter
// handlers, and then derives whether physics runs this tick.
func (s *Session) Update() {
	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.apply(next)
	}

	s.physicsActive = s.state.State == StateGame
	if s.physics != nil {
		s.physics.SetActive(s.physicsActive)
	}
}

func (s *Session) apply(next AppState) {
	prev := s.state
	s.state = next

	switch next.State {
	case StateLoadLevel:
		s.enterLoadLevel()
	case StateMenu:
		if next.Menu != MenuPause {
			s.despawn()
			if s.loader != nil {
				s.loader.Cancel()
			}
		}
	case StateEditor:
		s.Reload()
	}

	if prev != next {
		log.Printf("session: %s -> %s", prev, next)
	}
	if s.OnEnter != nil {
		s.OnEnter(prev, next)
	}
}

func (s *Session) enterLoadLevel() {
	s.despawn()

	name := s.progress.CurrentLevel
	if name == "" {
		panic(ErrNoPendingLevel)
	}
	if s.loader != nil {
		s.loader.Load(levels.Path(name))
	}
	s.Request(To(StateGame))
}

// Reload despawns the current level and loads it again from its file. It
// does nothing to the lifecycle state and is a no-op beyond despawning when
// no level is chosen.
func (s *Session) Reload() {
	s.despawn()
	if s.progress.CurrentLevel == "" || s.loader == nil {
		return
	}
	s.loader.Load(levels.Path(s.progress.CurrentLevel))
}

func (s *Session) despawn() {
	if s.world == nil {
		return
	}
	if n := entity.DespawnLevel(s.world); n > 0 {
		log.Printf("session: despawned %d level entities", n)
	}
}
