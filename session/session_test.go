package session

import (
	"errors"
	"testing"

	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
	"github.com/milk9111/chromagate/ecs/entity"
)

type fakeLoader struct {
	world *ecs.World

	paths []string
	// ownedAtLoad is the number of level entities alive when each Load ran.
	ownedAtLoad []int
	cancels     int
}

func (f *fakeLoader) Load(path string) uint64 {
	f.paths = append(f.paths, path)
	f.ownedAtLoad = append(f.ownedAtLoad, entity.CountLevelOwned(f.world))
	return uint64(len(f.paths))
}

func (f *fakeLoader) Cancel() { f.cancels++ }

type fakePhysics struct {
	calls  int
	active bool
}

func (f *fakePhysics) SetActive(active bool) {
	f.calls++
	f.active = active
}

func newTestSession(mode Mode) (*Session, *ecs.World, *fakeLoader, *fakePhysics) {
	w := ecs.NewWorld()
	loader := &fakeLoader{world: w}
	physics := &fakePhysics{}
	return New(mode, w, loader, physics), w, loader, physics
}

func spawnOwned(t *testing.T, w *ecs.World, n int) {
	t.Helper()
	root := w.CreateEntity()
	if err := ecs.Add(w, root, component.LevelOwnedComponent.Kind(), &component.LevelOwned{Level: "old.json"}); err != nil {
		t.Fatalf("add level owned: %v", err)
	}
	for i := 1; i < n; i++ {
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.LevelOwnedComponent.Kind(), &component.LevelOwned{Level: "old.json"}); err != nil {
			t.Fatalf("add level owned: %v", err)
		}
		if err := w.SetParent(e, root); err != nil {
			t.Fatalf("set parent: %v", err)
		}
	}
}

func TestStartupGameMode(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantState AppState
		wantPaths []string
	}{
		{name: "no level shows main menu", level: "", wantState: Menu(MenuMain)},
		{name: "level loads and plays", level: "level2", wantState: To(StateGame), wantPaths: []string{"levels/level2.json"}},
		{name: "extension kept", level: "level1.json", wantState: To(StateGame), wantPaths: []string{"levels/level1.json"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, loader, physics := newTestSession(ModeGame)
			s.Startup(tc.level)
			s.Update()

			if s.State() != tc.wantState {
				t.Fatalf("expected %s, got %s", tc.wantState, s.State())
			}
			if len(loader.paths) != len(tc.wantPaths) {
				t.Fatalf("expected loads %v, got %v", tc.wantPaths, loader.paths)
			}
			for i := range tc.wantPaths {
				if loader.paths[i] != tc.wantPaths[i] {
					t.Fatalf("expected load %q, got %q", tc.wantPaths[i], loader.paths[i])
				}
			}
			if physics.active != (tc.wantState.State == StateGame) {
				t.Fatalf("physics active = %v in %s", physics.active, s.State())
			}
		})
	}
}

func TestOnEnterObservesTransitions(t *testing.T) {
	s, _, _, _ := newTestSession(ModeGame)
	if s.Mode() != ModeGame {
		t.Fatalf("expected game mode, got %v", s.Mode())
	}

	var prevs, nexts []AppState
	s.OnEnter = func(prev, next AppState) {
		prevs = append(prevs, prev)
		nexts = append(nexts, next)
	}
	s.Startup("level1")
	s.Update()

	want := []AppState{Menu(MenuMain), To(StateLoadLevel), To(StateGame)}
	if len(nexts) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, nexts)
	}
	for i := range want {
		if nexts[i] != want[i] {
			t.Fatalf("transition %d: expected %s, got %s", i, want[i], nexts[i])
		}
	}
	if prevs[0] != Menu(MenuMain) || prevs[1] != nexts[0] || prevs[2] != nexts[1] {
		t.Fatalf("unexpected previous states %v", prevs)
	}
}

func TestLoadLevelDespawnsBeforeLoad(t *testing.T) {
	s, w, loader, _ := newTestSession(ModeGame)
	spawnOwned(t, w, 5)
	spawnOwned(t, w, 2)

	s.LoadLevel("level2")
	s.Update()

	if len(loader.ownedAtLoad) != 1 || loader.ownedAtLoad[0] != 0 {
		t.Fatalf("expected zero level entities at load time, got %v", loader.ownedAtLoad)
	}
	if w.Len() != 0 {
		t.Fatalf("expected world emptied, got %d entities", w.Len())
	}
	if s.State() != To(StateGame) {
		t.Fatalf("expected game after load, got %s", s.State())
	}
	if s.Progress().CurrentLevel != "level2.json" {
		t.Fatalf("unexpected current level %q", s.Progress().CurrentLevel)
	}
}

func TestLoadLevelWithoutLevelPanics(t *testing.T) {
	s, _, loader, _ := newTestSession(ModeGame)
	s.Request(To(StateLoadLevel))

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoPendingLevel) {
			t.Fatalf("expected ErrNoPendingLevel panic, got %v", r)
		}
		if len(loader.paths) != 0 {
			t.Fatalf("expected no load issued, got %v", loader.paths)
		}
	}()
	s.Update()
}

func TestPhysicsFollowsState(t *testing.T) {
	s, _, _, physics := newTestSession(ModeGame)
	s.Startup("")

	steps := []struct {
		request *AppState
		want    bool
	}{
		{request: nil, want: false},
		{request: &AppState{State: StateLoadLevel}, want: true},
		{request: nil, want: true},
		{request: &AppState{State: StateMenu, Menu: MenuPause}, want: false},
		{request: &AppState{State: StateGame}, want: true},
		{request: &AppState{State: StateEditor}, want: false},
		{request: &AppState{State: StateMenu, Menu: MenuLevelSelect}, want: false},
	}

	s.SetCurrentLevel("level1")
	for i, step := range steps {
		if step.request != nil {
			s.Request(*step.request)
		}
		before := physics.calls
		s.Update()
		if physics.calls != before+1 {
			t.Fatalf("step %d: expected one SetActive call per update", i)
		}
		if physics.active != step.want || s.PhysicsActive() != step.want {
			t.Fatalf("step %d (%s): physics = %v, want %v", i, s.State(), physics.active, step.want)
		}
	}
}

func TestPauseKeepsLevel(t *testing.T) {
	s, w, loader, _ := newTestSession(ModeGame)
	s.LoadLevel("level1")
	s.Update()
	spawnOwned(t, w, 3)

	s.Request(Menu(MenuPause))
	s.Update()
	if got := entity.CountLevelOwned(w); got != 3 {
		t.Fatalf("expected pause to keep level, got %d", got)
	}

	s.Request(To(StateGame))
	s.Update()
	if got := entity.CountLevelOwned(w); got != 3 {
		t.Fatalf("expected resume to keep level, got %d", got)
	}
	if len(loader.paths) != 1 {
		t.Fatalf("expected no reload on resume, got %v", loader.paths)
	}

	s.Request(Menu(MenuMain))
	s.Update()
	if got := entity.CountLevelOwned(w); got != 0 {
		t.Fatalf("expected main menu to despawn level, got %d", got)
	}
	if loader.cancels != 1 {
		t.Fatalf("expected in-flight load cancelled, got %d", loader.cancels)
	}
}

func TestEditorModeRepopulates(t *testing.T) {
	s, w, loader, physics := newTestSession(ModeEditor)
	s.Startup("level2")
	s.Update()

	if s.State() != To(StateEditor) {
		t.Fatalf("expected editor, got %s", s.State())
	}
	if physics.active {
		t.Fatalf("expected physics off in editor")
	}
	if len(loader.paths) != 1 || loader.paths[0] != "levels/level2.json" {
		t.Fatalf("expected editor to load level2, got %v", loader.paths)
	}

	spawnOwned(t, w, 4)
	s.Request(To(StateGame))
	s.Update()
	if got := entity.CountLevelOwned(w); got != 4 {
		t.Fatalf("expected play-test to keep edited level, got %d", got)
	}

	s.Request(To(StateEditor))
	s.Update()
	if loader.ownedAtLoad[len(loader.ownedAtLoad)-1] != 0 {
		t.Fatalf("expected editor reload to despawn first")
	}
	if len(loader.paths) != 2 {
		t.Fatalf("expected second load, got %v", loader.paths)
	}
}

func TestEditorWithoutLevel(t *testing.T) {
	s, _, loader, _ := newTestSession(ModeEditor)
	s.Startup("")
	s.Update()
	if s.State() != To(StateEditor) {
		t.Fatalf("expected editor, got %s", s.State())
	}
	if len(loader.paths) != 0 {
		t.Fatalf("expected no load, got %v", loader.paths)
	}
}

func TestStateStrings(t *testing.T) {
	tests := []struct {
		state AppState
		want  string
	}{
		{Menu(MenuMain), "menu(main)"},
		{Menu(MenuPause), "menu(pause)"},
		{To(StateLoadLevel), "load_level"},
		{To(StateGame), "game"},
		{AppState{State: State(42)}, "unknown"},
	}
	for _, tc := range tests {
		if got := tc.state.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}
