package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/render"
	"github.com/milk9111/chromagate/ecs/system"
	"github.com/milk9111/chromagate/levels"
	"github.com/milk9111/chromagate/session"
)

type Game struct {
	world   *ecs.World
	session *session.Session
	loader  *levels.Loader

	input      *InputSystem
	editor     *EditorSync
	populate   *system.LevelPopulateSystem
	gameplay   *ecs.Scheduler
	physics    *system.PhysicsSystem
	activation *system.ColorActivationSystem
	render     *render.RenderSystem
	menu       *MenuUI

	quit bool
}

func NewGame(mode session.Mode, levelName string, debug bool) (*Game, error) {
	world := ecs.NewWorld()
	loader := levels.NewLoader()
	physics := system.NewPhysicsSystem()
	activation := system.NewColorActivationSystem()

	g := &Game{
		world:      world,
		loader:     loader,
		input:      NewInputSystem(),
		populate:   system.NewLevelPopulateSystem(loader),
		physics:    physics,
		activation: activation,
		render:     render.NewRenderSystem(activation),
		gameplay: ecs.NewScheduler(
			system.NewPlayerControllerSystem(),
			system.NewActivatorContactSystem(),
			activation,
			system.NewGateMotionSystem(),
			system.NewDoorSystem(),
		),
	}
	g.render.Debug = debug
	g.session = session.New(mode, world, loader, physics)
	g.menu = NewMenuUI(g)
	g.session.OnEnter = func(_, next session.AppState) {
		if next == session.Menu(session.MenuLevelSelect) {
			g.menu.RefreshLevelSelect()
		}
	}

	if g.session.Mode() == session.ModeEditor {
		editor, err := NewEditorSync(g.session)
		if err != nil {
			return nil, err
		}
		g.editor = editor
	}

	g.session.Startup(levelName)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.world.SetDelta(1.0 / float64(ebiten.TPS()))
	g.input.Update(g.world)
	if g.editor != nil {
		g.editor.Update()
	}
	if g.session.State().State == session.StateGame && pausePressed() {
		g.session.Request(session.Menu(session.MenuPause))
	}

	g.session.Update()
	g.populate.Update(g.world)

	state := g.session.State()
	if state.State == session.StateGame {
		g.gameplay.Update(g.world)
	}
	g.physics.Update(g.world)

	if target, ok := system.TakeLevelChangeRequest(g.world); ok {
		if target == "" {
			g.session.Request(session.Menu(session.MenuLevelSelect))
		} else {
			log.Printf("game: door to %s", target)
			g.session.LoadLevel(target)
		}
	}

	if state.State == session.StateMenu {
		g.menu.Update(state.Menu)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if state := g.session.State(); state.State == session.StateMenu {
		g.menu.Draw(screen, state.Menu)
	}
	if g.editor != nil {
		g.editor.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.editor != nil {
		g.editor.Close()
	}
	g.loader.Cancel()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
