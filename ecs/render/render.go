package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
)

const inactiveDim = 0.45

var backgroundColor = color.RGBA{R: 0x16, G: 0x17, B: 0x1d, A: 0xff}

// Activation reports which color channels are open.
type Activation interface {
	Activated(c common.ColorCode) bool
}

type RenderSystem struct {
	activation Activation
	Debug      bool
}

func NewRenderSystem(activation Activation) *RenderSystem {
	return &RenderSystem{activation: activation}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}

	screen.Fill(backgroundColor)
	camX, camY := r.cameraOffset(w, screen)

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.Get(w, entities[i], component.SpriteComponent.Kind())
		sj, _ := ecs.Get(w, entities[j], component.SpriteComponent.Kind())
		if si.Layer != sj.Layer {
			return si.Layer < sj.Layer
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		fill := s.Color
		if crystal, ok := ecs.Get(w, e, component.CrystalStateComponent.Kind()); ok && !crystal.Active() {
			fill = common.Dim(fill, inactiveDim)
		}
		if ecs.Has(w, e, component.DoorComponent.Kind()) {
			if gate, ok := ecs.Get(w, e, component.GateStateComponent.Kind()); ok && gate.IsOpen {
				fill = common.Dim(fill, inactiveDim)
			}
		}

		x := float32(t.X - s.Width/2 - camX)
		y := float32(t.Y - s.Height/2 - camY)
		vector.DrawFilledRect(screen, x, y, float32(s.Width), float32(s.Height), fill, false)
	}

	if r.Debug {
		r.drawDebug(w, screen)
	}
}

// cameraOffset centers the player horizontally, clamped to the level.
func (r *RenderSystem) cameraOffset(w *ecs.World, screen *ebiten.Image) (float64, float64) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return 0, 0
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())

	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())
	camX := 0.0
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			camX = t.X - sw/2
		}
	}
	camX = math.Max(0, math.Min(camX, bounds.Width-sw))
	camY := math.Max(0, bounds.Height-sh)
	return camX, camY
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image) {
	msg := fmt.Sprintf("TPS: %0.1f  entities: %d", ebiten.ActualTPS(), w.Len())
	if r.activation != nil {
		for _, c := range common.AllColorCodes() {
			state := "off"
			if r.activation.Activated(c) {
				state = "on"
			}
			msg += fmt.Sprintf("\n%s: %s", c, state)
		}
	}
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
