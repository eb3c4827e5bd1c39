package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
	"github.com/milk9111/chromagate/ecs/entity"
	"github.com/milk9111/chromagate/ecs/system"
	"github.com/milk9111/chromagate/levels"
	"github.com/spf13/cobra"
)

const (
	simulateTPS = 60
	loadTimeout = 5 * time.Second
)

func newSimulateCmd() *cobra.Command {
	var (
		activate []string
		ticks    int
	)
	cmd := &cobra.Command{
		Use:   "simulate <level>",
		Short: "Run the activation and gate systems headless and print gate positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := make([]common.ColorCode, 0, len(activate))
			for _, name := range activate {
				c, err := common.ParseColorCode(name)
				if err != nil {
					return err
				}
				codes = append(codes, c)
			}
			return runSimulate(cmd.Context(), cmd.OutOrStdout(), args[0], codes, ticks)
		},
	}
	cmd.Flags().StringSliceVar(&activate, "activate", nil, "colors whose crystals are held down (e.g. red,blue)")
	cmd.Flags().IntVar(&ticks, "ticks", simulateTPS, "number of ticks to run")
	return cmd
}

// holdCrystals presses every crystal of the given colors after contacts are
// counted.
type holdCrystals struct {
	codes []common.ColorCode
}

func (h holdCrystals) Update(w *ecs.World) {
	ecs.ForEach2(w, component.CrystalStateComponent.Kind(), component.ColorCodeComponent.Kind(), func(_ ecs.Entity, state *component.CrystalState, code *common.ColorCode) {
		for _, c := range h.codes {
			if *code == c {
				state.NumActivators++
			}
		}
	})
}

func runSimulate(ctx context.Context, out io.Writer, name string, codes []common.ColorCode, ticks int) error {
	if ticks < 0 {
		return errorf("ticks must not be negative")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	name = levels.NormalizeName(name)

	loader := levels.NewLoader()
	loader.Load(levels.Path(name))
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()
	res, err := loader.Wait(ctx)
	if err != nil {
		return errorf("load %s: %v", name, err)
	}
	if res.Err != nil {
		return res.Err
	}
	lvl := res.Level

	w := ecs.NewWorld()
	w.SetDelta(1.0 / simulateTPS)
	if _, err := entity.PopulateLevel(w, lvl, name); err != nil {
		return err
	}

	physics := system.NewPhysicsSystem()
	physics.SetActive(true)
	activation := system.NewColorActivationSystem()
	scheduler := ecs.NewScheduler(
		system.NewActivatorContactSystem(),
		holdCrystals{codes: codes},
		activation,
		system.NewGateMotionSystem(),
		physics,
	)
	for i := 0; i < ticks; i++ {
		scheduler.Update(w)
	}

	fmt.Fprintf(out, "%s after %d ticks\n", name, ticks)
	for _, c := range common.AllColorCodes() {
		fmt.Fprintf(out, "  %-6s %s\n", c, onOff(activation.Activated(c)))
	}

	type gateRow struct {
		code    common.ColorCode
		x, y    float64
		closedY float64
		open    bool
		door    bool
	}
	var rows []gateRow
	ecs.ForEach3(w, component.GateStateComponent.Kind(), component.ColorCodeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, gate *component.GateState, code *common.ColorCode, t *component.Transform) {
		rows = append(rows, gateRow{
			code:    *code,
			x:       t.X,
			y:       t.Y,
			closedY: gate.ClosedY,
			open:    gate.IsOpen,
			door:    ecs.Has(w, e, component.DoorComponent.Kind()),
		})
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].x != rows[j].x {
			return rows[i].x < rows[j].x
		}
		return rows[i].closedY < rows[j].closedY
	})

	for _, r := range rows {
		kind := "gate"
		if r.door {
			kind = "door"
		}
		fmt.Fprintf(out, "  %s %-6s x=%.0f y=%.1f rest=%.1f %s\n", kind, r.code, r.x, r.y, r.closedY, openClosed(r.open))
	}
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func openClosed(v bool) string {
	if v {
		return "open"
	}
	return "closed"
}
