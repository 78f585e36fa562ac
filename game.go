package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/viewpoint/common"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/milk9111/viewpoint/ecs/entity"
	"github.com/milk9111/viewpoint/ecs/system"
	"github.com/milk9111/viewpoint/prefabs"
	"golang.org/x/image/colornames"
)

const teleportFlashSeconds = 0.35

type GameOptions struct {
	Scene string
	Debug bool
	Watch bool
}

type Game struct {
	world      *ecs.World
	possession *system.PossessionSystem
	pursuit    *system.PursuitSystem
	physics    *system.PhysicsSystem
	input      *system.PossessionInputSystem

	watcher *prefabs.Watcher
	logger  *log.Logger

	debug    bool
	paused   bool
	quitting bool
	pauseUI  *ebitenui.UI
}

func NewGame(opts GameOptions) (*Game, error) {
	if opts.Scene == "" {
		opts.Scene = "scene.yaml"
	}
	g := &Game{
		world:  ecs.NewWorld(),
		logger: log.WithPrefix("game"),
		debug:  opts.Debug,
	}

	if err := entity.LoadScene(g.world, opts.Scene); err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	spec, err := prefabs.LoadPossessionSpec()
	if err != nil {
		return nil, err
	}
	cfg, viewpoint, err := entity.PossessionConfigFromSpec(g.world, spec)
	if err != nil {
		return nil, err
	}

	g.possession = system.NewPossessionSystem(cfg)
	g.pursuit = system.NewPursuitSystem()
	g.physics = system.NewPhysicsSystem()
	g.input = system.NewPossessionInputSystem(viewpoint)

	g.world.AddSystemAt(ecs.StageInput, NewInputSystem())
	g.world.AddSystemAt(ecs.StageInput, g.input)
	g.world.AddSystemAt(ecs.StageSimulate, system.NewLocomotionSystem())
	g.world.AddSystemAt(ecs.StageSimulate, g.pursuit)
	// Possession rebases after everything that moves a viewpoint so the eye
	// sits on it the frame it is drawn.
	g.world.AddSystemAt(ecs.StageFollow, g.possession)
	g.world.AddSystemAt(ecs.StagePhysics, g.physics)
	g.world.AddSystemAt(ecs.StageLate, system.NewTTLSystem())
	g.world.AddSystemAt(ecs.StageLate, system.NewAudioSystem())

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Default.Dir, filepath.Join(prefabs.Default.Dir, "scripts"))
		if err != nil {
			g.logger.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	g.logger.Info("scene loaded", "scene", opts.Scene, "viewpoint", viewpoint)
	return g, nil
}

func (g *Game) Update() error {
	if g.quitting {
		return ebiten.Termination
	}

	g.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.world.SetDeltaTime(1 / float64(ebiten.TPS()))
	g.world.Update()
	g.handleEvents()
	return nil
}

// Quit restores the player rig before the game exits.
func (g *Game) Quit() {
	g.possession.Disable(g.world)
	g.quitting = true
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Warn("close watcher", "err", err)
		}
	}
}

func (g *Game) handleEvents() {
	for _, evt := range g.world.Events().Peek() {
		data, _ := evt.Data.(system.PossessionEvent)
		switch evt.Type {
		case system.EventPossessionTeleported:
			g.spawnTeleportFlash(data.Target)
		case system.EventPossessionEntered, system.EventPossessionExited,
			system.EventPossessionInterrupted, system.EventPossessionAborted:
			g.logger.Debug(evt.Type, "rig", data.Rig, "target", data.Target)
		}
	}
}

func (g *Game) spawnTeleportFlash(at ecs.Entity) {
	pos, ok := ecs.WorldPosition(g.world, at)
	if !ok {
		return
	}
	e := ecs.CreateEntity(g.world)
	_ = ecs.Add(g.world, e, component.TransformComponent.Kind(), component.NewTransform(pos))
	_ = ecs.Add(g.world, e, component.VisualComponent.Kind(), &component.Visual{
		Active: true,
		Layer:  component.LayerDefault,
		Radius: 0.8,
		Color:  colornames.Gold,
	})
	_ = ecs.Add(g.world, e, component.TTLComponent.Kind(), &component.TTL{Seconds: teleportFlashSeconds})
}

// applyReloads drains pending hot-reload notifications without blocking.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("watch", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeScript:
		g.pursuit.InvalidateScripts()
		g.logger.Info("reloaded script", "name", change.Name)
	case prefabs.ChangeSpec:
		if change.Name != "possession.yaml" {
			return
		}
		spec, err := prefabs.LoadPossessionSpec()
		if err != nil {
			g.logger.Warn("reload possession spec", "err", err)
			return
		}
		tuning, err := entity.PossessionTuningFromSpec(spec)
		if err != nil {
			g.logger.Warn("reload possession spec", "err", err)
			return
		}
		g.possession.Configure(tuning)
		if spec.Viewpoint != "" {
			if vp, ok := entity.FindByName(g.world, spec.Viewpoint); ok {
				g.input.SetViewpoint(vp)
			}
		}
		g.logger.Info("reloaded possession tuning", "fade", tuning.FadeDuration, "deferred", g.possession.Busy())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawScene(g.world, screen)
	drawFade(g.world, screen)
	drawHUD(g, screen)
	if g.debug {
		focus, _ := ecs.WorldPosition(g.world, g.possession.Rig())
		drawPhysicsInset(g.physics.Space(), screen, focus.X())
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

