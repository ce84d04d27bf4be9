package main

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/gamefeel/common"
	"github.com/milk9111/gamefeel/ecs"
	"github.com/milk9111/gamefeel/ecs/component"
	"github.com/milk9111/gamefeel/ecs/entity"
	"github.com/milk9111/gamefeel/ecs/system"
	"github.com/milk9111/gamefeel/levels"
	"github.com/milk9111/gamefeel/prefabs"
	"github.com/milk9111/gamefeel/tuning"
)

var backgroundColor = color.RGBA{R: 0x1a, G: 0x1a, B: 0x24, A: 0xff}

// GameOptions are the startup settings taken from the command line.
type GameOptions struct {
	Level  string
	Config string
	Debug  bool
	Watch  bool
	TPS    int
	Store  *tuning.Store
	Logger *log.Logger
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	input     *system.InputSystem
	control   *system.PlayerControllerSystem
	physics   *system.PhysicsSystem
	render    *system.RenderSystem
	ents      entity.LevelEntities

	level   *levels.Level
	store   *tuning.Store
	ui      *designerUI
	watcher *prefabs.Watcher
	logger  *log.Logger

	debug     bool
	panelOpen bool
}

func NewGame(opts GameOptions) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	name := opts.Level
	if name == "" {
		name = levels.DefaultLevel
	}
	lvl, err := levels.Load(name)
	if err != nil {
		return nil, err
	}

	g := &Game{
		input:   system.NewInputSystem(),
		control: system.NewPlayerControllerSystem(),
		physics: system.NewPhysicsSystem(),
		render:  system.NewRenderSystem(),
		level:   lvl,
		store:   opts.Store,
		logger:  logger,
		debug:   opts.Debug,
	}
	if opts.TPS > 0 {
		g.control.DeltaMs = 1000.0 / float64(opts.TPS)
		g.physics.Dt = 1.0 / float64(opts.TPS)
	}
	g.input.Paused = func() bool {
		return g.panelOpen && (g.ui.Typing() || g.ui.Pointing())
	}
	g.scheduler = ecs.NewScheduler(
		g.input,
		g.control,
		g.physics,
		system.NewAnimationSystem(),
		system.NewCameraSystem(),
	)

	if err := g.buildWorld(); err != nil {
		return nil, err
	}
	g.ui = newDesignerUI(g.live, g.store, g.onTuningChanged, logger.WithPrefix("panel"))

	if err := g.applyStartupConfig(opts.Config); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", prefabs.Dir, err)
		}
		g.watcher = w
		logger.Info("watching prefabs", "dir", prefabs.Dir)
	}

	logger.Info("level loaded", "name", lvl.Name, "platforms", len(lvl.Platforms))
	return g, nil
}

func (g *Game) buildWorld() error {
	g.world = ecs.NewWorld()
	g.physics.Reset()
	ents, err := entity.LoadLevel(g.world, g.level)
	if err != nil {
		return err
	}
	g.ents = ents
	return nil
}

// restart rebuilds the level and carries the current tuning over.
func (g *Game) restart() {
	cfg := tuning.Capture("", g.live())
	if err := g.buildWorld(); err != nil {
		g.logger.Error("restart failed", "err", err)
		return
	}
	tuning.Apply(cfg, g.live())
	entity.RecolorPlatforms(g.world)
	g.ui.Refresh()
	g.logger.Debug("level restarted")
}

func (g *Game) applyStartupConfig(name string) error {
	if g.store == nil {
		return nil
	}
	if name != "" {
		cfg, err := g.store.LoadNamed(name)
		if err != nil {
			return err
		}
		g.applyConfig(cfg)
		g.logger.Info("config loaded", "name", name)
		return nil
	}
	cfg, err := g.store.Current()
	if err != nil {
		g.logger.Warn("current config unreadable, using defaults", "err", err)
		return nil
	}
	if cfg != nil {
		g.applyConfig(*cfg)
		g.logger.Info("current config restored", "name", cfg.Name)
	}
	return nil
}

func (g *Game) applyConfig(cfg tuning.GameConfig) {
	tuning.Apply(cfg, g.live())
	g.onTuningChanged()
	g.ui.SetName(cfg.Name)
	g.ui.Refresh()
}

func (g *Game) onTuningChanged() {
	entity.RecolorPlatforms(g.world)
}

// live points at the parameter components of the current world.
func (g *Game) live() tuning.Live {
	var live tuning.Live
	if p, ok := ecs.Get(g.world, g.ents.Player, component.PlayerParamsComponent.Kind()); ok {
		live.Player = p
	}
	if a, ok := ecs.Get(g.world, g.ents.Player, component.AbilitiesComponent.Kind()); ok {
		live.Abilities = a
	}
	if c, ok := ecs.Get(g.world, g.ents.Camera, component.CameraParamsComponent.Kind()); ok {
		live.Camera = c
	}
	live.Materials = entity.MaterialLibrary(g.world)
	return live
}

func (g *Game) Update() error {
	g.pollWatcher()

	typing := g.panelOpen && g.ui.Typing()
	if !typing {
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			g.panelOpen = !g.panelOpen
			if g.panelOpen {
				g.ui.Refresh()
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
			g.debug = !g.debug
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.restart()
		}
	}

	g.scheduler.Update(g.world)

	if g.panelOpen {
		g.ui.Update()
	}
	return nil
}

// pollWatcher re-applies prefab defaults for any changed file without
// blocking the frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadPrefab(prefabs.Name(path))
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reloadPrefab(name string) {
	var target ecs.Entity
	switch name {
	case entity.PlayerPrefab:
		target = g.ents.Player
	case entity.CameraPrefab:
		target = g.ents.Camera
	case entity.MaterialsPrefab:
		target = g.ents.Materials
	default:
		return
	}
	if err := entity.ReloadTunables(g.world, target, name); err != nil {
		g.logger.Error("prefab reload failed", "prefab", name, "err", err)
		return
	}
	g.onTuningChanged()
	g.ui.Refresh()
	g.logger.Info("prefab reloaded", "prefab", name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.render.Draw(g.world, screen)
	system.DrawDeadzoneDebug(g.world, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), common.BaseWidth-200, 4)
	}
	if g.panelOpen {
		g.ui.Draw(screen)
	} else {
		system.DrawPlayerStateDebug(g.world, screen, 8, 8)
		ebitenutil.DebugPrintAt(screen, "Tab: tuning  R: restart  F3: debug", 8, common.BaseHeight-20)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
