package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/orbitdash/common"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"github.com/milk9111/orbitdash/ecs/entity"
	"github.com/milk9111/orbitdash/ecs/system"
	"github.com/milk9111/orbitdash/prefabs"
	"go.uber.org/zap"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	debug bool
	rng   *rand.Rand

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	scene     *entity.Scene

	input   *ebitenInput
	overlay *controlsOverlay
	watcher *prefabs.Watcher

	width, height float64
	wasFocused    bool
}

type gameOptions struct {
	debug bool
	seed  uint64
	watch bool
}

func NewGame(opts gameOptions) (*Game, error) {
	g := &Game{
		debug:  opts.debug,
		rng:    rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15)),
		width:  baseWidth,
		height: baseHeight,
	}
	if err := g.buildWorld(); err != nil {
		return nil, err
	}

	if opts.watch && prefabs.DiskDir() != "" {
		watcher, err := prefabs.NewWatcher(prefabs.DiskDir())
		if err != nil {
			common.Logger().Warn("prefab hot reload disabled", zap.String("dir", prefabs.DiskDir()), zap.Error(err))
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

// buildWorld creates a fresh world and the frame's systems from the prefabs.
// The previous world is kept if building fails.
func (g *Game) buildWorld() error {
	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w)
	if err != nil {
		return fmt.Errorf("game: build world: %w", err)
	}

	overlay := newControlsOverlay(scene.Overlay)
	input := newEbitenInput(overlay, scene.Overlay.GamepadDeadZone)
	input.SetViewport(g.width, g.height)
	if cam, ok := ecs.Get(w, scene.Camera, component.OrbitCameraComponent.Kind()); ok && cam.CursorLockKey != "" {
		input.Watch(cam.CursorLockKey)
	}

	physics := system.NewPhysicsSystem()
	g.scheduler = ecs.NewScheduler(
		system.NewInputCollectSystem(input),
		system.NewInputAggregateSystem(),
		system.NewCharacterControllerSystem(physics),
		system.NewCameraZoomToggleSystem(),
		system.NewOrbitJoystickArbiterSystem(),
		system.NewCameraZoomSystem(),
		system.NewCameraOrbitSystem(),
		system.NewDashReactionSystem(g.rng, scene.Debris),
		physics,
		system.NewLifetimeSystem(),
	)
	g.world = w
	g.scene = scene
	g.physics = physics
	g.input = input
	g.overlay = overlay
	return nil
}

func (g *Game) Update() error {
	g.reloadPrefabs()
	g.relockCursor()

	g.overlay.Update()

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	g.world.Advance(time.Second / time.Duration(tps))
	g.scheduler.Update(g.world)

	if raw, ok := ecs.Get(g.world, g.scene.Input, component.RawInputComponent.Kind()); ok {
		controls, _ := ecs.Get(g.world, g.scene.Input, component.ControlsComponent.Kind())
		if controls != nil && raw.AnyJustPressed(controls.Quit) {
			return ebiten.Termination
		}
	}
	g.syncCursorLock()
	return nil
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Drain()
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			common.Logger().Warn("prefab watcher", zap.Error(err))
		}
	default:
	}
	if len(changed) == 0 {
		return
	}
	if err := g.buildWorld(); err != nil {
		common.Logger().Error("prefab reload failed, keeping current world", zap.Strings("files", changed), zap.Error(err))
		return
	}
	common.Logger().Info("world rebuilt", zap.Strings("files", changed))
}

// relockCursor captures the cursor again when the window regains focus.
func (g *Game) relockCursor() {
	focused := ebiten.IsFocused()
	if focused && !g.wasFocused {
		g.syncCursorLock()
	}
	g.wasFocused = focused
}

// syncCursorLock keeps the cursor captured while camera zoom is enabled; the
// camera lock key releases both together.
func (g *Game) syncCursorLock() {
	mode := ebiten.CursorModeCaptured
	if cam, ok := ecs.Get(g.world, g.scene.Camera, component.OrbitCameraComponent.Kind()); ok && !cam.ZoomEnabled {
		mode = ebiten.CursorModeVisible
	}
	if ebiten.CursorMode() != mode {
		ebiten.SetCursorMode(mode)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawScene(g.world, screen)
	g.overlay.Draw(screen)

	if g.debug {
		drawPhysicsDebug(g.physics, g.world, screen)
		drawDebugHUD(g.physics, g.world, screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = float64(outsideWidth), float64(outsideHeight)
		g.input.SetViewport(g.width, g.height)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Close() error {
	return g.watcher.Close()
}
