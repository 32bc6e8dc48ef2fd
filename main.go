package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/orbitdash/common"
	"github.com/milk9111/orbitdash/prefabs"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "draw the physics plane and a state HUD, log at debug level")
	seed := flag.Uint64("seed", 1, "seed for the debris scatter")
	prefabDir := flag.String("prefabs", "prefabs", "directory whose YAML files override the built-in prefabs; empty disables overrides")
	watch := flag.Bool("watch", true, "rebuild the world when a prefab in -prefabs changes")
	flag.Parse()

	logger, err := common.InitLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	prefabs.SetDiskDir(*prefabDir)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("orbitdash")

	game, err := NewGame(gameOptions{debug: *debug, seed: *seed, watch: *watch})
	if err != nil {
		logger.Fatal("start", zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}
