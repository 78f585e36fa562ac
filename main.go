package main

import (
	"flag"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/viewpoint/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "hot-reload prefab specs and steering scripts from disk")
	sceneName := flag.String("scene", "scene.yaml", "scene file in prefabs/")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("viewpoint")

	game, err := NewGame(GameOptions{Scene: *sceneName, Debug: *debug, Watch: *watch})
	if err != nil {
		log.Fatal("start", "err", err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal("run", "err", err)
	}
}
