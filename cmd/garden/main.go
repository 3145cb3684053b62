//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"garden/internal/app"
	"garden/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := app.NewConfig()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	session, res, err := app.Setup(context.Background(), flags)
	if err != nil {
		log.Fatal(err)
	}
	cfg := session.Config()

	loader := render.NewLoader(cfg.Assets.Dir)
	loader.Start(render.GardenAssets)

	game := app.NewGame(session, loader)

	ebiten.SetWindowTitle("garden (" + res.Mode.String() + ")")
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	session.Flush()
}
