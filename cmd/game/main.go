package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Touch-Shooter/internal/game"
	"github.com/Garsondee/Touch-Shooter/internal/gamepad"
	"github.com/Garsondee/Touch-Shooter/internal/remote"
)

func main() {
	var configPath string
	var layout string
	var remoteAddr string
	var seed int64

	flag.StringVar(&configPath, "config", "", "gamepad config file (.toml or .yaml)")
	flag.StringVar(&layout, "layout", "", "override the config layout (single_stick, double_stick, stick_button, corner_sticks, gesture_button, gesture)")
	flag.StringVar(&remoteAddr, "remote", "", "serve the websocket pointer bridge on this address, e.g. :8080")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "arena RNG seed")
	flag.Parse()

	cfg := gamepad.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = gamepad.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if layout != "" {
		if err := cfg.Layout.UnmarshalText([]byte(layout)); err != nil {
			log.Fatal(err)
		}
	}

	gamepad.SetLogLevel(cfg.LogLevel)

	opts := game.Options{Pad: cfg, Seed: seed}

	// The bridge shuts down once the window closes.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if remoteAddr != "" {
		screen := gamepad.FixedScreen{Width: game.ScreenWidth, Height: game.ScreenHeight}
		opts.Bridge = remote.NewBridge(screen, 256)
		go func() {
			if err := remote.ListenAndServe(ctx, remoteAddr, opts.Bridge); err != nil {
				log.Printf("remote bridge: %v", err)
			}
		}()
	}

	g, err := game.New(opts)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Touch Shooter")
	ebiten.SetWindowSize(game.ScreenWidth*2, game.ScreenHeight*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
