// flycube-window - Fly around a cube in a desktop window
//
// The same renderer as the terminal viewer, blitted into an ebiten window
// with a "Toggle Wireframe" button above the view.
//
// Controls:
//
//	W/A/S/D or arrows - Move
//	E/Q               - Up/down
//	Shift             - Sprint (x3)
//	Mouse drag        - Look around
//	Scroll            - Change movement speed
//	R                 - Reset camera
//	Esc               - Quit
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/taigrr/flycube/pkg/config"
	"github.com/taigrr/flycube/pkg/engine"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "flycube-window - Fly around a cube in a desktop window\n\n")
		fmt.Fprintf(os.Stderr, "Usage: flycube-window [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := flags.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	logger, closeLog, err := cfg.Logger("flycube", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	session := engine.NewSession()
	if err := cfg.Apply(session); err != nil {
		return err
	}

	g := newGame(session, cfg.WindowWidth, cfg.WindowHeight, logger)
	ebiten.SetWindowTitle("flycube")
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight+stripHeight)
	ebiten.SetTPS(60)

	logger.Info("window opening", "width", cfg.WindowWidth, "height", cfg.WindowHeight)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return fmt.Errorf("run window: %w", err)
	}
	logger.Info("window closed", "frames", g.frames)
	return nil
}
