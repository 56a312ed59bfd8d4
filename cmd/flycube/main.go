// flycube - Fly around a cube in your terminal
// A painter's-algorithm renderer drawn with half-block characters.
//
// Controls:
//
//	W/S or Up/Down    - Move forward/back
//	A/D or Left/Right - Strafe left/right
//	E/Q               - Move up/down
//	Shift             - Sprint (x3)
//	Mouse drag        - Look around (yaw/pitch)
//	Scroll            - Change movement speed
//	X                 - Toggle wireframe
//	R                 - Reset camera
//	P                 - Save a PNG screenshot
//	?                 - Toggle HUD overlay
//	Esc, Ctrl+C       - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/taigrr/flycube/pkg/config"
	"github.com/taigrr/flycube/pkg/engine"
	"github.com/taigrr/flycube/pkg/input"
)

// kittyFlags asks for release events and unambiguous modifier keys.
const kittyFlags = ansi.KittyDisambiguateEscapeCodes |
	ansi.KittyReportEventTypes |
	ansi.KittyReportAllKeysAsEscapeCodes

func main() {
	flags := config.BindFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "flycube - Fly around a cube in your terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: flycube [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/A/S/D     - Move (arrow keys work too)\n")
		fmt.Fprintf(os.Stderr, "  E/Q         - Up/down\n")
		fmt.Fprintf(os.Stderr, "  Shift       - Sprint\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Look around\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Movement speed\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  P           - Screenshot\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
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
	logger, closeLog, err := cfg.Logger("flycube", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	session := engine.NewSession()
	if err := cfg.Apply(session); err != nil {
		return err
	}
	logger.Info("starting", "speed", cfg.Speed, "wireframe", cfg.Wireframe, "yield", cfg.Yield)

	// Create terminal
	term := uv.DefaultTerminal()
	if logger.GetLevel() <= log.DebugLevel {
		term.SetLogger(logger.WithPrefix("uv"))
	}

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Mouse, focus and key release reporting
	term.WriteString(ansi.SetModeMouseAnyEvent)
	term.WriteString(ansi.SetModeMouseExtSgr)
	term.WriteString(ansi.SetModeFocusEvent)
	term.WriteString(ansi.PushKittyKeyboard(kittyFlags))
	term.WriteString(ansi.RequestKittyKeyboard)
	if err := term.Flush(); err != nil {
		logger.Warn("enable input modes", "err", err)
	}

	hud := NewHUD()
	surface := newTermSurface(term, width, height, hud, logger)
	keys := newKeyTracker(session.Input)

	loop := engine.NewLoop(session, surface)
	loop.Yield = cfg.Yield.Duration
	loop.Logger = logger
	loop.OnFrame = func(fi engine.FrameInfo) {
		hud.Update(fi, session)
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("signal received", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	// Release keys for terminals that never report it
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				keys.Expire()
			}
		}
	}()

	// Event handler
	go func() {
		for ev := range term.Events() {
			if !handleEvent(ev, session, surface, keys, hud, logger) {
				cancel()
				return
			}
		}
	}()

	cleanup := func() {
		term.WriteString(ansi.PopKittyKeyboard(1))
		term.WriteString(ansi.ResetModeFocusEvent)
		term.WriteString(ansi.ResetModeMouseExtSgr)
		term.WriteString(ansi.ResetModeMouseAnyEvent)
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	err = loop.Run(ctx)
	cleanup()
	return err
}

// handleEvent routes one terminal event. It returns false when the user asks
// to quit.
func handleEvent(ev uv.Event, s *engine.Session, surface *termSurface, keys *keyTracker, hud *HUD, logger *log.Logger) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		surface.Resize(ev.Width, ev.Height)

	case uv.KeyboardEnhancementsEvent:
		keys.SetReleases(ev.SupportsKeyReleases())
		logger.Debug("keyboard enhancements", "flags", ev.Flags, "releases", ev.SupportsKeyReleases())

	case uv.BlurEvent:
		keys.Reset()

	case uv.KeyPressEvent:
		k := ev.Key()
		switch {
		case ev.MatchString("esc", "escape", "ctrl+c"):
			return false
		case ev.MatchString("x", "shift+x"):
			logger.Info("wireframe toggled", "on", s.ToggleWireframe())
		case ev.MatchString("r", "shift+r"):
			s.Input.Push(input.Event{Kind: input.Reset})
		case ev.MatchString("p", "shift+p"):
			surface.RequestScreenshot()
		case ev.MatchString("?", "shift+/"):
			hud.Toggle()
		default:
			if key, ok := movementKey(k); ok {
				keys.Press(key, shifted(k))
			}
		}

	case uv.KeyReleaseEvent:
		if key, ok := movementKey(ev.Key()); ok {
			keys.Release(key)
		}

	case uv.MouseClickEvent:
		if ev.Button == uv.MouseLeft {
			s.Input.Push(input.Event{Kind: input.MousePress, X: ev.X, Y: ev.Y})
		}

	case uv.MouseReleaseEvent:
		s.Input.Push(input.Event{Kind: input.MouseRelease, X: ev.X, Y: ev.Y})

	case uv.MouseMotionEvent:
		s.Input.Push(input.Event{Kind: input.MouseDrag, X: ev.X, Y: ev.Y})

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			s.Input.Push(input.Event{Kind: input.Wheel, Wheel: -1})
		case uv.MouseWheelDown:
			s.Input.Push(input.Event{Kind: input.Wheel, Wheel: 1})
		}
	}
	return true
}
