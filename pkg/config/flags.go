package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Flags binds the command-line options shared by every flycube host. Flags
// the user sets win over the config file; the rest leave it alone.
type Flags struct {
	fs *flag.FlagSet

	path      string
	wireframe bool
	speed     float64
	bg        string
	fill      string
	outline   string
	yield     time.Duration
	logFile   string
	logLevel  string
}

// BindFlags registers the shared options on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	def := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.path, "config", "", "Path to a TOML config file")
	fs.BoolVar(&f.wireframe, "wireframe", def.Wireframe, "Start in wireframe mode")
	fs.Float64Var(&f.speed, "speed", def.Speed, "Initial movement speed (units/s)")
	fs.StringVar(&f.bg, "bg", def.Background, "Background color (R,G,B)")
	fs.StringVar(&f.fill, "fill", def.Fill, "Face fill color (R,G,B)")
	fs.StringVar(&f.outline, "outline", def.Outline, "Face outline color (R,G,B)")
	fs.DurationVar(&f.yield, "yield", def.Yield.Duration, "Pause after each frame")
	fs.StringVar(&f.logFile, "log", def.LogFile, "Write logs to this file")
	fs.StringVar(&f.logLevel, "log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	return f
}

// Config loads the file named by -config, if any, applies explicitly set
// flags on top and validates the result once. A bad file value that a flag
// replaces is not an error. Call it after parsing.
func (f *Flags) Config() (Config, error) {
	cfg := Default()
	if f.path != "" {
		var err error
		if cfg, err = decodeFile(f.path); err != nil {
			return cfg, err
		}
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "wireframe":
			cfg.Wireframe = f.wireframe
		case "speed":
			cfg.Speed = f.speed
		case "bg":
			cfg.Background = f.bg
		case "fill":
			cfg.Fill = f.fill
		case "outline":
			cfg.Outline = f.outline
		case "yield":
			cfg.Yield.Duration = f.yield
		case "log":
			cfg.LogFile = f.logFile
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Logger opens the configured log file, or writes to fallback when none is
// set. The terminal host passes io.Discard since it owns the screen. The
// returned close func is never nil.
func (c Config) Logger(prefix string, fallback io.Writer) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}

	w := fallback
	closeFn := func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return logger, closeFn, nil
}
