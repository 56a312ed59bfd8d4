// Package config holds flycube's tunables and loads them from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/flycube/pkg/engine"
	"github.com/taigrr/flycube/pkg/input"
	"github.com/taigrr/flycube/pkg/render"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration written as a string such as "2ms" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the full set of knobs. Zero values are not meaningful; start from
// Default.
type Config struct {
	// Movement
	Speed            float64 `toml:"speed"`
	MinSpeed         float64 `toml:"min_speed"`
	SpeedStep        float64 `toml:"speed_step"`
	SprintMultiplier float64 `toml:"sprint_multiplier"`
	Sensitivity      float64 `toml:"sensitivity"`

	// Projection
	Near        float64 `toml:"near"`
	Focal       float64 `toml:"focal"`
	DepthOffset float64 `toml:"depth_offset"`

	// Drawing, colors as "R,G,B"
	Background string `toml:"background"`
	Fill       string `toml:"fill"`
	Outline    string `toml:"outline"`
	Wireframe  bool   `toml:"wireframe"`

	// Loop
	Yield Duration `toml:"yield"`

	// Window host
	WindowWidth  int `toml:"window_width"`
	WindowHeight int `toml:"window_height"`

	// Logging
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Speed:            input.DefaultSpeed,
		MinSpeed:         input.DefaultMinSpeed,
		SpeedStep:        input.DefaultSpeedStep,
		SprintMultiplier: input.DefaultSprintMultiplier,
		Sensitivity:      input.DefaultSensitivity,

		Near:        render.DefaultNear,
		Focal:       render.DefaultFocal,
		DepthOffset: render.DefaultDepthOffset,

		Background: "0,0,0",
		Fill:       "255,255,255",
		Outline:    "15,25,130",

		Yield: Duration{engine.DefaultYield},

		WindowWidth:  800,
		WindowHeight: 600,

		LogLevel: "info",
	}
}

// Load reads a TOML file over the defaults and validates the result. Keys
// missing from the file keep their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decodeFile reads a TOML file over the defaults without validating it.
func decodeFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, fmt.Errorf("parse config %s:%d:%d: %w", path, row, col, err)
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value is usable.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.MinSpeed > 0, "min_speed must be positive, got %v", c.MinSpeed)
	check(c.Speed >= c.MinSpeed, "speed %v is below min_speed %v", c.Speed, c.MinSpeed)
	check(c.SpeedStep >= 0, "speed_step must not be negative, got %v", c.SpeedStep)
	check(c.SprintMultiplier >= 1, "sprint_multiplier must be at least 1, got %v", c.SprintMultiplier)
	check(c.Sensitivity > 0, "sensitivity must be positive, got %v", c.Sensitivity)
	check(c.Near > 0, "near must be positive, got %v", c.Near)
	check(c.Focal > 0, "focal must be positive, got %v", c.Focal)
	check(c.Near+c.DepthOffset > 0, "near + depth_offset must be positive, got %v", c.Near+c.DepthOffset)
	check(c.Yield.Duration >= 0, "yield must not be negative, got %v", c.Yield)
	check(c.WindowWidth > 0 && c.WindowHeight > 0, "window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)

	for name, s := range map[string]string{"background": c.Background, "fill": c.Fill, "outline": c.Outline} {
		if _, err := ParseColor(s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// ParseColor parses "R,G,B" with each component in 0..255.
func ParseColor(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("%w: color %q is not R,G,B", ErrInvalid, s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
		}
		rgb[i] = uint8(v)
	}
	return render.RGB(rgb[0], rgb[1], rgb[2]), nil
}

// Apply copies the configuration into a session.
func (c Config) Apply(s *engine.Session) error {
	bg, err := ParseColor(c.Background)
	if err != nil {
		return err
	}
	fill, err := ParseColor(c.Fill)
	if err != nil {
		return err
	}
	outline, err := ParseColor(c.Outline)
	if err != nil {
		return err
	}

	s.Renderer.Background = bg
	s.Renderer.Fill = fill
	s.Renderer.Outline = outline
	s.Renderer.Projector = render.Projector{
		Near:        c.Near,
		Focal:       c.Focal,
		DepthOffset: c.DepthOffset,
	}

	in := s.Input
	in.MinSpeed = c.MinSpeed
	in.SpeedStep = c.SpeedStep
	in.SprintMultiplier = c.SprintMultiplier
	in.Sensitivity = c.Sensitivity
	in.SetSpeed(c.Speed)

	s.SetWireframe(c.Wireframe)
	return nil
}
