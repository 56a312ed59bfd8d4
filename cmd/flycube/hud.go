package main

import (
	"fmt"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/flycube/pkg/engine"
	"github.com/taigrr/flycube/pkg/math3d"
)

// HUD colors
var (
	hudBg     = color.RGBA{0, 0, 0, 255}
	hudWhite  = color.RGBA{235, 235, 235, 255}
	hudGreen  = color.RGBA{90, 230, 120, 255}
	hudCyan   = color.RGBA{90, 210, 230, 255}
	hudYellow = color.RGBA{240, 220, 90, 255}
)

// readout eases a noisy value toward its latest sample with a critically
// damped spring, so numbers settle instead of flickering.
type readout struct {
	value float64
	vel   float64
	init  bool
}

func (r *readout) update(sample float64, dt time.Duration) {
	if !r.init {
		r.value, r.init = sample, true
		return
	}
	// Frequency 3.0 = settles in about a third of a second, damping 1.0 = no overshoot
	spring := harmonica.NewSpring(dt.Seconds(), 3.0, 1.0)
	r.value, r.vel = spring.Update(r.value, r.vel, sample)
}

// HUD renders an overlay with frame rate, speed and mode status
type HUD struct {
	visible atomic.Bool

	fps   readout
	speed readout

	faces     int
	drawn     int
	wireframe bool
	pos       math3d.Vec3
	dist      float64 // camera to cube centre
}

// NewHUD creates a hidden HUD
func NewHUD() *HUD {
	return &HUD{}
}

// Toggle shows or hides the overlay and returns the new state. It is safe
// to call from the event goroutine.
func (h *HUD) Toggle() bool {
	for {
		old := h.visible.Load()
		if h.visible.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Visible reports whether the overlay is drawn.
func (h *HUD) Visible() bool { return h.visible.Load() }

// Update feeds one finished frame into the readouts.
func (h *HUD) Update(fi engine.FrameInfo, s *engine.Session) {
	if fi.DT > 0 {
		h.fps.update(1/fi.DT.Seconds(), fi.DT)
	}
	h.speed.update(s.Input.Speed(), fi.DT)
	h.faces = fi.Stats.Faces
	h.drawn = fi.Stats.Drawn
	h.wireframe = s.Wireframe()
	h.pos = s.Camera.Position
	h.dist = h.pos.Distance(s.Mesh.Center())
}

// FPS returns the smoothed frame rate.
func (h *HUD) FPS() float64 { return h.fps.value }

// Speed returns the smoothed movement speed.
func (h *HUD) Speed() float64 { return h.speed.value }

// Draw writes the overlay onto the top and bottom rows of area.
// It implements uv.Drawable.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle) {
	if !h.Visible() || area.Dy() < 2 {
		return
	}
	top, bottom := area.Min.Y, area.Max.Y-1
	width := area.Dx()

	// Top left: FPS
	putText(scr, area.Min.X, top, fmt.Sprintf(" %.0f FPS ", h.FPS()), hudGreen)

	// Top middle: title
	title := " flycube "
	putText(scr, area.Min.X+max((width-len(title))/2, 0), top, title, hudWhite)

	// Top right: face count
	faces := fmt.Sprintf(" %d/%d faces ", h.drawn, h.faces)
	putText(scr, area.Min.X+max(width-len(faces), 0), top, faces, hudCyan)

	// Bottom: mode and motion
	check := "[ ]"
	if h.wireframe {
		check = "[x]"
	}
	status := fmt.Sprintf(" %s Wireframe (x)  speed %.1f  pos %.1f,%.1f,%.1f  dist %.1f ",
		check, h.Speed(), h.pos.X, h.pos.Y, h.pos.Z, h.dist)
	putText(scr, area.Min.X, bottom, status, hudWhite)

	hint := " r: reset  p: shot  esc: quit "
	if col := width - len(hint); col > len(status) {
		putText(scr, area.Min.X+col, bottom, hint, hudYellow)
	}
}

// putText writes single-width text starting at (x, y).
func putText(scr uv.Screen, x, y int, s string, fg color.Color) {
	bounds := scr.Bounds()
	for _, r := range s {
		if x >= bounds.Max.X {
			return
		}
		scr.SetCell(x, y, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: fg, Bg: hudBg},
		})
		x++
	}
}
