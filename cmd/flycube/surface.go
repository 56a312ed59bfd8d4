package main

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/flycube/pkg/engine"
	"github.com/taigrr/flycube/pkg/render"
)

// termSurface presents frames on the terminal with half-block cells. It is
// driven from the loop goroutine; Resize and RequestScreenshot may be called
// from the event goroutine and take effect on the next frame.
type termSurface struct {
	*render.Framebuffer

	term   *uv.Terminal
	hud    *HUD
	logger *log.Logger

	mu      sync.Mutex
	pending *image.Point // terminal size in cells

	shot     atomic.Bool
	shotDir  string
	shotTime func() time.Time
}

var _ engine.Surface = (*termSurface)(nil)

func newTermSurface(term *uv.Terminal, cols, rows int, hud *HUD, logger *log.Logger) *termSurface {
	return &termSurface{
		Framebuffer: render.NewFramebuffer(render.TerminalFramebufferSize(cols, rows)),
		term:        term,
		hud:         hud,
		logger:      logger,
		shotDir:     ".",
		shotTime:    time.Now,
	}
}

// Resize records a new terminal size.
func (s *termSurface) Resize(cols, rows int) {
	s.mu.Lock()
	s.pending = &image.Point{X: cols, Y: rows}
	s.mu.Unlock()
}

// RequestScreenshot saves the next presented frame as a PNG.
func (s *termSurface) RequestScreenshot() {
	s.shot.Store(true)
}

// Size applies any pending resize, then reports the framebuffer size. The
// renderer calls it once at the start of every frame.
func (s *termSurface) Size() (width, height int) {
	s.mu.Lock()
	p := s.pending
	s.pending = nil
	s.mu.Unlock()

	if p != nil {
		s.term.Erase()
		if err := s.term.Resize(p.X, p.Y); err != nil {
			s.logger.Warn("resize terminal", "err", err)
		}
		s.Framebuffer.Resize(render.TerminalFramebufferSize(p.X, p.Y))
		s.logger.Debug("resized", "cols", p.X, "rows", p.Y)
	}
	return s.Framebuffer.Size()
}

// Present draws the framebuffer and HUD and flushes them to the terminal.
func (s *termSurface) Present() error {
	if s.shot.CompareAndSwap(true, false) {
		s.screenshot()
	}

	s.term.Draw(s.Framebuffer)
	if s.hud != nil {
		s.hud.Draw(s.term, s.term.Bounds())
	}
	if err := s.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

func (s *termSurface) screenshot() {
	name := filepath.Join(s.shotDir, "flycube-"+s.shotTime().Format("20060102-150405.000")+".png")
	if err := s.SavePNG(name); err != nil {
		s.logger.Error("screenshot failed", "err", err)
		return
	}
	s.logger.Info("screenshot saved", "path", name, "width", s.Width, "height", s.Height)
}
