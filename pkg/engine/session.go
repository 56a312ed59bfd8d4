// Package engine drives flycube frame by frame: it advances input, renders
// the cube and hands each frame to a host surface.
package engine

import (
	"sync/atomic"

	"github.com/taigrr/flycube/pkg/input"
	"github.com/taigrr/flycube/pkg/models"
	"github.com/taigrr/flycube/pkg/render"
)

// Session holds everything one viewer needs between frames.
type Session struct {
	Camera   *render.Camera
	Input    *input.Controller
	Renderer *render.Renderer
	Mesh     *models.Mesh

	wireframe atomic.Bool
}

// NewSession creates a session showing the shared cube from the default
// camera pose.
func NewSession() *Session {
	return &Session{
		Camera:   render.NewCamera(),
		Input:    input.NewController(),
		Renderer: render.NewRenderer(),
		Mesh:     models.Cube(),
	}
}

// ToggleWireframe flips between filled and outline-only drawing and returns
// the new state. It is safe to call from any goroutine.
func (s *Session) ToggleWireframe() bool {
	for {
		old := s.wireframe.Load()
		if s.wireframe.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetWireframe sets the drawing mode.
func (s *Session) SetWireframe(on bool) {
	s.wireframe.Store(on)
}

// Wireframe reports whether faces are drawn as outlines only.
func (s *Session) Wireframe() bool {
	return s.wireframe.Load()
}

// Update applies pending input and moves the camera for dt seconds.
func (s *Session) Update(dt float64) {
	s.Input.Update(s.Camera, dt)
}

// Step advances one frame and draws it onto canvas.
func (s *Session) Step(dt float64, canvas render.Canvas) render.Stats {
	s.Update(dt)
	return s.Renderer.Render(canvas, s.Mesh, s.Camera, s.Wireframe())
}
