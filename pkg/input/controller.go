// Package input turns a stream of host events into fly-camera motion.
//
// Hosts push events from their own goroutine with Controller.Push. The render
// loop drains them once per frame with Controller.Update, which is the only
// place the camera is mutated.
package input

import (
	"sync"

	"github.com/taigrr/flycube/pkg/math3d"
	"github.com/taigrr/flycube/pkg/render"
)

// Key is a logical control, independent of any physical keyboard layout.
type Key int

const (
	KeyNone    Key = iota
	KeyForward     // W
	KeyBack        // S
	KeyLeft        // A
	KeyRight       // D
	KeyUp          // E
	KeyDown        // Q
	KeySprint      // Shift
)

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBack:
		return "back"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeySprint:
		return "sprint"
	}
	return "none"
}

// Kind identifies what an Event carries.
type Kind int

const (
	KeyPress     Kind = iota // Key pressed
	KeyRelease               // Key released
	MousePress               // Button down at (X, Y)
	MouseRelease             // Button up
	MouseDrag                // Pointer moved to (X, Y)
	Wheel                    // Wheel moved by Wheel ticks, positive toward the user
	Blur                     // Focus lost: release every key and end the drag
	Reset                    // Return the camera to its start pose
)

// Event is one discrete input from the host.
type Event struct {
	Kind  Kind
	Key   Key
	X, Y  int
	Wheel float64
}

// Defaults for a new Controller.
const (
	DefaultSpeed            = 4.0
	DefaultMinSpeed         = 0.5
	DefaultSpeedStep        = 0.5
	DefaultSensitivity      = 0.006
	DefaultSprintMultiplier = 3.0
)

// Controller owns held keys, drag state and movement speed.
type Controller struct {
	Sensitivity      float64 // Radians per pixel of drag
	SpeedStep        float64 // Speed change per wheel tick
	MinSpeed         float64 // Speed floor
	SprintMultiplier float64 // Movement scale while KeySprint is held

	mu    sync.Mutex
	queue []Event

	// Touched only by Update and the accessors on the loop goroutine.
	held         map[Key]bool
	dragging     bool
	lastX, lastY int
	speed        float64
}

// NewController creates a controller with default tuning.
func NewController() *Controller {
	return &Controller{
		Sensitivity:      DefaultSensitivity,
		SpeedStep:        DefaultSpeedStep,
		MinSpeed:         DefaultMinSpeed,
		SprintMultiplier: DefaultSprintMultiplier,
		held:             make(map[Key]bool),
		speed:            DefaultSpeed,
	}
}

// Push queues an event. It is safe to call from any goroutine.
func (c *Controller) Push(ev Event) {
	c.mu.Lock()
	c.queue = append(c.queue, ev)
	c.mu.Unlock()
}

// Update applies queued events in arrival order, then moves cam by the held
// keys for a frame of dt seconds.
func (c *Controller) Update(cam *render.Camera, dt float64) {
	c.mu.Lock()
	events := c.queue
	c.queue = nil
	c.mu.Unlock()

	for _, ev := range events {
		c.apply(cam, ev)
	}
	c.move(cam, dt)
}

func (c *Controller) apply(cam *render.Camera, ev Event) {
	switch ev.Kind {
	case KeyPress:
		c.held[ev.Key] = true
	case KeyRelease:
		delete(c.held, ev.Key)
	case MousePress:
		c.dragging = true
		c.lastX, c.lastY = ev.X, ev.Y
	case MouseRelease:
		c.dragging = false
	case MouseDrag:
		if !c.dragging {
			return
		}
		dx := float64(ev.X - c.lastX)
		dy := float64(ev.Y - c.lastY)
		c.lastX, c.lastY = ev.X, ev.Y
		cam.Rotate(dx*c.Sensitivity, dy*c.Sensitivity)
	case Wheel:
		c.speed = max(c.speed-ev.Wheel*c.SpeedStep, c.MinSpeed)
	case Blur:
		clear(c.held)
		c.dragging = false
	case Reset:
		cam.Reset()
	}
}

func (c *Controller) move(cam *render.Camera, dt float64) {
	d := c.speed * dt
	if c.held[KeySprint] {
		d *= c.SprintMultiplier
	}

	fwd := cam.Forward()
	right := cam.Right()

	if c.held[KeyForward] {
		cam.Move(fwd.Scale(d))
	}
	if c.held[KeyBack] {
		cam.Move(fwd.Scale(-d))
	}
	if c.held[KeyLeft] {
		cam.Move(right.Scale(-d))
	}
	if c.held[KeyRight] {
		cam.Move(right.Scale(d))
	}
	if c.held[KeyUp] {
		cam.Move(math3d.Up().Scale(d))
	}
	if c.held[KeyDown] {
		cam.Move(math3d.Up().Scale(-d))
	}
}

// Release queues a Blur event. Hosts call it when focus is lost so the
// camera does not keep flying.
func (c *Controller) Release() {
	c.Push(Event{Kind: Blur})
}

// Speed returns the current movement speed in units per second.
func (c *Controller) Speed() float64 { return c.speed }

// SetSpeed sets movement speed, respecting the floor. Like Update, it must
// only be called from the loop goroutine.
func (c *Controller) SetSpeed(s float64) { c.speed = max(s, c.MinSpeed) }

// Dragging reports whether a mouse drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// Held reports whether k is currently held.
func (c *Controller) Held(k Key) bool { return c.held[k] }
