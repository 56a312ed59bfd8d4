package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/taigrr/flycube/pkg/render"
)

// DefaultYield is the pause after each frame. It throttles the loop so it
// does not spin a core; it does not fix the frame rate.
const DefaultYield = 2 * time.Millisecond

// ErrRunning is returned by Run when the loop is already running.
var ErrRunning = errors.New("loop already running")

// Surface is a canvas that can show a finished frame.
type Surface interface {
	render.Canvas
	Present() error
}

// FrameInfo describes one finished frame.
type FrameInfo struct {
	Frame uint64        // Frames presented so far, starting at 1
	DT    time.Duration // Time since the previous frame
	Stats render.Stats
}

// Loop runs a Session against a Surface until stopped.
type Loop struct {
	Session *Session
	Surface Surface
	Yield   time.Duration
	Logger  *log.Logger

	// OnFrame, if set, is called on the loop goroutine after each Present.
	OnFrame func(FrameInfo)

	now     func() time.Time
	sleep   func(time.Duration)
	running atomic.Bool
	stop    atomic.Bool
}

// NewLoop creates a loop with the default yield and a discarding logger.
func NewLoop(s *Session, surface Surface) *Loop {
	return &Loop{
		Session: s,
		Surface: surface,
		Yield:   DefaultYield,
		Logger:  log.New(io.Discard),
	}
}

// Run draws frames until ctx is done, Stop is called, or the surface fails
// to present. Only a present failure is returned as an error, plus
// ErrRunning when another Run is in progress.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer func() {
		l.stop.Store(false)
		l.running.Store(false)
	}()

	now := l.now
	if now == nil {
		now = time.Now
	}
	sleep := l.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	logger := l.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	logger.Info("loop started", "yield", l.Yield)

	var frame uint64
	last := now()
	for !l.stop.Load() {
		if err := ctx.Err(); err != nil {
			break
		}

		t := now()
		dt := t.Sub(last)
		last = t

		stats := l.Session.Step(dt.Seconds(), l.Surface)
		if err := l.Surface.Present(); err != nil {
			logger.Error("present failed", "frame", frame+1, "err", err)
			return fmt.Errorf("present frame: %w", err)
		}
		frame++

		if l.OnFrame != nil {
			l.OnFrame(FrameInfo{Frame: frame, DT: dt, Stats: stats})
		}

		if l.Yield > 0 {
			sleep(l.Yield)
		}
	}

	logger.Info("loop stopped", "frames", frame)
	return nil
}

// Stop asks the loop to return after the current frame. A Stop that lands
// before Run starts makes that Run return without drawing. It is safe to
// call from any goroutine.
func (l *Loop) Stop() {
	l.stop.Store(true)
}
