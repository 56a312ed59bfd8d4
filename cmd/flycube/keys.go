package main

import (
	"strings"
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/flycube/pkg/input"
)

// movementKey maps a terminal key to a fly control. Shifted letters match
// too, since most terminals report shift+w as "W".
func movementKey(k uv.Key) (input.Key, bool) {
	switch {
	case k.Code == uv.KeyLeftShift || k.Code == uv.KeyRightShift:
		return input.KeySprint, true
	case k.MatchString("w", "shift+w", "up", "shift+up"):
		return input.KeyForward, true
	case k.MatchString("s", "shift+s", "down", "shift+down"):
		return input.KeyBack, true
	case k.MatchString("a", "shift+a", "left", "shift+left"):
		return input.KeyLeft, true
	case k.MatchString("d", "shift+d", "right", "shift+right"):
		return input.KeyRight, true
	case k.MatchString("e", "shift+e"):
		return input.KeyUp, true
	case k.MatchString("q", "shift+q"):
		return input.KeyDown, true
	}
	return input.KeyNone, false
}

// shifted reports whether k was typed with shift held.
func shifted(k uv.Key) bool {
	return k.Mod.Contains(uv.ModShift) || (k.Text != "" && strings.ToLower(k.Text) != k.Text)
}

// Hold windows for terminals that never report key releases. The first
// press must outlast the keyboard's autorepeat delay; after that, repeats
// arrive quickly.
const (
	firstHold  = 550 * time.Millisecond
	repeatHold = 120 * time.Millisecond
)

type heldKey struct {
	last    time.Time
	repeats int
}

// keyTracker turns terminal key events into held-key state. When the
// terminal reports releases it forwards them as is. Otherwise each key is
// released once it has been quiet for its hold window.
type keyTracker struct {
	in  *input.Controller
	now func() time.Time

	mu       sync.Mutex
	releases bool
	held     map[input.Key]*heldKey
}

func newKeyTracker(in *input.Controller) *keyTracker {
	return &keyTracker{
		in:   in,
		now:  time.Now,
		held: make(map[input.Key]*heldKey),
	}
}

// SetReleases records whether the terminal reports key releases.
func (t *keyTracker) SetReleases(ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.releases = ok
}

// Press handles a key press. shift reports whether shift was held with it.
func (t *keyTracker) Press(k input.Key, shift bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.press(k)
	// Without release events a lone shift press is never seen; treat a
	// shifted movement key as sprinting for as long as it is held.
	if !t.releases && k != input.KeySprint {
		if shift {
			t.press(input.KeySprint)
		} else if _, ok := t.held[input.KeySprint]; ok {
			delete(t.held, input.KeySprint)
			t.in.Push(input.Event{Kind: input.KeyRelease, Key: input.KeySprint})
		}
	}
}

func (t *keyTracker) press(k input.Key) {
	if h, ok := t.held[k]; ok {
		h.last = t.now()
		h.repeats++
		return
	}
	t.held[k] = &heldKey{last: t.now()}
	t.in.Push(input.Event{Kind: input.KeyPress, Key: k})
}

// Release handles a key release report.
func (t *keyTracker) Release(k input.Key) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.releases = true
	delete(t.held, k)
	t.in.Push(input.Event{Kind: input.KeyRelease, Key: k})
}

// Expire releases keys whose hold window has passed. It does nothing when
// the terminal reports releases itself.
func (t *keyTracker) Expire() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.releases {
		return
	}
	now := t.now()
	for k, h := range t.held {
		window := firstHold
		if h.repeats > 0 {
			window = repeatHold
		}
		if now.Sub(h.last) >= window {
			delete(t.held, k)
			t.in.Push(input.Event{Kind: input.KeyRelease, Key: k})
		}
	}
}

// Reset forgets every held key, as on focus loss.
func (t *keyTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.held)
	t.in.Release()
}
