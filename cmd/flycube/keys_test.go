package main

import (
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/flycube/pkg/input"
	"github.com/taigrr/flycube/pkg/render"
)

func TestMovementKey(t *testing.T) {
	tests := []struct {
		name string
		key  uv.Key
		want input.Key
	}{
		{"w", uv.Key{Code: 'w', Text: "w"}, input.KeyForward},
		{"shifted W", uv.Key{Code: 'w', Mod: uv.ModShift, Text: "W"}, input.KeyForward},
		{"up arrow", uv.Key{Code: uv.KeyUp}, input.KeyForward},
		{"s", uv.Key{Code: 's', Text: "s"}, input.KeyBack},
		{"down arrow", uv.Key{Code: uv.KeyDown}, input.KeyBack},
		{"a", uv.Key{Code: 'a', Text: "a"}, input.KeyLeft},
		{"left arrow", uv.Key{Code: uv.KeyLeft}, input.KeyLeft},
		{"d", uv.Key{Code: 'd', Text: "d"}, input.KeyRight},
		{"right arrow", uv.Key{Code: uv.KeyRight}, input.KeyRight},
		{"e", uv.Key{Code: 'e', Text: "e"}, input.KeyUp},
		{"q", uv.Key{Code: 'q', Text: "q"}, input.KeyDown},
		{"left shift", uv.Key{Code: uv.KeyLeftShift, Mod: uv.ModShift}, input.KeySprint},
		{"right shift", uv.Key{Code: uv.KeyRightShift, Mod: uv.ModShift}, input.KeySprint},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := movementKey(tc.key)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, k := range []uv.Key{{Code: 'x', Text: "x"}, {Code: 'r', Text: "r"}, {Code: uv.KeyEscape}} {
		_, ok := movementKey(k)
		assert.False(t, ok, "key %v", k)
	}
}

// trackerClock is a settable clock for keyTracker.
type trackerClock struct{ t time.Time }

func (c *trackerClock) now() time.Time { return c.t }
func (c *trackerClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker() (*keyTracker, *input.Controller, *trackerClock) {
	in := input.NewController()
	tr := newKeyTracker(in)
	clk := &trackerClock{t: time.Unix(100, 0)}
	tr.now = clk.now
	return tr, in, clk
}

func held(in *input.Controller, k input.Key) bool {
	in.Update(&render.Camera{}, 0)
	return in.Held(k)
}

func TestTrackerAutoReleaseFirstPress(t *testing.T) {
	tr, in, clk := newTestTracker()

	tr.Press(input.KeyForward, false)
	assert.True(t, held(in, input.KeyForward))

	clk.advance(firstHold - time.Millisecond)
	tr.Expire()
	assert.True(t, held(in, input.KeyForward), "still inside the first hold window")

	clk.advance(time.Millisecond)
	tr.Expire()
	assert.False(t, held(in, input.KeyForward))
}

func TestTrackerAutoReleaseAfterRepeats(t *testing.T) {
	tr, in, clk := newTestTracker()

	tr.Press(input.KeyLeft, false)
	clk.advance(400 * time.Millisecond)
	tr.Press(input.KeyLeft, false) // autorepeat
	clk.advance(repeatHold)
	tr.Expire()

	assert.False(t, held(in, input.KeyLeft))
}

func TestTrackerShiftedKeySprints(t *testing.T) {
	tr, in, clk := newTestTracker()

	tr.Press(input.KeyForward, true)
	assert.True(t, held(in, input.KeySprint))

	// Letting go of shift while still holding the key shows up as an
	// unshifted repeat.
	clk.advance(30 * time.Millisecond)
	tr.Press(input.KeyForward, false)
	assert.False(t, held(in, input.KeySprint))
	assert.True(t, held(in, input.KeyForward))
}

func TestTrackerWithReleaseReports(t *testing.T) {
	tr, in, clk := newTestTracker()
	tr.SetReleases(true)

	tr.Press(input.KeyBack, false)
	clk.advance(time.Minute)
	tr.Expire()
	assert.True(t, held(in, input.KeyBack), "no auto-release when releases are reported")

	tr.Release(input.KeyBack)
	assert.False(t, held(in, input.KeyBack))
}

func TestTrackerReleaseEventEnablesReports(t *testing.T) {
	tr, in, clk := newTestTracker()

	tr.Press(input.KeyUp, false)
	tr.Release(input.KeyUp)
	tr.Press(input.KeyUp, false)
	clk.advance(time.Minute)
	tr.Expire()

	assert.True(t, held(in, input.KeyUp))
}

func TestTrackerReset(t *testing.T) {
	tr, in, _ := newTestTracker()
	tr.Press(input.KeyRight, true)
	tr.Reset()

	assert.False(t, held(in, input.KeyRight))
	assert.False(t, held(in, input.KeySprint))
}
