package main

import (
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/flycube/pkg/engine"
	"github.com/taigrr/flycube/pkg/input"
	"github.com/taigrr/flycube/pkg/render"
)

// Button strip above the view
const (
	stripHeight = 32
	buttonLabel = "Toggle Wireframe"
)

var (
	stripColor  = render.RGB(40, 40, 48)
	buttonColor = render.RGB(70, 70, 84)
	buttonHot   = render.RGB(95, 95, 115)
	buttonEdge  = render.RGB(180, 180, 190)
)

// keyBindings maps window keys to fly controls.
var keyBindings = []struct {
	keys []ebiten.Key
	key  input.Key
}{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, input.KeyForward},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, input.KeyBack},
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, input.KeyLeft},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, input.KeyRight},
	{[]ebiten.Key{ebiten.KeyE}, input.KeyUp},
	{[]ebiten.Key{ebiten.KeyQ}, input.KeyDown},
	{[]ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight}, input.KeySprint},
}

// game adapts a Session to ebiten's Update/Draw cycle.
type game struct {
	session *engine.Session
	logger  *log.Logger

	view   *render.Framebuffer
	strip  *render.Framebuffer
	button image.Rectangle
	hot    bool

	viewImg  *ebiten.Image
	stripImg *ebiten.Image
	scratch  []byte

	held    map[input.Key]bool
	focused bool
	last    time.Time
	frames  uint64
}

func newGame(s *engine.Session, width, height int, logger *log.Logger) *game {
	bw := len(buttonLabel)*6 + 24
	return &game{
		session: s,
		logger:  logger,
		view:    render.NewFramebuffer(width, height),
		strip:   render.NewFramebuffer(width, stripHeight),
		button:  image.Rect((width-bw)/2, 4, (width+bw)/2, stripHeight-4),
		held:    make(map[input.Key]bool),
		focused: true,
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	in := g.session.Input

	if focused := ebiten.IsFocused(); focused != g.focused {
		g.focused = focused
		if !focused {
			clear(g.held)
			in.Release()
		}
	}

	for _, b := range keyBindings {
		down := false
		for _, k := range b.keys {
			down = down || ebiten.IsKeyPressed(k)
		}
		if down != g.held[b.key] {
			g.held[b.key] = down
			kind := input.KeyRelease
			if down {
				kind = input.KeyPress
			}
			in.Push(input.Event{Kind: kind, Key: b.key})
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		in.Push(input.Event{Kind: input.Reset})
	}

	x, y := ebiten.CursorPosition()
	pt := image.Pt(x, y)
	g.hot = pt.In(g.button)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case g.hot:
			g.logger.Info("wireframe toggled", "on", g.session.ToggleWireframe())
		case y >= stripHeight:
			in.Push(input.Event{Kind: input.MousePress, X: x, Y: y - stripHeight})
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.Push(input.Event{Kind: input.MouseRelease, X: x, Y: y - stripHeight})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		in.Push(input.Event{Kind: input.MouseDrag, X: x, Y: y - stripHeight})
	}

	// Wheel up is positive in ebiten; positive ticks here mean toward the user.
	if _, dy := ebiten.Wheel(); dy != 0 {
		in.Push(input.Event{Kind: input.Wheel, Wheel: -dy})
	}
	return nil
}

// Draw steps the session once per ebiten frame. ebiten paces frames to the
// display, so this host has no Yield sleep.
func (g *game) Draw(screen *ebiten.Image) {
	now := time.Now()
	var dt float64
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	g.session.Step(dt, g.view)
	g.frames++
	g.drawStrip()

	g.viewImg = blit(g.viewImg, g.view, &g.scratch)
	g.stripImg = blit(g.stripImg, g.strip, &g.scratch)

	screen.DrawImage(g.stripImg, nil)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, stripHeight)
	screen.DrawImage(g.viewImg, op)

	ebitenutil.DebugPrintAt(screen, buttonLabel, g.button.Min.X+12, g.button.Min.Y+4)
}

func (g *game) drawStrip() {
	g.strip.Clear(stripColor)
	fill := buttonColor
	if g.hot {
		fill = buttonHot
	}
	r := g.button
	g.strip.DrawRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), fill)
	g.strip.DrawRectOutline(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), buttonEdge)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.view.Width, g.view.Height + stripHeight
}

// blit copies fb into img, allocating img when the size changed.
func blit(img *ebiten.Image, fb *render.Framebuffer, scratch *[]byte) *ebiten.Image {
	if img == nil || img.Bounds().Dx() != fb.Width || img.Bounds().Dy() != fb.Height {
		if img != nil {
			img.Deallocate()
		}
		img = ebiten.NewImage(fb.Width, fb.Height)
	}

	buf := rgbaBytes((*scratch)[:0], fb)
	*scratch = buf
	img.WritePixels(buf)
	return img
}

// rgbaBytes appends fb's pixels to dst as packed RGBA.
func rgbaBytes(dst []byte, fb *render.Framebuffer) []byte {
	for _, c := range fb.Pixels {
		dst = append(dst, c.R, c.G, c.B, c.A)
	}
	return dst
}
