package render

import "image"

// Canvas is the drawing surface a frame is rendered onto. Its size may change
// between frames, so it is read again every frame.
type Canvas interface {
	Size() (width, height int)
	Clear(c Color)
	FillTriangle(pts [3]image.Point, c Color)
	StrokeTriangle(pts [3]image.Point, c Color)
}

var _ Canvas = (*Framebuffer)(nil)
