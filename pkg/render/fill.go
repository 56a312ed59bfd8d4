package render

import (
	"image"
	"math"
)

// edgeCoeffs returns A, B, C for the edge function edge(x,y) = A*x + B*y + C.
// Positive = left of edge, negative = right of edge, zero = on edge.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// FillTriangle fills the triangle with corners pts. A pixel is filled when its
// center lies inside or on an edge. Either winding is accepted and degenerate
// triangles draw nothing.
func (fb *Framebuffer) FillTriangle(pts [3]image.Point, c Color) {
	x0, y0 := float64(pts[0].X), float64(pts[0].Y)
	x1, y1 := float64(pts[1].X), float64(pts[1].Y)
	x2, y2 := float64(pts[2].X), float64(pts[2].Y)

	area := (x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)
	if area == 0 {
		return
	}

	// Normalize to one winding so "inside" is always >= 0.
	if area < 0 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	A0, B0, C0 := edgeCoeffs(x1, y1, x2, y2)
	A1, B1, C1 := edgeCoeffs(x2, y2, x0, y0)
	A2, B2, C2 := edgeCoeffs(x0, y0, x1, y1)

	// Bounding box (clamped to framebuffer)
	minX := int(math.Max(0, math.Floor(min3(x0, x1, x2))))
	maxX := int(math.Min(float64(fb.Width-1), math.Ceil(max3(x0, x1, x2))))
	minY := int(math.Max(0, math.Floor(min3(y0, y1, y2))))
	maxY := int(math.Min(float64(fb.Height-1), math.Ceil(max3(y0, y1, y2))))
	if minX > maxX || minY > maxY {
		return
	}

	startX := float64(minX) + 0.5
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5

		// Incremental edge values along the row.
		w0 := edgeFunc(A0, B0, C0, startX, py)
		w1 := edgeFunc(A1, B1, C1, startX, py)
		w2 := edgeFunc(A2, B2, C2, startX, py)

		row := y * fb.Width
		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				fb.Pixels[row+x] = c
			}
			w0 += A0
			w1 += A1
			w2 += A2
		}
	}
}

// StrokeTriangle draws the three edges of the triangle with corners pts.
func (fb *Framebuffer) StrokeTriangle(pts [3]image.Point, c Color) {
	fb.DrawLine(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, c)
	fb.DrawLine(pts[1].X, pts[1].Y, pts[2].X, pts[2].Y, c)
	fb.DrawLine(pts[2].X, pts[2].Y, pts[0].X, pts[0].Y, c)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
