package render

import (
	"cmp"
	"image"
	"slices"

	"github.com/taigrr/flycube/pkg/math3d"
)

// Mesh is the geometry a Renderer draws.
type Mesh interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) [3]int
}

// Triangle is a projected face ready to draw.
type Triangle struct {
	A, B, C ScreenPoint
}

// Depth returns the average depth of the three corners.
func (t Triangle) Depth() float64 {
	return (t.A.Depth + t.B.Depth + t.C.Depth) / 3
}

// Points returns the corners truncated to integer pixel coordinates.
func (t Triangle) Points() [3]image.Point {
	return [3]image.Point{
		{X: int(t.A.X), Y: int(t.A.Y)},
		{X: int(t.B.X), Y: int(t.B.Y)},
		{X: int(t.C.X), Y: int(t.C.Y)},
	}
}

// Stats describes what happened to a mesh's faces in one frame.
type Stats struct {
	Faces  int // Faces in the mesh
	Culled int // Faces entirely behind the near plane, or with a non-finite corner
	Drawn  int // Triangles drawn
}

// Renderer draws a mesh with the painter's algorithm: faces are projected,
// sorted far to near, and drawn in that order. There is no depth buffer.
type Renderer struct {
	Projector  Projector
	Background Color
	Fill       Color
	Outline    Color

	tris []Triangle // reused between frames
}

// NewRenderer creates a renderer with the default projector and colors.
func NewRenderer() *Renderer {
	return &Renderer{
		Projector:  NewProjector(),
		Background: ColorBlack,
		Fill:       ColorWhite,
		Outline:    ColorNavy,
	}
}

// Project transforms every face of mesh into camera space, drops faces that
// lie entirely behind the near plane or have a NaN or infinite corner, and
// projects the rest onto a width x height viewport. The result is appended
// to dst in face order.
func (r *Renderer) Project(dst []Triangle, mesh Mesh, cam *Camera, width, height int) (tris []Triangle, culled int) {
	view := cam.ViewMatrix()
	p := r.Projector

	for i := range mesh.TriangleCount() {
		f := mesh.GetFace(i)
		a := view.MulVec3(mesh.GetVertex(f[0]))
		b := view.MulVec3(mesh.GetVertex(f[1]))
		c := view.MulVec3(mesh.GetVertex(f[2]))

		if !a.IsFinite() || !b.IsFinite() || !c.IsFinite() || p.Culled(a, b, c) {
			culled++
			continue
		}

		dst = append(dst, Triangle{
			A: p.Project(a, width, height),
			B: p.Project(b, width, height),
			C: p.Project(c, width, height),
		})
	}
	return dst, culled
}

// SortByDepth orders triangles farthest first. The sort is stable, so
// triangles of equal depth keep their face order.
func SortByDepth(tris []Triangle) {
	slices.SortStableFunc(tris, func(a, b Triangle) int {
		return cmp.Compare(b.Depth(), a.Depth())
	})
}

// Draw paints triangles in order. Each is filled unless wireframe is set,
// and always outlined.
func (r *Renderer) Draw(canvas Canvas, tris []Triangle, wireframe bool) {
	for _, t := range tris {
		pts := t.Points()
		if !wireframe {
			canvas.FillTriangle(pts, r.Fill)
		}
		canvas.StrokeTriangle(pts, r.Outline)
	}
}

// Render clears canvas and draws one frame of mesh as seen by cam.
func (r *Renderer) Render(canvas Canvas, mesh Mesh, cam *Camera, wireframe bool) Stats {
	width, height := canvas.Size()
	canvas.Clear(r.Background)

	var culled int
	r.tris, culled = r.Project(r.tris[:0], mesh, cam, width, height)
	SortByDepth(r.tris)
	r.Draw(canvas, r.tris, wireframe)

	return Stats{
		Faces:  mesh.TriangleCount(),
		Culled: culled,
		Drawn:  len(r.tris),
	}
}
