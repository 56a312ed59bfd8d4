package render

import (
	"image"
	"math"
	"testing"

	"github.com/taigrr/flycube/pkg/math3d"
)

// recordingCanvas records draw calls in order.
type recordingCanvas struct {
	w, h  int
	calls []drawCall
}

type drawCall struct {
	op    string
	pts   [3]image.Point
	color Color
}

func (c *recordingCanvas) Size() (int, int) { return c.w, c.h }
func (c *recordingCanvas) Clear(col Color) {
	c.calls = append(c.calls, drawCall{op: "clear", color: col})
}
func (c *recordingCanvas) FillTriangle(pts [3]image.Point, col Color) {
	c.calls = append(c.calls, drawCall{op: "fill", pts: pts, color: col})
}
func (c *recordingCanvas) StrokeTriangle(pts [3]image.Point, col Color) {
	c.calls = append(c.calls, drawCall{op: "stroke", pts: pts, color: col})
}

// testMesh implements Mesh for testing.
type testMesh struct {
	vertices []math3d.Vec3
	faces    [][3]int
}

func (m *testMesh) VertexCount() int { return len(m.vertices) }
func (m *testMesh) TriangleCount() int { return len(m.faces) }
func (m *testMesh) GetVertex(i int) math3d.Vec3 { return m.vertices[i] }
func (m *testMesh) GetFace(i int) [3]int { return m.faces[i] }

func flatTriangle(z float64) []math3d.Vec3 {
	return []math3d.Vec3{
		math3d.V3(-1, -1, z),
		math3d.V3(1, -1, z),
		math3d.V3(0, 1, z),
	}
}

func triAtDepth(d float64) Triangle {
	return Triangle{
		A: ScreenPoint{Depth: d},
		B: ScreenPoint{Depth: d},
		C: ScreenPoint{Depth: d},
	}
}

func TestSortByDepthDescending(t *testing.T) {
	tris := []Triangle{triAtDepth(5), triAtDepth(1), triAtDepth(3)}
	SortByDepth(tris)

	want := []float64{5, 3, 1}
	for i, tri := range tris {
		if tri.Depth() != want[i] {
			t.Errorf("tris[%d].Depth() = %v, want %v", i, tri.Depth(), want[i])
		}
	}
}

func TestSortByDepthStable(t *testing.T) {
	tris := []Triangle{triAtDepth(2), triAtDepth(7), triAtDepth(2), triAtDepth(2)}
	for i := range tris {
		tris[i].A.X = float64(i) // tag input position
	}
	SortByDepth(tris)

	wantTags := []float64{1, 0, 2, 3}
	for i, tri := range tris {
		if tri.A.X != wantTags[i] {
			t.Errorf("position %d holds triangle %v, want %v", i, tri.A.X, wantTags[i])
		}
	}
}

func TestTriangleDepthIsAverage(t *testing.T) {
	tri := Triangle{A: ScreenPoint{Depth: 1}, B: ScreenPoint{Depth: 2}, C: ScreenPoint{Depth: 6}}
	if tri.Depth() != 3 {
		t.Errorf("Depth() = %v, want 3", tri.Depth())
	}
}

func TestTrianglePointsTruncate(t *testing.T) {
	tri := Triangle{
		A: ScreenPoint{X: 1.9, Y: 2.99},
		B: ScreenPoint{X: -0.5, Y: 10.5},
		C: ScreenPoint{X: 7, Y: 0.1},
	}
	want := [3]image.Point{{1, 2}, {0, 10}, {7, 0}}
	if got := tri.Points(); got != want {
		t.Errorf("Points() = %v, want %v", got, want)
	}
}

func TestProjectCullsFacesBehindNearPlane(t *testing.T) {
	r := NewRenderer()
	cam := &Camera{}
	near := r.Projector.Near

	mesh := &testMesh{
		vertices: append(flatTriangle(near-1), math3d.V3(0, 0, near+1)),
		faces: [][3]int{
			{0, 1, 2}, // entirely behind
			{0, 1, 3}, // one vertex in front
		},
	}

	tris, culled := r.Project(nil, mesh, cam, 100, 100)
	if culled != 1 {
		t.Errorf("culled = %d, want 1", culled)
	}
	if len(tris) != 1 {
		t.Fatalf("len(tris) = %d, want 1", len(tris))
	}
	// The two behind-plane vertices are clamped; the front one keeps its depth.
	if tris[0].A.Depth != near || tris[0].B.Depth != near || tris[0].C.Depth != near+1 {
		t.Errorf("depths = %v %v %v", tris[0].A.Depth, tris[0].B.Depth, tris[0].C.Depth)
	}
}

func TestProjectSkipsNonFiniteFaces(t *testing.T) {
	r := NewRenderer()
	cam := NewCamera()
	mesh := &testMesh{
		vertices: []math3d.Vec3{
			math3d.V3(-1, -1, 0), math3d.V3(1, -1, 0), math3d.V3(0, 1, 0),
			math3d.V3(math.NaN(), 0, 0), math3d.V3(0, math.Inf(1), 0),
		},
		faces: [][3]int{{0, 1, 2}, {0, 1, 3}, {4, 1, 2}},
	}

	tris, culled := r.Project(nil, mesh, cam, 800, 600)
	if culled != 2 {
		t.Errorf("culled = %d, want 2", culled)
	}
	if len(tris) != 1 {
		t.Fatalf("got %d triangles, want 1", len(tris))
	}
	for _, p := range []ScreenPoint{tris[0].A, tris[0].B, tris[0].C} {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("projected point %+v is not finite", p)
		}
	}
}

func TestRenderNaNCameraDrawsNothing(t *testing.T) {
	r := NewRenderer()
	cam := NewCamera()
	cam.Position.X = math.NaN()
	canvas := &recordingCanvas{w: 80, h: 60}

	stats := r.Render(canvas, &testMesh{vertices: flatTriangle(0), faces: [][3]int{{0, 1, 2}}}, cam, false)
	if stats.Drawn != 0 || stats.Culled != 1 {
		t.Errorf("stats = %+v, want nothing drawn and one face culled", stats)
	}
	if len(canvas.calls) != 1 || canvas.calls[0].op != "clear" {
		t.Errorf("calls = %+v, want only the clear", canvas.calls)
	}
}

func TestRenderFilledDrawsFillThenOutline(t *testing.T) {
	r := NewRenderer()
	cam := &Camera{}
	canvas := &recordingCanvas{w: 200, h: 100}

	mesh := &testMesh{
		vertices: append(flatTriangle(2), flatTriangle(6)...),
		faces:    [][3]int{{0, 1, 2}, {3, 4, 5}},
	}

	stats := r.Render(canvas, mesh, cam, false)
	if stats != (Stats{Faces: 2, Culled: 0, Drawn: 2}) {
		t.Errorf("stats = %+v", stats)
	}

	wantOps := []string{"clear", "fill", "stroke", "fill", "stroke"}
	if len(canvas.calls) != len(wantOps) {
		t.Fatalf("got %d calls, want %d", len(canvas.calls), len(wantOps))
	}
	for i, op := range wantOps {
		if canvas.calls[i].op != op {
			t.Errorf("call %d = %s, want %s", i, canvas.calls[i].op, op)
		}
	}

	if canvas.calls[0].color != r.Background {
		t.Errorf("clear color = %v, want %v", canvas.calls[0].color, r.Background)
	}
	if canvas.calls[1].color != r.Fill || canvas.calls[2].color != r.Outline {
		t.Errorf("fill/outline colors = %v/%v", canvas.calls[1].color, canvas.calls[2].color)
	}

	// Far triangle (z=6) is smaller on screen and drawn first.
	far := r.Projector.Project(math3d.V3(-1, -1, 6), 200, 100)
	if canvas.calls[1].pts[0] != (image.Point{X: int(far.X), Y: int(far.Y)}) {
		t.Errorf("first fill starts at %v, want far triangle at (%d, %d)", canvas.calls[1].pts[0], int(far.X), int(far.Y))
	}
	if canvas.calls[1].pts != canvas.calls[2].pts {
		t.Error("fill and outline of one triangle should share points")
	}
}

func TestRenderWireframeOnlyStrokes(t *testing.T) {
	r := NewRenderer()
	canvas := &recordingCanvas{w: 200, h: 100}
	mesh := &testMesh{vertices: flatTriangle(3), faces: [][3]int{{0, 1, 2}}}

	r.Render(canvas, mesh, &Camera{}, true)

	for _, c := range canvas.calls {
		if c.op == "fill" {
			t.Fatal("wireframe mode should not fill")
		}
	}
	if n := len(canvas.calls); n != 2 || canvas.calls[1].op != "stroke" {
		t.Errorf("calls = %+v, want clear then stroke", canvas.calls)
	}
}

func TestRenderCubeFromDefaultCamera(t *testing.T) {
	r := NewRenderer()
	fb := NewFramebuffer(800, 600)
	cube := &testMesh{
		vertices: []math3d.Vec3{
			{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
			{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
		},
		faces: [][3]int{
			{0, 1, 2}, {0, 2, 3}, {4, 5, 6}, {4, 6, 7},
			{0, 1, 5}, {0, 5, 4}, {2, 3, 7}, {2, 7, 6},
			{1, 2, 6}, {1, 6, 5}, {0, 3, 7}, {0, 7, 4},
		},
	}

	stats := r.Render(fb, cube, NewCamera(), false)
	if stats.Drawn != 12 || stats.Culled != 0 {
		t.Errorf("stats = %+v, want all 12 drawn", stats)
	}
	if got := fb.GetPixel(410, 300); got != r.Fill {
		t.Errorf("center pixel = %v, want fill %v", got, r.Fill)
	}
	if got := fb.GetPixel(5, 5); got != r.Background {
		t.Errorf("corner pixel = %v, want background %v", got, r.Background)
	}
}

func TestRenderCameraInsideFaceBehind(t *testing.T) {
	r := NewRenderer()
	// Camera beyond the triangle, looking away from it.
	cam := &Camera{Position: math3d.V3(0, 0, 10)}
	mesh := &testMesh{vertices: flatTriangle(0), faces: [][3]int{{0, 1, 2}}}
	canvas := &recordingCanvas{w: 10, h: 10}

	stats := r.Render(canvas, mesh, cam, false)
	if stats.Culled != 1 || stats.Drawn != 0 {
		t.Errorf("stats = %+v, want culled", stats)
	}
	if len(canvas.calls) != 1 {
		t.Errorf("calls = %+v, want only clear", canvas.calls)
	}
}
