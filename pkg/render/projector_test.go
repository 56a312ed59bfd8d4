package render

import (
	"math"
	"testing"

	"github.com/taigrr/flycube/pkg/math3d"
)

func TestProjectCenter(t *testing.T) {
	p := NewProjector()
	got := p.Project(math3d.V3(0, 0, 10), 800, 600)
	if got.X != 400 || got.Y != 300 || got.Depth != 10 {
		t.Errorf("got %+v, want center (400, 300) at depth 10", got)
	}
}

func TestProjectOddViewportUsesFloatHalves(t *testing.T) {
	p := NewProjector()
	got := p.Project(math3d.V3(0, 0, 1), 81, 41)
	if got.X != 40.5 || got.Y != 20.5 {
		t.Errorf("got (%v, %v), want (40.5, 20.5)", got.X, got.Y)
	}
}

func TestProjectCubeVertexFromDefaultCamera(t *testing.T) {
	cam := NewCamera()
	p := NewProjector()

	v := cam.WorldToCamera(math3d.V3(-1, -1, -1))
	sp := p.Project(v, 800, 600)

	scale := 220.0 / (4 + 3)
	if !near(scale, 31.428571428571427) {
		t.Fatalf("scale = %v", scale)
	}
	if !near(sp.X, 400-scale) {
		t.Errorf("X = %v, want %v", sp.X, 400-scale)
	}
	// World Y grows up, screen Y grows down: a vertex below the eye lands
	// below the center row.
	if !near(sp.Y, 300+scale) {
		t.Errorf("Y = %v, want %v", sp.Y, 300+scale)
	}
	if sp.X >= 400 {
		t.Errorf("X = %v, want left of center", sp.X)
	}
	if !near(sp.Depth, 4) {
		t.Errorf("Depth = %v, want 4", sp.Depth)
	}
}

func TestProjectNearClampContinuity(t *testing.T) {
	p := NewProjector()
	at := p.Project(math3d.V3(1.5, -2, p.Near), 800, 600)

	for _, e := range []float64{1e-9, 1e-3, 0.05, 0.1, 5, 1000} {
		below := p.Project(math3d.V3(1.5, -2, p.Near-e), 800, 600)
		if below != at {
			t.Errorf("depth near-%v projects to %+v, want %+v", e, below, at)
		}
	}
	if at.Depth != p.Near {
		t.Errorf("Depth = %v, want clamped %v", at.Depth, p.Near)
	}
}

func TestProjectDegenerateStaysFinite(t *testing.T) {
	p := NewProjector()
	// A camera sitting exactly on a vertex gives depth 0.
	sp := p.Project(math3d.Zero3(), 800, 600)
	if math.IsNaN(sp.X) || math.IsInf(sp.X, 0) || math.IsNaN(sp.Y) || math.IsInf(sp.Y, 0) {
		t.Errorf("got %+v, want finite", sp)
	}
}

func TestCulled(t *testing.T) {
	p := NewProjector()
	behind := p.Near - 1
	front := p.Near + 1

	tests := []struct {
		name    string
		a, b, c float64
		want    bool
	}{
		{"all behind", behind, behind, behind, true},
		{"all exactly on plane", p.Near, p.Near, p.Near, true},
		{"one in front", behind, behind, front, false},
		{"two in front", front, behind, front, false},
		{"all in front", front, front, front, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Culled(math3d.V3(0, 0, tc.a), math3d.V3(1, 0, tc.b), math3d.V3(0, 1, tc.c))
			if got != tc.want {
				t.Errorf("Culled = %v, want %v", got, tc.want)
			}
		})
	}
}
