package render

import "github.com/taigrr/flycube/pkg/math3d"

// Projection defaults. Focal and DepthOffset together fix the apparent field
// of view for a world where the cube spans two units.
const (
	DefaultNear        = 0.1
	DefaultFocal       = 220.0
	DefaultDepthOffset = 3.0
)

// ScreenPoint is a projected point: screen coordinates (Y grows downward)
// plus the camera-space depth used to compute them.
type ScreenPoint struct {
	X, Y  float64
	Depth float64
}

// Projector maps camera-space points to screen space.
//
// Points nearer than Near are pulled onto the near plane before projecting.
// This is not clipping: a triangle crossing the plane is distorted rather than
// cut.
type Projector struct {
	Near        float64
	Focal       float64
	DepthOffset float64
}

// NewProjector returns a projector with the default constants.
func NewProjector() Projector {
	return Projector{
		Near:        DefaultNear,
		Focal:       DefaultFocal,
		DepthOffset: DefaultDepthOffset,
	}
}

// Project maps a camera-space point onto a width x height viewport.
func (p Projector) Project(v math3d.Vec3, width, height int) ScreenPoint {
	z := v.Z
	if z < p.Near {
		z = p.Near
	}
	scale := p.Focal / (z + p.DepthOffset)
	return ScreenPoint{
		X:     v.X*scale + float64(width)/2,
		Y:     -v.Y*scale + float64(height)/2,
		Depth: z,
	}
}

// Culled reports whether a camera-space triangle lies entirely at or behind
// the near plane. A triangle with any vertex in front is kept.
func (p Projector) Culled(a, b, c math3d.Vec3) bool {
	return a.Z <= p.Near && b.Z <= p.Near && c.Z <= p.Near
}
