package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/flycube/pkg/math3d"
)

// MaxPitch is the pitch limit in radians (89 degrees either way).
var MaxPitch = mgl64.DegToRad(89)

// DefaultPosition is where a new or reset camera starts.
var DefaultPosition = math3d.V3(0, 0, -5)

// Camera is a fly camera with a position and a yaw/pitch orientation.
// It looks down +Z when yaw and pitch are zero.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (radians)
	Yaw   float64 // Rotation around Y axis (look left/right), unbounded
	Pitch float64 // Rotation around X axis (look up/down), within ±MaxPitch
}

// NewCamera creates a camera at DefaultPosition looking down +Z.
func NewCamera() *Camera {
	return &Camera{
		Position: DefaultPosition,
	}
}

// Reset restores the starting pose.
func (c *Camera) Reset() {
	c.Position = DefaultPosition
	c.Yaw = 0
	c.Pitch = 0
}

// SetRotation sets yaw and pitch (radians). Pitch is clamped.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.Yaw = yaw
	c.Pitch = ClampPitch(pitch)
}

// Rotate adds to yaw and pitch (radians). Pitch is clamped afterwards.
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch = ClampPitch(c.Pitch + deltaPitch)
}

// ClampPitch limits a pitch angle to ±MaxPitch.
func ClampPitch(pitch float64) float64 {
	return mgl64.Clamp(pitch, -MaxPitch, MaxPitch)
}

// Move translates the camera by delta in world space.
func (c *Camera) Move(delta math3d.Vec3) {
	c.Position = c.Position.Add(delta)
}

// Forward returns the horizontal movement direction (sin yaw, 0, cos yaw).
// Pitch does not affect movement.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(math.Sin(c.Yaw), 0, math.Cos(c.Yaw))
}

// Right returns the horizontal right direction, Forward rotated by +90°.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(math.Sin(c.Yaw+math.Pi/2), 0, math.Cos(c.Yaw+math.Pi/2))
}

// ViewMatrix returns the world-to-camera transform: translate by -Position,
// undo yaw about Y, then undo pitch about X.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	// x' = x·cos(-yaw) − z·sin(-yaw) is RotateY(+yaw) in math3d's convention.
	rot := math3d.RotateX(-c.Pitch).Mul(math3d.RotateY(c.Yaw))
	trans := math3d.Translate(c.Position.Negate())
	return rot.Mul(trans)
}

// WorldToCamera transforms a world point into camera space.
// Build the ViewMatrix once when transforming many points.
func (c *Camera) WorldToCamera(p math3d.Vec3) math3d.Vec3 {
	return c.ViewMatrix().MulVec3(p)
}
