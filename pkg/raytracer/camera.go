package raytracer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pitch limits keep the look direction away from worldUp, where the basis degenerates
const (
	MaxPitch = 89.0
	MinPitch = -89.0
)

// yawReduceLimit bounds how many ±360 steps ClampAngles may take
const yawReduceLimit = 360.0 * 1024

// Camera is a position plus a right-handed orthonormal basis.
// ZBasis points away from the look direction.
type Camera struct {
	Pos    Vector3
	XBasis Vector3
	YBasis Vector3
	ZBasis Vector3
}

// NewCamera creates a camera at pos looking along the direction given by pitch and yaw (degrees)
func NewCamera(pos Vector3, pitch, yaw float64) *Camera {
	pitch, yaw = ClampAngles(pitch, yaw)
	cam := &Camera{Pos: pos}
	cam.LookAt(EulerToDirection(pitch, yaw))
	return cam
}

// LookAt rebuilds the basis so the camera faces dir.
// The result is undefined when dir is parallel to worldUp.
func (c *Camera) LookAt(dir Vector3) {
	c.ZBasis = dir.Mul(-1).Normalize()
	c.XBasis = worldUp.Cross(c.ZBasis).Normalize()
	c.YBasis = c.ZBasis.Cross(c.XBasis).Normalize()
}

// Forward returns the direction the camera is looking in
func (c *Camera) Forward() Vector3 {
	return c.ZBasis.Mul(-1)
}

// EulerToDirection converts pitch and yaw in degrees into a unit look direction
func EulerToDirection(pitch, yaw float64) Vector3 {
	p := mgl64.DegToRad(pitch)
	y := mgl64.DegToRad(yaw)
	return Vector3{
		math.Cos(y) * math.Cos(p),
		math.Sin(p),
		math.Sin(y) * math.Cos(p),
	}
}

// ClampAngles clamps pitch to [MinPitch, MaxPitch] and wraps yaw into [-180, 180].
// Non-finite angles are reset to 0.
func ClampAngles(pitch, yaw float64) (float64, float64) {
	if math.IsNaN(pitch) || math.IsInf(pitch, 0) {
		pitch = 0
	}
	if math.IsNaN(yaw) || math.IsInf(yaw, 0) {
		yaw = 0
	}

	if pitch > MaxPitch {
		pitch = MaxPitch
	}
	if pitch < MinPitch {
		pitch = MinPitch
	}

	// Huge values would need more steps than float precision allows
	if math.Abs(yaw) > yawReduceLimit {
		yaw = math.Mod(yaw, 360)
	}
	for yaw < -180 {
		yaw += 360
	}
	for yaw > 180 {
		yaw -= 360
	}

	return pitch, yaw
}
