package raytracer

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 is a position, direction or normal in world space
type Vector3 = mgl64.Vec3

// worldUp is the fixed up axis the camera basis is built against
var worldUp = Vector3{0, 1, 0}

// Ray represents a ray in 3D space. Direction is not required to be unit length;
// the intersection routines take its length into account.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// At returns the point reached after travelling t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
