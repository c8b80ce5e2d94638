package raytracer

import "image/color"

// NoSpecular disables the specular term of a material
const NoSpecular = -1

// Material holds the surface properties shared by every primitive
type Material struct {
	Color    color.RGBA
	Specular int // Phong-like exponent, NoSpecular to disable
}

// Plane is an infinite plane through Point. Normal does not have to be
// normalized; it is normalized when a hit is reported.
type Plane struct {
	Material
	Point  Vector3
	Normal Vector3
}

// Sphere is a sphere of Radius around Center
type Sphere struct {
	Material
	Center Vector3
	Radius float64
}

// LightKind identifies how a light source contributes to shading
type LightKind int

// Light kinds
const (
	LightAmbient LightKind = iota
	LightPoint
	LightDirectional
)

// String returns the name used for the kind in scene documents
func (k LightKind) String() string {
	switch k {
	case LightAmbient:
		return "ambient"
	case LightPoint:
		return "point"
	case LightDirectional:
		return "directional"
	default:
		return "unknown"
	}
}

// LightSource is a single light. Ambient lights only use Intensity, point
// lights also use Position and directional lights use Direction.
type LightSource struct {
	Kind      LightKind
	Intensity float64
	Position  Vector3
	Direction Vector3
}

// Scene is the set of primitives and lights being rendered.
// It is built once by the loader and never modified afterwards, so it can be
// read from any number of goroutines during a frame.
type Scene struct {
	Planes  []Plane
	Spheres []Sphere
	Lights  []LightSource
}

// PrimitiveCount returns the number of planes and spheres in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Planes) + len(s.Spheres)
}
