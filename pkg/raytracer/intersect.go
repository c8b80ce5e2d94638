package raytracer

import (
	"math"
)

// ObjectKind tags which primitive list a hit came from
type ObjectKind int

// Object kinds
const (
	KindPlane ObjectKind = iota
	KindSphere
)

// String returns a readable name for the kind
func (k ObjectKind) String() string {
	if k == KindSphere {
		return "sphere"
	}
	return "plane"
}

// Hit describes the closest intersection of a ray with the scene
type Hit struct {
	Kind     ObjectKind
	Index    int // position in Scene.Planes or Scene.Spheres
	T        float64
	Point    Vector3
	Normal   Vector3 // unit length
	Material Material
}

// IntersectPlane returns the ray parameter where ray meets plane.
// A ray parallel to the plane yields an infinite or NaN t and reports no hit.
func IntersectPlane(ray Ray, plane Plane) (float64, bool) {
	t := plane.Point.Sub(ray.Origin).Dot(plane.Normal) / ray.Direction.Dot(plane.Normal)
	return t, t > 0 && !math.IsInf(t, 1)
}

// IntersectSphere returns the smallest positive ray parameter where ray meets sphere
func IntersectSphere(ray Ray, sphere Sphere) (float64, bool) {
	co := ray.Origin.Sub(sphere.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * co.Dot(ray.Direction)
	c := co.Dot(co) - sphere.Radius*sphere.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return math.Inf(1), false
	}

	sq := math.Sqrt(discriminant)
	root1 := (-b + sq) / (2 * a)
	root2 := (-b - sq) / (2 * a)

	t := math.Inf(1)
	if root1 > 0 {
		t = root1
	}
	if root2 > 0 && root2 < t {
		t = root2
	}

	return t, t > 0 && !math.IsInf(t, 1)
}

// ClosestHit finds the nearest primitive hit by ray with tMin <= t < tMax
func (s *Scene) ClosestHit(ray Ray, tMin, tMax float64) (Hit, bool) {
	var hit Hit
	closest := math.Inf(1)
	found := false

	for i := range s.Planes {
		t, ok := IntersectPlane(ray, s.Planes[i])
		if !ok || t >= closest || t < tMin || t >= tMax {
			continue
		}
		closest = t
		found = true
		hit = Hit{Kind: KindPlane, Index: i, T: t}
	}

	for i := range s.Spheres {
		t, ok := IntersectSphere(ray, s.Spheres[i])
		if !ok || t >= closest || t < tMin || t >= tMax {
			continue
		}
		closest = t
		found = true
		hit = Hit{Kind: KindSphere, Index: i, T: t}
	}

	if !found {
		return Hit{}, false
	}

	// Normals are only computed for the winner
	hit.Point = ray.At(hit.T)
	switch hit.Kind {
	case KindPlane:
		p := &s.Planes[hit.Index]
		hit.Normal = p.Normal.Normalize()
		hit.Material = p.Material
	case KindSphere:
		sp := &s.Spheres[hit.Index]
		hit.Normal = hit.Point.Sub(sp.Center).Normalize()
		hit.Material = sp.Material
	}

	return hit, true
}

// Occluded reports whether any primitive is hit with tMin < t < tMax.
// It stops at the first blocker.
func (s *Scene) Occluded(ray Ray, tMin, tMax float64) bool {
	for i := range s.Planes {
		if t, ok := IntersectPlane(ray, s.Planes[i]); ok && t > tMin && t < tMax {
			return true
		}
	}
	for i := range s.Spheres {
		if t, ok := IntersectSphere(ray, s.Spheres[i]); ok && t > tMin && t < tMax {
			return true
		}
	}
	return false
}
