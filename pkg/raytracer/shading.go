package raytracer

import (
	"math"
)

// ShadowBias is the minimum distance along a shadow ray that counts as an occluder.
// It keeps a surface from shadowing itself through rounding noise.
const ShadowBias = 0.001

// lightVector returns the unnormalized vector from point toward the light, and
// the largest ray parameter at which an occluder still blocks it
func lightVector(light LightSource, point Vector3) (Vector3, float64) {
	if light.Kind == LightDirectional {
		return light.Direction, math.Inf(1)
	}
	// t == 1 is the light itself
	return light.Position.Sub(point), 1
}

// InShadow reports whether light is blocked from reaching point.
// Ambient lights are never blocked.
func InShadow(scene *Scene, point Vector3, light LightSource) bool {
	if light.Kind == LightAmbient {
		return false
	}

	dir, tMax := lightVector(light, point)
	return scene.Occluded(Ray{Origin: point, Direction: dir}, ShadowBias, tMax)
}

// Shade returns the light intensity arriving at point with the given surface
// normal, as seen from cam. specular is the material exponent or NoSpecular.
func Shade(scene *Scene, cam *Camera, point, normal Vector3, specular int) float64 {
	intensity := 0.0

	for _, light := range scene.Lights {
		if light.Kind == LightAmbient {
			intensity += light.Intensity
			continue
		}

		if InShadow(scene, point, light) {
			continue
		}

		l, _ := lightVector(light, point)
		contribution := l.Normalize().Dot(normal) * light.Intensity

		if specular != NoSpecular {
			proj := normal.Mul(l.Dot(normal))
			complement := l.Sub(proj)
			r := proj.Sub(complement)
			view := cam.Pos.Sub(point).Normalize()
			contribution += contribution * math.Pow(r.Normalize().Dot(view), float64(specular))
		}

		// Back-facing lights are skipped, NaN from degenerate vectors too
		if contribution > 0 {
			intensity += contribution
		}
	}

	return intensity
}
