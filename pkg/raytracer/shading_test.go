package raytracer

import (
	"image/color"
	"math"
	"testing"
)

func TestApplyIntensity(t *testing.T) {
	tests := []struct {
		name      string
		c         color.RGBA
		intensity float64
		want      color.RGBA
	}{
		{"identity", red, 1.0, color.RGBA{255, 0, 0, 255}},
		{"ambient 0.3", red, 0.3, color.RGBA{76, 0, 0, 255}},
		{"truncates", color.RGBA{10, 20, 30, 255}, 0.55, color.RGBA{5, 11, 16, 255}},
		{"saturates", color.RGBA{200, 100, 50, 255}, 2, color.RGBA{255, 200, 100, 255}},
		{"zero", color.RGBA{200, 100, 50, 255}, 0, color.RGBA{0, 0, 0, 255}},
		{"negative", color.RGBA{200, 100, 50, 255}, -1, color.RGBA{0, 0, 0, 255}},
		{"nan", color.RGBA{200, 100, 50, 255}, math.NaN(), color.RGBA{0, 0, 0, 255}},
		{"alpha untouched", color.RGBA{100, 100, 100, 128}, 0.5, color.RGBA{50, 50, 50, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyIntensity(tt.c, tt.intensity); got != tt.want {
				t.Errorf("ApplyIntensity(%v, %v) = %v, want %v", tt.c, tt.intensity, got, tt.want)
			}
		})
	}
}

// shadowScene is a floor at y=0 lit by an ambient and a point light at (0,5,0)
func shadowScene(occluded bool) *Scene {
	scene := &Scene{
		Planes: []Plane{
			{Material: Material{Color: red, Specular: NoSpecular}, Point: Vector3{0, 0, 0}, Normal: Vector3{0, 1, 0}},
		},
		Lights: []LightSource{
			{Kind: LightAmbient, Intensity: 0.2},
			{Kind: LightPoint, Intensity: 0.6, Position: Vector3{0, 5, 0}},
		},
	}
	if occluded {
		scene.Planes = append(scene.Planes, Plane{Point: Vector3{0, 2, 0}, Normal: Vector3{0, 1, 0}})
	}
	return scene
}

func TestInShadow(t *testing.T) {
	point := Vector3{0, 0, 0}

	lit := shadowScene(false)
	if InShadow(lit, point, lit.Lights[1]) {
		t.Error("floor point should see the light")
	}

	blocked := shadowScene(true)
	if !InShadow(blocked, point, blocked.Lights[1]) {
		t.Error("plane between point and light should cast a shadow")
	}
	if InShadow(blocked, point, blocked.Lights[0]) {
		t.Error("ambient light is never shadowed")
	}
}

func TestInShadow_PointVersusDirectional(t *testing.T) {
	// Blocker above the light: it only matters for a light at infinity
	scene := &Scene{
		Planes: []Plane{{Point: Vector3{0, 2, 0}, Normal: Vector3{0, 1, 0}}},
	}
	point := Vector3{0, 0, 0}

	pointLight := LightSource{Kind: LightPoint, Intensity: 1, Position: Vector3{0, 1, 0}}
	if InShadow(scene, point, pointLight) {
		t.Error("blocker beyond a point light should not shadow")
	}

	directional := LightSource{Kind: LightDirectional, Intensity: 1, Direction: Vector3{0, 1, 0}}
	if !InShadow(scene, point, directional) {
		t.Error("blocker along a directional light should shadow")
	}
}

func TestShade_ShadowLeavesAmbientOnly(t *testing.T) {
	cam := NewCamera(Vector3{0, 3, 3}, -45, -90)
	point := Vector3{0, 0, 0}
	normal := Vector3{0, 1, 0}

	if got := Shade(shadowScene(false), cam, point, normal, NoSpecular); !approxEqual(got, 0.8) {
		t.Errorf("lit intensity = %v, want 0.8", got)
	}
	if got := Shade(shadowScene(true), cam, point, normal, NoSpecular); !approxEqual(got, 0.2) {
		t.Errorf("shadowed intensity = %v, want 0.2 (ambient only)", got)
	}
}

func TestShade_BackFacingLightIgnored(t *testing.T) {
	scene := &Scene{
		Lights: []LightSource{
			{Kind: LightAmbient, Intensity: 0.1},
			{Kind: LightPoint, Intensity: 0.9, Position: Vector3{0, -5, 0}},
			{Kind: LightDirectional, Intensity: 0.9, Direction: Vector3{0, -1, 0}},
		},
	}
	cam := NewCamera(Vector3{0, 3, 0}, -89, -90)

	if got := Shade(scene, cam, Vector3{}, Vector3{0, 1, 0}, 100); !approxEqual(got, 0.1) {
		t.Errorf("intensity = %v, want 0.1", got)
	}
}

func TestShade_Specular(t *testing.T) {
	normal := Vector3{0, 1, 0}
	point := Vector3{0, 0, 0}

	t.Run("mirror direction toward camera doubles the diffuse term", func(t *testing.T) {
		scene := &Scene{Lights: []LightSource{{Kind: LightPoint, Intensity: 1, Position: Vector3{0, 5, 0}}}}
		cam := &Camera{Pos: Vector3{0, 3, 0}}

		if got := Shade(scene, cam, point, normal, NoSpecular); !approxEqual(got, 1) {
			t.Errorf("diffuse only = %v, want 1", got)
		}
		if got := Shade(scene, cam, point, normal, 10); !approxEqual(got, 2) {
			t.Errorf("with specular = %v, want 2", got)
		}
	})

	t.Run("oblique light reflects across the normal", func(t *testing.T) {
		scene := &Scene{Lights: []LightSource{{Kind: LightPoint, Intensity: 1, Position: Vector3{5, 5, 0}}}}
		cam := &Camera{Pos: Vector3{-3, 3, 0}}

		want := 2 * math.Sqrt2 / 2
		if got := Shade(scene, cam, point, normal, 50); !approxEqual(got, want) {
			t.Errorf("intensity = %v, want %v", got, want)
		}
	})

	t.Run("viewer away from reflection gets no highlight", func(t *testing.T) {
		scene := &Scene{Lights: []LightSource{{Kind: LightPoint, Intensity: 1, Position: Vector3{5, 5, 0}}}}
		cam := &Camera{Pos: Vector3{3, 3, 0}}

		// r·v = 0, so the specular term vanishes
		want := math.Sqrt2 / 2
		if got := Shade(scene, cam, point, normal, 50); !approxEqual(got, want) {
			t.Errorf("intensity = %v, want %v", got, want)
		}
	})
}
