package loader

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"raycaster/pkg/raytracer"
)

// document mirrors the on-disk scene layout. Vectors stay slices so that
// toScene can report shape errors with the offending field path.
type document struct {
	Planes       []planeDoc  `json:"planes" yaml:"planes"`
	Spheres      []sphereDoc `json:"spheres" yaml:"spheres"`
	LightSources []lightDoc  `json:"light_sources" yaml:"light_sources"`
}

type planeDoc struct {
	Color    []float64 `json:"color" yaml:"color"`
	Specular *float64  `json:"specular" yaml:"specular"`
	Point    []float64 `json:"point" yaml:"point"`
	Normal   []float64 `json:"normal" yaml:"normal"`
}

type sphereDoc struct {
	Color    []float64 `json:"color" yaml:"color"`
	Specular *float64  `json:"specular" yaml:"specular"`
	Center   []float64 `json:"center" yaml:"center"`
	Radius   float64   `json:"radius" yaml:"radius"`
}

type lightDoc struct {
	Type      string    `json:"type" yaml:"type"`
	Intensity float64   `json:"intensity" yaml:"intensity"`
	Position  []float64 `json:"position" yaml:"position"`
	Direction []float64 `json:"direction" yaml:"direction"`
}

// toScene validates the document and converts it into a scene
func (d *document) toScene() (*raytracer.Scene, error) {
	scene := &raytracer.Scene{
		Planes:  make([]raytracer.Plane, 0, len(d.Planes)),
		Spheres: make([]raytracer.Sphere, 0, len(d.Spheres)),
		Lights:  make([]raytracer.LightSource, 0, len(d.LightSources)),
	}

	for i, p := range d.Planes {
		field := fmt.Sprintf("planes[%d]", i)
		material, err := toMaterial(field, p.Color, p.Specular)
		if err != nil {
			return nil, err
		}
		point, err := toVector(field+".point", p.Point)
		if err != nil {
			return nil, err
		}
		normal, err := toVector(field+".normal", p.Normal)
		if err != nil {
			return nil, err
		}
		scene.Planes = append(scene.Planes, raytracer.Plane{Material: material, Point: point, Normal: normal})
	}

	for i, s := range d.Spheres {
		field := fmt.Sprintf("spheres[%d]", i)
		material, err := toMaterial(field, s.Color, s.Specular)
		if err != nil {
			return nil, err
		}
		center, err := toVector(field+".center", s.Center)
		if err != nil {
			return nil, err
		}
		if s.Radius < 0 || math.IsInf(s.Radius, 0) || math.IsNaN(s.Radius) {
			return nil, invalid(field+".radius", "must be a finite non-negative number, got %v", s.Radius)
		}
		scene.Spheres = append(scene.Spheres, raytracer.Sphere{Material: material, Center: center, Radius: s.Radius})
	}

	for i, l := range d.LightSources {
		field := fmt.Sprintf("light_sources[%d]", i)
		light, err := toLight(field, l)
		if err != nil {
			return nil, err
		}
		scene.Lights = append(scene.Lights, light)
	}

	return scene, nil
}

func toLight(field string, l lightDoc) (raytracer.LightSource, error) {
	light := raytracer.LightSource{Intensity: l.Intensity}

	if l.Intensity < 0 || math.IsInf(l.Intensity, 0) || math.IsNaN(l.Intensity) {
		return light, invalid(field+".intensity", "must be a finite non-negative number, got %v", l.Intensity)
	}

	var err error
	switch strings.ToLower(l.Type) {
	case "ambient":
		light.Kind = raytracer.LightAmbient
	case "point":
		light.Kind = raytracer.LightPoint
		light.Position, err = toVector(field+".position", l.Position)
	case "directional":
		light.Kind = raytracer.LightDirectional
		light.Direction, err = toVector(field+".direction", l.Direction)
	case "":
		return light, invalid(field+".type", "is required")
	default:
		return light, invalid(field+".type", "unknown light type %q", l.Type)
	}

	return light, err
}

// toVector accepts exactly three components. A missing field stays at the zero vector.
func toVector(field string, v []float64) (raytracer.Vector3, error) {
	if v == nil {
		return raytracer.Vector3{}, nil
	}
	if len(v) != 3 {
		return raytracer.Vector3{}, invalid(field, "expected 3 components, got %d", len(v))
	}
	return raytracer.Vector3{v[0], v[1], v[2]}, nil
}

func toMaterial(field string, c []float64, specular *float64) (raytracer.Material, error) {
	material := raytracer.Material{Color: color.RGBA{A: 255}}

	if c != nil {
		if len(c) != 3 {
			return material, invalid(field+".color", "expected 3 channels, got %d", len(c))
		}
		channels := [3]*uint8{&material.Color.R, &material.Color.G, &material.Color.B}
		for i, ch := range c {
			if ch < 0 || ch > 255 || math.IsNaN(ch) {
				return material, invalid(fmt.Sprintf("%s.color[%d]", field, i), "out of range 0-255: %v", ch)
			}
			*channels[i] = uint8(ch)
		}
	}

	if specular != nil {
		if math.IsNaN(*specular) || math.IsInf(*specular, 0) {
			return material, invalid(field+".specular", "must be finite")
		}
		material.Specular = int(*specular)
	}

	return material, nil
}
