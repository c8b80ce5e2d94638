package raytracer

import (
	"image"
	"image/color"
	"math"
)

// DefaultBackground is written for rays that hit nothing
var DefaultBackground = color.RGBA{R: 7, G: 11, B: 52, A: 255}

// ApplyIntensity scales the RGB channels of c by intensity, saturating at 255.
// Alpha is left untouched.
func ApplyIntensity(c color.RGBA, intensity float64) color.RGBA {
	return color.RGBA{
		R: scaleChannel(c.R, intensity),
		G: scaleChannel(c.G, intensity),
		B: scaleChannel(c.B, intensity),
		A: c.A,
	}
}

func scaleChannel(ch uint8, intensity float64) uint8 {
	v := float64(ch) * intensity
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v) // truncates like an int conversion
}

// Sink receives traced pixels. Coordinates are in sink space: (0,0) is the
// top-left corner and y grows downward. Writes outside the sink are dropped.
// *image.RGBA satisfies Sink.
type Sink interface {
	SetRGBA(x, y int, c color.RGBA)
}

// NewFrame allocates a frame buffer of the given size that can be used as a Sink
func NewFrame(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, width, height))
}
