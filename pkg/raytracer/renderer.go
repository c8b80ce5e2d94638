package raytracer

import (
	"fmt"
	"image/color"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"raycaster/pkg/config"
)

// FrameStats summarizes one traced frame
type FrameStats struct {
	Rays     int
	Hits     int
	Rows     int
	Workers  int
	Duration time.Duration
}

// Renderer traces whole frames of a scene into a Sink
type Renderer struct {
	config     config.RaytracerConfig
	scene      *Scene
	width      int
	height     int
	background color.RGBA
	workers    int
	mutex      sync.Mutex
}

// NewRenderer creates a renderer for scene at the given screen size
func NewRenderer(scene *Scene, cfg config.RaytracerConfig, width, height int) (*Renderer, error) {
	if scene == nil {
		return nil, fmt.Errorf("renderer needs a scene")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid resolution %dx%d", width, height)
	}

	background := DefaultBackground
	if len(cfg.Background) == 3 {
		background = color.RGBA{
			R: uint8(cfg.Background[0]),
			G: uint8(cfg.Background[1]),
			B: uint8(cfg.Background[2]),
			A: 255,
		}
	}

	// Never spawn more goroutines than there are threads to run them
	workers := cfg.Workers
	if workers <= 0 || workers > runtime.GOMAXPROCS(0) {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Renderer{
		config:     cfg,
		scene:      scene,
		width:      width,
		height:     height,
		background: background,
		workers:    workers,
	}, nil
}

// UpdateResolution changes the screen size used for the next frame
func (r *Renderer) UpdateResolution(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.width = width
	r.height = height
}

// Resolution returns the current screen size
func (r *Renderer) Resolution() (int, int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.width, r.height
}

// Background returns the color written for rays that hit nothing
func (r *Renderer) Background() color.RGBA {
	return r.background
}

// Bounds returns the inclusive range of centred pixel coordinates traced per frame.
// With InclusiveBounds both ends of [-w/2, w/2] are traced, which is one more
// column and row than the sink holds; the extra ones land outside it.
func (r *Renderer) Bounds() (xMin, xMax, yMin, yMax int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.bounds()
}

func (r *Renderer) bounds() (xMin, xMax, yMin, yMax int) {
	if r.config.InclusiveBounds {
		return -r.width / 2, r.width / 2, -r.height / 2, r.height / 2
	}
	// Exactly one ray per sink cell
	return -r.width / 2, r.width - r.width/2 - 1, r.height/2 - r.height + 1, r.height / 2
}

// Trace follows ray into the scene and returns the shaded color of the closest
// hit within [tMin, tMax), or the background color
func (r *Renderer) Trace(ray Ray, cam *Camera, tMin, tMax float64) (color.RGBA, bool) {
	hit, ok := r.scene.ClosestHit(ray, tMin, tMax)
	if !ok {
		return r.background, false
	}

	intensity := Shade(r.scene, cam, hit.Point, hit.Normal, hit.Material.Specular)
	return ApplyIntensity(hit.Material.Color, intensity), true
}

// TracePixel traces the primary ray for a centred pixel coordinate
func (r *Renderer) TracePixel(x, y int, cam *Camera) (color.RGBA, bool) {
	width, height := r.Resolution()
	return r.Trace(PrimaryRay(x, y, cam, width, height), cam, 0, math.Inf(1))
}

// RenderFrame traces every pixel of the screen as seen from cam and writes the
// result to sink. Rows are traced in parallel; each writes only its own cells.
// cam is copied so later changes cannot leak into the frame.
func (r *Renderer) RenderFrame(cam Camera, sink Sink) FrameStats {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	start := time.Now()
	width, height := r.width, r.height
	xMin, xMax, yMin, yMax := r.bounds()

	var hits atomic.Int64
	var g errgroup.Group
	g.SetLimit(r.workers)

	for y := yMin; y <= yMax; y++ {
		g.Go(func() error {
			rowHits := 0
			for x := xMin; x <= xMax; x++ {
				ray := PrimaryRay(x, y, &cam, width, height)
				c, hit := r.Trace(ray, &cam, 0, math.Inf(1))
				if hit {
					rowHits++
				}
				sx, sy := ToSink(x, y, width, height)
				sink.SetRGBA(sx, sy, c)
			}
			hits.Add(int64(rowHits))
			return nil
		})
	}
	// Rows never fail
	_ = g.Wait()

	rows := yMax - yMin + 1
	return FrameStats{
		Rays:     rows * (xMax - xMin + 1),
		Hits:     int(hits.Load()),
		Rows:     rows,
		Workers:  r.workers,
		Duration: time.Since(start),
	}
}
