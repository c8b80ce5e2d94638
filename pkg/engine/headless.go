package engine

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"raycaster/internal/logger"
	"raycaster/internal/util"
	"raycaster/pkg/config"
	"raycaster/pkg/raytracer"
)

// PNGWriter is a Presenter that writes every frame to the same PNG file
type PNGWriter struct {
	path string
}

// NewPNGWriter creates a PNGWriter for path
func NewPNGWriter(path string) *PNGWriter {
	return &PNGWriter{path: path}
}

// Present encodes frame as PNG, replacing any previous file
func (w *PNGWriter) Present(frame *image.RGBA) error {
	if err := util.EnsureParentDir(w.path); err != nil {
		return err
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", w.path, err)
	}

	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", w.path, err)
	}
	return f.Close()
}

// UpdateResolution is a no-op; the file takes the size of each frame
func (w *PNGWriter) UpdateResolution(width, height int) {}

// Close is a no-op
func (w *PNGWriter) Close() {}

// RenderHeadless traces a single frame from the configured camera without
// opening a window and hands it to out
func RenderHeadless(cfg *config.Config, scene *raytracer.Scene, out Presenter, log *logger.Logger) (raytracer.FrameStats, error) {
	log = log.Named("headless")

	controller, err := NewCameraController(cfg.Camera)
	if err != nil {
		return raytracer.FrameStats{}, err
	}

	renderer, err := raytracer.NewRenderer(scene, cfg.Raytracer, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return raytracer.FrameStats{}, fmt.Errorf("failed to initialize raytracer: %w", err)
	}

	frame := raytracer.NewFrame(cfg.Window.Width, cfg.Window.Height)
	stats := renderer.RenderFrame(*controller.Camera, frame)
	log.Infof("Traced %dx%d in %v: %d rays, %d hits, %d workers",
		cfg.Window.Width, cfg.Window.Height, stats.Duration, stats.Rays, stats.Hits, stats.Workers)

	if err := out.Present(frame); err != nil {
		return stats, err
	}
	out.Close()

	return stats, nil
}
