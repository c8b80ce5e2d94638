package engine

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"raycaster/internal/logger"
	"raycaster/internal/util"
	"raycaster/pkg/config"
	"raycaster/pkg/raytracer"
)

// statsInterval is how many frames pass between two stats log lines
const statsInterval = 60

// Engine owns the window and runs the interactive render loop
type Engine struct {
	window     *glfw.Window
	config     *config.Config
	logger     *logger.Logger
	renderer   *raytracer.Renderer
	display    Presenter
	input      *InputHandler
	controller *raytracer.Controller
	frame      *image.RGBA
	timer      *util.FrameTimer
	isRunning  bool
	paused     bool
	frameRate  int

	// Window size reported by the last resize event, applied at the next frame
	pendingWidth  int
	pendingHeight int
	resized       bool
}

// NewEngine opens the window and prepares everything needed to render scene.
// Must be called from the main OS thread.
func NewEngine(cfg *config.Config, scene *raytracer.Scene, log *logger.Logger) (*Engine, error) {
	controller, err := NewCameraController(cfg.Camera)
	if err != nil {
		return nil, err
	}

	renderer, err := raytracer.NewRenderer(scene, cfg.Raytracer, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize raytracer: %w", err)
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Set window hints
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	fbWidth, fbHeight := window.GetFramebufferSize()
	display, err := NewDisplay(fbWidth, fbHeight)
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}

	// Capture the mouse and start from the window centre so the first delta is small
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.SetCursorPos(float64(cfg.Window.Width)/2, float64(cfg.Window.Height)/2)

	engine := &Engine{
		window:     window,
		config:     cfg,
		logger:     log.Named("engine"),
		renderer:   renderer,
		display:    display,
		input:      NewInputHandler(window),
		controller: controller,
		frame:      raytracer.NewFrame(cfg.Window.Width, cfg.Window.Height),
		timer:      util.NewFrameTimer(statsInterval),
		frameRate:  cfg.Window.FrameRate,
	}

	window.SetSizeCallback(engine.sizeCallback)
	window.SetFramebufferSizeCallback(engine.framebufferSizeCallback)

	engine.logger.Infof("OpenGL %s, window %dx%d, framebuffer %dx%d",
		gl.GoStr(gl.GetString(gl.VERSION)), cfg.Window.Width, cfg.Window.Height, fbWidth, fbHeight)

	return engine, nil
}

// NewCameraController builds the camera and its controller from the camera settings
func NewCameraController(cfg config.CameraConfig) (*raytracer.Controller, error) {
	if len(cfg.Position) != 3 {
		return nil, fmt.Errorf("camera position needs 3 components, got %d", len(cfg.Position))
	}

	pos := raytracer.Vector3{cfg.Position[0], cfg.Position[1], cfg.Position[2]}
	cam := raytracer.NewCamera(pos, cfg.Pitch, cfg.Yaw)
	return raytracer.NewController(cam, cfg.Pitch, cfg.Yaw, cfg.MovementSpeed, cfg.MouseSensitivity), nil
}

// Run starts the main loop and returns when the window is closed
func (e *Engine) Run() {
	e.isRunning = true

	glfw.PollEvents()
	e.input.Update()

	for e.isRunning && !e.window.ShouldClose() {
		frameStart := time.Now()

		// Keys sampled at the end of the previous frame
		e.processInput()
		e.applyResize()

		if !e.paused && e.window.GetAttrib(glfw.Iconified) != glfw.True {
			e.controller.Move(e.input.MoveState())
			stats := e.renderer.RenderFrame(*e.controller.Camera, e.frame)
			e.recordStats(stats)
		}

		if err := e.display.Present(e.frame); err != nil {
			e.logger.Errorf("Failed to present frame: %v", err)
			e.isRunning = false
		}

		e.window.SwapBuffers()
		if e.paused {
			// Nothing changes on screen until the user acts
			glfw.WaitEventsTimeout(0.05)
		} else {
			glfw.PollEvents()
		}
		e.input.Update()

		// The camera turns only after the frame is on screen
		if !e.paused {
			delta := e.input.GetMouseDelta()
			e.controller.Look(delta[0], delta[1])
		}

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(frameStart)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	e.cleanup()
}

// processInput handles keys that control the engine itself
func (e *Engine) processInput() {
	// Close the window when ESC is pressed
	if e.input.IsKeyDown(glfw.KeyEscape) {
		e.window.SetShouldClose(true)
	}

	if e.input.IsKeyPressed(glfw.KeyP) {
		e.setPaused(!e.paused)
	}
}

// setPaused stops tracing and releases the cursor, or captures it again
func (e *Engine) setPaused(paused bool) {
	if e.paused == paused {
		return
	}
	e.paused = paused

	if paused {
		e.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		e.logger.Info("Paused, press P to resume")
		return
	}

	e.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	e.input.ResetMouse()
	e.logger.Info("Resumed")
}

// recordStats feeds the frame timer and logs a summary every statsInterval frames
func (e *Engine) recordStats(stats raytracer.FrameStats) {
	e.timer.Add(stats.Duration)
	if e.timer.Frames()%statsInterval != 0 || !e.logger.Enabled(logger.DEBUG) {
		return
	}

	pos := e.controller.Camera.Pos
	e.logger.Debugf("%.1f fps (%v/frame), %d rays, %d hits, %d workers, camera (%.2f, %.2f, %.2f) pitch %.1f yaw %.1f",
		e.timer.FPS(), e.timer.Average(), stats.Rays, stats.Hits, stats.Workers,
		pos.X(), pos.Y(), pos.Z(), e.controller.Pitch, e.controller.Yaw)
}

// sizeCallback records the new window size; the trace resolution follows it
func (e *Engine) sizeCallback(_ *glfw.Window, width, height int) {
	e.pendingWidth = width
	e.pendingHeight = height
	e.resized = true
}

// framebufferSizeCallback keeps the GL viewport covering the whole window
func (e *Engine) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.display.UpdateResolution(width, height)
}

// applyResize reallocates the frame after the window changed size.
// A minimized window reports 0x0 and keeps the previous frame.
func (e *Engine) applyResize() {
	if !e.resized {
		return
	}
	e.resized = false

	if e.pendingWidth <= 0 || e.pendingHeight <= 0 {
		return
	}

	width, height := e.renderer.Resolution()
	if width == e.pendingWidth && height == e.pendingHeight {
		return
	}

	e.renderer.UpdateResolution(e.pendingWidth, e.pendingHeight)
	e.frame = raytracer.NewFrame(e.pendingWidth, e.pendingHeight)
	e.logger.Debugf("Resolution changed to %dx%d", e.pendingWidth, e.pendingHeight)
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Infof("Shutting down after %d frames", e.timer.Frames())
	e.display.Close()
	e.window.Destroy()
	glfw.Terminate()
}
