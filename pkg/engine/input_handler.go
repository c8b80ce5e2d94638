package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"raycaster/pkg/raytracer"
)

// inputSource is the part of *glfw.Window the input handler polls
type inputSource interface {
	GetKey(key glfw.Key) glfw.Action
	GetCursorPos() (x, y float64)
}

// Keys polled every frame
var trackedKeys = []glfw.Key{
	glfw.KeyW,
	glfw.KeyA,
	glfw.KeyS,
	glfw.KeyD,
	glfw.KeyP,
	glfw.KeyEscape,
}

// InputHandler manages keyboard and mouse input
type InputHandler struct {
	source           inputSource
	currentKeys      map[glfw.Key]bool
	previousKeys     map[glfw.Key]bool
	currentMousePos  [2]float64
	previousMousePos [2]float64
	mouseDelta       [2]float64
	haveMouse        bool
}

// NewInputHandler creates a new input handler
func NewInputHandler(source inputSource) *InputHandler {
	return &InputHandler{
		source:       source,
		currentKeys:  make(map[glfw.Key]bool, len(trackedKeys)),
		previousKeys: make(map[glfw.Key]bool, len(trackedKeys)),
	}
}

// Update samples keys and cursor. Call once per frame after glfw.PollEvents.
func (ih *InputHandler) Update() {
	for k, v := range ih.currentKeys {
		ih.previousKeys[k] = v
	}
	for _, key := range trackedKeys {
		ih.currentKeys[key] = ih.source.GetKey(key) == glfw.Press
	}

	x, y := ih.source.GetCursorPos()
	ih.previousMousePos = ih.currentMousePos
	ih.currentMousePos = [2]float64{x, y}

	if !ih.haveMouse {
		ih.previousMousePos = ih.currentMousePos
		ih.haveMouse = true
	}

	ih.mouseDelta[0] = ih.currentMousePos[0] - ih.previousMousePos[0]
	ih.mouseDelta[1] = ih.currentMousePos[1] - ih.previousMousePos[1]
}

// ResetMouse discards the cursor history so the next Update reports no movement
func (ih *InputHandler) ResetMouse() {
	ih.haveMouse = false
	ih.mouseDelta = [2]float64{}
}

// IsKeyDown checks if a key is currently held
func (ih *InputHandler) IsKeyDown(key glfw.Key) bool {
	return ih.currentKeys[key]
}

// IsKeyPressed checks if a key went down this frame
func (ih *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return ih.currentKeys[key] && !ih.previousKeys[key]
}

// IsKeyReleased checks if a key went up this frame
func (ih *InputHandler) IsKeyReleased(key glfw.Key) bool {
	return !ih.currentKeys[key] && ih.previousKeys[key]
}

// GetMousePosition returns the current cursor position
func (ih *InputHandler) GetMousePosition() [2]float64 {
	return ih.currentMousePos
}

// GetMouseDelta returns the cursor movement since the previous frame
func (ih *InputHandler) GetMouseDelta() [2]float64 {
	return ih.mouseDelta
}

// MoveState maps WASD to camera movement flags
func (ih *InputHandler) MoveState() raytracer.MoveState {
	return raytracer.MoveState{
		Forward: ih.IsKeyDown(glfw.KeyW),
		Back:    ih.IsKeyDown(glfw.KeyS),
		Left:    ih.IsKeyDown(glfw.KeyA),
		Right:   ih.IsKeyDown(glfw.KeyD),
	}
}
