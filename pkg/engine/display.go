package engine

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Display presents traced frames in the current OpenGL context by uploading
// them into a texture drawn over a full-screen quad
type Display struct {
	shaderProgram uint32
	quadVAO       uint32
	quadVBO       uint32
	frameTexture  uint32

	// Size of the texture storage, in frame pixels
	textureWidth  int
	textureHeight int

	// Size of the framebuffer, in screen pixels
	viewportWidth  int
	viewportHeight int

	mutex sync.Mutex
}

// NewDisplay creates the GL objects used to present frames.
// The GL context must be current and gl.Init must have been called.
func NewDisplay(viewportWidth, viewportHeight int) (*Display, error) {
	d := &Display{
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}

	if err := d.initOpenGL(); err != nil {
		return nil, err
	}

	return d, nil
}

// initOpenGL initializes OpenGL resources
func (d *Display) initOpenGL() error {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	var err error
	if d.shaderProgram, err = createShaderProgram(frameVertexShaderSource, frameFragmentShaderSource); err != nil {
		return err
	}

	gl.UseProgram(d.shaderProgram)
	gl.Uniform1i(gl.GetUniformLocation(d.shaderProgram, gl.Str("frameTexture\x00")), 0)

	d.setupScreenQuad()

	gl.GenTextures(1, &d.frameTexture)
	gl.BindTexture(gl.TEXTURE_2D, d.frameTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.Viewport(0, 0, int32(d.viewportWidth), int32(d.viewportHeight))

	return nil
}

// setupScreenQuad creates a full-screen quad. Texture row 0 maps to the top edge,
// matching the row order of image.RGBA.
func (d *Display) setupScreenQuad() {
	vertices := []float32{
		// Positions   // Texture coords
		-1.0, -1.0, 0.0, 0.0, 1.0,
		1.0, -1.0, 0.0, 1.0, 1.0,
		1.0, 1.0, 0.0, 1.0, 0.0,
		-1.0, 1.0, 0.0, 0.0, 0.0,
	}

	gl.GenVertexArrays(1, &d.quadVAO)
	gl.GenBuffers(1, &d.quadVBO)
	gl.BindVertexArray(d.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	// Position attribute
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// Texture coord attribute
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// createShaderProgram compiles and links a vertex/fragment shader pair
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	// Shaders are owned by the program once linked
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", log)
	}

	return shader, nil
}

// Present uploads frame and draws it stretched over the viewport
func (d *Display) Present(frame *image.RGBA) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	bounds := frame.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil
	}
	if frame.Stride != width*4 {
		return fmt.Errorf("frame stride %d does not match width %d", frame.Stride, width)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.frameTexture)
	if width != d.textureWidth || height != d.textureHeight {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
		d.textureWidth = width
		d.textureHeight = height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	}

	gl.UseProgram(d.shaderProgram)
	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.BindVertexArray(0)

	return nil
}

// UpdateResolution resizes the GL viewport to the framebuffer size
func (d *Display) UpdateResolution(width, height int) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.viewportWidth == width && d.viewportHeight == height {
		return
	}

	d.viewportWidth = width
	d.viewportHeight = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Close releases GL resources
func (d *Display) Close() {
	gl.DeleteVertexArrays(1, &d.quadVAO)
	gl.DeleteBuffers(1, &d.quadVBO)
	gl.DeleteTextures(1, &d.frameTexture)
	gl.DeleteProgram(d.shaderProgram)
}
