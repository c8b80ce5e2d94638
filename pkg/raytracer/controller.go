package raytracer

// MoveState is the set of movement keys held during a frame
type MoveState struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// Controller applies per-frame input to a camera.
// It is the only place the camera is mutated, and it must not be used while
// a frame is being traced.
type Controller struct {
	Camera      *Camera
	Pitch       float64 // degrees
	Yaw         float64 // degrees
	Speed       float64 // world units per frame
	Sensitivity float64 // degrees per pixel of mouse movement
}

// NewController creates a controller for cam, starting from the given angles.
// The camera basis is re-derived from those angles.
func NewController(cam *Camera, pitch, yaw, speed, sensitivity float64) *Controller {
	ctrl := &Controller{
		Camera:      cam,
		Speed:       speed,
		Sensitivity: sensitivity,
	}
	ctrl.Pitch, ctrl.Yaw = ClampAngles(pitch, yaw)
	cam.LookAt(EulerToDirection(ctrl.Pitch, ctrl.Yaw))
	return ctrl
}

// Move translates the camera along its own axes
func (c *Controller) Move(state MoveState) {
	cam := c.Camera
	if state.Forward {
		cam.Pos = cam.Pos.Sub(cam.ZBasis.Mul(c.Speed))
	}
	if state.Back {
		cam.Pos = cam.Pos.Add(cam.ZBasis.Mul(c.Speed))
	}
	if state.Left {
		cam.Pos = cam.Pos.Add(cam.XBasis.Mul(c.Speed))
	}
	if state.Right {
		cam.Pos = cam.Pos.Sub(cam.XBasis.Mul(c.Speed))
	}
}

// Look turns the camera by a mouse delta in pixels and reports whether the
// basis changed. A zero delta leaves the camera untouched.
func (c *Controller) Look(dx, dy float64) bool {
	if dx == 0 && dy == 0 {
		return false
	}

	c.Pitch -= dy * c.Sensitivity
	c.Yaw -= dx * c.Sensitivity
	c.Pitch, c.Yaw = ClampAngles(c.Pitch, c.Yaw)
	c.Camera.LookAt(EulerToDirection(c.Pitch, c.Yaw))
	return true
}
