package raytracer

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func approxVec(a, b Vector3) bool {
	return approxEqual(a[0], b[0]) && approxEqual(a[1], b[1]) && approxEqual(a[2], b[2])
}

func TestCamera_LookAt_Orthonormal(t *testing.T) {
	angles := []struct {
		pitch, yaw float64
	}{
		{0, -90},
		{0, 0},
		{45, 30},
		{-60, 170},
		{89, -180},
		{-89, 180},
		{12.5, -33.3},
	}

	for _, a := range angles {
		cam := NewCamera(Vector3{1, 2, 3}, a.pitch, a.yaw)

		for name, v := range map[string]Vector3{"x": cam.XBasis, "y": cam.YBasis, "z": cam.ZBasis} {
			if !approxEqual(v.Len(), 1) {
				t.Errorf("pitch=%v yaw=%v: |%s| = %v, want 1", a.pitch, a.yaw, name, v.Len())
			}
		}
		if d := cam.XBasis.Dot(cam.YBasis); !approxEqual(d, 0) {
			t.Errorf("pitch=%v yaw=%v: x·y = %v", a.pitch, a.yaw, d)
		}
		if d := cam.YBasis.Dot(cam.ZBasis); !approxEqual(d, 0) {
			t.Errorf("pitch=%v yaw=%v: y·z = %v", a.pitch, a.yaw, d)
		}
		if d := cam.ZBasis.Dot(cam.XBasis); !approxEqual(d, 0) {
			t.Errorf("pitch=%v yaw=%v: z·x = %v", a.pitch, a.yaw, d)
		}
		if c := cam.XBasis.Cross(cam.YBasis); !approxVec(c, cam.ZBasis) {
			t.Errorf("pitch=%v yaw=%v: x×y = %v, want z = %v", a.pitch, a.yaw, c, cam.ZBasis)
		}
		if !approxVec(cam.Forward(), EulerToDirection(a.pitch, a.yaw).Normalize()) {
			t.Errorf("pitch=%v yaw=%v: forward %v does not match look direction", a.pitch, a.yaw, cam.Forward())
		}
	}
}

func TestCamera_DefaultOrientation(t *testing.T) {
	cam := NewCamera(Vector3{0, 1, 0}, 0, -90)

	if !approxVec(cam.XBasis, Vector3{1, 0, 0}) {
		t.Errorf("x basis = %v, want (1,0,0)", cam.XBasis)
	}
	if !approxVec(cam.YBasis, Vector3{0, 1, 0}) {
		t.Errorf("y basis = %v, want (0,1,0)", cam.YBasis)
	}
	if !approxVec(cam.ZBasis, Vector3{0, 0, 1}) {
		t.Errorf("z basis = %v, want (0,0,1)", cam.ZBasis)
	}
}

func TestEulerToDirection_UnitLength(t *testing.T) {
	for pitch := -89.0; pitch <= 89; pitch += 17.8 {
		for yaw := -180.0; yaw <= 180; yaw += 45 {
			if l := EulerToDirection(pitch, yaw).Len(); !approxEqual(l, 1) {
				t.Errorf("pitch=%v yaw=%v: length %v", pitch, yaw, l)
			}
		}
	}
}

func TestClampAngles(t *testing.T) {
	tests := []struct {
		name               string
		pitch, yaw         float64
		wantPitch, wantYaw float64
	}{
		{"in range", 10, 20, 10, 20},
		{"pitch too high", 100, 0, 89, 0},
		{"pitch too low", -100, 0, -89, 0},
		{"yaw just above", 0, 190, 0, -170},
		{"yaw just below", 0, -190, 0, 170},
		{"yaw two turns", 0, 720, 0, 0},
		{"yaw boundary", 0, 180, 0, 180},
		{"yaw negative boundary", 0, -180, 0, -180},
		{"nan", math.NaN(), math.NaN(), 0, 0},
		{"inf", math.Inf(1), math.Inf(-1), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pitch, yaw := ClampAngles(tt.pitch, tt.yaw)
			if !approxEqual(pitch, tt.wantPitch) || !approxEqual(yaw, tt.wantYaw) {
				t.Errorf("ClampAngles(%v, %v) = (%v, %v), want (%v, %v)",
					tt.pitch, tt.yaw, pitch, yaw, tt.wantPitch, tt.wantYaw)
			}
		})
	}
}

func TestClampAngles_RangeAndIdempotent(t *testing.T) {
	inputs := []float64{0, 1, -1, 179.9, 180, 180.1, -180.1, 359, 361, -725, 1e6, -1e6, 1e12, 1e300, -1e300}

	for _, p := range inputs {
		for _, y := range inputs {
			pitch, yaw := ClampAngles(p, y)
			if pitch < MinPitch || pitch > MaxPitch {
				t.Errorf("ClampAngles(%v, %v): pitch %v out of range", p, y, pitch)
			}
			if yaw < -180 || yaw > 180 {
				t.Errorf("ClampAngles(%v, %v): yaw %v out of range", p, y, yaw)
			}

			pitch2, yaw2 := ClampAngles(pitch, yaw)
			if pitch2 != pitch || yaw2 != yaw {
				t.Errorf("ClampAngles not idempotent for (%v, %v): (%v, %v) then (%v, %v)",
					p, y, pitch, yaw, pitch2, yaw2)
			}
		}
	}
}

func TestController_Move(t *testing.T) {
	tests := []struct {
		name  string
		state MoveState
		want  Vector3
	}{
		{"idle", MoveState{}, Vector3{0, 1, 0}},
		{"forward", MoveState{Forward: true}, Vector3{0, 1, -0.8}},
		{"back", MoveState{Back: true}, Vector3{0, 1, 0.8}},
		{"left", MoveState{Left: true}, Vector3{0.8, 1, 0}},
		{"right", MoveState{Right: true}, Vector3{-0.8, 1, 0}},
		{"forward and back cancel", MoveState{Forward: true, Back: true}, Vector3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(Vector3{0, 1, 0}, 0, -90)
			ctrl := NewController(cam, 0, -90, 0.8, 0.1)

			ctrl.Move(tt.state)
			if !approxVec(cam.Pos, tt.want) {
				t.Errorf("position = %v, want %v", cam.Pos, tt.want)
			}
		})
	}
}

func TestController_Look(t *testing.T) {
	cam := NewCamera(Vector3{0, 1, 0}, 0, -90)
	ctrl := NewController(cam, 0, -90, 0.8, 0.1)
	before := *cam

	if ctrl.Look(0, 0) {
		t.Error("zero delta should not change the camera")
	}
	if *cam != before {
		t.Errorf("camera changed on zero delta: %+v", *cam)
	}

	if !ctrl.Look(10, 0) {
		t.Fatal("non-zero delta should change the camera")
	}
	if !approxEqual(ctrl.Yaw, -91) || !approxEqual(ctrl.Pitch, 0) {
		t.Errorf("angles = (%v, %v), want (0, -91)", ctrl.Pitch, ctrl.Yaw)
	}
	if !approxVec(cam.Forward(), EulerToDirection(0, -91)) {
		t.Errorf("forward = %v, want %v", cam.Forward(), EulerToDirection(0, -91))
	}

	// Moving the mouse down looks down, and far enough hits the pitch limit
	ctrl.Look(0, 1000)
	if ctrl.Pitch != MinPitch {
		t.Errorf("pitch = %v, want %v", ctrl.Pitch, MinPitch)
	}
}
