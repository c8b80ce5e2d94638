package raytracer

// ViewportDistance is how far in front of the camera the virtual image plane sits
const ViewportDistance = 1.0

// PixelToWorld maps a pixel offset from the screen centre (x right, y up) to a
// point on the viewport plane of a width x height screen
func PixelToWorld(x, y int, cam *Camera, width, height int) Vector3 {
	w := float64(width)
	h := float64(height)
	aspect := w / h

	point := cam.Pos.Sub(cam.ZBasis.Mul(ViewportDistance))
	point = point.Add(cam.YBasis.Mul(float64(y) / h))
	point = point.Sub(cam.XBasis.Mul(float64(x) / w * aspect))
	return point
}

// PrimaryRay returns the ray from the camera through pixel (x, y)
func PrimaryRay(x, y int, cam *Camera, width, height int) Ray {
	return Ray{
		Origin:    cam.Pos,
		Direction: PixelToWorld(x, y, cam, width, height).Sub(cam.Pos),
	}
}

// ToSink converts centred ray-space coordinates (y up) to sink coordinates
// (origin top-left, y down)
func ToSink(x, y, width, height int) (int, int) {
	return width/2 + x, height/2 - y
}
