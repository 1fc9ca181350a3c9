package camera

import (
	"math"

	"obj-mesh-renderer/internal/obj"

	"github.com/go-gl/mathgl/mgl32"
)

// Default view angles for the turntable camera, in degrees.
const (
	DefaultYaw   = 30.0
	DefaultPitch = -20.0
	DefaultFOV   = 60.0
)

// Params describes the view of a model.
type Params struct {
	Yaw         float64 // rotation around Y, degrees
	Pitch       float64 // rotation around X, degrees
	Perspective bool
	FOV         float64 // vertical field of view, degrees (perspective only)
}

// DefaultParams returns a three-quarter orthographic view.
func DefaultParams() Params {
	return Params{Yaw: DefaultYaw, Pitch: DefaultPitch, FOV: DefaultFOV}
}

// Rotation returns the view rotation Rx(pitch) · Ry(yaw).
func (p Params) Rotation() mgl32.Mat3 {
	rx := mgl32.Rotate3DX(mgl32.DegToRad(float32(p.Pitch)))
	ry := mgl32.Rotate3DY(mgl32.DegToRad(float32(p.Yaw)))
	return rx.Mul3(ry)
}

// Projector maps model-space positions to screen pixels (x right, y down) and
// a depth in the same pixel units where larger is closer.
type Projector struct {
	rot    mgl32.Mat3
	center [3]float64
	scale  float64
	half   float64

	persp   bool
	camDist float64
	zCenter float64
}

// Fit builds a projector that centers the rotated mesh in a size×size target
// with the given pixel margin on each side.
func Fit(verts []obj.Vertex, p Params, size, margin int) *Projector {
	rot := p.Rotation()

	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range verts {
		t := rot.Mul3x1(v.Pos)
		for k := 0; k < 3; k++ {
			f := float64(t[k])
			if f < lo[k] {
				lo[k] = f
			}
			if f > hi[k] {
				hi[k] = f
			}
		}
	}
	if len(verts) == 0 {
		lo, hi = [3]float64{}, [3]float64{}
	}

	pr := &Projector{
		rot:  rot,
		half: float64(size) / 2,
		center: [3]float64{
			(lo[0] + hi[0]) / 2,
			(lo[1] + hi[1]) / 2,
			(lo[2] + hi[2]) / 2,
		},
	}

	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}

	if p.Perspective {
		fov := p.FOV
		if fov <= 0 {
			fov = DefaultFOV
		}
		halfExtent := span / 2
		pr.persp = true
		pr.zCenter = pr.center[2]
		pr.camDist = halfExtent/math.Tan(float64(mgl32.DegToRad(float32(fov/2)))) + (hi[2]-lo[2])/2
		// the near face grows by camDist/(camDist-depth/2); shrink to keep it inside
		depthHalf := (hi[2] - lo[2]) / 2
		span *= pr.camDist / math.Max(pr.camDist-depthHalf, 0.1)
	}

	avail := float64(size - 2*margin)
	if avail < 1 {
		avail = 1
	}
	pr.scale = avail / span
	return pr
}

// Project returns the screen position and depth of a model-space point.
func (pr *Projector) Project(pos mgl32.Vec3) (x, y, z float64) {
	t := pr.rot.Mul3x1(pos)
	tx := float64(t[0]) - pr.center[0]
	ty := float64(t[1]) - pr.center[1]
	tz := float64(t[2])

	if pr.persp {
		depth := math.Max(pr.camDist-(tz-pr.zCenter), 0.1)
		f := pr.camDist / depth
		tx *= f
		ty *= f
	}

	return tx*pr.scale + pr.half, -ty*pr.scale + pr.half, (tz - pr.center[2]) * pr.scale
}
