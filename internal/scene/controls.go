package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const polarEpsilon = 1e-6

// OrbitControls orbits a camera around a target on a sphere. Input only
// queues rotation and zoom; Update eases the camera towards it, removing
// DampingFactor of the pending motion per call.
type OrbitControls struct {
	Camera        *Camera
	Target        mgl64.Vec3
	DampingFactor float64
	MinDistance   float64
	MaxDistance   float64

	radius, theta, phi float64
	dTheta, dPhi       float64
	zoom               float64
}

func NewOrbitControls(cam *Camera) *OrbitControls {
	oc := &OrbitControls{
		Camera:        cam,
		Target:        cam.Target,
		DampingFactor: 0.05,
		MinDistance:   0,
		MaxDistance:   math.Inf(1),
		zoom:          1,
	}
	oc.sync()
	return oc
}

func (oc *OrbitControls) sync() {
	off := oc.Camera.Position.Sub(oc.Target)
	oc.radius = off.Len()
	if oc.radius == 0 {
		oc.theta, oc.phi = 0, math.Pi/2
		return
	}
	oc.theta = math.Atan2(off.X(), off.Z())
	oc.phi = math.Acos(clamp(off.Y()/oc.radius, -1, 1))
}

// Rotate queues an orbit of dTheta radians around the up axis and dPhi
// radians towards the poles.
func (oc *OrbitControls) Rotate(dTheta, dPhi float64) {
	oc.dTheta += dTheta
	oc.dPhi += dPhi
}

// Zoom scales the orbit distance; factors below 1 move closer.
func (oc *OrbitControls) Zoom(factor float64) {
	if factor > 0 {
		oc.zoom *= factor
	}
}

func (oc *OrbitControls) Distance() float64 { return oc.radius }

// Update applies pending motion and repositions the camera. It reports
// whether the camera moved noticeably.
func (oc *OrbitControls) Update() bool {
	prev := oc.Camera.Position

	damping := oc.DampingFactor
	if damping <= 0 || damping > 1 {
		damping = 1
	}
	oc.theta += oc.dTheta * damping
	oc.phi += oc.dPhi * damping
	oc.phi = clamp(oc.phi, polarEpsilon, math.Pi-polarEpsilon)

	oc.radius = clamp(oc.radius*oc.zoom, oc.MinDistance, oc.MaxDistance)
	oc.zoom = 1

	sinPhi := math.Sin(oc.phi)
	off := mgl64.Vec3{
		oc.radius * sinPhi * math.Sin(oc.theta),
		oc.radius * math.Cos(oc.phi),
		oc.radius * sinPhi * math.Cos(oc.theta),
	}
	oc.Camera.Position = oc.Target.Add(off)
	oc.Camera.Target = oc.Target

	oc.dTheta *= 1 - damping
	oc.dPhi *= 1 - damping

	return oc.Camera.Position.Sub(prev).LenSqr() > 1e-12
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
