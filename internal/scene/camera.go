package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at Target. Fov is the vertical
// field of view in degrees. Call UpdateProjection after changing Fov,
// Aspect, Near or Far.
type Camera struct {
	Fov, Aspect, Near, Far float64
	Position, Target, Up   mgl64.Vec3

	projection mgl64.Mat4
}

func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl64.Vec3{0, 1, 0},
	}
	c.UpdateProjection()
	return c
}

func (c *Camera) UpdateProjection() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// SetViewport sets the aspect ratio from a pixel size and refreshes the
// projection. Degenerate sizes are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
	c.UpdateProjection()
}

func (c *Camera) Projection() mgl64.Mat4 { return c.projection }

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.projection.Mul4(c.View())
}

// Project maps a world point to normalized device coordinates. The bool is
// false when the point is behind the camera.
func (c *Camera) Project(p mgl64.Vec3) (mgl64.Vec3, bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return mgl64.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / w), true
}

// Unproject maps normalized device coordinates back to world space.
func (c *Camera) Unproject(ndc mgl64.Vec3) mgl64.Vec3 {
	inv := c.ViewProjection().Inv()
	v := inv.Mul4x1(ndc.Vec4(1))
	return v.Vec3().Mul(1 / v.W())
}

// Ray returns the pick ray through the given NDC point.
func (c *Camera) Ray(ndcX, ndcY float64) Ray {
	p := c.Unproject(mgl64.Vec3{ndcX, ndcY, 0.5})
	return Ray{Origin: c.Position, Direction: p.Sub(c.Position).Normalize()}
}

// Depth returns the view-space distance of p along the viewing direction.
func (c *Camera) Depth(p mgl64.Vec3) float64 {
	fwd := c.Target.Sub(c.Position).Normalize()
	return p.Sub(c.Position).Dot(fwd)
}
