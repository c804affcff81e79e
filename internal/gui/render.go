package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/mitosis/internal/scene"
)

const (
	sphereRings   = 24
	sphereSlices  = 32
	ringSegments  = 96
	ringTubeSides = 8
)

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// syncCamera copies the scene camera into raylib's camera so both pick and
// draw with the same view.
func (a *App) syncCamera(cam *scene.Camera) {
	a.camera = rl.NewCamera3D(
		vec3(cam.Position),
		vec3(cam.Target),
		vec3(cam.Up),
		float32(cam.Fov),
		rl.CameraPerspective,
	)
}

// Render implements sim.Renderer. It must run between BeginDrawing and
// EndDrawing.
func (a *App) Render(sc *scene.Scene, cam *scene.Camera) {
	a.syncCamera(cam)
	rl.BeginMode3D(a.camera)
	for _, m := range sc.Meshes() {
		if !m.Visible {
			continue
		}
		switch m.Geometry {
		case scene.Sphere:
			drawSphere(sc, cam, m)
		case scene.Torus:
			drawTorus(sc, cam, m)
		}
	}
	rl.EndMode3D()
}

// shaded scales a material color by the scene's shading at the point of the
// mesh facing the camera.
func shaded(sc *scene.Scene, cam *scene.Camera, m *scene.Mesh, p, n mgl64.Vec3) rl.Color {
	b := 0.35 + 0.65*sc.Shade(p, n, cam.Position, m.Material)
	c := m.Material.Color
	return rl.NewColor(
		uint8(math.Min(255, float64(c[0])*b)),
		uint8(math.Min(255, float64(c[1])*b)),
		uint8(math.Min(255, float64(c[2])*b)),
		255,
	)
}

func drawSphere(sc *scene.Scene, cam *scene.Camera, m *scene.Mesh) {
	r := m.WorldRadius()
	n := cam.Position.Sub(m.Position).Normalize()
	col := shaded(sc, cam, m, m.Position.Add(n.Mul(r)), n)

	center := vec3(m.Position)
	rl.DrawSphereEx(center, float32(r), sphereRings, sphereSlices, col)
	rl.DrawSphereWires(center, float32(r)*1.001, sphereRings/2, sphereSlices/2, rl.Fade(rl.Black, 0.15))
}

// drawTorus draws the ring as a chain of thin cylinders along its center
// line.
func drawTorus(sc *scene.Scene, cam *scene.Camera, m *scene.Mesh) {
	point := func(u float64) mgl64.Vec3 {
		local := mgl64.Vec3{m.Radius * math.Cos(u), m.Radius * math.Sin(u), 0}
		return m.Quaternion.Rotate(local.Mul(m.Scale)).Add(m.Position)
	}
	tube := float32(m.Tube * m.Scale)

	prev := point(0)
	for i := 1; i <= ringSegments; i++ {
		u := 2 * math.Pi * float64(i) / ringSegments
		p := point(u)
		n := p.Sub(m.Position).Normalize()
		col := shaded(sc, cam, m, p, n)
		rl.DrawCylinderEx(vec3(prev), vec3(p), tube, tube, ringTubeSides, col)
		prev = p
	}
}
