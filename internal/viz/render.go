package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/mitosis/internal/scene"
)

// 4x4 ordered dither thresholds, scaled to [0,1) at use.
var bayer = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

const ringSegments = 96

// Renderer rasterises a scene onto a braille canvas. Spheres are ray traced
// per dot inside their projected bounds and dithered by brightness; the
// ring is drawn as depth-tested wireframe loops.
type Renderer struct {
	Canvas *Canvas
	// RingColor overrides the ring's material color when set.
	RingColor lipgloss.Color

	invVP mgl64.Mat4
}

func NewRenderer(c *Canvas) *Renderer {
	return &Renderer{Canvas: c}
}

// Render implements sim.Renderer.
func (r *Renderer) Render(sc *scene.Scene, cam *scene.Camera) {
	r.Canvas.Clear()
	r.invVP = cam.ViewProjection().Inv()

	for _, m := range sc.Meshes() {
		if !m.Visible {
			continue
		}
		switch m.Geometry {
		case scene.Sphere:
			r.drawSphere(sc, cam, m)
		case scene.Torus:
			r.drawTorus(cam, m)
		}
	}
}

// pixelNDC maps the center of dot (x, y) to normalized device coordinates.
func (r *Renderer) pixelNDC(x, y int) (float64, float64) {
	w, h := r.Canvas.PixelSize()
	return (float64(x)+0.5)/float64(w)*2 - 1, 1 - (float64(y)+0.5)/float64(h)*2
}

func (r *Renderer) ndcPixel(ndc mgl64.Vec3) (int, int) {
	w, h := r.Canvas.PixelSize()
	x := (ndc.X() + 1) / 2 * float64(w)
	y := (1 - ndc.Y()) / 2 * float64(h)
	return int(math.Floor(x)), int(math.Floor(y))
}

func (r *Renderer) ray(cam *scene.Camera, x, y int) scene.Ray {
	nx, ny := r.pixelNDC(x, y)
	v := r.invVP.Mul4x1(mgl64.Vec4{nx, ny, 0.5, 1})
	p := v.Vec3().Mul(1 / v.W())
	return scene.Ray{Origin: cam.Position, Direction: p.Sub(cam.Position).Normalize()}
}

// bounds returns the dot rectangle covering a sphere, clipped to the canvas.
func (r *Renderer) bounds(cam *scene.Camera, center mgl64.Vec3, radius float64) (x0, y0, x1, y1 int, ok bool) {
	fwd := cam.Target.Sub(cam.Position).Normalize()
	right := fwd.Cross(cam.Up).Normalize()
	up := right.Cross(fwd)

	w, h := r.Canvas.PixelSize()
	x0, y0, x1, y1 = w, h, -1, -1
	// Pad the silhouette; perspective makes it slightly larger than the
	// projected radius.
	pad := radius * 1.25
	for _, d := range []mgl64.Vec3{right, right.Mul(-1), up, up.Mul(-1)} {
		ndc, vis := cam.Project(center.Add(d.Mul(pad)))
		if !vis {
			return 0, 0, w - 1, h - 1, true
		}
		px, py := r.ndcPixel(ndc)
		x0, y0 = min(x0, px), min(y0, py)
		x1, y1 = max(x1, px), max(y1, py)
	}
	x0, y0 = max(x0-1, 0), max(y0-1, 0)
	x1, y1 = min(x1+1, w-1), min(y1+1, h-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}

func (r *Renderer) drawSphere(sc *scene.Scene, cam *scene.Camera, m *scene.Mesh) {
	radius := m.WorldRadius()
	if cam.Depth(m.Position)+radius <= cam.Near {
		return
	}
	x0, y0, x1, y1, ok := r.bounds(cam, m.Position, radius)
	if !ok {
		return
	}
	col := colorOf(m.Material.Color)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ray := r.ray(cam, x, y)
			t, hit := ray.IntersectSphere(m.Position, radius, cam.Near, cam.Far)
			if !hit {
				continue
			}
			p := ray.At(t)
			n := p.Sub(m.Position).Normalize()
			b := sc.Shade(p, n, cam.Position, m.Material)
			on := b > (bayer[y%4][x%4]+0.5)/16
			r.Canvas.Plot(x, y, t, on, col)
		}
	}
}

func (r *Renderer) drawTorus(cam *scene.Camera, m *scene.Mesh) {
	col := r.RingColor
	if col == "" {
		col = colorOf(m.Material.Color)
	}
	// center line plus the inner and outer rims
	for _, v := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		var px, py int
		var pz float64
		have := false
		for i := 0; i <= ringSegments; i++ {
			u := 2 * math.Pi * float64(i) / ringSegments
			p := m.TorusPoint(u, v)
			ndc, vis := cam.Project(p)
			if !vis {
				have = false
				continue
			}
			x, y := r.ndcPixel(ndc)
			z := p.Sub(cam.Position).Len()
			if have {
				r.Canvas.DrawLine(px, py, pz, x, y, z, col)
			}
			px, py, pz, have = x, y, z, true
		}
	}
}

func colorOf(c [3]uint8) lipgloss.Color {
	return lipgloss.Color(hexColor(int(c[0]), int(c[1]), int(c[2])))
}

// CellNDC maps a terminal cell inside a w x h cell canvas to the NDC of its
// center. The bool is false outside the canvas.
func CellNDC(col, row, w, h int) (float64, float64, bool) {
	if col < 0 || row < 0 || col >= w || row >= h {
		return 0, 0, false
	}
	x := (float64(col*2) + 1) / float64(w*2)
	y := (float64(row*4) + 2) / float64(h*4)
	return x*2 - 1, 1 - y*2, true
}
