package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Geometry int

const (
	Sphere Geometry = iota
	Torus
)

func (g Geometry) String() string {
	switch g {
	case Sphere:
		return "sphere"
	case Torus:
		return "torus"
	}
	return "unknown"
}

// Material is a physically based surface description. Front-ends map it to
// whatever shading they support.
type Material struct {
	Color     [3]uint8
	Metalness float64
	Roughness float64
}

// Mesh is a renderable primitive with a uniform scale. For a sphere Radius is
// the geometry radius; for a torus Radius is the ring radius and Tube the
// tube radius.
type Mesh struct {
	ID         int
	Name       string
	Geometry   Geometry
	Radius     float64
	Tube       float64
	Position   mgl64.Vec3
	Quaternion mgl64.Quat
	Scale      float64
	Material   Material
	Visible    bool
}

func NewSphere(radius float64, mat Material) *Mesh {
	return &Mesh{
		Geometry:   Sphere,
		Radius:     radius,
		Quaternion: mgl64.QuatIdent(),
		Scale:      1,
		Material:   mat,
		Visible:    true,
	}
}

func NewTorus(radius, tube float64, mat Material) *Mesh {
	return &Mesh{
		Geometry:   Torus,
		Radius:     radius,
		Tube:       tube,
		Quaternion: mgl64.QuatIdent(),
		Scale:      1,
		Material:   mat,
		Visible:    true,
	}
}

// WorldRadius is the bounding radius after scale.
func (m *Mesh) WorldRadius() float64 {
	if m.Geometry == Torus {
		return (m.Radius + m.Tube) * m.Scale
	}
	return m.Radius * m.Scale
}

// TorusPoint returns a world-space point on the torus surface for ring angle
// u and tube angle v. The ring lies in the mesh's local XY plane.
func (m *Mesh) TorusPoint(u, v float64) mgl64.Vec3 {
	r := m.Radius + m.Tube*math.Cos(v)
	local := mgl64.Vec3{r * math.Cos(u), r * math.Sin(u), m.Tube * math.Sin(v)}
	return m.Quaternion.Rotate(local.Mul(m.Scale)).Add(m.Position)
}

// AxisAngle converts the mesh orientation to an axis and angle in radians.
func (m *Mesh) AxisAngle() (mgl64.Vec3, float64) {
	q := m.Quaternion.Normalize()
	w := math.Max(-1, math.Min(1, q.W))
	angle := 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return mgl64.Vec3{0, 1, 0}, 0
	}
	return q.V.Mul(1 / s), angle
}
