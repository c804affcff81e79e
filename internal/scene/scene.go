package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type LightKind int

const (
	Ambient LightKind = iota
	Point
	Directional
)

type Light struct {
	Kind      LightKind
	Color     [3]uint8
	Intensity float64
	Position  mgl64.Vec3
}

// Scene is the flat list of everything that gets drawn.
type Scene struct {
	Background [3]uint8

	meshes []*Mesh
	lights []Light
	nextID int
}

func New() *Scene {
	return &Scene{
		Background: [3]uint8{10, 10, 16},
		meshes:     make([]*Mesh, 0),
	}
}

// Add inserts m and gives it a scene id.
func (s *Scene) Add(m *Mesh) {
	s.nextID++
	m.ID = s.nextID
	s.meshes = append(s.meshes, m)
}

func (s *Scene) Remove(m *Mesh) bool {
	for i, o := range s.meshes {
		if o == m {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) Contains(m *Mesh) bool {
	for _, o := range s.meshes {
		if o == m {
			return true
		}
	}
	return false
}

func (s *Scene) AddLight(l Light) { s.lights = append(s.lights, l) }
func (s *Scene) Lights() []Light  { return s.lights }
func (s *Scene) Meshes() []*Mesh  { return s.meshes }
func (s *Scene) Len() int         { return len(s.meshes) }

// Shade returns a brightness in [0,1] for a surface point with normal n seen
// from eye, using the scene lights and the material's metalness for the
// specular term.
func (s *Scene) Shade(p, n, eye mgl64.Vec3, mat Material) float64 {
	view := eye.Sub(p).Normalize()
	total := 0.0
	for _, l := range s.lights {
		switch l.Kind {
		case Ambient:
			total += l.Intensity * 0.3
		case Point, Directional:
			dir := l.Position.Normalize()
			if l.Kind == Point {
				dir = l.Position.Sub(p).Normalize()
			}
			diff := n.Dot(dir)
			if diff <= 0 {
				continue
			}
			total += l.Intensity * diff * (1 - 0.5*mat.Metalness)

			half := dir.Add(view).Normalize()
			shininess := 8 + 56*(1-mat.Roughness)
			spec := math.Pow(math.Max(n.Dot(half), 0), shininess)
			total += l.Intensity * spec * (0.2 + 0.8*mat.Metalness)
		}
	}
	if total > 1 {
		return 1
	}
	return total
}
