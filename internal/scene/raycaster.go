package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

type Ray struct {
	Origin, Direction mgl64.Vec3
}

func (r Ray) At(t float64) mgl64.Vec3 { return r.Origin.Add(r.Direction.Mul(t)) }

// IntersectSphere returns the nearest distance along the ray within
// [tMin, tMax] at which it enters a sphere.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius, tMin, tMax float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	a := r.Direction.Dot(r.Direction)
	halfB := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(disc)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, false
		}
	}
	return root, true
}

type Intersection struct {
	Mesh     *Mesh
	Distance float64
	Point    mgl64.Vec3
}

// Raycaster picks meshes along a ray. Only sphere geometry is pickable.
type Raycaster struct {
	Ray       Ray
	Near, Far float64
}

func NewRaycaster() *Raycaster {
	return &Raycaster{Near: 0, Far: math.Inf(1)}
}

func (rc *Raycaster) SetFromCamera(ndcX, ndcY float64, cam *Camera) {
	rc.Ray = cam.Ray(ndcX, ndcY)
	rc.Near = cam.Near
	rc.Far = cam.Far
}

// IntersectObjects returns every hit sorted nearest first.
func (rc *Raycaster) IntersectObjects(meshes []*Mesh) []Intersection {
	hits := make([]Intersection, 0)
	for _, m := range meshes {
		if !m.Visible || m.Geometry != Sphere {
			continue
		}
		t, ok := rc.Ray.IntersectSphere(m.Position, m.WorldRadius(), rc.Near, rc.Far)
		if !ok {
			continue
		}
		hits = append(hits, Intersection{Mesh: m, Distance: t, Point: rc.Ray.At(t)})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}
