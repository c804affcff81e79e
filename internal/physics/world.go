package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultRestitution = 0.3
	// fraction of penetration removed per step
	DefaultContactStiffness = 0.2
)

// World owns a set of bodies and advances them with a fixed step.
type World struct {
	Gravity          mgl64.Vec3
	Restitution      float64
	ContactStiffness float64
	Collisions       bool

	bodies []*Body
	nextID int
	time   float64
	steps  int
}

func NewWorld() *World {
	return &World{
		Restitution:      DefaultRestitution,
		ContactStiffness: DefaultContactStiffness,
		Collisions:       true,
		bodies:           make([]*Body, 0),
	}
}

// AddBody inserts b and assigns it an id. Adding a body twice is a no-op.
func (w *World) AddBody(b *Body) {
	if b.world == w {
		return
	}
	w.nextID++
	b.ID = w.nextID
	b.world = w
	w.bodies = append(w.bodies, b)
}

// RemoveBody reports whether b was part of the world.
func (w *World) RemoveBody(b *Body) bool {
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			b.world = nil
			return true
		}
	}
	return false
}

func (w *World) Bodies() []*Body { return w.bodies }
func (w *World) Len() int        { return len(w.bodies) }
func (w *World) Time() float64   { return w.time }
func (w *World) Steps() int      { return w.steps }

// Step advances the world by exactly dt seconds: contacts are resolved
// first, then forces, damping and velocities are integrated.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if w.Collisions {
		w.resolveContacts()
	}
	for _, b := range w.bodies {
		b.integrate(w.Gravity, dt)
	}
	w.time += dt
	w.steps++
}

func (w *World) resolveContacts() {
	n := len(w.bodies)
	for i := 0; i < n; i++ {
		a := w.bodies[i]
		for j := i + 1; j < n; j++ {
			w.collide(a, w.bodies[j])
		}
	}
}

func (w *World) collide(a, b *Body) {
	d := b.Position.Sub(a.Position)
	minDist := a.Radius + b.Radius
	distSq := d.LenSqr()
	if distSq >= minDist*minDist {
		return
	}

	invA, invB := a.InvMass(), b.InvMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	dist := d.Len()
	normal := mgl64.Vec3{1, 0, 0}
	if dist > 1e-9 {
		normal = d.Mul(1 / dist)
	}

	penetration := minDist - dist
	corr := normal.Mul(penetration * w.ContactStiffness / invSum)
	a.Position = a.Position.Sub(corr.Mul(invA))
	b.Position = b.Position.Add(corr.Mul(invB))

	relVel := b.Velocity.Sub(a.Velocity).Dot(normal)
	if relVel >= 0 {
		return
	}
	jn := -(1 + w.Restitution) * relVel / invSum
	impulse := normal.Mul(jn)
	a.Velocity = a.Velocity.Sub(impulse.Mul(invA))
	b.Velocity = b.Velocity.Add(impulse.Mul(invB))
}
