package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a dynamic rigid sphere.
type Body struct {
	ID              int
	Mass            float64
	Radius          float64
	Position        mgl64.Vec3
	Quaternion      mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	LinearDamping   float64
	AngularDamping  float64

	force  mgl64.Vec3
	torque mgl64.Vec3
	world  *World
}

// BodyOptions configures a new Body. Zero damping is valid; zero mass is not.
type BodyOptions struct {
	Mass           float64
	Radius         float64
	Position       mgl64.Vec3
	Velocity       mgl64.Vec3
	LinearDamping  float64
	AngularDamping float64
}

func NewBody(opts BodyOptions) *Body {
	return &Body{
		Mass:           opts.Mass,
		Radius:         opts.Radius,
		Position:       opts.Position,
		Quaternion:     mgl64.QuatIdent(),
		Velocity:       opts.Velocity,
		LinearDamping:  opts.LinearDamping,
		AngularDamping: opts.AngularDamping,
	}
}

// ApplyForce accumulates force f acting at worldPoint for the next step.
// A point away from the center of mass also produces torque.
func (b *Body) ApplyForce(f, worldPoint mgl64.Vec3) {
	b.force = b.force.Add(f)
	r := worldPoint.Sub(b.Position)
	b.torque = b.torque.Add(r.Cross(f))
}

// Force returns the force accumulated since the last step.
func (b *Body) Force() mgl64.Vec3 { return b.force }

// Torque returns the torque accumulated since the last step.
func (b *Body) Torque() mgl64.Vec3 { return b.torque }

func (b *Body) InvMass() float64 {
	if b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// inertia of a solid sphere
func (b *Body) invInertia() float64 {
	i := 0.4 * b.Mass * b.Radius * b.Radius
	if i <= 0 {
		return 0
	}
	return 1 / i
}

func (b *Body) KineticEnergy() float64 {
	lin := 0.5 * b.Mass * b.Velocity.LenSqr()
	i := 0.4 * b.Mass * b.Radius * b.Radius
	return lin + 0.5*i*b.AngularVelocity.LenSqr()
}

// InWorld reports whether the body is currently part of a world.
func (b *Body) InWorld() bool { return b.world != nil }

func (b *Body) integrate(gravity mgl64.Vec3, dt float64) {
	invM := b.InvMass()
	if invM == 0 {
		b.clearForces()
		return
	}

	acc := b.force.Mul(invM).Add(gravity)
	b.Velocity = b.Velocity.Add(acc.Mul(dt))
	b.AngularVelocity = b.AngularVelocity.Add(b.torque.Mul(b.invInertia() * dt))

	b.Velocity = b.Velocity.Mul(math.Pow(1-b.LinearDamping, dt))
	b.AngularVelocity = b.AngularVelocity.Mul(math.Pow(1-b.AngularDamping, dt))

	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	// dq/dt = 0.5 * w * q
	w := mgl64.Quat{W: 0, V: b.AngularVelocity}
	dq := w.Mul(b.Quaternion).Scale(0.5 * dt)
	b.Quaternion = b.Quaternion.Add(dq).Normalize()

	b.clearForces()
}

func (b *Body) clearForces() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
}
