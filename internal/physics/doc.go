// Package physics is a small rigid-body world for sphere bodies.
//
// A [World] holds [Body] values and advances them with a fixed step:
//
//	w := physics.NewWorld()
//	b := physics.NewBody(physics.BodyOptions{Mass: 1, Radius: 1, LinearDamping: 0.8})
//	w.AddBody(b)
//	b.ApplyForce(mgl64.Vec3{0, 1, 0}, b.Position)
//	w.Step(1.0 / 60)
//
// Damping follows the usual game-physics convention: each step scales
// velocity by (1-damping)^dt. Overlapping spheres are pushed apart with a
// soft positional correction and an inelastic impulse.
package physics
