package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/mitosis/internal/physics"
)

// Boundary pulls bodies back towards the origin once any coordinate leaves
// [-Limit, Limit]. It is re-evaluated every frame, so a body is nudged for
// as long as it stays outside.
type Boundary struct {
	Limit          float64
	ForceFactor    float64
	VelocityFactor float64
}

func (b Boundary) Outside(p mgl64.Vec3) bool {
	return math.Abs(p.X()) > b.Limit || math.Abs(p.Y()) > b.Limit || math.Abs(p.Z()) > b.Limit
}

// Apply reports whether a correction was applied to body.
func (b Boundary) Apply(body *physics.Body) bool {
	p := body.Position
	if !b.Outside(p) {
		return false
	}
	body.ApplyForce(p.Mul(-b.ForceFactor), p)
	body.Velocity = body.Velocity.Mul(b.VelocityFactor)
	return true
}
