package sim

import "math"

// golden angle in radians; consecutive seeds land far apart on the circle
const goldenAngle = 2.399963229728653

// Breathing oscillates an object's scale around its base scale.
type Breathing struct {
	Amplitude float64
	Frequency float64
}

func (b Breathing) PhaseOffset(seed int) float64 {
	return math.Mod(float64(seed)*goldenAngle, 2*math.Pi)
}

func (b Breathing) Scale(t, base float64, seed int) float64 {
	return base + b.Amplitude*math.Sin(t*b.Frequency+b.PhaseOffset(seed))
}

func (b Breathing) Apply(t float64, o *Object) {
	o.Mesh.Scale = b.Scale(t, o.BaseScale, o.PhaseSeed)
}
