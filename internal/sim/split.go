package sim

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// ChildSpec is the initial state of one half of a split.
type ChildSpec struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Scale    float64
}

// Splitter decides where the two halves of a split go and how fast they
// leave. The first child always goes to -x, the second to +x.
type Splitter struct {
	Ratio          float64
	Offset         float64
	PositionJitter float64
	BaseSpeed      float64
	SpeedJitter    float64
	LateralSpeed   float64
	MinScale       float64
	MaxObjects     int

	rng *rand.Rand
}

func NewSplitter(rng *rand.Rand) *Splitter {
	return &Splitter{rng: rng}
}

// Plan computes both children of an object at p with current scale. The
// population is the registry size before the split.
func (sp *Splitter) Plan(p mgl64.Vec3, scale float64, population int) ([2]ChildSpec, error) {
	var children [2]ChildSpec

	newScale := scale * sp.Ratio
	if newScale < sp.MinScale {
		return children, ErrBelowMinScale
	}
	if sp.MaxObjects > 0 && population+1 > sp.MaxObjects {
		return children, ErrPopulationCap
	}

	for i := range children {
		sign := -1.0
		if i == 1 {
			sign = 1.0
		}
		j := sp.PositionJitter
		children[i] = ChildSpec{
			Position: p.Add(mgl64.Vec3{
				sign * sp.Offset * newScale,
				sp.uniform(-j, j),
				sp.uniform(-j, j),
			}),
			Velocity: mgl64.Vec3{
				sign * (sp.BaseSpeed + sp.uniform(0, sp.SpeedJitter)),
				sp.uniform(-sp.LateralSpeed, sp.LateralSpeed),
				sp.uniform(-sp.LateralSpeed, sp.LateralSpeed),
			},
			Scale: newScale,
		}
	}
	return children, nil
}

func (sp *Splitter) uniform(lo, hi float64) float64 {
	return lo + sp.rng.Float64()*(hi-lo)
}
