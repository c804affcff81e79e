package metrics

import "github.com/san-kum/mitosis/internal/sim"

// Population is the largest object count seen.
type Population struct {
	name string
	peak int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(s sim.FrameStats) {
	if s.Population > p.peak {
		p.peak = s.Population
	}
}

func (p *Population) Value() float64 { return float64(p.peak) }
func (p *Population) Reset()         { p.peak = 0 }

// Default returns a fresh set of the metrics every run reports.
func Default() []sim.Metric {
	return []sim.Metric{NewPopulation(), NewEnergy(), NewPeakEnergy(), NewContainment()}
}
