package sim_test

import (
	"github.com/san-kum/mitosis/internal/scene"
	"github.com/san-kum/mitosis/internal/sim"
)

type countingRenderer struct{ calls int }

func (r *countingRenderer) Render(*scene.Scene, *scene.Camera) { r.calls++ }

type countingMetric struct {
	count int
	last  sim.FrameStats
}

func (m *countingMetric) Name() string { return "count" }
func (m *countingMetric) Observe(s sim.FrameStats) {
	m.count++
	m.last = s
}
func (m *countingMetric) Value() float64 { return float64(m.count) }
func (m *countingMetric) Reset()         { m.count = 0 }
