package sim

import (
	"testing"

	"github.com/san-kum/mitosis/internal/config"
	"github.com/san-kum/mitosis/internal/physics"
)

func benchSimulator(b *testing.B, splits int) *Simulator {
	b.Helper()
	cfg := config.DefaultConfig()
	cfg.Split.MinScale = 0
	s, err := New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < splits; i++ {
		if _, err := s.Split(0); err != nil {
			b.Fatal(err)
		}
	}
	return s
}

func BenchmarkFrame(b *testing.B) {
	s := benchSimulator(b, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Frame(1.0 / 60)
	}
}

func BenchmarkFrame64(b *testing.B) {
	s := benchSimulator(b, 63)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Frame(1.0 / 60)
	}
}

func BenchmarkClick(b *testing.B) {
	s := benchSimulator(b, 31)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// a corner of the view, away from every sphere
		s.Click(0.99, 0.99)
	}
}

func BenchmarkWorldStep(b *testing.B) {
	w := physics.NewWorld()
	for i := 0; i < 64; i++ {
		w.AddBody(physics.NewBody(physics.BodyOptions{Mass: 1, Radius: 0.2}))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Step(1.0 / 60)
	}
}
