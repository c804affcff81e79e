package viz

import (
	"testing"

	"github.com/san-kum/mitosis/internal/config"
	"github.com/san-kum/mitosis/internal/sim"
)

func BenchmarkRender(b *testing.B) {
	s, err := sim.New(config.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	c := NewCanvas(120, 40)
	s.Resize(c.PixelSize())
	r := NewRenderer(c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Render(s.Scene(), s.Camera())
	}
}
