package sim_test

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mitosis/internal/config"
	"github.com/san-kum/mitosis/internal/sim"
)

func expectPaired(s *sim.Simulator) {
	objects := s.Objects()
	Expect(s.World().Len()).To(Equal(len(objects)))
	// the ring is the only mesh without an object
	Expect(s.Scene().Len()).To(Equal(len(objects) + 1))
	for _, o := range objects {
		Expect(o.Mesh).NotTo(BeNil())
		Expect(o.Body).NotTo(BeNil())
		Expect(o.Body.InWorld()).To(BeTrue())
		Expect(s.Scene().Contains(o.Mesh)).To(BeTrue())
	}
}

var _ = Describe("Simulator", func() {
	var (
		cfg *config.Config
		s   *sim.Simulator
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
	})

	JustBeforeEach(func() {
		var err error
		s, err = sim.New(cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts with one seed sphere at the origin", func() {
		Expect(s.Len()).To(Equal(1))
		o := s.Objects()[0]
		Expect(o.BaseScale).To(Equal(2.0))
		Expect(o.Scale()).To(Equal(2.0))
		Expect(o.Body.Position).To(Equal(mgl64.Vec3{}))
		Expect(o.Body.LinearDamping).To(Equal(0.8))
		Expect(o.Body.AngularDamping).To(Equal(0.8))
		Expect(s.World().Gravity).To(Equal(mgl64.Vec3{}))
		expectPaired(s)
	})

	It("rejects an invalid config", func() {
		bad := config.DefaultConfig()
		bad.Split.Ratio = 0
		_, err := sim.New(bad)
		Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
	})

	Describe("clicking", func() {
		It("splits the seed into two children", func() {
			res, err := s.Click(0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).NotTo(BeNil())
			Expect(res.Parent).To(Equal(1))

			Expect(s.Len()).To(Equal(2))
			Expect(s.Registry().Get(res.Parent)).To(BeNil())

			left, right := s.Objects()[0], s.Objects()[1]
			Expect(left.ID).To(Equal(res.Children[0]))
			Expect(right.ID).To(Equal(res.Children[1]))

			for i, o := range []*sim.Object{left, right} {
				sign := -1.0
				if i == 1 {
					sign = 1.0
				}
				Expect(o.Scale()).To(BeNumerically("~", 1.4, 1e-12))
				Expect(o.BaseScale).To(BeNumerically("~", 1.4, 1e-12))
				Expect(o.Body.Radius).To(BeNumerically("~", 1.4, 1e-12))

				p := o.Body.Position
				Expect(p.X()).To(BeNumerically("~", sign*0.3*1.4, 1e-12))
				Expect(math.Abs(p.Y())).To(BeNumerically("<=", 0.05))
				Expect(math.Abs(p.Z())).To(BeNumerically("<=", 0.05))

				v := o.Body.Velocity
				Expect(v.X() * sign).To(BeNumerically(">=", 0.05))
				Expect(v.X() * sign).To(BeNumerically("<=", 0.10))
				Expect(math.Abs(v.Y())).To(BeNumerically("<=", 0.025))
				Expect(math.Abs(v.Z())).To(BeNumerically("<=", 0.025))

				// visuals are in sync before the next frame
				Expect(o.Mesh.Position).To(Equal(o.Body.Position))
				Expect(o.Mesh.Quaternion).To(Equal(o.Body.Quaternion))
			}
			expectPaired(s)
		})

		It("does nothing when the click hits empty space", func() {
			res, err := s.Click(0.99, 0.99)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(BeNil())
			Expect(s.Len()).To(Equal(1))
			Expect(s.World().Len()).To(Equal(1))
			Expect(s.Splits()).To(Equal(0))
		})

		It("ignores the ring", func() {
			x, y, ok := func() (float64, float64, bool) {
				ndc, ok := s.Camera().Project(s.Ring().TorusPoint(0, 0))
				return ndc.X(), ndc.Y(), ok
			}()
			Expect(ok).To(BeTrue())

			res, err := s.Click(x, y)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(BeNil())
			Expect(s.Len()).To(Equal(1))
		})

		It("only splits the nearest of overlapping objects", func() {
			_, err := s.Click(0, 0)
			Expect(err).NotTo(HaveOccurred())

			// move one child straight in front of the other
			front, back := s.Objects()[0], s.Objects()[1]
			front.Body.Position = mgl64.Vec3{0, 0, 3}
			back.Body.Position = mgl64.Vec3{0, 0, -1}
			front.SyncPose()
			back.SyncPose()

			res, err := s.Click(0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Parent).To(Equal(front.ID))
			Expect(s.Registry().Get(back.ID)).NotTo(BeNil())
			Expect(s.Len()).To(Equal(3))
		})
	})

	Describe("repeated splitting", func() {
		It("adds one object per split and shrinks by the ratio each generation", func() {
			_, err := s.Click(0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Len()).To(Equal(2))

			res, err := s.Split(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Len()).To(Equal(3))

			for _, id := range res.Children {
				o := s.Registry().Get(id)
				Expect(o).NotTo(BeNil())
				Expect(o.Scale()).To(BeNumerically("~", 0.7*0.7*2, 1e-12))
			}
			Expect(s.Splits()).To(Equal(2))
			expectPaired(s)
		})

		It("never reuses ids", func() {
			seen := map[int]bool{}
			for i := 0; i < 5; i++ {
				for _, o := range s.Objects() {
					seen[o.ID] = true
				}
				_, err := s.Split(s.Len() - 1)
				Expect(err).NotTo(HaveOccurred())
			}
			for _, id := range []int{s.Objects()[s.Len()-2].ID, s.Objects()[s.Len()-1].ID} {
				Expect(seen[id]).To(BeFalse())
			}
		})
	})

	Describe("limits", func() {
		Context("with a scale floor above the first generation", func() {
			BeforeEach(func() {
				cfg.Split.MinScale = 1.5
			})

			It("refuses the split and leaves everything in place", func() {
				res, err := s.Click(0, 0)
				Expect(res).To(BeNil())
				Expect(errors.Is(err, sim.ErrBelowMinScale)).To(BeTrue())

				var splitErr *sim.SplitError
				Expect(errors.As(err, &splitErr)).To(BeTrue())
				Expect(splitErr.ObjectID).To(Equal(1))

				Expect(s.Len()).To(Equal(1))
				expectPaired(s)
			})
		})

		Context("with a population cap", func() {
			BeforeEach(func() {
				cfg.Split.MaxObjects = 2
			})

			It("stops splitting at the cap", func() {
				_, err := s.Split(0)
				Expect(err).NotTo(HaveOccurred())

				_, err = s.Split(0)
				Expect(errors.Is(err, sim.ErrPopulationCap)).To(BeTrue())
				Expect(s.Len()).To(Equal(2))
			})
		})

		It("reports a missing index", func() {
			_, err := s.Split(7)
			Expect(errors.Is(err, sim.ErrObjectNotFound)).To(BeTrue())
		})
	})

	Describe("frames", func() {
		It("advances physics by a fixed step regardless of frame time", func() {
			s.Frame(0.5)
			Expect(s.World().Time()).To(BeNumerically("~", 1.0/60, 1e-12))
			Expect(s.Elapsed()).To(Equal(0.5))

			s.Frame(0.001)
			Expect(s.World().Steps()).To(Equal(2))
			Expect(s.World().Time()).To(BeNumerically("~", 2.0/60, 1e-12))
		})

		It("keeps every scale inside the breathing band", func() {
			_, err := s.Click(0, 0)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 600; i++ {
				s.Frame(1.0 / 60)
				for _, o := range s.Objects() {
					Expect(o.Scale()).To(BeNumerically(">=", o.BaseScale-0.05-1e-12))
					Expect(o.Scale()).To(BeNumerically("<=", o.BaseScale+0.05+1e-12))
				}
			}
		})

		It("pulls a stray body back and counts the correction", func() {
			o := s.Objects()[0]
			o.Body.Position = mgl64.Vec3{4, 0, 0}
			o.Body.Velocity = mgl64.Vec3{1, 0, 0}

			stats := s.Frame(1.0 / 60)
			Expect(stats.Corrections).To(Equal(1))
			Expect(o.Body.Velocity.X()).To(BeNumerically("<", 0.7))

			for i := 0; i < 60*60; i++ {
				s.Frame(1.0 / 60)
			}
			Expect(math.Abs(o.Body.Position.X())).To(BeNumerically("<=", 3.05))
		})

		It("separates freshly split children over time", func() {
			_, err := s.Click(0, 0)
			Expect(err).NotTo(HaveOccurred())
			a, b := s.Objects()[0], s.Objects()[1]
			before := b.Body.Position.Sub(a.Body.Position).Len()

			for i := 0; i < 120; i++ {
				s.Frame(1.0 / 60)
			}
			Expect(b.Body.Position.Sub(a.Body.Position).Len()).To(BeNumerically(">", before))
			Expect(a.Mesh.Position).NotTo(Equal(mgl64.Vec3{}))
		})

		It("spins the ring", func() {
			before := s.Ring().Quaternion
			s.Frame(1)
			Expect(s.Ring().Quaternion).NotTo(Equal(before))
		})

		It("calls the renderer once per frame", func() {
			r := &countingRenderer{}
			s.SetRenderer(r)
			s.Frame(1.0 / 60)
			s.Frame(1.0 / 60)
			Expect(r.calls).To(Equal(2))
		})

		It("feeds attached metrics", func() {
			m := &countingMetric{}
			s.AddMetric(m)
			s.Frame(1.0 / 60)
			s.Frame(1.0 / 60)
			Expect(m.count).To(Equal(2))
			Expect(m.last.Population).To(Equal(1))
			Expect(m.last.Frame).To(Equal(2))
		})
	})

	It("resizes only the camera", func() {
		s.Resize(200, 100)
		Expect(s.Camera().Aspect).To(Equal(2.0))
		Expect(s.Len()).To(Equal(1))
	})

	It("resets back to the seed sphere", func() {
		_, err := s.Click(0, 0)
		Expect(err).NotTo(HaveOccurred())
		s.Frame(1.0 / 60)

		s.Reset()
		Expect(s.Len()).To(Equal(1))
		Expect(s.Objects()[0].Scale()).To(Equal(2.0))
		Expect(s.Elapsed()).To(Equal(0.0))
		Expect(s.Splits()).To(Equal(0))
		expectPaired(s)
	})

	It("is reproducible for a given seed", func() {
		other, err := sim.New(config.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())

		_, err = s.Click(0, 0)
		Expect(err).NotTo(HaveOccurred())
		_, err = other.Click(0, 0)
		Expect(err).NotTo(HaveOccurred())

		for i := range s.Objects() {
			Expect(s.Objects()[i].Body.Position).To(Equal(other.Objects()[i].Body.Position))
			Expect(s.Objects()[i].Body.Velocity).To(Equal(other.Objects()[i].Body.Velocity))
		}
	})
})
