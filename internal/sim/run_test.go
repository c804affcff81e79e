package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mitosis/internal/analysis"
	"github.com/san-kum/mitosis/internal/config"
	"github.com/san-kum/mitosis/internal/sim"
)

var _ = Describe("headless runs", func() {
	var s *sim.Simulator

	BeforeEach(func() {
		var err error
		s, err = sim.New(config.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("rejects bad run configs",
		func(rc sim.RunConfig) {
			_, err := s.Run(context.Background(), rc)
			Expect(errors.Is(err, sim.ErrInvalidRun)).To(BeTrue())
		},
		Entry("zero frames", sim.RunConfig{Frames: 0, FrameTime: 1.0 / 60}),
		Entry("zero frame time", sim.RunConfig{Frames: 10}),
		Entry("negative click interval", sim.RunConfig{Frames: 10, FrameTime: 1.0 / 60, ClickEvery: -1}),
	)

	It("records one sample per frame and splits on schedule", func() {
		res, err := s.Run(context.Background(), sim.RunConfig{Frames: 120, ClickEvery: 30, FrameTime: 1.0 / 60})
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Times).To(HaveLen(120))
		Expect(res.Population).To(HaveLen(120))
		Expect(res.Energy).To(HaveLen(120))
		Expect(res.Breath).To(HaveLen(120))

		Expect(res.Splits).To(Equal(3))
		Expect(res.FirstSplit).To(Equal(30))
		Expect(res.Population[0]).To(Equal(1.0))
		Expect(res.Population[119]).To(Equal(4.0))
		for i := 1; i < len(res.Population); i++ {
			Expect(res.Population[i]).To(BeNumerically(">=", res.Population[i-1]))
		}
		for _, b := range res.Breath {
			Expect(b).To(BeNumerically("<=", 0.05+1e-12))
			Expect(b).To(BeNumerically(">=", -0.05-1e-12))
		}
	})

	It("keeps one sphere breathing at the configured rate while others split", func() {
		rc := sim.RunConfig{Frames: 1200, ClickEvery: 30, FrameTime: 1.0 / 60}
		res, err := s.Run(context.Background(), rc)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Splits).To(BeNumerically(">", 10))

		samples := res.Breath[res.BreathFrom:]
		Expect(len(samples)).To(BeNumerically(">=", 600))

		want := s.Breathing().Frequency / (2 * math.Pi)
		hz, ok, err := analysis.CheckFrequency(samples, 60, want)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue(), "measured %.4f hz, want %.4f", hz, want)
	})

	It("follows a child once the seed splits", func() {
		res, err := s.Run(context.Background(), sim.RunConfig{Frames: 90, ClickEvery: 30, FrameTime: 1.0 / 60})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.BreathFrom).To(Equal(30))
		Expect(res.Breath).To(HaveLen(90))
	})

	It("counts refused splits instead of failing", func() {
		cfg := config.DefaultConfig()
		cfg.Split.MaxObjects = 3
		capped, err := sim.New(cfg)
		Expect(err).NotTo(HaveOccurred())

		res, err := capped.Run(context.Background(), sim.RunConfig{Frames: 100, ClickEvery: 10, FrameTime: 1.0 / 60})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Splits).To(Equal(2))
		Expect(res.Refused).To(Equal(7))
		Expect(capped.Len()).To(Equal(3))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Run(ctx, sim.RunConfig{Frames: 10, FrameTime: 1.0 / 60})
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	It("collects metric values", func() {
		s.AddMetric(&countingMetric{})
		res, err := s.Run(context.Background(), sim.RunConfig{Frames: 15, FrameTime: 1.0 / 60})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveKeyWithValue("count", 15.0))
	})

	It("runs an ensemble with distinct seeds", func() {
		e := sim.NewEnsemble(config.DefaultConfig(), 3, func() []sim.Metric {
			return []sim.Metric{&countingMetric{}}
		})
		results, err := e.Run(context.Background(), sim.RunConfig{Frames: 40, ClickEvery: 20, FrameTime: 1.0 / 60})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for _, r := range results {
			Expect(r.Population).To(HaveLen(40))
			Expect(r.Splits).To(Equal(1))
			Expect(r.Metrics["count"]).To(Equal(40.0))
		}
	})
})
