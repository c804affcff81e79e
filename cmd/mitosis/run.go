package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mitosis/internal/analysis"
	"github.com/san-kum/mitosis/internal/metrics"
	"github.com/san-kum/mitosis/internal/sim"
	"github.com/spf13/cobra"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLog(false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rc := sim.RunConfig{Frames: frames, ClickEvery: clickEvery, FrameTime: frameTime}

	if runs > 1 {
		logger.Printf("ensemble: %d runs from seed %d", runs, cfg.Seed)
		start := time.Now()
		results, err := sim.NewEnsemble(cfg, runs, metrics.Default).Run(ctx, rc)
		if err != nil {
			return err
		}
		fmt.Printf("%d runs x %d frames in %v\n\n", runs, frames, time.Since(start))
		return printEnsemble(cfg.Seed, results)
	}

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	fmt.Printf("running %d frames, clicking every %d...\n", frames, clickEvery)
	start := time.Now()
	result, err := s.Run(ctx, rc)
	if errors.Is(err, context.Canceled) {
		logger.Printf("interrupted after %d frames", len(result.Times))
	} else if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	if err := printResult(result); err != nil {
		return err
	}
	if plot && len(result.Population) > 1 {
		printPlots(result)
	}
	printBreathing(result, rc.FrameTime, s.Breathing().Frequency)
	return nil
}

func sortedMetrics(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printResult(r *sim.Result) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	final := 0.0
	if n := len(r.Population); n > 0 {
		final = r.Population[n-1]
	}
	fmt.Fprintf(w, "frames\t%d\n", len(r.Times))
	fmt.Fprintf(w, "splits\t%d\n", r.Splits)
	fmt.Fprintf(w, "refused\t%d\n", r.Refused)
	fmt.Fprintf(w, "spheres\t%.0f\n", final)
	if r.FirstSplit >= 0 {
		fmt.Fprintf(w, "first split\tframe %d\n", r.FirstSplit)
	}
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range sortedMetrics(r.Metrics) {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, r.Metrics[name])
	}
	return w.Flush()
}

func printEnsemble(seedStart int64, results []*sim.Result) error {
	if len(results) == 0 {
		return nil
	}
	names := sortedMetrics(results[0].Metrics)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED\tSPLITS\tREFUSED")
	for _, n := range names {
		fmt.Fprintf(w, "\t%s", n)
	}
	fmt.Fprintln(w)

	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d", seedStart+int64(i), r.Splits, r.Refused)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func printPlots(r *sim.Result) {
	fmt.Println()
	fmt.Println(asciigraph.Plot(r.Population,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("spheres"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(r.Energy,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy"),
	))
	fmt.Println()
}

// printBreathing checks the breathing rate of the followed sphere over
// its unbroken stretch of samples.
func printBreathing(r *sim.Result, frameTime, omega float64) {
	samples := r.Breath
	if r.BreathFrom > 0 && r.BreathFrom < len(samples) {
		samples = samples[r.BreathFrom:]
	}
	want := omega / (2 * math.Pi)

	hz, ok, err := analysis.CheckFrequency(samples, 1/frameTime, want)
	switch {
	case errors.Is(err, analysis.ErrTooShort):
		fmt.Printf("breathing: skipped, %v; raise --frames\n", err)
		return
	case err != nil:
		fmt.Printf("breathing: %v (%d samples)\n", err, len(samples))
		return
	}
	verdict := "ok"
	if !ok {
		verdict = "MISMATCH"
	}
	res := analysis.Resolution(len(samples), 1/frameTime)
	fmt.Printf("breathing: %.3f hz (expected %.3f, resolution %.3f) %s\n", hz, want, res, verdict)
}
