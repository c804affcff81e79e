// Package analysis checks recorded signals from a run.
//
// The breathing animation should oscillate at Frequency/2π hertz. A headless
// run records the seed object's scale deviation each frame, and
// [DominantFrequency] recovers that rate from the samples:
//
//	hz, err := analysis.DominantFrequency(result.Breath, 60)
//	if err == nil {
//	    fmt.Printf("period: %.2f s\n", 1/hz)
//	}
package analysis
