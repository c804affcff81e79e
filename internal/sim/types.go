package sim

import (
	"github.com/san-kum/mitosis/internal/physics"
	"github.com/san-kum/mitosis/internal/scene"
)

// Object pairs one visible sphere with its rigid body.
type Object struct {
	ID        int
	Mesh      *scene.Mesh
	Body      *physics.Body
	BaseScale float64
	PhaseSeed int
}

// SyncPose copies the body pose onto the mesh.
func (o *Object) SyncPose() {
	o.Mesh.Position = o.Body.Position
	o.Mesh.Quaternion = o.Body.Quaternion
}

func (o *Object) Scale() float64 { return o.Mesh.Scale }

// Renderer draws a scene from a camera. Front-ends implement it.
type Renderer interface {
	Render(sc *scene.Scene, cam *scene.Camera)
}

type FrameStats struct {
	Frame         int
	Time          float64
	Population    int
	KineticEnergy float64
	Corrections   int
	Splits        int
}

type Metric interface {
	Name() string
	Observe(s FrameStats)
	Value() float64
	Reset()
}

type SplitResult struct {
	Parent   int
	Children [2]int
}

// RunConfig drives a headless session. A click is aimed at a random live
// object every ClickEvery frames; zero disables clicking.
type RunConfig struct {
	Frames     int
	ClickEvery int
	FrameTime  float64
}

type Result struct {
	Times      []float64
	Population []float64
	Energy     []float64
	// Breath holds the scale deviation of one followed object per frame.
	// Samples before BreathFrom belong to an earlier object whose phase
	// differs.
	Breath     []float64
	BreathFrom int
	Splits     int
	Refused    int
	FirstSplit int
	Metrics    map[string]float64
}
