package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/mitosis/internal/config"
	"github.com/san-kum/mitosis/internal/physics"
	"github.com/san-kum/mitosis/internal/scene"
)

// unit sphere; the mesh scale is the world radius
const sphereRadius = 1.0

var palette = [][3]uint8{
	{230, 120, 200},
	{120, 200, 255},
	{255, 200, 110},
	{140, 240, 170},
	{200, 160, 255},
	{255, 140, 120},
}

// Simulator owns the scene, the physics world and the registry that pairs
// them, and advances all three one frame at a time. It is not safe for
// concurrent use.
type Simulator struct {
	cfg       *config.Config
	world     *physics.World
	scene     *scene.Scene
	camera    *scene.Camera
	controls  *scene.OrbitControls
	raycaster *scene.Raycaster
	registry  *Registry
	ring      *scene.Mesh

	breathing Breathing
	boundary  Boundary
	splitter  *Splitter

	renderer Renderer
	metrics  []Metric
	rng      *rand.Rand

	elapsed     float64
	frames      int
	splits      int
	corrections int
}

func New(cfg *config.Config) (*Simulator, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	s := &Simulator{
		cfg:       cfg,
		raycaster: scene.NewRaycaster(),
		metrics:   make([]Metric, 0),
		rng:       rng,
		breathing: Breathing{
			Amplitude: cfg.Breathing.Amplitude,
			Frequency: cfg.Breathing.Frequency,
		},
		boundary: Boundary{
			Limit:          cfg.Boundary.Limit,
			ForceFactor:    cfg.Boundary.ForceFactor,
			VelocityFactor: cfg.Boundary.VelocityFactor,
		},
		splitter: &Splitter{
			Ratio:          cfg.Split.Ratio,
			Offset:         cfg.Split.Offset,
			PositionJitter: cfg.Split.PositionJitter,
			BaseSpeed:      cfg.Split.BaseSpeed,
			SpeedJitter:    cfg.Split.SpeedJitter,
			LateralSpeed:   cfg.Split.LateralSpeed,
			MinScale:       cfg.Split.MinScale,
			MaxObjects:     cfg.Split.MaxObjects,
			rng:            rng,
		},
	}

	s.camera = scene.NewCamera(cfg.View.FOV, 1, 0.1, 1000)
	s.camera.Position = mgl64.Vec3{0, 0, cfg.View.CameraDistance}
	s.controls = scene.NewOrbitControls(s.camera)
	s.controls.DampingFactor = cfg.View.DampingFactor
	s.controls.MinDistance = cfg.View.MinDistance
	s.controls.MaxDistance = cfg.View.MaxDistance

	s.build()
	return s, nil
}

func (s *Simulator) build() {
	g := s.cfg.Physics
	s.world = physics.NewWorld()
	s.world.Gravity = mgl64.Vec3{g.Gravity.X, g.Gravity.Y, g.Gravity.Z}
	s.world.Collisions = g.Collisions
	s.world.Restitution = g.Restitution

	s.scene = scene.New()
	s.scene.AddLight(scene.Light{Kind: scene.Ambient, Color: [3]uint8{255, 255, 255}, Intensity: 0.6})
	s.scene.AddLight(scene.Light{Kind: scene.Point, Color: [3]uint8{255, 255, 255}, Intensity: 1.2, Position: mgl64.Vec3{5, 5, 5}})
	s.scene.AddLight(scene.Light{Kind: scene.Point, Color: [3]uint8{120, 160, 255}, Intensity: 0.6, Position: mgl64.Vec3{-5, -3, 2}})

	sc := s.cfg.Scene
	s.ring = scene.NewTorus(sc.RingRadius, sc.RingTube, scene.Material{
		Color:     [3]uint8{200, 200, 210},
		Metalness: sc.Metalness,
		Roughness: sc.Roughness,
	})
	s.ring.Name = "ring"
	s.ring.Quaternion = mgl64.QuatRotate(math.Pi/2.5, mgl64.Vec3{1, 0, 0})
	s.scene.Add(s.ring)

	s.registry = NewRegistry()
	s.spawn(ChildSpec{Scale: sc.InitialScale})
}

// spawn is the only place objects come into existence: mesh, body and
// registry entry are created together.
func (s *Simulator) spawn(c ChildSpec) *Object {
	p := s.cfg.Physics
	body := physics.NewBody(physics.BodyOptions{
		Mass:           p.Mass,
		Radius:         c.Scale * sphereRadius,
		Position:       c.Position,
		Velocity:       c.Velocity,
		LinearDamping:  p.LinearDamping,
		AngularDamping: p.AngularDamping,
	})

	// fresh objects carry no id, so Add cannot refuse them
	o := &Object{Body: body, BaseScale: c.Scale}
	_ = s.registry.Add(o)

	mesh := scene.NewSphere(sphereRadius, scene.Material{
		Color:     palette[o.ID%len(palette)],
		Metalness: 0.3,
		Roughness: 0.4,
	})
	mesh.Name = fmt.Sprintf("sphere-%d", o.ID)
	mesh.Scale = c.Scale
	o.Mesh = mesh

	s.world.AddBody(body)
	s.scene.Add(mesh)
	o.SyncPose()
	return o
}

// despawn removes the object at index i from registry, world and scene.
func (s *Simulator) despawn(i int) *Object {
	o := s.registry.RemoveAt(i)
	if o == nil {
		return nil
	}
	s.world.RemoveBody(o.Body)
	s.scene.Remove(o.Mesh)
	return o
}

// Split replaces the object at index i with two smaller ones.
func (s *Simulator) Split(i int) (*SplitResult, error) {
	parent := s.registry.At(i)
	if parent == nil {
		return nil, fmt.Errorf("split index %d: %w", i, ErrObjectNotFound)
	}

	pos, scale := parent.Body.Position, parent.Mesh.Scale
	children, err := s.splitter.Plan(pos, scale, s.registry.Len())
	if err != nil {
		return nil, &SplitError{ObjectID: parent.ID, Scale: scale, Wrapped: err}
	}

	s.despawn(i)
	res := &SplitResult{Parent: parent.ID}
	for k, c := range children {
		res.Children[k] = s.spawn(c).ID
	}
	s.splits++
	return res, nil
}

// Click splits the nearest object under the NDC point. A click that hits
// nothing returns nil, nil.
func (s *Simulator) Click(ndcX, ndcY float64) (*SplitResult, error) {
	s.raycaster.SetFromCamera(ndcX, ndcY, s.camera)
	hits := s.raycaster.IntersectObjects(s.registry.Meshes())
	if len(hits) == 0 {
		return nil, nil
	}
	i := s.registry.IndexOf(hits[0].Mesh)
	if i < 0 {
		return nil, fmt.Errorf("mesh %d: %w", hits[0].Mesh.ID, ErrObjectNotFound)
	}
	return s.Split(i)
}

// Frame advances the simulation by one display refresh. elapsed is the real
// time since the previous frame and only drives the animation clock; the
// physics always advances by the fixed timestep.
func (s *Simulator) Frame(elapsed float64) FrameStats {
	s.elapsed += elapsed

	objects := s.registry.All()
	for _, o := range objects {
		s.breathing.Apply(s.elapsed, o)
	}
	for _, o := range objects {
		o.SyncPose()
	}

	s.corrections = 0
	for _, o := range objects {
		if s.boundary.Apply(o.Body) {
			s.corrections++
		}
	}

	s.world.Step(s.cfg.Physics.Timestep)

	s.controls.Update()
	spin := mgl64.QuatRotate(s.cfg.Scene.RingSpin*elapsed, mgl64.Vec3{0, 1, 0})
	s.ring.Quaternion = spin.Mul(s.ring.Quaternion).Normalize()

	if s.renderer != nil {
		s.renderer.Render(s.scene, s.camera)
	}

	s.frames++
	stats := s.Stats()
	for _, m := range s.metrics {
		m.Observe(stats)
	}
	return stats
}

func (s *Simulator) Stats() FrameStats {
	ke := 0.0
	for _, o := range s.registry.All() {
		ke += o.Body.KineticEnergy()
	}
	return FrameStats{
		Frame:         s.frames,
		Time:          s.elapsed,
		Population:    s.registry.Len(),
		KineticEnergy: ke,
		Corrections:   s.corrections,
		Splits:        s.splits,
	}
}

// Resize only touches the camera.
func (s *Simulator) Resize(width, height int) {
	s.camera.SetViewport(width, height)
}

// Reset drops every object and starts again from the seed sphere. Camera
// and metrics are kept.
func (s *Simulator) Reset() {
	s.elapsed, s.frames, s.splits, s.corrections = 0, 0, 0, 0
	s.build()
	for _, m := range s.metrics {
		m.Reset()
	}
}

// ScreenPosition projects an object's center to NDC.
func (s *Simulator) ScreenPosition(o *Object) (float64, float64, bool) {
	ndc, ok := s.camera.Project(o.Mesh.Position)
	if !ok {
		return 0, 0, false
	}
	return ndc.X(), ndc.Y(), true
}

func (s *Simulator) SetRenderer(r Renderer) { s.renderer = r }
func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }

func (s *Simulator) Objects() []*Object             { return s.registry.All() }
func (s *Simulator) Registry() *Registry            { return s.registry }
func (s *Simulator) Len() int                       { return s.registry.Len() }
func (s *Simulator) Scene() *scene.Scene            { return s.scene }
func (s *Simulator) Camera() *scene.Camera          { return s.camera }
func (s *Simulator) Controls() *scene.OrbitControls { return s.controls }
func (s *Simulator) World() *physics.World          { return s.world }
func (s *Simulator) Ring() *scene.Mesh              { return s.ring }
func (s *Simulator) Config() *config.Config         { return s.cfg }
func (s *Simulator) Elapsed() float64               { return s.elapsed }
func (s *Simulator) Frames() int                    { return s.frames }
func (s *Simulator) Splits() int                    { return s.splits }
func (s *Simulator) Breathing() Breathing           { return s.breathing }
func (s *Simulator) Boundary() Boundary             { return s.boundary }
