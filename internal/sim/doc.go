// Package sim runs the sphere-splitting simulation.
//
// A [Simulator] pairs every visible sphere ([scene.Mesh]) with a rigid body
// ([physics.Body]) in an [Object] held by the [Registry]. Each call to
// [Simulator.Frame] runs, in order:
//
//   - [Breathing]: scale oscillation around each object's base scale
//   - pose sync from body to mesh
//   - [Boundary]: soft restoring force for bodies outside the limit
//   - a fixed-step physics advance
//   - orbit-control easing and the attached [Renderer]
//
// [Simulator.Click] casts a ray from the camera and splits the nearest
// object it hits into two smaller ones ([Splitter]).
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parallel headless runs use
// [Ensemble], which gives every run its own simulator.
package sim
