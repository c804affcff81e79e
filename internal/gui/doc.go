// Package gui is the windowed front-end, drawn with raylib.
//
// [App] implements the simulator's renderer: spheres are drawn with
// raylib's sphere primitives, the ring as a chain of cylinders, and the
// raylib camera is copied from the scene camera every frame so that clicks
// picked by the simulator match what is on screen.
package gui
