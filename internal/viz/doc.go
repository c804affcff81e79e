// Package viz is the terminal front-end.
//
// A [Renderer] draws the simulator's scene onto a braille [Canvas]: every
// terminal cell holds 2x4 dots, spheres are ray traced per dot and dithered
// by their shading, and the ring is drawn as depth-tested loops. [Model]
// wraps a simulator in a Bubble Tea program with a lipgloss HUD.
//
// # Input
//
//	Left click    - Split the sphere under the pointer
//	Right drag    - Orbit the camera
//	Wheel, + -    - Zoom
//	Arrows, hjkl  - Orbit the camera
//	Space         - Pause/Resume
//	R             - Reset to the seed sphere
//	T             - Cycle color themes
//	?             - Show help overlay
package viz
