package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille framebuffer. Each cell holds 2x4 dots; dots carry a
// depth so nearer surfaces win, and each cell keeps the color of the last
// surface that won a dot in it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]lipgloss.Color

	depth []float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the canvas for w x h cells. Negative sizes clamp to
// zero.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]lipgloss.Color, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]lipgloss.Color, w)
	}
	c.depth = make([]float64, w*2*h*4)
	c.Clear()
}

// PixelSize is the canvas size in dots.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width*2 && y < c.Height*4
}

// Set turns on the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if !c.inside(x, y) {
		return
	}
	c.Grid[y/4][x/2] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Unset(x, y int) {
	if !c.inside(x, y) {
		return
	}
	c.Grid[y/4][x/2] &^= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if !c.inside(x, y) {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Plot writes a dot at depth z if nothing nearer is already there. on
// chooses whether the dot is lit; an unlit dot still occludes. It reports
// whether the depth test passed.
func (c *Canvas) Plot(x, y int, z float64, on bool, col lipgloss.Color) bool {
	if !c.inside(x, y) {
		return false
	}
	i := y*c.Width*2 + x
	if z >= c.depth[i] {
		return false
	}
	c.depth[i] = z
	if on {
		c.Set(x, y)
		c.Colors[y/4][x/2] = col
	} else {
		c.Unset(x, y)
	}
	return true
}

// Depth returns the stored depth of a dot, +Inf when empty.
func (c *Canvas) Depth(x, y int) float64 {
	if !c.inside(x, y) {
		return math.Inf(1)
	}
	return c.depth[y*c.Width*2+x]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
		}
	}
	for i := range c.depth {
		c.depth[i] = math.Inf(1)
	}
}

// DrawLine draws a depth-tested line using Bresenham's algorithm, with depth
// interpolated between the end points.
func (c *Canvas) DrawLine(x0, y0 int, z0 float64, x1, y1 int, z1 float64, col lipgloss.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	steps := max(dx, dy)

	for i := 0; ; i++ {
		z := z0
		if steps > 0 {
			z += (z1 - z0) * float64(i) / float64(steps)
		}
		c.Plot(x0, y0, z, true, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the canvas, coloring runs of cells that share a color.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if col := c.Colors[i][start]; col != "" {
				run = lipgloss.NewStyle().Foreground(col).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
