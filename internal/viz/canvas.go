package viz

import (
	"strings"

	"github.com/san-kum/threebody/internal/vec"
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

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Project maps a normalised scene point to sub-pixel coordinates. The scene
// square is fitted to the shorter side and centred, matching the raster
// orientation.
func (c *Canvas) Project(p vec.Vec2) (int, int) {
	w, h := float64(c.Width*2), float64(c.Height*4)
	side := min(w, h)
	x := (w-side)/2 + (p.X+1)/2*side
	y := (h-side)/2 + (p.Y+1)/2*side
	return int(x), int(y)
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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

	for {
		c.Set(x0, y0)
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

func (c *Canvas) Line(a, b vec.Vec2) {
	x0, y0 := c.Project(a)
	x1, y1 := c.Project(b)
	c.DrawLine(x0, y0, x1, y1)
}

func (c *Canvas) Polyline(pts []vec.Vec2) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1], pts[i])
	}
}

func (c *Canvas) Circle(center vec.Vec2, r float64) {
	pts := vec.Circle(center, r, 48)
	c.Polyline(append(pts, pts[0]))
}

// Dot marks a point as a small square so it survives the braille grid.
func (c *Canvas) Dot(p vec.Vec2, size int) {
	x, y := c.Project(p)
	for dy := -size; dy <= size; dy++ {
		for dx := -size; dx <= size; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
