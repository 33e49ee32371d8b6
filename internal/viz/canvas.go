package viz

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigid2d/internal/body"
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
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set marks a pixel at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// View maps world coordinates onto a canvas, y up.
type View struct {
	Center mgl64.Vec2
	Scale  float64 // sub-pixels per world unit
	canvas *Canvas
}

func NewView(canvas *Canvas, center mgl64.Vec2, scale float64) *View {
	return &View{Center: center, Scale: scale, canvas: canvas}
}

func (v *View) toScreen(p mgl64.Vec2) (int, int) {
	cw := v.canvas.Width * 2
	ch := v.canvas.Height * 4
	x := cw/2 + int((p[0]-v.Center[0])*v.Scale)
	y := ch/2 - int((p[1]-v.Center[1])*v.Scale)
	return x, y
}

// DrawBody renders a body outline plus a spoke showing its orientation.
func (v *View) DrawBody(b *body.Body) {
	switch shape := b.Shape.(type) {
	case *body.Circle:
		v.drawCircle(b.Position, shape.Radius, b.Angle)
	case *body.Polygon:
		v.drawPolygon(shape.WorldVerts(b.Position, b.Angle))
	}
}

func (v *View) DrawPoint(p mgl64.Vec2) {
	x, y := v.toScreen(p)
	v.canvas.Set(x, y)
	v.canvas.Set(x+1, y)
	v.canvas.Set(x, y+1)
	v.canvas.Set(x+1, y+1)
}

func (v *View) drawCircle(center mgl64.Vec2, radius, angle float64) {
	steps := int(radius*v.Scale) * 2
	if steps < 12 {
		steps = 12
	}
	prevX, prevY := 0, 0
	for i := 0; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p := center.Add(mgl64.Vec2{radius * math.Cos(a), radius * math.Sin(a)})
		x, y := v.toScreen(p)
		if i > 0 {
			v.canvas.DrawLine(prevX, prevY, x, y)
		}
		prevX, prevY = x, y
	}

	// orientation spoke
	tip := center.Add(mgl64.Vec2{radius * math.Cos(angle), radius * math.Sin(angle)})
	cx, cy := v.toScreen(center)
	tx, ty := v.toScreen(tip)
	v.canvas.DrawLine(cx, cy, tx, ty)
}

func (v *View) drawPolygon(verts []mgl64.Vec2) {
	if len(verts) < 2 {
		return
	}
	for i := range verts {
		x0, y0 := v.toScreen(verts[i])
		x1, y1 := v.toScreen(verts[(i+1)%len(verts)])
		v.canvas.DrawLine(x0, y0, x1, y1)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
