package viz

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigid2d/internal/body"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(10, 10)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected pixel to be set")
	}

	// out of bounds is a no-op
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Set(5, 5)
	c.Clear()

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("expected empty canvas after clear")
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)

	set := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				set++
			}
		}
	}
	if set == 0 {
		t.Error("expected line to set pixels")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 3)
	s := c.String()

	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 4 {
			t.Errorf("expected 4 runes per line, got %d", len([]rune(line)))
		}
	}
}

func countSet(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				n++
			}
		}
	}
	return n
}

func TestViewDrawCircle(t *testing.T) {
	c := NewCanvas(40, 20)
	v := NewView(c, mgl64.Vec2{}, 8)

	b := body.New(&body.Circle{Radius: 1}, body.Basic, mgl64.Vec2{})
	v.DrawBody(b)

	if countSet(c) == 0 {
		t.Error("expected circle to set pixels")
	}
}

func TestViewDrawPolygon(t *testing.T) {
	c := NewCanvas(40, 20)
	v := NewView(c, mgl64.Vec2{}, 8)

	b := body.New(body.NewBox(2, 1), body.Basic, mgl64.Vec2{})
	v.DrawBody(b)

	if countSet(c) == 0 {
		t.Error("expected box to set pixels")
	}
}

func TestViewOffscreenBody(t *testing.T) {
	c := NewCanvas(10, 10)
	v := NewView(c, mgl64.Vec2{}, 4)

	b := body.New(&body.Circle{Radius: 0.5}, body.Basic, mgl64.Vec2{1000, 1000})
	v.DrawBody(b) // must not panic
}
