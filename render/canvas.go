package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/yR-DEV/space-invaders/asset"
)

// Cell is one canvas cell. Unset cells are transparent during composition
type Cell struct {
	Rune  rune
	Style tcell.Style
	Set   bool
}

// Canvas is a fixed-size cell grid implementing Renderer
// Writes outside the grid are dropped
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// NewCanvas creates an empty canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the canvas width in cells
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells
func (c *Canvas) Height() int {
	return c.height
}

// Cell returns the cell at x, y and whether the position is inside the canvas
func (c *Canvas) Cell(x, y int) (Cell, bool) {
	if !c.inside(x, y) {
		return Cell{}, false
	}
	return c.cells[y*c.width+x], true
}

// Set writes a single cell
func (c *Canvas) Set(x, y int, r rune, style tcell.Style) {
	if !c.inside(x, y) {
		return
	}
	c.cells[y*c.width+x] = Cell{Rune: r, Style: style, Set: true}
}

// DrawSprite blits a sprite with its top-left corner at x, y
func (c *Canvas) DrawSprite(s *asset.Sprite, x, y float64) {
	if s == nil {
		return
	}
	x0, y0 := cellOf(x), cellOf(y)
	for row := 0; row < s.Height; row++ {
		for col := 0; col < s.Width; col++ {
			r := s.Rune(col, row)
			if r == ' ' && !s.Opaque {
				continue
			}
			c.Set(x0+col, y0+row, r, s.Style)
		}
	}
}

// ClearRegion unsets the cells covered by the rectangle
func (c *Canvas) ClearRegion(x, y, width, height float64) {
	x0, y0 := cellOf(x), cellOf(y)
	x1, y1 := x0+spanOf(width), y0+spanOf(height)

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > c.width {
		x1 = c.width
	}
	if y1 > c.height {
		y1 = c.height
	}

	for cy := y0; cy < y1; cy++ {
		row := c.cells[cy*c.width : (cy+1)*c.width]
		for cx := x0; cx < x1; cx++ {
			row[cx] = Cell{}
		}
	}
}

// DrawText writes a single line of text starting at cell x, y
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		c.Set(x+i, y, r, style)
	}
}

// Clear unsets every cell
func (c *Canvas) Clear() {
	clear(c.cells)
}

// String renders the canvas as text rows, unset cells as spaces
func (c *Canvas) String() string {
	buf := make([]rune, 0, (c.width+1)*c.height)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			if cell.Set {
				buf = append(buf, cell.Rune)
			} else {
				buf = append(buf, ' ')
			}
		}
		if y < c.height-1 {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}
