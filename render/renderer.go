// Package render draws sprites onto layered cell canvases and composes them onto a tcell screen
package render

import (
	"math"

	"github.com/yR-DEV/space-invaders/asset"
)

// Renderer is the drawing capability entities consume
// Coordinates are field cells; fractional positions round to the nearest cell
type Renderer interface {
	DrawSprite(s *asset.Sprite, x, y float64)
	ClearRegion(x, y, width, height float64)
}

// cellOf maps a canvas-space coordinate to a cell index, half rounds up
// DrawSprite and ClearRegion must share it so an erase hits the drawn cells
func cellOf(v float64) int {
	return int(math.Floor(v + 0.5))
}

// spanOf returns the number of cells a dimension covers
func spanOf(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(v))
}
