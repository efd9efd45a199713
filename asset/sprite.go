package asset

import (
	"github.com/gdamore/tcell/v2"
)

// Sprite is a fixed block of runes drawn as one unit
// Space cells are transparent unless the sprite is opaque
type Sprite struct {
	Name   string
	Width  int
	Height int
	Style  tcell.Style
	Opaque bool

	cells [][]rune
}

// NewSprite builds a sprite from text rows, short rows are padded with spaces
func NewSprite(name string, style tcell.Style, rows ...string) *Sprite {
	s := &Sprite{
		Name:   name,
		Style:  style,
		Height: len(rows),
		cells:  make([][]rune, len(rows)),
	}

	for i, row := range rows {
		s.cells[i] = []rune(row)
		if len(s.cells[i]) > s.Width {
			s.Width = len(s.cells[i])
		}
	}

	for i := range s.cells {
		for len(s.cells[i]) < s.Width {
			s.cells[i] = append(s.cells[i], ' ')
		}
	}

	return s
}

// Rune returns the rune at the given sprite-local cell, space outside bounds
func (s *Sprite) Rune(col, row int) rune {
	if row < 0 || row >= s.Height || col < 0 || col >= s.Width {
		return ' '
	}
	return s.cells[row][col]
}

// Size returns the sprite dimensions in cells
func (s *Sprite) Size() (width, height float64) {
	return float64(s.Width), float64(s.Height)
}
