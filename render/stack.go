package render

import (
	"github.com/gdamore/tcell/v2"
)

type layerEntry struct {
	canvas   *Canvas
	priority LayerPriority
	index    int // registration order for stable sort
}

// Stack composes canvases onto a tcell screen, topmost set cell wins
type Stack struct {
	screen  tcell.Screen
	layers  []layerEntry
	regs    int
	originX int
	originY int
	width   int
	height  int
}

// NewStack creates a stack for a field of the given size
func NewStack(screen tcell.Screen, width, height int) *Stack {
	return &Stack{
		screen: screen,
		layers: make([]layerEntry, 0, 4),
		width:  width,
		height: height,
	}
}

// Register adds a canvas at the given priority, keeping layers sorted
func (s *Stack) Register(c *Canvas, priority LayerPriority) {
	entry := layerEntry{canvas: c, priority: priority, index: s.regs}
	s.regs++

	pos := len(s.layers)
	for i, e := range s.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	s.layers = append(s.layers, layerEntry{})
	copy(s.layers[pos+1:], s.layers[pos:])
	s.layers[pos] = entry
}

// Center places the field in the middle of a screen of the given size
func (s *Stack) Center(screenWidth, screenHeight int) {
	s.originX = max((screenWidth-s.width)/2, 0)
	s.originY = max((screenHeight-s.height)/2, 0)
}

// Origin returns the screen cell of the field's top-left corner
func (s *Stack) Origin() (x, y int) {
	return s.originX, s.originY
}

// Resize recenters the field and forces a full repaint
func (s *Stack) Resize(screenWidth, screenHeight int) {
	s.Center(screenWidth, screenHeight)
	s.screen.Clear()
	s.screen.Sync()
}

// Present composes all layers and shows the screen
func (s *Stack) Present() {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			r, style := s.top(x, y)
			s.screen.SetContent(s.originX+x, s.originY+y, r, nil, style)
		}
	}
	s.screen.Show()
}

// top returns the visible rune at x, y walking layers from the highest priority down
func (s *Stack) top(x, y int) (rune, tcell.Style) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if cell, ok := s.layers[i].canvas.Cell(x, y); ok && cell.Set {
			return cell.Rune, cell.Style
		}
	}
	return ' ', tcell.StyleDefault
}
