package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

// TestStackTopmostWins verifies that composition walks layers from highest priority down
func TestStackTopmostWins(t *testing.T) {
	screen := newSimScreen(t, 4, 1)
	stack := NewStack(screen, 4, 1)

	bg := NewCanvas(4, 1)
	mid := NewCanvas(4, 1)
	hud := NewCanvas(4, 1)
	bg.DrawText(0, 0, "....", tcell.StyleDefault)
	mid.Set(1, 0, 'E', tcell.StyleDefault)
	mid.Set(2, 0, 'E', tcell.StyleDefault)
	hud.Set(2, 0, 'H', tcell.StyleDefault)

	// Registration order differs from priority order
	stack.Register(hud, PriorityHUD)
	stack.Register(bg, PriorityBackground)
	stack.Register(mid, PriorityEntities)
	stack.Present()

	want := []rune{'.', 'E', 'H', '.'}
	for x, r := range want {
		if got := runeAt(screen, x, 0); got != r {
			t.Errorf("cell %d = %q, want %q", x, got, r)
		}
	}
}

func TestStackEqualPriorityKeepsRegistrationOrder(t *testing.T) {
	screen := newSimScreen(t, 1, 1)
	stack := NewStack(screen, 1, 1)

	first := NewCanvas(1, 1)
	second := NewCanvas(1, 1)
	first.Set(0, 0, 'a', tcell.StyleDefault)
	second.Set(0, 0, 'b', tcell.StyleDefault)

	stack.Register(first, PriorityEntities)
	stack.Register(second, PriorityEntities)
	stack.Present()

	if got := runeAt(screen, 0, 0); got != 'b' {
		t.Fatalf("cell = %q, want the later registration %q", got, 'b')
	}
}

func TestStackUnsetCellsAreBlank(t *testing.T) {
	screen := newSimScreen(t, 2, 1)
	stack := NewStack(screen, 2, 1)
	c := NewCanvas(2, 1)
	stack.Register(c, PriorityEntities)

	c.Set(0, 0, 'x', tcell.StyleDefault)
	stack.Present()
	c.Clear()
	stack.Present()

	if got := runeAt(screen, 0, 0); got != ' ' {
		t.Fatalf("cleared cell = %q, want blank", got)
	}
}

func TestStackCenter(t *testing.T) {
	screen := newSimScreen(t, 10, 6)
	stack := NewStack(screen, 4, 2)
	c := NewCanvas(4, 2)
	c.Set(0, 0, 'o', tcell.StyleDefault)
	stack.Register(c, PriorityPlayer)

	stack.Center(10, 6)
	stack.Present()

	if x, y := stack.Origin(); x != 3 || y != 2 {
		t.Fatalf("origin (%d, %d), want (3, 2)", x, y)
	}
	if got := runeAt(screen, 3, 2); got != 'o' {
		t.Fatalf("origin cell = %q, want %q", got, 'o')
	}

	// A screen smaller than the field pins it to the corner
	stack.Center(2, 1)
	if x, y := stack.Origin(); x != 0 || y != 0 {
		t.Fatalf("origin (%d, %d) on small screen, want (0, 0)", x, y)
	}
}
