package engine

import (
	"github.com/yR-DEV/space-invaders/asset"
	"github.com/yR-DEV/space-invaders/config"
	"github.com/yR-DEV/space-invaders/entity"
)

// waveSpeedup is the per-wave enemy speed increase
const waveSpeedup = 0.1

// Spawn is one enemy placement. The sign of Speed is the initial direction
type Spawn struct {
	X, Y  float64
	Speed float64
}

// WaveSource lays out the enemies of wave n, starting at 1
type WaveSource interface {
	Wave(n int, field entity.Field) []Spawn
}

// GridWaves lays enemies out in centered rows, alternating direction per row
type GridWaves struct {
	Rows     int
	Columns  int
	SpacingX float64
	SpacingY float64
	Speed    float64

	width  float64
	height float64
}

// NewGridWaves builds the grid layout for an enemy sprite
func NewGridWaves(cfg config.EnemyConfig, sprite *asset.Sprite) *GridWaves {
	w, h := sprite.Size()
	return &GridWaves{
		Rows:     cfg.Rows,
		Columns:  cfg.Columns,
		SpacingX: cfg.SpacingX,
		SpacingY: cfg.SpacingY,
		Speed:    cfg.Speed,
		width:    w,
		height:   h,
	}
}

// Wave returns the grid for wave n. Columns that would not fit the field are dropped
func (g *GridWaves) Wave(n int, field entity.Field) []Spawn {
	if n < 1 {
		n = 1
	}
	speed := g.Speed * (1 + waveSpeedup*float64(n-1))

	stepX := g.width + g.SpacingX
	cols := g.Columns
	if stepX > 0 {
		cols = min(cols, int((field.Width+g.SpacingX)/stepX))
	}
	cols = max(cols, 1)

	rowWidth := float64(cols)*g.width + float64(cols-1)*g.SpacingX
	x0 := max((field.Width-rowWidth)/2, 0)

	spawns := make([]Spawn, 0, g.Rows*cols)
	for r := 0; r < g.Rows; r++ {
		// Row 0 of the field is the HUD
		y := 1 + float64(r)*(g.height+g.SpacingY)
		dir := speed
		if r%2 == 1 {
			dir = -speed
		}
		for c := 0; c < cols; c++ {
			spawns = append(spawns, Spawn{X: x0 + float64(c)*stepX, Y: y, Speed: dir})
		}
	}
	return spawns
}
