package entity

import (
	"github.com/yR-DEV/space-invaders/asset"
	"github.com/yR-DEV/space-invaders/render"
)

// Background pans a field-wide backdrop horizontally and wraps around
type Background struct {
	sprite *asset.Sprite
	field  Field
	x, y   float64
	speed  float64
}

// NewBackground creates a backdrop panning at speed cells per frame
func NewBackground(sprite *asset.Sprite, field Field, speed float64) *Background {
	return &Background{sprite: sprite, field: field, speed: speed}
}

// Position returns the pan offset
func (b *Background) Position() (x, y float64) {
	return b.x, b.y
}

// Size returns the field size
func (b *Background) Size() (width, height float64) {
	return b.field.Width, b.field.Height
}

// Draw pans one frame. Two copies keep the seam covered. Never retires
func (b *Background) Draw(r render.Renderer) bool {
	b.x += b.speed
	r.DrawSprite(b.sprite, b.x, b.y)
	r.DrawSprite(b.sprite, b.x-b.field.Width, b.y)

	if b.x >= b.field.Width {
		b.x = 0
	}
	return false
}
