package entity

import (
	"github.com/yR-DEV/space-invaders/asset"
	"github.com/yR-DEV/space-invaders/render"
)

// Direction is the vertical travel sense of a projectile
type Direction int8

const (
	Up   Direction = -1
	Down Direction = 1
)

// Projectile travels along y until it leaves the field or is killed
type Projectile struct {
	Body

	sprite *asset.Sprite
	field  Field
	dir    Direction
	killed bool
}

// NewProjectile creates a dormant projectile
func NewProjectile(sprite *asset.Sprite, field Field, dir Direction) *Projectile {
	return &Projectile{sprite: sprite, field: field, dir: dir}
}

// Spawn activates the projectile
func (p *Projectile) Spawn(x, y, speed float64) {
	p.Body.Spawn(x, y, speed)
	p.killed = false
}

// Kill marks a hit. The next Draw erases it and reports retirement
func (p *Projectile) Kill() {
	p.killed = true
}

// Killed reports whether the projectile was hit this frame
func (p *Projectile) Killed() bool {
	return p.killed
}

// Draw erases, moves and redraws. True means the projectile must be retired
func (p *Projectile) Draw(r render.Renderer) bool {
	r.ClearRegion(p.X, p.Y, p.Width, p.Height)
	if p.killed {
		return true
	}

	p.Y += float64(p.dir) * p.Speed
	if p.exited() {
		return true
	}

	r.DrawSprite(p.sprite, p.X, p.Y)
	return false
}

// Clear resets to dormant
func (p *Projectile) Clear() {
	p.Body.Clear()
	p.killed = false
}

func (p *Projectile) exited() bool {
	if p.dir == Up {
		return p.Y <= -p.Height
	}
	return p.Y >= p.field.Height
}
