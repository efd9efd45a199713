package entity

import (
	"github.com/yR-DEV/space-invaders/asset"
	"github.com/yR-DEV/space-invaders/input"
	"github.com/yR-DEV/space-invaders/render"
)

// Shooter hands out projectile pairs, usually a pool
type Shooter interface {
	AcquireTwo(x1, y1, speed1, x2, y2, speed2 float64) bool
}

// PlayerConfig is the player tuning
type PlayerConfig struct {
	Speed           float64
	FireRate        int     // frames between volleys
	ProjectileSpeed float64
	MinYFraction    float64 // highest reachable row as a fraction of field height
	LeftGun         float64 // x offset of the left projectile
	RightGun        float64 // x offset of the right projectile, negative counts from the right edge
}

// Player is the controlled sprite. It moves on input and fires two projectiles per volley
type Player struct {
	Body

	sprite  *asset.Sprite
	field   Field
	cfg     PlayerConfig
	shooter Shooter
	counter int
}

// NewPlayer creates a player; call Place before the first Draw
func NewPlayer(sprite *asset.Sprite, field Field, cfg PlayerConfig, shooter Shooter) *Player {
	p := &Player{sprite: sprite, field: field, cfg: cfg, shooter: shooter}
	w, h := sprite.Size()
	p.Init(0, 0, w, h)
	return p
}

// Place puts the player at its start position, bottom center, and resets the fire counter
func (p *Player) Place() {
	x := (p.field.Width - p.Width) / 2
	y := p.field.Height - p.Height
	p.Spawn(max(x, 0), max(y, 0), p.cfg.Speed)
	p.counter = 0
}

// Draw renders the player at its position
func (p *Player) Draw(r render.Renderer) bool {
	r.DrawSprite(p.sprite, p.X, p.Y)
	return false
}

// Move applies one frame of input. Only erases and redraws when a movement is held
// Returns whether a volley was requested and whether it was accepted
func (p *Player) Move(snap input.Snapshot, r render.Renderer) (attempted, fired bool) {
	p.counter++

	if snap.Moving() {
		r.ClearRegion(p.X, p.Y, p.Width, p.Height)

		top := p.field.Height * p.cfg.MinYFraction
		switch {
		case snap.Active(input.ActionLeft):
			p.X = max(p.X-p.Speed, 0)
		case snap.Active(input.ActionRight):
			p.X = min(p.X+p.Speed, p.field.Width-p.Width)
		case snap.Active(input.ActionUp):
			p.Y = max(p.Y-p.Speed, top)
		case snap.Active(input.ActionDown):
			p.Y = min(p.Y+p.Speed, p.field.Height-p.Height)
		}

		p.Draw(r)
	}

	if snap.Active(input.ActionFire) && p.counter >= p.cfg.FireRate {
		p.counter = 0
		return true, p.fire()
	}
	return false, false
}

func (p *Player) fire() bool {
	if p.shooter == nil {
		return false
	}
	left := p.X + p.cfg.LeftGun
	right := p.X + p.cfg.RightGun
	if p.cfg.RightGun < 0 {
		right = p.X + p.Width + p.cfg.RightGun
	}
	speed := p.cfg.ProjectileSpeed
	return p.shooter.AcquireTwo(left, p.Y, speed, right, p.Y, speed)
}
