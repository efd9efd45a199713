package entity

import (
	"math/rand/v2"

	"github.com/yR-DEV/space-invaders/asset"
	"github.com/yR-DEV/space-invaders/render"
)

// Launcher spawns enemy projectiles, usually a pool
type Launcher interface {
	Acquire(x, y, speed float64) bool
}

// EnemyConfig is the tuning shared by every enemy of a pool
type EnemyConfig struct {
	Drop            float64 // rows descended at each edge bounce
	FireChance      float64 // per-frame probability of firing
	ProjectileSpeed float64
}

// Enemy sweeps horizontally, bouncing off the field edges and descending
// It leaves the field once it sinks below the bottom edge
type Enemy struct {
	Body

	sprite   *asset.Sprite
	field    Field
	cfg      EnemyConfig
	launcher Launcher
	rng      *rand.Rand
	killed   bool
}

// NewEnemy creates a dormant enemy. launcher may be nil to disable fire
func NewEnemy(sprite *asset.Sprite, field Field, cfg EnemyConfig, launcher Launcher, rng *rand.Rand) *Enemy {
	return &Enemy{
		sprite:   sprite,
		field:    field,
		cfg:      cfg,
		launcher: launcher,
		rng:      rng,
	}
}

// Spawn activates the enemy. The sign of speed is the initial horizontal direction
func (e *Enemy) Spawn(x, y, speed float64) {
	e.Body.Spawn(x, y, speed)
	e.killed = false
}

// Kill marks a hit. The next Draw erases it and reports retirement
func (e *Enemy) Kill() {
	e.killed = true
}

// Killed reports whether the enemy was hit this frame
func (e *Enemy) Killed() bool {
	return e.killed
}

// Draw erases, moves and redraws, possibly firing. True means retire
func (e *Enemy) Draw(r render.Renderer) bool {
	r.ClearRegion(e.X, e.Y, e.Width, e.Height)
	if e.killed {
		return true
	}

	e.X += e.Speed
	if (e.Speed < 0 && e.X <= 0) || (e.Speed > 0 && e.X+e.Width >= e.field.Width) {
		e.X = min(max(e.X, 0), max(e.field.Width-e.Width, 0))
		e.Speed = -e.Speed
		e.Y += e.cfg.Drop
	}

	if e.Y >= e.field.Height {
		return true
	}

	r.DrawSprite(e.sprite, e.X, e.Y)

	if e.launcher != nil && e.rng != nil && e.rng.Float64() < e.cfg.FireChance {
		e.launcher.Acquire(e.X+e.Width/2, e.Y+e.Height, e.cfg.ProjectileSpeed)
	}
	return false
}

// Clear resets to dormant
func (e *Enemy) Clear() {
	e.Body.Clear()
	e.killed = false
}
