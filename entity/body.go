// Package entity holds the drawable game objects: pooled projectiles and
// enemies, and the single background and player
package entity

import "github.com/yR-DEV/space-invaders/render"

// Field is the playable area in cells
type Field struct {
	Width  float64
	Height float64
}

// Drawable is the capability set shared by every visible object
type Drawable interface {
	Position() (x, y float64)
	Size() (width, height float64)
	Draw(r render.Renderer) bool
}

// Body carries position, size, speed and the alive flag of a poolable object
type Body struct {
	X, Y          float64
	Width, Height float64
	Speed         float64

	alive bool
}

// Init sets static geometry
func (b *Body) Init(x, y, width, height float64) {
	b.X, b.Y = x, y
	b.Width, b.Height = width, height
}

// Spawn places the body and marks it alive
func (b *Body) Spawn(x, y, speed float64) {
	b.X, b.Y = x, y
	b.Speed = speed
	b.alive = true
}

// Clear zeroes position and speed and marks the body dormant. Size is kept
func (b *Body) Clear() {
	b.X, b.Y = 0, 0
	b.Speed = 0
	b.alive = false
}

// Alive reports whether the body is spawned
func (b *Body) Alive() bool {
	return b.alive
}

// Position returns the top-left corner
func (b *Body) Position() (x, y float64) {
	return b.X, b.Y
}

// Size returns width and height
func (b *Body) Size() (width, height float64) {
	return b.Width, b.Height
}

// Overlaps reports whether two axis-aligned boxes intersect
func (b *Body) Overlaps(o *Body) bool {
	return b.X < o.X+o.Width && o.X < b.X+b.Width &&
		b.Y < o.Y+o.Height && o.Y < b.Y+b.Height
}
