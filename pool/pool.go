// Package pool provides a fixed-capacity arena for transient game entities
//
// A Pool holds exactly N entities for the lifetime of a session. Entities are
// never allocated or freed during play: a spawn promotes a dormant entity into
// the alive partition, a retirement demotes it back. The arena is kept
// partitioned at all times so that slots [0, k) are alive and [k, N) are
// dormant, k being the alive cursor.
package pool

import (
	"fmt"

	"github.com/yR-DEV/space-invaders/render"
)

// Entity is the contract a poolable game object fulfills
type Entity interface {
	// Init sets static geometry, called once when the pool is populated
	Init(x, y, width, height float64)

	// Spawn activates a dormant entity at the given position and speed
	Spawn(x, y, speed float64)

	// Draw erases the previous footprint, advances one frame and draws at the new
	// position. Returns true when the entity left the field and must be retired
	Draw(r render.Renderer) bool

	// Clear resets the entity to dormant placeholder values
	Clear()

	// Alive reports whether the entity is spawned
	Alive() bool
}

// Pool is a fixed-capacity container of entities of one kind
// Not safe for concurrent use; owned by the game loop goroutine
type Pool[T Entity] struct {
	slots     []T
	capacity  int
	alive     int
	ready     bool
	advancing bool
}

// New creates a pool of the given capacity. Init must be called before use
func New[T Entity](capacity int) *Pool[T] {
	if capacity < 1 {
		panic(fmt.Sprintf("pool: capacity must be positive, got %d", capacity))
	}
	return &Pool[T]{capacity: capacity}
}

// Init populates the pool with capacity dormant entities built by newEntity
// Each entity receives placeholder position and the kind's static size
func (p *Pool[T]) Init(newEntity func() T, width, height float64) {
	if p.ready {
		panic("pool: Init called twice")
	}
	if p.capacity < 1 {
		panic("pool: Init on a pool not created by New")
	}

	p.slots = make([]T, p.capacity)
	for i := range p.slots {
		e := newEntity()
		e.Init(0, 0, width, height)
		p.slots[i] = e
	}
	p.alive = 0
	p.ready = true
}

// Acquire spawns one entity if the boundary slot is dormant
// Returns false when the pool is exhausted; the request is dropped
func (p *Pool[T]) Acquire(x, y, speed float64) bool {
	p.mustMutate()

	if !p.isFree(p.alive) {
		return false
	}
	p.slots[p.alive].Spawn(x, y, speed)
	p.alive++
	return true
}

// AcquireTwo spawns two entities only if two boundary slots are dormant
// Either both spawns happen or neither does
func (p *Pool[T]) AcquireTwo(x1, y1, speed1, x2, y2, speed2 float64) bool {
	p.mustMutate()

	if !p.isFree(p.alive) || !p.isFree(p.alive+1) {
		return false
	}
	p.slots[p.alive].Spawn(x1, y1, speed1)
	p.slots[p.alive+1].Spawn(x2, y2, speed2)
	p.alive += 2
	return true
}

// AdvanceAndDraw runs one frame for every alive entity and retires the ones
// that report a field exit. Retired entities are cleared and moved behind the
// survivors, survivor order is preserved. Returns the number retired
func (p *Pool[T]) AdvanceAndDraw(r render.Renderer) int {
	p.mustInit()
	p.advancing = true
	defer func() { p.advancing = false }()

	retired := 0
	kept := 0
	// The cursor is the first dormant slot, the scan never goes past it
	for i := 0; i < p.alive; i++ {
		e := p.slots[i]
		if e.Draw(r) {
			e.Clear()
			retired++
			continue
		}
		if kept != i {
			p.slots[kept], p.slots[i] = p.slots[i], p.slots[kept]
		}
		kept++
	}
	p.alive = kept
	return retired
}

// Each calls fn for every alive entity in order until fn returns false
// fn must not acquire from or advance this pool
func (p *Pool[T]) Each(fn func(i int, e T) bool) {
	p.mustInit()
	for i := 0; i < p.alive; i++ {
		if !fn(i, p.slots[i]) {
			return
		}
	}
}

// Reset retires every alive entity, leaving the pool at full capacity
func (p *Pool[T]) Reset() {
	p.mustMutate()
	for i := 0; i < p.alive; i++ {
		p.slots[i].Clear()
	}
	p.alive = 0
}

// Len returns the number of alive entities
func (p *Pool[T]) Len() int {
	return p.alive
}

// Cap returns the fixed capacity
func (p *Pool[T]) Cap() int {
	return p.capacity
}

// Free returns the number of dormant slots
func (p *Pool[T]) Free() int {
	return p.capacity - p.alive
}

// At returns the entity in slot i, alive or not
func (p *Pool[T]) At(i int) T {
	p.mustInit()
	return p.slots[i]
}

func (p *Pool[T]) isFree(i int) bool {
	return i < len(p.slots) && !p.slots[i].Alive()
}

func (p *Pool[T]) mustInit() {
	if !p.ready {
		panic("pool: used before Init")
	}
}

func (p *Pool[T]) mustMutate() {
	p.mustInit()
	if p.advancing {
		panic("pool: mutated during AdvanceAndDraw")
	}
}
