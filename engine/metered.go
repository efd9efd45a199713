package engine

import (
	"sync/atomic"

	"github.com/yR-DEV/space-invaders/pool"
	"github.com/yR-DEV/space-invaders/status"
)

// meteredPool counts spawns and capacity drops of a pool
// It satisfies entity.Shooter and entity.Launcher
type meteredPool[T pool.Entity] struct {
	pool    *pool.Pool[T]
	spawned *atomic.Int64
	dropped *atomic.Int64
	alive   *status.AtomicFloat
}

func newMeteredPool[T pool.Entity](p *pool.Pool[T], reg *status.Registry, name string) *meteredPool[T] {
	prefix := "pool." + name + "."
	return &meteredPool[T]{
		pool:    p,
		spawned: reg.Counter(prefix + "spawned"),
		dropped: reg.Counter(prefix + "dropped"),
		alive:   reg.Gauge(prefix + "alive"),
	}
}

func (m *meteredPool[T]) Acquire(x, y, speed float64) bool {
	ok := m.pool.Acquire(x, y, speed)
	m.count(ok, 1)
	return ok
}

func (m *meteredPool[T]) AcquireTwo(x1, y1, speed1, x2, y2, speed2 float64) bool {
	ok := m.pool.AcquireTwo(x1, y1, speed1, x2, y2, speed2)
	m.count(ok, 2)
	return ok
}

// sample publishes the alive count
func (m *meteredPool[T]) sample() {
	m.alive.Set(float64(m.pool.Len()))
}

func (m *meteredPool[T]) count(ok bool, n int64) {
	if ok {
		m.spawned.Add(n)
	} else {
		m.dropped.Add(n)
	}
}
