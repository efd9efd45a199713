package pool

import (
	"math/rand/v2"
	"testing"

	"github.com/yR-DEV/space-invaders/asset"
	"github.com/yR-DEV/space-invaders/render"
)

type nopRenderer struct{}

func (nopRenderer) DrawSprite(*asset.Sprite, float64, float64)     {}
func (nopRenderer) ClearRegion(float64, float64, float64, float64) {}

// fakeEntity moves down by speed each frame and exits past limit
type fakeEntity struct {
	id            int
	x, y          float64
	width, height float64
	speed         float64
	alive         bool
	limit         float64
	draws         int
	inits         int
	clears        int
	exitNext      bool
}

func (f *fakeEntity) Init(x, y, width, height float64) {
	f.x, f.y = x, y
	f.width, f.height = width, height
	f.inits++
}

func (f *fakeEntity) Spawn(x, y, speed float64) {
	f.x, f.y, f.speed = x, y, speed
	f.alive = true
}

func (f *fakeEntity) Draw(r render.Renderer) bool {
	r.ClearRegion(f.x, f.y, f.width, f.height)
	f.draws++
	if f.exitNext {
		f.exitNext = false
		return true
	}
	f.y += f.speed
	return f.y >= f.limit
}

func (f *fakeEntity) Clear() {
	f.x, f.y, f.speed = 0, 0, 0
	f.alive = false
	f.clears++
}

func (f *fakeEntity) Alive() bool { return f.alive }

func newFakePool(t *testing.T, capacity int, limit float64) (*Pool[*fakeEntity], []*fakeEntity) {
	t.Helper()
	p := New[*fakeEntity](capacity)
	var all []*fakeEntity
	p.Init(func() *fakeEntity {
		e := &fakeEntity{id: len(all), limit: limit}
		all = append(all, e)
		return e
	}, 1, 2)
	return p, all
}

// checkPartition asserts [0, Len) alive and [Len, Cap) dormant
func checkPartition(t *testing.T, p *Pool[*fakeEntity]) {
	t.Helper()
	for i := 0; i < p.Cap(); i++ {
		e := p.At(i)
		if want := i < p.Len(); e.Alive() != want {
			t.Fatalf("slot %d alive=%v, want %v (len=%d)", i, e.Alive(), want, p.Len())
		}
	}
}

func TestInitPopulatesDormantEntities(t *testing.T) {
	p, all := newFakePool(t, 4, 10)

	if p.Cap() != 4 || p.Len() != 0 || p.Free() != 4 {
		t.Fatalf("cap=%d len=%d free=%d, want 4 0 4", p.Cap(), p.Len(), p.Free())
	}
	if len(all) != 4 {
		t.Fatalf("constructor called %d times, want 4", len(all))
	}
	for i, e := range all {
		if e.inits != 1 {
			t.Errorf("entity %d init %d times, want 1", i, e.inits)
		}
		if e.width != 1 || e.height != 2 {
			t.Errorf("entity %d size %vx%v, want 1x2", i, e.width, e.height)
		}
		if e.Alive() {
			t.Errorf("entity %d alive after Init", i)
		}
	}
}

func TestAcquireFillsToCapacity(t *testing.T) {
	p, _ := newFakePool(t, 3, 100)

	for i := 0; i < 3; i++ {
		if !p.Acquire(float64(i), 0, 1) {
			t.Fatalf("acquire %d rejected", i)
		}
	}
	if p.Acquire(9, 9, 1) {
		t.Fatal("acquire accepted on a full pool")
	}
	if p.Len() != 3 {
		t.Fatalf("len=%d, want 3", p.Len())
	}
	checkPartition(t, p)
}

func TestAcquireTwoIsAtomic(t *testing.T) {
	p, _ := newFakePool(t, 3, 100)

	if !p.AcquireTwo(1, 0, 1, 2, 0, 1) {
		t.Fatal("first pair rejected")
	}
	if p.AcquireTwo(3, 0, 1, 4, 0, 1) {
		t.Fatal("pair accepted with a single free slot")
	}
	if p.Len() != 2 {
		t.Fatalf("len=%d after rejected pair, want 2", p.Len())
	}
	if p.At(2).Alive() {
		t.Fatal("rejected pair spawned its first entity")
	}
	if !p.Acquire(5, 0, 1) {
		t.Fatal("single acquire rejected with a free slot")
	}
	checkPartition(t, p)
}

func TestAcquireTwoSpawnsInOrder(t *testing.T) {
	p, _ := newFakePool(t, 2, 100)

	p.AcquireTwo(1, 2, 0.5, 3, 4, 0.25)

	first, second := p.At(0), p.At(1)
	if first.x != 1 || first.y != 2 || first.speed != 0.5 {
		t.Errorf("first = (%v, %v, %v), want (1, 2, 0.5)", first.x, first.y, first.speed)
	}
	if second.x != 3 || second.y != 4 || second.speed != 0.25 {
		t.Errorf("second = (%v, %v, %v), want (3, 4, 0.25)", second.x, second.y, second.speed)
	}
}

func TestAdvanceRetiresExitedEntities(t *testing.T) {
	p, _ := newFakePool(t, 4, 3)

	p.Acquire(0, 0, 1) // exits on frame 3
	p.Acquire(1, 0, 3) // exits on frame 1
	p.Acquire(2, 0, 1.5)

	if got := p.AdvanceAndDraw(nopRenderer{}); got != 1 {
		t.Fatalf("frame 1 retired %d, want 1", got)
	}
	checkPartition(t, p)
	if p.Len() != 2 {
		t.Fatalf("len=%d, want 2", p.Len())
	}

	if got := p.AdvanceAndDraw(nopRenderer{}); got != 1 {
		t.Fatalf("frame 2 retired %d, want 1", got)
	}
	if got := p.AdvanceAndDraw(nopRenderer{}); got != 1 {
		t.Fatalf("frame 3 retired %d, want 1", got)
	}
	if p.Len() != 0 || p.Free() != 4 {
		t.Fatalf("len=%d free=%d, want 0 4", p.Len(), p.Free())
	}
	checkPartition(t, p)
}

func TestAdvancePreservesSurvivorOrder(t *testing.T) {
	p, _ := newFakePool(t, 5, 100)
	for i := 0; i < 5; i++ {
		p.Acquire(float64(i), 0, 1)
	}
	p.At(1).exitNext = true
	p.At(3).exitNext = true

	p.AdvanceAndDraw(nopRenderer{})

	var xs []float64
	p.Each(func(_ int, e *fakeEntity) bool {
		xs = append(xs, e.x)
		return true
	})
	want := []float64{0, 2, 4}
	if len(xs) != len(want) {
		t.Fatalf("survivors %v, want %v", xs, want)
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Fatalf("survivors %v, want %v", xs, want)
		}
	}
}

func TestAdvanceDrawsEachAliveOnce(t *testing.T) {
	p, all := newFakePool(t, 6, 100)
	p.Acquire(0, 0, 1)
	p.Acquire(0, 0, 1)
	p.At(0).exitNext = true

	p.AdvanceAndDraw(nopRenderer{})

	total := 0
	for _, e := range all {
		total += e.draws
	}
	if total != 2 {
		t.Fatalf("%d draws, want 2", total)
	}
	for _, e := range all[2:] {
		if e.draws != 0 {
			t.Fatalf("dormant entity %d drawn", e.id)
		}
	}
}

func TestRetiredEntityIsCleared(t *testing.T) {
	p, _ := newFakePool(t, 1, 1)
	p.Acquire(5, 0, 2)
	e := p.At(0)

	p.AdvanceAndDraw(nopRenderer{})

	if e.Alive() || e.x != 0 || e.y != 0 || e.speed != 0 {
		t.Fatalf("retired entity not cleared: alive=%v pos=(%v, %v) speed=%v", e.Alive(), e.x, e.y, e.speed)
	}
	if e.width != 1 || e.height != 2 {
		t.Fatalf("retired entity lost its size: %vx%v", e.width, e.height)
	}
	if !p.Acquire(0, 0, 1) {
		t.Fatal("retired slot not reusable")
	}
}

// Capacity 3: pair, single, rejected single, one retirement, reacquire
func TestCapacityThreeScenario(t *testing.T) {
	p, _ := newFakePool(t, 3, 100)

	steps := []struct {
		name string
		do   func() bool
		want bool
		len  int
	}{
		{"pair", func() bool { return p.AcquireTwo(0, 0, 1, 1, 0, 1) }, true, 2},
		{"single", func() bool { return p.Acquire(2, 0, 1) }, true, 3},
		{"full", func() bool { return p.Acquire(3, 0, 1) }, false, 3},
		{"pair on full", func() bool { return p.AcquireTwo(4, 0, 1, 5, 0, 1) }, false, 3},
		{"retire one", func() bool {
			p.At(0).exitNext = true
			return p.AdvanceAndDraw(nopRenderer{}) == 1
		}, true, 2},
		{"pair on one free", func() bool { return p.AcquireTwo(6, 0, 1, 7, 0, 1) }, false, 2},
		{"single on one free", func() bool { return p.Acquire(8, 0, 1) }, true, 3},
	}

	for _, s := range steps {
		if got := s.do(); got != s.want {
			t.Fatalf("%s: got %v, want %v", s.name, got, s.want)
		}
		if p.Len() != s.len {
			t.Fatalf("%s: len=%d, want %d", s.name, p.Len(), s.len)
		}
		checkPartition(t, p)
	}
}

func TestResetRetiresAll(t *testing.T) {
	p, _ := newFakePool(t, 4, 100)
	p.AcquireTwo(0, 0, 1, 1, 0, 1)
	p.Acquire(2, 0, 1)

	p.Reset()

	if p.Len() != 0 || p.Free() != 4 {
		t.Fatalf("len=%d free=%d after reset, want 0 4", p.Len(), p.Free())
	}
	checkPartition(t, p)
}

func TestEachStopsEarly(t *testing.T) {
	p, _ := newFakePool(t, 4, 100)
	for i := 0; i < 4; i++ {
		p.Acquire(float64(i), 0, 1)
	}

	visited := 0
	p.Each(func(i int, _ *fakeEntity) bool {
		visited++
		return i < 1
	})
	if visited != 2 {
		t.Fatalf("visited %d, want 2", visited)
	}
}

// Random interleavings must never break the partition or exceed capacity
func TestPartitionHoldsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	p, _ := newFakePool(t, 16, 20)

	for step := 0; step < 5000; step++ {
		before := p.Len()
		switch op := rng.IntN(4); op {
		case 0:
			ok := p.Acquire(0, rng.Float64()*10, 0.5+rng.Float64()*3)
			if ok != (before < p.Cap()) {
				t.Fatalf("step %d: acquire=%v with len %d", step, ok, before)
			}
		case 1:
			ok := p.AcquireTwo(0, rng.Float64()*10, 1, 1, rng.Float64()*10, 2)
			if ok != (before+2 <= p.Cap()) {
				t.Fatalf("step %d: acquireTwo=%v with len %d", step, ok, before)
			}
			if !ok && p.Len() != before {
				t.Fatalf("step %d: rejected pair changed len %d -> %d", step, before, p.Len())
			}
		default:
			if before > 0 && rng.IntN(3) == 0 {
				p.At(rng.IntN(before)).exitNext = true
			}
			retired := p.AdvanceAndDraw(nopRenderer{})
			if p.Len() != before-retired {
				t.Fatalf("step %d: len %d after retiring %d of %d", step, p.Len(), retired, before)
			}
		}

		if p.Len() > p.Cap() || p.Len()+p.Free() != p.Cap() {
			t.Fatalf("step %d: len=%d free=%d cap=%d", step, p.Len(), p.Free(), p.Cap())
		}
		checkPartition(t, p)
	}
}

func TestContractPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"zero capacity", func() { New[*fakeEntity](0) }},
		{"acquire before init", func() { New[*fakeEntity](2).Acquire(0, 0, 1) }},
		{"advance before init", func() { New[*fakeEntity](2).AdvanceAndDraw(nopRenderer{}) }},
		{"double init", func() {
			p := New[*fakeEntity](1)
			p.Init(func() *fakeEntity { return &fakeEntity{} }, 1, 1)
			p.Init(func() *fakeEntity { return &fakeEntity{} }, 1, 1)
		}},
		{"acquire during advance", func() {
			p := New[*fakeEntity](2)
			p.Init(func() *fakeEntity { return &fakeEntity{limit: 100} }, 1, 1)
			p.Acquire(0, 0, 1)
			p.AdvanceAndDraw(acquiringRenderer{p})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

// acquiringRenderer re-enters the pool from inside a draw
type acquiringRenderer struct {
	p *Pool[*fakeEntity]
}

func (a acquiringRenderer) DrawSprite(*asset.Sprite, float64, float64) {}

func (a acquiringRenderer) ClearRegion(float64, float64, float64, float64) {
	a.p.Acquire(0, 0, 1)
}
