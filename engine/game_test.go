package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/yR-DEV/space-invaders/asset"
	"github.com/yR-DEV/space-invaders/config"
	"github.com/yR-DEV/space-invaders/entity"
	"github.com/yR-DEV/space-invaders/input"
	"github.com/yR-DEV/space-invaders/status"
)

var testField = entity.Field{Width: 40, Height: 20}

type recordingSounds struct {
	fire, explosion, hit, gameOver, toggles int
	muted                                   bool
}

func (r *recordingSounds) PlayFire()      { r.fire++ }
func (r *recordingSounds) PlayExplosion() { r.explosion++ }
func (r *recordingSounds) PlayHit()       { r.hit++ }
func (r *recordingSounds) PlayGameOver()  { r.gameOver++ }

func (r *recordingSounds) ToggleMute() bool {
	r.toggles++
	r.muted = !r.muted
	return r.muted
}

// fixedWaves returns the same layout for every wave
type fixedWaves struct {
	spawns []Spawn
	calls  int
}

func (f *fixedWaves) Wave(n int, _ entity.Field) []Spawn {
	f.calls++
	return f.spawns
}

// A far, almost still enemy keeps the wave alive without interfering
var idleWave = []Spawn{{X: 0, Y: 1, Speed: 0.0001}}

func testConfig() *config.Config {
	cfg := config.Default(asset.VariantSpaceship)
	cfg.Game.Seed = 1
	cfg.Enemy.FireChance = 0
	cfg.Player.FireRate = 1
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config, spawns []Spawn) (*Game, *recordingSounds, *status.Registry) {
	t.Helper()
	assets, err := asset.Load(asset.VariantSpaceship)
	if err != nil {
		t.Fatalf("load assets: %v", err)
	}
	sounds := &recordingSounds{}
	metrics := status.NewRegistry()
	g := NewGame(cfg, assets, testField,
		WithSounds(sounds),
		WithWaves(&fixedWaves{spawns: spawns}),
		WithMetrics(metrics),
		WithClock(NewMockTimeProvider(time.Unix(0, 0))),
	)
	g.Start(NewFrameScheduler(time.Millisecond, nil))
	return g, sounds, metrics
}

func TestNewGamePoolCapacities(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(), idleWave)
	if g.Projectiles.Cap() != 30 || g.Enemies.Cap() != 30 || g.EnemyProjectiles.Cap() != 50 {
		t.Fatalf("capacities %d/%d/%d, want 30/30/50", g.Projectiles.Cap(), g.Enemies.Cap(), g.EnemyProjectiles.Cap())
	}
	if g.Lives() != 3 || g.State() != StatePlaying || g.Wave() != 0 {
		t.Fatalf("initial lives=%d state=%v wave=%d", g.Lives(), g.State(), g.Wave())
	}
}

// TestAnimateRearms verifies that each frame schedules the next one before stepping
func TestAnimateRearms(t *testing.T) {
	assets, _ := asset.Load(asset.VariantSpaceship)
	g := NewGame(testConfig(), assets, testField, WithWaves(&fixedWaves{spawns: idleWave}))
	s := NewFrameScheduler(time.Millisecond, NewMockTimeProvider(time.Unix(0, 0)))
	g.Start(s)

	for i := 0; i < 3; i++ {
		if !s.Tick() {
			t.Fatalf("tick %d found nothing scheduled", i)
		}
	}
	if g.Frame() != 3 || !s.Pending() {
		t.Fatalf("frame=%d pending=%v, want 3 true", g.Frame(), s.Pending())
	}
}

func TestFirstStepSpawnsWave(t *testing.T) {
	spawns := []Spawn{{X: 1, Y: 1, Speed: 0.1}, {X: 10, Y: 1, Speed: 0.1}, {X: 20, Y: 1, Speed: -0.1}}
	g, _, _ := newTestGame(t, testConfig(), spawns)

	g.Step(input.Snapshot{})
	if g.Wave() != 1 || g.Enemies.Len() != 3 {
		t.Fatalf("wave=%d enemies=%d, want 1 3", g.Wave(), g.Enemies.Len())
	}

	g.Step(input.Snapshot{})
	if g.Wave() != 1 {
		t.Fatalf("wave advanced to %d with enemies alive", g.Wave())
	}
}

// TestShotKillsEnemy verifies the full hit path: volley, collision, score, retirement, next wave
func TestShotKillsEnemy(t *testing.T) {
	// Player starts at x=17.5, its left gun fires straight into this enemy
	g, sounds, metrics := newTestGame(t, testConfig(), []Spawn{{X: 16, Y: 10, Speed: 0.0001}})

	g.Step(input.SnapshotOf(input.ActionFire))
	if g.Projectiles.Len() != 2 || sounds.fire != 1 {
		t.Fatalf("projectiles=%d fire sounds=%d after the volley", g.Projectiles.Len(), sounds.fire)
	}

	for i := 0; i < 20 && g.Score() == 0; i++ {
		g.Step(input.Snapshot{})
	}
	if g.Score() != 10 {
		t.Fatalf("score = %d, want 10", g.Score())
	}
	if sounds.explosion != 1 || metrics.Counter("game.kills").Load() != 1 {
		t.Fatalf("explosions=%d kills=%d", sounds.explosion, metrics.Counter("game.kills").Load())
	}

	// The dead pair retires on the next pass and the cleared field brings wave 2
	g.Step(input.Snapshot{})
	if g.Projectiles.Len() != 1 {
		t.Fatalf("projectiles=%d, want only the right-gun shot", g.Projectiles.Len())
	}
	if g.Wave() != 2 || g.Enemies.Len() != 1 {
		t.Fatalf("wave=%d enemies=%d, want 2 1", g.Wave(), g.Enemies.Len())
	}
}

func TestEnemyShotCostsLives(t *testing.T) {
	cfg := testConfig()
	cfg.Game.Lives = 2
	g, sounds, _ := newTestGame(t, cfg, idleWave)

	hit := func() {
		t.Helper()
		if !g.EnemyProjectiles.Acquire(19, 16, 0.5) {
			t.Fatal("enemy projectile pool full")
		}
		g.Step(input.Snapshot{})
	}

	hit()
	if g.Lives() != 1 || g.State() != StatePlaying || sounds.hit != 1 {
		t.Fatalf("after first hit lives=%d state=%v hits=%d", g.Lives(), g.State(), sounds.hit)
	}

	hit()
	if g.Lives() != 0 || g.State() != StateGameOver || sounds.gameOver != 1 {
		t.Fatalf("after second hit lives=%d state=%v gameOver=%d", g.Lives(), g.State(), sounds.gameOver)
	}

	frame := g.Frame()
	g.Step(input.SnapshotOf(input.ActionFire))
	if g.Frame() != frame {
		t.Fatal("game advanced after game over")
	}
	if !strings.Contains(g.Layers().HUD.String(), "GAME OVER") {
		t.Fatalf("no game over banner:\n%s", g.Layers().HUD.String())
	}
}

func TestEnemyCollidingWithPlayer(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(), []Spawn{{X: 17, Y: 16, Speed: 0.0001}})

	g.Step(input.Snapshot{}) // spawns the wave
	g.Step(input.Snapshot{})

	if g.Lives() != 2 {
		t.Fatalf("lives=%d, want 2", g.Lives())
	}
}

func TestVolleyDroppedWhenPoolFull(t *testing.T) {
	cfg := testConfig()
	cfg.Pools.Projectiles = 2
	g, sounds, metrics := newTestGame(t, cfg, idleWave)

	fire := input.SnapshotOf(input.ActionFire)
	for i := 0; i < 3; i++ {
		g.Step(fire)
	}

	if g.Projectiles.Len() != 2 {
		t.Fatalf("projectiles=%d, want 2", g.Projectiles.Len())
	}
	if got := metrics.Counter("pool.projectiles.spawned").Load(); got != 2 {
		t.Fatalf("spawned=%d, want 2", got)
	}
	if got := metrics.Counter("pool.projectiles.dropped").Load(); got != 4 {
		t.Fatalf("dropped=%d, want 4", got)
	}
	if sounds.fire != 1 {
		t.Fatalf("fire sounds=%d, want 1", sounds.fire)
	}
	if got := metrics.Gauge("pool.projectiles.alive").Get(); got != 2 {
		t.Fatalf("alive gauge=%v, want 2", got)
	}
}

func TestPauseFreezesTheGame(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(), idleWave)
	g.Step(input.Snapshot{})

	g.HandleCommand(input.CommandPause)
	if g.State() != StatePaused {
		t.Fatalf("state=%v, want paused", g.State())
	}
	frame := g.Frame()
	g.Step(input.SnapshotOf(input.ActionLeft))
	if g.Frame() != frame {
		t.Fatal("paused game advanced")
	}
	if !strings.Contains(g.Layers().HUD.String(), "PAUSED") {
		t.Fatal("no pause banner")
	}

	g.HandleCommand(input.CommandPause)
	g.Step(input.Snapshot{})
	if g.State() != StatePlaying || g.Frame() != frame+1 {
		t.Fatalf("state=%v frame=%d after resume", g.State(), g.Frame())
	}
}

func TestRestartResetsSession(t *testing.T) {
	cfg := testConfig()
	cfg.Game.Lives = 1
	g, _, _ := newTestGame(t, cfg, idleWave)

	g.Step(input.SnapshotOf(input.ActionFire, input.ActionLeft))
	g.EnemyProjectiles.Acquire(16, 16, 0.5)
	g.Step(input.Snapshot{})
	if g.State() != StateGameOver {
		t.Fatalf("state=%v, want game over", g.State())
	}

	g.HandleCommand(input.CommandRestart)
	if g.State() != StatePlaying || g.Lives() != 1 || g.Score() != 0 || g.Wave() != 0 {
		t.Fatalf("after restart state=%v lives=%d score=%d wave=%d", g.State(), g.Lives(), g.Score(), g.Wave())
	}
	if g.Projectiles.Len() != 0 || g.Enemies.Len() != 0 || g.EnemyProjectiles.Len() != 0 {
		t.Fatal("pools not emptied by restart")
	}
	if x := g.Player().X; x != (testField.Width-g.Player().Width)/2 {
		t.Fatalf("player at x=%v after restart", x)
	}

	g.Step(input.Snapshot{})
	if g.Wave() != 1 {
		t.Fatalf("wave=%d after restart step, want 1", g.Wave())
	}
}

func TestMuteCommand(t *testing.T) {
	g, sounds, _ := newTestGame(t, testConfig(), idleWave)
	g.HandleCommand(input.CommandMute)
	g.HandleCommand(input.CommandMute)
	if sounds.toggles != 2 || sounds.muted {
		t.Fatalf("toggles=%d muted=%v", sounds.toggles, sounds.muted)
	}
}

func TestHUDStatusLine(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(), idleWave)
	g.Step(input.Snapshot{})

	line := strings.SplitN(g.Layers().HUD.String(), "\n", 2)[0]
	if !strings.HasPrefix(line, "SCORE 00000  LIVES 3  WAVE 1") {
		t.Fatalf("status line %q", line)
	}
}
