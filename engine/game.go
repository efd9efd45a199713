package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/yR-DEV/space-invaders/asset"
	"github.com/yR-DEV/space-invaders/audio"
	"github.com/yR-DEV/space-invaders/config"
	"github.com/yR-DEV/space-invaders/entity"
	"github.com/yR-DEV/space-invaders/input"
	"github.com/yR-DEV/space-invaders/pool"
	"github.com/yR-DEV/space-invaders/render"
	"github.com/yR-DEV/space-invaders/status"
)

var hudStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)

// Sounds is the effect sink the game triggers
type Sounds interface {
	PlayFire()
	PlayExplosion()
	PlayHit()
	PlayGameOver()
	ToggleMute() bool
}

// GameState is the session phase
type GameState uint8

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	}
	return fmt.Sprintf("GameState(%d)", uint8(s))
}

// Layers are the canvases the game draws into, one per visual concern
type Layers struct {
	Background       *render.Canvas
	Player           *render.Canvas
	Projectiles      *render.Canvas
	Enemies          *render.Canvas
	EnemyProjectiles *render.Canvas
	HUD              *render.Canvas
}

// Register adds every layer to a stack in draw order
func (l Layers) Register(s *render.Stack) {
	s.Register(l.Background, render.PriorityBackground)
	s.Register(l.Player, render.PriorityPlayer)
	s.Register(l.Projectiles, render.PriorityEntities)
	s.Register(l.Enemies, render.PriorityEntities)
	s.Register(l.EnemyProjectiles, render.PriorityEntities)
	s.Register(l.HUD, render.PriorityHUD)
}

func (l Layers) clear() {
	for _, c := range []*render.Canvas{l.Background, l.Player, l.Projectiles, l.Enemies, l.EnemyProjectiles, l.HUD} {
		c.Clear()
	}
}

// Option configures a Game
type Option func(*Game)

// WithSounds sets the effect sink, audio.Nop by default
func WithSounds(s Sounds) Option {
	return func(g *Game) { g.sounds = s }
}

// WithWaves replaces the built-in grid layout
func WithWaves(w WaveSource) Option {
	return func(g *Game) { g.waves = w }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithMetrics sets the registry counters are published to
func WithMetrics(reg *status.Registry) Option {
	return func(g *Game) { g.metrics = reg }
}

// WithClock sets the time source
func WithClock(clock TimeProvider) Option {
	return func(g *Game) { g.clock = clock }
}

// WithInput sets the held-action state
func WithInput(s *input.State) Option {
	return func(g *Game) { g.input = s }
}

// Game owns the background, the player and the three entity pools
// All methods run on the loop goroutine
type Game struct {
	Projectiles      *pool.Pool[*entity.Projectile]
	Enemies          *pool.Pool[*entity.Enemy]
	EnemyProjectiles *pool.Pool[*entity.Projectile]

	cfg        *config.Config
	assets     *asset.Repository
	field      entity.Field
	layers     Layers
	background *entity.Background
	player     *entity.Player

	shots      *meteredPool[*entity.Projectile]
	foes       *meteredPool[*entity.Enemy]
	enemyShots *meteredPool[*entity.Projectile]

	sounds    Sounds
	waves     WaveSource
	log       *zap.Logger
	metrics   *status.Registry
	clock     TimeProvider
	input     *input.State
	rng       *rand.Rand
	scheduler Scheduler

	state GameState
	score int
	lives int
	wave  int
	frame uint64
}

// NewGame builds a session for a field of the given size
func NewGame(cfg *config.Config, assets *asset.Repository, field entity.Field, opts ...Option) *Game {
	g := &Game{
		cfg:    cfg,
		assets: assets,
		field:  field,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.sounds == nil {
		g.sounds = audio.Nop{}
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	if g.metrics == nil {
		g.metrics = status.NewRegistry()
	}
	if g.clock == nil {
		g.clock = NewMonotonicTimeProvider()
	}
	if g.input == nil {
		g.input = input.NewState(cfg.Input.HoldWindow)
	}
	if g.waves == nil {
		g.waves = NewGridWaves(cfg.Enemy, assets.Enemy)
	}

	seed := uint64(cfg.Game.Seed)
	if seed == 0 {
		seed = uint64(g.clock.Now().UnixNano())
	}
	g.rng = rand.New(rand.NewPCG(seed, seed>>1|1))

	w, h := int(field.Width), int(field.Height)
	g.layers = Layers{
		Background:       render.NewCanvas(w, h),
		Player:           render.NewCanvas(w, h),
		Projectiles:      render.NewCanvas(w, h),
		Enemies:          render.NewCanvas(w, h),
		EnemyProjectiles: render.NewCanvas(w, h),
		HUD:              render.NewCanvas(w, h),
	}

	g.background = entity.NewBackground(asset.Background(assets.Variant, w, h), field, cfg.Background.Speed)

	g.Projectiles = pool.New[*entity.Projectile](cfg.Pools.Projectiles)
	pw, ph := assets.Projectile.Size()
	g.Projectiles.Init(func() *entity.Projectile {
		return entity.NewProjectile(assets.Projectile, field, entity.Up)
	}, pw, ph)
	g.shots = newMeteredPool(g.Projectiles, g.metrics, "projectiles")

	g.EnemyProjectiles = pool.New[*entity.Projectile](cfg.Pools.EnemyProjectiles)
	qw, qh := assets.EnemyProjectile.Size()
	g.EnemyProjectiles.Init(func() *entity.Projectile {
		return entity.NewProjectile(assets.EnemyProjectile, field, entity.Down)
	}, qw, qh)
	g.enemyShots = newMeteredPool(g.EnemyProjectiles, g.metrics, "enemy_projectiles")

	enemyCfg := entity.EnemyConfig{
		Drop:            cfg.Enemy.Drop,
		FireChance:      cfg.Enemy.FireChance,
		ProjectileSpeed: cfg.Enemy.ProjectileSpeed,
	}
	g.Enemies = pool.New[*entity.Enemy](cfg.Pools.Enemies)
	ew, eh := assets.Enemy.Size()
	g.Enemies.Init(func() *entity.Enemy {
		return entity.NewEnemy(assets.Enemy, field, enemyCfg, g.enemyShots, g.rng)
	}, ew, eh)
	g.foes = newMeteredPool(g.Enemies, g.metrics, "enemies")

	g.player = entity.NewPlayer(assets.Player, field, entity.PlayerConfig{
		Speed:           cfg.Player.Speed,
		FireRate:        cfg.Player.FireRate,
		ProjectileSpeed: cfg.Player.ProjectileSpeed,
		MinYFraction:    cfg.Player.MinYFraction,
		LeftGun:         cfg.Player.LeftGun,
		RightGun:        cfg.Player.RightGun,
	}, g.shots)

	g.lives = cfg.Game.Lives
	return g
}

// Start draws the initial frame and schedules the first animation callback
func (g *Game) Start(s Scheduler) {
	g.scheduler = s
	g.player.Place()
	g.player.Draw(g.layers.Player)
	g.drawHUD()
	g.log.Info("game started",
		zap.String("variant", string(g.assets.Variant)),
		zap.Float64("width", g.field.Width),
		zap.Float64("height", g.field.Height),
	)
	s.ScheduleNextFrame(g.Animate)
}

// Animate is the frame callback. It re-arms itself before stepping
func (g *Game) Animate(now time.Time) {
	if g.scheduler != nil {
		g.scheduler.ScheduleNextFrame(g.Animate)
	}
	g.Step(g.input.Snapshot(now))
}

// Step advances one frame with the given input
func (g *Game) Step(snap input.Snapshot) {
	if g.state != StatePlaying {
		g.drawHUD()
		return
	}
	g.frame++
	g.metrics.Counter("engine.frames").Add(1)

	g.background.Draw(g.layers.Background)

	if attempted, fired := g.player.Move(snap, g.layers.Player); fired {
		g.sounds.PlayFire()
	} else if attempted {
		g.log.Debug("volley dropped", zap.Int("free", g.Projectiles.Free()))
	}

	g.Projectiles.AdvanceAndDraw(g.layers.Projectiles)
	g.Enemies.AdvanceAndDraw(g.layers.Enemies)
	g.EnemyProjectiles.AdvanceAndDraw(g.layers.EnemyProjectiles)

	g.collide()

	if g.state == StatePlaying && g.Enemies.Len() == 0 {
		g.nextWave()
	}

	g.shots.sample()
	g.foes.sample()
	g.enemyShots.sample()
	g.drawHUD()
}

// HandleCommand applies a non-movement key command. Quit is left to the loop
func (g *Game) HandleCommand(cmd input.Command) {
	switch cmd {
	case input.CommandPause:
		switch g.state {
		case StatePlaying:
			g.state = StatePaused
			g.input.ReleaseAll()
		case StatePaused:
			g.state = StatePlaying
		}
		g.log.Debug("pause toggled", zap.Stringer("state", g.state))
		g.drawHUD()
	case input.CommandRestart:
		g.Reset()
	case input.CommandMute:
		muted := g.sounds.ToggleMute()
		g.log.Debug("mute toggled", zap.Bool("muted", muted))
	}
}

// Reset clears every pool and canvas and starts over from wave 0
func (g *Game) Reset() {
	g.Projectiles.Reset()
	g.Enemies.Reset()
	g.EnemyProjectiles.Reset()
	g.layers.clear()
	g.input.ReleaseAll()

	g.score = 0
	g.lives = g.cfg.Game.Lives
	g.wave = 0
	g.state = StatePlaying

	g.player.Place()
	g.player.Draw(g.layers.Player)
	g.drawHUD()
	g.log.Info("game reset")
}

// collide resolves hits after every pool has moved. Hit entities are killed and
// retire on their pool's next pass
func (g *Game) collide() {
	g.Projectiles.Each(func(_ int, shot *entity.Projectile) bool {
		if shot.Killed() {
			return true
		}
		g.Enemies.Each(func(_ int, foe *entity.Enemy) bool {
			if foe.Killed() || !shot.Overlaps(&foe.Body) {
				return true
			}
			shot.Kill()
			foe.Kill()
			g.score += g.cfg.Enemy.Points
			g.metrics.Counter("game.kills").Add(1)
			g.sounds.PlayExplosion()
			return false
		})
		return true
	})

	g.EnemyProjectiles.Each(func(_ int, shot *entity.Projectile) bool {
		if shot.Killed() || !shot.Overlaps(&g.player.Body) {
			return true
		}
		shot.Kill()
		g.hitPlayer()
		return g.state == StatePlaying
	})

	if g.state != StatePlaying {
		return
	}
	g.Enemies.Each(func(_ int, foe *entity.Enemy) bool {
		if foe.Killed() || !foe.Overlaps(&g.player.Body) {
			return true
		}
		foe.Kill()
		g.hitPlayer()
		return g.state == StatePlaying
	})
}

func (g *Game) hitPlayer() {
	g.lives--
	g.metrics.Counter("game.hits").Add(1)
	if g.lives > 0 {
		g.sounds.PlayHit()
		return
	}
	g.lives = 0
	g.state = StateGameOver
	g.sounds.PlayGameOver()
	g.log.Info("game over",
		zap.Int("score", g.score),
		zap.Int("wave", g.wave),
		zap.Uint64("frames", g.frame),
	)
}

func (g *Game) nextWave() {
	g.wave++
	spawns := g.waves.Wave(g.wave, g.field)
	placed := 0
	for _, s := range spawns {
		if g.foes.Acquire(s.X, s.Y, s.Speed) {
			placed++
		}
	}
	g.metrics.Gauge("game.wave").Set(float64(g.wave))
	g.log.Debug("wave spawned",
		zap.Int("wave", g.wave),
		zap.Int("requested", len(spawns)),
		zap.Int("placed", placed),
	)
}

func (g *Game) drawHUD() {
	hud := g.layers.HUD
	hud.Clear()
	hud.DrawText(0, 0, g.statusLine(), hudStyle)

	var banner string
	switch g.state {
	case StatePaused:
		banner = "PAUSED - press p to resume"
	case StateGameOver:
		banner = fmt.Sprintf("GAME OVER - score %d - press r to restart", g.score)
	default:
		return
	}
	x := max((hud.Width()-len(banner))/2, 0)
	hud.DrawText(x, hud.Height()/2, banner, hudStyle)
}

func (g *Game) statusLine() string {
	return fmt.Sprintf("SCORE %05d  LIVES %d  WAVE %d", g.score, g.lives, g.wave)
}

// Layers returns the canvases for composition
func (g *Game) Layers() Layers { return g.layers }

// Player returns the player entity
func (g *Game) Player() *entity.Player { return g.player }

// Input returns the held-action state keys are fed into
func (g *Game) Input() *input.State { return g.input }

// Field returns the playable area
func (g *Game) Field() entity.Field { return g.field }

// State returns the session phase
func (g *Game) State() GameState { return g.state }

// Score returns the current score
func (g *Game) Score() int { return g.score }

// Lives returns the remaining lives
func (g *Game) Lives() int { return g.lives }

// Wave returns the current wave number, 0 before the first spawn
func (g *Game) Wave() int { return g.wave }

// Frame returns the number of frames stepped while playing
func (g *Game) Frame() uint64 { return g.frame }
