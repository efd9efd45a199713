package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/yR-DEV/space-invaders/asset"
	"github.com/yR-DEV/space-invaders/audio"
	"github.com/yR-DEV/space-invaders/config"
	"github.com/yR-DEV/space-invaders/core"
	"github.com/yR-DEV/space-invaders/engine"
	"github.com/yR-DEV/space-invaders/entity"
	"github.com/yR-DEV/space-invaders/input"
	"github.com/yR-DEV/space-invaders/render"
	"github.com/yR-DEV/space-invaders/script"
	"github.com/yR-DEV/space-invaders/status"
)

var (
	configFlag  = flag.String("config", "", "Config file, .toml or .yaml")
	variantFlag = flag.String("variant", "", "Sprite set: spaceship or biker")
	debugFlag   = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	profileFlag = flag.String("profile", "", "Profile the run: cpu or mem")
	muteFlag    = flag.Bool("mute", false, "Start muted")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "space-invaders: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(*configFlag, *variantFlag)
	if err != nil {
		return err
	}

	switch *profileFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileFlag)
	}

	log, err := setupLogging(*debugFlag, cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	assets, err := asset.Load(cfg.Variant())
	if err != nil {
		return err
	}

	keys := input.DefaultKeyTable()
	if err := keys.ApplyBindings(cfg.Input.Bindings); err != nil {
		return fmt.Errorf("input bindings: %w", err)
	}

	var waves engine.WaveSource
	if cfg.Script.Waves != "" {
		lua, err := script.Open(cfg.Script.Waves, engine.NewGridWaves(cfg.Enemy, assets.Enemy), log)
		if err != nil {
			return err
		}
		defer lua.Close()
		waves = lua
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Panics on this goroutine restore the terminal before the report
	core.SetCrashScreen(screen)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	screen.HideCursor()
	screen.Clear()

	sw, sh := screen.Size()
	field, err := fieldFor(cfg.Game, sw, sh)
	if err != nil {
		return err
	}

	sounds, closeAudio := setupAudio(cfg.Audio, *muteFlag, log)
	defer closeAudio()

	metrics := status.NewRegistry()
	clock := engine.NewMonotonicTimeProvider()

	opts := []engine.Option{
		engine.WithSounds(sounds),
		engine.WithLogger(log.Named("engine")),
		engine.WithMetrics(metrics),
		engine.WithClock(clock),
	}
	if waves != nil {
		opts = append(opts, engine.WithWaves(waves))
	}
	game := engine.NewGame(cfg, assets, field, opts...)

	stack := render.NewStack(screen, int(field.Width), int(field.Height))
	game.Layers().Register(stack)
	stack.Center(sw, sh)

	loop := &engine.Loop{
		Screen:    screen,
		Stack:     stack,
		Game:      game,
		Scheduler: engine.NewFrameScheduler(cfg.Game.FrameInterval, clock),
		Keys:      keys,
		Clock:     clock,
		Log:       log.Named("loop"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = loop.Run(ctx)
	log.Info("session ended",
		zap.Int("score", game.Score()),
		zap.Int("wave", game.Wave()),
		metrics.Field(),
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadConfig reads the config file if any. A variant flag replaces the file's sprite set
func loadConfig(path, variant string) (*config.Config, error) {
	if path == "" {
		v, err := asset.ParseVariant(variant)
		if err != nil {
			return nil, err
		}
		return config.Default(v), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if variant != "" {
		v, err := asset.ParseVariant(variant)
		if err != nil {
			return nil, err
		}
		cfg.Game.Variant = string(v)
	}
	return cfg, nil
}

// fieldFor caps the terminal size to the configured maximum
func fieldFor(cfg config.GameConfig, screenWidth, screenHeight int) (entity.Field, error) {
	w := min(screenWidth, cfg.MaxWidth)
	h := min(screenHeight, cfg.MaxHeight)
	if w < config.MinFieldWidth || h < config.MinFieldHeight {
		return entity.Field{}, fmt.Errorf("terminal too small: %dx%d, need at least %dx%d",
			screenWidth, screenHeight, config.MinFieldWidth, config.MinFieldHeight)
	}
	return entity.Field{Width: float64(w), Height: float64(h)}, nil
}

// setupAudio opens the speaker. Failure is not fatal, the game runs silent
func setupAudio(cfg config.AudioConfig, mute bool, log *zap.Logger) (engine.Sounds, func()) {
	if !cfg.Enabled {
		return audio.Nop{}, func() {}
	}

	sm := audio.NewSoundManager(cfg.Volume, log.Named("audio"))
	if err := sm.Initialize(); err != nil {
		log.Warn("audio initialization failed, continuing without audio", zap.Error(err))
		return audio.Nop{}, func() {}
	}
	if mute {
		sm.ToggleMute()
	}
	return sm, sm.Cleanup
}
