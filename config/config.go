// Package config loads game tuning from TOML or YAML files
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/yR-DEV/space-invaders/asset"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Smallest playable field
const (
	MinFieldWidth  = 20
	MinFieldHeight = 10
)

type Config struct {
	Game       GameConfig       `toml:"game" yaml:"game"`
	Player     PlayerConfig     `toml:"player" yaml:"player"`
	Background BackgroundConfig `toml:"background" yaml:"background"`
	Enemy      EnemyConfig      `toml:"enemy" yaml:"enemy"`
	Pools      PoolsConfig      `toml:"pools" yaml:"pools"`
	Input      InputConfig      `toml:"input" yaml:"input"`
	Audio      AudioConfig      `toml:"audio" yaml:"audio"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Script     ScriptConfig     `toml:"script" yaml:"script"`
}

type GameConfig struct {
	Variant       string        `toml:"variant" yaml:"variant"`
	FrameInterval time.Duration `toml:"frame_interval" yaml:"frame_interval"`
	Seed          int64         `toml:"seed" yaml:"seed"` // 0 seeds from the clock
	Lives         int           `toml:"lives" yaml:"lives"`
	MaxWidth      int           `toml:"max_width" yaml:"max_width"` // field is the terminal size capped to these
	MaxHeight     int           `toml:"max_height" yaml:"max_height"`
}

type PlayerConfig struct {
	Speed           float64 `toml:"speed" yaml:"speed"`
	FireRate        int     `toml:"fire_rate" yaml:"fire_rate"` // frames between volleys
	ProjectileSpeed float64 `toml:"projectile_speed" yaml:"projectile_speed"`
	MinYFraction    float64 `toml:"min_y_fraction" yaml:"min_y_fraction"`
	LeftGun         float64 `toml:"left_gun" yaml:"left_gun"`
	RightGun        float64 `toml:"right_gun" yaml:"right_gun"` // negative counts from the right edge
}

type BackgroundConfig struct {
	Speed float64 `toml:"speed" yaml:"speed"`
}

type EnemyConfig struct {
	Speed           float64 `toml:"speed" yaml:"speed"`
	Drop            float64 `toml:"drop" yaml:"drop"`
	FireChance      float64 `toml:"fire_chance" yaml:"fire_chance"`
	ProjectileSpeed float64 `toml:"projectile_speed" yaml:"projectile_speed"`
	Rows            int     `toml:"rows" yaml:"rows"`
	Columns         int     `toml:"columns" yaml:"columns"`
	SpacingX        float64 `toml:"spacing_x" yaml:"spacing_x"`
	SpacingY        float64 `toml:"spacing_y" yaml:"spacing_y"`
	Points          int     `toml:"points" yaml:"points"`
}

type PoolsConfig struct {
	Projectiles      int `toml:"projectiles" yaml:"projectiles"`
	Enemies          int `toml:"enemies" yaml:"enemies"`
	EnemyProjectiles int `toml:"enemy_projectiles" yaml:"enemy_projectiles"`
}

type InputConfig struct {
	HoldWindow time.Duration       `toml:"hold_window" yaml:"hold_window"`
	Bindings   map[string][]string `toml:"bindings" yaml:"bindings"` // action -> key names
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled" yaml:"enabled"`
	Volume  float64 `toml:"volume" yaml:"volume"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type ScriptConfig struct {
	Waves string `toml:"waves" yaml:"waves"` // lua file defining wave(ctx)
}

// Load reads a config file. Defaults come from the variant named in the file,
// the file's values are decoded over them
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Game struct {
			Variant string `toml:"variant" yaml:"variant"`
		} `toml:"game" yaml:"game"`
	}
	if err := decode(data, &probe); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	variant, err := asset.ParseVariant(probe.Game.Variant)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w: %w", path, ErrInvalid, err)
	}

	cfg := Default(variant)
	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Game.Variant = string(variant)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decoderFor(path string) (func([]byte, any) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal, nil
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	}
	return nil, fmt.Errorf("config %s: %w: unsupported extension", path, ErrInvalid)
}

// Variant returns the parsed variant
func (c *Config) Variant() asset.Variant {
	v, err := asset.ParseVariant(c.Game.Variant)
	if err != nil {
		return asset.VariantSpaceship
	}
	return v
}

// Validate checks ranges the game depends on
func (c *Config) Validate() error {
	if _, err := asset.ParseVariant(c.Game.Variant); err != nil {
		return fmt.Errorf("%w: game.variant: %w", ErrInvalid, err)
	}

	checks := []struct {
		ok    bool
		field string
		msg   string
	}{
		{c.Game.FrameInterval > 0, "game.frame_interval", "must be positive"},
		{c.Game.Lives > 0, "game.lives", "must be positive"},
		{c.Game.MaxWidth >= MinFieldWidth, "game.max_width", fmt.Sprintf("must be at least %d", MinFieldWidth)},
		{c.Game.MaxHeight >= MinFieldHeight, "game.max_height", fmt.Sprintf("must be at least %d", MinFieldHeight)},
		{c.Player.Speed > 0, "player.speed", "must be positive"},
		{c.Player.FireRate >= 1, "player.fire_rate", "must be at least 1"},
		{c.Player.ProjectileSpeed > 0, "player.projectile_speed", "must be positive"},
		{c.Player.MinYFraction >= 0 && c.Player.MinYFraction < 1, "player.min_y_fraction", "must be in [0, 1)"},
		{c.Background.Speed >= 0, "background.speed", "must not be negative"},
		{c.Enemy.Speed > 0, "enemy.speed", "must be positive"},
		{c.Enemy.Drop >= 0, "enemy.drop", "must not be negative"},
		{c.Enemy.FireChance >= 0 && c.Enemy.FireChance <= 1, "enemy.fire_chance", "must be in [0, 1]"},
		{c.Enemy.ProjectileSpeed > 0, "enemy.projectile_speed", "must be positive"},
		{c.Enemy.Rows >= 1, "enemy.rows", "must be at least 1"},
		{c.Enemy.Columns >= 1, "enemy.columns", "must be at least 1"},
		{c.Enemy.SpacingX >= 0 && c.Enemy.SpacingY >= 0, "enemy.spacing", "must not be negative"},
		// Volleys always take two slots at once
		{c.Pools.Projectiles >= 2, "pools.projectiles", "must be at least 2"},
		{c.Pools.Enemies >= 1, "pools.enemies", "must be at least 1"},
		{c.Pools.EnemyProjectiles >= 1, "pools.enemy_projectiles", "must be at least 1"},
		{c.Input.HoldWindow > 0, "input.hold_window", "must be positive"},
		{c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume", "must be in [0, 1]"},
		{c.Logging.Format == "console" || c.Logging.Format == "json", "logging.format", `must be "console" or "json"`},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s %s", ErrInvalid, chk.field, chk.msg)
		}
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: logging.level: %w", ErrInvalid, err)
	}
	return nil
}
