package config

import (
	"time"

	"github.com/yR-DEV/space-invaders/asset"
	"github.com/yR-DEV/space-invaders/input"
)

// Default returns the built-in tuning for a variant
// Speeds are cells per frame at the default ~30 FPS
func Default(v asset.Variant) *Config {
	cfg := &Config{
		Game: GameConfig{
			Variant:       string(asset.VariantSpaceship),
			FrameInterval: 33 * time.Millisecond,
			Lives:         3,
			MaxWidth:      80,
			MaxHeight:     30,
		},
		Player: PlayerConfig{
			Speed:           1,
			FireRate:        8,
			ProjectileSpeed: 0.6,
			MinYFraction:    0.75,
			LeftGun:         0,
			RightGun:        -1,
		},
		Background: BackgroundConfig{
			Speed: 0.1,
		},
		Enemy: EnemyConfig{
			Speed:           0.25,
			Drop:            1,
			FireChance:      0.005,
			ProjectileSpeed: 0.4,
			Rows:            3,
			Columns:         6,
			SpacingX:        3,
			SpacingY:        1,
			Points:          10,
		},
		Pools: PoolsConfig{
			Projectiles:      30,
			Enemies:          30,
			EnemyProjectiles: 50,
		},
		Input: InputConfig{
			HoldWindow: input.DefaultHoldWindow,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}

	if v == asset.VariantBiker {
		cfg.Game.Variant = string(asset.VariantBiker)
		cfg.Player.Speed = 1.5
		cfg.Player.FireRate = 10
		cfg.Player.ProjectileSpeed = 0.5
		cfg.Background.Speed = 0.25
		cfg.Enemy.Speed = 0.3
		cfg.Enemy.Rows = 2
		cfg.Enemy.Columns = 5
		cfg.Enemy.SpacingX = 4
		cfg.Enemy.FireChance = 0.008
		cfg.Enemy.Points = 25
	}

	return cfg
}
