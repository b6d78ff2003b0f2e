package planetoid

import "github.com/lasercut/planetoids/internal/config"

// OptionsFromConfig fills the thresholds, spawn rules and arena bounds from
// cfg. Impulse, Bus and Rand are left for the caller.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Settings: Settings{
			MinFragmentArea: cfg.Slicing.MinFragmentArea,
			DeathArea:       cfg.Slicing.DeathArea,
			FadeDuration:    cfg.Slicing.FadeDuration,
			LaserRange:      cfg.Slicing.LaserRange,
			RayMask:         cfg.Slicing.RayMask,
		},
		Spawn: SpawnSettings{
			DeadZoneRadius: cfg.Arena.DeadZoneRadius,
			Attempts:       cfg.Arena.SpawnAttempts,
			Jitter:         cfg.Spawn.Jitter,
			SpeedMax:       cfg.Spawn.SpeedMax,
			SpinMax:        cfg.Spawn.SpinMax,
		},
		Bounds: cfg.Arena,
	}
}
