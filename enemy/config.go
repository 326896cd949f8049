package enemy

import (
	"errors"
	"fmt"

	"github.com/milk9111/statemachine/fsm"
)

// Config is the tuning of one enemy. Distances are squared, times are in
// seconds and speeds are per second.
type Config struct {
	Speed                float64
	RotationSmooth       float64
	TurretRotationSmooth float64
	AttackInterval       float64
	MuzzleOffset         float64

	PursuitSqrDistance      float64
	AttackSqrDistance       float64
	Margin                  float64
	ChangeTargetSqrDistance float64
	LevelSize               float64

	MaxLife int

	ExplodeLift         float64
	ExplodeScatter      float64
	ExplodeTorque       float64
	ExplodeDespawnDelay float64
}

var errInvalidConfig = errors.New("enemy: invalid config")

func DefaultConfig() Config {
	return Config{
		Speed:                10,
		RotationSmooth:       1,
		TurretRotationSmooth: 0.8,
		AttackInterval:       2,
		MuzzleOffset:         3,

		PursuitSqrDistance:      2500,
		AttackSqrDistance:       900,
		Margin:                  50,
		ChangeTargetSqrDistance: 40,
		LevelSize:               55,

		MaxLife: 3,

		ExplodeLift:         1000,
		ExplodeScatter:      300,
		ExplodeTorque:       10000,
		ExplodeDespawnDelay: 1,
	}
}

// Validate rejects tunings whose guard bands overlap or have no width.
func (c Config) Validate() error {
	if err := c.PursuitBand().Validate(); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	if c.AttackSqrDistance+c.Margin >= c.PursuitSqrDistance-c.Margin {
		return fmt.Errorf("%w: attack band [%v, %v] overlaps pursuit band [%v, %v]", errInvalidConfig,
			c.AttackSqrDistance-c.Margin, c.AttackSqrDistance+c.Margin,
			c.PursuitSqrDistance-c.Margin, c.PursuitSqrDistance+c.Margin)
	}
	if c.MaxLife <= 0 {
		return fmt.Errorf("%w: max life must be positive", errInvalidConfig)
	}
	if c.LevelSize <= 0 {
		return fmt.Errorf("%w: level size must be positive", errInvalidConfig)
	}
	if c.AttackInterval < 0 || c.ExplodeDespawnDelay < 0 {
		return fmt.Errorf("%w: negative duration", errInvalidConfig)
	}
	return nil
}

// PursuitBand separates Wander from Pursuit.
func (c Config) PursuitBand() fsm.GuardBand {
	return fsm.GuardBand{Threshold: c.PursuitSqrDistance, Margin: c.Margin}
}

// AttackBand separates Pursuit from Attack.
func (c Config) AttackBand() fsm.GuardBand {
	return fsm.GuardBand{Threshold: c.AttackSqrDistance, Margin: c.Margin}
}
