package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/enemy"
	"gopkg.in/yaml.v3"
)

var errInvalidSpec = errors.New("prefabs: invalid spec")

// LoadSpec reads filename into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename over out, so fields missing from the file
// keep whatever out already holds.
func LoadSpecInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() common.Vec3 {
	return common.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

type BodySpec struct {
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
}

type ArenaSpec struct {
	LevelSize   float64    `yaml:"level_size"`
	EnemyCount  int        `yaml:"enemy_count"`
	PlayerStart Vec3Spec   `yaml:"player_start"`
	Sentries    []Vec3Spec `yaml:"sentries"`
}

func LoadArenaSpec() (ArenaSpec, error) {
	spec := ArenaSpec{LevelSize: 55, EnemyCount: 3}
	if err := LoadSpecInto("arena.yaml", &spec); err != nil {
		return ArenaSpec{}, err
	}
	if spec.LevelSize <= 0 || spec.EnemyCount < 0 {
		return ArenaSpec{}, fmt.Errorf("%w: arena.yaml: level_size %v enemy_count %d", errInvalidSpec, spec.LevelSize, spec.EnemyCount)
	}
	return spec, nil
}

type ExplodeSpec struct {
	Lift         float64 `yaml:"lift"`
	Scatter      float64 `yaml:"scatter"`
	Torque       float64 `yaml:"torque"`
	DespawnDelay float64 `yaml:"despawn_delay"`
}

type EnemySpec struct {
	Name                    string      `yaml:"name"`
	Body                    BodySpec    `yaml:"body"`
	Speed                   float64     `yaml:"speed"`
	RotationSmooth          float64     `yaml:"rotation_smooth"`
	TurretRotationSmooth    float64     `yaml:"turret_rotation_smooth"`
	AttackInterval          float64     `yaml:"attack_interval"`
	MuzzleOffset            float64     `yaml:"muzzle_offset"`
	PursuitSqrDistance      float64     `yaml:"pursuit_sqr_distance"`
	AttackSqrDistance       float64     `yaml:"attack_sqr_distance"`
	Margin                  float64     `yaml:"margin"`
	ChangeTargetSqrDistance float64     `yaml:"change_target_sqr_distance"`
	MaxLife                 int         `yaml:"max_life"`
	Explode                 ExplodeSpec `yaml:"explode"`
}

// DefaultEnemySpec mirrors enemy.DefaultConfig.
func DefaultEnemySpec() EnemySpec {
	c := enemy.DefaultConfig()
	return EnemySpec{
		Name:                    "enemy",
		Body:                    BodySpec{Radius: 1.5, Mass: 1},
		Speed:                   c.Speed,
		RotationSmooth:          c.RotationSmooth,
		TurretRotationSmooth:    c.TurretRotationSmooth,
		AttackInterval:          c.AttackInterval,
		MuzzleOffset:            c.MuzzleOffset,
		PursuitSqrDistance:      c.PursuitSqrDistance,
		AttackSqrDistance:       c.AttackSqrDistance,
		Margin:                  c.Margin,
		ChangeTargetSqrDistance: c.ChangeTargetSqrDistance,
		MaxLife:                 c.MaxLife,
		Explode: ExplodeSpec{
			Lift:         c.ExplodeLift,
			Scatter:      c.ExplodeScatter,
			Torque:       c.ExplodeTorque,
			DespawnDelay: c.ExplodeDespawnDelay,
		},
	}
}

func LoadEnemySpec() (EnemySpec, error) {
	spec := DefaultEnemySpec()
	if err := LoadSpecInto("enemy.yaml", &spec); err != nil {
		return EnemySpec{}, err
	}
	return spec, nil
}

// Config converts the spec into a validated enemy.Config for an arena of
// the given half size.
func (s EnemySpec) Config(levelSize float64) (enemy.Config, error) {
	c := enemy.Config{
		Speed:                   s.Speed,
		RotationSmooth:          s.RotationSmooth,
		TurretRotationSmooth:    s.TurretRotationSmooth,
		AttackInterval:          s.AttackInterval,
		MuzzleOffset:            s.MuzzleOffset,
		PursuitSqrDistance:      s.PursuitSqrDistance,
		AttackSqrDistance:       s.AttackSqrDistance,
		Margin:                  s.Margin,
		ChangeTargetSqrDistance: s.ChangeTargetSqrDistance,
		LevelSize:               levelSize,
		MaxLife:                 s.MaxLife,
		ExplodeLift:             s.Explode.Lift,
		ExplodeScatter:          s.Explode.Scatter,
		ExplodeTorque:           s.Explode.Torque,
		ExplodeDespawnDelay:     s.Explode.DespawnDelay,
	}
	if err := c.Validate(); err != nil {
		return enemy.Config{}, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	return c, nil
}

type PlayerSpec struct {
	Body         BodySpec `yaml:"body"`
	MoveSpeed    float64  `yaml:"move_speed"`
	TurnSpeed    float64  `yaml:"turn_speed"`
	FireInterval float64  `yaml:"fire_interval"`
}

func LoadPlayerSpec() (PlayerSpec, error) {
	spec := PlayerSpec{
		Body:         BodySpec{Radius: 1.5, Mass: 1},
		MoveSpeed:    12,
		TurnSpeed:    2.5,
		FireInterval: 0.4,
	}
	if err := LoadSpecInto("player.yaml", &spec); err != nil {
		return PlayerSpec{}, err
	}
	return spec, nil
}

type BulletSpec struct {
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"`
	Force    float64 `yaml:"force"`
	Lifetime float64 `yaml:"lifetime"`
	Damage   int     `yaml:"damage"`
}

// DefaultBulletSpec matches the classic bullet: 50 units/s, 500 push, gone
// after 2s.
func DefaultBulletSpec() BulletSpec {
	return BulletSpec{Radius: 0.3, Speed: 50, Force: 500, Lifetime: 2, Damage: 1}
}

func LoadBulletSpec() (BulletSpec, error) {
	spec := DefaultBulletSpec()
	if err := LoadSpecInto("bullet.yaml", &spec); err != nil {
		return BulletSpec{}, err
	}
	if spec.Speed <= 0 || spec.Lifetime <= 0 {
		return BulletSpec{}, fmt.Errorf("%w: bullet.yaml: speed %v lifetime %v", errInvalidSpec, spec.Speed, spec.Lifetime)
	}
	return spec, nil
}

type SentrySpec struct {
	Script       string   `yaml:"script"`
	Body         BodySpec `yaml:"body"`
	MuzzleOffset float64  `yaml:"muzzle_offset"`
}

func LoadSentrySpec() (SentrySpec, error) {
	spec := SentrySpec{
		Script:       "sentry.tengo",
		Body:         BodySpec{Radius: 2, Mass: 4},
		MuzzleOffset: 3,
	}
	if err := LoadSpecInto("sentry.yaml", &spec); err != nil {
		return SentrySpec{}, err
	}
	return spec, nil
}
