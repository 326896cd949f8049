package enemy

import (
	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/random"
)

// Env gives states controlled access to the host: the enemy's transform and
// body, its target, and the side effects it may trigger. Callbacks keep the
// enemy free of any dependency on the ECS; nil callbacks are skipped.
type Env struct {
	Clock clock.Clock
	Rand  random.Sampler

	Position     func() common.Vec3
	Yaw          func() float64
	SetYaw       func(yaw float64)
	TurretYaw    func() float64
	SetTurretYaw func(yaw float64)
	Translate    func(delta common.Vec3)

	// Target returns the tracked entity's position, or false when there is
	// nothing to track.
	Target func() (common.Vec3, bool)

	Fire      func(origin common.Vec3, yaw float64)
	AddForce  func(force common.Vec3)
	AddTorque func(torque common.Vec3)
	// Despawn removes the enemy after the given number of seconds.
	Despawn func(after float64)
}

func (e *Enemy) now() float64 {
	if e.env.Clock == nil {
		return 0
	}
	return e.env.Clock.Now()
}

func (e *Enemy) delta() float64 {
	if e.env.Clock == nil {
		return 0
	}
	return e.env.Clock.Delta()
}

func (e *Enemy) position() common.Vec3 {
	if e.env.Position == nil {
		return common.Vec3{}
	}
	return e.env.Position()
}

func (e *Enemy) yaw() float64 {
	if e.env.Yaw == nil {
		return 0
	}
	return e.env.Yaw()
}

func (e *Enemy) turretYaw() float64 {
	if e.env.TurretYaw == nil {
		return e.yaw()
	}
	return e.env.TurretYaw()
}

func (e *Enemy) randomRange(min, max float64) float64 {
	if e.env.Rand == nil {
		return (min + max) / 2
	}
	return e.env.Rand.Range(min, max)
}

// turnToward blends the hull heading toward point.
func (e *Enemy) turnToward(point common.Vec3) {
	if e.env.SetYaw == nil {
		return
	}
	want := common.Yaw(point.Sub(e.position()))
	e.env.SetYaw(common.SlerpAngle(e.yaw(), want, e.delta()*e.cfg.RotationSmooth))
}

// moveForward drives along the hull heading for one tick.
func (e *Enemy) moveForward() {
	if e.env.Translate == nil {
		return
	}
	e.env.Translate(common.HeadingVector(e.yaw()).Scale(e.cfg.Speed * e.delta()))
}

func (e *Enemy) aimTurret(point common.Vec3) {
	if e.env.SetTurretYaw == nil {
		return
	}
	want := common.Yaw(point.Sub(e.position()))
	e.env.SetTurretYaw(common.SlerpAngle(e.turretYaw(), want, e.delta()*e.cfg.TurretRotationSmooth))
}

func (e *Enemy) fire() {
	if e.env.Fire == nil {
		return
	}
	yaw := e.turretYaw()
	muzzle := e.position().Add(common.HeadingVector(yaw).Scale(e.cfg.MuzzleOffset))
	e.env.Fire(muzzle, yaw)
}

// sqrDistanceToTarget reports the squared distance to the target and its
// position. ok is false when no target exists.
func (e *Enemy) sqrDistanceToTarget() (sqr float64, target common.Vec3, ok bool) {
	if e.env.Target == nil {
		return 0, common.Vec3{}, false
	}
	target, ok = e.env.Target()
	if !ok {
		return 0, common.Vec3{}, false
	}
	return common.SqrDistance(e.position(), target), target, true
}
