package enemy

import (
	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/fsm"
)

type wanderState struct {
	fsm.Hooks[*Enemy]
	destination common.Vec3
}

func (s *wanderState) Enter(e *Enemy) {
	s.destination = s.randomPositionOnLevel(e)
}

// Execute finishes the tick's steering even after handing over to Pursuit.
func (s *wanderState) Execute(e *Enemy) {
	if sqr, _, ok := e.sqrDistanceToTarget(); ok && e.cfg.PursuitBand().Inward(sqr) {
		e.change(Pursuit)
	}

	if common.SqrDistance(e.position(), s.destination) < e.cfg.ChangeTargetSqrDistance {
		s.destination = s.randomPositionOnLevel(e)
	}

	e.turnToward(s.destination)
	e.moveForward()
}

func (s *wanderState) randomPositionOnLevel(e *Enemy) common.Vec3 {
	size := e.cfg.LevelSize
	return common.Vec3{X: e.randomRange(-size, size), Z: e.randomRange(-size, size)}
}

type pursuitState struct {
	fsm.Hooks[*Enemy]
}

func (s *pursuitState) Execute(e *Enemy) {
	sqr, target, ok := e.sqrDistanceToTarget()
	if !ok {
		e.change(Wander)
		return
	}
	if e.cfg.AttackBand().Inward(sqr) {
		e.change(Attack)
	}
	if e.cfg.PursuitBand().Outward(sqr) {
		e.change(Wander)
	}

	e.turnToward(target)
	e.moveForward()
}

// attackState keeps its own fire timer; it survives leaving and re-entering
// the state.
type attackState struct {
	fsm.Hooks[*Enemy]
	lastAttack float64
}

func (s *attackState) Execute(e *Enemy) {
	sqr, target, ok := e.sqrDistanceToTarget()
	if !ok {
		e.change(Wander)
		return
	}
	if e.cfg.AttackBand().Outward(sqr) {
		e.change(Pursuit)
	}

	e.aimTurret(target)

	if now := e.now(); now > s.lastAttack+e.cfg.AttackInterval {
		e.fire()
		s.lastAttack = now
	}
}

type explodeState struct {
	fsm.Hooks[*Enemy]
}

func (s *explodeState) Enter(e *Enemy) {
	if e.env.AddForce != nil {
		scatter := common.Vec3{}
		if e.env.Rand != nil {
			scatter = e.env.Rand.InsideUnitSphere()
		}
		e.env.AddForce(common.Up.Scale(e.cfg.ExplodeLift).Add(scatter.Scale(e.cfg.ExplodeScatter)))
	}

	if e.env.AddTorque != nil {
		t := e.cfg.ExplodeTorque
		e.env.AddTorque(common.Vec3{
			X: e.randomRange(-t, t),
			Y: e.randomRange(-t, t),
			Z: e.randomRange(-t, t),
		})
	}

	if e.env.Despawn != nil {
		e.env.Despawn(e.cfg.ExplodeDespawnDelay)
	}
}
