package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeBullet
)

// PhysicsSystem simulates the arena floor in a Chipmunk space. The floor
// plane (X, Z) maps to chipmunk (X, Y); height is integrated separately as
// lift under common.Gravity.
type PhysicsSystem struct {
	space         *cp.Space
	clock         clock.Clock
	handlersReady bool

	entities      map[ecs.Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]ecs.Entity
	hits          []bulletContact
}

type bodyInfo struct {
	body    *cp.Body
	shape   *cp.Shape
	dynamic bool

	// last transform pushed to or read from the body, used to detect moves
	// made by other systems between steps
	lastPos common.Vec3
	lastYaw float64
}

type bulletContact struct {
	bullet ecs.Entity
	target ecs.Entity
}

func NewPhysicsSystem(c clock.Clock) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	space.SetDamping(0.5)
	return &PhysicsSystem{
		space:         space,
		clock:         c,
		entities:      make(map[ecs.Entity]*bodyInfo),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	dt := 0.0
	if ps.clock != nil {
		dt = ps.clock.Delta()
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.pushTransforms(w)
	ps.applyForces(w, dt)

	if dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w, dt)
	ps.flushHits(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	bulletHandler := ps.space.NewCollisionHandler(collisionTypeBullet, collisionTypeBody)
	bulletHandler.UserData = ps
	bulletHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return false
		}
		shapeA, shapeB := arb.Shapes()
		bullet, okA := sys.shapeToEntity[shapeA]
		target, okB := sys.shapeToEntity[shapeB]
		if !okA || !okB {
			return false
		}
		sys.hits = append(sys.hits, bulletContact{bullet: bullet, target: target})
		return false
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.createBodyInfo(*transform, bodyComp)
		ps.entities[e] = info
		ps.shapeToEntity[info.shape] = e
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	radius := bodyComp.Radius
	if radius <= 0 {
		radius = 1
	}
	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var body *cp.Body
	if bodyComp.Dynamic {
		body = cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	} else {
		body = cp.NewKinematicBody()
	}
	body.SetPosition(toCP(transform.Position))
	body.SetAngle(toAngle(transform.Yaw))

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetSensor(bodyComp.Sensor)
	if bodyComp.Sensor {
		shape.SetCollisionType(collisionTypeBullet)
	} else {
		shape.SetCollisionType(collisionTypeBody)
		shape.SetFriction(0.8)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	return &bodyInfo{
		body:    body,
		shape:   shape,
		dynamic: bodyComp.Dynamic,
		lastPos: transform.Position,
		lastYaw: transform.Yaw,
	}
}

// pushTransforms copies transforms moved by gameplay code into the bodies.
func (ps *PhysicsSystem) pushTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if transform.Position.X != info.lastPos.X || transform.Position.Z != info.lastPos.Z {
			info.body.SetPosition(toCP(transform.Position))
		}
		if transform.Yaw != info.lastYaw {
			info.body.SetAngle(toAngle(transform.Yaw))
		}
	}
}

func (ps *PhysicsSystem) applyForces(w *ecs.World, dt float64) {
	for e, info := range ps.entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		force, torque := bodyComp.TakeForces()
		if !info.dynamic || dt <= 0 {
			continue
		}
		mass := info.body.Mass()

		info.body.ApplyImpulseAtLocalPoint(cp.Vector{X: force.X * dt, Y: force.Z * dt}, cp.Vector{})
		bodyComp.LiftVelocity += force.Y * dt / mass

		// only spin around the vertical axis survives the projection onto the floor
		if moment := info.body.Moment(); moment > 0 && !math.IsInf(moment, 0) {
			info.body.SetAngularVelocity(info.body.AngularVelocity() - torque.Y*dt/moment)
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World, dt float64) {
	for e, info := range ps.entities {
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.Position.X = pos.X
		transform.Position.Z = pos.Y
		transform.Yaw = common.WrapAngle(math.Pi/2 - info.body.Angle())

		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && info.dynamic {
			if transform.Position.Y > 0 || bodyComp.LiftVelocity != 0 {
				bodyComp.LiftVelocity -= common.Gravity * dt
				transform.Position.Y += bodyComp.LiftVelocity * dt
				if transform.Position.Y <= 0 {
					transform.Position.Y = 0
					bodyComp.LiftVelocity = 0
				}
			}
		}

		info.lastPos = transform.Position
		info.lastYaw = transform.Yaw
	}
}

// flushHits turns contacts recorded during the step into BulletHit
// components. A bullet never hits the entity that fired it.
func (ps *PhysicsSystem) flushHits(w *ecs.World) {
	hits := ps.hits
	ps.hits = nil
	for _, h := range hits {
		if !w.IsAlive(h.bullet) || !w.IsAlive(h.target) {
			continue
		}
		if ecs.Has(w, h.bullet, component.BulletHitComponent.Kind()) {
			continue
		}
		if b, ok := ecs.Get(w, h.bullet, component.BulletComponent.Kind()); ok && b.Owner == uint64(h.target) {
			continue
		}
		_ = ecs.Add(w, h.bullet, component.BulletHitComponent.Kind(), &component.BulletHit{Target: uint64(h.target)})
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapeToEntity, info.shape)
		}
		if info.body != nil {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

func toCP(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// toAngle converts a yaw (clockwise from +Z) into a chipmunk body angle.
func toAngle(yaw float64) float64 {
	return math.Pi/2 - yaw
}
