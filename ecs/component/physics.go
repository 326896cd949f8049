package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/statemachine/common"
)

// PhysicsBody stores Chipmunk2D runtime data for the floor plane plus a
// separately integrated vertical lift.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Mass   float64
	Sensor bool
	// Dynamic bodies are driven by forces. Kinematic ones follow Transform.
	Dynamic bool

	LiftVelocity float64

	force  common.Vec3
	torque common.Vec3
}

// AddForce queues a force for the next physics step.
func (p *PhysicsBody) AddForce(f common.Vec3) {
	p.force = p.force.Add(f)
}

// AddTorque queues a torque for the next physics step.
func (p *PhysicsBody) AddTorque(t common.Vec3) {
	p.torque = p.torque.Add(t)
}

// TakeForces returns and clears the queued force and torque.
func (p *PhysicsBody) TakeForces() (force, torque common.Vec3) {
	force, torque = p.force, p.torque
	p.force, p.torque = common.Vec3{}, common.Vec3{}
	return force, torque
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
