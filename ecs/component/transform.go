package component

import "github.com/milk9111/statemachine/common"

// Transform places an entity in the arena. Y is height above the floor and
// Yaw is the heading around the vertical axis.
type Transform struct {
	Position common.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()
