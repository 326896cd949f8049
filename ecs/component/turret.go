package component

// Turret is an independently aimed gun mounted on an entity.
type Turret struct {
	Yaw float64
}

var TurretComponent = NewComponent[Turret]()
