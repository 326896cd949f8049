package component

// Despawn destroys the entity once Seconds reaches zero.
type Despawn struct {
	Seconds float64
}

var DespawnComponent = NewComponent[Despawn]()
