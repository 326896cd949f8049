package component

// Damageable routes bullet hits to the owning agent.
type Damageable struct {
	TakeDamage func()
}

var DamageableComponent = NewComponent[Damageable]()
