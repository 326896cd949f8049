package component

// Player holds the tank controls tuning and fire cooldown.
type Player struct {
	MoveSpeed    float64
	TurnSpeed    float64
	FireInterval float64
	LastShot     float64
}

var PlayerComponent = NewComponent[Player]()
