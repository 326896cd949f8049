package component

// Input stores per-frame control state for an entity.
type Input struct {
	Move float64
	Turn float64
	Fire bool
}

var InputComponent = NewComponent[Input]()
