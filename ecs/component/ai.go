package component

// Agent is a per-entity decision maker ticked once per frame.
type Agent interface {
	Update()
	StateName() string
}

// Brain attaches an Agent to an entity.
type Brain struct {
	Agent Agent
	Kind  string
}

var BrainComponent = NewComponent[Brain]()
