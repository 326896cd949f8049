package fsm

// State is one behavior of an owner. The machine calls Enter once when the
// state becomes active, Execute once per tick while it is active, and Exit
// once when another state replaces it.
//
// The owner is passed to every hook rather than stored in the state, so a
// state never holds a reference back to the object that registers it.
type State[T any] interface {
	Enter(owner T)
	Execute(owner T)
	Exit(owner T)
}

// Hooks is embedded by states that only need some of the lifecycle calls.
type Hooks[T any] struct{}

func (Hooks[T]) Enter(T) {}
func (Hooks[T]) Execute(T) {}
func (Hooks[T]) Exit(T) {}

// Funcs builds a state from plain functions. Nil fields are no-ops.
type Funcs[T any] struct {
	OnEnter   func(owner T)
	OnExecute func(owner T)
	OnExit    func(owner T)
}

func (f *Funcs[T]) Enter(owner T) {
	if f.OnEnter != nil {
		f.OnEnter(owner)
	}
}

func (f *Funcs[T]) Execute(owner T) {
	if f.OnExecute != nil {
		f.OnExecute(owner)
	}
}

func (f *Funcs[T]) Exit(owner T) {
	if f.OnExit != nil {
		f.OnExit(owner)
	}
}
