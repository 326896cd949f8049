package fsm

import "fmt"

// Phase is the setup phase of an Object.
type Phase int

const (
	// PhaseUninitialized accepts Register calls. Transitions and updates are
	// silently ignored.
	PhaseUninitialized Phase = iota
	// PhaseReady has a machine and a frozen registry.
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// TransitionFunc observes a successful ChangeState on an Object. hadFrom is
// false for the first transition.
type TransitionFunc[ID comparable] func(from, to ID, hadFrom bool)

// Object is the stateful-object adapter: it maps symbolic ids to the state
// instances an entity registers and drives one Machine for that entity.
//
// Setup is two-phase. Register every state, then call Init. Until Init,
// ChangeState and Update do nothing and IsCurrentState reports false.
type Object[T any, ID comparable] struct {
	owner    T
	phase    Phase
	states   map[ID]State[T]
	order    []ID
	machine  *Machine[T]
	current  ID
	hasState bool

	// set while a transition runs; requests made from its hooks wait here
	changing   bool
	pending    ID
	hasPending bool

	onTransition TransitionFunc[ID]
}

// maxChainedTransitions bounds how many queued requests one ChangeState
// applies before giving up with ErrTransitionLoop.
const maxChainedTransitions = 32

// NewObject returns an uninitialized object for owner.
func NewObject[T any, ID comparable](owner T) *Object[T, ID] {
	return &Object[T, ID]{
		owner:  owner,
		states: make(map[ID]State[T]),
	}
}

// Phase reports the setup phase.
func (o *Object[T, ID]) Phase() Phase {
	if o == nil {
		return PhaseUninitialized
	}
	return o.phase
}

// Register binds id to s. States are created once and live as long as the
// object; the registry cannot change after Init. IsCurrentState compares
// instances, so s should be a pointer or another comparable value.
func (o *Object[T, ID]) Register(id ID, s State[T]) error {
	if o.phase != PhaseUninitialized {
		return ErrAlreadyInitialized
	}
	if isNilState(s) {
		return fmt.Errorf("register %v: %w", id, ErrNilState)
	}
	if _, ok := o.states[id]; ok {
		return fmt.Errorf("register %v: %w", id, ErrDuplicateState)
	}
	o.states[id] = s
	o.order = append(o.order, id)
	return nil
}

// Init creates the machine and moves the object to PhaseReady.
func (o *Object[T, ID]) Init() error {
	if o.phase != PhaseUninitialized {
		return ErrAlreadyInitialized
	}
	o.machine = NewMachine(o.owner)
	o.phase = PhaseReady
	return nil
}

// States returns the registered ids in registration order.
func (o *Object[T, ID]) States() []ID {
	if o == nil {
		return nil
	}
	out := make([]ID, len(o.order))
	copy(out, o.order)
	return out
}

// OnTransition sets the hook called after every successful ChangeState.
func (o *Object[T, ID]) OnTransition(fn TransitionFunc[ID]) {
	o.onTransition = fn
}

// ChangeState transitions to the state registered for id. Before Init it is
// a no-op. An unregistered id is a programming error: it returns an error
// wrapping ErrUnknownState and the active state is left alone.
//
// A request made from a hook of a running transition (Enter, Exit or the
// OnTransition func) is queued and applied once that transition is done, so
// Current and OnTransition always follow the order states were entered. The
// last queued request wins.
func (o *Object[T, ID]) ChangeState(id ID) error {
	if o == nil || o.phase != PhaseReady {
		return nil
	}
	if _, ok := o.states[id]; !ok {
		return fmt.Errorf("change state to %v: %w", id, ErrUnknownState)
	}
	if o.changing {
		o.pending, o.hasPending = id, true
		return nil
	}

	o.changing = true
	defer func() {
		o.changing = false
		o.hasPending = false
	}()
	for range maxChainedTransitions {
		if err := o.transition(id); err != nil {
			return err
		}
		if !o.hasPending {
			return nil
		}
		id, o.hasPending = o.pending, false
	}
	return fmt.Errorf("change state to %v: %w", id, ErrTransitionLoop)
}

func (o *Object[T, ID]) transition(id ID) error {
	from, hadFrom := o.current, o.hasState
	if err := o.machine.ChangeState(o.states[id]); err != nil {
		return fmt.Errorf("change state to %v: %w", id, err)
	}
	o.current = id
	o.hasState = true

	if o.onTransition != nil {
		o.onTransition(from, id, hadFrom)
	}
	return nil
}

// IsCurrentState reports whether the active state is the very instance
// registered for id.
func (o *Object[T, ID]) IsCurrentState(id ID) bool {
	if o == nil || o.phase != PhaseReady {
		return false
	}
	s, ok := o.states[id]
	if !ok {
		return false
	}
	return o.machine.Current() == s
}

// Current returns the id of the active state.
func (o *Object[T, ID]) Current() (ID, bool) {
	if o == nil || o.phase != PhaseReady {
		var zero ID
		return zero, false
	}
	return o.current, o.hasState
}

// Update runs one tick of the active state.
func (o *Object[T, ID]) Update() {
	if o == nil || o.phase != PhaseReady {
		return
	}
	o.machine.Tick()
}
