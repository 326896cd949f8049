package fsm

import "reflect"

// Machine holds the single active state of one owner. It never creates or
// frees states; it only points at states owned by someone else.
type Machine[T any] struct {
	owner   T
	current State[T]
}

// NewMachine returns a machine with no active state.
func NewMachine[T any](owner T) *Machine[T] {
	return &Machine[T]{owner: owner}
}

// Current returns the active state, or nil before the first transition.
func (m *Machine[T]) Current() State[T] {
	if m == nil {
		return nil
	}
	return m.current
}

// ChangeState exits the active state, if any, and enters next. Changing to
// the state that is already active still runs Exit and then Enter. A nil
// pointer wrapped in State is rejected like a nil interface.
func (m *Machine[T]) ChangeState(next State[T]) error {
	if isNilState(next) {
		return ErrNilState
	}
	if m.current != nil {
		m.current.Exit(m.owner)
	}
	m.current = next
	m.current.Enter(m.owner)
	return nil
}

// Tick runs Execute on the active state.
func (m *Machine[T]) Tick() {
	if m == nil || m.current == nil {
		return
	}
	m.current.Execute(m.owner)
}

func isNilState[T any](s State[T]) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
