package fsm

import "errors"

// ErrNilState is returned when a nil state is registered or passed to a
// transition.
var ErrNilState = errors.New("fsm: state is nil")

// ErrUnknownState is returned when a transition names an id that was never
// registered.
var ErrUnknownState = errors.New("fsm: unknown state")

// ErrDuplicateState is returned when an id is registered twice.
var ErrDuplicateState = errors.New("fsm: state already registered")

// ErrAlreadyInitialized is returned by Register and Init once the object has
// left the uninitialized phase.
var ErrAlreadyInitialized = errors.New("fsm: object already initialized")

// ErrInvalidMargin is returned by GuardBand.Validate for a non-positive margin.
var ErrInvalidMargin = errors.New("fsm: guard band margin must be positive")

// ErrTransitionLoop is returned when state hooks keep requesting transitions
// without settling.
var ErrTransitionLoop = errors.New("fsm: too many chained transitions")
