package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventTransition = "transition"

// TransitionEvent is pushed when a stateful entity changes state.
type TransitionEvent struct {
	Entity Entity
	Kind   string
	From   string
	To     string
	First  bool
}

// EventQueue is a simple FIFO queue. Anything left undrained is dropped at
// the end of the tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
