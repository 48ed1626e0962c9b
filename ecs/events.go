package ecs

import "github.com/milk9111/hitbox/collider"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// TriggerEventKind identifies trigger transitions.
type TriggerEventKind string

const (
	TriggerEnter TriggerEventKind = "trigger_enter"
	TriggerExit  TriggerEventKind = "trigger_exit"
)

// TriggerEvent is pushed when an entity's collider enters or leaves a
// trigger pair. Other is zero when the counterpart belongs to no entity of
// this world.
type TriggerEvent struct {
	Kind          TriggerEventKind
	Entity        Entity
	Other         Entity
	Collider      collider.Collider
	OtherCollider collider.Collider
}

// EventQueue is a simple FIFO queue.
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

// DrainTriggers removes and returns trigger events, leaving others queued.
func (q *EventQueue) DrainTriggers() []TriggerEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []TriggerEvent
	kept := q.items[:0]
	for _, evt := range q.items {
		if te, ok := evt.Data.(TriggerEvent); ok {
			out = append(out, te)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
