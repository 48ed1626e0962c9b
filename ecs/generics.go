package ecs

import (
	"fmt"

	"github.com/milk9111/hitbox/ecs/component"
)

// Add stores value as e's component of the handle's kind, replacing any
// previous value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value *T) error {
	if w == nil || !w.IsAlive(e) {
		return fmt.Errorf("ecs: add component to %v: %w", e, component.ErrEntityNotAlive)
	}
	if value == nil {
		return fmt.Errorf("ecs: add component to %v: %w", e, component.ErrNilComponent)
	}
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	w.store(handle.ID()).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	s, ok := w.stores[handle.ID()]
	if !ok {
		return false
	}
	return s.Remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	s, ok := w.stores[handle.ID()]
	return ok && s.Has(e)
}

// Get returns e's component. The pointer is the stored value, so writes
// through it are visible to other systems.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	s, ok := w.stores[handle.ID()]
	if !ok {
		return nil, false
	}
	value, ok := s.Get(e).(*T)
	if !ok {
		return nil, false
	}
	return value, true
}

// ForEach calls fn for every entity holding the handle's component.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(e Entity, v *T)) {
	if w == nil || fn == nil {
		return
	}
	s, ok := w.stores[handle.ID()]
	if !ok {
		return
	}
	ents := append([]Entity(nil), s.Entities()...)
	for _, e := range ents {
		if v, ok := s.Get(e).(*T); ok {
			fn(e, v)
		}
	}
}
