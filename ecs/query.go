package ecs

import (
	"sort"

	"github.com/milk9111/hitbox/ecs/component"
)

// Query returns entities holding every listed component kind, in slot order.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(ids))
	for _, id := range ids {
		s, ok := w.stores[id]
		if !ok || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate the smallest set
	sort.Slice(sets, func(i, j int) bool { return sets[i].Len() < sets[j].Len() })

	out := make([]Entity, 0, sets[0].Len())
outer:
	for _, e := range sets[0].Entities() {
		for _, s := range sets[1:] {
			if !s.Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// First returns the lowest-slot entity holding the component kind.
func (w *World) First(id component.ComponentID) (Entity, bool) {
	ents := w.Query(id)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
