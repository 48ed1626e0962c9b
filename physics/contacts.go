package physics

import (
	"sort"

	"github.com/milk9111/hitbox/collider"
)

type pairKey struct {
	lo, hi uint64
}

// pair holds two overlapping colliders, lower id first.
type pair struct {
	a, b collider.Collider
}

func newPair(x, y collider.Collider) pair {
	if x.ID() > y.ID() {
		x, y = y, x
	}
	return pair{a: x, b: y}
}

func (p pair) key() pairKey {
	return pairKey{lo: p.a.ID(), hi: p.b.ID()}
}

func (p pair) involves(id uint64) bool {
	return p.a.ID() == id || p.b.ID() == id
}

// contactTracker remembers which pairs have been reported as entered, so
// enter and exit each fire once per transition.
type contactTracker struct {
	active map[pairKey]pair
}

func newContactTracker() *contactTracker {
	return &contactTracker{active: make(map[pairKey]pair)}
}

// begin records p and reports whether it was new.
func (t *contactTracker) begin(p pair) bool {
	k := p.key()
	if _, ok := t.active[k]; ok {
		return false
	}
	t.active[k] = p
	return true
}

// end forgets k and reports whether it was active.
func (t *contactTracker) end(k pairKey) bool {
	if _, ok := t.active[k]; !ok {
		return false
	}
	delete(t.active, k)
	return true
}

func (t *contactTracker) isActive(k pairKey) bool {
	_, ok := t.active[k]
	return ok
}

// diff compares the overlaps seen this frame with the active set. Neither
// side is modified.
func (t *contactTracker) diff(current map[pairKey]pair) (entered, exited []pair) {
	for k, p := range current {
		if _, ok := t.active[k]; !ok {
			entered = append(entered, p)
		}
	}
	for k, p := range t.active {
		if _, ok := current[k]; !ok {
			exited = append(exited, p)
		}
	}
	sortPairs(entered)
	sortPairs(exited)
	return entered, exited
}

func (t *contactTracker) involving(id uint64) []pair {
	var out []pair
	for _, p := range t.active {
		if p.involves(id) {
			out = append(out, p)
		}
	}
	sortPairs(out)
	return out
}

func (t *contactTracker) pairs() []pair {
	out := make([]pair, 0, len(t.active))
	for _, p := range t.active {
		out = append(out, p)
	}
	sortPairs(out)
	return out
}

func (t *contactTracker) clear() {
	t.active = make(map[pairKey]pair)
}

func sortPairs(ps []pair) {
	sort.Slice(ps, func(i, j int) bool {
		ki, kj := ps[i].key(), ps[j].key()
		if ki.lo != kj.lo {
			return ki.lo < kj.lo
		}
		return ki.hi < kj.hi
	})
}
