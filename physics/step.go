package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/collider"
)

// Step brings the index up to date and reports trigger transitions: pairs
// that started overlapping get OnTriggerEnter on both sides, pairs that
// stopped get OnTriggerExit. A pair qualifies when at least one collider is
// a trigger. Pairs are processed by ascending collider ids, exits first.
func (p *Physics) Step() {
	if p == nil {
		return
	}
	p.Flush()

	entered, exited := p.contacts.diff(p.overlaps())

	for _, pr := range exited {
		if p.contacts.end(pr.key()) {
			deliverExit(pr)
		}
	}
	for _, pr := range entered {
		// an earlier callback may have removed either side
		if !p.tracks(pr.a) || !p.tracks(pr.b) {
			continue
		}
		if p.contacts.begin(pr) {
			deliverEnter(pr)
		}
	}
}

func (p *Physics) overlaps() map[pairKey]pair {
	current := make(map[pairKey]pair)
	for _, c := range p.Colliders() {
		self := c
		p.space.BBQuery(self.Bounds(), p.filter(self.ID()), func(s *cp.Shape, _ interface{}) {
			other, ok := s.UserData.(collider.Collider)
			if !ok || other.ID() == self.ID() {
				return
			}
			if !self.IsTrigger() && !other.IsTrigger() {
				return
			}
			pr := newPair(self, other)
			current[pr.key()] = pr
		}, nil)
	}
	return current
}

func (p *Physics) tracks(c collider.Collider) bool {
	_, ok := p.proxies[c.ID()]
	return ok
}

func deliverEnter(pr pair) {
	pr.a.OnTriggerEnter(pr.b, pr.a)
	pr.b.OnTriggerEnter(pr.a, pr.b)
}

func deliverExit(pr pair) {
	pr.a.OnTriggerExit(pr.b, pr.a)
	pr.b.OnTriggerExit(pr.a, pr.b)
}
