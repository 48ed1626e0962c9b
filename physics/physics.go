// Package physics is the spatial registry colliders report to. It indexes
// collider bounds in a Chipmunk space and turns overlaps into trigger
// enter/exit calls once per frame.
package physics

import (
	"fmt"
	"log"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/collider"
)

// Physics owns the Chipmunk space holding one sensor proxy per registered
// collider. It is not safe for concurrent use; call it from the frame loop.
type Physics struct {
	cfg   Config
	space *cp.Space
	body  *cp.Body

	proxies  map[uint64]*proxy
	pending  map[uint64]collider.Collider
	layers   map[uint64]cp.ShapeFilter
	contacts *contactTracker
}

type proxy struct {
	collider collider.Collider
	shape    *cp.Shape
}

var _ collider.Registry = (*Physics)(nil)

func New(cfg Config) *Physics {
	space := cp.NewSpace()
	if cfg.Index == IndexSpatialHash {
		space.UseSpatialHash(cfg.CellSize, cfg.CellCount)
	}
	body := space.AddBody(cp.NewKinematicBody())

	return &Physics{
		cfg:      cfg,
		space:    space,
		body:     body,
		proxies:  make(map[uint64]*proxy),
		pending:  make(map[uint64]collider.Collider),
		layers:   make(map[uint64]cp.ShapeFilter),
		contacts: newContactTracker(),
	}
}

// Space returns the underlying Chipmunk space.
func (p *Physics) Space() *cp.Space {
	if p == nil {
		return nil
	}
	return p.space
}

func (p *Physics) Len() int {
	if p == nil {
		return 0
	}
	return len(p.proxies)
}

// AddCollider starts tracking c. The collider must be attached to an entity
// that is in a scene.
func (p *Physics) AddCollider(c collider.Collider) error {
	if p == nil || c == nil {
		return ErrNilCollider
	}
	id := c.ID()
	if c.Entity() == nil {
		return fmt.Errorf("physics: add collider %d: %w", id, ErrNotAttached)
	}
	if !c.IsParentEntityAddedToScene() {
		return fmt.Errorf("physics: add collider %d: %w", id, ErrNotInScene)
	}
	if _, ok := p.proxies[id]; ok {
		return fmt.Errorf("physics: add collider %d: %w", id, ErrAlreadyRegistered)
	}

	c.RecalculateBounds()
	p.proxies[id] = &proxy{collider: c, shape: p.addProxyShape(c)}
	c.SetRegistered(p)
	p.debugf("registered %v", c)
	return nil
}

// UpdateCollider queues c for re-indexing. Its bounds stay dirty until the
// next Flush, which every Query and Step performs first.
func (p *Physics) UpdateCollider(c collider.Collider) {
	if p == nil || c == nil {
		return
	}
	if _, ok := p.proxies[c.ID()]; !ok {
		p.debugf("update for unregistered collider %d ignored", c.ID())
		return
	}
	p.pending[c.ID()] = c
}

// RemoveCollider stops tracking c. Active trigger pairs involving c get
// their exit calls before RemoveCollider returns.
func (p *Physics) RemoveCollider(c collider.Collider) {
	if p == nil || c == nil {
		return
	}
	id := c.ID()
	px, ok := p.proxies[id]
	if !ok {
		return
	}
	p.space.RemoveShape(px.shape)
	delete(p.proxies, id)
	delete(p.pending, id)
	delete(p.layers, id)
	c.ClearRegistered()

	for _, pr := range p.contacts.involving(id) {
		if p.contacts.end(pr.key()) {
			deliverExit(pr)
		}
	}
	p.debugf("removed collider %d", id)
}

// Flush recomputes bounds for every collider updated since the last flush
// and rebuilds its proxy so the index sees the new box.
func (p *Physics) Flush() {
	if p == nil || len(p.pending) == 0 {
		return
	}
	ids := make([]uint64, 0, len(p.pending))
	for id := range p.pending {
		ids = append(ids, id)
	}
	sortIDs(ids)
	for _, id := range ids {
		c := p.pending[id]
		delete(p.pending, id)
		px, ok := p.proxies[id]
		if !ok {
			continue
		}
		c.RecalculateBounds()
		p.space.RemoveShape(px.shape)
		px.shape = p.addProxyShape(c)
	}
}

// Query returns registered colliders whose bounds intersect bb, by id.
func (p *Physics) Query(bb cp.BB) []collider.Collider {
	if p == nil {
		return nil
	}
	p.Flush()
	var out []collider.Collider
	p.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(s *cp.Shape, _ interface{}) {
		if c, ok := s.UserData.(collider.Collider); ok {
			out = append(out, c)
		}
	}, nil)
	sortColliders(out)
	return out
}

// Colliders returns every registered collider, by id.
func (p *Physics) Colliders() []collider.Collider {
	if p == nil {
		return nil
	}
	out := make([]collider.Collider, 0, len(p.proxies))
	for _, px := range p.proxies {
		out = append(out, px.collider)
	}
	sortColliders(out)
	return out
}

// Pairs returns the trigger pairs currently reported as entered.
func (p *Physics) Pairs() [][2]collider.Collider {
	if p == nil {
		return nil
	}
	active := p.contacts.pairs()
	out := make([][2]collider.Collider, 0, len(active))
	for _, pr := range active {
		out = append(out, [2]collider.Collider{pr.a, pr.b})
	}
	return out
}

// Clear unregisters every collider without firing exits.
func (p *Physics) Clear() {
	if p == nil {
		return
	}
	for _, c := range p.Colliders() {
		px := p.proxies[c.ID()]
		p.space.RemoveShape(px.shape)
		delete(p.proxies, c.ID())
		c.ClearRegistered()
	}
	p.pending = make(map[uint64]collider.Collider)
	p.layers = make(map[uint64]cp.ShapeFilter)
	p.contacts.clear()
}

// SetLayer puts a registered collider in the category bits and lets it pair
// only with colliders whose category intersects mask, in both directions.
// A zero category means 1 and a zero mask means every category. The layer
// takes effect at the next flush and is dropped when c is removed.
func (p *Physics) SetLayer(c collider.Collider, category, mask uint32) {
	if p == nil || c == nil {
		return
	}
	if _, ok := p.proxies[c.ID()]; !ok {
		return
	}
	cat, m := uint(category), uint(mask)
	if cat == 0 {
		cat = 1
	}
	if m == 0 {
		m = cp.ALL_CATEGORIES
	}
	p.layers[c.ID()] = cp.NewShapeFilter(cp.NO_GROUP, cat, m)
	p.pending[c.ID()] = c
}

func (p *Physics) filter(id uint64) cp.ShapeFilter {
	if f, ok := p.layers[id]; ok {
		return f
	}
	return cp.SHAPE_FILTER_ALL
}

func (p *Physics) addProxyShape(c collider.Collider) *cp.Shape {
	shape := cp.NewBox2(p.body, c.Bounds(), 0)
	shape.SetSensor(true)
	shape.Filter = p.filter(c.ID())
	shape.UserData = c
	return p.space.AddShape(shape)
}

func (p *Physics) debugf(format string, args ...any) {
	if !p.cfg.Debug {
		return
	}
	log.Printf("Physics: "+format, args...)
}

func sortIDs(ids []uint64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func sortColliders(cs []collider.Collider) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID() < cs[j].ID() })
}
