package collider

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/shape"
)

type fakeEntity struct {
	transform shape.Transform
}

func newFakeEntity(x, y float64) *fakeEntity {
	t := shape.IdentityTransform()
	t.Position = cp.Vector{X: x, Y: y}
	return &fakeEntity{transform: t}
}

func (e *fakeEntity) Transform() shape.Transform {
	return e.transform
}

// spyRegistry records every call and follows the same admission rules as
// the physics registry.
type spyRegistry struct {
	added   []Collider
	updated []Collider
	removed []Collider
}

func (r *spyRegistry) AddCollider(c Collider) error {
	if c.Entity() == nil {
		return errors.New("spy: not attached")
	}
	if !c.IsParentEntityAddedToScene() {
		return errors.New("spy: not in scene")
	}
	r.added = append(r.added, c)
	c.RecalculateBounds()
	c.SetRegistered(r)
	return nil
}

func (r *spyRegistry) UpdateCollider(c Collider) {
	r.updated = append(r.updated, c)
}

func (r *spyRegistry) RemoveCollider(c Collider) {
	r.removed = append(r.removed, c)
	c.ClearRegistered()
}

// registered attaches c to a new entity, puts it in a scene and registers it.
func registered(c Collider) (*spyRegistry, *fakeEntity) {
	reg := &spyRegistry{}
	e := newFakeEntity(0, 0)
	c.Attach(e)
	c.SetParentEntityAddedToScene(true)
	if err := reg.AddCollider(c); err != nil {
		panic(err)
	}
	return reg, e
}

func nearVec(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func nearBB(a, b cp.BB) bool {
	return nearVec(cp.Vector{X: a.L, Y: a.B}, cp.Vector{X: b.L, Y: b.B}) &&
		nearVec(cp.Vector{X: a.R, Y: a.T}, cp.Vector{X: b.R, Y: b.T})
}
