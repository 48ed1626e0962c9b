package collider

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/shape"
)

// Base carries the state every collider kind shares: its shape, offset,
// cached bounds and registration lifecycle.
type Base struct {
	self Collider
	id   uint64

	shape              shape.Shape
	localOffset        cp.Vector
	bounds             cp.BB
	positionDirty      bool
	requiresAutoSizing bool
	trigger            bool

	state        State
	entity       Entity
	addedToScene bool
	registry     Registry

	enter subscribers
	exit  subscribers
}

// transformAware colliders adjust their shape when the entity transform
// changes, before bounds are marked stale.
type transformAware interface {
	applyTransform(t shape.Transform)
}

func (b *Base) init(self Collider) {
	b.self = self
	b.id = nextColliderID.Add(1)
	b.positionDirty = true
}

func (b *Base) ID() uint64 {
	if b == nil {
		return 0
	}
	return b.id
}

func (b *Base) Shape() shape.Shape {
	if b == nil {
		return nil
	}
	return b.shape
}

// setShape replaces the owned shape; the old one is dropped.
func (b *Base) setShape(s shape.Shape) {
	b.shape = s
	b.positionDirty = true
}

func (b *Base) LocalOffset() cp.Vector {
	if b == nil {
		return cp.Vector{}
	}
	return b.localOffset
}

func (b *Base) SetLocalOffset(offset cp.Vector) {
	if b == nil || b.localOffset.Equal(offset) {
		return
	}
	b.localOffset = offset
	b.positionDirty = true
	b.notify()
}

// Bounds returns the cached bounds. They are current only while
// IsPositionDirty is false.
func (b *Base) Bounds() cp.BB {
	if b == nil {
		return cp.BB{}
	}
	return b.bounds
}

// RecalculateBounds derives bounds from the shape, the local offset and the
// entity transform, and clears the dirty flag.
func (b *Base) RecalculateBounds() cp.BB {
	if b == nil {
		return cp.BB{}
	}
	if b.shape != nil {
		b.bounds = b.shape.Bounds(b.localOffset, b.entityTransform())
	}
	b.positionDirty = false
	return b.bounds
}

func (b *Base) IsPositionDirty() bool {
	return b != nil && b.positionDirty
}

func (b *Base) RequiresAutoSizing() bool {
	return b != nil && b.requiresAutoSizing
}

func (b *Base) IsTrigger() bool {
	return b != nil && b.trigger
}

func (b *Base) SetTrigger(trigger bool) {
	if b == nil {
		return
	}
	b.trigger = trigger
}

func (b *Base) State() State {
	if b == nil {
		return StateUnattached
	}
	return b.state
}

func (b *Base) Entity() Entity {
	if b == nil {
		return nil
	}
	return b.entity
}

// Attach binds the collider to e. Moving to a different entity drops any
// registration; the new owner's scene registers it again.
func (b *Base) Attach(e Entity) {
	if b == nil {
		return
	}
	if e == nil {
		b.Detach()
		return
	}
	if b.entity == e {
		return
	}
	b.unregister()
	b.entity = e
	b.addedToScene = false
	b.state = StateAttached
	b.applyTransform()
	b.positionDirty = true
}

func (b *Base) Detach() {
	if b == nil {
		return
	}
	b.unregister()
	b.entity = nil
	b.addedToScene = false
	b.state = StateUnattached
	b.positionDirty = true
}

// Destroy detaches the collider and drops every trigger subscriber.
func (b *Base) Destroy() {
	if b == nil {
		return
	}
	b.Detach()
	b.enter.clear()
	b.exit.clear()
}

func (b *Base) IsParentEntityAddedToScene() bool {
	return b != nil && b.addedToScene
}

// SetParentEntityAddedToScene mirrors the owning entity's scene membership.
// Leaving the scene unregisters the collider.
func (b *Base) SetParentEntityAddedToScene(added bool) {
	if b == nil {
		return
	}
	if !added {
		b.unregister()
	}
	b.addedToScene = added
}

func (b *Base) IsRegistered() bool {
	return b != nil && b.state == StateRegistered
}

// SetRegistered is called by reg once it tracks this collider.
func (b *Base) SetRegistered(reg Registry) {
	if b == nil || reg == nil {
		return
	}
	b.registry = reg
	b.state = StateRegistered
}

// ClearRegistered is called by the registry when it stops tracking this
// collider.
func (b *Base) ClearRegistered() {
	if b == nil {
		return
	}
	b.registry = nil
	if b.entity != nil {
		b.state = StateAttached
	} else {
		b.state = StateUnattached
	}
}

// TransformChanged is called by the owner after its transform moved, scaled
// or rotated.
func (b *Base) TransformChanged() {
	if b == nil {
		return
	}
	b.applyTransform()
	b.positionDirty = true
	b.notify()
}

func (b *Base) OnTriggerEnter(other, local Collider) {
	if b == nil {
		return
	}
	b.enter.dispatch(other, local)
}

func (b *Base) OnTriggerExit(other, local Collider) {
	if b == nil {
		return
	}
	b.exit.dispatch(other, local)
}

// OnEnter subscribes fn to trigger-enter calls. The returned func
// unsubscribes it.
func (b *Base) OnEnter(fn TriggerFunc) func() {
	if b == nil {
		return func() {}
	}
	return b.enter.add(fn)
}

func (b *Base) OnExit(fn TriggerFunc) func() {
	if b == nil {
		return func() {}
	}
	return b.exit.add(fn)
}

func (b *Base) String() string {
	if b == nil {
		return "Collider{}"
	}
	return fmt.Sprintf("Collider{id: %d, bounds: %v}", b.id, b.bounds)
}

func (b *Base) canNotify() bool {
	return b.entity != nil && b.addedToScene && b.state == StateRegistered && b.registry != nil
}

func (b *Base) notify() {
	if !b.canNotify() {
		return
	}
	b.registry.UpdateCollider(b.self)
}

func (b *Base) unregister() {
	if b.state != StateRegistered {
		return
	}
	if b.registry != nil {
		b.registry.RemoveCollider(b.self)
	}
	// registries normally clear this themselves
	if b.state == StateRegistered {
		b.ClearRegistered()
	}
}

func (b *Base) applyTransform() {
	ta, ok := b.self.(transformAware)
	if !ok {
		return
	}
	ta.applyTransform(b.entityTransform())
}

func (b *Base) entityTransform() shape.Transform {
	if b.entity == nil {
		return shape.IdentityTransform()
	}
	return b.entity.Transform()
}
