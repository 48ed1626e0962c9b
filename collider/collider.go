// Package collider attaches shapes to entities and keeps the physics
// registry informed when their geometry changes.
package collider

import (
	"sync/atomic"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/shape"
)

// Entity is the owner a collider reads its world transform from. The
// collider holds it as a plain reference; the entity owns the collider.
type Entity interface {
	Transform() shape.Transform
}

// Registry is the spatial index colliders report to. UpdateCollider is only
// called for colliders that are attached, in a scene, and registered.
type Registry interface {
	AddCollider(c Collider) error
	UpdateCollider(c Collider)
	RemoveCollider(c Collider)
}

// TriggerHandler receives overlap transitions from the physics update loop.
// local is the collider receiving the call, other its counterpart.
type TriggerHandler interface {
	OnTriggerEnter(other, local Collider)
	OnTriggerExit(other, local Collider)
}

type TriggerFunc func(other, local Collider)

// State is a collider's position in the registration lifecycle.
type State int

const (
	StateUnattached State = iota
	StateAttached
	StateRegistered
)

func (s State) String() string {
	switch s {
	case StateUnattached:
		return "unattached"
	case StateAttached:
		return "attached"
	case StateRegistered:
		return "registered"
	default:
		return "unknown"
	}
}

// Collider is implemented by *CircleCollider and *PolygonCollider through
// the embedded Base.
type Collider interface {
	TriggerHandler

	ID() uint64
	Shape() shape.Shape
	LocalOffset() cp.Vector
	SetLocalOffset(offset cp.Vector)
	Bounds() cp.BB
	RecalculateBounds() cp.BB
	IsPositionDirty() bool
	RequiresAutoSizing() bool

	IsTrigger() bool
	SetTrigger(trigger bool)
	OnEnter(fn TriggerFunc) func()
	OnExit(fn TriggerFunc) func()

	State() State
	Entity() Entity
	Attach(e Entity)
	Detach()
	Destroy()
	IsParentEntityAddedToScene() bool
	SetParentEntityAddedToScene(added bool)
	IsRegistered() bool
	SetRegistered(reg Registry)
	ClearRegistered()
	TransformChanged()

	String() string
}

var nextColliderID atomic.Uint64
