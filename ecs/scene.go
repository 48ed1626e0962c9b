package ecs

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/hitbox/collider"
	"github.com/milk9111/hitbox/ecs/component"
	"github.com/milk9111/hitbox/shape"
)

var ErrNilCollider = errors.New("ecs: collider is nil")

// EntityRef lets a collider read its owner's transform from the world.
type EntityRef struct {
	w *World
	e Entity
}

var _ collider.Entity = EntityRef{}

func (r EntityRef) Entity() Entity {
	return r.e
}

// Transform returns the entity's TransformComponent, or the identity
// transform when it has none.
func (r EntityRef) Transform() shape.Transform {
	t, ok := Get(r.w, r.e, component.TransformComponent)
	if !ok {
		return shape.IdentityTransform()
	}
	return t.Shape()
}

// AttachCollider gives e the collider c, replacing and destroying any
// previous one. A collider held by another entity moves to e, and attaching
// e's own collider again only re-registers it. Trigger transitions on c are
// pushed to the event queue. If e is already in the scene, c is registered
// with the world's physics.
func (w *World) AttachCollider(e Entity, c collider.Collider) error {
	if w == nil || !w.IsAlive(e) {
		return fmt.Errorf("ecs: attach collider to %v: %w", e, component.ErrEntityNotAlive)
	}
	if c == nil {
		return fmt.Errorf("ecs: attach collider to %v: %w", e, ErrNilCollider)
	}
	if prev, ok := w.collider(e); ok {
		if prev.ID() == c.ID() {
			if w.inScene[e] {
				return w.register(e)
			}
			return nil
		}
		w.DetachCollider(e)
	}
	if owner, ok := w.owners[c.ID()]; ok && owner != e {
		w.release(owner)
	}

	c.Attach(EntityRef{w: w, e: e})
	if err := Add(w, e, component.ColliderComponent, &component.Collider{Collider: c}); err != nil {
		return err
	}
	w.owners[c.ID()] = e
	w.unsubs[e] = []func(){
		c.OnEnter(func(other, local collider.Collider) {
			w.pushTrigger(TriggerEnter, e, other, local)
		}),
		c.OnExit(func(other, local collider.Collider) {
			w.pushTrigger(TriggerExit, e, other, local)
		}),
	}

	if w.inScene[e] {
		return w.register(e)
	}
	return nil
}

// DetachCollider destroys e's collider and removes the component. It reports
// whether e had one.
func (w *World) DetachCollider(e Entity) bool {
	if w == nil {
		return false
	}
	c, ok := w.release(e)
	if !ok {
		return false
	}
	c.Destroy()
	return true
}

// release unregisters e's collider and drops the component and subscriptions
// without destroying the collider. Exits for active pairs are still queued.
func (w *World) release(e Entity) (collider.Collider, bool) {
	c, ok := w.collider(e)
	if !ok {
		return nil, false
	}
	c.SetParentEntityAddedToScene(false)
	for _, unsub := range w.unsubs[e] {
		unsub()
	}
	delete(w.unsubs, e)
	delete(w.owners, c.ID())
	Remove(w, e, component.ColliderComponent)
	return c, true
}

// Collider returns e's collider.
func (w *World) Collider(e Entity) (collider.Collider, bool) {
	if w == nil {
		return nil, false
	}
	return w.collider(e)
}

// Owner returns the entity holding the collider with the given id.
func (w *World) Owner(colliderID uint64) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	e, ok := w.owners[colliderID]
	return e, ok
}

// AddToScene marks e as part of the scene and registers its collider.
func (w *World) AddToScene(e Entity) error {
	if w == nil || !w.IsAlive(e) {
		return fmt.Errorf("ecs: add %v to scene: %w", e, component.ErrEntityNotAlive)
	}
	if w.inScene[e] {
		return nil
	}
	w.inScene[e] = true
	return w.register(e)
}

// RemoveFromScene takes e out of the scene. Its collider stays attached but
// is unregistered, firing exits for any active trigger pairs.
func (w *World) RemoveFromScene(e Entity) {
	if w == nil || !w.inScene[e] {
		return
	}
	delete(w.inScene, e)
	if c, ok := w.collider(e); ok {
		c.SetParentEntityAddedToScene(false)
	}
}

func (w *World) InScene(e Entity) bool {
	return w != nil && w.inScene[e]
}

// SetTransform stores e's transform and tells its collider.
func (w *World) SetTransform(e Entity, t component.Transform) error {
	if tr, ok := Get(w, e, component.TransformComponent); ok {
		*tr = t
	} else if err := Add(w, e, component.TransformComponent, &t); err != nil {
		return err
	}
	if c, ok := w.collider(e); ok {
		c.TransformChanged()
	}
	return nil
}

// Transform returns a copy of e's transform.
func (w *World) Transform(e Entity) (component.Transform, bool) {
	t, ok := Get(w, e, component.TransformComponent)
	if !ok {
		return component.Transform{}, false
	}
	return *t, true
}

// SetCollisionLayer stores e's layer and applies it to a registered
// collider.
func (w *World) SetCollisionLayer(e Entity, layer component.CollisionLayer) error {
	if err := Add(w, e, component.CollisionLayerComponent, &layer); err != nil {
		return err
	}
	w.applyLayer(e)
	return nil
}

func (w *World) register(e Entity) error {
	c, ok := w.collider(e)
	if !ok {
		return nil
	}
	c.SetParentEntityAddedToScene(true)
	if w.physics == nil || c.IsRegistered() {
		return nil
	}
	if err := w.physics.AddCollider(c); err != nil {
		log.Printf("World: failed to register collider for %v: %v", e, err)
		return fmt.Errorf("ecs: register collider for %v: %w", e, err)
	}
	w.applyLayer(e)
	return nil
}

func (w *World) applyLayer(e Entity) {
	layer, ok := Get(w, e, component.CollisionLayerComponent)
	if !ok || w.physics == nil {
		return
	}
	if c, ok := w.collider(e); ok && c.IsRegistered() {
		w.physics.SetLayer(c, layer.Category, layer.Mask)
	}
}

func (w *World) sceneEntities() []Entity {
	out := make([]Entity, 0, len(w.inScene))
	for e := range w.inScene {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

func (w *World) pushTrigger(kind TriggerEventKind, e Entity, other, local collider.Collider) {
	evt := TriggerEvent{
		Kind:          kind,
		Entity:        e,
		Collider:      local,
		OtherCollider: other,
	}
	if other != nil {
		evt.Other = w.owners[other.ID()]
	}
	w.events.Push(Event{Type: string(kind), Data: evt})
}
