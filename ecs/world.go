package ecs

import (
	"github.com/milk9111/hitbox/collider"
	"github.com/milk9111/hitbox/ecs/component"
	"github.com/milk9111/hitbox/physics"
)

// World owns entities, their components and the system order. It also acts
// as the scene: entities added to it take part in collision once
// AddToScene is called.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	events    EventQueue

	physics *physics.Physics
	inScene map[Entity]bool
	owners  map[uint64]Entity
	unsubs  map[Entity][]func()
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
		inScene:   make(map[Entity]bool),
		owners:    make(map[uint64]Entity),
		unsubs:    make(map[Entity][]func()),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes the entity from the scene, destroys its collider and
// drops every component. It reports whether e was alive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	w.RemoveFromScene(e)
	w.DetachCollider(e)
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update runs all systems once, then drops undrained events.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.scheduler.Update(w)
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysics attaches the registry colliders of in-scene entities report to.
// Colliders registered with a previous registry are moved over.
func (w *World) SetPhysics(p *physics.Physics) {
	if w == nil || w.physics == p {
		return
	}
	for _, e := range w.sceneEntities() {
		if c, ok := w.collider(e); ok {
			// leaving the scene unregisters from the old registry
			c.SetParentEntityAddedToScene(false)
		}
	}
	w.physics = p
	for _, e := range w.sceneEntities() {
		w.register(e)
	}
}

// Physics returns the attached registry, if any.
func (w *World) Physics() *physics.Physics {
	if w == nil {
		return nil
	}
	return w.physics
}

func (w *World) store(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) collider(e Entity) (collider.Collider, bool) {
	cc, ok := Get(w, e, component.ColliderComponent)
	if !ok || cc.Collider == nil {
		return nil, false
	}
	return cc.Collider, true
}
