package system

import (
	"github.com/milk9111/hitbox/ecs"
	"github.com/milk9111/hitbox/physics"
)

// PhysicsSystem steps the world's collider registry once per frame so
// trigger transitions are delivered before script systems run.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	w.Physics().Step()
}

// NewWorldPhysics builds a registry from cfg and installs it on w.
func NewWorldPhysics(w *ecs.World, cfg physics.Config) (*physics.Physics, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := physics.New(cfg)
	w.SetPhysics(p)
	return p, nil
}
