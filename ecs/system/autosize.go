package system

import (
	"math"

	"github.com/milk9111/hitbox/collider"
	"github.com/milk9111/hitbox/ecs"
	"github.com/milk9111/hitbox/ecs/component"
	"github.com/milk9111/hitbox/shape"
)

// AutoSizeSystem resolves colliders created without a size from the
// entity's RenderSize. Circles get half the larger side as radius; polygons
// become a box of the render size.
type AutoSizeSystem struct{}

func NewAutoSizeSystem() *AutoSizeSystem {
	return &AutoSizeSystem{}
}

func (s *AutoSizeSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, e := range w.Query(component.ColliderComponent.ID(), component.RenderSizeComponent.ID()) {
		cc, ok := ecs.Get(w, e, component.ColliderComponent)
		if !ok || cc.Collider == nil || !cc.Collider.RequiresAutoSizing() {
			continue
		}
		size, ok := ecs.Get(w, e, component.RenderSizeComponent)
		if !ok || size.Width <= 0 || size.Height <= 0 {
			continue
		}
		switch c := cc.Collider.(type) {
		case *collider.CircleCollider:
			c.SetRadius(math.Max(size.Width, size.Height) / 2)
		case *collider.PolygonCollider:
			// keep the box where the placeholder sat
			box := shape.Box(size.Width, size.Height)
			off := c.LocalOffset()
			for i := range box {
				box[i] = box[i].Add(off)
			}
			c.SetPoints(box)
		}
	}
}
