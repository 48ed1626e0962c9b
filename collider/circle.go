package collider

import (
	"fmt"

	"github.com/milk9111/hitbox/common"
	"github.com/milk9111/hitbox/shape"
)

type CircleCollider struct {
	Base
	circle *shape.Circle
}

// NewCircleCollider builds a circle of the given radius. A non-positive
// radius means the size is not known yet: the collider starts at
// common.DefaultColliderSize and reports RequiresAutoSizing until SetRadius
// is called.
func NewCircleCollider(radius float64) *CircleCollider {
	c := &CircleCollider{}
	c.init(c)
	if radius > 0 {
		c.circle = shape.NewCircle(radius)
		c.circle.OriginalRadius = radius
	} else {
		c.circle = shape.NewCircle(common.DefaultColliderSize)
		c.requiresAutoSizing = true
	}
	c.setShape(c.circle)
	return c
}

// NewAutoSizedCircleCollider builds a circle whose size is resolved later,
// typically from the owning entity's renderable.
func NewAutoSizedCircleCollider() *CircleCollider {
	return NewCircleCollider(0)
}

func (c *CircleCollider) Radius() float64 {
	if c == nil || c.circle == nil {
		return 0
	}
	return c.circle.Radius
}

func (c *CircleCollider) OriginalRadius() float64 {
	if c == nil || c.circle == nil {
		return 0
	}
	return c.circle.OriginalRadius
}

// SetRadius sets both the effective and the original radius. Setting the
// current radius again does nothing. While registered, the registry is
// notified before SetRadius returns.
func (c *CircleCollider) SetRadius(radius float64) *CircleCollider {
	if c == nil || c.circle == nil {
		return c
	}
	if radius == c.circle.Radius {
		return c
	}
	c.requiresAutoSizing = false
	c.circle.Radius = radius
	c.circle.OriginalRadius = radius
	c.positionDirty = true
	c.notify()
	return c
}

// applyTransform rescales the radius from OriginalRadius. Circles still
// waiting for auto-sizing have no original radius and are left alone.
func (c *CircleCollider) applyTransform(t shape.Transform) {
	if c.circle == nil || c.circle.OriginalRadius <= 0 {
		return
	}
	c.circle.Radius = c.circle.OriginalRadius * t.MaxScale()
}

func (c *CircleCollider) String() string {
	if c == nil {
		return "CircleCollider{}"
	}
	return fmt.Sprintf("CircleCollider{id: %d, bounds: %v, radius: %g}", c.id, c.bounds, c.Radius())
}
