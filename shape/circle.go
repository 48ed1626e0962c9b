package shape

import "github.com/jakecoffman/cp"

// Circle is a disc around its position. Radius is the effective size;
// OriginalRadius is the last explicitly requested radius, kept so Radius can
// be recomputed when the entity's scale changes.
type Circle struct {
	position       cp.Vector
	Radius         float64
	OriginalRadius float64
}

func NewCircle(radius float64) *Circle {
	return &Circle{Radius: radius}
}

func (c *Circle) Kind() Kind {
	return KindCircle
}

func (c *Circle) Position() cp.Vector {
	if c == nil {
		return cp.Vector{}
	}
	return c.position
}

func (c *Circle) SetPosition(p cp.Vector) {
	if c == nil {
		return
	}
	c.position = p
}

func (c *Circle) Bounds(origin cp.Vector, t Transform) cp.BB {
	if c == nil {
		return cp.BB{}
	}
	center := t.Point(origin.Add(c.position))
	return cp.NewBBForCircle(center, c.Radius)
}
