// Package shape holds the local geometry a collider occupies. Shapes are
// pure data: they never know which collider owns them.
package shape

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/common"
)

type Kind int

const (
	KindCircle Kind = iota + 1
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is a geometric primitive in its collider's local space.
type Shape interface {
	Kind() Kind
	Position() cp.Vector
	SetPosition(p cp.Vector)
	// Bounds returns the world-space box of the shape placed at origin
	// (the collider's local offset) under the entity transform t.
	Bounds(origin cp.Vector, t Transform) cp.BB
}

// Transform is an entity's placement in the world. A zero scale component
// is read as 1.
type Transform struct {
	Position cp.Vector
	Scale    cp.Vector
	Rotation float64
}

func IdentityTransform() Transform {
	return Transform{Scale: cp.Vector{X: 1, Y: 1}}
}

// Point maps a local point to world space: scale, then rotate, then translate.
func (t Transform) Point(p cp.Vector) cp.Vector {
	v := cp.Vector{
		X: p.X * common.ScaleOrOne(t.Scale.X),
		Y: p.Y * common.ScaleOrOne(t.Scale.Y),
	}
	if t.Rotation != 0 {
		v = v.Rotate(cp.ForAngle(t.Rotation))
	}
	return t.Position.Add(v)
}

// MaxScale is the largest absolute scale component.
func (t Transform) MaxScale() float64 {
	return math.Max(math.Abs(common.ScaleOrOne(t.Scale.X)), math.Abs(common.ScaleOrOne(t.Scale.Y)))
}
