package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/shape"
)

type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

func (t Transform) Shape() shape.Transform {
	return shape.Transform{
		Position: cp.Vector{X: t.X, Y: t.Y},
		Scale:    cp.Vector{X: t.ScaleX, Y: t.ScaleY},
		Rotation: t.Rotation,
	}
}

var TransformComponent = NewComponent[Transform]()
