package prefabs

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/collider"
	"github.com/milk9111/hitbox/shape"
)

const (
	ColliderCircle  = "circle"
	ColliderPolygon = "polygon"
)

// BuildCollider turns a collider spec into a collider. It rejects input the
// collider constructors accept without checking: polygons with fewer than three
// distinct ring points, negative radii and unknown types.
func BuildCollider(spec ColliderComponentSpec) (collider.Collider, error) {
	var c collider.Collider
	switch strings.ToLower(strings.TrimSpace(spec.Type)) {
	case ColliderCircle, "":
		if spec.Radius < 0 {
			return nil, fmt.Errorf("prefabs: circle radius %g: %w", spec.Radius, ErrInvalidSpec)
		}
		if len(spec.Points) > 0 {
			return nil, fmt.Errorf("prefabs: circle with points: %w", ErrInvalidSpec)
		}
		c = collider.NewCircleCollider(spec.Radius)
	case ColliderPolygon:
		switch {
		case len(spec.Points) == 0:
			c = collider.NewAutoSizedPolygonCollider()
		case len(shape.NormalizeClosed(toVectors(spec.Points))) < 3:
			return nil, fmt.Errorf("prefabs: polygon with %d points: %w", len(spec.Points), ErrInvalidSpec)
		default:
			c = collider.NewPolygonCollider(toVectors(spec.Points))
		}
	default:
		return nil, fmt.Errorf("prefabs: collider type %q: %w", spec.Type, ErrInvalidSpec)
	}

	if spec.Offset != nil {
		c.SetLocalOffset(c.LocalOffset().Add(cp.Vector{X: spec.Offset.X, Y: spec.Offset.Y}))
	}
	c.SetTrigger(spec.Trigger)
	return c, nil
}

func toVectors(points []PointSpec) []cp.Vector {
	out := make([]cp.Vector, 0, len(points))
	for _, p := range points {
		out = append(out, cp.Vector{X: p.X, Y: p.Y})
	}
	return out
}
