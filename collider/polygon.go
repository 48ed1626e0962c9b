package collider

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/common"
	"github.com/milk9111/hitbox/shape"
)

// PolygonCollider keeps its vertices centred on their own centroid; where
// the outline actually sits is carried by the local offset.
type PolygonCollider struct {
	Base
	polygon *shape.Polygon
}

// NewPolygonCollider builds a collider from an outline of at least three
// points. A closed ring (last point equal to the first) is accepted. Fewer
// than three points is the caller's problem; it is not checked here.
func NewPolygonCollider(points []cp.Vector) *PolygonCollider {
	p := &PolygonCollider{}
	p.init(p)
	p.applyPoints(points)
	return p
}

// NewAutoSizedPolygonCollider builds a unit box that reports
// RequiresAutoSizing until SetPoints supplies the real outline.
func NewAutoSizedPolygonCollider() *PolygonCollider {
	p := NewPolygonCollider(shape.Box(common.DefaultColliderSize, common.DefaultColliderSize))
	p.requiresAutoSizing = true
	return p
}

// SetPoints replaces the outline, re-centring it the same way the
// constructor does.
func (p *PolygonCollider) SetPoints(points []cp.Vector) *PolygonCollider {
	if p == nil {
		return p
	}
	p.requiresAutoSizing = false
	p.applyPoints(points)
	p.notify()
	return p
}

// Vertices returns a copy of the centroid-relative vertex list.
func (p *PolygonCollider) Vertices() []cp.Vector {
	if p == nil || p.polygon == nil {
		return nil
	}
	out := make([]cp.Vector, len(p.polygon.Vertices))
	copy(out, p.polygon.Vertices)
	return out
}

// applyPoints normalizes the outline, moves its centroid into the local
// offset and installs a fresh polygon holding the re-centred vertices.
func (p *PolygonCollider) applyPoints(points []cp.Vector) {
	vertices := shape.NormalizeClosed(points)
	center := shape.Centroid(points)
	p.localOffset = center
	shape.Recenter(vertices, center)
	p.polygon = shape.NewPolygon(vertices)
	p.setShape(p.polygon)
}

func (p *PolygonCollider) String() string {
	if p == nil {
		return "PolygonCollider{}"
	}
	return fmt.Sprintf("PolygonCollider{id: %d, bounds: %v, vertices: %d}", p.id, p.bounds, p.polygon.Count())
}
