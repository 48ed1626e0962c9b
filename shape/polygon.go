package shape

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Polygon is an open vertex loop expressed relative to its own centroid.
type Polygon struct {
	position cp.Vector
	Vertices []cp.Vector
}

// NewPolygon takes ownership of vertices.
func NewPolygon(vertices []cp.Vector) *Polygon {
	return &Polygon{Vertices: vertices}
}

func (p *Polygon) Kind() Kind {
	return KindPolygon
}

func (p *Polygon) Position() cp.Vector {
	if p == nil {
		return cp.Vector{}
	}
	return p.position
}

func (p *Polygon) SetPosition(v cp.Vector) {
	if p == nil {
		return
	}
	p.position = v
}

func (p *Polygon) Count() int {
	if p == nil {
		return 0
	}
	return len(p.Vertices)
}

func (p *Polygon) Bounds(origin cp.Vector, t Transform) cp.BB {
	if p == nil {
		return cp.BB{}
	}
	base := origin.Add(p.position)
	if len(p.Vertices) == 0 {
		c := t.Point(base)
		return cp.BB{L: c.X, B: c.Y, R: c.X, T: c.Y}
	}
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, v := range p.Vertices {
		bb = bb.Expand(t.Point(base.Add(v)))
	}
	return bb
}
