package shape

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/common"
)

// NormalizeClosed returns a copy of points in open form: when the last point
// equals the first exactly, it is dropped. Coincident-but-unequal endpoints
// are kept as they are.
func NormalizeClosed(points []cp.Vector) []cp.Vector {
	out := make([]cp.Vector, len(points))
	copy(out, points)
	if n := len(out); n > 1 && out[0].Equal(out[n-1]) {
		out = out[:n-1]
	}
	return out
}

// Centroid returns the area-weighted centre of the polygon outlined by
// points. Zero-area outlines fall back to the vertex average. A repeated
// closing point contributes nothing to the area sum, so open and closed forms
// of the same ring give the same result.
func Centroid(points []cp.Vector) cp.Vector {
	n := len(points)
	if n == 0 {
		return cp.Vector{}
	}
	if common.NearlyZero(SignedArea(points)) {
		return Average(NormalizeClosed(points))
	}
	return cp.CentroidForPoly(n, points)
}

// SignedArea is positive for counter-clockwise outlines.
func SignedArea(points []cp.Vector) float64 {
	n := len(points)
	var sum float64
	for i := 0; i < n; i++ {
		sum += points[i].Cross(points[(i+1)%n])
	}
	return sum / 2
}

// Average returns the mean of points.
func Average(points []cp.Vector) cp.Vector {
	if len(points) == 0 {
		return cp.Vector{}
	}
	var sum cp.Vector
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mult(1 / float64(len(points)))
}

// Recenter subtracts center from every point in place.
func Recenter(points []cp.Vector, center cp.Vector) {
	for i := range points {
		points[i] = points[i].Sub(center)
	}
}

// Box returns a width by height rectangle centred on the origin, wound
// counter-clockwise.
func Box(width, height float64) []cp.Vector {
	hw, hh := width/2, height/2
	return []cp.Vector{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
}
