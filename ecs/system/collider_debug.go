package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/collider"
	"github.com/milk9111/hitbox/ecs"
	"github.com/milk9111/hitbox/ecs/component"
	"github.com/milk9111/hitbox/shape"
	"golang.org/x/image/colornames"
)

const debugCircleSegments = 24

var (
	debugSolidColor   color.Color = colornames.Lime
	debugTriggerColor color.Color = colornames.Orange
	debugActiveColor  color.Color = colornames.Red
	debugBoundsColor  color.Color = colornames.Slategray
)

// ColliderDebugSystem is a render system outlining every collider and its
// bounds. Triggers are drawn in a different colour, and colliders in an
// active trigger pair in a third.
type ColliderDebugSystem struct {
	Enabled    bool
	ShowBounds bool
}

func NewColliderDebugSystem(enabled bool) *ColliderDebugSystem {
	return &ColliderDebugSystem{Enabled: enabled, ShowBounds: true}
}

func (s *ColliderDebugSystem) Update(w *ecs.World) {}

func (s *ColliderDebugSystem) Draw(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	if s == nil || !s.Enabled {
		return
	}
	DrawColliderDebug(w, screen, camX, camY, zoom, s.ShowBounds)
}

// DrawColliderDebug outlines every collider of w in world space.
func DrawColliderDebug(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64, showBounds bool) {
	if w == nil || screen == nil {
		return
	}
	if zoom <= 0 {
		zoom = 1
	}
	d := &colliderDebugDrawer{screen: screen, camX: camX, camY: camY, zoom: zoom}

	active := map[uint64]bool{}
	for _, pr := range w.Physics().Pairs() {
		active[pr[0].ID()] = true
		active[pr[1].ID()] = true
	}

	lines := 0
	ecs.ForEach(w, component.ColliderComponent, func(e ecs.Entity, cc *component.Collider) {
		c := cc.Collider
		if c == nil {
			return
		}
		bb := c.Bounds()
		if c.IsPositionDirty() && !c.IsRegistered() {
			// nothing else refreshes bounds outside the registry
			bb = c.RecalculateBounds()
		}
		col := debugSolidColor
		switch {
		case active[c.ID()]:
			col = debugActiveColor
		case c.IsTrigger():
			col = debugTriggerColor
		}
		if showBounds {
			d.drawBB(bb, debugBoundsColor)
		}
		d.drawShape(c, bb, col)
		lines++
	})
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("colliders: %d pairs: %d", lines, len(active)/2), 10, 10)
}

type colliderDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
}

func (d *colliderDebugDrawer) drawShape(c collider.Collider, bb cp.BB, col color.Color) {
	switch sh := c.Shape().(type) {
	case *shape.Circle:
		center := bb.Center()
		d.drawCircle(center, (bb.R-bb.L)/2, col)
	case *shape.Polygon:
		t := shape.IdentityTransform()
		if ent := c.Entity(); ent != nil {
			t = ent.Transform()
		}
		base := c.LocalOffset().Add(sh.Position())
		verts := make([]cp.Vector, 0, len(sh.Vertices))
		for _, v := range sh.Vertices {
			verts = append(verts, t.Point(base.Add(v)))
		}
		d.drawPolygon(verts, col)
	}
}

func (d *colliderDebugDrawer) drawBB(bb cp.BB, col color.Color) {
	d.drawPolygon([]cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}, col)
}

func (d *colliderDebugDrawer) drawLine(a, b cp.Vector, col color.Color) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, col)
}

func (d *colliderDebugDrawer) drawPolygon(verts []cp.Vector, col color.Color) {
	if len(verts) == 0 {
		return
	}
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], col)
	}
}

func (d *colliderDebugDrawer) drawCircle(center cp.Vector, radius float64, col color.Color) {
	if radius <= 0 {
		return
	}
	d.drawPolygon(circlePoints(center, radius, debugCircleSegments), col)
}

func (d *colliderDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return (v.X - d.camX) * d.zoom, (v.Y - d.camY) * d.zoom
}

func circlePoints(center cp.Vector, radius float64, segments int) []cp.Vector {
	points := make([]cp.Vector, 0, segments)
	for i := 0; i < segments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(segments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	return points
}
