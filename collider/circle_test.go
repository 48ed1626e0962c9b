package collider

import (
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/common"
	"github.com/milk9111/hitbox/shape"
)

func TestNewCircleCollider(t *testing.T) {
	cases := []struct {
		name     string
		build    func() *CircleCollider
		radius   float64
		original float64
		autoSize bool
	}{
		{"explicit", func() *CircleCollider { return NewCircleCollider(3) }, 3, 3, false},
		{"auto_sized", NewAutoSizedCircleCollider, common.DefaultColliderSize, 0, true},
		{"non_positive_is_auto_sized", func() *CircleCollider { return NewCircleCollider(-2) }, common.DefaultColliderSize, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cc := c.build()
			if cc.Radius() != c.radius {
				t.Fatalf("expected radius %v, got %v", c.radius, cc.Radius())
			}
			if cc.OriginalRadius() != c.original {
				t.Fatalf("expected original radius %v, got %v", c.original, cc.OriginalRadius())
			}
			if cc.RequiresAutoSizing() != c.autoSize {
				t.Fatalf("expected RequiresAutoSizing=%v", c.autoSize)
			}
			if cc.Shape().Kind() != shape.KindCircle {
				t.Fatalf("expected circle shape, got %v", cc.Shape().Kind())
			}
			if cc.State() != StateUnattached {
				t.Fatalf("expected unattached, got %v", cc.State())
			}
		})
	}
}

func TestSetRadiusClearsAutoSizing(t *testing.T) {
	c := NewAutoSizedCircleCollider()
	if !c.RequiresAutoSizing() {
		t.Fatalf("expected auto-sizing before SetRadius")
	}
	c.SetRadius(5)
	if c.RequiresAutoSizing() {
		t.Fatalf("expected auto-sizing cleared after SetRadius")
	}
	if c.Radius() != 5 || c.OriginalRadius() != 5 {
		t.Fatalf("expected radius == original == 5, got %v / %v", c.Radius(), c.OriginalRadius())
	}
}

func TestSetRadiusIdempotent(t *testing.T) {
	c := NewCircleCollider(2)
	reg, _ := registered(c)

	c.SetRadius(6)
	if len(reg.updated) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(reg.updated))
	}
	c.RecalculateBounds()

	c.SetRadius(6)
	if len(reg.updated) != 1 {
		t.Fatalf("expected no second notification, got %d", len(reg.updated))
	}
	if c.Radius() != 6 || c.OriginalRadius() != 6 {
		t.Fatalf("expected radius 6, got %v / %v", c.Radius(), c.OriginalRadius())
	}
	if c.IsPositionDirty() {
		t.Fatalf("repeat SetRadius should not mark bounds dirty")
	}
}

func TestSetRadiusChains(t *testing.T) {
	c := NewCircleCollider(1)
	if got := c.SetRadius(2).SetRadius(3); got != c {
		t.Fatalf("expected SetRadius to return its receiver")
	}
	if c.Radius() != 3 {
		t.Fatalf("expected radius 3, got %v", c.Radius())
	}
}

func TestSetRadiusRegistryGate(t *testing.T) {
	cases := []struct {
		name  string
		setup func(c *CircleCollider, reg *spyRegistry)
		want  int
	}{
		{
			name:  "unattached",
			setup: func(c *CircleCollider, reg *spyRegistry) {},
			want:  0,
		},
		{
			name: "attached_not_in_scene",
			setup: func(c *CircleCollider, reg *spyRegistry) {
				c.Attach(newFakeEntity(0, 0))
			},
			want: 0,
		},
		{
			name: "in_scene_not_registered",
			setup: func(c *CircleCollider, reg *spyRegistry) {
				c.Attach(newFakeEntity(0, 0))
				c.SetParentEntityAddedToScene(true)
			},
			want: 0,
		},
		{
			name: "registered",
			setup: func(c *CircleCollider, reg *spyRegistry) {
				c.Attach(newFakeEntity(0, 0))
				c.SetParentEntityAddedToScene(true)
				if err := reg.AddCollider(c); err != nil {
					panic(err)
				}
			},
			want: 1,
		},
		{
			name: "left_scene",
			setup: func(c *CircleCollider, reg *spyRegistry) {
				c.Attach(newFakeEntity(0, 0))
				c.SetParentEntityAddedToScene(true)
				if err := reg.AddCollider(c); err != nil {
					panic(err)
				}
				c.SetParentEntityAddedToScene(false)
			},
			want: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCircleCollider(1)
			reg := &spyRegistry{}
			tc.setup(c, reg)
			c.SetRadius(2)
			if len(reg.updated) != tc.want {
				t.Fatalf("expected %d notifications, got %d", tc.want, len(reg.updated))
			}
			if !c.IsPositionDirty() {
				t.Fatalf("expected dirty bounds after SetRadius")
			}
		})
	}
}

func TestCircleEndToEnd(t *testing.T) {
	c := NewCircleCollider(3)
	reg, _ := registered(c)
	if !c.IsRegistered() {
		t.Fatalf("expected collider registered")
	}

	c.SetRadius(3)
	if len(reg.updated) != 0 {
		t.Fatalf("equal radius should not notify, got %d", len(reg.updated))
	}

	c.SetRadius(4)
	if len(reg.updated) != 1 || reg.updated[0] != c {
		t.Fatalf("expected exactly one notification for c, got %v", reg.updated)
	}
	if c.Radius() != 4 || c.OriginalRadius() != 4 {
		t.Fatalf("expected radius == original == 4")
	}
	if !c.IsPositionDirty() {
		t.Fatalf("expected dirty until bounds are recomputed")
	}

	bb := c.RecalculateBounds()
	if c.IsPositionDirty() {
		t.Fatalf("expected clean after RecalculateBounds")
	}
	if bb != (cp.BB{L: -4, B: -4, R: 4, T: 4}) {
		t.Fatalf("unexpected bounds %v", bb)
	}
}

func TestCircleRescalesFromOriginalRadius(t *testing.T) {
	c := NewCircleCollider(2)
	reg, e := registered(c)

	e.transform.Scale = cp.Vector{X: 3, Y: 1}
	c.TransformChanged()
	if c.Radius() != 6 {
		t.Fatalf("expected scaled radius 6, got %v", c.Radius())
	}
	if c.OriginalRadius() != 2 {
		t.Fatalf("original radius must not change, got %v", c.OriginalRadius())
	}
	if len(reg.updated) != 1 {
		t.Fatalf("expected one notification for the transform change, got %d", len(reg.updated))
	}

	e.transform.Scale = cp.Vector{X: 1, Y: 1}
	c.TransformChanged()
	if c.Radius() != 2 {
		t.Fatalf("expected radius back to 2, got %v", c.Radius())
	}
}

func TestAutoSizedCircleIgnoresScale(t *testing.T) {
	c := NewAutoSizedCircleCollider()
	e := newFakeEntity(0, 0)
	e.transform.Scale = cp.Vector{X: 4, Y: 4}
	c.Attach(e)
	if c.Radius() != common.DefaultColliderSize {
		t.Fatalf("expected nominal radius, got %v", c.Radius())
	}
}

func TestCircleString(t *testing.T) {
	c := NewCircleCollider(1.5)
	s := c.String()
	if !strings.HasPrefix(s, "CircleCollider{") || !strings.Contains(s, "radius: 1.5") {
		t.Fatalf("unexpected debug string %q", s)
	}
}
