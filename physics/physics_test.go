package physics

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitbox/collider"
	"github.com/milk9111/hitbox/shape"
)

type testEntity struct {
	transform shape.Transform
}

func newTestEntity(x, y float64) *testEntity {
	t := shape.IdentityTransform()
	t.Position = cp.Vector{X: x, Y: y}
	return &testEntity{transform: t}
}

func (e *testEntity) Transform() shape.Transform {
	return e.transform
}

func (e *testEntity) moveTo(c collider.Collider, x, y float64) {
	e.transform.Position = cp.Vector{X: x, Y: y}
	c.TransformChanged()
}

// spawn attaches c to a fresh entity at (x, y), marks it in scene and
// registers it with p.
func spawn(t *testing.T, p *Physics, c collider.Collider, x, y float64) *testEntity {
	t.Helper()
	e := newTestEntity(x, y)
	c.Attach(e)
	c.SetParentEntityAddedToScene(true)
	if err := p.AddCollider(c); err != nil {
		t.Fatalf("AddCollider: %v", err)
	}
	return e
}

type triggerLog struct {
	enters []string
	exits  []string
}

func (l *triggerLog) watch(name string, c collider.Collider) {
	c.OnEnter(func(other, local collider.Collider) {
		if local != c {
			panic("local must be the receiving collider")
		}
		l.enters = append(l.enters, name)
	})
	c.OnExit(func(other, local collider.Collider) {
		if local != c {
			panic("local must be the receiving collider")
		}
		l.exits = append(l.exits, name)
	})
}

func TestAddColliderGate(t *testing.T) {
	cases := []struct {
		name  string
		setup func(c collider.Collider)
		want  error
	}{
		{"unattached", func(c collider.Collider) {}, ErrNotAttached},
		{"not_in_scene", func(c collider.Collider) { c.Attach(newTestEntity(0, 0)) }, ErrNotInScene},
		{"ok", func(c collider.Collider) {
			c.Attach(newTestEntity(0, 0))
			c.SetParentEntityAddedToScene(true)
		}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(DefaultConfig())
			c := collider.NewCircleCollider(1)
			tc.setup(c)
			err := p.AddCollider(c)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if (tc.want == nil) != c.IsRegistered() {
				t.Fatalf("unexpected registration state %v", c.State())
			}
		})
	}

	t.Run("twice", func(t *testing.T) {
		p := New(DefaultConfig())
		c := collider.NewCircleCollider(1)
		spawn(t, p, c, 0, 0)
		if err := p.AddCollider(c); !errors.Is(err, ErrAlreadyRegistered) {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	t.Run("nil", func(t *testing.T) {
		p := New(DefaultConfig())
		if err := p.AddCollider(nil); !errors.Is(err, ErrNilCollider) {
			t.Fatalf("expected ErrNilCollider, got %v", err)
		}
	})
}

func TestUpdateColliderIsFlushedBeforeQuery(t *testing.T) {
	p := New(DefaultConfig())
	c := collider.NewCircleCollider(3)
	spawn(t, p, c, 0, 0)

	c.SetRadius(3)
	if len(p.pending) != 0 {
		t.Fatalf("equal radius should not reach the registry")
	}

	c.SetRadius(4)
	if len(p.pending) != 1 {
		t.Fatalf("expected one pending update, got %d", len(p.pending))
	}
	if !c.IsPositionDirty() {
		t.Fatalf("expected dirty bounds until the registry flushes")
	}

	hits := p.Query(cp.BB{L: 3.5, B: -0.5, R: 3.8, T: 0.5})
	if len(hits) != 1 || hits[0] != c {
		t.Fatalf("expected grown circle in query, got %v", hits)
	}
	if c.IsPositionDirty() {
		t.Fatalf("expected clean bounds after flush")
	}
	if c.Bounds() != (cp.BB{L: -4, B: -4, R: 4, T: 4}) {
		t.Fatalf("unexpected bounds %v", c.Bounds())
	}
}

func TestUpdateUnregisteredIgnored(t *testing.T) {
	p := New(DefaultConfig())
	c := collider.NewCircleCollider(1)
	p.UpdateCollider(c)
	if len(p.pending) != 0 {
		t.Fatalf("expected unregistered update to be ignored")
	}
}

func TestQueryTracksMovement(t *testing.T) {
	p := New(DefaultConfig())
	a := collider.NewCircleCollider(1)
	b := collider.NewPolygonCollider([]cp.Vector{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}})
	ea := spawn(t, p, a, 0, 0)
	spawn(t, p, b, 20, 20)

	area := cp.BB{L: 19, B: 19, R: 23, T: 23}
	if hits := p.Query(area); len(hits) != 1 || hits[0] != b {
		t.Fatalf("expected only polygon in area, got %v", hits)
	}

	ea.moveTo(a, 21, 21)
	if hits := p.Query(area); len(hits) != 2 {
		t.Fatalf("expected both colliders after move, got %v", hits)
	}
}

func TestTriggerSymmetry(t *testing.T) {
	for _, index := range []string{IndexBBTree, IndexSpatialHash} {
		t.Run(index, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Index = index
			p := New(cfg)

			a := collider.NewCircleCollider(1)
			a.SetTrigger(true)
			b := collider.NewCircleCollider(1)
			spawn(t, p, a, 0, 0)
			eb := spawn(t, p, b, 10, 0)

			var log triggerLog
			log.watch("a", a)
			log.watch("b", b)

			p.Step()
			if len(log.enters) != 0 {
				t.Fatalf("no overlap yet, got enters %v", log.enters)
			}

			eb.moveTo(b, 1, 0)
			p.Step()
			if len(log.enters) != 2 || log.enters[0] != "a" || log.enters[1] != "b" {
				t.Fatalf("expected one enter each, got %v", log.enters)
			}

			p.Step()
			p.Step()
			if len(log.enters) != 2 || len(log.exits) != 0 {
				t.Fatalf("steady overlap must not re-fire, got enters %v exits %v", log.enters, log.exits)
			}
			if len(p.Pairs()) != 1 {
				t.Fatalf("expected one active pair, got %d", len(p.Pairs()))
			}

			eb.moveTo(b, 10, 0)
			p.Step()
			p.Step()
			if len(log.exits) != 2 || log.exits[0] != "a" || log.exits[1] != "b" {
				t.Fatalf("expected one exit each, got %v", log.exits)
			}
			if len(log.enters) != 2 {
				t.Fatalf("unexpected extra enters %v", log.enters)
			}
		})
	}
}

func TestTriggerPerspective(t *testing.T) {
	p := New(DefaultConfig())
	a := collider.NewCircleCollider(1)
	a.SetTrigger(true)
	b := collider.NewCircleCollider(1)
	spawn(t, p, a, 0, 0)
	spawn(t, p, b, 0.5, 0)

	var aOther, bOther collider.Collider
	a.OnEnter(func(other, local collider.Collider) { aOther = other })
	b.OnEnter(func(other, local collider.Collider) { bOther = other })

	p.Step()
	if aOther != b || bOther != a {
		t.Fatalf("each side should see the other as counterpart")
	}
}

func TestSolidPairsDoNotTrigger(t *testing.T) {
	p := New(DefaultConfig())
	a := collider.NewCircleCollider(1)
	b := collider.NewCircleCollider(1)
	spawn(t, p, a, 0, 0)
	spawn(t, p, b, 0.5, 0)

	var log triggerLog
	log.watch("a", a)
	log.watch("b", b)
	p.Step()
	if len(log.enters) != 0 {
		t.Fatalf("solid pair should not trigger, got %v", log.enters)
	}
}

func TestTriggerFlagClearedFiresExit(t *testing.T) {
	p := New(DefaultConfig())
	a := collider.NewCircleCollider(1)
	a.SetTrigger(true)
	b := collider.NewCircleCollider(1)
	spawn(t, p, a, 0, 0)
	spawn(t, p, b, 0.5, 0)

	var log triggerLog
	log.watch("a", a)
	log.watch("b", b)
	p.Step()
	a.SetTrigger(false)
	p.Step()
	if len(log.exits) != 2 {
		t.Fatalf("expected exits once the pair stops qualifying, got %v", log.exits)
	}
}

func TestRemoveColliderFiresExit(t *testing.T) {
	p := New(DefaultConfig())
	a := collider.NewCircleCollider(1)
	a.SetTrigger(true)
	b := collider.NewCircleCollider(1)
	spawn(t, p, a, 0, 0)
	spawn(t, p, b, 0.5, 0)

	var log triggerLog
	log.watch("a", a)
	log.watch("b", b)
	p.Step()

	b.SetParentEntityAddedToScene(false)
	if b.IsRegistered() || p.Len() != 1 {
		t.Fatalf("expected b unregistered")
	}
	if len(log.exits) != 2 {
		t.Fatalf("expected exit on both sides, got %v", log.exits)
	}
	p.Step()
	if len(log.exits) != 2 || len(log.enters) != 2 {
		t.Fatalf("unexpected extra callbacks enters=%v exits=%v", log.enters, log.exits)
	}
}

func TestRemovalDuringEnterSkipsLaterPairs(t *testing.T) {
	p := New(DefaultConfig())
	a := collider.NewCircleCollider(1)
	a.SetTrigger(true)
	b := collider.NewCircleCollider(1)
	c := collider.NewCircleCollider(1)
	spawn(t, p, a, 0, 0)
	spawn(t, p, b, 0.5, 0)
	spawn(t, p, c, -0.5, 0)

	enters := 0
	a.OnEnter(func(other, local collider.Collider) {
		enters++
		if other == b {
			c.Destroy()
		}
	})
	p.Step()
	if enters != 1 {
		t.Fatalf("expected the pair with the destroyed collider to be skipped, got %d enters", enters)
	}
	if len(p.Pairs()) != 1 {
		t.Fatalf("expected one active pair, got %d", len(p.Pairs()))
	}
}

func TestClear(t *testing.T) {
	p := New(DefaultConfig())
	a := collider.NewCircleCollider(1)
	spawn(t, p, a, 0, 0)
	p.Clear()
	if p.Len() != 0 || a.IsRegistered() {
		t.Fatalf("expected registry empty and collider unregistered")
	}
	if hits := p.Query(cp.BB{L: -1, B: -1, R: 1, T: 1}); len(hits) != 0 {
		t.Fatalf("expected empty query, got %v", hits)
	}
}

func TestLayersFilterPairs(t *testing.T) {
	cases := []struct {
		name      string
		aCat      uint32
		aMask     uint32
		bCat      uint32
		bMask     uint32
		wantPairs int
	}{
		{"no_layers", 0, 0, 0, 0, 1},
		{"same_category_excluded", 2, 1, 2, 1, 0},
		{"masks_match", 2, 1, 1, 2, 1},
		{"one_side_refuses", 2, 4, 1, 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(DefaultConfig())
			a := collider.NewCircleCollider(2)
			a.SetTrigger(true)
			b := collider.NewCircleCollider(2)
			b.SetTrigger(true)
			spawn(t, p, a, 0, 0)
			spawn(t, p, b, 1, 0)
			if tc.aCat != 0 || tc.aMask != 0 {
				p.SetLayer(a, tc.aCat, tc.aMask)
			}
			if tc.bCat != 0 || tc.bMask != 0 {
				p.SetLayer(b, tc.bCat, tc.bMask)
			}
			p.Step()
			if got := len(p.Pairs()); got != tc.wantPairs {
				t.Fatalf("expected %d pairs, got %d", tc.wantPairs, got)
			}
			// plain queries ignore layers
			if hits := p.Query(cp.BB{L: -1, B: -1, R: 1, T: 1}); len(hits) != 2 {
				t.Fatalf("expected both colliders from query, got %v", hits)
			}
		})
	}
}

func TestLayerDroppedOnRemove(t *testing.T) {
	p := New(DefaultConfig())
	a := collider.NewCircleCollider(2)
	a.SetTrigger(true)
	spawn(t, p, a, 0, 0)
	p.SetLayer(a, 2, 2)
	p.RemoveCollider(a)

	if err := p.AddCollider(a); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	b := collider.NewCircleCollider(2)
	spawn(t, p, b, 1, 0)
	p.Step()
	if len(p.Pairs()) != 1 {
		t.Fatalf("expected layer cleared on removal, got %d pairs", len(p.Pairs()))
	}
}
