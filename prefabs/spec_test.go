package prefabs

import (
	"errors"
	"testing"

	"github.com/milk9111/hitbox/collider"
)

func TestLoadEmbeddedPrefabs(t *testing.T) {
	for _, name := range []string{"player.yaml", "door.yaml", "pickup.yaml", "wall.yaml", "prefabs/player.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Name == "" || len(spec.Components) == 0 {
				t.Fatalf("expected name and components, got %+v", spec)
			}
			if _, ok := spec.Components["collider"]; !ok {
				t.Fatalf("expected a collider component")
			}
		})
	}
}

func TestLoadMissingPrefab(t *testing.T) {
	if _, err := LoadEntityBuildSpec("nope.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
}

func TestLoadSceneSpec(t *testing.T) {
	spec, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(spec.Entities) == 0 {
		t.Fatalf("expected entities")
	}
	last := spec.Entities[len(spec.Entities)-1]
	if !last.Place || last.X != 420 || last.Y != 220 {
		t.Fatalf("expected placed pickup, got %+v", last)
	}
}

func TestDecodeColliderSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("door.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cs, err := DecodeComponentSpec[ColliderComponentSpec](spec.Components["collider"])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cs.Type != ColliderPolygon || !cs.Trigger || len(cs.Points) != 5 {
		t.Fatalf("unexpected collider spec %+v", cs)
	}
}

func TestBuildCollider(t *testing.T) {
	square := []PointSpec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	cases := []struct {
		name     string
		spec     ColliderComponentSpec
		wantErr  bool
		wantAuto bool
		check    func(t *testing.T, c collider.Collider)
	}{
		{
			name: "circle",
			spec: ColliderComponentSpec{Type: "circle", Radius: 3, Trigger: true},
			check: func(t *testing.T, c collider.Collider) {
				cc, ok := c.(*collider.CircleCollider)
				if !ok || cc.Radius() != 3 || !c.IsTrigger() {
					t.Fatalf("expected trigger circle of radius 3, got %v", c)
				}
			},
		},
		{name: "default_type_is_circle", spec: ColliderComponentSpec{Radius: 1}},
		{name: "auto_circle", spec: ColliderComponentSpec{Type: "circle"}, wantAuto: true},
		{name: "negative_radius", spec: ColliderComponentSpec{Type: "circle", Radius: -1}, wantErr: true},
		{name: "circle_with_points", spec: ColliderComponentSpec{Type: "circle", Points: square}, wantErr: true},
		{
			name: "polygon_offset_adds_to_centroid",
			spec: ColliderComponentSpec{Type: "Polygon", Points: square, Offset: &PointSpec{X: 10, Y: 0}},
			check: func(t *testing.T, c collider.Collider) {
				off := c.LocalOffset()
				if off.X < 10.999 || off.X > 11.001 || off.Y < 0.999 || off.Y > 1.001 {
					t.Fatalf("expected offset (11,1), got %v", off)
				}
			},
		},
		{name: "auto_polygon", spec: ColliderComponentSpec{Type: "polygon"}, wantAuto: true},
		{name: "degenerate_polygon", spec: ColliderComponentSpec{Type: "polygon", Points: square[:2]}, wantErr: true},
		{
			name:    "closed_two_point_ring",
			spec:    ColliderComponentSpec{Type: "polygon", Points: []PointSpec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 0}}},
			wantErr: true,
		},
		{name: "unknown_type", spec: ColliderComponentSpec{Type: "capsule"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := BuildCollider(tc.spec)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidSpec) {
					t.Fatalf("expected ErrInvalidSpec, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if c.RequiresAutoSizing() != tc.wantAuto {
				t.Fatalf("expected auto-sizing %v, got %v", tc.wantAuto, c.RequiresAutoSizing())
			}
			if tc.check != nil {
				tc.check(t, c)
			}
		})
	}
}
