package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/hitbox/ecs"
	"github.com/milk9111/hitbox/ecs/component"
	"github.com/milk9111/hitbox/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"name":            addName,
	"player_tag":      addPlayerTag,
	"transform":       addTransform,
	"render_size":     addRenderSize,
	"collision_layer": addCollisionLayer,
	"collider":        addCollider,
	"trigger_script":  addTriggerScript,
}

// transform goes before collider so the collider sees its owner's
// placement when attached.
var componentBuildOrder = []string{
	"name",
	"player_tag",
	"transform",
	"render_size",
	"collision_layer",
	"collider",
	"trigger_script",
}

// BuildEntity creates an entity from a prefab. The entity is not added to
// the scene.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, spec, prefabPath)
}

func BuildEntityFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, prefabPath string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}
	for name := range remaining {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := w.CreateEntity()
	ctx := &buildContext{PrefabPath: prefabPath}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := componentRegistry[name](w, e, remaining[name], ctx); err != nil {
				w.DestroyEntity(e)
				return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
			}
		}
	}

	return e, nil
}

// BuildScene builds every entity a scene lists and adds them to the scene.
// On error the entities built so far are destroyed.
func BuildScene(w *ecs.World, scenePath string) ([]ecs.Entity, error) {
	if w == nil {
		return nil, fmt.Errorf("build scene: world is nil")
	}
	spec, err := prefabs.LoadSceneSpec(scenePath)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	built := make([]ecs.Entity, 0, len(spec.Entities))
	fail := func(err error) ([]ecs.Entity, error) {
		for _, e := range built {
			w.DestroyEntity(e)
		}
		return nil, err
	}
	for _, ent := range spec.Entities {
		e, err := BuildEntity(w, ent.Prefab)
		if err != nil {
			return fail(fmt.Errorf("build scene %q: %w", scenePath, err))
		}
		built = append(built, e)
		if ent.Place {
			if err := SetEntityPosition(w, e, ent.X, ent.Y); err != nil {
				return fail(fmt.Errorf("build scene %q: place %q: %w", scenePath, ent.Prefab, err))
			}
		}
		if err := w.AddToScene(e); err != nil {
			return fail(fmt.Errorf("build scene %q: %w", scenePath, err))
		}
	}
	return built, nil
}

// SetEntityPosition moves e, keeping its scale and rotation.
func SetEntityPosition(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := w.Transform(e)
	if !ok {
		t = component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return w.SetTransform(e, t)
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[component.Name](raw)
	if err != nil {
		return fmt.Errorf("decode name spec: %w", err)
	}
	return ecs.Add(w, e, component.NameComponent, &spec)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return w.SetTransform(e, component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addRenderSize(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderSizeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_size spec: %w", err)
	}
	if spec.Width < 0 || spec.Height < 0 {
		return fmt.Errorf("render_size %gx%g: %w", spec.Width, spec.Height, prefabs.ErrInvalidSpec)
	}
	return ecs.Add(w, e, component.RenderSizeComponent, &component.RenderSize{Width: spec.Width, Height: spec.Height})
}

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[component.CollisionLayer](raw)
	if err != nil {
		return fmt.Errorf("decode collision_layer spec: %w", err)
	}
	return w.SetCollisionLayer(e, spec)
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	c, err := prefabs.BuildCollider(spec)
	if err != nil {
		return err
	}
	return w.AttachCollider(e, c)
}

func addTriggerScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TriggerScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode trigger_script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("trigger_script without path: %w", prefabs.ErrInvalidSpec)
	}
	return ecs.Add(w, e, component.TriggerScriptComponent, &component.TriggerScript{Path: spec.Path})
}
