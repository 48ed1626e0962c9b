package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/hitbox/collider"
	"github.com/milk9111/hitbox/ecs"
	"github.com/milk9111/hitbox/ecs/component"
	"github.com/milk9111/hitbox/prefabs"
)

// ScriptEventType tags events pushed by a script's emit call.
const ScriptEventType = "script_emit"

// ScriptEvent is the payload of a ScriptEventType event.
type ScriptEvent struct {
	Entity ecs.Entity
	Other  ecs.Entity
	Name   string
}

// TriggerScriptSystem runs an entity's tengo script for each trigger
// transition its collider saw this frame. Scripts define
// on_enter(self, other) and on_exit(self, other) and may call emit(name),
// set_radius(r) and log(msg).
type TriggerScriptSystem struct {
	// Load reads script source by path. Defaults to prefabs.LoadScript.
	Load func(path string) ([]byte, error)

	// OnEmit, when set, is called for every emit from a script in addition
	// to the event being queued.
	OnEmit func(ScriptEvent)

	cache map[ecs.Entity]*triggerScriptRuntime
}

type triggerScriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	failed   bool
}

const triggerDispatchScript = `
if __phase == "enter" {
	on_enter(__self, __other)
} else if __phase == "exit" {
	on_exit(__self, __other)
}
`

func NewTriggerScriptSystem() *TriggerScriptSystem {
	return &TriggerScriptSystem{
		Load:  prefabs.LoadScript,
		cache: make(map[ecs.Entity]*triggerScriptRuntime),
	}
}

func (s *TriggerScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().DrainTriggers() {
		if !w.IsAlive(evt.Entity) {
			continue
		}
		script, ok := ecs.Get(w, evt.Entity, component.TriggerScriptComponent)
		if !ok || strings.TrimSpace(script.Path) == "" {
			continue
		}
		rt, err := s.runtime(evt.Entity, script.Path)
		if err != nil {
			log.Printf("TriggerScript: entity=%v load %s: %v", evt.Entity, script.Path, err)
			continue
		}
		phase := "enter"
		if evt.Kind == ecs.TriggerExit {
			phase = "exit"
		}
		if err := s.run(w, rt, phase, evt); err != nil {
			log.Printf("TriggerScript: entity=%v %s %s: %v", evt.Entity, script.Path, phase, err)
		}
	}
	s.prune(w)
}

// Invalidate drops compiled scripts loaded from path so the next trigger
// recompiles them. An empty path drops everything.
func (s *TriggerScriptSystem) Invalidate(path string) {
	if s == nil {
		return
	}
	want := prefabs.CleanScriptPath(path)
	for e, rt := range s.cache {
		if path == "" || prefabs.CleanScriptPath(rt.path) == want {
			delete(s.cache, e)
		}
	}
}

func (s *TriggerScriptSystem) runtime(e ecs.Entity, path string) (*triggerScriptRuntime, error) {
	if s.cache == nil {
		s.cache = make(map[ecs.Entity]*triggerScriptRuntime)
	}
	if rt, ok := s.cache[e]; ok && rt.path == path {
		if rt.failed {
			return nil, fmt.Errorf("script failed to compile")
		}
		return rt, nil
	}

	load := s.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + triggerDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__self", map[string]any{})
	_ = script.Add("__other", map[string]any{})
	for _, name := range []string{"emit", "set_radius", "log"} {
		_ = script.Add(name, noopFunction(name))
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		// cache the failure so a broken script is reported once per reload
		s.cache[e] = &triggerScriptRuntime{path: path, failed: true}
		return nil, err
	}
	rt := &triggerScriptRuntime{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.cache[e] = rt
	return rt, nil
}

func (s *TriggerScriptSystem) run(w *ecs.World, rt *triggerScriptRuntime, phase string, evt ecs.TriggerEvent) error {
	self := describeCollider(w, evt.Entity, evt.Collider)
	self.Value["state"] = rt.state
	other := describeCollider(w, evt.Other, evt.OtherCollider)

	values := map[string]any{
		"__phase":    phase,
		"__self":     self,
		"__other":    other,
		"emit":       s.emitFunction(w, evt),
		"set_radius": setRadiusFunction(evt.Collider),
		"log":        logFunction(rt.path, evt.Entity),
	}
	for name, v := range values {
		if err := rt.compiled.Set(name, v); err != nil {
			return err
		}
	}
	return rt.compiled.Run()
}

func (s *TriggerScriptSystem) emitFunction(w *ecs.World, evt ecs.TriggerEvent) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		se := ScriptEvent{Entity: evt.Entity, Other: evt.Other, Name: name}
		w.Events().Push(ecs.Event{Type: ScriptEventType, Data: se})
		if s.OnEmit != nil {
			s.OnEmit(se)
		}
		return tengo.TrueValue, nil
	}}
}

func setRadiusFunction(c collider.Collider) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "set_radius", Value: func(args ...tengo.Object) (tengo.Object, error) {
		circle, ok := c.(*collider.CircleCollider)
		if !ok || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		r, ok := tengo.ToFloat64(args[0])
		if !ok || r <= 0 {
			return tengo.FalseValue, nil
		}
		circle.SetRadius(r)
		return tengo.TrueValue, nil
	}}
}

func logFunction(path string, e ecs.Entity) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("TriggerScript: %s entity=%v: %s", path, e, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}
}

func noopFunction(name string) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		return tengo.UndefinedValue, nil
	}}
}

// describeCollider is the map scripts see as self and other.
func describeCollider(w *ecs.World, e ecs.Entity, c collider.Collider) *tengo.Map {
	values := map[string]tengo.Object{
		"entity":  &tengo.String{Value: e.String()},
		"name":    &tengo.String{Value: ""},
		"id":      &tengo.Int{Value: 0},
		"trigger": tengo.FalseValue,
	}
	if name, ok := ecs.Get(w, e, component.NameComponent); ok {
		values["name"] = &tengo.String{Value: name.Value}
	}
	if c != nil {
		values["id"] = &tengo.Int{Value: int64(c.ID())}
		if c.IsTrigger() {
			values["trigger"] = tengo.TrueValue
		}
		if circle, ok := c.(*collider.CircleCollider); ok {
			values["radius"] = &tengo.Float{Value: circle.Radius()}
		}
	}
	return &tengo.Map{Value: values}
}

func (s *TriggerScriptSystem) prune(w *ecs.World) {
	for e := range s.cache {
		if !w.IsAlive(e) {
			delete(s.cache, e)
		}
	}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
