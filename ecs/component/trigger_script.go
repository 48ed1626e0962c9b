package component

// TriggerScript names a tengo script run when the entity's collider enters
// or exits a trigger pair.
type TriggerScript struct {
	Path string
}

var TriggerScriptComponent = NewComponent[TriggerScript]()
