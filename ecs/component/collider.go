package component

import "github.com/milk9111/hitbox/collider"

// Collider holds the entity's collider. The world owns its lifecycle; use
// World.AttachCollider rather than adding it directly.
type Collider struct {
	Collider collider.Collider
}

var ColliderComponent = NewComponent[Collider]()
