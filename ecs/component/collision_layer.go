package component

// CollisionLayer restricts which colliders an entity's collider pairs with.
// Set it through World.SetCollisionLayer so a registered collider picks it up.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// it is treated as category 1.
	Category uint32 `yaml:"category"`
	// Mask is a bitmask of categories this entity pairs with. If zero, it
	// pairs with every category.
	Mask uint32 `yaml:"mask"`
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
