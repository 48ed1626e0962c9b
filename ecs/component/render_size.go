package component

// RenderSize is the drawn size of the entity's renderable. Colliders built
// without explicit geometry take their size from it.
type RenderSize struct {
	Width  float64
	Height float64
}

var RenderSizeComponent = NewComponent[RenderSize]()
