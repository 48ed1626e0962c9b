package physics

import "errors"

var (
	ErrNilCollider       = errors.New("physics: collider is nil")
	ErrNotAttached       = errors.New("physics: collider not attached to an entity")
	ErrNotInScene        = errors.New("physics: collider entity not in scene")
	ErrAlreadyRegistered = errors.New("physics: collider already registered")
	ErrInvalidConfig     = errors.New("physics: invalid config")
)
