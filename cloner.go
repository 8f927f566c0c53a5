package ecs

// ComponentCloner copies every component an entity carries onto
// another, driving each component type through its AnyComponentType
// facade so the cloner never needs to name a concrete T. This is the
// same type-erasure pattern componenttype.go uses to let the publisher
// and filters operate over heterogeneous component types.
type ComponentCloner struct{}

// NewComponentCloner returns a stateless cloner; it exists as a value
// so cloning can be swapped out behind an interface in callers that
// want to test against a fake.
func NewComponentCloner() *ComponentCloner {
	return &ComponentCloner{}
}

// Clone creates a new entity in w and copies every component src
// carries onto it. If copying fails, the new entity is disposed before
// the error is returned.
func (c *ComponentCloner) Clone(w *World, src Entity) (Entity, error) {
	dst, err := w.CreateEntity()
	if err != nil {
		return Entity{}, err
	}
	if err := c.CloneInto(w, src, dst); err != nil {
		w.DisposeEntity(dst)
		return Entity{}, err
	}
	return dst, nil
}

// CloneInto copies every component src carries onto the existing
// entity dst, overwriting anything dst already had of the same type.
func (c *ComponentCloner) CloneInto(w *World, src, dst Entity) error {
	if src.WorldID != w.id || dst.WorldID != w.id {
		return ForeignEntityError{Entity: dst, Reference: src}
	}
	for _, t := range w.ReadAllComponentTypes(src) {
		if err := t.cloneTo(w, src, dst); err != nil {
			return err
		}
	}
	return nil
}
