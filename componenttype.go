package ecs

import (
	"reflect"
	"sync"
)

// FlagComponent is implemented by marker types that want the flag-type
// storage optimization explicitly rather than relying on the zero-size
// heuristic NewComponentType falls back to.
type FlagComponent interface {
	IsFlag() bool
}

// AnyComponentType is the type-erased facade every ComponentType[T]
// satisfies. Code that only knows a component's runtime identity
// (filters, the cloner, the serializer) drives it through this
// interface instead of recovering T; each ComponentType[T] closes over
// its own T to implement the subscribe* methods.
type AnyComponentType interface {
	ID() int
	Name() string
	IsFlag() bool
	has(w *World, e Entity) bool
	removeFrom(w *World, e Entity) error
	cloneTo(w *World, src, dst Entity) error
	subscribeAdded(w *World, handler func(Entity)) Subscription
	subscribeRemoved(w *World, handler func(Entity)) Subscription
	subscribeChanged(w *World, handler func(Entity)) Subscription
}

// ComponentType[T] is the process-wide token identifying a component
// type. Go methods cannot be generic, so the mutating and reading
// operations (Set, Get, Has, Remove, SetSameAs) live as package-level
// generic functions that take a *ComponentType[T] and recover T from
// the type parameter rather than from the token itself.
type ComponentType[T any] struct {
	id     int
	name   string
	isFlag bool
}

var _ AnyComponentType = &ComponentType[int]{}

// NewComponentType registers a new component type and returns its
// token. T is treated as a flag type, storing no per-entity data, when
// it implements FlagComponent and reports true; a T that does not
// implement FlagComponent is a flag type when it is zero-size (struct{}
// and similar).
func NewComponentType[T any]() *ComponentType[T] {
	var zero T
	rt := reflect.TypeOf(zero)
	name := "unknown"
	if rt != nil {
		name = rt.Name()
	}
	isFlag := rt == nil || rt.Size() == 0
	if fc, ok := any(zero).(FlagComponent); ok {
		isFlag = fc.IsFlag()
	}
	ct := &ComponentType[T]{
		id:     typeIDs.next(),
		name:   name,
		isFlag: isFlag,
	}
	typeDescriptors.register(ct)
	return ct
}

func (c *ComponentType[T]) ID() int      { return c.id }
func (c *ComponentType[T]) Name() string { return c.name }
func (c *ComponentType[T]) IsFlag() bool { return c.isFlag }

func (c *ComponentType[T]) has(w *World, e Entity) bool {
	return Has(w, c, e)
}

func (c *ComponentType[T]) removeFrom(w *World, e Entity) error {
	return Remove(w, c, e)
}

func (c *ComponentType[T]) cloneTo(w *World, src, dst Entity) error {
	v, ok := Get(w, c, src)
	if !ok {
		return nil
	}
	return Set(w, c, dst, *v)
}

// ReadAny returns entity's component value boxed as any, letting
// generic code (debug views and similar) read it without
// recovering T. See ComponentTypeReader.
func (c *ComponentType[T]) ReadAny(w *World, e Entity) (any, bool) {
	v, ok := Get(w, c, e)
	if !ok {
		return nil, false
	}
	return *v, true
}

func (c *ComponentType[T]) subscribeAdded(w *World, handler func(Entity)) Subscription {
	return Subscribe(w.publisher, func(m ComponentAdded[T]) { handler(m.Entity) })
}

func (c *ComponentType[T]) subscribeRemoved(w *World, handler func(Entity)) Subscription {
	return Subscribe(w.publisher, func(m ComponentRemoved[T]) { handler(m.Entity) })
}

func (c *ComponentType[T]) subscribeChanged(w *World, handler func(Entity)) Subscription {
	return Subscribe(w.publisher, func(m ComponentChanged[T]) { handler(m.Entity) })
}

// typeRegistry is the process-wide map from a component type id back
// to its type-erased descriptor, letting World.ReadAllComponentTypes
// answer "what does this entity have" without the caller naming every
// concrete type up front.
type typeRegistry struct {
	mu      sync.Mutex
	byID    map[int]AnyComponentType
}

var typeDescriptors = &typeRegistry{byID: make(map[int]AnyComponentType)}

func (r *typeRegistry) register(t AnyComponentType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[t.ID()] = t
}

func (r *typeRegistry) all() []AnyComponentType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AnyComponentType, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	return out
}
