// Package serialize encodes and decodes a World's entities and
// components as text or binary streams. It is a client of ecs's
// public functions (Get, Set, SetSameAs, SlotOf), driven through a
// per-type Codec registry, and never reaches into a World's internals
// directly.
package serialize

import (
	"fmt"
	"sync"

	"github.com/kelpforge/ecs"
)

// Codec encodes and decodes one component type's value as a string.
// Register it against a Registry to make that type visible to both
// the text and binary writers.
type Codec[T any] struct {
	Type   *ecs.ComponentType[T]
	Encode func(T) string
	Decode func(string) (T, error)
}

// typeCodec is the type-erased form of Codec, closing over T so a
// Registry can dispatch by component name alone.
type typeCodec struct {
	typ    ecs.AnyComponentType
	encode func(w *ecs.World, e ecs.Entity) (string, bool)
	decode func(w *ecs.World, e ecs.Entity, raw string) error
	slotOf func(w *ecs.World, e ecs.Entity) (int32, bool)
	sameAs func(w *ecs.World, e, reference ecs.Entity) error
}

// Registry maps component type names to their codec, for a World
// serializer that must write and read concrete types without the
// caller hand-rolling a type switch.
type Registry struct {
	mu     sync.Mutex
	byName map[string]typeCodec
	order  []string
}

// NewRegistry returns an empty codec registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]typeCodec)}
}

// Register adds codec under its component type's name. Registering the
// same name twice panics: it is a programming error, caught at setup
// rather than silently overwritten mid-run.
func Register[T any](reg *Registry, codec Codec[T]) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	name := codec.Type.Name()
	if _, exists := reg.byName[name]; exists {
		panic(fmt.Sprintf("serialize: component type %q already registered", name))
	}
	reg.byName[name] = typeCodec{
		typ: codec.Type,
		encode: func(w *ecs.World, e ecs.Entity) (string, bool) {
			v, ok := ecs.Get(w, codec.Type, e)
			if !ok {
				return "", false
			}
			return codec.Encode(*v), true
		},
		decode: func(w *ecs.World, e ecs.Entity, raw string) error {
			v, err := codec.Decode(raw)
			if err != nil {
				return err
			}
			return ecs.Set(w, codec.Type, e, v)
		},
		slotOf: func(w *ecs.World, e ecs.Entity) (int32, bool) {
			return ecs.SlotOf(w, codec.Type, e)
		},
		sameAs: func(w *ecs.World, e, reference ecs.Entity) error {
			return ecs.SetSameAs(w, codec.Type, e, reference)
		},
	}
	reg.order = append(reg.order, name)
}

// names returns every registered type name in registration order, so
// encoded output is deterministic across runs.
func (reg *Registry) names() []string {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	out := make([]string, len(reg.order))
	copy(out, reg.order)
	return out
}

func (reg *Registry) codecFor(name string) (typeCodec, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	c, ok := reg.byName[name]
	return c, ok
}
