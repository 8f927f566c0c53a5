package ecs

import "fmt"

// InvalidHandleError reports an operation against a handle whose world
// id is unbound or whose version no longer matches the live slot.
type InvalidHandleError struct {
	Entity Entity
}

func (e InvalidHandleError) Error() string {
	return fmt.Sprintf("ecs: invalid entity handle %v", e.Entity)
}

// ForeignEntityError reports SetSameAs (or cloning) across worlds.
type ForeignEntityError struct {
	Entity, Reference Entity
}

func (e ForeignEntityError) Error() string {
	return fmt.Sprintf("ecs: entity %v and reference %v belong to different worlds", e.Entity, e.Reference)
}

// MissingComponentError reports SetSameAs against a reference lacking
// the component, or NotifyChanged against an entity lacking it.
type MissingComponentError struct {
	Entity Entity
	Type   string
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("ecs: entity %v has no component %s", e.Entity, e.Type)
}

// MaxComponentsError reports a full pool for a non-flag component type.
type MaxComponentsError struct {
	Type string
	Max  uint32
}

func (e MaxComponentsError) Error() string {
	return fmt.Sprintf("ecs: component pool %s is full (max %d)", e.Type, e.Max)
}

// MaxEntitiesError reports a world that has reached its entity cap.
type MaxEntitiesError struct {
	Max int
}

func (e MaxEntitiesError) Error() string {
	return fmt.Sprintf("ecs: world has reached its maximum entity count (%d)", e.Max)
}

// SerializationError reports an unknown type token, a malformed
// number, or a component encountered before any Entity line.
type SerializationError struct {
	Line int
	Msg  string
}

func (e SerializationError) Error() string {
	return fmt.Sprintf("ecs: serialization error at line %d: %s", e.Line, e.Msg)
}

// NullArgumentError reports a serializer or cloner given an absent
// stream or reader.
type NullArgumentError struct {
	Arg string
}

func (e NullArgumentError) Error() string {
	return fmt.Sprintf("ecs: nil argument: %s", e.Arg)
}

// EntityRelationError reports SetParent on an entity that already has
// the given parent, whether or not a destroy callback was bound.
type EntityRelationError struct {
	Child, Parent Entity
}

func (e EntityRelationError) Error() string {
	return fmt.Sprintf("ecs: entity %v already has parent %v", e.Child, e.Parent)
}
