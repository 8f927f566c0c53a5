/*
Package ecs provides a data-oriented Entity-Component-System (ECS) core.

It stores heterogeneous component data keyed by lightweight entity
handles, supports live component-membership queries backed by
incremental indices, dispatches lifecycle messages to subscribers, and
offers serialization/cloning of the whole container.

Core Concepts:

  - Entity: a versioned handle (world id, entity id, version).
  - World: owns entity metadata, component pools, and the publisher.
  - ComponentType[T]: a process-wide token identifying a component type.
  - ComponentPool[T]: dense, per-world, per-type storage with ref-counted
    same-as aliasing and a zero-size "flag type" optimization.
  - Publisher: a per-world synchronous typed message bus.
  - EntitySet / EntitySortedSet / EntityMap / EntityMultiMap: incremental
    query indices driven by publisher messages and bitset filters.

Basic Usage:

	world, _ := ecs.NewWorld(1024)

	position := ecs.NewComponentType[Position]()
	velocity := ecs.NewComponentType[Velocity]()

	e, _ := world.CreateEntity()
	ecs.Set(world, position, e, Position{X: 1, Y: 2})
	ecs.Set(world, velocity, e, Velocity{X: 1, Y: 0})

	moving := ecs.NewEntitySet(world, ecs.NewFilter().With(position, velocity))
	defer moving.Close()

	for entity := range moving.Entities() {
		pos, _ := ecs.Get(world, position, entity)
		vel, _ := ecs.Get(world, velocity, entity)
		pos.X += vel.X
		pos.Y += vel.Y
	}

ecs is the underlying data-and-indexing engine for higher-level system
schedulers, serializers, and debug views, but also works standalone.
*/
package ecs
