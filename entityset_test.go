package ecs

import "testing"

type Velocity struct {
	X, Y float64
}

type Dead struct{}

func TestEntitySetWithFilter(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	velocity := NewComponentType[Velocity]()

	moving := NewEntitySet(w, NewFilter().With(position, velocity))
	defer moving.Close()

	e, _ := w.CreateEntity()
	if moving.Contains(e) {
		t.Fatal("entity with neither component should not match yet")
	}

	Set(w, position, e, Position{})
	if moving.Contains(e) {
		t.Fatal("entity with only one of two required components should not match")
	}

	Set(w, velocity, e, Velocity{})
	if !moving.Contains(e) {
		t.Fatal("entity with both required components should match")
	}

	Remove(w, velocity, e)
	if moving.Contains(e) {
		t.Fatal("removing a required component should drop membership")
	}
}

func TestEntitySetWithoutFilter(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	dead := NewComponentType[Dead]()

	alive := NewEntitySet(w, NewFilter().With(position).Without(dead))
	defer alive.Close()

	e, _ := w.CreateEntity()
	Set(w, position, e, Position{})
	if !alive.Contains(e) {
		t.Fatal("entity with position and no dead flag should match")
	}

	Set(w, dead, e, Dead{})
	if alive.Contains(e) {
		t.Fatal("adding the excluded flag should drop membership")
	}
}

func TestEntitySetWithEitherFilter(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	velocity := NewComponentType[Velocity]()

	either := NewEntitySet(w, NewFilter().WithEither(position, velocity))
	defer either.Close()

	e, _ := w.CreateEntity()
	if either.Contains(e) {
		t.Fatal("entity with neither should not match")
	}
	Set(w, velocity, e, Velocity{})
	if !either.Contains(e) {
		t.Fatal("entity with at least one of the either-group should match")
	}
}

func TestEntitySetDisableRemovesMembership(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	set := NewEntitySet(w, NewFilter().With(position))
	defer set.Close()

	e, _ := w.CreateEntity()
	Set(w, position, e, Position{})
	if !set.Contains(e) {
		t.Fatal("expected membership before disable")
	}

	w.DisableEntity(e)
	if set.Contains(e) {
		t.Fatal("a disabled entity should not be a query set member")
	}

	w.EnableEntity(e)
	if !set.Contains(e) {
		t.Fatal("re-enabling should restore membership")
	}
}

func TestEntitySetDisposeRemovesMembership(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	set := NewEntitySet(w, NewFilter().With(position))
	defer set.Close()

	e, _ := w.CreateEntity()
	Set(w, position, e, Position{})
	w.DisposeEntity(e)

	if set.Contains(e) {
		t.Fatal("a disposed entity should not remain a member")
	}
}

func TestEntitySetChangeTrackingClearsOnComplete(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	set := NewEntitySet(w, NewFilter().With(position).Changed(position))
	defer set.Close()

	e, _ := w.CreateEntity()
	Set(w, position, e, Position{X: 1})
	if set.Contains(e) {
		t.Fatal("the first Set fires ComponentAdded, not Changed, so it should not be a member")
	}

	Set(w, position, e, Position{X: 2})
	if !set.Contains(e) || set.Count() != 1 {
		t.Fatalf("expected exactly one member after a tracked change, got count %d", set.Count())
	}

	set.Complete()
	if set.Contains(e) || set.Count() != 0 {
		t.Fatal("Complete should clear members untouched since the last frame")
	}

	Set(w, position, e, Position{X: 3})
	if !set.Contains(e) {
		t.Fatal("a fresh change after Complete should repopulate membership")
	}
}

func TestEntitySetIterationSnapshot(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	set := NewEntitySet(w, NewFilter().With(position))
	defer set.Close()

	a, _ := w.CreateEntity()
	b, _ := w.CreateEntity()
	Set(w, position, a, Position{})
	Set(w, position, b, Position{})

	count := 0
	for range set.Entities() {
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 entities, got %d", count)
	}
}
