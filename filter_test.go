package ecs

import "testing"

func TestFilterWithoutEitherExcludesOnlyWhenAllPresent(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	velocity := NewComponentType[Velocity]()

	set := NewEntitySet(w, NewFilter().WithoutEither(position, velocity))
	defer set.Close()

	neither, _ := w.CreateEntity()
	if !set.Contains(neither) {
		t.Fatal("an entity holding none of the group should match")
	}

	onlyPosition, _ := w.CreateEntity()
	Set(w, position, onlyPosition, Position{})
	if !set.Contains(onlyPosition) {
		t.Fatal("an entity holding only one of a two-type without-either group should still match")
	}

	both, _ := w.CreateEntity()
	Set(w, position, both, Position{})
	Set(w, velocity, both, Velocity{})
	if set.Contains(both) {
		t.Fatal("an entity holding every type in the without-either group should be excluded")
	}
}
