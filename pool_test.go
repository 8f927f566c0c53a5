package ecs

import "testing"

type Position struct {
	X, Y float64
}

type Tag struct{}

func TestSetAndGet(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	e, _ := w.CreateEntity()

	if err := Set(w, position, e, Position{X: 1, Y: 2}); err != nil {
		t.Fatal(err)
	}
	got, ok := Get(w, position, e)
	if !ok {
		t.Fatal("expected component to be present")
	}
	if *got != (Position{X: 1, Y: 2}) {
		t.Fatalf("unexpected value: %+v", *got)
	}
}

func TestSetOverwriteDoesNotDuplicate(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	e, _ := w.CreateEntity()

	Set(w, position, e, Position{X: 1, Y: 1})
	Set(w, position, e, Position{X: 2, Y: 2})

	got, _ := Get(w, position, e)
	if *got != (Position{X: 2, Y: 2}) {
		t.Fatalf("expected overwritten value, got %+v", *got)
	}
}

func TestRemoveComponent(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	e, _ := w.CreateEntity()
	Set(w, position, e, Position{X: 1, Y: 1})

	if err := Remove(w, position, e); err != nil {
		t.Fatal(err)
	}
	if Has(w, position, e) {
		t.Fatal("expected component to be removed")
	}
}

func TestSetSameAsAliasing(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	ref, _ := w.CreateEntity()
	alias, _ := w.CreateEntity()

	Set(w, position, ref, Position{X: 5, Y: 5})
	if err := SetSameAs(w, position, alias, ref); err != nil {
		t.Fatal(err)
	}

	got, ok := Get(w, position, alias)
	if !ok || *got != (Position{X: 5, Y: 5}) {
		t.Fatalf("alias should observe reference's value, got %+v ok=%v", got, ok)
	}

	// Removing the alias must not disturb the reference's value.
	Remove(w, position, alias)
	refValue, ok := Get(w, position, ref)
	if !ok || *refValue != (Position{X: 5, Y: 5}) {
		t.Fatal("removing an alias should not affect the aliased reference")
	}
}

func TestSetSameAsMissingReference(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	ref, _ := w.CreateEntity()
	alias, _ := w.CreateEntity()

	err = SetSameAs(w, position, alias, ref)
	if _, ok := err.(MissingComponentError); !ok {
		t.Fatalf("expected MissingComponentError, got %v", err)
	}
}

func TestFlagComponentIsZeroSize(t *testing.T) {
	tag := NewComponentType[Tag]()
	if !tag.IsFlag() {
		t.Fatal("a zero-size struct should be detected as a flag component")
	}
}

func TestFlagComponentSharesSingleSlot(t *testing.T) {
	w, err := NewWorld(2000)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	tag := NewComponentType[Tag]()
	entities := make([]Entity, 1000)
	for i := range entities {
		e, _ := w.CreateEntity()
		entities[i] = e
		if err := Set(w, tag, e, Tag{}); err != nil {
			t.Fatal(err)
		}
	}

	pool := getPool(w, tag)
	if len(pool.slots) != 1 {
		t.Fatalf("expected every holder to share one slot, got %d slots", len(pool.slots))
	}
	if pool.refCount[0] != 1000 {
		t.Fatalf("expected ref count 1000, got %d", pool.refCount[0])
	}
	for _, e := range entities {
		if !Has(w, tag, e) {
			t.Fatal("every holder should report Has==true")
		}
	}
}

func TestMaxComponentCount(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	SetMaxComponentCount(w, position, 1)

	a, _ := w.CreateEntity()
	b, _ := w.CreateEntity()

	Set(w, position, a, Position{X: 1, Y: 1})
	Set(w, position, b, Position{X: 2, Y: 2})

	if !Has(w, position, a) {
		t.Fatal("first entity under the cap should have kept its component")
	}
	if Has(w, position, b) {
		t.Fatal("second entity past the cap should not have gotten a component")
	}
}

func TestNotifyChanged(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	e, _ := w.CreateEntity()
	Set(w, position, e, Position{X: 1, Y: 1})

	seen := 0
	sub := Subscribe(w.publisher, func(m ComponentChanged[Position]) { seen++ })
	defer sub.Close()

	v, _ := Get(w, position, e)
	v.X = 9
	if err := NotifyChanged(w, position, e); err != nil {
		t.Fatal(err)
	}
	if seen != 1 {
		t.Fatalf("expected exactly one ComponentChanged, got %d", seen)
	}
}
