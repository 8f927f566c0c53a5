package ecs

import "testing"

func TestEnableDisableEntity(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	e, _ := w.CreateEntity()
	if !w.IsEnabled(e) {
		t.Fatal("freshly created entity should start enabled")
	}

	if err := w.DisableEntity(e); err != nil {
		t.Fatal(err)
	}
	if w.IsEnabled(e) {
		t.Fatal("disabled entity should report disabled")
	}
	if !w.IsAlive(e) {
		t.Fatal("disabling must not dispose the entity")
	}

	if err := w.EnableEntity(e); err != nil {
		t.Fatal(err)
	}
	if !w.IsEnabled(e) {
		t.Fatal("re-enabled entity should report enabled")
	}
}

func TestMaxEntitiesError(t *testing.T) {
	w, err := NewWorld(1)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if _, err := w.CreateEntity(); err != nil {
		t.Fatal(err)
	}
	_, err = w.CreateEntity()
	if _, ok := err.(MaxEntitiesError); !ok {
		t.Fatalf("expected MaxEntitiesError, got %v", err)
	}
}

func TestLockDefersDispose(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	e, _ := w.CreateEntity()
	w.Lock()
	if err := w.DisposeEntity(e); err != nil {
		t.Fatal(err)
	}
	if !e.IsAlive() {
		t.Fatal("dispose should be deferred while the world is locked")
	}
	w.Unlock()
	if e.IsAlive() {
		t.Fatal("dispose should apply once the world unlocks")
	}
}

func TestSetParentCallsCallbackOnDispose(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	parent, _ := w.CreateEntity()
	child, _ := w.CreateEntity()

	var notified Entity
	err = w.SetParent(child, parent, func(c Entity) { notified = c })
	if err != nil {
		t.Fatal(err)
	}

	if err := w.DisposeEntity(parent); err != nil {
		t.Fatal(err)
	}
	if notified != child {
		t.Fatalf("expected callback with child %v, got %v", child, notified)
	}
}

func TestSetParentDuplicateErrors(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	parent, _ := w.CreateEntity()
	child, _ := w.CreateEntity()

	if err := w.SetParent(child, parent, nil); err != nil {
		t.Fatal(err)
	}
	err = w.SetParent(child, parent, nil)
	if _, ok := err.(EntityRelationError); !ok {
		t.Fatalf("expected EntityRelationError, got %v", err)
	}
}

func TestDisposeRemovesComponents(t *testing.T) {
	w, err := NewWorld(8)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	position := NewComponentType[Position]()
	e, _ := w.CreateEntity()
	Set(w, position, e, Position{X: 1, Y: 1})

	if err := w.DisposeEntity(e); err != nil {
		t.Fatal(err)
	}
	if Has(w, position, e) {
		t.Fatal("disposing an entity should detach its components")
	}
}
