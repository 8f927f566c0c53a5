package ecs

// EntityMap indexes entities by the value of one comparable component,
// using SimpleCache as its backing store. It assumes the component
// value is unique among members; a second entity that sets the same
// value displaces the first from the index, matching how a Set on a
// real key-like component (a name, a slot id) is expected to behave.
type EntityMap[K comparable] struct {
	world *World
	ct    *ComponentType[K]
	cache *SimpleCache[K, Entity]
	subs  []Subscription
}

// NewEntityMap builds a query index over w keyed by ct's value.
func NewEntityMap[K comparable](w *World, ct *ComponentType[K]) *EntityMap[K] {
	m := &EntityMap[K]{
		world: w,
		ct:    ct,
		cache: NewSimpleCache[K, Entity](0),
	}
	m.subs = append(m.subs,
		ct.subscribeAdded(w, m.reindex),
		ct.subscribeChanged(w, m.reindex),
		ct.subscribeRemoved(w, m.unindex),
		Subscribe(w.publisher, func(msg EntityDisposed) { m.unindex(msg.Entity) }),
	)
	for _, e := range GetAll(w, ct) {
		m.reindex(e)
	}
	w.registerQuerySet(m)
	return m
}

func (m *EntityMap[K]) reindex(e Entity) {
	value, ok := Get(m.world, m.ct, e)
	if !ok {
		return
	}
	m.unindex(e)
	m.removeByValue(*value)
	m.cache.Register(*value, e)
}

func (m *EntityMap[K]) removeByValue(key K) {
	m.cache.Unregister(key)
}

func (m *EntityMap[K]) unindex(e Entity) {
	for _, k := range m.cache.Keys() {
		if existing, ok := m.cache.Get(k); ok && *existing == e {
			m.cache.Unregister(k)
			return
		}
	}
}

// Lookup returns the entity currently registered under key, if any.
func (m *EntityMap[K]) Lookup(key K) (Entity, bool) {
	e, ok := m.cache.Get(key)
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Contains reports whether e is currently indexed under some key.
func (m *EntityMap[K]) Contains(e Entity) bool {
	for _, k := range m.cache.Keys() {
		if existing, ok := m.cache.Get(k); ok && *existing == e {
			return true
		}
	}
	return false
}

// Count returns the number of indexed entities.
func (m *EntityMap[K]) Count() int {
	return m.cache.Len()
}

// Complete is a no-op: EntityMap has no change-tracking variant, its
// index is always current. It exists to satisfy QuerySet.
func (m *EntityMap[K]) Complete() {}

// Close unsubscribes from every lifecycle message this index tracks.
func (m *EntityMap[K]) Close() error {
	for _, s := range m.subs {
		s.Close()
	}
	m.subs = nil
	return nil
}

var _ QuerySet = &EntityMap[int]{}
