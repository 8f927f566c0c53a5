package ecs

// EntityMultiMap indexes entities by the value of one comparable
// component, allowing many entities to share a key. Buckets are plain
// slices with order-preserving removal; SimpleCache handles the key-to-bucket
// half of the index.
type EntityMultiMap[K comparable] struct {
	world   *World
	ct      *ComponentType[K]
	buckets *SimpleCache[K, []Entity]
	subs    []Subscription
}

// NewEntityMultiMap builds a query index over w keyed by ct's value,
// grouping every entity sharing a value into one bucket.
func NewEntityMultiMap[K comparable](w *World, ct *ComponentType[K]) *EntityMultiMap[K] {
	m := &EntityMultiMap[K]{
		world:   w,
		ct:      ct,
		buckets: NewSimpleCache[K, []Entity](0),
	}
	m.subs = append(m.subs,
		ct.subscribeAdded(w, m.add),
		ct.subscribeChanged(w, m.rekey),
		ct.subscribeRemoved(w, m.remove),
		Subscribe(w.publisher, func(msg EntityDisposed) { m.remove(msg.Entity) }),
	)
	for _, e := range GetAll(w, ct) {
		m.add(e)
	}
	w.registerQuerySet(m)
	return m
}

func (m *EntityMultiMap[K]) add(e Entity) {
	value, ok := Get(m.world, m.ct, e)
	if !ok {
		return
	}
	if idx, ok := m.buckets.GetIndex(*value); ok {
		bucket := m.buckets.GetItem(idx)
		*bucket = append(*bucket, e)
		return
	}
	m.buckets.Register(*value, []Entity{e})
}

func (m *EntityMultiMap[K]) rekey(e Entity) {
	m.remove(e)
	m.add(e)
}

func (m *EntityMultiMap[K]) remove(e Entity) {
	for _, k := range m.buckets.Keys() {
		idx, ok := m.buckets.GetIndex(k)
		if !ok {
			continue
		}
		bucket := m.buckets.GetItem(idx)
		for i, existing := range *bucket {
			if existing == e {
				*bucket = append((*bucket)[:i], (*bucket)[i+1:]...)
				if len(*bucket) == 0 {
					m.buckets.Unregister(k)
				}
				return
			}
		}
	}
}

// Lookup returns every entity currently registered under key.
func (m *EntityMultiMap[K]) Lookup(key K) []Entity {
	bucket, ok := m.buckets.Get(key)
	if !ok {
		return nil
	}
	return *bucket
}

// Contains reports whether e is currently indexed under some key.
func (m *EntityMultiMap[K]) Contains(e Entity) bool {
	for _, bucket := range m.buckets.All() {
		for _, existing := range bucket {
			if existing == e {
				return true
			}
		}
	}
	return false
}

// Count returns the number of indexed entities across every bucket.
func (m *EntityMultiMap[K]) Count() int {
	total := 0
	for _, bucket := range m.buckets.All() {
		total += len(bucket)
	}
	return total
}

// Complete is a no-op: EntityMultiMap has no change-tracking variant,
// its buckets are always current. It exists to satisfy QuerySet.
func (m *EntityMultiMap[K]) Complete() {}

// Close unsubscribes from every lifecycle message this index tracks.
func (m *EntityMultiMap[K]) Close() error {
	for _, s := range m.subs {
		s.Close()
	}
	m.subs = nil
	return nil
}

var _ QuerySet = &EntityMultiMap[int]{}
