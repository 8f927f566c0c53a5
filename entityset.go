package ecs

// EntitySet is an incremental query index: it subscribes to every
// lifecycle message that could change its membership once, at
// construction, and maintains its member list from then on instead of
// re-scanning the World on every read. The backing store is the same
// dense-array-plus-index-map idiom as SimpleCache, keyed by EntityID.
//
// A filter carrying Added/Changed/Removed types switches the set into
// change-tracking mode: membership then holds only entities touched by
// one of those tracked messages since the last Complete call, and
// Complete empties it again for the next frame.
type EntitySet struct {
	world   *World
	filter  *compiledFilter
	members *SimpleCache[int32, Entity]
	subs    []Subscription

	trackAdded     []AnyComponentType
	trackChanged   []AnyComponentType
	trackRemoved   []AnyComponentType
	changeTracking bool
}

// NewEntitySet builds a query set over w matching f. A static filter
// (With/Without/WithEither/WithoutEither only) is seeded with every
// currently live, enabled, matching entity. A filter carrying Added,
// Changed, or Removed types starts empty, since nothing has been
// touched yet.
func NewEntitySet(w *World, f *Filter) *EntitySet {
	s := &EntitySet{
		world:        w,
		filter:       f.compile(),
		members:      NewSimpleCache[int32, Entity](0),
		trackAdded:   f.added,
		trackChanged: f.changed,
		trackRemoved: f.removed,
	}
	s.changeTracking = len(f.added) > 0 || len(f.changed) > 0 || len(f.removed) > 0
	s.subscribeCore()
	for _, t := range allWatchedTypes(f) {
		s.watch(t)
	}
	for _, t := range f.added {
		s.subs = append(s.subs, t.subscribeAdded(w, s.markTouched))
	}
	for _, t := range f.changed {
		s.subs = append(s.subs, t.subscribeChanged(w, s.markTouched))
	}
	for _, t := range f.removed {
		s.subs = append(s.subs, t.subscribeRemoved(w, s.markTouched))
	}
	if !s.changeTracking {
		s.seed()
	}
	w.registerQuerySet(s)
	return s
}

func allWatchedTypes(f *Filter) []AnyComponentType {
	var out []AnyComponentType
	out = append(out, f.with...)
	out = append(out, f.without...)
	for _, g := range f.withEither {
		out = append(out, g...)
	}
	for _, g := range f.withoutEither {
		out = append(out, g...)
	}
	return out
}

// watch maintains incremental static membership for a plain set. A
// change-tracking set's membership is driven entirely by markTouched,
// so watch is a no-op there.
func (s *EntitySet) watch(t AnyComponentType) {
	if s.changeTracking {
		return
	}
	s.subs = append(s.subs, t.subscribeAdded(s.world, s.reevaluate))
	s.subs = append(s.subs, t.subscribeRemoved(s.world, s.reevaluate))
}

func (s *EntitySet) subscribeCore() {
	w := s.world
	s.subs = append(s.subs,
		Subscribe(w.publisher, func(m EntityDisposed) { s.removeMember(m.Entity) }),
		Subscribe(w.publisher, func(m EntityDisabled) { s.removeMember(m.Entity) }),
	)
	if !s.changeTracking {
		s.subs = append(s.subs,
			Subscribe(w.publisher, func(m EntityEnabled) { s.reevaluate(m.Entity) }),
			Subscribe(w.publisher, func(m EntityCreated) { s.reevaluate(m.Entity) }),
		)
	}
}

func (s *EntitySet) seed() {
	w := s.world
	w.mu.RLock()
	n := len(w.infos)
	w.mu.RUnlock()
	for id := int32(0); id < int32(n); id++ {
		e, ok := w.entityFor(id)
		if !ok {
			continue
		}
		s.reevaluate(e)
	}
}

func (s *EntitySet) reevaluate(e Entity) {
	if !s.world.IsEnabled(e) {
		s.removeMember(e)
		return
	}
	enum := s.world.componentsOf(e)
	if s.filter.matches(&enum) {
		if _, ok := s.members.GetIndex(e.EntityID); !ok {
			s.members.Register(e.EntityID, e)
		}
		return
	}
	s.removeMember(e)
}

// markTouched records e as a member for the current frame when it is
// enabled and satisfies the filter, for a change-tracking set's Added,
// Changed, or Removed subscriptions.
func (s *EntitySet) markTouched(e Entity) {
	if !s.world.IsEnabled(e) {
		return
	}
	enum := s.world.componentsOf(e)
	if !s.filter.matches(&enum) {
		return
	}
	if _, ok := s.members.GetIndex(e.EntityID); !ok {
		s.members.Register(e.EntityID, e)
	}
}

func (s *EntitySet) removeMember(e Entity) {
	s.members.Unregister(e.EntityID)
}

// Contains reports whether e is currently a member.
func (s *EntitySet) Contains(e Entity) bool {
	_, ok := s.members.GetIndex(e.EntityID)
	return ok
}

// Count returns the number of current members.
func (s *EntitySet) Count() int {
	return s.members.Len()
}

// Entities returns an iterator over every current member. It iterates
// a copy of the member list taken when Entities is called, so it is
// safe to dispose entities while iterating: removals apply to the
// underlying cache, not to that copy.
func (s *EntitySet) Entities() func(func(Entity) bool) {
	snapshot := append([]Entity(nil), s.members.All()...)
	return func(yield func(Entity) bool) {
		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

// Complete swaps frame state for a change-tracking set: every member
// recorded since the previous Complete is cleared, so only entities
// touched in the next frame's Added/Changed/Removed events will show
// up until Complete runs again. It is a no-op for a set with no
// tracked message classes, whose membership is maintained incrementally
// instead.
func (s *EntitySet) Complete() {
	if !s.changeTracking {
		return
	}
	s.members = NewSimpleCache[int32, Entity](0)
}

// Close unsubscribes from every lifecycle message this set tracks.
// Implements Disposable.
func (s *EntitySet) Close() error {
	for _, sub := range s.subs {
		sub.Close()
	}
	s.subs = nil
	return nil
}

var _ QuerySet = &EntitySet{}
