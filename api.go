package ecs

// Disposable is implemented by anything that holds a resource which
// must be released explicitly: publisher subscriptions and every query
// set.
type Disposable interface {
	Close() error
}

// QuerySet is the common surface EntitySet, EntitySortedSet, EntityMap,
// and EntityMultiMap all expose. Complete swaps the frame state a
// change-tracking filter (Added/Changed/Removed) depends on; it is a
// no-op for a set with no tracked message classes.
type QuerySet interface {
	Disposable
	Contains(Entity) bool
	Count() int
	Complete()
}
