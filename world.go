package ecs

import "sync"

// optimizable is implemented by anything World.Optimize should give a
// chance to compact, notably every ComponentPool[T].
type optimizable interface {
	optimize()
}

type pendingParentCallback struct {
	child Entity
	fn    EntityDestroyCallback
}

// World owns entity metadata, every component pool registered against
// it, and its own Publisher. Entities from one World are never valid
// against another: Entity.WorldID pins a handle to the world that
// issued it.
type World struct {
	id int16
	mu sync.RWMutex

	publisher *Publisher

	maxEntities int
	infos       []EntityInfo
	free        []int32

	pools map[int]any

	locked        bool
	disposeQueue  []Entity
	parentCBs     map[int32][]pendingParentCallback
	querySets     []queryMaintainer
}

// queryMaintainer is the subset of EntitySet/EntitySortedSet/EntityMap's
// surface World needs to close them on world teardown.
type queryMaintainer interface {
	Disposable
}

// NewWorld creates a World with room for max entities. max <= 0 falls
// back to Config.DefaultMaxEntities.
func NewWorld(max int) (*World, error) {
	if max <= 0 {
		max = Config.DefaultMaxEntities
	}
	w := &World{
		maxEntities: max,
		pools:       make(map[int]any),
		parentCBs:   make(map[int32][]pendingParentCallback),
	}
	w.publisher = newPublisher()
	w.id = registry.register(w)
	logInfo("world created", "id", w.id, "maxEntities", max)
	return w, nil
}

// Close releases every query set registered against w and removes it
// from the process-wide registry. Entities and handles from a closed
// world report not-alive.
func (w *World) Close() error {
	w.mu.Lock()
	sets := w.querySets
	w.querySets = nil
	w.mu.Unlock()
	for _, s := range sets {
		s.Close()
	}
	registry.unregister(w.id)
	return nil
}

func (w *World) registerQuerySet(q queryMaintainer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.querySets = append(w.querySets, q)
}

// CreateEntity allocates a fresh handle, recycling a freed slot when
// one is available.
func (w *World) CreateEntity() (Entity, error) {
	w.mu.Lock()
	var id int32
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		if len(w.infos) >= w.maxEntities {
			w.mu.Unlock()
			return Entity{}, MaxEntitiesError{Max: w.maxEntities}
		}
		id = int32(len(w.infos))
		w.infos = append(w.infos, EntityInfo{version: 1})
	}
	info := &w.infos[id]
	info.live = true
	info.enabled = true
	info.components = newComponentEnum()
	info.parents = nil
	e := Entity{WorldID: w.id, EntityID: id, Version: info.version}
	w.mu.Unlock()

	Publish(w.publisher, EntityCreated{Entity: e})
	return e, nil
}

// nextVersion advances v, skipping the sentinel zero value that a
// wrapped int16 would otherwise eventually land back on.
func nextVersion(v int16) int16 {
	v++
	if v == 0 {
		v = 1
	}
	return v
}

// DisposeEntity frees entity's slot for reuse and detaches every
// component it carries. If the world is locked (mid-iteration), the
// dispose is queued and applied on Unlock instead.
func (w *World) DisposeEntity(entity Entity) error {
	if entity.WorldID != w.id {
		return InvalidHandleError{Entity: entity}
	}
	w.mu.Lock()
	if w.locked {
		w.disposeQueue = append(w.disposeQueue, entity)
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()
	return w.disposeNow(entity)
}

func (w *World) disposeNow(entity Entity) error {
	w.mu.Lock()
	if int(entity.EntityID) >= len(w.infos) {
		w.mu.Unlock()
		return InvalidHandleError{Entity: entity}
	}
	info := &w.infos[entity.EntityID]
	if !info.live || info.version != entity.Version {
		// Disposing an already-disposed handle is a silent no-op.
		w.mu.Unlock()
		return nil
	}
	info.live = false
	info.enabled = false
	info.version = nextVersion(info.version)
	w.free = append(w.free, entity.EntityID)
	callbacks := w.parentCBs[entity.EntityID]
	delete(w.parentCBs, entity.EntityID)
	pools := make([]any, 0, len(w.pools))
	for _, p := range w.pools {
		pools = append(pools, p)
	}
	w.mu.Unlock()

	for _, p := range pools {
		if r, ok := p.(interface{ removeEntity(Entity) }); ok {
			r.removeEntity(entity)
		}
	}
	for _, cb := range callbacks {
		cb.fn(cb.child)
	}
	Publish(w.publisher, EntityDisposed{Entity: entity})
	return nil
}

// EnqueueDisposeEntity behaves like DisposeEntity but never applies
// immediately, even if the world is currently unlocked; it is meant for
// handlers that want every dispose in a batch to happen after the
// triggering work finishes.
func (w *World) EnqueueDisposeEntity(entity Entity) {
	w.mu.Lock()
	w.disposeQueue = append(w.disposeQueue, entity)
	w.mu.Unlock()
}

// Lock suspends immediate disposal; Unlock flushes anything queued
// while locked. Systems that iterate a query set while possibly
// disposing entities should Lock for the duration.
func (w *World) Lock() {
	w.mu.Lock()
	w.locked = true
	w.mu.Unlock()
}

// Unlock resumes immediate disposal and flushes the queue built up
// while locked.
func (w *World) Unlock() {
	w.mu.Lock()
	w.locked = false
	queue := w.disposeQueue
	w.disposeQueue = nil
	w.mu.Unlock()
	for _, e := range queue {
		w.disposeNow(e)
	}
}

// IsAlive reports whether entity denotes a currently live slot with a
// matching version.
func (w *World) IsAlive(entity Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if int(entity.EntityID) >= len(w.infos) {
		return false
	}
	info := &w.infos[entity.EntityID]
	return info.live && info.version == entity.Version
}

// IsEnabled reports whether a live entity is currently enabled.
func (w *World) IsEnabled(entity Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if int(entity.EntityID) >= len(w.infos) {
		return false
	}
	info := &w.infos[entity.EntityID]
	return info.live && info.version == entity.Version && info.enabled
}

// EnableEntity re-enables a previously disabled entity, making it
// eligible for query sets again.
func (w *World) EnableEntity(entity Entity) error {
	if !w.IsAlive(entity) {
		return InvalidHandleError{Entity: entity}
	}
	w.mu.Lock()
	info := &w.infos[entity.EntityID]
	if info.enabled {
		w.mu.Unlock()
		return nil
	}
	info.enabled = true
	w.mu.Unlock()
	Publish(w.publisher, EntityEnabled{Entity: entity})
	return nil
}

// DisableEntity removes entity from every EntitySet and EntitySortedSet
// without disposing it; its components and version are untouched.
// EntityMap and EntityMultiMap keep indexing a disabled entity.
func (w *World) DisableEntity(entity Entity) error {
	if !w.IsAlive(entity) {
		return InvalidHandleError{Entity: entity}
	}
	w.mu.Lock()
	info := &w.infos[entity.EntityID]
	if !info.enabled {
		w.mu.Unlock()
		return nil
	}
	info.enabled = false
	w.mu.Unlock()
	Publish(w.publisher, EntityDisabled{Entity: entity})
	return nil
}

func (w *World) infoFor(entity Entity) *EntityInfo {
	return &w.infos[entity.EntityID]
}

func (w *World) entityFor(id int32) (Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if int(id) >= len(w.infos) {
		return Entity{}, false
	}
	info := &w.infos[id]
	if !info.live {
		return Entity{}, false
	}
	return Entity{WorldID: w.id, EntityID: id, Version: info.version}, true
}

// componentsOf returns a snapshot of entity's component membership for
// filter matching. Callers must not mutate the returned value.
func (w *World) componentsOf(entity Entity) ComponentEnum {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.infos[entity.EntityID].components
}

func (w *World) hasComponent(entity Entity, typeID int) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if int(entity.EntityID) >= len(w.infos) {
		return false
	}
	return w.infos[entity.EntityID].components.Contains(typeID)
}

// SetParent records parent as one of child's parents, invoking fn with
// child when parent is disposed. Registering the same (child, parent)
// pair twice is an error.
func (w *World) SetParent(child, parent Entity, fn EntityDestroyCallback) error {
	if child.WorldID != w.id || parent.WorldID != w.id {
		return ForeignEntityError{Entity: child, Reference: parent}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	info := &w.infos[child.EntityID]
	for _, p := range info.parents {
		if p == parent.EntityID {
			return EntityRelationError{Child: child, Parent: parent}
		}
	}
	info.parents = insertSorted(info.parents, parent.EntityID)
	if fn != nil {
		w.parentCBs[parent.EntityID] = append(w.parentCBs[parent.EntityID], pendingParentCallback{child: child, fn: fn})
	}
	return nil
}

// RemoveParent undoes a prior SetParent; it does not invoke fn.
func (w *World) RemoveParent(child, parent Entity) error {
	if child.WorldID != w.id || parent.WorldID != w.id {
		return ForeignEntityError{Entity: child, Reference: parent}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	info := &w.infos[child.EntityID]
	info.parents = removeSorted(info.parents, parent.EntityID)
	if cbs, ok := w.parentCBs[parent.EntityID]; ok {
		kept := cbs[:0]
		for _, cb := range cbs {
			if cb.child != child {
				kept = append(kept, cb)
			}
		}
		w.parentCBs[parent.EntityID] = kept
	}
	return nil
}

// Parents returns every parent currently registered against child.
func (w *World) Parents(child Entity) []Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	info := &w.infos[child.EntityID]
	out := make([]Entity, 0, len(info.parents))
	for _, pid := range info.parents {
		if e, ok := w.entityForLocked(pid); ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) entityForLocked(id int32) (Entity, bool) {
	if int(id) >= len(w.infos) {
		return Entity{}, false
	}
	info := &w.infos[id]
	if !info.live {
		return Entity{}, false
	}
	return Entity{WorldID: w.id, EntityID: id, Version: info.version}, true
}

// Optimize gives every registered component pool a chance to compact
// its free list. It is safe to call at any time; it never changes
// which entities carry which components.
func (w *World) Optimize() {
	w.mu.RLock()
	pools := make([]any, 0, len(w.pools))
	for _, p := range w.pools {
		pools = append(pools, p)
	}
	w.mu.RUnlock()
	for _, p := range pools {
		if o, ok := p.(optimizable); ok {
			o.optimize()
		}
	}
}

// ReadAllComponentTypes returns the type descriptor of every component
// currently attached to entity.
func (w *World) ReadAllComponentTypes(entity Entity) []AnyComponentType {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if int(entity.EntityID) >= len(w.infos) {
		return nil
	}
	info := &w.infos[entity.EntityID]
	var out []AnyComponentType
	for _, t := range typeDescriptors.all() {
		if info.components.Contains(t.ID()) {
			out = append(out, t)
		}
	}
	return out
}

func insertSorted(s []int32, v int32) []int32 {
	i := 0
	for i < len(s) && s[i] < v {
		i++
	}
	if i < len(s) && s[i] == v {
		return s
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func removeSorted(s []int32, v int32) []int32 {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
