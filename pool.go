package ecs

import iter_util "github.com/TheBitDrifter/util/iter"

// ComponentPool[T] is dense, per-world, per-type component storage.
// Values live in a slot slice indexed by stable slot ids rather than by
// entity, so SetSameAs can point several entities at one slot without
// disturbing anyone else's slot when an unrelated entity is removed
// (removal deletes the entity's mapping and returns a slot whose last
// reference is gone to a free list; no other slot moves). The
// ref-counted slot sharing is grounded on the DangerosoDavo ecs
// sharedStore's entityToValue/valueToData/refCount scheme: many
// entities, one stored value, freed only when the last reference goes.
type ComponentPool[T any] struct {
	world    *World
	typeID   int
	typeName string
	isFlag   bool
	maxCount uint32

	slots      []T
	refCount   []int32
	free       []int32
	entitySlot map[int32]int32
}

func newComponentPool[T any](w *World, ct *ComponentType[T]) *ComponentPool[T] {
	p := &ComponentPool[T]{
		world:      w,
		typeID:     ct.id,
		typeName:   ct.name,
		isFlag:     ct.isFlag,
		entitySlot: make(map[int32]int32),
	}
	if p.isFlag {
		// A flag type carries no per-entity data, so every holder shares
		// the single slot 0 rather than consuming one slot each.
		p.maxCount = 1
	}
	return p
}

func getPool[T any](w *World, ct *ComponentType[T]) *ComponentPool[T] {
	w.mu.Lock()
	defer w.mu.Unlock()
	if existing, ok := w.pools[ct.id]; ok {
		return existing.(*ComponentPool[T])
	}
	p := newComponentPool(w, ct)
	w.pools[ct.id] = p
	return p
}

func (p *ComponentPool[T]) allocateSlot(value T) int32 {
	if n := len(p.free); n > 0 {
		slot := p.free[n-1]
		p.free = p.free[:n-1]
		p.slots[slot] = value
		p.refCount[slot] = 0
		return slot
	}
	p.slots = append(p.slots, value)
	p.refCount = append(p.refCount, 0)
	return int32(len(p.slots) - 1)
}

// set writes value for entity, creating a new exclusive slot if entity
// has none, or detaching entity from a shared slot into its own slot if
// it was aliased via SetSameAs. Returns true if this is a brand-new
// attachment (ComponentAdded) rather than an overwrite (ComponentChanged).
func (p *ComponentPool[T]) set(entity Entity, value T) bool {
	eid := entity.EntityID
	if p.isFlag {
		return p.setFlag(eid, value)
	}
	if slot, ok := p.entitySlot[eid]; ok {
		if p.refCount[slot] <= 1 {
			p.slots[slot] = value
			return false
		}
		p.refCount[slot]--
		newSlot := p.allocateSlot(value)
		p.refCount[newSlot] = 1
		p.entitySlot[eid] = newSlot
		return false
	}
	if p.maxCount > 0 && uint32(len(p.entitySlot)) >= p.maxCount {
		logWarn("component pool full", "type", p.typeName, "max", p.maxCount)
		return false
	}
	slot := p.allocateSlot(value)
	p.refCount[slot] = 1
	p.entitySlot[eid] = slot
	return true
}

// setFlag writes value into the single shared slot 0 every flag holder
// aliases, bumping its ref count for a new holder without ever growing
// p.slots past length one.
func (p *ComponentPool[T]) setFlag(eid int32, value T) bool {
	if len(p.slots) == 0 {
		p.slots = append(p.slots, value)
		p.refCount = append(p.refCount, 0)
	} else {
		p.slots[0] = value
	}
	if _, ok := p.entitySlot[eid]; ok {
		return false
	}
	p.refCount[0]++
	p.entitySlot[eid] = 0
	return true
}

// setSameAs aliases entity to reference's slot, incrementing its
// ref count. If entity already carries this component, its previous
// slot is released first.
func (p *ComponentPool[T]) setSameAs(entity, reference Entity) error {
	refSlot, ok := p.entitySlot[reference.EntityID]
	if !ok {
		return MissingComponentError{Entity: reference, Type: p.typeName}
	}
	if old, ok := p.entitySlot[entity.EntityID]; ok {
		p.release(old)
	}
	p.refCount[refSlot]++
	p.entitySlot[entity.EntityID] = refSlot
	return nil
}

// release drops one reference from slot, freeing it once the count
// reaches zero.
func (p *ComponentPool[T]) release(slot int32) {
	p.refCount[slot]--
	if p.refCount[slot] <= 0 {
		var zero T
		p.slots[slot] = zero
		if !p.isFlag {
			p.free = append(p.free, slot)
		}
	}
}

// remove detaches entity's component, if any. Reports whether it had one.
func (p *ComponentPool[T]) remove(entity Entity) bool {
	slot, ok := p.entitySlot[entity.EntityID]
	if !ok {
		return false
	}
	delete(p.entitySlot, entity.EntityID)
	p.release(slot)
	return true
}

func (p *ComponentPool[T]) get(entity Entity) (*T, bool) {
	slot, ok := p.entitySlot[entity.EntityID]
	if !ok {
		return nil, false
	}
	return &p.slots[slot], true
}

func (p *ComponentPool[T]) has(entity Entity) bool {
	_, ok := p.entitySlot[entity.EntityID]
	return ok
}

func (p *ComponentPool[T]) count() int {
	return len(p.entitySlot)
}

// removeEntity drops entity's slot without publishing, for World's
// dispose path which publishes a single EntityDisposed instead of a
// ComponentRemoved per pool.
func (p *ComponentPool[T]) removeEntity(entity Entity) {
	p.remove(entity)
}

// optimize drops trailing free slots so the dense array does not carry
// unbounded slack after heavy churn.
func (p *ComponentPool[T]) optimize() {
	for len(p.free) > 0 {
		last := int32(len(p.slots) - 1)
		idx := -1
		for i, f := range p.free {
			if f == last {
				idx = i
				break
			}
		}
		if idx == -1 {
			break
		}
		p.free = append(p.free[:idx], p.free[idx+1:]...)
		p.slots = p.slots[:last]
		p.refCount = p.refCount[:last]
	}
}

// Set attaches value to entity, publishing ComponentAdded[T] on first
// attachment or ComponentChanged[T] on overwrite.
func Set[T any](w *World, ct *ComponentType[T], entity Entity, value T) error {
	if !entity.IsAlive() || entity.WorldID != w.id {
		return InvalidHandleError{Entity: entity}
	}
	pool := getPool(w, ct)
	added := pool.set(entity, value)
	if !added && !pool.has(entity) {
		return MaxComponentsError{Type: ct.name, Max: pool.maxCount}
	}
	info := w.infoFor(entity)
	info.components.Mark(ct.id)
	if added {
		Publish(w.publisher, ComponentAdded[T]{Entity: entity})
	} else {
		Publish(w.publisher, ComponentChanged[T]{Entity: entity})
	}
	return nil
}

// SetSameAs aliases entity onto reference's existing T, sharing the
// underlying storage until either is reassigned or removed.
func SetSameAs[T any](w *World, ct *ComponentType[T], entity, reference Entity) error {
	if !entity.IsAlive() || entity.WorldID != w.id {
		return InvalidHandleError{Entity: entity}
	}
	if reference.WorldID != w.id {
		return ForeignEntityError{Entity: entity, Reference: reference}
	}
	pool := getPool(w, ct)
	if err := pool.setSameAs(entity, reference); err != nil {
		return err
	}
	info := w.infoFor(entity)
	info.components.Mark(ct.id)
	Publish(w.publisher, ComponentAdded[T]{Entity: entity})
	return nil
}

// Get returns a pointer to entity's T, for in-place mutation, along
// with whether it has one.
func Get[T any](w *World, ct *ComponentType[T], entity Entity) (*T, bool) {
	pool := getPool(w, ct)
	return pool.get(entity)
}

// Has reports whether entity carries a T.
func Has[T any](w *World, ct *ComponentType[T], entity Entity) bool {
	pool := getPool(w, ct)
	return pool.has(entity)
}

// Remove detaches entity's T, publishing ComponentRemoved[T] if it had
// one.
func Remove[T any](w *World, ct *ComponentType[T], entity Entity) error {
	pool := getPool(w, ct)
	if !pool.remove(entity) {
		return nil
	}
	info := w.infoFor(entity)
	info.components.Unmark(ct.id)
	Publish(w.publisher, ComponentRemoved[T]{Entity: entity})
	return nil
}

// NotifyChanged re-publishes ComponentChanged[T] for entity without
// modifying the stored value, for callers that mutated it in place
// through a pointer returned by Get.
func NotifyChanged[T any](w *World, ct *ComponentType[T], entity Entity) error {
	pool := getPool(w, ct)
	if !pool.has(entity) {
		return MissingComponentError{Entity: entity, Type: ct.name}
	}
	Publish(w.publisher, ComponentChanged[T]{Entity: entity})
	return nil
}

// SetMaxComponentCount caps how many entities may simultaneously carry
// a T. A subsequent Set that would attach a T to one more entity beyond
// the cap returns MaxComponentsError and leaves that entity without a T.
func SetMaxComponentCount[T any](w *World, ct *ComponentType[T], max uint32) {
	pool := getPool(w, ct)
	pool.maxCount = max
}

// SlotOf returns the internal storage slot entity's T currently
// occupies. Two entities reporting the same slot for the same type are
// sharing storage via SetSameAs; the serializer uses this to detect and
// preserve that sharing across a round-trip without reaching into the
// pool itself.
func SlotOf[T any](w *World, ct *ComponentType[T], entity Entity) (int32, bool) {
	pool := getPool(w, ct)
	slot, ok := pool.entitySlot[entity.EntityID]
	return slot, ok
}

// GetAll returns every entity currently carrying a T. It is a
// point-in-time snapshot, grounded on the same iter.Seq-collection idiom
// the teacher uses for ElementTypes.
func GetAll[T any](w *World, ct *ComponentType[T]) []Entity {
	pool := getPool(w, ct)
	return iter_util.Collect(func(yield func(Entity) bool) {
		for eid := range pool.entitySlot {
			e, ok := w.entityFor(eid)
			if !ok {
				continue
			}
			if !yield(e) {
				return
			}
		}
	})
}
