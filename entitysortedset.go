package ecs

import "sort"

// EntitySortedSet layers an ordering over an EntitySet's membership,
// sorted by the value of one component. Order is recomputed on read
// rather than maintained incrementally on write: membership already
// tracks incrementally through EntitySet, and re-sorting a read-sized
// snapshot is cheap next to the bookkeeping a fully incremental sorted
// index would need for arbitrary less functions.
type EntitySortedSet[Comp any] struct {
	base *EntitySet
	ct   *ComponentType[Comp]
	less func(a, b Comp) bool
}

// NewEntitySortedSet builds a sorted query set over w matching f,
// ordered by ct's value using less.
func NewEntitySortedSet[Comp any](w *World, f *Filter, ct *ComponentType[Comp], less func(a, b Comp) bool) *EntitySortedSet[Comp] {
	return &EntitySortedSet[Comp]{
		base: NewEntitySet(w, f),
		ct:   ct,
		less: less,
	}
}

// Contains reports whether e is currently a member.
func (s *EntitySortedSet[Comp]) Contains(e Entity) bool {
	return s.base.Contains(e)
}

// Count returns the number of current members.
func (s *EntitySortedSet[Comp]) Count() int {
	return s.base.Count()
}

// Entities returns every member ordered by s.less applied to their ct
// value. Members that have since lost ct (a race against a concurrent
// removal) are skipped.
func (s *EntitySortedSet[Comp]) Entities() []Entity {
	var out []Entity
	for e := range s.base.Entities() {
		if !Has(s.base.world, s.ct, e) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		vi, iok := Get(s.base.world, s.ct, out[i])
		vj, jok := Get(s.base.world, s.ct, out[j])
		if !iok || !jok {
			return false
		}
		return s.less(*vi, *vj)
	})
	return out
}

// Complete delegates to the underlying EntitySet, swapping frame state
// when it was built from a change-tracking filter.
func (s *EntitySortedSet[Comp]) Complete() {
	s.base.Complete()
}

// Close implements Disposable by closing the underlying EntitySet.
func (s *EntitySortedSet[Comp]) Close() error {
	return s.base.Close()
}

var _ Disposable = &EntitySortedSet[int]{}

// EntitySortedSet also satisfies QuerySet through Contains, Count,
// Complete and Close; its Entities method returns a slice rather than
// the iterator EntitySet.Entities returns.
