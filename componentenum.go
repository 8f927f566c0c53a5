package ecs

import "github.com/TheBitDrifter/mask"

// bitsPerWord mirrors the width of a single mask.Mask word. The
// teacher's query.go marks, unmarks, and tests bit indices against one
// fixed-width mask.Mask; ComponentEnum grows that into a slice of words
// so the number of registered component types is not bounded by one
// mask's width.
const bitsPerWord = 64

// ComponentEnum is a growable bitset of component-type ids. It backs
// both an entity's component membership and a compiled Filter's
// with/without/either sets.
type ComponentEnum struct {
	words []mask.Mask
}

func newComponentEnum() ComponentEnum {
	return ComponentEnum{}
}

func wordFor(id int) int { return id / bitsPerWord }
func bitFor(id int) uint32 { return uint32(id % bitsPerWord) }

func (c *ComponentEnum) ensure(word int) {
	for len(c.words) <= word {
		c.words = append(c.words, mask.Mask{})
	}
}

// Mark sets the bit for id.
func (c *ComponentEnum) Mark(id int) {
	w := wordFor(id)
	c.ensure(w)
	c.words[w].Mark(bitFor(id))
}

// Unmark clears the bit for id.
func (c *ComponentEnum) Unmark(id int) {
	w := wordFor(id)
	if w >= len(c.words) {
		return
	}
	c.words[w].Unmark(bitFor(id))
}

// Contains reports whether the bit for id is set.
func (c *ComponentEnum) Contains(id int) bool {
	w := wordFor(id)
	if w >= len(c.words) {
		return false
	}
	var want mask.Mask
	want.Mark(bitFor(id))
	return c.words[w].ContainsAll(want)
}

// groupByWord splits ids into per-word scratch masks, built the same way
// query.go builds nodeMask: Mark every requested bit into a zero-value
// mask.Mask, then test that mask against the word it belongs to.
func groupByWord(ids []int) map[int]mask.Mask {
	grouped := make(map[int]mask.Mask)
	for _, id := range ids {
		w := wordFor(id)
		m := grouped[w]
		m.Mark(bitFor(id))
		grouped[w] = m
	}
	return grouped
}

// ContainsAll reports whether every id in ids is set in c.
func (c *ComponentEnum) ContainsAll(ids []int) bool {
	for w, want := range groupByWord(ids) {
		if w >= len(c.words) {
			return false
		}
		if !c.words[w].ContainsAll(want) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one id in ids is set in c.
func (c *ComponentEnum) ContainsAny(ids []int) bool {
	for w, want := range groupByWord(ids) {
		if w >= len(c.words) {
			continue
		}
		if c.words[w].ContainsAny(want) {
			return true
		}
	}
	return false
}

// ContainsNone reports whether none of ids is set in c.
func (c *ComponentEnum) ContainsNone(ids []int) bool {
	for w, want := range groupByWord(ids) {
		if w >= len(c.words) {
			continue
		}
		if !c.words[w].ContainsNone(want) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of c.
func (c ComponentEnum) Clone() ComponentEnum {
	words := make([]mask.Mask, len(c.words))
	copy(words, c.words)
	return ComponentEnum{words: words}
}
