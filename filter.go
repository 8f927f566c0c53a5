package ecs

// Filter is a builder for the membership test a query set compiles
// once, at construction, against a World. With/Without/WithEither/
// WithoutEither describe static component membership; Added/Changed/
// Removed mark types whose lifecycle messages a query set should track
// so callers can ask "what changed since I last looked" instead of
// re-scanning every member every tick.
type Filter struct {
	with          []AnyComponentType
	without       []AnyComponentType
	withEither    [][]AnyComponentType
	withoutEither [][]AnyComponentType
	added         []AnyComponentType
	changed       []AnyComponentType
	removed       []AnyComponentType
}

// NewFilter starts an empty filter, which matches every entity.
func NewFilter() *Filter {
	return &Filter{}
}

// With requires every listed type to be present.
func (f *Filter) With(types ...AnyComponentType) *Filter {
	f.with = append(f.with, types...)
	return f
}

// Without excludes entities carrying any of the listed types.
func (f *Filter) Without(types ...AnyComponentType) *Filter {
	f.without = append(f.without, types...)
	return f
}

// WithEither requires at least one of the listed types to be present.
// Calling it more than once ANDs the resulting groups together.
func (f *Filter) WithEither(types ...AnyComponentType) *Filter {
	f.withEither = append(f.withEither, types)
	return f
}

// WithoutEither excludes entities carrying every type in the listed
// group; an entity missing at least one of them still matches. Calling
// it more than once ANDs the exclusions together.
func (f *Filter) WithoutEither(types ...AnyComponentType) *Filter {
	f.withoutEither = append(f.withoutEither, types)
	return f
}

// Added marks types whose ComponentAdded message should surface through
// a query set's change-tracking drain.
func (f *Filter) Added(types ...AnyComponentType) *Filter {
	f.added = append(f.added, types...)
	return f
}

// Changed marks types whose ComponentChanged message should surface
// through a query set's change-tracking drain.
func (f *Filter) Changed(types ...AnyComponentType) *Filter {
	f.changed = append(f.changed, types...)
	return f
}

// Removed marks types whose ComponentRemoved message should surface
// through a query set's change-tracking drain.
func (f *Filter) Removed(types ...AnyComponentType) *Filter {
	f.removed = append(f.removed, types...)
	return f
}

// compiledFilter is the bit-id form of Filter. Query sets compile once
// at construction and test every entity against the compiled form, not
// the builder.
type compiledFilter struct {
	with          []int
	without       []int
	withEither    [][]int
	withoutEither [][]int
}

func toIDs(types []AnyComponentType) []int {
	ids := make([]int, len(types))
	for i, t := range types {
		ids[i] = t.ID()
	}
	return ids
}

func (f *Filter) compile() *compiledFilter {
	c := &compiledFilter{
		with:    toIDs(f.with),
		without: toIDs(f.without),
	}
	for _, group := range f.withEither {
		c.withEither = append(c.withEither, toIDs(group))
	}
	for _, group := range f.withoutEither {
		c.withoutEither = append(c.withoutEither, toIDs(group))
	}
	return c
}

func (c *compiledFilter) matches(enum *ComponentEnum) bool {
	if len(c.with) > 0 && !enum.ContainsAll(c.with) {
		return false
	}
	if len(c.without) > 0 && !enum.ContainsNone(c.without) {
		return false
	}
	for _, group := range c.withEither {
		if !enum.ContainsAny(group) {
			return false
		}
	}
	for _, group := range c.withoutEither {
		if enum.ContainsAll(group) {
			return false
		}
	}
	return true
}
