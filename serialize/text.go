package serialize

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kelpforge/ecs"
)

// WriteText writes entities to w in a line-oriented text format:
//
//	Entity <n>
//	  <TypeName> <encoded value>
//	  ComponentSameAs <TypeName> <earlier entity's n>
//	  ...
//
// <n> is the entity's position in entities, the id ComponentSameAs
// lines reference back to. Only component types registered on reg are
// written; anything else an entity carries is silently skipped, the
// same way an unregistered message type is silently undelivered by a
// Publisher. Two entities sharing a slot via SetSameAs round-trip as a
// ComponentSameAs line rather than two independent values, so the
// shared storage survives deserialization.
func WriteText(w io.Writer, reg *Registry, world *ecs.World, entities []ecs.Entity) error {
	bw := bufio.NewWriter(w)
	names := reg.names()
	slotOwners := make(map[string]map[int32]int)
	for idx, e := range entities {
		if _, err := fmt.Fprintf(bw, "Entity %d\n", idx); err != nil {
			return err
		}
		for _, name := range names {
			codec, ok := reg.codecFor(name)
			if !ok {
				continue
			}
			slot, hasSlot := codec.slotOf(world, e)
			if !hasSlot {
				continue
			}
			owners := slotOwners[name]
			if owners == nil {
				owners = make(map[int32]int)
				slotOwners[name] = owners
			}
			if owner, shared := owners[slot]; shared {
				if _, err := fmt.Fprintf(bw, "  ComponentSameAs %s %d\n", name, owner); err != nil {
					return err
				}
				continue
			}
			value, has := codec.encode(world, e)
			if !has {
				continue
			}
			owners[slot] = idx
			if _, err := fmt.Fprintf(bw, "  %s %s\n", name, value); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadText parses a stream written by WriteText, creating one fresh
// entity per "Entity" line, setting each component line it names, and
// aliasing each ComponentSameAs line onto the entity its <n> refers to.
// The returned slice is in file order.
func ReadText(r io.Reader, reg *Registry, world *ecs.World) ([]ecs.Entity, error) {
	scanner := bufio.NewScanner(r)
	var entities []ecs.Entity
	byID := make(map[int]ecs.Entity)
	var current ecs.Entity
	haveCurrent := false
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if !strings.HasPrefix(text, " ") {
			fields := strings.Fields(text)
			if len(fields) < 2 || fields[0] != "Entity" {
				return nil, ecs.SerializationError{Line: line, Msg: "expected Entity header"}
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, ecs.SerializationError{Line: line, Msg: "malformed entity id"}
			}
			e, err := world.CreateEntity()
			if err != nil {
				return nil, err
			}
			current = e
			haveCurrent = true
			entities = append(entities, e)
			byID[id] = e
			continue
		}
		if !haveCurrent {
			return nil, ecs.SerializationError{Line: line, Msg: "component line before any Entity"}
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, ecs.SerializationError{Line: line, Msg: "malformed component line"}
		}
		if fields[0] == "ComponentSameAs" {
			if len(fields) < 3 {
				return nil, ecs.SerializationError{Line: line, Msg: "malformed ComponentSameAs line"}
			}
			name := fields[1]
			refID, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, ecs.SerializationError{Line: line, Msg: "malformed ComponentSameAs reference"}
			}
			reference, ok := byID[refID]
			if !ok {
				return nil, ecs.SerializationError{Line: line, Msg: fmt.Sprintf("ComponentSameAs references unknown entity %d", refID)}
			}
			codec, ok := reg.codecFor(name)
			if !ok {
				return nil, ecs.SerializationError{Line: line, Msg: fmt.Sprintf("unknown component type %q", name)}
			}
			if err := codec.sameAs(world, current, reference); err != nil {
				return nil, ecs.SerializationError{Line: line, Msg: err.Error()}
			}
			continue
		}
		name := fields[0]
		raw := strings.Join(fields[1:], " ")
		codec, ok := reg.codecFor(name)
		if !ok {
			return nil, ecs.SerializationError{Line: line, Msg: fmt.Sprintf("unknown component type %q", name)}
		}
		if err := codec.decode(world, current, raw); err != nil {
			return nil, ecs.SerializationError{Line: line, Msg: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entities, nil
}

// IntCodec is a convenience Codec for any component type underlain by
// a plain int, the common case for ids, counters, and similar.
func IntCodec[T ~int](ct *ecs.ComponentType[T]) Codec[T] {
	return Codec[T]{
		Type: ct,
		Encode: func(v T) string {
			return strconv.Itoa(int(v))
		},
		Decode: func(raw string) (T, error) {
			n, err := strconv.Atoi(raw)
			return T(n), err
		},
	}
}
