package serialize

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kelpforge/ecs"
)

// binaryFieldValue and binaryFieldSameAs discriminate a field record's
// kind: a plain encoded value, or an alias onto an earlier entity's
// slot for the same component type.
const (
	binaryFieldValue  = int32(0)
	binaryFieldSameAs = int32(1)
)

type binaryField struct {
	name   string
	sameAs bool
	value  string
	refIdx int32
}

// WriteBinary writes entities to w as a length-prefixed binary stream:
// per entity, its version, then a count of present components, then
// for each one a kind tag, a name length, name bytes, and either a
// value length and value bytes (kind value) or a referenced entity
// index (kind sameAs). Values are still routed through each Codec's
// string Encode, so binary and text share exactly one source of truth
// per component type; only the framing differs. Two entities sharing a
// slot via SetSameAs round-trip as a sameAs field rather than two
// independent values.
func WriteBinary(w io.Writer, reg *Registry, world *ecs.World, entities []ecs.Entity) error {
	names := reg.names()
	if err := binary.Write(w, binary.LittleEndian, int32(len(entities))); err != nil {
		return err
	}
	slotOwners := make(map[string]map[int32]int32)
	for idx, e := range entities {
		if err := binary.Write(w, binary.LittleEndian, e.Version); err != nil {
			return err
		}
		var fields []binaryField
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
				owners = make(map[int32]int32)
				slotOwners[name] = owners
			}
			if owner, shared := owners[slot]; shared {
				fields = append(fields, binaryField{name: name, sameAs: true, refIdx: owner})
				continue
			}
			value, has := codec.encode(world, e)
			if !has {
				continue
			}
			owners[slot] = int32(idx)
			fields = append(fields, binaryField{name: name, value: value})
		}
		if err := binary.Write(w, binary.LittleEndian, int32(len(fields))); err != nil {
			return err
		}
		for _, f := range fields {
			kind := binaryFieldValue
			if f.sameAs {
				kind = binaryFieldSameAs
			}
			if err := binary.Write(w, binary.LittleEndian, kind); err != nil {
				return err
			}
			if err := writeLengthPrefixed(w, f.name); err != nil {
				return err
			}
			if f.sameAs {
				if err := binary.Write(w, binary.LittleEndian, f.refIdx); err != nil {
					return err
				}
				continue
			}
			if err := writeLengthPrefixed(w, f.value); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadBinary parses a stream written by WriteBinary, creating one
// fresh entity per record, setting each value field it names, and
// aliasing each sameAs field onto the entity its index refers to.
func ReadBinary(r io.Reader, reg *Registry, world *ecs.World) ([]ecs.Entity, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	entities := make([]ecs.Entity, 0, count)
	for i := int32(0); i < count; i++ {
		var version int16
		if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
			return nil, err
		}
		e, err := world.CreateEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)

		var fieldCount int32
		if err := binary.Read(r, binary.LittleEndian, &fieldCount); err != nil {
			return nil, err
		}
		for f := int32(0); f < fieldCount; f++ {
			var kind int32
			if err := binary.Read(r, binary.LittleEndian, &kind); err != nil {
				return nil, err
			}
			name, err := readLengthPrefixed(r)
			if err != nil {
				return nil, err
			}
			codec, ok := reg.codecFor(name)
			if !ok {
				return nil, ecs.SerializationError{Msg: fmt.Sprintf("unknown component type %q", name)}
			}
			if kind == binaryFieldSameAs {
				var refIdx int32
				if err := binary.Read(r, binary.LittleEndian, &refIdx); err != nil {
					return nil, err
				}
				if int(refIdx) >= len(entities) {
					return nil, ecs.SerializationError{Msg: fmt.Sprintf("ComponentSameAs references unknown entity %d", refIdx)}
				}
				if err := codec.sameAs(world, e, entities[refIdx]); err != nil {
					return nil, ecs.SerializationError{Msg: err.Error()}
				}
				continue
			}
			value, err := readLengthPrefixed(r)
			if err != nil {
				return nil, err
			}
			if err := codec.decode(world, e, value); err != nil {
				return nil, ecs.SerializationError{Msg: err.Error()}
			}
		}
	}
	return entities, nil
}

func writeLengthPrefixed(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readLengthPrefixed(r io.Reader) (string, error) {
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
