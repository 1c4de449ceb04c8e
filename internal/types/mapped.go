package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Modifier is a mapped-type optional/readonly modifier: `+?`/`-?`/nothing or
// `+readonly`/`-readonly`/nothing (spec §3.1).
type Modifier uint8

const (
	ModifierNone Modifier = iota
	ModifierAdd
	ModifierRemove
)

// MappedRecord is `{ [ParameterName in Constraint as NameRemap]: ValueType }`
// with optional/readonly modifiers (spec §3.1, §4.3.3).
type MappedRecord struct {
	ParameterName     Atom
	Constraint        TypeID
	NameRemap         TypeID // NoTypeID if no `as` clause
	OptionalModifier  Modifier
	ReadonlyModifier  Modifier
	ValueType         TypeID
}

// Mapped interns a mapped-type record.
func (in *Interner) Mapped(rec MappedRecord) TypeID {
	for i := 1; i < len(in.mappedTypes); i++ {
		if in.mappedTypes[i] == rec {
			slot, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("types: mapped overflow: %w", err))
			}
			return in.Intern(Type{Kind: KindMapped, Payload: slot})
		}
	}
	in.mappedTypes = append(in.mappedTypes, rec)
	slot, err := safecast.Conv[uint32](len(in.mappedTypes) - 1)
	if err != nil {
		panic(fmt.Errorf("types: mapped overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindMapped, Payload: slot})
}

// MappedInfo reads back a mapped-type record.
func (in *Interner) MappedInfo(id TypeID) (*MappedRecord, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindMapped || int(tt.Payload) >= len(in.mappedTypes) {
		return nil, false
	}
	return &in.mappedTypes[tt.Payload], true
}
