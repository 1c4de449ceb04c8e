package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// TupleElement is one ordered slot of a tuple type (spec §3.1). Named and
// unnamed elements of otherwise identical type are NOT the same TypeID:
// Name participates in identity (spec §3.2 tuple-naming invariant).
type TupleElement struct {
	Type     TypeID
	Optional bool
	Rest     bool
	Name     Atom // NoAtom when unnamed
}

// TupleInfo stores the ordered element list for a tuple type.
type TupleInfo struct {
	Elems []TupleElement
}

func elemsEqual(a, b []TupleElement) bool {
	return slices.EqualFunc(a, b, func(x, y TupleElement) bool { return x == y })
}

// Tuple interns a tuple type from its ordered elements, preserving order and
// rest/optional/name flags exactly.
func (in *Interner) Tuple(elems []TupleElement) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		if in.types[id].Kind != KindTuple {
			continue
		}
		info, ok := in.TupleInfo(id)
		if ok && elemsEqual(info.Elems, elems) {
			return id
		}
	}
	slot := in.appendTupleInfo(elems)
	return in.internRaw(Type{Kind: KindTuple, Payload: slot})
}

// TupleInfo returns the element list for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple || int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[tt.Payload], true
}

func (in *Interner) appendTupleInfo(elems []TupleElement) uint32 {
	cloned := make([]TupleElement, len(elems))
	copy(cloned, elems)
	in.tuples = append(in.tuples, TupleInfo{Elems: cloned})
	slot, err := safecast.Conv[uint32](len(in.tuples) - 1)
	if err != nil {
		panic(fmt.Errorf("types: tuple info overflow: %w", err))
	}
	return slot
}

// Array interns T[] (spec §3.1 Array).
func (in *Interner) Array(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindArray, Elem: elem})
}

// Readonly wraps a type in the Readonly modifier, preserving semantics while
// carrying the modifier flag (spec §3.1).
func (in *Interner) Readonly(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindReadonly, Elem: elem})
}

// NoInfer wraps a type to block distribution/inference through it.
func (in *Interner) NoInfer(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindNoInfer, Elem: elem})
}

// KeyOf interns `keyof T`.
func (in *Interner) KeyOf(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindKeyOf, Elem: elem})
}
