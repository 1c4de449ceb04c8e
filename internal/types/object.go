package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Visibility mirrors the member-visibility modifiers a structural property
// can carry (public is the default; private/protected matter for nominal
// class merging but never affect structural assignability here).
type Visibility uint8

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
	VisibilityProtected
)

// PropertyInfo describes one named member of an object/callable shape
// (spec §3.1).
type PropertyInfo struct {
	Name            Atom
	ReadType        TypeID
	WriteType       TypeID // == ReadType unless the property has a distinct setter type
	Optional        bool
	Readonly        bool
	IsMethod        bool
	Visibility      Visibility
	DeclaringParent Atom // which merged interface declaration contributed this member; NoAtom if not merged
}

// IndexSignature describes `[key: K]: V` (spec §3.1).
type IndexSignature struct {
	KeyType   TypeID
	ValueType TypeID
	Readonly  bool
}

// ObjectShapeFlags captures shape-level bits that don't belong to any one
// property (currently unused by the core itself but reserved per spec §3.1
// "flags" field so callers can stash nominal-vs-fresh distinctions).
type ObjectShapeFlags uint8

// ObjectShape is the side-table entry for a structural object type
// (spec §3.1).
type ObjectShape struct {
	Properties  []PropertyInfo
	StringIndex *IndexSignature
	NumberIndex *IndexSignature
	Flags       ObjectShapeFlags
}

func cloneProps(props []PropertyInfo) []PropertyInfo {
	if len(props) == 0 {
		return nil
	}
	out := make([]PropertyInfo, len(props))
	copy(out, props)
	return out
}

func cloneIndex(idx *IndexSignature) *IndexSignature {
	if idx == nil {
		return nil
	}
	cp := *idx
	return &cp
}

func shapeEqual(a, b ObjectShape) bool {
	if len(a.Properties) != len(b.Properties) || a.Flags != b.Flags {
		return false
	}
	for i := range a.Properties {
		if a.Properties[i] != b.Properties[i] {
			return false
		}
	}
	if (a.StringIndex == nil) != (b.StringIndex == nil) {
		return false
	}
	if a.StringIndex != nil && *a.StringIndex != *b.StringIndex {
		return false
	}
	if (a.NumberIndex == nil) != (b.NumberIndex == nil) {
		return false
	}
	if a.NumberIndex != nil && *a.NumberIndex != *b.NumberIndex {
		return false
	}
	return true
}

// Object interns a plain structural object shape (properties only).
func (in *Interner) Object(properties []PropertyInfo) TypeID {
	return in.ObjectWithIndex(ObjectShape{Properties: properties})
}

// ObjectWithIndex interns an object shape that may additionally carry
// string/number index signatures.
func (in *Interner) ObjectWithIndex(shape ObjectShape) TypeID {
	candidate := ObjectShape{
		Properties:  cloneProps(shape.Properties),
		StringIndex: cloneIndex(shape.StringIndex),
		NumberIndex: cloneIndex(shape.NumberIndex),
		Flags:       shape.Flags,
	}
	for id := TypeID(1); int(id) < len(in.types); id++ {
		if in.types[id].Kind != KindObject {
			continue
		}
		existing, ok := in.ObjectShape(id)
		if ok && shapeEqual(*existing, candidate) {
			return id
		}
	}
	slot := in.appendObjectShape(candidate)
	return in.internRaw(Type{Kind: KindObject, Payload: slot})
}

// ObjectShape reads back the shape for an object TypeID.
func (in *Interner) ObjectShape(id TypeID) (*ObjectShape, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindObject || int(tt.Payload) >= len(in.objectShapes) {
		return nil, false
	}
	return &in.objectShapes[tt.Payload], true
}

func (in *Interner) appendObjectShape(shape ObjectShape) uint32 {
	in.objectShapes = append(in.objectShapes, shape)
	slot, err := safecast.Conv[uint32](len(in.objectShapes) - 1)
	if err != nil {
		panic(fmt.Errorf("types: object shape overflow: %w", err))
	}
	return slot
}
