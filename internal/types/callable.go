package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// ParamInfo describes one parameter of a call/construct signature
// (spec §3.1).
type ParamInfo struct {
	Name     Atom // NoAtom for unnamed parameters (e.g. tuple-derived)
	Type     TypeID
	Optional bool
	Rest     bool
}

// CallSignature is one overload of a callable shape (spec §3.1). ThisType is
// NoTypeID when the signature has no explicit `this` parameter.
type CallSignature struct {
	TypeParams     []TypeID // TypeID of each KindTypeParameter this signature introduces
	Params         []ParamInfo
	ThisType       TypeID
	ReturnType     TypeID
	TypePredicate  *TypePredicate
	IsMethod       bool
}

// TypePredicate captures a `x is T` / `asserts x is T` return annotation.
type TypePredicate struct {
	ParamName Atom
	Type      TypeID
	Asserts   bool
}

// CallableShape is the side-table entry for a (possibly overloaded,
// possibly also constructible) callable type (spec §3.1).
type CallableShape struct {
	CallSignatures      []CallSignature
	ConstructSignatures []CallSignature
	Properties          []PropertyInfo
	StringIndex         *IndexSignature
	NumberIndex         *IndexSignature
}

func cloneSigs(sigs []CallSignature) []CallSignature {
	if len(sigs) == 0 {
		return nil
	}
	out := make([]CallSignature, len(sigs))
	for i, s := range sigs {
		out[i] = CallSignature{
			TypeParams:    cloneTypeArgs(s.TypeParams),
			Params:        append([]ParamInfo(nil), s.Params...),
			ThisType:      s.ThisType,
			ReturnType:    s.ReturnType,
			IsMethod:      s.IsMethod,
		}
		if s.TypePredicate != nil {
			pred := *s.TypePredicate
			out[i].TypePredicate = &pred
		}
	}
	return out
}

func sigEqual(a, b CallSignature) bool {
	if !slices.Equal(a.TypeParams, b.TypeParams) || a.ThisType != b.ThisType ||
		a.ReturnType != b.ReturnType || a.IsMethod != b.IsMethod ||
		!slices.Equal(a.Params, b.Params) {
		return false
	}
	if (a.TypePredicate == nil) != (b.TypePredicate == nil) {
		return false
	}
	if a.TypePredicate != nil && *a.TypePredicate != *b.TypePredicate {
		return false
	}
	return true
}

func sigsEqual(a, b []CallSignature) bool {
	return slices.EqualFunc(a, b, sigEqual)
}

func callableShapeEqual(a, b CallableShape) bool {
	if !sigsEqual(a.CallSignatures, b.CallSignatures) ||
		!sigsEqual(a.ConstructSignatures, b.ConstructSignatures) ||
		!slices.Equal(a.Properties, b.Properties) {
		return false
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

func cloneShapeFor(shape CallableShape) CallableShape {
	return CallableShape{
		CallSignatures:      cloneSigs(shape.CallSignatures),
		ConstructSignatures: cloneSigs(shape.ConstructSignatures),
		Properties:          cloneProps(shape.Properties),
		StringIndex:         cloneIndex(shape.StringIndex),
		NumberIndex:         cloneIndex(shape.NumberIndex),
	}
}

// Callable interns a multi-signature callable shape.
func (in *Interner) Callable(shape CallableShape) TypeID {
	candidate := cloneShapeFor(shape)
	for id := TypeID(1); int(id) < len(in.types); id++ {
		if in.types[id].Kind != KindCallable {
			continue
		}
		existing, ok := in.CallableShape(id)
		if ok && callableShapeEqual(*existing, candidate) {
			return id
		}
	}
	slot := in.appendCallableShape(candidate)
	return in.internRaw(Type{Kind: KindCallable, Payload: slot})
}

// Function interns a single-signature callable, kept as a distinct Kind from
// Callable so variance rules can special-case the common one-signature case
// (spec §3.2 "method-vs-function distinction").
func (in *Interner) Function(sig CallSignature) TypeID {
	shape := CallableShape{CallSignatures: []CallSignature{sig}}
	candidate := cloneShapeFor(shape)
	for id := TypeID(1); int(id) < len(in.types); id++ {
		if in.types[id].Kind != KindFunction {
			continue
		}
		existing, ok := in.CallableShape(id)
		if ok && callableShapeEqual(*existing, candidate) {
			return id
		}
	}
	slot := in.appendCallableShape(candidate)
	return in.internRaw(Type{Kind: KindFunction, Payload: slot})
}

// CallableShape reads back the shape for a callable or function TypeID.
func (in *Interner) CallableShape(id TypeID) (*CallableShape, bool) {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindCallable && tt.Kind != KindFunction) || int(tt.Payload) >= len(in.callableShapes) {
		return nil, false
	}
	return &in.callableShapes[tt.Payload], true
}

// SingleSignature returns the lone signature of a KindFunction TypeID.
func (in *Interner) SingleSignature(id TypeID) (CallSignature, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunction {
		return CallSignature{}, false
	}
	shape, ok := in.CallableShape(id)
	if !ok || len(shape.CallSignatures) != 1 {
		return CallSignature{}, false
	}
	return shape.CallSignatures[0], true
}

func (in *Interner) appendCallableShape(shape CallableShape) uint32 {
	in.callableShapes = append(in.callableShapes, shape)
	slot, err := safecast.Conv[uint32](len(in.callableShapes) - 1)
	if err != nil {
		panic(fmt.Errorf("types: callable shape overflow: %w", err))
	}
	return slot
}
