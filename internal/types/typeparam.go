package types

import (
	"fmt"

	"fortio.org/safecast"
)

// TypeParameterInfo backs both KindTypeParameter and KindInfer: structurally
// they are the same record, but Infer is a placeholder that the evaluator
// binds for the duration of a single conditional-type evaluation while
// TypeParameter is a durable generic parameter (spec §3.1).
//
// Identity is structural, not declaration-site: two type parameters with the
// same name/constraint/default/IsConst intern to the same TypeID (spec §3.1
// "structurally identified by this record, not by declaration site").
type TypeParameterInfo struct {
	Name       Atom
	Constraint TypeID // NoTypeID if unconstrained
	Default    TypeID // NoTypeID if no default
	IsConst    bool
}

func (in *Interner) appendTypeParam(info TypeParameterInfo) uint32 {
	in.typeParams = append(in.typeParams, info)
	slot, err := safecast.Conv[uint32](len(in.typeParams) - 1)
	if err != nil {
		panic(fmt.Errorf("types: type parameter overflow: %w", err))
	}
	return slot
}

// TypeParam interns a durable generic type-parameter record.
func (in *Interner) TypeParam(info TypeParameterInfo) TypeID {
	for i := 1; i < len(in.typeParams); i++ {
		if in.typeParams[i] == info {
			slot, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("types: type parameter overflow: %w", err))
			}
			return in.Intern(Type{Kind: KindTypeParameter, Payload: slot})
		}
	}
	slot := in.appendTypeParam(info)
	return in.internRaw(Type{Kind: KindTypeParameter, Payload: slot})
}

// Infer interns an `infer X` placeholder record.
func (in *Interner) Infer(info TypeParameterInfo) TypeID {
	for i := 1; i < len(in.typeParams); i++ {
		if in.typeParams[i] == info {
			slot, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("types: infer overflow: %w", err))
			}
			return in.Intern(Type{Kind: KindInfer, Payload: slot})
		}
	}
	slot := in.appendTypeParam(info)
	return in.internRaw(Type{Kind: KindInfer, Payload: slot})
}

// TypeParamInfo reads back the record behind a TypeParameter or Infer TypeID.
func (in *Interner) TypeParamInfo(id TypeID) (*TypeParameterInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindTypeParameter && tt.Kind != KindInfer) || int(tt.Payload) >= len(in.typeParams) {
		return nil, false
	}
	return &in.typeParams[tt.Payload], true
}

// IsInfer reports whether id is an `infer` placeholder.
func (in *Interner) IsInfer(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindInfer
}
