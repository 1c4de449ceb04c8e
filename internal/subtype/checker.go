// Package subtype implements the structural subtype checker (spec §4.4):
// decides S <: T over already-evaluated types. It never reduces computed
// types itself — callers that may hand it a conditional/mapped/indexed-
// access/keyof/application type first pass it through internal/evaluate.
package subtype

import (
	"tscore/internal/types"
)

// pairKey is one (S, T) entry in the cycle-breaking set.
type pairKey struct {
	s, t types.TypeID
}

// Checker decides structural subtyping against one Interner.
type Checker struct {
	in *types.Interner

	// AllowBivariantRest makes method-shape signatures (a target signature
	// with IsMethod set) bivariant in their parameters, for
	// overload-resolution call sites (spec §4.4).
	AllowBivariantRest bool

	inProgress map[pairKey]bool
}

// New creates a Checker over in.
func New(in *types.Interner) *Checker {
	return &Checker{in: in, inProgress: make(map[pairKey]bool)}
}

// IsSubtype reports whether s <: t.
func (c *Checker) IsSubtype(s, t types.TypeID) bool {
	if s == t {
		return true
	}

	sTy, sOK := c.in.Lookup(s)
	tTy, tOK := c.in.Lookup(t)
	if !sOK || !tOK {
		return false
	}

	// ERROR absorbs in both directions (spec §4.4): poison must not cascade.
	if sTy.Kind == types.KindError || tTy.Kind == types.KindError {
		return true
	}

	// any/unknown special rules.
	if sTy.Kind == types.KindAny || tTy.Kind == types.KindAny {
		return true
	}
	if tTy.Kind == types.KindUnknown {
		return true
	}
	if sTy.Kind == types.KindUnknown {
		return false
	}
	if sTy.Kind == types.KindNever {
		return true
	}
	if tTy.Kind == types.KindNever {
		return false
	}

	key := pairKey{s, t}
	if c.inProgress[key] {
		return true // coinductive: re-entry assumes success
	}
	c.inProgress[key] = true
	defer delete(c.inProgress, key)

	switch {
	case sTy.Kind == types.KindUnion:
		members, _ := c.in.UnionMembers(s)
		for _, m := range members {
			if !c.IsSubtype(m, t) {
				return false
			}
		}
		return true
	case tTy.Kind == types.KindUnion:
		members, _ := c.in.UnionMembers(t)
		for _, m := range members {
			if c.IsSubtype(s, m) {
				return true
			}
		}
		return false
	case sTy.Kind == types.KindIntersection:
		members, _ := c.in.IntersectionMembers(s)
		for _, m := range members {
			if c.IsSubtype(m, t) {
				return true
			}
		}
		return false
	case tTy.Kind == types.KindIntersection:
		members, _ := c.in.IntersectionMembers(t)
		for _, m := range members {
			if !c.IsSubtype(s, m) {
				return false
			}
		}
		return true
	}

	// Literal widening: a literal is a subtype of its base primitive; the
	// base is never a subtype of the literal (spec §4.4).
	if sTy.Kind == types.KindLiteral {
		if lit, ok := c.in.LiteralInfo(s); ok && literalBaseMatches(lit, tTy.Kind) {
			return true
		}
	}

	// Readonly wrapper: ReadonlyArray<T> accepts Array<T> but not the
	// reverse (spec §4.4).
	if tTy.Kind == types.KindReadonly {
		return c.isArrayLike(sTy) && c.IsSubtype(arrayElem(sTy), tTy.Elem)
	}
	if sTy.Kind == types.KindReadonly {
		return tTy.Kind == types.KindReadonly && c.IsSubtype(sTy.Elem, tTy.Elem)
	}

	switch {
	case sTy.Kind == types.KindArray && tTy.Kind == types.KindArray:
		return c.IsSubtype(sTy.Elem, tTy.Elem)
	case sTy.Kind == types.KindTuple && tTy.Kind == types.KindTuple:
		return c.tupleSubtype(s, t)
	case sTy.Kind == types.KindTuple && tTy.Kind == types.KindArray:
		return c.tupleToArraySubtype(s, tTy.Elem)
	}

	if isObjectLike(sTy.Kind) && isObjectLike(tTy.Kind) {
		return c.objectSubtype(s, t)
	}

	if (sTy.Kind == types.KindFunction || sTy.Kind == types.KindCallable) &&
		(tTy.Kind == types.KindFunction || tTy.Kind == types.KindCallable) {
		return c.callableSubtype(s, t)
	}

	if sTy.Kind == types.KindTypeParameter && tTy.Kind == types.KindTypeParameter {
		return s == t
	}

	return false
}

func literalBaseMatches(lit types.Literal, baseKind types.Kind) bool {
	switch lit.Kind {
	case types.LiteralString:
		return baseKind == types.KindString
	case types.LiteralNumber:
		return baseKind == types.KindNumber
	case types.LiteralBoolean:
		return baseKind == types.KindBoolean
	case types.LiteralBigInt:
		return baseKind == types.KindBigInt
	default:
		return false
	}
}

func (c *Checker) isArrayLike(t types.Type) bool {
	return t.Kind == types.KindArray
}

func arrayElem(t types.Type) types.TypeID {
	return t.Elem
}

// tupleSubtype checks a tuple elementwise, collapsing a target rest element
// against any remaining source elements (spec §4.4).
func (c *Checker) tupleSubtype(s, t types.TypeID) bool {
	sInfo, _ := c.in.TupleInfo(s)
	tInfo, _ := c.in.TupleInfo(t)
	si, ti := 0, 0
	for ti < len(tInfo.Elems) {
		te := tInfo.Elems[ti]
		if te.Rest {
			for si < len(sInfo.Elems) {
				if !c.IsSubtype(sInfo.Elems[si].Type, te.Type) {
					return false
				}
				si++
			}
			ti++
			continue
		}
		if si >= len(sInfo.Elems) {
			return te.Optional
		}
		se := sInfo.Elems[si]
		if !se.Optional && te.Optional {
			// fine: a required source element satisfies an optional target
		}
		if se.Optional && !te.Optional {
			return false
		}
		if !c.IsSubtype(se.Type, te.Type) {
			return false
		}
		si++
		ti++
	}
	return si >= len(sInfo.Elems)
}

func (c *Checker) tupleToArraySubtype(s, targetElem types.TypeID) bool {
	sInfo, _ := c.in.TupleInfo(s)
	for _, e := range sInfo.Elems {
		if !c.IsSubtype(e.Type, targetElem) {
			return false
		}
	}
	return true
}

func isObjectLike(k types.Kind) bool {
	return k == types.KindObject || k == types.KindCallable
}

// objectSubtype checks S <: T where both are object-like shapes: every
// property T declares must be satisfied by a corresponding property (or
// applicable index signature) in S, read types covariant, write types
// contravariant, optional widens with undefined (spec §4.4).
func (c *Checker) objectSubtype(s, t types.TypeID) bool {
	sProps, sStrIdx, sNumIdx := c.shapeOf(s)
	tProps, _, _ := c.shapeOf(t)

	sByName := make(map[types.Atom]types.PropertyInfo, len(sProps))
	for _, p := range sProps {
		sByName[p.Name] = p
	}

	for _, tp := range tProps {
		sp, ok := sByName[tp.Name]
		if !ok {
			if !tp.Optional {
				if !c.coveredByIndex(tp, sStrIdx, sNumIdx) {
					return false
				}
			}
			continue
		}
		if !sp.Optional && tp.Optional {
			// fine
		}
		if sp.Optional && !tp.Optional {
			return false
		}
		sRead, tRead := sp.ReadType, tp.ReadType
		if tp.Optional {
			undef := c.in.Builtins().Undefined
			tRead = c.in.Union([]types.TypeID{tRead, undef})
			if sp.Optional {
				sRead = c.in.Union([]types.TypeID{sRead, undef})
			}
		}
		if !c.IsSubtype(sRead, tRead) {
			return false
		}
		if !c.IsSubtype(tp.WriteType, sp.WriteType) {
			return false
		}
	}
	return true
}

func (c *Checker) coveredByIndex(prop types.PropertyInfo, strIdx, numIdx *types.IndexSignature) bool {
	if strIdx != nil && c.IsSubtype(prop.ReadType, strIdx.ValueType) {
		return true
	}
	if numIdx != nil && c.IsSubtype(prop.ReadType, numIdx.ValueType) {
		return true
	}
	return false
}

func (c *Checker) shapeOf(id types.TypeID) ([]types.PropertyInfo, *types.IndexSignature, *types.IndexSignature) {
	if shape, ok := c.in.ObjectShape(id); ok {
		return shape.Properties, shape.StringIndex, shape.NumberIndex
	}
	if shape, ok := c.in.CallableShape(id); ok {
		return shape.Properties, shape.StringIndex, shape.NumberIndex
	}
	return nil, nil, nil
}

// callableSubtype: S <: T iff every signature in T has a matching signature
// in S (spec §4.4) — S must be usable everywhere T is expected, so S needs
// to offer at least as much overload coverage.
func (c *Checker) callableSubtype(s, t types.TypeID) bool {
	sSigs := c.signaturesOf(s)
	tSigs := c.signaturesOf(t)
	for _, tSig := range tSigs {
		matched := false
		for _, sSig := range sSigs {
			if c.signatureSubtype(sSig, tSig) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func (c *Checker) signaturesOf(id types.TypeID) []types.CallSignature {
	if sig, ok := c.in.SingleSignature(id); ok {
		return []types.CallSignature{sig}
	}
	if shape, ok := c.in.CallableShape(id); ok {
		return shape.CallSignatures
	}
	return nil
}

// signatureSubtype: parameters contravariant, return covariant (spec §4.4).
// With AllowBivariantRest and a method target signature, parameter checking
// accepts either direction, matching TypeScript's method-bivariance allowance
// for overload resolution.
func (c *Checker) signatureSubtype(s, t types.CallSignature) bool {
	if !c.IsSubtype(s.ReturnType, t.ReturnType) {
		return false
	}
	sParams, tParams := s.Params, t.Params
	for i, tp := range tParams {
		if i >= len(sParams) {
			if !tp.Optional && !tp.Rest {
				return false
			}
			continue
		}
		sp := sParams[i]
		ok := c.IsSubtype(tp.Type, sp.Type)
		if !ok && c.AllowBivariantRest && t.IsMethod {
			ok = c.IsSubtype(sp.Type, tp.Type)
		}
		if !ok {
			return false
		}
	}
	return true
}
