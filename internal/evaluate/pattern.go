package evaluate

import "tscore/internal/types"

// matchPattern matches the extends-side pattern against the concrete
// candidate, binding any `infer` placeholders it meets into bindings (keyed
// by the infer placeholder's own TypeID, per spec §4.3.2). A second bind to
// the same placeholder unifies by union. Returns false if the shapes don't
// line up at all (not merely "no infer present" — patterns with no infer
// always succeed trivially at the point they're reached, since the caller
// only invokes matchPattern when containsInfer(pattern) is true).
func (e *Evaluator) matchPattern(pattern, candidate types.TypeID, bindings map[types.TypeID]types.TypeID) (map[types.TypeID]types.TypeID, bool) {
	pTy, ok := e.in.Lookup(pattern)
	if !ok {
		return bindings, false
	}

	if pTy.Kind == types.KindInfer {
		e.bindInfer(pattern, candidate, bindings)
		return bindings, e.checkInferConstraint(pattern, bindings)
	}

	switch pTy.Kind {
	case types.KindArray:
		return e.matchArrayPattern(pTy.Elem, candidate, bindings)
	case types.KindTuple:
		return e.matchTuplePattern(pattern, candidate, bindings)
	case types.KindObject:
		return e.matchObjectPattern(pattern, candidate, bindings)
	default:
		// No infer within a non-container pattern position that reaches
		// here structurally matches iff the candidate is a subtype of the
		// pattern; the caller's step 7 concrete-path check handles the
		// non-infer case, so by construction this branch is only hit for
		// shapes this evaluator doesn't specially pattern-match. Fall back
		// to "matches trivially" so the true branch stays reachable.
		return bindings, true
	}
}

// bindInfer records candidate as U's binding, unifying by union on a
// second bind to the same placeholder (spec §4.3.2).
func (e *Evaluator) bindInfer(placeholder, candidate types.TypeID, bindings map[types.TypeID]types.TypeID) {
	if existing, ok := bindings[placeholder]; ok {
		bindings[placeholder] = e.in.Union([]types.TypeID{existing, candidate})
		return
	}
	bindings[placeholder] = candidate
}

// checkInferConstraint applies the infer parameter's constraint, if any,
// using the strict filter by default (spec §4.3.2): the bound value must
// satisfy the constraint or the match fails.
func (e *Evaluator) checkInferConstraint(placeholder types.TypeID, bindings map[types.TypeID]types.TypeID) bool {
	info, ok := e.in.TypeParamInfo(placeholder)
	if !ok || info.Constraint == types.NoTypeID {
		return true
	}
	bound, ok := bindings[placeholder]
	if !ok {
		return true
	}
	return e.checker.IsSubtype(bound, info.Constraint)
}

// WidenInferBinding applies the widening filter strategy (spec §4.3.2): for
// a union-valued binding, members failing the constraint are replaced with
// `undefined` rather than failing the whole match. Nothing in this package
// calls it: matchPattern applies the strict filter (checkInferConstraint)
// in every context, distributive or not.
func (e *Evaluator) WidenInferBinding(placeholder types.TypeID, bindings map[types.TypeID]types.TypeID) {
	info, ok := e.in.TypeParamInfo(placeholder)
	if !ok || info.Constraint == types.NoTypeID {
		return
	}
	bound, ok := bindings[placeholder]
	if !ok {
		return
	}
	members, isUnion := e.in.UnionMembers(bound)
	if !isUnion {
		if !e.checker.IsSubtype(bound, info.Constraint) {
			bindings[placeholder] = e.in.Builtins().Undefined
		}
		return
	}
	filtered := make([]types.TypeID, len(members))
	for i, m := range members {
		if e.checker.IsSubtype(m, info.Constraint) {
			filtered[i] = m
		} else {
			filtered[i] = e.in.Builtins().Undefined
		}
	}
	bindings[placeholder] = e.in.Union(filtered)
}

// matchArrayPattern matches `(infer U)[]` (or a structurally-equivalent
// wrapper) against an array, a tuple (binding the union of element types),
// or a union of these (spec §4.3.2).
func (e *Evaluator) matchArrayPattern(elemPattern, candidate types.TypeID, bindings map[types.TypeID]types.TypeID) (map[types.TypeID]types.TypeID, bool) {
	cTy, ok := e.in.Lookup(candidate)
	if !ok {
		return bindings, false
	}
	switch cTy.Kind {
	case types.KindArray:
		return e.matchPattern(elemPattern, cTy.Elem, bindings)
	case types.KindTuple:
		info, _ := e.in.TupleInfo(candidate)
		elemTypes := make([]types.TypeID, 0, len(info.Elems))
		for _, el := range info.Elems {
			t := el.Type
			if el.Optional {
				t = e.in.Union([]types.TypeID{t, e.in.Builtins().Undefined})
			}
			elemTypes = append(elemTypes, t)
		}
		return e.matchPattern(elemPattern, e.in.Union(elemTypes), bindings)
	case types.KindUnion:
		members, _ := e.in.UnionMembers(candidate)
		for _, m := range members {
			var ok bool
			bindings, ok = e.matchArrayPattern(elemPattern, m, bindings)
			if !ok {
				return bindings, false
			}
		}
		return bindings, true
	default:
		return bindings, false
	}
}

// matchTuplePattern matches `[infer U]` (a one-element tuple pattern)
// against a one-element tuple candidate, an empty tuple with an optional
// target (binding undefined), or a union of matching tuples (spec §4.3.2).
func (e *Evaluator) matchTuplePattern(pattern, candidate types.TypeID, bindings map[types.TypeID]types.TypeID) (map[types.TypeID]types.TypeID, bool) {
	pInfo, _ := e.in.TupleInfo(pattern)
	if len(pInfo.Elems) != 1 {
		return bindings, false
	}
	cTy, ok := e.in.Lookup(candidate)
	if ok && cTy.Kind == types.KindUnion {
		members, _ := e.in.UnionMembers(candidate)
		for _, m := range members {
			var ok bool
			bindings, ok = e.matchTuplePattern(pattern, m, bindings)
			if !ok {
				return bindings, false
			}
		}
		return bindings, true
	}
	cInfo, ok := e.in.TupleInfo(candidate)
	if !ok {
		return bindings, false
	}
	target := pInfo.Elems[0]
	switch len(cInfo.Elems) {
	case 0:
		if !target.Optional {
			return bindings, false
		}
		return e.matchPattern(target.Type, e.in.Builtins().Undefined, bindings)
	case 1:
		elemType := cInfo.Elems[0].Type
		if cInfo.Elems[0].Optional {
			elemType = e.in.Union([]types.TypeID{elemType, e.in.Builtins().Undefined})
		}
		return e.matchPattern(target.Type, elemType, bindings)
	default:
		return bindings, false
	}
}

// matchObjectPattern matches `{ p: infer U }` against an object candidate,
// supporting one additional level of nesting (spec §4.3.2).
func (e *Evaluator) matchObjectPattern(pattern, candidate types.TypeID, bindings map[types.TypeID]types.TypeID) (map[types.TypeID]types.TypeID, bool) {
	pShape, ok := e.in.ObjectShape(pattern)
	if !ok || len(pShape.Properties) == 0 {
		return bindings, false
	}
	cShape, ok := e.in.ObjectShape(candidate)
	if !ok {
		return bindings, false
	}
	cByName := make(map[types.Atom]types.PropertyInfo, len(cShape.Properties))
	for _, p := range cShape.Properties {
		cByName[p.Name] = p
	}
	for _, pp := range pShape.Properties {
		cp, found := cByName[pp.Name]
		if !found {
			return bindings, false
		}
		valueType := cp.ReadType
		if pp.Optional {
			valueType = e.in.Union([]types.TypeID{valueType, e.in.Builtins().Undefined})
		}
		var ok bool
		bindings, ok = e.matchPattern(pp.ReadType, valueType, bindings)
		if !ok {
			return bindings, false
		}
	}
	return bindings, true
}
