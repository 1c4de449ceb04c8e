package evaluate

import "tscore/internal/types"

// evaluateApplication substitutes arguments into the base's own type
// parameters and evaluates the result (spec §4.3.4). The base's parameters
// are whichever TypeParameter TypeIDs actually occur free within it; since
// those are discovered structurally (content-addressed, not by declaration
// site), application binds each argument to the parameter occupying the
// same position among the base's free type parameters, in the order they
// were first encountered.
func (e *Evaluator) evaluateApplication(id types.TypeID) types.TypeID {
	info, ok := e.in.ApplicationInfo(id)
	if !ok {
		return e.in.Builtins().Error
	}
	base := e.Evaluate(info.Base)
	params := e.freeTypeParams(base)
	if len(params) == 0 {
		return base
	}
	bindings := make(map[types.TypeID]types.TypeID, len(params))
	for i, p := range params {
		if i >= len(info.Args) {
			break
		}
		bindings[p] = info.Args[i]
	}
	return e.Evaluate(e.substitute(base, bindings))
}

// freeTypeParams walks id's structure collecting distinct TypeParameter
// TypeIDs in first-encountered order.
func (e *Evaluator) freeTypeParams(id types.TypeID) []types.TypeID {
	seen := make(map[types.TypeID]bool)
	var order []types.TypeID
	var walk func(types.TypeID)
	walk = func(id types.TypeID) {
		if id == types.NoTypeID || seen[id] {
			return
		}
		seen[id] = true
		tt, ok := e.in.Lookup(id)
		if !ok {
			return
		}
		switch tt.Kind {
		case types.KindTypeParameter:
			order = append(order, id)
		case types.KindArray, types.KindReadonly, types.KindNoInfer, types.KindKeyOf:
			walk(tt.Elem)
		case types.KindTuple:
			info, _ := e.in.TupleInfo(id)
			for _, el := range info.Elems {
				walk(el.Type)
			}
		case types.KindUnion:
			members, _ := e.in.UnionMembers(id)
			for _, m := range members {
				walk(m)
			}
		case types.KindIntersection:
			members, _ := e.in.IntersectionMembers(id)
			for _, m := range members {
				walk(m)
			}
		case types.KindObject:
			shape, _ := e.in.ObjectShape(id)
			for _, p := range shape.Properties {
				walk(p.ReadType)
				walk(p.WriteType)
			}
		case types.KindCallable, types.KindFunction:
			if sig, ok := e.in.SingleSignature(id); ok {
				walkSignature(walk, sig)
			}
			if shape, ok := e.in.CallableShape(id); ok {
				for _, sig := range shape.CallSignatures {
					walkSignature(walk, sig)
				}
			}
		}
	}
	walk(id)
	return order
}

func walkSignature(walk func(types.TypeID), sig types.CallSignature) {
	for _, p := range sig.Params {
		walk(p.Type)
	}
	walk(sig.ReturnType)
}
