package evaluate

import "tscore/internal/types"

// evaluateIndexedAccess implements `T[K]` (spec §4.3.4): evaluate both
// sides; a literal key against a matching property returns its read type
// (optional widening to include undefined); a union key distributes; an
// applicable index signature is used as fallback; otherwise ERROR.
func (e *Evaluator) evaluateIndexedAccess(id types.TypeID) types.TypeID {
	objID, keyID, ok := e.in.IndexedAccessInfo(id)
	if !ok {
		return e.in.Builtins().Error
	}
	obj := e.Evaluate(objID)
	key := e.Evaluate(keyID)

	if members, ok := e.in.UnionMembers(key); ok {
		results := make([]types.TypeID, len(members))
		for i, m := range members {
			results[i] = e.evaluateIndexedAccess(e.in.IndexedAccess(obj, m))
		}
		return e.in.Union(results)
	}

	props, strIdx, numIdx := e.objectShapeOf(obj)
	if lit, ok := e.in.LiteralInfo(key); ok {
		name, ok := keyAtom(e, lit)
		if ok {
			for _, p := range props {
				if p.Name == name {
					if p.Optional {
						return e.in.Union([]types.TypeID{p.ReadType, e.in.Builtins().Undefined})
					}
					return p.ReadType
				}
			}
		}
		if lit.Kind == types.LiteralNumber && numIdx != nil {
			return numIdx.ValueType
		}
		if strIdx != nil {
			return strIdx.ValueType
		}
	}

	keyTy, ok := e.in.Lookup(key)
	if ok {
		switch keyTy.Kind {
		case types.KindString:
			if strIdx != nil {
				return strIdx.ValueType
			}
		case types.KindNumber:
			if numIdx != nil {
				return numIdx.ValueType
			}
		}
	}
	return e.in.Builtins().Error
}

func (e *Evaluator) objectShapeOf(id types.TypeID) ([]types.PropertyInfo, *types.IndexSignature, *types.IndexSignature) {
	if shape, ok := e.in.ObjectShape(id); ok {
		return shape.Properties, shape.StringIndex, shape.NumberIndex
	}
	if shape, ok := e.in.CallableShape(id); ok {
		return shape.Properties, shape.StringIndex, shape.NumberIndex
	}
	return nil, nil, nil
}

func keyAtom(e *Evaluator, lit types.Literal) (types.Atom, bool) {
	switch lit.Kind {
	case types.LiteralString:
		return lit.Str, true
	case types.LiteralNumber:
		return e.in.Strings.Intern(lit.Num), true
	default:
		return types.NoAtom, false
	}
}
