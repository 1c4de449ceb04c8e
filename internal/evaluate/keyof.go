package evaluate

import "tscore/internal/types"

// evaluateKeyOf yields the union of property-name literal types plus
// string/number from applicable index signatures (spec §4.3.4).
func (e *Evaluator) evaluateKeyOf(id types.TypeID) types.TypeID {
	tt, ok := e.in.Lookup(id)
	if !ok {
		return e.in.Builtins().Error
	}
	inner := e.Evaluate(tt.Elem)
	innerTy, ok := e.in.Lookup(inner)
	if !ok {
		return e.in.Builtins().Error
	}

	var props []types.PropertyInfo
	var strIdx, numIdx *types.IndexSignature
	switch innerTy.Kind {
	case types.KindObject:
		shape, _ := e.in.ObjectShape(inner)
		props, strIdx, numIdx = shape.Properties, shape.StringIndex, shape.NumberIndex
	case types.KindCallable:
		shape, _ := e.in.CallableShape(inner)
		props, strIdx, numIdx = shape.Properties, shape.StringIndex, shape.NumberIndex
	default:
		return e.in.Builtins().Never
	}

	members := make([]types.TypeID, 0, len(props)+2)
	for _, p := range props {
		members = append(members, e.in.InternLiteral(types.Literal{Kind: types.LiteralString, Str: p.Name}))
	}
	if strIdx != nil {
		members = append(members, e.in.Builtins().String)
	}
	if numIdx != nil {
		members = append(members, e.in.Builtins().Number)
	}
	if len(members) == 0 {
		return e.in.Builtins().Never
	}
	return e.in.Union(members)
}
