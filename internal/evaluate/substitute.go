package evaluate

import "tscore/internal/types"

// substitute rewrites id, replacing any TypeID that is a key of bindings
// with its bound value, recursively through container shapes. Every
// container kind handled below is rebuilt from its substituted parts and
// re-interned, whether or not it contains a bound id; other kinds are
// returned unchanged.
func (e *Evaluator) substitute(id types.TypeID, bindings map[types.TypeID]types.TypeID) types.TypeID {
	if repl, ok := bindings[id]; ok {
		return repl
	}
	if len(bindings) == 0 || id == types.NoTypeID {
		return id
	}
	tt, ok := e.in.Lookup(id)
	if !ok {
		return id
	}
	switch tt.Kind {
	case types.KindArray:
		return e.in.Array(e.substitute(tt.Elem, bindings))
	case types.KindReadonly:
		return e.in.Readonly(e.substitute(tt.Elem, bindings))
	case types.KindNoInfer:
		return e.in.NoInfer(e.substitute(tt.Elem, bindings))
	case types.KindKeyOf:
		return e.in.KeyOf(e.substitute(tt.Elem, bindings))
	case types.KindUnion:
		members, _ := e.in.UnionMembers(id)
		return e.in.Union(e.substituteAll(members, bindings))
	case types.KindIntersection:
		members, _ := e.in.IntersectionMembers(id)
		return e.in.Intersection(e.substituteAll(members, bindings))
	case types.KindTuple:
		info, _ := e.in.TupleInfo(id)
		elems := make([]types.TupleElement, len(info.Elems))
		for i, el := range info.Elems {
			elems[i] = types.TupleElement{
				Type: e.substitute(el.Type, bindings), Optional: el.Optional, Rest: el.Rest, Name: el.Name,
			}
		}
		return e.in.Tuple(elems)
	case types.KindObject:
		shape, _ := e.in.ObjectShape(id)
		props := make([]types.PropertyInfo, len(shape.Properties))
		for i, p := range shape.Properties {
			p.ReadType = e.substitute(p.ReadType, bindings)
			p.WriteType = e.substitute(p.WriteType, bindings)
			props[i] = p
		}
		return e.in.ObjectWithIndex(types.ObjectShape{
			Properties:  props,
			StringIndex: substituteIndex(e, shape.StringIndex, bindings),
			NumberIndex: substituteIndex(e, shape.NumberIndex, bindings),
		})
	case types.KindConditional:
		rec, _ := e.in.ConditionalInfo(id)
		return e.in.Conditional(types.ConditionalRecord{
			CheckType:      e.substitute(rec.CheckType, bindings),
			ExtendsType:    e.substitute(rec.ExtendsType, bindings),
			TrueType:       e.substitute(rec.TrueType, bindings),
			FalseType:      e.substitute(rec.FalseType, bindings),
			IsDistributive: rec.IsDistributive,
		})
	case types.KindIndexedAccess:
		obj, key, _ := e.in.IndexedAccessInfo(id)
		return e.in.IndexedAccess(e.substitute(obj, bindings), e.substitute(key, bindings))
	default:
		return id
	}
}

func (e *Evaluator) substituteAll(ids []types.TypeID, bindings map[types.TypeID]types.TypeID) []types.TypeID {
	out := make([]types.TypeID, len(ids))
	for i, id := range ids {
		out[i] = e.substitute(id, bindings)
	}
	return out
}

func substituteIndex(e *Evaluator, idx *types.IndexSignature, bindings map[types.TypeID]types.TypeID) *types.IndexSignature {
	if idx == nil {
		return nil
	}
	return &types.IndexSignature{
		KeyType:   idx.KeyType,
		ValueType: e.substitute(idx.ValueType, bindings),
		Readonly:  idx.Readonly,
	}
}
