package evaluate

import "tscore/internal/types"

// evaluateMapped expands `{ [K in C as N]: V }` (spec §4.3.3): evaluate the
// constraint, and if it reduces to a union (directly, or via `keyof T`),
// iterate its members producing one property per key. Stays unreduced if
// the constraint is a free type parameter.
func (e *Evaluator) evaluateMapped(id types.TypeID) types.TypeID {
	rec, ok := e.in.MappedInfo(id)
	if !ok {
		return id
	}
	constraint := e.Evaluate(rec.Constraint)
	sourceShape := e.homomorphicSource(rec.Constraint)
	keys, ok := e.in.UnionMembers(constraint)
	if !ok {
		if single := constraint; isLiteralKey(e.in, single) {
			keys = []types.TypeID{single}
		} else {
			return e.in.Mapped(types.MappedRecord{
				ParameterName:    rec.ParameterName,
				Constraint:       constraint,
				NameRemap:        rec.NameRemap,
				OptionalModifier: rec.OptionalModifier,
				ReadonlyModifier: rec.ReadonlyModifier,
				ValueType:        rec.ValueType,
			})
		}
	}

	// The lowerer binds K to a TypeParameter interned from
	// {Name: ParameterName, Constraint: rec.Constraint} (see lower.lowerMapped);
	// content-addressing means reconstructing it here from the same fields
	// yields the identical TypeID that occurrences of K within ValueType and
	// NameRemap already reference.
	paramID := e.in.TypeParam(types.TypeParameterInfo{Name: rec.ParameterName, Constraint: rec.Constraint})

	props := make([]types.PropertyInfo, 0, len(keys))
	for _, k := range keys {
		bindings := map[types.TypeID]types.TypeID{paramID: k}
		keyName, ok := e.atomOfKey(k)
		if !ok {
			continue
		}
		if rec.NameRemap != types.NoTypeID {
			remapped := e.Evaluate(e.substitute(rec.NameRemap, bindings))
			if remapped == e.in.Builtins().Never {
				continue
			}
			if remappedName, ok := e.atomOfKey(remapped); ok {
				keyName = remappedName
			}
		}
		valueType := e.Evaluate(e.substitute(rec.ValueType, bindings))
		srcOptional, srcReadonly := sourceFlagsFor(sourceShape, keyName)
		props = append(props, types.PropertyInfo{
			Name:      keyName,
			ReadType:  valueType,
			WriteType: valueType,
			Optional:  applyModifier(rec.OptionalModifier, srcOptional),
			Readonly:  applyModifier(rec.ReadonlyModifier, srcReadonly),
		})
	}
	return e.in.Object(props)
}

// homomorphicSource returns the object shape a mapped type is iterating over
// when its raw constraint is a `keyof T` node for some object T, so the None
// modifier can preserve each property's source optional/readonly flag
// instead of discarding it (spec §4.3.3 step 4). Returns nil when the raw
// constraint is not a keyof node or T does not evaluate to an object shape.
func (e *Evaluator) homomorphicSource(rawConstraint types.TypeID) *types.ObjectShape {
	tt, ok := e.in.Lookup(rawConstraint)
	if !ok || tt.Kind != types.KindKeyOf {
		return nil
	}
	elem := e.Evaluate(tt.Elem)
	shape, ok := e.in.ObjectShape(elem)
	if !ok {
		return nil
	}
	return shape
}

// sourceFlagsFor looks up keyName's optional/readonly flags in shape, the
// homomorphic source object (if any). Absent a match, both flags default to
// false, matching a freshly-synthesised (non-homomorphic) mapped property.
func sourceFlagsFor(shape *types.ObjectShape, keyName types.Atom) (optional, readonly bool) {
	if shape == nil {
		return false, false
	}
	for _, p := range shape.Properties {
		if p.Name == keyName {
			return p.Optional, p.Readonly
		}
	}
	return false, false
}

// applyModifier combines a source flag with a mapped-type Add/Remove/None
// modifier (spec §4.3.3 step 4).
func applyModifier(mod types.Modifier, source bool) bool {
	switch mod {
	case types.ModifierAdd:
		return true
	case types.ModifierRemove:
		return false
	default:
		return source
	}
}

// isLiteralKey reports whether id is a string/number literal usable as a
// single mapped-type key when the constraint didn't reduce to a union.
func isLiteralKey(in *types.Interner, id types.TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == types.KindLiteral
}

// atomOfKey extracts the property-name Atom from a literal string/number
// key type, for use as the mapped property name; any other key yields
// false.
func (e *Evaluator) atomOfKey(id types.TypeID) (types.Atom, bool) {
	lit, ok := e.in.LiteralInfo(id)
	if !ok {
		return types.NoAtom, false
	}
	switch lit.Kind {
	case types.LiteralString:
		return lit.Str, true
	case types.LiteralNumber:
		return e.in.Strings.Intern(lit.Num), true
	default:
		return types.NoAtom, false
	}
}
