package lower

import (
	"tscore/internal/resolve"
	"tscore/internal/types"
	"tscore/internal/typeast"
)

func (c *Context) lowerTypeLiteral(idx typeast.NodeIndex) types.TypeID {
	body, ok := c.Tree.TypeLiteral(idx)
	if !ok {
		return c.err()
	}
	state := newMergeState()
	c.mergeBody(state, body)
	return c.finalizeMerge(state)
}

func (c *Context) lowerConditional(idx typeast.NodeIndex) types.TypeID {
	cond, ok := c.Tree.Conditional(idx)
	if !ok {
		return c.err()
	}
	checkID := c.Lower(cond.Check)
	extendsID := c.Lower(cond.Extends)
	trueID := c.Lower(cond.True)
	falseID := c.Lower(cond.False)
	return c.Interner.Conditional(types.ConditionalRecord{
		CheckType:      checkID,
		ExtendsType:    extendsID,
		TrueType:       trueID,
		FalseType:      falseID,
		IsDistributive: c.isNakedTypeParamRef(cond.Check),
	})
}

// isNakedTypeParamRef reports whether node is a bare identifier resolving
// (via the scope stack only — definition/name resolvers never name a type
// parameter by this query) to a type-parameter TypeId; a conditional type
// is distributive exactly when its check type is a naked type parameter
// reference (spec §4.3.1).
func (c *Context) isNakedTypeParamRef(node typeast.NodeIndex) bool {
	n := c.Tree.Get(node)
	if n == nil || (n.Kind != typeast.NodeTypeReference && n.Kind != typeast.NodeQualifiedName) {
		return false
	}
	ref, ok := c.Tree.TypeReference(node)
	if !ok || len(ref.Segments) != 1 || len(ref.Segments[0].TypeArgs) != 0 {
		return false
	}
	name := c.Interner.Strings.MustLookup(ref.Segments[0].Name)
	id, found := c.lookupScope(name)
	if !found {
		return false
	}
	tt, ok := c.Interner.Lookup(id)
	return ok && tt.Kind == types.KindTypeParameter
}

func (c *Context) lowerMapped(idx typeast.NodeIndex) types.TypeID {
	m, ok := c.Tree.Mapped(idx)
	if !ok {
		return c.err()
	}
	c.pushScope()
	defer c.popScope()

	constraint := c.Lower(m.Constraint)
	paramID := c.Interner.TypeParam(types.TypeParameterInfo{Name: m.ParameterName, Constraint: constraint})
	c.bind(c.Interner.Strings.MustLookup(m.ParameterName), paramID)

	var nameRemap types.TypeID
	if m.NameRemap.IsValid() {
		nameRemap = c.Lower(m.NameRemap)
	}
	valueType := c.Lower(m.ValueType)

	return c.Interner.Mapped(types.MappedRecord{
		ParameterName:    m.ParameterName,
		Constraint:       constraint,
		NameRemap:        nameRemap,
		OptionalModifier: toModifier(m.Optional),
		ReadonlyModifier: toModifier(m.Readonly),
		ValueType:        valueType,
	})
}

func toModifier(t typeast.ModifierToken) types.Modifier {
	switch t {
	case typeast.ModifierTokenAdd:
		return types.ModifierAdd
	case typeast.ModifierTokenRemove:
		return types.ModifierRemove
	default:
		return types.ModifierNone
	}
}

func (c *Context) lowerInfer(idx typeast.NodeIndex) types.TypeID {
	inf, ok := c.Tree.Infer(idx)
	if !ok {
		return c.err()
	}
	var constraint types.TypeID
	if inf.Constraint.IsValid() {
		constraint = c.Lower(inf.Constraint)
	}
	return c.Interner.Infer(types.TypeParameterInfo{Name: inf.Name, Constraint: constraint})
}

func (c *Context) lowerTemplateLiteral(idx typeast.NodeIndex) types.TypeID {
	tmpl, ok := c.Tree.TemplateLiteral(idx)
	if !ok {
		return c.err()
	}
	spans := make([]types.TemplateSpan, 0, len(tmpl.Fragments))
	for i, frag := range tmpl.Fragments {
		span := types.TemplateSpan{Literal: frag, Hole: types.NoTypeID}
		if i < len(tmpl.Holes) && tmpl.Holes[i].IsValid() {
			span.Hole = c.Lower(tmpl.Holes[i])
		}
		spans = append(spans, span)
	}
	return c.Interner.TemplateLiteral(spans)
}

func (c *Context) lowerTypeQuery(idx typeast.NodeIndex) types.TypeID {
	q, ok := c.Tree.TypeQuery(idx)
	if !ok {
		return c.err()
	}
	var target resolve.SymbolID
	if sym, found := c.Resolver.ResolveValueSymbol(idx); found {
		target = sym
	}
	args := make([]types.TypeID, len(q.TypeArgs))
	for i, a := range q.TypeArgs {
		args[i] = c.Lower(a)
	}
	return c.Interner.TypeQuery(uint64(target), args)
}

// lowerTypeReference resolves an identifier type reference per §4.2.4: scope
// stack first, then the definition resolver, then (if attached) the
// name-based resolver; value symbols are wrapped in TypeQuery. Generic
// applications wrap the resolved base in an Application node.
func (c *Context) lowerTypeReference(idx typeast.NodeIndex) types.TypeID {
	ref, ok := c.Tree.TypeReference(idx)
	if !ok || len(ref.Segments) == 0 {
		return c.err()
	}
	seg := ref.Segments[len(ref.Segments)-1]
	name := c.Interner.Strings.MustLookup(seg.Name)

	base := c.resolveIdentifier(idx, name)
	if len(seg.TypeArgs) == 0 {
		return base
	}
	args := make([]types.TypeID, len(seg.TypeArgs))
	for i, a := range seg.TypeArgs {
		args[i] = c.Lower(a)
	}
	return c.Interner.Application(base, args)
}

// resolveIdentifier implements §4.2.4's preference order: scope stack,
// then the definition resolver (by node, then by name), then the legacy
// type-symbol resolver, finally the value-symbol resolver wrapped in a
// TypeQuery. Unresolved names lower to ERROR.
func (c *Context) resolveIdentifier(idx typeast.NodeIndex, name string) types.TypeID {
	if id, ok := c.lookupScope(name); ok {
		return id
	}
	if def, ok := c.Resolver.ResolveDefID(idx); ok {
		if c.ResolveDeclaration != nil {
			return c.ResolveDeclaration(def)
		}
	}
	if def, ok := c.Resolver.ResolveDefIDByName(name); ok {
		if c.ResolveDeclaration != nil {
			return c.ResolveDeclaration(def)
		}
	}
	if sym, ok := c.Resolver.ResolveTypeSymbol(idx); ok {
		if c.ResolveDeclaration != nil {
			return c.ResolveDeclaration(resolve.DefinitionID(sym))
		}
	}
	if sym, ok := c.Resolver.ResolveValueSymbol(idx); ok {
		return c.Interner.TypeQuery(uint64(sym), nil)
	}
	return c.err()
}
