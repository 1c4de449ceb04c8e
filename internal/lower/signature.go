package lower

import (
	"tscore/internal/types"
	"tscore/internal/typeast"
)

// lowerTypeParamList pushes a fresh scope, lowers each declaration to a
// TypeParameter TypeId, binds it immediately so later entries in the same
// list can refer to it (spec §4.2.3), then returns the lowered ids in
// source order. Callers must popScope once done with the scope's bindings.
func (c *Context) lowerTypeParamList(decls []typeast.NodeIndex) []types.TypeID {
	c.pushScope()
	ids := make([]types.TypeID, len(decls))
	for i, d := range decls {
		decl, ok := c.Tree.TypeParamDecl(d)
		if !ok {
			ids[i] = c.err()
			continue
		}
		name := c.Interner.Strings.MustLookup(decl.Name)
		placeholder := types.TypeParameterInfo{Name: decl.Name, IsConst: decl.IsConst}
		id := c.Interner.TypeParam(placeholder)
		c.bind(name, id)
		if decl.Constraint.IsValid() {
			placeholder.Constraint = c.Lower(decl.Constraint)
		}
		if decl.Default.IsValid() {
			placeholder.Default = c.Lower(decl.Default)
		}
		id = c.Interner.TypeParam(placeholder)
		c.bind(name, id)
		ids[i] = id
	}
	return ids
}

// lowerParam lowers one ordinary (non-this) parameter.
func (c *Context) lowerParam(p typeast.Param) types.ParamInfo {
	return types.ParamInfo{
		Name:     p.Name,
		Type:     c.Lower(p.Type),
		Optional: p.Optional,
		Rest:     p.Rest,
	}
}

// lowerSignature lowers a parameter list plus return annotation into a
// CallSignature, splitting out a leading `this` parameter and detecting a
// type-predicate return shape (spec §4.2.1).
func (c *Context) lowerSignature(sig typeast.Signature) types.CallSignature {
	typeParams := c.lowerTypeParamList(sig.TypeParams)
	defer c.popScope()

	var thisType types.TypeID
	params := make([]types.ParamInfo, 0, len(sig.Params))
	for i, p := range sig.Params {
		thisText, ok := c.Interner.Strings.Lookup(p.Name)
		if i == 0 && ok && thisText == "this" {
			thisType = c.Lower(p.Type)
			continue
		}
		params = append(params, c.lowerParam(p))
	}

	returnID, predicate := c.lowerReturnAnnotation(sig.Return)

	return types.CallSignature{
		TypeParams:    typeParams,
		Params:        params,
		ThisType:      thisType,
		ReturnType:    returnID,
		TypePredicate: predicate,
	}
}

// lowerReturnAnnotation inspects a signature's return node for a type
// predicate, possibly wrapped in parentheses or intersected with other
// members (spec §4.2.1), returning the underlying type id either way. A
// missing annotation (NoNodeIndex) lowers to ERROR, not `any`, per spec
// §4.2.1.
func (c *Context) lowerReturnAnnotation(ret typeast.NodeIndex) (types.TypeID, *types.TypePredicate) {
	if !ret.IsValid() {
		return c.err(), nil
	}
	unwrapped := unwrapTypePredicateWrapper(c.Tree, ret)
	n := c.Tree.Get(unwrapped)
	if n != nil && n.Kind == typeast.NodeTypePredicate {
		pred, _ := c.Tree.TypePredicate(unwrapped)
		predType := c.Interner.Builtins().Boolean
		if pred.Type.IsValid() {
			predType = c.Lower(pred.Type)
		}
		return c.Interner.Builtins().Boolean, &types.TypePredicate{
			ParamName: pred.ParamName,
			Type:      predType,
			Asserts:   pred.Asserts,
		}
	}
	return c.Lower(ret), nil
}

// unwrapTypePredicateWrapper peels off parenthesisation and intersection
// wrapping around a return-type node until it finds a bare NodeTypePredicate
// or runs out of wrapping to peel (spec §4.2.1: `asserts x is T` may be
// parenthesised, or appear as one member of an intersection). An
// intersection with no predicate member is left as-is; it isn't a predicate
// return at all.
func unwrapTypePredicateWrapper(tree *typeast.Tree, idx typeast.NodeIndex) typeast.NodeIndex {
	for {
		n := tree.Get(idx)
		if n == nil {
			return idx
		}
		switch n.Kind {
		case typeast.NodeParenthesizedType:
			u, _ := tree.Unary(idx)
			idx = u.Inner
		case typeast.NodeIntersection:
			list, ok := tree.MemberList(idx)
			if !ok {
				return idx
			}
			found := false
			for _, member := range list.Members {
				candidate := unwrapTypePredicateWrapper(tree, member)
				if cn := tree.Get(candidate); cn != nil && cn.Kind == typeast.NodeTypePredicate {
					idx = candidate
					found = true
					break
				}
			}
			if !found {
				return idx
			}
		default:
			return idx
		}
	}
}

// lowerSignatureNode lowers a NodeFunctionType/NodeConstructorType into a
// single-signature Function TypeId (spec: function types are
// single-signature and variance-relevant, distinct from Callable shapes
// with multiple overloads). A constructor type is lowered the same way, as
// a call signature.
func (c *Context) lowerSignatureNode(idx typeast.NodeIndex) types.TypeID {
	sig, ok := c.Tree.Signature(idx)
	if !ok {
		return c.err()
	}
	lowered := c.lowerSignature(sig)
	return c.Interner.Function(lowered)
}
