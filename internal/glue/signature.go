package glue

import (
	"tscore/internal/types"
	"tscore/internal/typeast"
)

// LowerSignatureFromDeclaration lowers a single NodeFunctionType or
// NodeConstructorType node to a Function TypeId (spec §4.5). The overload-compatibility check — an
// implementation signature must be assignable to each of its declared
// overload signatures — is a plain subtype check over the results, so it
// lives at the call site rather than duplicated here.
func (c *Compiler) LowerSignatureFromDeclaration(tree *typeast.Tree, node typeast.NodeIndex) types.TypeID {
	ctx := c.newContext(tree)
	return c.Evaluator.Evaluate(ctx.Lower(node))
}

// CheckOverloadCompatibility reports whether impl (the implementation
// signature) is assignable everywhere each of overloads is expected, per
// spec §4.5's "implementation signature must be assignable to each of its
// overload signatures".
func (c *Compiler) CheckOverloadCompatibility(impl types.TypeID, overloads []types.TypeID) bool {
	for _, o := range overloads {
		if !c.Checker.IsSubtype(impl, o) {
			return false
		}
	}
	return true
}

// InstantiateWithTypeParameters substitutes args into base's free type
// parameters and evaluates the result (spec §4.5), used when importing an
// external contextual scope whose generic parameters are already known.
func (c *Compiler) InstantiateWithTypeParameters(base types.TypeID, args []types.TypeID) types.TypeID {
	application := c.Interner.Application(base, args)
	return c.Evaluator.Evaluate(application)
}
