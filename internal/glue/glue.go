// Package glue implements the Contextual Glue described in spec §4.5: the
// thin entry point a driver calls into, owning nothing of its own beyond
// wiring the lowerer, evaluator and subtype checker together and closing
// the loop the lowerer alone cannot close — turning a resolver-returned
// DefinitionId into the TypeId of whatever that declaration lowers to.
package glue

import (
	"tscore/internal/config"
	"tscore/internal/diag"
	"tscore/internal/evaluate"
	"tscore/internal/lower"
	"tscore/internal/resolve"
	"tscore/internal/source"
	"tscore/internal/subtype"
	"tscore/internal/types"
	"tscore/internal/typeast"
)

// declSite records where a DefinitionId's declaration lives, so a later
// reference to it can be lowered on demand.
type declSite struct {
	tree *typeast.Tree
	node typeast.NodeIndex
}

// Compiler owns one Interner and the evaluator/checker pair built over it,
// plus the declaration cache that backs lower-one-type's re-entrant
// identifier resolution (spec §4.2.4, §4.5).
type Compiler struct {
	Interner *types.Interner
	Evaluator *evaluate.Evaluator
	Checker  *subtype.Checker
	Resolver *resolve.Resolver
	Reporter diag.Reporter
	Budgets  config.Budgets

	sites    map[resolve.DefinitionID]declSite
	cache    map[resolve.DefinitionID]types.TypeID
	resolving map[resolve.DefinitionID]bool
}

// New creates a Compiler wired to resolver's callbacks, using the spec's
// default budgets. Use NewWithBudgets to override them.
func New(resolver *resolve.Resolver, reporter diag.Reporter) *Compiler {
	return NewWithBudgets(resolver, reporter, config.Default())
}

// NewWithBudgets is New with explicit operation/tail-recursion/distributive
// budgets, as loaded from internal/config.
func NewWithBudgets(resolver *resolve.Resolver, reporter diag.Reporter, budgets config.Budgets) *Compiler {
	in := types.NewInterner()
	eval := evaluate.New(in)
	eval.MaxTailRecursion = budgets.TailRecursionBudget
	eval.MaxDistributiveBranches = budgets.DistributiveBranchBudget
	return &Compiler{
		Interner:  in,
		Evaluator: eval,
		Checker:   subtype.New(in),
		Resolver:  resolver,
		Reporter:  reporter,
		Budgets:   budgets,
		sites:     make(map[resolve.DefinitionID]declSite),
		cache:     make(map[resolve.DefinitionID]types.TypeID),
		resolving: make(map[resolve.DefinitionID]bool),
	}
}

// RegisterDeclaration tells the compiler where a DefinitionId's declaration
// node lives, so a later ResolveDeclaration call can lower it on demand.
// Drivers call this once per declaration as they walk a binder's symbol
// table, before lowering anything that might reference it.
func (c *Compiler) RegisterDeclaration(id resolve.DefinitionID, tree *typeast.Tree, node typeast.NodeIndex) {
	c.sites[id] = declSite{tree: tree, node: node}
}

// newContext builds a lower.Context over tree, wired to re-enter this
// compiler for identifier resolution.
func (c *Compiler) newContext(tree *typeast.Tree) *lower.Context {
	ctx := lower.NewContextWithBudget(tree, c.Interner, c.Resolver, c.Budgets.OperationBudget)
	ctx.ResolveDeclaration = c.resolveDeclaration
	return ctx
}

// resolveDeclaration is the lowerer's escape hatch (spec §4.2.4): given a
// DefinitionId, lower and evaluate whatever declaration it names, caching
// the result. A definition referenced again mid-resolution (a recursive
// type alias) gets a Recursive placeholder rather than looping forever.
func (c *Compiler) resolveDeclaration(id resolve.DefinitionID) types.TypeID {
	if cached, ok := c.cache[id]; ok {
		return cached
	}
	site, ok := c.sites[id]
	if !ok {
		return c.Interner.Builtins().Error
	}
	if c.resolving[id] {
		// Self-reference mid-resolution: hand back a placeholder keyed on a
		// reserved slot rather than recursing forever (spec §3.2, §9).
		return c.Interner.Recursive(types.NoTypeID)
	}
	c.resolving[id] = true
	defer delete(c.resolving, id)

	ctx := c.newContext(site.tree)
	raw := ctx.Lower(site.node)
	evaluated := c.Evaluator.Evaluate(raw)
	c.cache[id] = evaluated
	return evaluated
}

// LowerType lowers and evaluates a single type-AST node to normal form
// (spec §4.5's lower-one-type).
func (c *Compiler) LowerType(tree *typeast.Tree, node typeast.NodeIndex) types.TypeID {
	ctx := c.newContext(tree)
	return c.Evaluator.Evaluate(ctx.Lower(node))
}

// LowerMergedInterfaceDeclarations lowers and merges the named interface
// declarations, which may live in different arenas (spec §4.5's
// lower-one-interface-merge). The lowerer's merge already runs the
// index-signature coverage check (spec §4.2.2) and lowers a conflicting
// interface to ERROR without a diagnostic; glue then re-runs the check on the
// merged shape, reporting each conflicting property it still finds. An
// interface the lowerer collapsed to ERROR has no shape left to report on.
func (c *Compiler) LowerMergedInterfaceDeclarations(refs []NodeRef) types.TypeID {
	if len(refs) == 0 {
		return types.NoTypeID
	}
	decls := make([]lower.DeclRef, len(refs))
	var sharedCtx *lower.Context
	for i, r := range refs {
		ctx := c.newContext(r.Tree)
		if sharedCtx == nil {
			sharedCtx = ctx
		} else {
			ctx = sharedCtx.Derive(r.Tree)
		}
		decls[i] = lower.DeclRef{Ctx: ctx, Node: r.Node}
	}
	merged := lower.LowerMergedInterfaceDeclarations(decls)
	if c.checkIndexCoverage(merged, refs[0].Node, refs[0].Tree) {
		return c.Interner.Builtins().Error
	}
	return merged
}

// NodeRef pairs a node arena with the node to lower within it, used for
// cross-arena interface merging.
type NodeRef struct {
	Tree *typeast.Tree
	Node typeast.NodeIndex
}

// checkIndexCoverage runs the subtype check backing spec §4.2.2: every
// concrete property's read type must be a subtype of any covering index
// signature's value type. It reports a diagnostic per conflicting property
// and reports whether any conflict was found at all, so the caller can lower
// the whole interface to ERROR per spec §7's "whole interface lowers to
// ERROR" outcome — the merged TypeId itself is never mutated in place.
func (c *Compiler) checkIndexCoverage(id types.TypeID, anchor typeast.NodeIndex, tree *typeast.Tree) bool {
	shape, ok := c.Interner.ObjectShape(id)
	if !ok {
		if cs, ok := c.Interner.CallableShape(id); ok {
			return c.checkShapeIndexCoverage(cs.Properties, cs.StringIndex, cs.NumberIndex, anchor, tree)
		}
		return false
	}
	return c.checkShapeIndexCoverage(shape.Properties, shape.StringIndex, shape.NumberIndex, anchor, tree)
}

func (c *Compiler) checkShapeIndexCoverage(props []types.PropertyInfo, strIdx, numIdx *types.IndexSignature, anchor typeast.NodeIndex, tree *typeast.Tree) bool {
	if strIdx == nil && numIdx == nil {
		return false
	}
	var span source.Span
	if n := tree.Get(anchor); n != nil {
		span = n.Span
	}
	violated := false
	for _, p := range props {
		if lower.IsExemptFromIndexCheck(c.Interner, p.ReadType) {
			continue
		}
		if strIdx != nil && !c.Checker.IsSubtype(p.ReadType, strIdx.ValueType) {
			if c.Reporter != nil {
				diag.ReportError(c.Reporter, diag.CoreIndexSignatureConflict, span,
					"property is incompatible with string index signature").Emit()
			}
			violated = true
			continue
		}
		if numIdx != nil && !c.Checker.IsSubtype(p.ReadType, numIdx.ValueType) {
			if c.Reporter != nil {
				diag.ReportError(c.Reporter, diag.CoreIndexSignatureConflict, span,
					"property is incompatible with number index signature").Emit()
			}
			violated = true
		}
	}
	return violated
}
