// Package lower translates type-AST nodes (internal/typeast) into interned
// types (internal/types), per spec §4.2. A Context is single-use for one
// compilation: it owns a type-parameter scope stack, an operation counter,
// and a latched depth-exceeded flag shared with any derived context created
// to lower a merged interface declaration living in another arena.
package lower

import (
	"tscore/internal/resolve"
	"tscore/internal/types"
	"tscore/internal/typeast"
)

// DefaultMaxOperations bounds the number of recursive lowering steps before
// the context gives up and returns ERROR (spec §4.2).
const DefaultMaxOperations = 100_000

// budget is the operation counter and latched overflow flag, shared by
// reference between a Context and any contexts derived from it.
type budget struct {
	max       int
	count     int
	exceeded  bool
}

func (b *budget) tick() bool {
	if b.exceeded {
		return false
	}
	b.count++
	if b.count > b.max {
		b.exceeded = true
	}
	return !b.exceeded
}

// typeParamScope binds type-parameter names to TypeIds within one
// type-parameter list (spec §4.2.3).
type typeParamScope struct {
	names map[string]types.TypeID
}

// Context is the lowerer's per-compilation state.
type Context struct {
	Tree     *typeast.Tree
	Interner *types.Interner
	Resolver *resolve.Resolver

	// ResolveDeclaration turns a DefinitionId the resolver callbacks
	// returned into the TypeId of whatever that definition lowers to. The
	// lowerer itself has no notion of "the rest of the program"; only the
	// glue layer (spec §4.5), which can re-enter lowering for another
	// declaration, is in a position to supply this. Left nil, a resolved
	// DefinitionId still falls through to ERROR.
	ResolveDeclaration func(resolve.DefinitionID) types.TypeID

	budget *budget
	scopes []typeParamScope
}

// NewContext creates a root lowering context over tree, interning into in,
// consulting resolver for identifier lookups that the scope stack can't
// satisfy.
func NewContext(tree *typeast.Tree, in *types.Interner, resolver *resolve.Resolver) *Context {
	if resolver == nil {
		resolver = resolve.New(resolve.Callbacks{})
	}
	return &Context{
		Tree:     tree,
		Interner: in,
		Resolver: resolver,
		budget:   &budget{max: DefaultMaxOperations},
	}
}

// NewContextWithBudget is NewContext with an overridden operation bound
// (spec §4.2's budget, made configurable per internal/config).
func NewContextWithBudget(tree *typeast.Tree, in *types.Interner, resolver *resolve.Resolver, maxOperations int) *Context {
	ctx := NewContext(tree, in, resolver)
	ctx.budget.max = maxOperations
	return ctx
}

// Derive returns a context that lowers nodes from a different arena (the
// cross-arena interface-merge case, spec §4.2.2 and §5) while sharing this
// context's scope stack, operation counter, and depth-exceeded flag.
func (c *Context) Derive(tree *typeast.Tree) *Context {
	return &Context{
		Tree:               tree,
		Interner:           c.Interner,
		Resolver:           c.Resolver,
		ResolveDeclaration: c.ResolveDeclaration,
		budget:             c.budget,
		scopes:             c.scopes,
	}
}

// pushScope opens a new type-parameter scope (innermost).
func (c *Context) pushScope() {
	c.scopes = append(c.scopes, typeParamScope{names: make(map[string]types.TypeID)})
}

// popScope closes the innermost type-parameter scope.
func (c *Context) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// bind records name → id in the innermost scope.
func (c *Context) bind(name string, id types.TypeID) {
	c.scopes[len(c.scopes)-1].names[name] = id
}

// lookupScope walks scopes innermost-to-outermost for name.
func (c *Context) lookupScope(name string) (types.TypeID, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if id, ok := c.scopes[i].names[name]; ok {
			return id, true
		}
	}
	return types.NoTypeID, false
}

// enter must be called at the top of every recursive lowering step; it
// returns false once the operation budget is exhausted.
func (c *Context) enter() bool {
	return c.budget.tick()
}

// atom interns a string into the shared string table, returning NoAtom for
// empty text.
func (c *Context) atom(s string) types.Atom {
	if s == "" {
		return types.NoAtom
	}
	return c.Interner.Strings.Intern(s)
}

// Lower translates one AST node to a TypeId (spec §4.2's dispatch table).
// Lower is idempotent with respect to the budget: once the budget is
// exhausted every subsequent call short-circuits to ERROR without
// consuming further ticks.
func (c *Context) Lower(idx typeast.NodeIndex) types.TypeID {
	if !idx.IsValid() {
		return c.err()
	}
	if !c.enter() {
		return c.err()
	}
	node := c.Tree.Get(idx)
	if node == nil {
		return c.err()
	}
	switch node.Kind {
	case typeast.NodeAny:
		return c.Interner.Builtins().Any
	case typeast.NodeUnknown:
		return c.Interner.Builtins().Unknown
	case typeast.NodeNever:
		return c.Interner.Builtins().Never
	case typeast.NodeVoid:
		return c.Interner.Builtins().Void
	case typeast.NodeUndefined:
		return c.Interner.Builtins().Undefined
	case typeast.NodeNull:
		return c.Interner.Builtins().Null
	case typeast.NodeBoolean:
		return c.Interner.Builtins().Boolean
	case typeast.NodeNumber:
		return c.Interner.Builtins().Number
	case typeast.NodeString:
		return c.Interner.Builtins().String
	case typeast.NodeBigInt:
		return c.Interner.Builtins().BigInt
	case typeast.NodeSymbol:
		return c.Interner.Builtins().Symbol
	case typeast.NodeObjectKeyword:
		return c.Interner.Builtins().Object
	case typeast.NodeThis:
		return c.Interner.Builtins().This

	case typeast.NodeLiteralType:
		return c.lowerLiteral(idx)

	case typeast.NodeUnion:
		return c.lowerMemberList(idx, c.Interner.Union)
	case typeast.NodeIntersection:
		return c.lowerMemberList(idx, c.Interner.Intersection)

	case typeast.NodeArrayType:
		u, _ := c.Tree.Unary(idx)
		return c.Interner.Array(c.Lower(u.Inner))
	case typeast.NodeTupleType:
		return c.lowerTuple(idx)

	case typeast.NodeFunctionType, typeast.NodeConstructorType:
		return c.lowerSignatureNode(idx)

	case typeast.NodeTypeLiteral:
		return c.lowerTypeLiteral(idx)

	case typeast.NodeConditionalType:
		return c.lowerConditional(idx)
	case typeast.NodeMappedType:
		return c.lowerMapped(idx)
	case typeast.NodeIndexedAccessType:
		obj, key, _ := c.Tree.IndexedAccess(idx)
		return c.Interner.IndexedAccess(c.Lower(obj), c.Lower(key))

	case typeast.NodeKeyOfOperator:
		u, _ := c.Tree.Unary(idx)
		return c.Interner.KeyOf(c.Lower(u.Inner))
	case typeast.NodeReadonlyOperator:
		u, _ := c.Tree.Unary(idx)
		return c.Interner.Readonly(c.Lower(u.Inner))
	case typeast.NodeUniqueOperator:
		// `unique symbol` carries no declaration handle at this layer, so
		// every occurrence lowers to the same UniqueSymbol(0).
		return c.Interner.UniqueSymbol(0)

	case typeast.NodeInferType:
		return c.lowerInfer(idx)
	case typeast.NodeTemplateLiteralType:
		return c.lowerTemplateLiteral(idx)
	case typeast.NodeTypePredicate:
		pred, _ := c.Tree.TypePredicate(idx)
		if !pred.Type.IsValid() {
			return c.Interner.Builtins().Boolean
		}
		return c.Lower(pred.Type)
	case typeast.NodeTypeQuery:
		return c.lowerTypeQuery(idx)
	case typeast.NodeParenthesizedType:
		u, _ := c.Tree.Unary(idx)
		return c.Lower(u.Inner)

	case typeast.NodeTypeReference, typeast.NodeQualifiedName:
		return c.lowerTypeReference(idx)

	default:
		return c.err()
	}
}

func (c *Context) err() types.TypeID {
	return c.Interner.Builtins().Error
}

func (c *Context) lowerLiteral(idx typeast.NodeIndex) types.TypeID {
	lit, ok := c.Tree.Literal(idx)
	if !ok {
		return c.err()
	}
	switch lit.Kind {
	case typeast.LiteralTypeString:
		return c.Interner.InternLiteral(types.Literal{Kind: types.LiteralString, Str: lit.Text})
	case typeast.LiteralTypeNumber:
		text, _ := c.Interner.Strings.Lookup(lit.Text)
		return c.Interner.InternLiteral(types.Literal{Kind: types.LiteralNumber, Num: text})
	case typeast.LiteralTypeBigInt:
		text, _ := c.Interner.Strings.Lookup(lit.Text)
		return c.Interner.InternLiteral(types.Literal{Kind: types.LiteralBigInt, Num: text})
	case typeast.LiteralTypeBoolean:
		return c.Interner.LiteralBoolean(lit.Bool)
	default:
		return c.err()
	}
}

func (c *Context) lowerMemberList(idx typeast.NodeIndex, combine func([]types.TypeID) types.TypeID) types.TypeID {
	list, ok := c.Tree.MemberList(idx)
	if !ok {
		return c.err()
	}
	members := make([]types.TypeID, len(list.Members))
	for i, m := range list.Members {
		members[i] = c.Lower(m)
	}
	return combine(members)
}

func (c *Context) lowerTuple(idx typeast.NodeIndex) types.TypeID {
	tup, ok := c.Tree.Tuple(idx)
	if !ok {
		return c.err()
	}
	elems := make([]types.TupleElement, len(tup.Elems))
	for i, e := range tup.Elems {
		elems[i] = types.TupleElement{
			Type:     c.Lower(e.Type),
			Optional: e.Optional,
			Rest:     e.Rest,
			Name:     e.Name,
		}
	}
	return c.Interner.Tuple(elems)
}
