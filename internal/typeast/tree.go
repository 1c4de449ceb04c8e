package typeast

import "tscore/internal/source"

// Tree bundles the node arena with one payload arena per compound node
// kind (spec §6.1). A keyword node (NodeAny, NodeThis, ...) needs no
// payload arena at all: Node.Kind alone is the whole node.
type Tree struct {
	Nodes *Arena[Node]

	literals      *Arena[Literal]
	memberLists   *Arena[MemberList]
	units         *Arena[Unary]
	tuples        *Arena[Tuple]
	signatures    *Arena[Signature]
	typeLiterals  *Arena[InterfaceBody]
	interfaceDecl *Arena[InterfaceDecl]
	conditionals  *Arena[Conditional]
	mappeds       *Arena[Mapped]
	binaries      *Arena[Binary]
	infers        *Arena[Infer]
	templates     *Arena[TemplateLiteral]
	predicates    *Arena[TypePredicate]
	queries       *Arena[TypeQuery]
	references    *Arena[TypeReference]
	typeParams    *Arena[TypeParamDecl]
}

// NewTree creates an empty Tree with the given node-count hint.
func NewTree(capHint uint) *Tree {
	return &Tree{
		Nodes:         NewArena[Node](capHint),
		literals:      NewArena[Literal](0),
		memberLists:   NewArena[MemberList](0),
		units:         NewArena[Unary](0),
		tuples:        NewArena[Tuple](0),
		signatures:    NewArena[Signature](0),
		typeLiterals:  NewArena[InterfaceBody](0),
		interfaceDecl: NewArena[InterfaceDecl](0),
		conditionals:  NewArena[Conditional](0),
		mappeds:       NewArena[Mapped](0),
		binaries:      NewArena[Binary](0),
		infers:        NewArena[Infer](0),
		templates:     NewArena[TemplateLiteral](0),
		predicates:    NewArena[TypePredicate](0),
		queries:       NewArena[TypeQuery](0),
		references:    NewArena[TypeReference](0),
		typeParams:    NewArena[TypeParamDecl](0),
	}
}

func (t *Tree) push(kind NodeKind, span source.Span, payload uint32) NodeIndex {
	return NodeIndex(t.Nodes.Allocate(Node{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

// Get returns the node at idx, or nil if idx is NoNodeIndex.
func (t *Tree) Get(idx NodeIndex) *Node {
	return t.Nodes.Get(uint32(idx))
}

// NewKeyword allocates a bare keyword-type node (any/unknown/never/... /this).
func (t *Tree) NewKeyword(kind NodeKind, span source.Span) NodeIndex {
	return t.push(kind, span, 0)
}

// NewLiteral allocates a NodeLiteralType node.
func (t *Tree) NewLiteral(span source.Span, lit Literal) NodeIndex {
	idx := t.literals.Allocate(lit)
	return t.push(NodeLiteralType, span, idx)
}

// Literal reads back a NodeLiteralType payload.
func (t *Tree) Literal(idx NodeIndex) (Literal, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeLiteralType {
		return Literal{}, false
	}
	return *t.literals.Get(uint32(n.Payload)), true
}

// NewMemberList allocates a NodeUnion or NodeIntersection node.
func (t *Tree) NewMemberList(kind NodeKind, span source.Span, members []NodeIndex) NodeIndex {
	idx := t.memberLists.Allocate(MemberList{Members: members})
	return t.push(kind, span, idx)
}

// MemberList reads back a NodeUnion/NodeIntersection payload.
func (t *Tree) MemberList(idx NodeIndex) (MemberList, bool) {
	n := t.Get(idx)
	if n == nil || (n.Kind != NodeUnion && n.Kind != NodeIntersection) {
		return MemberList{}, false
	}
	return *t.memberLists.Get(uint32(n.Payload)), true
}

// NewUnary allocates any single-child wrapper node: array element,
// keyof/readonly/unique operator, or parenthesization.
func (t *Tree) NewUnary(kind NodeKind, span source.Span, inner NodeIndex) NodeIndex {
	idx := t.units.Allocate(Unary{Inner: inner})
	return t.push(kind, span, idx)
}

// Unary reads back any single-child wrapper payload.
func (t *Tree) Unary(idx NodeIndex) (Unary, bool) {
	n := t.Get(idx)
	if n == nil {
		return Unary{}, false
	}
	switch n.Kind {
	case NodeArrayType, NodeKeyOfOperator, NodeReadonlyOperator, NodeUniqueOperator, NodeParenthesizedType:
		return *t.units.Get(uint32(n.Payload)), true
	default:
		return Unary{}, false
	}
}

// NewTuple allocates a NodeTupleType node.
func (t *Tree) NewTuple(span source.Span, elems []TupleMember) NodeIndex {
	idx := t.tuples.Allocate(Tuple{Elems: elems})
	return t.push(NodeTupleType, span, idx)
}

// Tuple reads back a NodeTupleType payload.
func (t *Tree) Tuple(idx NodeIndex) (Tuple, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeTupleType {
		return Tuple{}, false
	}
	return *t.tuples.Get(uint32(n.Payload)), true
}

// NewSignature allocates a NodeFunctionType or NodeConstructorType node,
// or a bare signature referenced from an interface body's call/construct
// signature list.
func (t *Tree) NewSignature(kind NodeKind, span source.Span, sig Signature) NodeIndex {
	idx := t.signatures.Allocate(sig)
	return t.push(kind, span, idx)
}

// Signature reads back a function/constructor signature payload.
func (t *Tree) Signature(idx NodeIndex) (Signature, bool) {
	n := t.Get(idx)
	if n == nil || (n.Kind != NodeFunctionType && n.Kind != NodeConstructorType) {
		return Signature{}, false
	}
	return *t.signatures.Get(uint32(n.Payload)), true
}

// NewTypeLiteral allocates a NodeTypeLiteral (object type / interface body).
func (t *Tree) NewTypeLiteral(span source.Span, body InterfaceBody) NodeIndex {
	idx := t.typeLiterals.Allocate(body)
	return t.push(NodeTypeLiteral, span, idx)
}

// TypeLiteral reads back a NodeTypeLiteral payload.
func (t *Tree) TypeLiteral(idx NodeIndex) (InterfaceBody, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeTypeLiteral {
		return InterfaceBody{}, false
	}
	return *t.typeLiterals.Get(uint32(n.Payload)), true
}

// NewInterfaceDecl allocates a NodeInterfaceDecl node.
func (t *Tree) NewInterfaceDecl(span source.Span, decl InterfaceDecl) NodeIndex {
	idx := t.interfaceDecl.Allocate(decl)
	return t.push(NodeInterfaceDecl, span, idx)
}

// InterfaceDecl reads back a NodeInterfaceDecl payload.
func (t *Tree) InterfaceDecl(idx NodeIndex) (InterfaceDecl, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeInterfaceDecl {
		return InterfaceDecl{}, false
	}
	return *t.interfaceDecl.Get(uint32(n.Payload)), true
}

// NewConditional allocates a NodeConditionalType node.
func (t *Tree) NewConditional(span source.Span, cond Conditional) NodeIndex {
	idx := t.conditionals.Allocate(cond)
	return t.push(NodeConditionalType, span, idx)
}

// Conditional reads back a NodeConditionalType payload.
func (t *Tree) Conditional(idx NodeIndex) (Conditional, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeConditionalType {
		return Conditional{}, false
	}
	return *t.conditionals.Get(uint32(n.Payload)), true
}

// NewMapped allocates a NodeMappedType node.
func (t *Tree) NewMapped(span source.Span, m Mapped) NodeIndex {
	idx := t.mappeds.Allocate(m)
	return t.push(NodeMappedType, span, idx)
}

// Mapped reads back a NodeMappedType payload.
func (t *Tree) Mapped(idx NodeIndex) (Mapped, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeMappedType {
		return Mapped{}, false
	}
	return *t.mappeds.Get(uint32(n.Payload)), true
}

// NewIndexedAccess allocates a NodeIndexedAccessType node.
func (t *Tree) NewIndexedAccess(span source.Span, object, index NodeIndex) NodeIndex {
	idx := t.binaries.Allocate(Binary{Left: object, Right: index})
	return t.push(NodeIndexedAccessType, span, idx)
}

// IndexedAccess reads back a NodeIndexedAccessType payload.
func (t *Tree) IndexedAccess(idx NodeIndex) (object, index NodeIndex, ok bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeIndexedAccessType {
		return NoNodeIndex, NoNodeIndex, false
	}
	b := t.binaries.Get(uint32(n.Payload))
	return b.Left, b.Right, true
}

// NewInfer allocates a NodeInferType node.
func (t *Tree) NewInfer(span source.Span, inf Infer) NodeIndex {
	idx := t.infers.Allocate(inf)
	return t.push(NodeInferType, span, idx)
}

// Infer reads back a NodeInferType payload.
func (t *Tree) Infer(idx NodeIndex) (Infer, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeInferType {
		return Infer{}, false
	}
	return *t.infers.Get(uint32(n.Payload)), true
}

// NewTemplateLiteral allocates a NodeTemplateLiteralType node.
func (t *Tree) NewTemplateLiteral(span source.Span, tmpl TemplateLiteral) NodeIndex {
	idx := t.templates.Allocate(tmpl)
	return t.push(NodeTemplateLiteralType, span, idx)
}

// TemplateLiteral reads back a NodeTemplateLiteralType payload.
func (t *Tree) TemplateLiteral(idx NodeIndex) (TemplateLiteral, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeTemplateLiteralType {
		return TemplateLiteral{}, false
	}
	return *t.templates.Get(uint32(n.Payload)), true
}

// NewTypePredicate allocates a NodeTypePredicate node.
func (t *Tree) NewTypePredicate(span source.Span, pred TypePredicate) NodeIndex {
	idx := t.predicates.Allocate(pred)
	return t.push(NodeTypePredicate, span, idx)
}

// TypePredicate reads back a NodeTypePredicate payload.
func (t *Tree) TypePredicate(idx NodeIndex) (TypePredicate, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeTypePredicate {
		return TypePredicate{}, false
	}
	return *t.predicates.Get(uint32(n.Payload)), true
}

// NewTypeQuery allocates a NodeTypeQuery node.
func (t *Tree) NewTypeQuery(span source.Span, q TypeQuery) NodeIndex {
	idx := t.queries.Allocate(q)
	return t.push(NodeTypeQuery, span, idx)
}

// TypeQuery reads back a NodeTypeQuery payload.
func (t *Tree) TypeQuery(idx NodeIndex) (TypeQuery, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeTypeQuery {
		return TypeQuery{}, false
	}
	return *t.queries.Get(uint32(n.Payload)), true
}

// NewTypeReference allocates a NodeTypeReference/NodeQualifiedName node.
func (t *Tree) NewTypeReference(kind NodeKind, span source.Span, ref TypeReference) NodeIndex {
	idx := t.references.Allocate(ref)
	return t.push(kind, span, idx)
}

// TypeReference reads back a NodeTypeReference/NodeQualifiedName payload.
func (t *Tree) TypeReference(idx NodeIndex) (TypeReference, bool) {
	n := t.Get(idx)
	if n == nil || (n.Kind != NodeTypeReference && n.Kind != NodeQualifiedName) {
		return TypeReference{}, false
	}
	return *t.references.Get(uint32(n.Payload)), true
}

// NewTypeParamDecl allocates a NodeTypeParamDecl node.
func (t *Tree) NewTypeParamDecl(span source.Span, decl TypeParamDecl) NodeIndex {
	idx := t.typeParams.Allocate(decl)
	return t.push(NodeTypeParamDecl, span, idx)
}

// TypeParamDecl reads back a NodeTypeParamDecl payload.
func (t *Tree) TypeParamDecl(idx NodeIndex) (TypeParamDecl, bool) {
	n := t.Get(idx)
	if n == nil || n.Kind != NodeTypeParamDecl {
		return TypeParamDecl{}, false
	}
	return *t.typeParams.Get(uint32(n.Payload)), true
}
