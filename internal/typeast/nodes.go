package typeast

import "tscore/internal/source"

// NodeKind tags every shape the lowerer's dispatch table (spec §4.2)
// switches on.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota

	// Keyword types: primitive intrinsics (Kind alone is the whole node).
	NodeAny
	NodeUnknown
	NodeNever
	NodeVoid
	NodeUndefined
	NodeNull
	NodeBoolean
	NodeNumber
	NodeString
	NodeBigInt
	NodeSymbol
	NodeObjectKeyword
	NodeThis

	NodeLiteralType // string/number/boolean/bigint literal type

	NodeUnion
	NodeIntersection

	NodeArrayType
	NodeTupleType

	NodeFunctionType
	NodeConstructorType

	NodeTypeLiteral   // `{ ... }` object type / interface body
	NodeInterfaceDecl // a single `interface Name<T> { ... }` declaration

	NodeConditionalType
	NodeMappedType
	NodeIndexedAccessType

	NodeKeyOfOperator
	NodeReadonlyOperator
	NodeUniqueOperator

	NodeInferType
	NodeTemplateLiteralType
	NodeTypePredicate
	NodeTypeQuery
	NodeParenthesizedType
	NodeTypeReference
	NodeQualifiedName

	NodeTypeParamDecl
)

// Node is the uniform envelope every arena entry shares: a kind tag, a
// source span, and an index into the per-kind payload table (spec §6.1).
type Node struct {
	Kind    NodeKind
	Span    source.Span
	Payload PayloadID
}

// Unary is the shared payload for every single-child wrapper node:
// array element, `keyof`/`readonly`/`unique` operators, parenthesization.
type Unary struct {
	Inner NodeIndex
}

// Literal is the payload for NodeLiteralType.
type Literal struct {
	Kind LiteralTypeKind
	Text source.StringID // canonical text for string/number/bigint
	Bool bool
}

// LiteralTypeKind mirrors types.LiteralKind at the syntax level.
type LiteralTypeKind uint8

const (
	LiteralTypeString LiteralTypeKind = iota
	LiteralTypeNumber
	LiteralTypeBoolean
	LiteralTypeBigInt
)

// MemberList is the payload for NodeUnion/NodeIntersection: an ordered list
// of member nodes exactly as written (pre-canonicalisation is the lowerer's
// job, not the arena's).
type MemberList struct {
	Members []NodeIndex
}

// TupleMember is one element of a NodeTupleType.
type TupleMember struct {
	Type     NodeIndex
	Optional bool
	Rest     bool
	Name     source.StringID // NoStringID if unnamed
}

// Tuple is the payload for NodeTupleType.
type Tuple struct {
	Elems []TupleMember
}

// Param is one parameter of a function/constructor type or call signature.
// A leading parameter literally named "this" is split out by the lowerer
// into a signature's ThisType rather than appearing in Params (spec §4.2.1).
type Param struct {
	Name     source.StringID
	Type     NodeIndex
	Optional bool
	Rest     bool
}

// Signature is the payload for NodeFunctionType/NodeConstructorType and for
// call/construct signatures embedded in a NodeTypeLiteral.
type Signature struct {
	TypeParams []NodeIndex // NodeTypeParamDecl entries
	Params     []Param
	Return     NodeIndex // may itself decompose into a type-predicate (§4.2.1)
	IsMethod   bool
}

// IndexSig is a `[key: K]: V` signature.
type IndexSig struct {
	KeyType   NodeIndex
	ValueType NodeIndex
	Readonly  bool
}

// PropertyMember is one `name: T` / `name?: T` member of an object type or
// interface body.
type PropertyMember struct {
	Name     source.StringID
	Type     NodeIndex
	Optional bool
	Readonly bool
}

// MethodMember is one method signature (possibly one of several overloads
// sharing a name) inside an object type or interface body.
type MethodMember struct {
	Name      source.StringID
	Signature NodeIndex // NodeFunctionType
	Optional  bool
}

// InterfaceBody is the payload for NodeTypeLiteral: the raw member list the
// lowerer's merge algorithm (§4.2.2) consumes.
type InterfaceBody struct {
	Properties          []PropertyMember
	Methods             []MethodMember
	CallSignatures      []NodeIndex // NodeFunctionType
	ConstructSignatures []NodeIndex // NodeConstructorType
	StringIndex         *IndexSig
	NumberIndex         *IndexSig
}

// InterfaceDecl is the payload for NodeInterfaceDecl: a named declaration
// that may be one of several contributing to a merged interface.
type InterfaceDecl struct {
	Name       source.StringID
	TypeParams []NodeIndex // NodeTypeParamDecl entries
	Body       NodeIndex   // NodeTypeLiteral
}

// Conditional is the payload for NodeConditionalType.
type Conditional struct {
	Check   NodeIndex
	Extends NodeIndex
	True    NodeIndex
	False   NodeIndex
}

// ModifierToken mirrors types.Modifier at the syntax level.
type ModifierToken uint8

const (
	ModifierTokenNone ModifierToken = iota
	ModifierTokenAdd
	ModifierTokenRemove
)

// Mapped is the payload for NodeMappedType.
type Mapped struct {
	ParameterName source.StringID
	Constraint    NodeIndex
	NameRemap     NodeIndex // NoNodeIndex if no `as` clause
	Optional      ModifierToken
	Readonly      ModifierToken
	ValueType     NodeIndex
}

// Binary is the payload for NodeIndexedAccessType.
type Binary struct {
	Left  NodeIndex
	Right NodeIndex
}

// Infer is the payload for NodeInferType.
type Infer struct {
	Name       source.StringID
	Constraint NodeIndex // NoNodeIndex if unconstrained
}

// TemplateLiteral is the payload for NodeTemplateLiteralType: fragments and
// holes alternate, fragments[i] before holes[i], with one trailing fragment.
type TemplateLiteral struct {
	Fragments []source.StringID
	Holes     []NodeIndex
}

// TypePredicate is the payload for NodeTypePredicate.
type TypePredicate struct {
	ParamName source.StringID
	Asserts   bool
	Type      NodeIndex // NoNodeIndex for a bare `asserts x` with no type
}

// TypeQuery is the payload for NodeTypeQuery (`typeof x.y`).
type TypeQuery struct {
	Segments []source.StringID
	TypeArgs []NodeIndex
}

// PathSegment is one dotted segment of a type reference, e.g. `A.B<T>`.
type PathSegment struct {
	Name     source.StringID
	TypeArgs []NodeIndex
}

// TypeReference is the payload for NodeTypeReference/NodeQualifiedName.
type TypeReference struct {
	Segments []PathSegment
}

// TypeParamDecl is the payload for NodeTypeParamDecl.
type TypeParamDecl struct {
	Name       source.StringID
	Constraint NodeIndex // NoNodeIndex if unconstrained
	Default    NodeIndex // NoNodeIndex if no default
	IsConst    bool
}
