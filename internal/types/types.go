// Package types implements the content-addressed structural type store:
// the interner that backs the lowerer, evaluator and subtype checker.
package types

import (
	"fmt"

	"tscore/internal/source"
)

// TypeID uniquely identifies a structurally-interned type.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Atom is an interned string: property names, type-parameter names and
// literal text are always compared by Atom, never by string value.
type Atom = source.StringID

// NoAtom marks the absence of an atom.
const NoAtom = source.NoStringID

// Kind enumerates every variant a Type can take (spec §3.1).
type Kind uint8

const (
	KindInvalid Kind = iota // never interned; NoTypeID only

	// Primitives / intrinsics.
	KindAny
	KindUnknown
	KindNever
	KindVoid
	KindUndefined
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindBigInt
	KindSymbol
	KindObjectKeyword // the `Object` intrinsic, distinct from a structural object shape
	KindError         // poison
	KindThis

	KindLiteral

	KindUnion
	KindIntersection

	KindArray
	KindTuple

	KindObject   // structural object shape (properties + index signatures)
	KindCallable // multi-signature callable shape
	KindFunction // single-signature callable

	KindTypeParameter
	KindInfer

	KindConditional
	KindMapped
	KindIndexedAccess
	KindKeyOf
	KindTemplateLiteral
	KindApplication

	KindReadonly
	KindNoInfer

	KindTypeQuery
	KindUniqueSymbol
	KindModuleNamespace

	KindRecursive // self-referential alias; Elem names the enclosing TypeID and is not resolved further
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindNever:
		return "never"
	case KindVoid:
		return "void"
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBigInt:
		return "bigint"
	case KindSymbol:
		return "symbol"
	case KindObjectKeyword:
		return "Object"
	case KindError:
		return "error"
	case KindThis:
		return "this"
	case KindLiteral:
		return "literal"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindObject:
		return "object"
	case KindCallable:
		return "callable"
	case KindFunction:
		return "function"
	case KindTypeParameter:
		return "type-parameter"
	case KindInfer:
		return "infer"
	case KindConditional:
		return "conditional"
	case KindMapped:
		return "mapped"
	case KindIndexedAccess:
		return "indexed-access"
	case KindKeyOf:
		return "keyof"
	case KindTemplateLiteral:
		return "template-literal"
	case KindApplication:
		return "application"
	case KindReadonly:
		return "readonly"
	case KindNoInfer:
		return "noinfer"
	case KindTypeQuery:
		return "typeof"
	case KindUniqueSymbol:
		return "unique-symbol"
	case KindModuleNamespace:
		return "module-namespace"
	case KindRecursive:
		return "recursive"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// LiteralKind distinguishes the constant kinds a Literal type may carry.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
	LiteralBigInt
)

// Type is the compact, immutable structural descriptor interned for every
// TypeID. Wide or variable-length data (object shapes, callable shapes,
// tuple elements, union/intersection members, template spans,
// type-parameter records) lives in side tables and is referenced through
// Payload, keeping every Type value the same small size (spec §3.1, §4.1).
type Type struct {
	Kind Kind

	// Elem is the single child TypeID for single-argument wrappers:
	// Array.Elem, Readonly.Elem, NoInfer.Elem, KeyOf.Elem.
	Elem TypeID

	// Payload indexes into the side table selected by Kind:
	//   KindLiteral              -> literals[Payload]
	//   KindUnion/KindIntersection -> memberLists[Payload]
	//   KindTuple                -> tuples[Payload]
	//   KindObject               -> objectShapes[Payload]
	//   KindCallable             -> callableShapes[Payload]
	//   KindFunction             -> callableShapes[Payload] (single signature)
	//   KindTypeParameter/KindInfer -> typeParams[Payload]
	//   KindConditional          -> conditionals[Payload]
	//   KindMapped               -> mappedTypes[Payload]
	//   KindIndexedAccess        -> indexedAccesses[Payload]
	//   KindTemplateLiteral      -> templates[Payload]
	//   KindApplication          -> applications[Payload]
	//   KindTypeQuery            -> typeQueries[Payload]
	//   KindUniqueSymbol         -> uniqueSymbols[Payload]
	//   KindRecursive            -> unused; Elem names the enclosing TypeID
	Payload uint32
}

// Literal is a finite constant value of string/number/boolean/bigint kind.
type Literal struct {
	Kind LiteralKind
	Str  Atom   // valid when Kind == LiteralString
	Num  string // canonical decimal text for LiteralNumber/LiteralBigInt
	Bool bool   // valid when Kind == LiteralBoolean
}

func cloneTypeArgs(args []TypeID) []TypeID {
	if len(args) == 0 {
		return nil
	}
	out := make([]TypeID, len(args))
	copy(out, args)
	return out
}
