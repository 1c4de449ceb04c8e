package types

import (
	"fmt"

	"fortio.org/safecast"

	"tscore/internal/source"
)

// Builtins holds the stable TypeIDs for every primitive/intrinsic, interned
// once per Interner so callers never re-derive them.
type Builtins struct {
	Any       TypeID
	Unknown   TypeID
	Never     TypeID
	Void      TypeID
	Undefined TypeID
	Null      TypeID
	Boolean   TypeID
	Number    TypeID
	String    TypeID
	BigInt    TypeID
	Symbol    TypeID
	Object    TypeID
	Error     TypeID
	This      TypeID

	TrueLiteral  TypeID
	FalseLiteral TypeID
}

// Interner is the content-addressed store of structural types (spec §4.1).
// Every public method is a deterministic function of its arguments: calling
// it twice with structurally equal input returns the same TypeID, and a
// re-intern of an existing type adds no new entry to any table.
type Interner struct {
	types []Type
	index map[typeKey]TypeID

	builtins Builtins

	Strings *source.Interner // atom interner (property/type-param names, literal text)

	literals         []Literal
	memberLists      []memberList // union/intersection member lists
	tuples           []TupleInfo
	objectShapes     []ObjectShape
	callableShapes   []CallableShape
	typeParams       []TypeParameterInfo
	conditionals     []ConditionalRecord
	mappedTypes      []MappedRecord
	indexedAccesses  []indexedAccessInfo
	templates        []TemplateLiteralInfo
	applications     []ApplicationInfo
	typeQueries      []TypeQueryInfo
	uniqueSymbols    []UniqueSymbolInfo
}

// NewInterner constructs an interner pre-seeded with every intrinsic.
func NewInterner() *Interner {
	in := &Interner{
		index:   make(map[typeKey]TypeID, 64),
		Strings: source.NewInterner(),
	}
	// Slot 0 of every side table is reserved so a zero Payload never
	// accidentally aliases a real entry.
	in.literals = append(in.literals, Literal{})
	in.memberLists = append(in.memberLists, memberList{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.objectShapes = append(in.objectShapes, ObjectShape{})
	in.callableShapes = append(in.callableShapes, CallableShape{})
	in.typeParams = append(in.typeParams, TypeParameterInfo{})
	in.conditionals = append(in.conditionals, ConditionalRecord{})
	in.mappedTypes = append(in.mappedTypes, MappedRecord{})
	in.indexedAccesses = append(in.indexedAccesses, indexedAccessInfo{})
	in.templates = append(in.templates, TemplateLiteralInfo{})
	in.applications = append(in.applications, ApplicationInfo{})
	in.typeQueries = append(in.typeQueries, TypeQueryInfo{})
	in.uniqueSymbols = append(in.uniqueSymbols, UniqueSymbolInfo{})

	in.reserveInvalid()
	in.builtins.Any = in.InternPrimitive(KindAny)
	in.builtins.Unknown = in.InternPrimitive(KindUnknown)
	in.builtins.Never = in.InternPrimitive(KindNever)
	in.builtins.Void = in.InternPrimitive(KindVoid)
	in.builtins.Undefined = in.InternPrimitive(KindUndefined)
	in.builtins.Null = in.InternPrimitive(KindNull)
	in.builtins.Boolean = in.InternPrimitive(KindBoolean)
	in.builtins.Number = in.InternPrimitive(KindNumber)
	in.builtins.String = in.InternPrimitive(KindString)
	in.builtins.BigInt = in.InternPrimitive(KindBigInt)
	in.builtins.Symbol = in.InternPrimitive(KindSymbol)
	in.builtins.Object = in.InternPrimitive(KindObjectKeyword)
	in.builtins.Error = in.InternPrimitive(KindError)
	in.builtins.This = in.InternPrimitive(KindThis)

	in.builtins.TrueLiteral = in.InternLiteral(Literal{Kind: LiteralBoolean, Bool: true})
	in.builtins.FalseLiteral = in.InternLiteral(Literal{Kind: LiteralBoolean, Bool: false})
	return in
}

// reserveInvalid interns the KindInvalid sentinel so that TypeID 0 (the zero
// value of TypeID, i.e. NoTypeID) never collides with a real entry.
func (in *Interner) reserveInvalid() {
	in.internRaw(Type{Kind: KindInvalid})
}

// Builtins returns the TypeIDs for every intrinsic.
func (in *Interner) Builtins() Builtins { return in.builtins }

// InternPrimitive interns one of the fixed intrinsic kinds.
func (in *Interner) InternPrimitive(kind Kind) TypeID {
	return in.Intern(Type{Kind: kind})
}

// InternLiteral interns a finite constant.
func (in *Interner) InternLiteral(lit Literal) TypeID {
	for i := 1; i < len(in.literals); i++ {
		if in.literals[i] == lit {
			slot, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("types: literal slot overflow: %w", err))
			}
			return in.Intern(Type{Kind: KindLiteral, Payload: slot})
		}
	}
	in.literals = append(in.literals, lit)
	slot, err := safecast.Conv[uint32](len(in.literals) - 1)
	if err != nil {
		panic(fmt.Errorf("types: literal slot overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindLiteral, Payload: slot})
}

// LiteralBoolean returns the two pre-interned boolean literals.
func (in *Interner) LiteralBoolean(v bool) TypeID {
	if v {
		return in.builtins.TrueLiteral
	}
	return in.builtins.FalseLiteral
}

// LiteralInfo reads back the constant carried by a literal TypeID.
func (in *Interner) LiteralInfo(id TypeID) (Literal, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLiteral || int(tt.Payload) >= len(in.literals) {
		return Literal{}, false
	}
	return in.literals[tt.Payload], true
}

// Intern ensures the provided descriptor has a stable TypeID, consulting the
// hash-cons index first so repeated interning never allocates.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to storage unconditionally, bypassing the
// hash-cons check. Every other interning path funnels through Intern, which
// recomputes the same key; internRaw exists so the reservation of TypeID 0
// and the side-table registration helpers can install entries without a
// double lookup.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: type table overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid. Reserved for call sites that already
// proved id came from this interner.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// typeKey is the hash-cons key: the Type struct itself, since every variant's
// identity-relevant data either lives inline (Elem) or behind a stable
// Payload slot that is itself only ever allocated once per distinct content
// (see appendXInfo helpers across this package).
type typeKey Type
