package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// indexedAccessInfo backs `T[K]` (spec §3.1).
type indexedAccessInfo struct {
	Object TypeID
	Index  TypeID
}

// IndexedAccess interns `object[index]`.
func (in *Interner) IndexedAccess(object, index TypeID) TypeID {
	rec := indexedAccessInfo{Object: object, Index: index}
	for i := 1; i < len(in.indexedAccesses); i++ {
		if in.indexedAccesses[i] == rec {
			slot, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("types: indexed access overflow: %w", err))
			}
			return in.Intern(Type{Kind: KindIndexedAccess, Payload: slot})
		}
	}
	in.indexedAccesses = append(in.indexedAccesses, rec)
	slot, err := safecast.Conv[uint32](len(in.indexedAccesses) - 1)
	if err != nil {
		panic(fmt.Errorf("types: indexed access overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindIndexedAccess, Payload: slot})
}

// IndexedAccessInfo reads back the object/index pair for `T[K]`.
func (in *Interner) IndexedAccessInfo(id TypeID) (object, index TypeID, ok bool) {
	tt, found := in.Lookup(id)
	if !found || tt.Kind != KindIndexedAccess || int(tt.Payload) >= len(in.indexedAccesses) {
		return NoTypeID, NoTypeID, false
	}
	rec := in.indexedAccesses[tt.Payload]
	return rec.Object, rec.Index, true
}

// TemplateSpan is one element of a template-literal type's alternating
// sequence of literal string fragments and TypeID holes (spec §3.1). A span
// with Hole == NoTypeID represents a trailing/only literal fragment.
type TemplateSpan struct {
	Literal Atom
	Hole    TypeID // NoTypeID if this span is a trailing literal fragment
}

// TemplateLiteralInfo stores the span sequence for a template-literal type.
type TemplateLiteralInfo struct {
	Spans []TemplateSpan
}

// TemplateLiteral interns a template-literal type from its alternating spans.
func (in *Interner) TemplateLiteral(spans []TemplateSpan) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		if in.types[id].Kind != KindTemplateLiteral {
			continue
		}
		info, ok := in.TemplateLiteralInfo(id)
		if ok && slices.Equal(info.Spans, spans) {
			return id
		}
	}
	cloned := make([]TemplateSpan, len(spans))
	copy(cloned, spans)
	in.templates = append(in.templates, TemplateLiteralInfo{Spans: cloned})
	slot, err := safecast.Conv[uint32](len(in.templates) - 1)
	if err != nil {
		panic(fmt.Errorf("types: template literal overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindTemplateLiteral, Payload: slot})
}

// TemplateLiteralInfo reads back the span sequence of a template-literal type.
func (in *Interner) TemplateLiteralInfo(id TypeID) (*TemplateLiteralInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTemplateLiteral || int(tt.Payload) >= len(in.templates) {
		return nil, false
	}
	return &in.templates[tt.Payload], true
}

// ApplicationInfo backs `Base<Arg1, ..., ArgN>` (spec §3.1).
type ApplicationInfo struct {
	Base TypeID
	Args []TypeID
}

// Application interns a generic application. The evaluator resolves it
// eagerly where possible (spec §4.3.4); the interner just records the shape.
func (in *Interner) Application(base TypeID, args []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		if in.types[id].Kind != KindApplication {
			continue
		}
		info, ok := in.ApplicationInfo(id)
		if ok && info.Base == base && slices.Equal(info.Args, args) {
			return id
		}
	}
	in.applications = append(in.applications, ApplicationInfo{Base: base, Args: cloneTypeArgs(args)})
	slot, err := safecast.Conv[uint32](len(in.applications) - 1)
	if err != nil {
		panic(fmt.Errorf("types: application overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindApplication, Payload: slot})
}

// ApplicationInfo reads back the base/args of a generic application.
func (in *Interner) ApplicationInfo(id TypeID) (*ApplicationInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindApplication || int(tt.Payload) >= len(in.applications) {
		return nil, false
	}
	return &in.applications[tt.Payload], true
}

// TypeQueryInfo backs `typeof x` in type position (spec §3.1). TargetSymbol
// is an opaque handle owned by the binder (spec §6.2 SymbolId); the core
// never interprets it beyond storing and reading it back.
type TypeQueryInfo struct {
	TargetSymbol uint64
	TypeArgs     []TypeID
}

// TypeQuery interns a `typeof` type-query node.
func (in *Interner) TypeQuery(targetSymbol uint64, typeArgs []TypeID) TypeID {
	rec := TypeQueryInfo{TargetSymbol: targetSymbol, TypeArgs: cloneTypeArgs(typeArgs)}
	for i := 1; i < len(in.typeQueries); i++ {
		if in.typeQueries[i].TargetSymbol == rec.TargetSymbol && slices.Equal(in.typeQueries[i].TypeArgs, rec.TypeArgs) {
			slot, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("types: type query overflow: %w", err))
			}
			return in.Intern(Type{Kind: KindTypeQuery, Payload: slot})
		}
	}
	in.typeQueries = append(in.typeQueries, rec)
	slot, err := safecast.Conv[uint32](len(in.typeQueries) - 1)
	if err != nil {
		panic(fmt.Errorf("types: type query overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindTypeQuery, Payload: slot})
}

// TypeQueryInfo reads back a `typeof` type-query node.
func (in *Interner) TypeQueryInfo(id TypeID) (*TypeQueryInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeQuery || int(tt.Payload) >= len(in.typeQueries) {
		return nil, false
	}
	return &in.typeQueries[tt.Payload], true
}

// UniqueSymbolInfo carries the originating declaration reference for
// `unique symbol` (spec §3.1). Declaration is an opaque binder handle.
type UniqueSymbolInfo struct {
	Declaration uint64
}

// UniqueSymbol interns a `unique symbol` handle.
func (in *Interner) UniqueSymbol(declaration uint64) TypeID {
	for i := 1; i < len(in.uniqueSymbols); i++ {
		if in.uniqueSymbols[i].Declaration == declaration {
			slot, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("types: unique symbol overflow: %w", err))
			}
			return in.Intern(Type{Kind: KindUniqueSymbol, Payload: slot})
		}
	}
	in.uniqueSymbols = append(in.uniqueSymbols, UniqueSymbolInfo{Declaration: declaration})
	slot, err := safecast.Conv[uint32](len(in.uniqueSymbols) - 1)
	if err != nil {
		panic(fmt.Errorf("types: unique symbol overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindUniqueSymbol, Payload: slot})
}

// ModuleNamespace interns an opaque module-level namespace type identified
// by a binder-owned handle.
func (in *Interner) ModuleNamespace(handle uint64) TypeID {
	slot, err := safecast.Conv[uint32](handle) //nolint:gosec // callers pass small stable handles
	if err != nil {
		slot = 0
	}
	return in.Intern(Type{Kind: KindModuleNamespace, Payload: slot})
}

// Recursive interns a self-referential form whose Elem names the enclosing
// type by its TypeID (spec §3.2, §9). The glue layer hands out
// Recursive(NoTypeID) as the placeholder for a declaration that refers to
// itself while it is being resolved. Nothing in the core resolves a
// Recursive node back to the type it names; Display renders it as `...`.
func (in *Interner) Recursive(self TypeID) TypeID {
	return in.Intern(Type{Kind: KindRecursive, Elem: self})
}
