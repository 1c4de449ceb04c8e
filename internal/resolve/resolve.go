// Package resolve is the lowerer's window into the binder (spec §6.2): a
// capability object of four optional callbacks, each returning an opaque
// handle the core stores but never interprets.
package resolve

import "tscore/internal/typeast"

// DefinitionID is an opaque handle to a type-parameter or interface
// declaration, owned by the binder.
type DefinitionID uint64

// NoDefinitionID marks the absence of a definition.
const NoDefinitionID DefinitionID = 0

// IsValid reports whether id was actually resolved.
func (id DefinitionID) IsValid() bool { return id != NoDefinitionID }

// SymbolID is an opaque handle to a type or value symbol, owned by the
// binder.
type SymbolID uint64

// NoSymbolID marks the absence of a symbol.
const NoSymbolID SymbolID = 0

// IsValid reports whether id was actually resolved.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// Callbacks bundles the four resolver hooks. Any may be nil; the lowerer
// treats a nil hook as "never resolves" and falls through to the next
// strategy, finally lowering to ERROR (spec §4.2.4).
type Callbacks struct {
	// DefID resolves a type-parameter reference node to the definition it
	// was bound by, e.g. a scope-stack miss that the binder still knows
	// about from an outer declaration.
	DefID func(typeast.NodeIndex) (DefinitionID, bool)

	// DefIDByName resolves a bare name to a definition when positional
	// lookup (DefID) did not apply, e.g. a forward reference within a
	// type-parameter list (spec §4.2.3).
	DefIDByName func(name string) (DefinitionID, bool)

	// TypeSymbol resolves an identifier type reference node to a type
	// symbol (interface, type alias, enum, ...).
	TypeSymbol func(typeast.NodeIndex) (SymbolID, bool)

	// ValueSymbol resolves an identifier type reference node to a value
	// symbol, for `typeof x` type queries.
	ValueSymbol func(typeast.NodeIndex) (SymbolID, bool)
}

// Resolver is the callback bundle plus the convenience wrappers the
// lowerer calls; a zero Resolver has every hook absent.
type Resolver struct {
	cb Callbacks
}

// New builds a Resolver from the given callbacks. Any field left nil is
// simply never consulted.
func New(cb Callbacks) *Resolver {
	return &Resolver{cb: cb}
}

// ResolveDefID resolves a definition by node, reporting false if the hook
// is absent or it found nothing.
func (r *Resolver) ResolveDefID(idx typeast.NodeIndex) (DefinitionID, bool) {
	if r == nil || r.cb.DefID == nil {
		return NoDefinitionID, false
	}
	return r.cb.DefID(idx)
}

// ResolveDefIDByName resolves a definition by textual name.
func (r *Resolver) ResolveDefIDByName(name string) (DefinitionID, bool) {
	if r == nil || r.cb.DefIDByName == nil {
		return NoDefinitionID, false
	}
	return r.cb.DefIDByName(name)
}

// ResolveTypeSymbol resolves an identifier reference to a type symbol.
func (r *Resolver) ResolveTypeSymbol(idx typeast.NodeIndex) (SymbolID, bool) {
	if r == nil || r.cb.TypeSymbol == nil {
		return NoSymbolID, false
	}
	return r.cb.TypeSymbol(idx)
}

// ResolveValueSymbol resolves an identifier reference to a value symbol,
// for `typeof` queries.
func (r *Resolver) ResolveValueSymbol(idx typeast.NodeIndex) (SymbolID, bool) {
	if r == nil || r.cb.ValueSymbol == nil {
		return NoSymbolID, false
	}
	return r.cb.ValueSymbol(idx)
}
