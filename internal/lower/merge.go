package lower

import (
	"tscore/internal/subtype"
	"tscore/internal/types"
	"tscore/internal/typeast"
)

// memberKind distinguishes what occupies a working-record property slot
// before finalisation (spec §4.2.2).
type memberKind uint8

const (
	memberProperty memberKind = iota
	memberMethodOverloads
	memberConflict
)

// workingMember is one entry of the merge working record's Properties map.
type workingMember struct {
	kind      memberKind
	prop      types.PropertyInfo   // valid when kind == memberProperty or memberConflict
	overloads []types.CallSignature // valid when kind == memberMethodOverloads
	optional  bool                   // accumulated for memberMethodOverloads
	readonly  bool                   // accumulated for memberMethodOverloads (conjunction)
	readonlySeen bool
}

// mergeState accumulates interface members across one or more declarations
// (possibly living in different node arenas) before finalisation.
type mergeState struct {
	order       []types.Atom
	members     map[types.Atom]*workingMember
	callSigs    []types.CallSignature
	constructSigs []types.CallSignature
	stringIndex *types.IndexSignature
	numberIndex *types.IndexSignature
}

func newMergeState() *mergeState {
	return &mergeState{members: make(map[types.Atom]*workingMember)}
}

// LowerMergedInterfaceDeclarations lowers and merges the named interface
// declarations (spec §4.2.2 and §4.5's lower-one-interface-merge). Each
// entry may belong to a different arena; callers pass one Context per
// arena, all sharing one budget/scope stack via Derive.
func LowerMergedInterfaceDeclarations(decls []DeclRef) types.TypeID {
	if len(decls) == 0 {
		return types.NoTypeID
	}
	state := newMergeState()
	var anyCtx *Context
	for _, d := range decls {
		decl, ok := d.Ctx.Tree.InterfaceDecl(d.Node)
		if !ok {
			continue
		}
		anyCtx = d.Ctx
		body, ok := d.Ctx.Tree.TypeLiteral(decl.Body)
		if !ok {
			continue
		}
		d.Ctx.mergeBody(state, body)
	}
	if anyCtx == nil {
		return types.NoTypeID
	}
	return anyCtx.finalizeMerge(state)
}

// DeclRef pairs a NodeInterfaceDecl with the context (and therefore the
// arena) it must be lowered in.
type DeclRef struct {
	Ctx  *Context
	Node typeast.NodeIndex
}

func (c *Context) mergeBody(state *mergeState, body typeast.InterfaceBody) {
	for _, p := range body.Properties {
		c.mergeProperty(state, p)
	}
	for _, m := range body.Methods {
		c.mergeMethod(state, m)
	}
	for _, sig := range body.CallSignatures {
		s, _ := c.Tree.Signature(sig)
		state.callSigs = append(state.callSigs, c.lowerSignature(s))
	}
	for _, sig := range body.ConstructSignatures {
		s, _ := c.Tree.Signature(sig)
		state.constructSigs = append(state.constructSigs, c.lowerSignature(s))
	}
	if body.StringIndex != nil {
		state.stringIndex = c.mergeIndex(state.stringIndex, *body.StringIndex)
	}
	if body.NumberIndex != nil {
		state.numberIndex = c.mergeIndex(state.numberIndex, *body.NumberIndex)
	}
}

func (c *Context) mergeIndex(existing *types.IndexSignature, sig typeast.IndexSig) *types.IndexSignature {
	lowered := &types.IndexSignature{
		KeyType:   c.Lower(sig.KeyType),
		ValueType: c.Lower(sig.ValueType),
		Readonly:  sig.Readonly,
	}
	if existing == nil {
		return lowered
	}
	if existing.ValueType != lowered.ValueType || existing.Readonly != lowered.Readonly {
		return &types.IndexSignature{KeyType: existing.KeyType, ValueType: c.err(), Readonly: false}
	}
	return existing
}

func (c *Context) existingOrNew(state *mergeState, name types.Atom) *workingMember {
	if m, ok := state.members[name]; ok {
		return m
	}
	m := &workingMember{}
	state.members[name] = m
	state.order = append(state.order, name)
	return m
}

func (c *Context) mergeProperty(state *mergeState, p typeast.PropertyMember) {
	m := c.existingOrNew(state, p.Name)
	readT := c.Lower(p.Type)
	incoming := types.PropertyInfo{
		Name:      p.Name,
		ReadType:  readT,
		WriteType: readT,
		Optional:  p.Optional,
		Readonly:  p.Readonly,
	}
	switch m.kind {
	case memberMethodOverloads:
		m.kind = memberConflict
		m.prop = types.PropertyInfo{Name: p.Name, ReadType: c.err(), WriteType: c.err()}
	case memberConflict:
		// already poisoned
	default:
		if m.prop.Name == types.NoAtom {
			m.kind = memberProperty
			m.prop = incoming
			return
		}
		if m.prop.ReadType == incoming.ReadType && m.prop.WriteType == incoming.WriteType &&
			m.prop.Readonly == incoming.Readonly && m.prop.IsMethod == incoming.IsMethod {
			m.prop.Optional = m.prop.Optional && incoming.Optional
			return
		}
		m.kind = memberConflict
		m.prop = types.PropertyInfo{
			Name:      p.Name,
			ReadType:  c.err(),
			WriteType: c.err(),
			Optional:  m.prop.Optional && incoming.Optional,
			Readonly:  m.prop.Readonly && incoming.Readonly,
		}
	}
}

func (c *Context) mergeMethod(state *mergeState, meth typeast.MethodMember) {
	m := c.existingOrNew(state, meth.Name)
	sig, _ := c.Tree.Signature(meth.Signature)
	lowered := c.lowerSignature(sig)
	lowered.IsMethod = true

	switch m.kind {
	case memberProperty, memberConflict:
		m.kind = memberConflict
		m.prop = types.PropertyInfo{Name: meth.Name, ReadType: c.err(), WriteType: c.err()}
	default:
		m.kind = memberMethodOverloads
		m.overloads = append(m.overloads, lowered)
		m.optional = m.optional || meth.Optional
		if !m.readonlySeen {
			m.readonly = true
			m.readonlySeen = true
		}
	}
}

// finalizeMerge turns the working record into an Object, ObjectWithIndex,
// or Callable TypeId (spec §4.2.2's finalisation step), verifying every
// concrete property against any covering index signature.
func (c *Context) finalizeMerge(state *mergeState) types.TypeID {
	var properties []types.PropertyInfo
	for _, name := range state.order {
		m := state.members[name]
		switch m.kind {
		case memberProperty, memberConflict:
			properties = append(properties, m.prop)
		case memberMethodOverloads:
			sig := m.overloads[len(m.overloads)-1]
			properties = append(properties, types.PropertyInfo{
				Name:      name,
				ReadType:  c.Interner.Function(sig),
				WriteType: c.Interner.Function(sig),
				Optional:  m.optional,
				Readonly:  m.readonly,
				IsMethod:  true,
			})
		}
	}

	if c.checkIndexCoverage(properties, state.stringIndex, state.numberIndex) {
		return c.err()
	}

	hasCallable := len(state.callSigs) > 0 || len(state.constructSigs) > 0
	if hasCallable {
		return c.Interner.Callable(types.CallableShape{
			CallSignatures:      state.callSigs,
			ConstructSignatures: state.constructSigs,
			Properties:          properties,
			StringIndex:         state.stringIndex,
			NumberIndex:         state.numberIndex,
		})
	}
	if state.stringIndex != nil || state.numberIndex != nil {
		return c.Interner.ObjectWithIndex(types.ObjectShape{
			Properties:  properties,
			StringIndex: state.stringIndex,
			NumberIndex: state.numberIndex,
		})
	}
	return c.Interner.Object(properties)
}

// checkIndexCoverage reports whether any property's type fails to be a
// subtype of a covering index signature's value type (spec §4.2.2): a
// violation means the whole interface lowers to ERROR (spec §7). Meta types
// that can't yet be decided are exempt.
func (c *Context) checkIndexCoverage(properties []types.PropertyInfo, stringIndex, numberIndex *types.IndexSignature) bool {
	if stringIndex == nil && numberIndex == nil {
		return false
	}
	checker := subtype.New(c.Interner)
	for i := range properties {
		if IsExemptFromIndexCheck(c.Interner, properties[i].ReadType) {
			continue
		}
		if stringIndex != nil && !checker.IsSubtype(properties[i].ReadType, stringIndex.ValueType) {
			return true
		}
		if numberIndex != nil && !checker.IsSubtype(properties[i].ReadType, numberIndex.ValueType) {
			return true
		}
	}
	return false
}

// IsExemptFromIndexCheck reports whether id is one of the "meta" kinds the
// index-signature coverage check must not reject outright (spec §4.2.2):
// type parameters, infer, this, type queries, and anything still computed.
func IsExemptFromIndexCheck(in *types.Interner, id types.TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return true
	}
	switch tt.Kind {
	case types.KindTypeParameter, types.KindInfer, types.KindThis, types.KindTypeQuery,
		types.KindConditional, types.KindMapped, types.KindIndexedAccess, types.KindKeyOf:
		return true
	default:
		return false
	}
}
