package types

import "tscore/internal/source"

// Snapshot is the msgpack-serializable form of an Interner: every side
// table plus the string table, in exactly the order their TypeIDs/StringIDs
// index into them. Restoring a Snapshot reproduces every TypeID the
// original Interner ever handed out, so callers can persist a compiled
// fixture's types and reload them without re-lowering (cmd/tscore's
// `dump`/`load` subcommands).
type Snapshot struct {
	Strings []string `msgpack:"strings"`

	Types []Type `msgpack:"types"`

	Builtins Builtins `msgpack:"builtins"`

	Literals        []Literal              `msgpack:"literals"`
	MemberLists     [][]TypeID             `msgpack:"member_lists"`
	Tuples          []TupleInfo            `msgpack:"tuples"`
	ObjectShapes    []ObjectShape          `msgpack:"object_shapes"`
	CallableShapes  []CallableShape        `msgpack:"callable_shapes"`
	TypeParams      []TypeParameterInfo    `msgpack:"type_params"`
	Conditionals    []ConditionalRecord    `msgpack:"conditionals"`
	MappedTypes     []MappedRecord         `msgpack:"mapped_types"`
	IndexedAccesses []indexedAccessSnap    `msgpack:"indexed_accesses"`
	Templates       []TemplateLiteralInfo  `msgpack:"templates"`
	Applications    []ApplicationInfo      `msgpack:"applications"`
	TypeQueries     []TypeQueryInfo        `msgpack:"type_queries"`
	UniqueSymbols   []UniqueSymbolInfo     `msgpack:"unique_symbols"`
}

// indexedAccessSnap mirrors the package-private indexedAccessInfo so the
// side table can round-trip through msgpack without exporting the type
// everywhere else in the package.
type indexedAccessSnap struct {
	Object TypeID `msgpack:"object"`
	Index  TypeID `msgpack:"index"`
}

// Snapshot captures the Interner's entire state for serialization.
func (in *Interner) Snapshot() Snapshot {
	memberLists := make([][]TypeID, len(in.memberLists))
	for i, m := range in.memberLists {
		memberLists[i] = cloneTypeArgs(m.Members)
	}
	indexedAccesses := make([]indexedAccessSnap, len(in.indexedAccesses))
	for i, rec := range in.indexedAccesses {
		indexedAccesses[i] = indexedAccessSnap{Object: rec.Object, Index: rec.Index}
	}
	return Snapshot{
		Strings:         in.Strings.Snapshot(),
		Types:           append([]Type(nil), in.types...),
		Builtins:        in.builtins,
		Literals:        append([]Literal(nil), in.literals...),
		MemberLists:     memberLists,
		Tuples:          append([]TupleInfo(nil), in.tuples...),
		ObjectShapes:    append([]ObjectShape(nil), in.objectShapes...),
		CallableShapes:  append([]CallableShape(nil), in.callableShapes...),
		TypeParams:      append([]TypeParameterInfo(nil), in.typeParams...),
		Conditionals:    append([]ConditionalRecord(nil), in.conditionals...),
		MappedTypes:     append([]MappedRecord(nil), in.mappedTypes...),
		IndexedAccesses: indexedAccesses,
		Templates:       append([]TemplateLiteralInfo(nil), in.templates...),
		Applications:    append([]ApplicationInfo(nil), in.applications...),
		TypeQueries:     append([]TypeQueryInfo(nil), in.typeQueries...),
		UniqueSymbols:   append([]UniqueSymbolInfo(nil), in.uniqueSymbols...),
	}
}

// NewInternerFromSnapshot rebuilds an Interner exactly as Snapshot captured
// it: every TypeID and StringID the original interner handed out resolves
// to the same descriptor again.
func NewInternerFromSnapshot(snap Snapshot) *Interner {
	memberLists := make([]memberList, len(snap.MemberLists))
	for i, m := range snap.MemberLists {
		memberLists[i] = memberList{Members: cloneTypeArgs(m)}
	}
	indexedAccesses := make([]indexedAccessInfo, len(snap.IndexedAccesses))
	for i, rec := range snap.IndexedAccesses {
		indexedAccesses[i] = indexedAccessInfo{Object: rec.Object, Index: rec.Index}
	}

	in := &Interner{
		types:           append([]Type(nil), snap.Types...),
		index:           make(map[typeKey]TypeID, len(snap.Types)),
		builtins:        snap.Builtins,
		Strings:         source.NewInternerFromSnapshot(snap.Strings),
		literals:        append([]Literal(nil), snap.Literals...),
		memberLists:     memberLists,
		tuples:          append([]TupleInfo(nil), snap.Tuples...),
		objectShapes:    append([]ObjectShape(nil), snap.ObjectShapes...),
		callableShapes:  append([]CallableShape(nil), snap.CallableShapes...),
		typeParams:      append([]TypeParameterInfo(nil), snap.TypeParams...),
		conditionals:    append([]ConditionalRecord(nil), snap.Conditionals...),
		mappedTypes:     append([]MappedRecord(nil), snap.MappedTypes...),
		indexedAccesses: indexedAccesses,
		templates:       append([]TemplateLiteralInfo(nil), snap.Templates...),
		applications:    append([]ApplicationInfo(nil), snap.Applications...),
		typeQueries:     append([]TypeQueryInfo(nil), snap.TypeQueries...),
		uniqueSymbols:   append([]UniqueSymbolInfo(nil), snap.UniqueSymbols...),
	}
	for id, t := range in.types {
		in.index[typeKey(t)] = TypeID(id)
	}
	return in
}
