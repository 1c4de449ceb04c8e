package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"tscore/internal/glue"
	"tscore/internal/resolve"
	"tscore/internal/source"
	"tscore/internal/typeast"
)

// nodeSpec is one TOML-declared node in a fixture file. Real lexing and
// parsing are out of scope (spec §1), so a fixture describes a node arena
// directly rather than source text: each entry names a NodeKind by its
// TOML tag and the indices of any child nodes.
type nodeSpec struct {
	Kind     string `toml:"kind"`
	Children []int  `toml:"children"` // 0-based indices into fixture.Nodes
	Name     string `toml:"name"`      // reference name, or tuple member name
	Text     string `toml:"text"`      // numeric/string literal text
	Bool     bool   `toml:"bool"`
	Optional bool   `toml:"optional"`
	Rest     bool   `toml:"rest"`
}

// aliasSpec names one fixture node as a referenceable declaration, so other
// nodes can resolve to it by name through the ordinary identifier-
// resolution path (spec §4.2.4) instead of a fixture-private shortcut.
type aliasSpec struct {
	Name string `toml:"name"`
	Node int    `toml:"node"` // 0-based index into fixture.Nodes
}

// interfaceGroup names a set of fixture nodes to lower as one merged
// interface declaration (spec §4.2.2). No subcommand reads Interfaces, and
// the node builder accepts no "interface" node kind.
type interfaceGroup struct {
	Name  string `toml:"name"`
	Nodes []int  `toml:"nodes"`
}

// fixture is the top-level TOML document `tscore check` consumes.
type fixture struct {
	Nodes      []nodeSpec        `toml:"nodes"`
	Aliases    []aliasSpec       `toml:"aliases"`
	Interfaces []interfaceGroup  `toml:"interfaces"`
	Root       int               `toml:"root"` // 0-based index of the node to lower and print
}

func loadFixture(path string) (fixture, error) {
	var f fixture
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return fixture{}, fmt.Errorf("fixture: decoding %s: %w", path, err)
	}
	return f, nil
}

var keywordKinds = map[string]typeast.NodeKind{
	"any":       typeast.NodeAny,
	"unknown":   typeast.NodeUnknown,
	"never":     typeast.NodeNever,
	"void":      typeast.NodeVoid,
	"undefined": typeast.NodeUndefined,
	"null":      typeast.NodeNull,
	"boolean":   typeast.NodeBoolean,
	"number":    typeast.NodeNumber,
	"string":    typeast.NodeString,
	"bigint":    typeast.NodeBigInt,
	"symbol":    typeast.NodeSymbol,
	"object":    typeast.NodeObjectKeyword,
	"this":      typeast.NodeThis,
}

// fixtureBuilder lowers a fixture's node list into a typeast.Tree, then
// exposes each node's resulting NodeIndex for later lowering.
type fixtureBuilder struct {
	tree    *typeast.Tree
	strings *source.Interner
	built   []typeast.NodeIndex // one slot per fixture.Nodes entry, lazily filled
	spec    fixture
}

func newFixtureBuilder(spec fixture, strings *source.Interner) *fixtureBuilder {
	return &fixtureBuilder{
		tree:    typeast.NewTree(uint(len(spec.Nodes))),
		strings: strings,
		built:   make([]typeast.NodeIndex, len(spec.Nodes)),
		spec:    spec,
	}
}

// build lowers every fixture node into the arena, failing fast on the first
// structurally invalid entry.
func (b *fixtureBuilder) build() error {
	for i := range b.spec.Nodes {
		if _, err := b.node(i); err != nil {
			return err
		}
	}
	return nil
}

func (b *fixtureBuilder) node(i int) (typeast.NodeIndex, error) {
	if i < 0 || i >= len(b.spec.Nodes) {
		return typeast.NoNodeIndex, fmt.Errorf("fixture: node index %d out of range", i)
	}
	if b.built[i] != typeast.NoNodeIndex {
		return b.built[i], nil
	}
	spec := b.spec.Nodes[i]
	var span source.Span

	if kind, ok := keywordKinds[spec.Kind]; ok {
		idx := b.tree.NewKeyword(kind, span)
		b.built[i] = idx
		return idx, nil
	}

	switch spec.Kind {
	case "literal-string":
		idx := b.tree.NewLiteral(span, typeast.Literal{Kind: typeast.LiteralTypeString, Text: b.strings.Intern(spec.Text)})
		b.built[i] = idx
		return idx, nil
	case "literal-number", "literal-bigint":
		k := typeast.LiteralTypeNumber
		if spec.Kind == "literal-bigint" {
			k = typeast.LiteralTypeBigInt
		}
		idx := b.tree.NewLiteral(span, typeast.Literal{Kind: k, Text: b.strings.Intern(spec.Text)})
		b.built[i] = idx
		return idx, nil
	case "literal-boolean":
		idx := b.tree.NewLiteral(span, typeast.Literal{Kind: typeast.LiteralTypeBoolean, Bool: spec.Bool})
		b.built[i] = idx
		return idx, nil
	case "union", "intersection":
		members, err := b.children(spec.Children)
		if err != nil {
			return typeast.NoNodeIndex, err
		}
		kind := typeast.NodeUnion
		if spec.Kind == "intersection" {
			kind = typeast.NodeIntersection
		}
		idx := b.tree.NewMemberList(kind, span, members)
		b.built[i] = idx
		return idx, nil
	case "array":
		if len(spec.Children) != 1 {
			return typeast.NoNodeIndex, fmt.Errorf("fixture: node %d: array needs exactly one child", i)
		}
		elem, err := b.node(spec.Children[0])
		if err != nil {
			return typeast.NoNodeIndex, err
		}
		idx := b.tree.NewUnary(typeast.NodeArrayType, span, elem)
		b.built[i] = idx
		return idx, nil
	case "readonly", "keyof":
		if len(spec.Children) != 1 {
			return typeast.NoNodeIndex, fmt.Errorf("fixture: node %d: %s needs exactly one child", i, spec.Kind)
		}
		elem, err := b.node(spec.Children[0])
		if err != nil {
			return typeast.NoNodeIndex, err
		}
		kind := typeast.NodeReadonlyOperator
		if spec.Kind == "keyof" {
			kind = typeast.NodeKeyOfOperator
		}
		idx := b.tree.NewUnary(kind, span, elem)
		b.built[i] = idx
		return idx, nil
	case "tuple":
		elems := make([]typeast.TupleMember, len(spec.Children))
		for j, childIdx := range spec.Children {
			m, err := b.node(childIdx)
			if err != nil {
				return typeast.NoNodeIndex, err
			}
			childSpec := b.spec.Nodes[childIdx]
			elems[j] = typeast.TupleMember{
				Type:     m,
				Optional: childSpec.Optional,
				Rest:     childSpec.Rest,
				Name:     b.strings.Intern(childSpec.Name),
			}
		}
		idx := b.tree.NewTuple(span, elems)
		b.built[i] = idx
		return idx, nil
	case "reference":
		idx := b.tree.NewTypeReference(typeast.NodeTypeReference, span, typeast.TypeReference{
			Segments: []typeast.PathSegment{{Name: b.strings.Intern(spec.Name)}},
		})
		b.built[i] = idx
		return idx, nil
	default:
		return typeast.NoNodeIndex, fmt.Errorf("fixture: node %d: unsupported kind %q", i, spec.Kind)
	}
}

func (b *fixtureBuilder) children(indices []int) ([]typeast.NodeIndex, error) {
	out := make([]typeast.NodeIndex, len(indices))
	for i, idx := range indices {
		n, err := b.node(idx)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// wireAliases registers each named alias as a resolvable declaration on
// compiler, via a DefIDByName resolver callback keyed on fixture-assigned
// names (spec §4.2.4, §4.5) — the same path a real binder would use.
func wireAliases(compiler *glue.Compiler, b *fixtureBuilder) *resolve.Resolver {
	byName := make(map[string]resolve.DefinitionID, len(b.spec.Aliases))
	var nextID resolve.DefinitionID = 1
	for _, a := range b.spec.Aliases {
		id := nextID
		nextID++
		byName[a.Name] = id
		compiler.RegisterDeclaration(id, b.tree, b.built[a.Node])
	}
	resolver := resolve.New(resolve.Callbacks{
		DefIDByName: func(name string) (resolve.DefinitionID, bool) {
			id, ok := byName[name]
			return id, ok
		},
	})
	compiler.Resolver = resolver
	return resolver
}
