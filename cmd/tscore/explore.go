package main

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tscore/internal/config"
	"tscore/internal/diag"
	"tscore/internal/glue"
	"tscore/internal/source"
	"tscore/internal/types"
)

// propertyCollator orders an object shape's properties by name for display;
// property insertion order reflects declaration order, not anything a reader
// would expect to browse by.
var propertyCollator = collate.New(language.Und)

func newExploreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore <fixture.toml|snapshot.tscdump>",
		Short: "Interactively browse a compiled type's structural decomposition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(args[0])
		},
	}
	return cmd
}

func runExplore(path string) error {
	in, root, err := loadForExplore(path)
	if err != nil {
		return err
	}
	m := newExploreModel(in, root)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	return nil
}

// loadForExplore accepts either a .tscdump snapshot or a raw fixture, so
// `explore` can be pointed at either the output of `dump` or a fixture
// still being authored.
func loadForExplore(path string) (*types.Interner, types.TypeID, error) {
	if _, in, root, err := loadSnapshotFile(path); err == nil {
		return in, root, nil
	}

	spec, err := loadFixture(path)
	if err != nil {
		return nil, types.NoTypeID, err
	}
	builder := newFixtureBuilder(spec, source.NewInterner())
	if err := builder.build(); err != nil {
		return nil, types.NoTypeID, err
	}
	compiler := glue.NewWithBudgets(nil, diag.BagReporter{Bag: diag.NewBag(64)}, config.Default())
	compiler.Interner.Strings = builder.strings // share the atom table the fixture was built with
	compiler.Resolver = wireAliases(compiler, builder)
	rootIdx, err := builder.node(spec.Root)
	if err != nil {
		return nil, types.NoTypeID, err
	}
	return compiler.Interner, compiler.LowerType(builder.tree, rootIdx), nil
}

// childItem is one structural child offered at the current navigation
// level, e.g. a union member, an object property, or an array element type.
type childItem struct {
	label string
	id    types.TypeID
}

func (c childItem) FilterValue() string { return c.label }
func (c childItem) Title() string       { return c.label }
func (c childItem) Description() string { return "" }

type exploreModel struct {
	in      *types.Interner
	stack   []types.TypeID // navigation history, current node is stack[len(stack)-1]
	list    list.Model
	width   int
	height  int
}

func newExploreModel(in *types.Interner, root types.TypeID) exploreModel {
	m := exploreModel{in: in, stack: []types.TypeID{root}}
	m.list = list.New(nil, list.NewDefaultDelegate(), 0, 0)
	m.list.Title = "structural children"
	m.refreshList()
	return m
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m *exploreModel) current() types.TypeID {
	return m.stack[len(m.stack)-1]
}

// refreshList repopulates the child list for the current node: the element
// of an array-like wrapper, union/intersection members, tuple elements,
// object properties (sorted by name), a conditional's four parts, and an
// indexed access's object and key. Other kinds have no listed children.
func (m *exploreModel) refreshList() {
	id := m.current()
	var items []list.Item
	tt, ok := m.in.Lookup(id)
	if !ok {
		m.list.SetItems(items)
		return
	}
	switch tt.Kind {
	case types.KindArray, types.KindReadonly, types.KindNoInfer, types.KindKeyOf:
		items = append(items, childItem{label: "elem: " + m.in.Display(tt.Elem), id: tt.Elem})
	case types.KindUnion:
		members, _ := m.in.UnionMembers(id)
		for i, mem := range members {
			items = append(items, childItem{label: fmt.Sprintf("[%d] %s", i, m.in.Display(mem)), id: mem})
		}
	case types.KindIntersection:
		members, _ := m.in.IntersectionMembers(id)
		for i, mem := range members {
			items = append(items, childItem{label: fmt.Sprintf("[%d] %s", i, m.in.Display(mem)), id: mem})
		}
	case types.KindTuple:
		info, _ := m.in.TupleInfo(id)
		for i, e := range info.Elems {
			items = append(items, childItem{label: fmt.Sprintf("[%d] %s", i, m.in.Display(e.Type)), id: e.Type})
		}
	case types.KindObject:
		shape, _ := m.in.ObjectShape(id)
		props := append([]types.PropertyInfo(nil), shape.Properties...)
		sort.Slice(props, func(i, j int) bool {
			return propertyCollator.CompareString(
				m.in.Strings.MustLookup(props[i].Name),
				m.in.Strings.MustLookup(props[j].Name),
			) < 0
		})
		for _, p := range props {
			name := m.in.Strings.MustLookup(p.Name)
			items = append(items, childItem{label: name + ": " + m.in.Display(p.ReadType), id: p.ReadType})
		}
	case types.KindConditional:
		rec, _ := m.in.ConditionalInfo(id)
		items = append(items,
			childItem{label: "check: " + m.in.Display(rec.CheckType), id: rec.CheckType},
			childItem{label: "extends: " + m.in.Display(rec.ExtendsType), id: rec.ExtendsType},
			childItem{label: "true: " + m.in.Display(rec.TrueType), id: rec.TrueType},
			childItem{label: "false: " + m.in.Display(rec.FalseType), id: rec.FalseType},
		)
	case types.KindIndexedAccess:
		obj, key, _ := m.in.IndexedAccessInfo(id)
		items = append(items,
			childItem{label: "object: " + m.in.Display(obj), id: obj},
			childItem{label: "key: " + m.in.Display(key), id: key},
		)
	}
	m.list.SetItems(items)
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
				m.refreshList()
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(childItem); ok {
				m.stack = append(m.stack, item.id)
				m.refreshList()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func (m exploreModel) View() string {
	header := headerStyle.Render(m.in.Display(m.current()))
	return header + "\n" + m.list.View()
}
