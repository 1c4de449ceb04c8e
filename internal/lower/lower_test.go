package lower

import (
	"testing"

	"tscore/internal/resolve"
	"tscore/internal/source"
	"tscore/internal/types"
	"tscore/internal/typeast"
)

func TestLower_Keywords(t *testing.T) {
	tree := typeast.NewTree(4)
	in := types.NewInterner()
	c := NewContext(tree, in, nil)

	idx := tree.NewKeyword(typeast.NodeString, source.Span{})
	if got := c.Lower(idx); got != in.Builtins().String {
		t.Fatalf("Lower(string) = %v, want %v", in.Display(got), in.Display(in.Builtins().String))
	}
}

func TestLower_InvalidNodeIndexIsError(t *testing.T) {
	tree := typeast.NewTree(0)
	in := types.NewInterner()
	c := NewContext(tree, in, nil)

	if got := c.Lower(typeast.NoNodeIndex); got != in.Builtins().Error {
		t.Fatalf("Lower(NoNodeIndex) = %v, want ERROR", in.Display(got))
	}
}

func TestLower_Union(t *testing.T) {
	tree := typeast.NewTree(4)
	in := types.NewInterner()
	c := NewContext(tree, in, nil)

	a := tree.NewKeyword(typeast.NodeString, source.Span{})
	b := tree.NewKeyword(typeast.NodeNumber, source.Span{})
	u := tree.NewMemberList(typeast.NodeUnion, source.Span{}, []typeast.NodeIndex{a, b})

	got := c.Lower(u)
	members, ok := in.UnionMembers(got)
	if !ok || len(members) != 2 {
		t.Fatalf("Lower(union) = %v, want a two-member union", in.Display(got))
	}
}

func TestLowerReturnAnnotation_IntersectionWrappedPredicateUnwraps(t *testing.T) {
	tree := typeast.NewTree(8)
	in := types.NewInterner()
	c := NewContext(tree, in, nil)

	paramName := in.Strings.Intern("x")
	predType := tree.NewKeyword(typeast.NodeString, source.Span{})
	pred := tree.NewTypePredicate(source.Span{}, typeast.TypePredicate{ParamName: paramName, Type: predType})
	other := tree.NewKeyword(typeast.NodeUnknown, source.Span{})
	wrapped := tree.NewMemberList(typeast.NodeIntersection, source.Span{}, []typeast.NodeIndex{pred, other})

	returnType, predicate := c.lowerReturnAnnotation(wrapped)
	if returnType != in.Builtins().Boolean {
		t.Fatalf("lowerReturnAnnotation(intersection-wrapped predicate) return = %v, want boolean", in.Display(returnType))
	}
	if predicate == nil {
		t.Fatalf("lowerReturnAnnotation(intersection-wrapped predicate) predicate = nil, want non-nil")
	}
	if predicate.Type != in.Builtins().String {
		t.Fatalf("predicate.Type = %v, want string", in.Display(predicate.Type))
	}
}

func TestLower_ArrayOfTuple(t *testing.T) {
	tree := typeast.NewTree(4)
	in := types.NewInterner()
	c := NewContext(tree, in, nil)

	str := tree.NewKeyword(typeast.NodeString, source.Span{})
	num := tree.NewKeyword(typeast.NodeNumber, source.Span{})
	tup := tree.NewTuple(source.Span{}, []typeast.TupleMember{{Type: str}, {Type: num, Optional: true}})
	arr := tree.NewUnary(typeast.NodeArrayType, source.Span{}, tup)

	got := c.Lower(arr)
	tt, ok := in.Lookup(got)
	if !ok || tt.Kind != types.KindArray {
		t.Fatalf("Lower(array-of-tuple) = %v, want an array", in.Display(got))
	}
	tupInfo, ok := in.TupleInfo(tt.Elem)
	if !ok || len(tupInfo.Elems) != 2 || !tupInfo.Elems[1].Optional {
		t.Fatalf("unexpected tuple payload: %+v, ok=%v", tupInfo, ok)
	}
}

func TestLower_BudgetExhaustionReturnsError(t *testing.T) {
	tree := typeast.NewTree(4)
	in := types.NewInterner()
	c := NewContextWithBudget(tree, in, nil, 1)

	a := tree.NewKeyword(typeast.NodeString, source.Span{})
	b := tree.NewKeyword(typeast.NodeNumber, source.Span{})
	u := tree.NewMemberList(typeast.NodeUnion, source.Span{}, []typeast.NodeIndex{a, b})

	// the union node itself consumes the single tick; its members must fall
	// through to ERROR once the budget is latched exhausted.
	got := c.Lower(u)
	members, ok := in.UnionMembers(got)
	if ok {
		for _, m := range members {
			if m != in.Builtins().Error {
				t.Fatalf("expected every member to fall back to ERROR once exhausted, got %v", in.Display(m))
			}
		}
	}
}

func TestLower_TypeReference_ResolvesByName(t *testing.T) {
	tree := typeast.NewTree(4)
	in := types.NewInterner()
	strs := in.Strings
	c := NewContext(tree, in, resolve.New(resolve.Callbacks{
		DefIDByName: func(name string) (resolve.DefinitionID, bool) {
			if name == "T" {
				return resolve.DefinitionID(1), true
			}
			return resolve.NoDefinitionID, false
		},
	}))
	c.ResolveDeclaration = func(id resolve.DefinitionID) types.TypeID {
		if id == 1 {
			return in.Builtins().Number
		}
		return in.Builtins().Error
	}

	ref := tree.NewTypeReference(typeast.NodeTypeReference, source.Span{}, typeast.TypeReference{
		Segments: []typeast.PathSegment{{Name: strs.Intern("T")}},
	})

	if got := c.Lower(ref); got != in.Builtins().Number {
		t.Fatalf("Lower(reference to T) = %v, want number", in.Display(got))
	}
}

func TestLower_TypeReference_UnresolvedIsError(t *testing.T) {
	tree := typeast.NewTree(4)
	in := types.NewInterner()
	strs := in.Strings
	c := NewContext(tree, in, resolve.New(resolve.Callbacks{}))

	ref := tree.NewTypeReference(typeast.NodeTypeReference, source.Span{}, typeast.TypeReference{
		Segments: []typeast.PathSegment{{Name: strs.Intern("Missing")}},
	})

	if got := c.Lower(ref); got != in.Builtins().Error {
		t.Fatalf("Lower(unresolved reference) = %v, want ERROR", in.Display(got))
	}
}
