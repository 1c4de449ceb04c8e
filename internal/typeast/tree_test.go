package typeast

import (
	"testing"

	"tscore/internal/source"
)

func TestArena_AllocateAndGet(t *testing.T) {
	a := NewArena[int](0)
	if got := a.Get(0); got != nil {
		t.Fatalf("Get(0) = %v, want nil", got)
	}
	idx := a.Allocate(42)
	if idx != 1 {
		t.Fatalf("first Allocate index = %d, want 1", idx)
	}
	if got := *a.Get(idx); got != 42 {
		t.Fatalf("Get(%d) = %d, want 42", idx, got)
	}
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", a.Len())
	}
}

func TestTree_KeywordNodeHasNoPayload(t *testing.T) {
	tree := NewTree(4)
	idx := tree.NewKeyword(NodeAny, source.Span{})
	n := tree.Get(idx)
	if n == nil || n.Kind != NodeAny || n.Payload != NoPayloadID {
		t.Fatalf("unexpected keyword node: %+v", n)
	}
}

func TestTree_ArrayTypeRoundTrips(t *testing.T) {
	tree := NewTree(4)
	str := tree.NewKeyword(NodeString, source.Span{})
	arr := tree.NewUnary(NodeArrayType, source.Span{}, str)

	got, ok := tree.Unary(arr)
	if !ok || got.Inner != str {
		t.Fatalf("Unary(arr) = %+v, ok=%v, want Inner=%d", got, ok, str)
	}

	// asking for a payload under the wrong accessor must fail cleanly
	if _, ok := tree.Tuple(arr); ok {
		t.Fatal("expected Tuple() on a non-tuple node to report ok=false")
	}
}

func TestTree_TupleElemsRoundTrip(t *testing.T) {
	tree := NewTree(4)
	strs := source.NewInterner()

	a := tree.NewKeyword(NodeString, source.Span{})
	b := tree.NewKeyword(NodeNumber, source.Span{})
	idx := tree.NewTuple(source.Span{}, []TupleMember{
		{Type: a},
		{Type: b, Optional: true, Name: strs.Intern("b")},
	})

	tup, ok := tree.Tuple(idx)
	if !ok || len(tup.Elems) != 2 {
		t.Fatalf("Tuple(idx) = %+v, ok=%v", tup, ok)
	}
	if tup.Elems[1].Type != b || !tup.Elems[1].Optional {
		t.Fatalf("second tuple member = %+v, want Type=%d Optional=true", tup.Elems[1], b)
	}
}

func TestTree_UnionMemberListRoundTrips(t *testing.T) {
	tree := NewTree(4)
	a := tree.NewKeyword(NodeString, source.Span{})
	b := tree.NewKeyword(NodeNumber, source.Span{})
	u := tree.NewMemberList(NodeUnion, source.Span{}, []NodeIndex{a, b})

	got, ok := tree.MemberList(u)
	if !ok || len(got.Members) != 2 || got.Members[0] != a || got.Members[1] != b {
		t.Fatalf("MemberList(u) = %+v, ok=%v", got, ok)
	}

	if _, ok := tree.MemberList(a); ok {
		t.Fatal("expected MemberList() on a keyword node to report ok=false")
	}
}

func TestTree_GetOnAbsentNodeIndexReturnsNil(t *testing.T) {
	tree := NewTree(0)
	if got := tree.Get(NoNodeIndex); got != nil {
		t.Fatalf("Get(NoNodeIndex) = %v, want nil", got)
	}
}
