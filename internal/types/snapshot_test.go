package types

import "testing"

func TestSnapshot_RoundTripsTypeIDs(t *testing.T) {
	in := NewInterner()
	obj := in.Object([]PropertyInfo{
		{Name: in.Strings.Intern("a"), ReadType: in.Builtins().String, WriteType: in.Builtins().String},
	})
	union := in.Union([]TypeID{in.Builtins().String, in.Builtins().Number})
	arr := in.Array(obj)

	snap := in.Snapshot()
	restored := NewInternerFromSnapshot(snap)

	for _, id := range []TypeID{obj, union, arr, in.Builtins().Any, in.Builtins().Never} {
		want := in.Display(id)
		got := restored.Display(id)
		if got != want {
			t.Errorf("TypeID %d: Display after restore = %q, want %q", id, got, want)
		}
	}
}

func TestSnapshot_PreservesHashConsing(t *testing.T) {
	in := NewInterner()
	a := in.Array(in.Builtins().String)
	b := in.Array(in.Builtins().String)
	if a != b {
		t.Fatalf("expected hash-consing to dedup identical arrays before snapshotting")
	}

	restored := NewInternerFromSnapshot(in.Snapshot())
	// Re-interning the same descriptor after restore must still return the
	// same TypeID the original interner would have produced.
	again := restored.Array(restored.Builtins().String)
	if again != a {
		t.Fatalf("expected re-interning after restore to reproduce TypeID %d, got %d", a, again)
	}
}
