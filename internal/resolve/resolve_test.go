package resolve

import "testing"

func TestResolver_NilHooksAlwaysMiss(t *testing.T) {
	r := New(Callbacks{})
	if _, ok := r.ResolveDefID(1); ok {
		t.Fatal("ResolveDefID with a nil hook should report false")
	}
	if _, ok := r.ResolveDefIDByName("T"); ok {
		t.Fatal("ResolveDefIDByName with a nil hook should report false")
	}
	if _, ok := r.ResolveTypeSymbol(1); ok {
		t.Fatal("ResolveTypeSymbol with a nil hook should report false")
	}
	if _, ok := r.ResolveValueSymbol(1); ok {
		t.Fatal("ResolveValueSymbol with a nil hook should report false")
	}
}

func TestResolver_NilResolverAlwaysMiss(t *testing.T) {
	var r *Resolver
	if _, ok := r.ResolveDefID(1); ok {
		t.Fatal("a nil *Resolver should report false, not panic")
	}
}

func TestResolver_DispatchesToProvidedHooks(t *testing.T) {
	const want DefinitionID = 7
	r := New(Callbacks{
		DefIDByName: func(name string) (DefinitionID, bool) {
			if name == "T" {
				return want, true
			}
			return NoDefinitionID, false
		},
	})

	got, ok := r.ResolveDefIDByName("T")
	if !ok || got != want {
		t.Fatalf("ResolveDefIDByName(T) = %v, %v, want %v, true", got, ok, want)
	}

	if _, ok := r.ResolveDefIDByName("Other"); ok {
		t.Fatal("ResolveDefIDByName(Other) should miss")
	}
}

func TestDefinitionID_IsValid(t *testing.T) {
	if NoDefinitionID.IsValid() {
		t.Fatal("NoDefinitionID must not be valid")
	}
	if !DefinitionID(1).IsValid() {
		t.Fatal("a nonzero DefinitionID must be valid")
	}
}

func TestSymbolID_IsValid(t *testing.T) {
	if NoSymbolID.IsValid() {
		t.Fatal("NoSymbolID must not be valid")
	}
	if !SymbolID(1).IsValid() {
		t.Fatal("a nonzero SymbolID must be valid")
	}
}
