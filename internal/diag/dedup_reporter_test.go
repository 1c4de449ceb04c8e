package diag

import (
	"testing"

	"tscore/internal/source"
)

func TestDedupReporter_SuppressesExactDuplicate(t *testing.T) {
	bag := NewBag(16)
	d := NewDedupReporter(BagReporter{Bag: bag})

	sp := source.Span{}
	d.Report(CoreUnresolvedReference, SevError, sp, "not found", nil, nil)
	d.Report(CoreUnresolvedReference, SevError, sp, "not found", nil, nil)

	if got := len(bag.Items()); got != 1 {
		t.Fatalf("expected duplicates to collapse to 1 diagnostic, got %d", got)
	}
}

func TestDedupReporter_PassesThroughDistinctDiagnostics(t *testing.T) {
	bag := NewBag(16)
	d := NewDedupReporter(BagReporter{Bag: bag})

	sp := source.Span{}
	d.Report(CoreUnresolvedReference, SevError, sp, "first", nil, nil)
	d.Report(CoreUnresolvedReference, SevError, sp, "second", nil, nil)

	if got := len(bag.Items()); got != 2 {
		t.Fatalf("expected two distinct diagnostics to both pass through, got %d", got)
	}
}

var _ Reporter = (*DedupReporter)(nil)
