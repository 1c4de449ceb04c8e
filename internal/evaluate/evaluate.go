// Package evaluate reduces computed types — conditional, mapped,
// indexed-access, keyof, template-literal, application — to normal form
// (spec §4.3). It builds on internal/types and calls internal/subtype for
// the conditional type's extends check.
package evaluate

import (
	"tscore/internal/subtype"
	"tscore/internal/types"
)

// DefaultMaxTailRecursion bounds the conditional tail-call loop (spec
// §4.3.1), separate from the lowerer's operation counter.
const DefaultMaxTailRecursion = 1000

// DefaultMaxDistributiveBranches bounds how many union members a
// distributive conditional may expand into before giving up (spec §4.3.1).
const DefaultMaxDistributiveBranches = 100

// Evaluator reduces computed types against one Interner, using a Checker
// for the conditional type's concrete-path subtype test.
type Evaluator struct {
	in      *types.Interner
	checker *subtype.Checker

	MaxTailRecursion         int
	MaxDistributiveBranches  int
}

// New creates an Evaluator over in.
func New(in *types.Interner) *Evaluator {
	return &Evaluator{
		in:                      in,
		checker:                 subtype.New(in),
		MaxTailRecursion:        DefaultMaxTailRecursion,
		MaxDistributiveBranches: DefaultMaxDistributiveBranches,
	}
}

// Evaluate idempotently reduces id to normal form; non-computed kinds are
// returned unchanged.
func (e *Evaluator) Evaluate(id types.TypeID) types.TypeID {
	tt, ok := e.in.Lookup(id)
	if !ok {
		return id
	}
	switch tt.Kind {
	case types.KindConditional:
		rec, _ := e.in.ConditionalInfo(id)
		return e.EvaluateConditional(*rec)
	case types.KindMapped:
		return e.evaluateMapped(id)
	case types.KindIndexedAccess:
		return e.evaluateIndexedAccess(id)
	case types.KindKeyOf:
		return e.evaluateKeyOf(id)
	case types.KindTemplateLiteral:
		return e.evaluateTemplateLiteral(id)
	case types.KindApplication:
		return e.evaluateApplication(id)
	default:
		return id
	}
}
