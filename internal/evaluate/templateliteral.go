package evaluate

import "tscore/internal/types"

// evaluateTemplateLiteral implements spec §4.3.4: evaluate each hole; if
// every hole resolves to a string-coercible literal (or a union of such),
// materialise the concatenated literal(s) as a union over the Cartesian
// product of hole alternatives. Otherwise the template literal is preserved
// in reduced form (each hole evaluated, but not expanded).
func (e *Evaluator) evaluateTemplateLiteral(id types.TypeID) types.TypeID {
	info, ok := e.in.TemplateLiteralInfo(id)
	if !ok {
		return id
	}

	alternatives := make([][]string, len(info.Spans))
	allConcrete := true
	evaluatedSpans := make([]types.TemplateSpan, len(info.Spans))
	for i, span := range info.Spans {
		evaluatedSpans[i] = span
		if span.Hole == types.NoTypeID {
			continue
		}
		hole := e.Evaluate(span.Hole)
		evaluatedSpans[i].Hole = hole
		texts, ok := e.stringCoercibleAlternatives(hole)
		if !ok {
			allConcrete = false
			continue
		}
		alternatives[i] = texts
	}

	if !allConcrete {
		return e.in.TemplateLiteral(evaluatedSpans)
	}

	results := []string{""}
	for i, span := range evaluatedSpans {
		frag, ok := e.in.Strings.Lookup(span.Literal)
		if !ok {
			frag = ""
		}
		if span.Hole == types.NoTypeID {
			for j := range results {
				results[j] += frag
			}
			continue
		}
		next := make([]string, 0, len(results)*len(alternatives[i]))
		for _, prefix := range results {
			for _, alt := range alternatives[i] {
				next = append(next, prefix+frag+alt)
			}
		}
		results = next
	}

	members := make([]types.TypeID, len(results))
	for i, s := range results {
		members[i] = e.in.InternLiteral(types.Literal{Kind: types.LiteralString, Str: e.in.Strings.Intern(s)})
	}
	return e.in.Union(members)
}

// stringCoercibleAlternatives returns the set of concrete string renderings
// a hole's type can take: a string/number/boolean literal yields one
// alternative, a union of such yields one per member.
func (e *Evaluator) stringCoercibleAlternatives(id types.TypeID) ([]string, bool) {
	if members, ok := e.in.UnionMembers(id); ok {
		out := make([]string, 0, len(members))
		for _, m := range members {
			texts, ok := e.stringCoercibleAlternatives(m)
			if !ok {
				return nil, false
			}
			out = append(out, texts...)
		}
		return out, true
	}
	lit, ok := e.in.LiteralInfo(id)
	if !ok {
		return nil, false
	}
	switch lit.Kind {
	case types.LiteralString:
		s, _ := e.in.Strings.Lookup(lit.Str)
		return []string{s}, true
	case types.LiteralNumber, types.LiteralBigInt:
		return []string{lit.Num}, true
	case types.LiteralBoolean:
		if lit.Bool {
			return []string{"true"}, true
		}
		return []string{"false"}, true
	default:
		return nil, false
	}
}
