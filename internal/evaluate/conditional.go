package evaluate

import "tscore/internal/types"

// EvaluateConditional runs the 7-step conditional-type evaluation algorithm
// (spec §4.3.1), tail-call-optimising the chosen branch when it is itself a
// conditional.
func (e *Evaluator) EvaluateConditional(rec types.ConditionalRecord) types.TypeID {
	tailDepth := 0
	for {
		checkID := e.Evaluate(rec.CheckType)
		extendsID := e.Evaluate(rec.ExtendsType)

		// Step 2: never-short-circuit.
		if rec.IsDistributive && checkID == e.in.Builtins().Never {
			return e.in.Builtins().Never
		}

		// Step 3: any-short-circuit — both branches are reachable.
		if checkID == e.in.Builtins().Any {
			return e.in.Union([]types.TypeID{e.Evaluate(rec.TrueType), e.Evaluate(rec.FalseType)})
		}

		// Step 4: distribution over a union check type.
		if rec.IsDistributive {
			if members, ok := e.in.UnionMembers(checkID); ok {
				return e.evaluateDistributive(members, rec, extendsID)
			}
		}

		// Step 5: infer-in-extends.
		if e.containsInfer(extendsID) {
			if isDeferred(e.in, checkID) {
				return e.in.Conditional(types.ConditionalRecord{
					CheckType: checkID, ExtendsType: extendsID,
					TrueType: rec.TrueType, FalseType: rec.FalseType,
					IsDistributive: rec.IsDistributive,
				})
			}
			bindings, ok := e.matchPattern(extendsID, checkID, make(map[types.TypeID]types.TypeID))
			if ok {
				branch := e.substitute(rec.TrueType, bindings)
				next, isCond := e.asConditional(branch)
				if isCond && tailDepth < e.MaxTailRecursion {
					tailDepth++
					rec = next
					continue
				}
				return e.Evaluate(branch)
			}
			next, isCond := e.asConditional(rec.FalseType)
			if isCond && tailDepth < e.MaxTailRecursion {
				tailDepth++
				rec = next
				continue
			}
			return e.Evaluate(rec.FalseType)
		}

		// Step 6: naked-parameter defer.
		if isDeferred(e.in, checkID) {
			return e.in.Conditional(types.ConditionalRecord{
				CheckType: checkID, ExtendsType: extendsID,
				TrueType: rec.TrueType, FalseType: rec.FalseType,
				IsDistributive: rec.IsDistributive,
			})
		}

		// Step 7: concrete path.
		branch := rec.FalseType
		if e.checker.IsSubtype(checkID, extendsID) {
			branch = rec.TrueType
		}
		next, isCond := e.asConditional(branch)
		if isCond && tailDepth < e.MaxTailRecursion {
			tailDepth++
			rec = next
			continue
		}
		return e.Evaluate(branch)
	}
}

// evaluateDistributive implements step 4: iterate the check type's union
// members, substituting each into the branches before recursing
// non-distributively.
func (e *Evaluator) evaluateDistributive(members []types.TypeID, rec types.ConditionalRecord, extendsID types.TypeID) types.TypeID {
	if len(members) > e.MaxDistributiveBranches {
		return e.in.Builtins().Error
	}
	results := make([]types.TypeID, 0, len(members))
	for _, m := range members {
		// Substitute references to the *original* check type within the
		// branches with this member, supporting the `T extends U ? T : never`
		// filter idiom (spec §4.3.1 step 4).
		bindings := map[types.TypeID]types.TypeID{rec.CheckType: m}
		branchRec := types.ConditionalRecord{
			CheckType:      m,
			ExtendsType:    extendsID,
			TrueType:       e.substitute(rec.TrueType, bindings),
			FalseType:      e.substitute(rec.FalseType, bindings),
			IsDistributive: false,
		}
		results = append(results, e.EvaluateConditional(branchRec))
	}
	return e.in.Union(results)
}

// isDeferred reports whether id is itself a type parameter or infer
// placeholder, i.e. not yet concrete enough to decide a conditional.
func isDeferred(in *types.Interner, id types.TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && (tt.Kind == types.KindTypeParameter || tt.Kind == types.KindInfer)
}

// asConditional reports whether id names a conditional type and returns its
// record, for the tail-call loop.
func (e *Evaluator) asConditional(id types.TypeID) (types.ConditionalRecord, bool) {
	tt, ok := e.in.Lookup(id)
	if !ok || tt.Kind != types.KindConditional {
		return types.ConditionalRecord{}, false
	}
	rec, ok := e.in.ConditionalInfo(id)
	if !ok {
		return types.ConditionalRecord{}, false
	}
	return *rec, true
}

// containsInfer reports whether id's structure mentions an `infer`
// placeholder anywhere within it (one level is enough for the common
// patterns in §4.3.2; nested containers are walked recursively).
func (e *Evaluator) containsInfer(id types.TypeID) bool {
	seen := make(map[types.TypeID]bool)
	var walk func(types.TypeID) bool
	walk = func(id types.TypeID) bool {
		if id == types.NoTypeID || seen[id] {
			return false
		}
		seen[id] = true
		tt, ok := e.in.Lookup(id)
		if !ok {
			return false
		}
		switch tt.Kind {
		case types.KindInfer:
			return true
		case types.KindArray, types.KindReadonly, types.KindNoInfer, types.KindKeyOf:
			return walk(tt.Elem)
		case types.KindTuple:
			info, _ := e.in.TupleInfo(id)
			for _, elem := range info.Elems {
				if walk(elem.Type) {
					return true
				}
			}
		case types.KindUnion:
			members, _ := e.in.UnionMembers(id)
			for _, m := range members {
				if walk(m) {
					return true
				}
			}
		case types.KindIntersection:
			members, _ := e.in.IntersectionMembers(id)
			for _, m := range members {
				if walk(m) {
					return true
				}
			}
		case types.KindObject:
			shape, _ := e.in.ObjectShape(id)
			for _, p := range shape.Properties {
				if walk(p.ReadType) {
					return true
				}
			}
		}
		return false
	}
	return walk(id)
}
