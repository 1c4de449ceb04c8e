package types

import (
	"fmt"
	"strings"
)

// Display renders id as a human-readable type expression, for diagnostics
// and the `tscore explore` inspector. It is best-effort: cycles through
// KindRecursive are shown as `...` rather than unwound.
func (in *Interner) Display(id TypeID) string {
	return in.display(id, make(map[TypeID]bool))
}

func (in *Interner) display(id TypeID, seen map[TypeID]bool) string {
	if id == NoTypeID {
		return "<none>"
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	if seen[id] {
		return "..."
	}

	switch tt.Kind {
	case KindAny, KindUnknown, KindNever, KindVoid, KindUndefined, KindNull,
		KindBoolean, KindNumber, KindString, KindBigInt, KindSymbol,
		KindObjectKeyword, KindError, KindThis:
		return tt.Kind.String()
	case KindLiteral:
		lit, _ := in.LiteralInfo(id)
		return in.displayLiteral(lit)
	case KindArray:
		return in.displayElem(tt.Elem, seen) + "[]"
	case KindReadonly:
		return "readonly " + in.displayElem(tt.Elem, seen)
	case KindNoInfer:
		return "NoInfer<" + in.display(tt.Elem, seen) + ">"
	case KindKeyOf:
		return "keyof " + in.displayElem(tt.Elem, seen)
	case KindUnion:
		members, _ := in.UnionMembers(id)
		return in.joinMembers(members, seen, " | ")
	case KindIntersection:
		members, _ := in.IntersectionMembers(id)
		return in.joinMembers(members, seen, " & ")
	case KindTuple:
		return in.displayTuple(id, seen)
	case KindObject:
		shape, _ := in.ObjectShape(id)
		return in.displayObjectShape(*shape, seen)
	case KindCallable:
		shape, _ := in.CallableShape(id)
		return in.displayCallableShape(*shape, seen)
	case KindFunction:
		sig, _ := in.SingleSignature(id)
		return in.displaySignature(sig, seen)
	case KindTypeParameter:
		info, _ := in.TypeParamInfo(id)
		return in.Strings.MustLookup(info.Name)
	case KindInfer:
		info, _ := in.TypeParamInfo(id)
		return "infer " + in.Strings.MustLookup(info.Name)
	case KindConditional:
		rec, _ := in.ConditionalInfo(id)
		seen[id] = true
		defer delete(seen, id)
		return fmt.Sprintf("%s extends %s ? %s : %s",
			in.display(rec.CheckType, seen), in.display(rec.ExtendsType, seen),
			in.display(rec.TrueType, seen), in.display(rec.FalseType, seen))
	case KindMapped:
		rec, _ := in.MappedInfo(id)
		return fmt.Sprintf("{ [%s in %s]: %s }", in.Strings.MustLookup(rec.ParameterName),
			in.display(rec.Constraint, seen), in.display(rec.ValueType, seen))
	case KindIndexedAccess:
		obj, key, _ := in.IndexedAccessInfo(id)
		return in.display(obj, seen) + "[" + in.display(key, seen) + "]"
	case KindTemplateLiteral:
		return in.displayTemplateLiteral(id)
	case KindApplication:
		info, _ := in.ApplicationInfo(id)
		args := make([]string, len(info.Args))
		for i, a := range info.Args {
			args[i] = in.display(a, seen)
		}
		return in.display(info.Base, seen) + "<" + strings.Join(args, ", ") + ">"
	case KindTypeQuery:
		q, _ := in.TypeQueryInfo(id)
		return fmt.Sprintf("typeof #%d", q.TargetSymbol)
	case KindUniqueSymbol:
		return "unique symbol"
	case KindModuleNamespace:
		return "<module>"
	case KindRecursive:
		return "..."
	default:
		return "<unknown>"
	}
}

func (in *Interner) displayElem(id TypeID, seen map[TypeID]bool) string {
	s := in.display(id, seen)
	if strings.ContainsAny(s, " |&") {
		return "(" + s + ")"
	}
	return s
}

func (in *Interner) displayLiteral(lit Literal) string {
	switch lit.Kind {
	case LiteralString:
		return "\"" + in.Strings.MustLookup(lit.Str) + "\""
	case LiteralNumber, LiteralBigInt:
		return lit.Num
	case LiteralBoolean:
		if lit.Bool {
			return "true"
		}
		return "false"
	default:
		return "<literal>"
	}
}

func (in *Interner) joinMembers(members []TypeID, seen map[TypeID]bool, sep string) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = in.display(m, seen)
	}
	return strings.Join(parts, sep)
}

func (in *Interner) displayTuple(id TypeID, seen map[TypeID]bool) string {
	info, _ := in.TupleInfo(id)
	parts := make([]string, len(info.Elems))
	for i, e := range info.Elems {
		s := in.display(e.Type, seen)
		if e.Rest {
			s = "..." + s
		}
		if e.Optional {
			s += "?"
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (in *Interner) displayObjectShape(shape ObjectShape, seen map[TypeID]bool) string {
	return "{ " + in.displayMembers(shape.Properties, shape.StringIndex, shape.NumberIndex, seen) + " }"
}

func (in *Interner) displayCallableShape(shape CallableShape, seen map[TypeID]bool) string {
	var parts []string
	for _, s := range shape.CallSignatures {
		parts = append(parts, in.displaySignature(s, seen))
	}
	for _, s := range shape.ConstructSignatures {
		parts = append(parts, "new "+in.displaySignature(s, seen))
	}
	members := in.displayMembers(shape.Properties, shape.StringIndex, shape.NumberIndex, seen)
	if members != "" {
		parts = append(parts, "{ "+members+" }")
	}
	return strings.Join(parts, " & ")
}

func (in *Interner) displayMembers(props []PropertyInfo, strIdx, numIdx *IndexSignature, seen map[TypeID]bool) string {
	var parts []string
	if strIdx != nil {
		parts = append(parts, "[key: string]: "+in.display(strIdx.ValueType, seen))
	}
	if numIdx != nil {
		parts = append(parts, "[key: number]: "+in.display(numIdx.ValueType, seen))
	}
	for _, p := range props {
		name := in.Strings.MustLookup(p.Name)
		opt := ""
		if p.Optional {
			opt = "?"
		}
		ro := ""
		if p.Readonly {
			ro = "readonly "
		}
		parts = append(parts, ro+name+opt+": "+in.display(p.ReadType, seen))
	}
	return strings.Join(parts, "; ")
}

func (in *Interner) displaySignature(sig CallSignature, seen map[TypeID]bool) string {
	params := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		name := "_"
		if p.Name != NoAtom {
			name = in.Strings.MustLookup(p.Name)
		}
		opt := ""
		if p.Optional {
			opt = "?"
		}
		rest := ""
		if p.Rest {
			rest = "..."
		}
		params[i] = rest + name + opt + ": " + in.display(p.Type, seen)
	}
	return "(" + strings.Join(params, ", ") + ") => " + in.display(sig.ReturnType, seen)
}

func (in *Interner) displayTemplateLiteral(id TypeID) string {
	info, _ := in.TemplateLiteralInfo(id)
	var b strings.Builder
	b.WriteByte('`')
	for _, span := range info.Spans {
		b.WriteString(in.Strings.MustLookup(span.Literal))
		if span.Hole != NoTypeID {
			b.WriteString("${")
			b.WriteString(in.Display(span.Hole))
			b.WriteByte('}')
		}
	}
	b.WriteByte('`')
	return b.String()
}
