package evaluate

import (
	"testing"

	"tscore/internal/types"
)

func TestEvaluate_Conditional_ConcretePath(t *testing.T) {
	in := types.NewInterner()
	e := New(in)

	// string extends string ? true : false -> true literal
	rec := types.ConditionalRecord{
		CheckType:   in.Builtins().String,
		ExtendsType: in.Builtins().String,
		TrueType:    in.LiteralBoolean(true),
		FalseType:   in.LiteralBoolean(false),
	}
	cond := in.Conditional(rec)
	got := e.Evaluate(cond)
	if got != in.LiteralBoolean(true) {
		t.Fatalf("expected true literal, got %v", in.Display(got))
	}
}

func TestEvaluate_Conditional_Distributive(t *testing.T) {
	in := types.NewInterner()
	e := New(in)

	union := in.Union([]types.TypeID{in.Builtins().String, in.Builtins().Number})
	rec := types.ConditionalRecord{
		CheckType:      union,
		ExtendsType:    in.Builtins().String,
		TrueType:       in.LiteralBoolean(true),
		FalseType:      in.LiteralBoolean(false),
		IsDistributive: true,
	}
	cond := in.Conditional(rec)
	got := e.Evaluate(cond)

	members, ok := in.UnionMembers(got)
	if !ok || len(members) != 2 {
		t.Fatalf("expected a two-member union, got %v", in.Display(got))
	}
}

func TestEvaluate_Infer_BindsFromConcretePath(t *testing.T) {
	in := types.NewInterner()
	e := New(in)

	// T extends Array<infer U> ? U : never, with T = Array<number>
	inferParam := in.Infer(types.TypeParameterInfo{Name: in.Strings.Intern("U")})
	extendsArr := in.Array(inferParam)
	checkArr := in.Array(in.Builtins().Number)

	rec := types.ConditionalRecord{
		CheckType:   checkArr,
		ExtendsType: extendsArr,
		TrueType:    inferParam,
		FalseType:   in.Builtins().Never,
	}
	cond := in.Conditional(rec)
	got := e.Evaluate(cond)
	if got != in.Builtins().Number {
		t.Fatalf("expected number, got %v", in.Display(got))
	}
}

func TestEvaluate_KeyOf_ObjectShape(t *testing.T) {
	in := types.NewInterner()
	e := New(in)

	obj := in.Object([]types.PropertyInfo{
		{Name: in.Strings.Intern("a"), ReadType: in.Builtins().String, WriteType: in.Builtins().String},
		{Name: in.Strings.Intern("b"), ReadType: in.Builtins().Number, WriteType: in.Builtins().Number},
	})
	got := e.Evaluate(in.KeyOf(obj))

	members, ok := in.UnionMembers(got)
	if !ok || len(members) != 2 {
		t.Fatalf("expected a two-member union of literal keys, got %v", in.Display(got))
	}
}

func TestEvaluate_IndexedAccess_LiteralKey(t *testing.T) {
	in := types.NewInterner()
	e := New(in)

	obj := in.Object([]types.PropertyInfo{
		{Name: in.Strings.Intern("a"), ReadType: in.Builtins().String, WriteType: in.Builtins().String},
	})
	key := in.InternLiteral(types.Literal{Kind: types.LiteralString, Str: in.Strings.Intern("a")})
	got := e.Evaluate(in.IndexedAccess(obj, key))
	if got != in.Builtins().String {
		t.Fatalf("expected string, got %v", in.Display(got))
	}
}

func TestEvaluate_Mapped_OverUnionKeys(t *testing.T) {
	in := types.NewInterner()
	e := New(in)

	keys := in.Union([]types.TypeID{
		in.InternLiteral(types.Literal{Kind: types.LiteralString, Str: in.Strings.Intern("a")}),
		in.InternLiteral(types.Literal{Kind: types.LiteralString, Str: in.Strings.Intern("b")}),
	})
	rec := types.MappedRecord{
		ParameterName: in.Strings.Intern("K"),
		Constraint:    keys,
		ValueType:     in.Builtins().Boolean,
	}
	mapped := in.Mapped(rec)
	got := e.Evaluate(mapped)

	shape, ok := in.ObjectShape(got)
	if !ok || len(shape.Properties) != 2 {
		t.Fatalf("expected a two-property object, got %v", in.Display(got))
	}
	for _, p := range shape.Properties {
		if p.ReadType != in.Builtins().Boolean {
			t.Fatalf("expected every mapped value to be boolean, got %v", in.Display(p.ReadType))
		}
	}
}

func TestEvaluate_Mapped_NoneModifierPreservesSourceFlags(t *testing.T) {
	in := types.NewInterner()
	e := New(in)

	source := in.Object([]types.PropertyInfo{
		{Name: in.Strings.Intern("a"), ReadType: in.Builtins().Number, WriteType: in.Builtins().Number, Optional: true},
		{Name: in.Strings.Intern("b"), ReadType: in.Builtins().String, WriteType: in.Builtins().String, Readonly: true},
	})

	k := in.Strings.Intern("K")
	constraint := in.KeyOf(source)
	paramID := in.TypeParam(types.TypeParameterInfo{Name: k, Constraint: constraint})
	rec := types.MappedRecord{
		ParameterName: k,
		Constraint:    constraint,
		ValueType:     in.IndexedAccess(source, paramID),
	}
	mapped := in.Mapped(rec)
	got := e.Evaluate(mapped)

	shape, ok := in.ObjectShape(got)
	if !ok || len(shape.Properties) != 2 {
		t.Fatalf("expected a two-property object, got %v", in.Display(got))
	}
	for _, p := range shape.Properties {
		name := in.Strings.MustLookup(p.Name)
		switch name {
		case "a":
			if !p.Optional {
				t.Fatalf("expected None modifier to preserve source optional on %q", name)
			}
			if p.Readonly {
				t.Fatalf("expected property %q to stay non-readonly", name)
			}
		case "b":
			if !p.Readonly {
				t.Fatalf("expected None modifier to preserve source readonly on %q", name)
			}
			if p.Optional {
				t.Fatalf("expected property %q to stay non-optional", name)
			}
		default:
			t.Fatalf("unexpected property %q", name)
		}
	}
}

func TestEvaluate_TemplateLiteral_ConcatenatesLiterals(t *testing.T) {
	in := types.NewInterner()
	e := New(in)

	hole := in.Union([]types.TypeID{
		in.InternLiteral(types.Literal{Kind: types.LiteralString, Str: in.Strings.Intern("a")}),
		in.InternLiteral(types.Literal{Kind: types.LiteralString, Str: in.Strings.Intern("b")}),
	})
	spans := []types.TemplateSpan{
		{Literal: in.Strings.Intern("x-")},
		{Hole: hole},
	}
	got := e.Evaluate(in.TemplateLiteral(spans))

	members, ok := in.UnionMembers(got)
	if !ok || len(members) != 2 {
		t.Fatalf("expected a two-member union of string literals, got %v", in.Display(got))
	}
	for _, m := range members {
		lit, ok := in.LiteralInfo(m)
		if !ok || lit.Kind != types.LiteralString {
			t.Fatalf("expected string literal members, got %v", in.Display(m))
		}
	}
}

func TestEvaluate_Application_SubstitutesTypeParameter(t *testing.T) {
	in := types.NewInterner()
	e := New(in)

	param := in.TypeParam(types.TypeParameterInfo{Name: in.Strings.Intern("T")})
	base := in.Array(param)
	got := e.Evaluate(in.Application(base, []types.TypeID{in.Builtins().String}))
	if got != in.Array(in.Builtins().String) {
		t.Fatalf("expected string[], got %v", in.Display(got))
	}
}

func TestEvaluate_IsIdempotent(t *testing.T) {
	in := types.NewInterner()
	e := New(in)

	rec := types.ConditionalRecord{
		CheckType:   in.Builtins().String,
		ExtendsType: in.Builtins().String,
		TrueType:    in.LiteralBoolean(true),
		FalseType:   in.LiteralBoolean(false),
	}
	cond := in.Conditional(rec)
	first := e.Evaluate(cond)
	second := e.Evaluate(first)
	if first != second {
		t.Fatalf("evaluate was not idempotent: %v != %v", in.Display(first), in.Display(second))
	}
}
