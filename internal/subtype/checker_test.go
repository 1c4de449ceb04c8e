package subtype

import (
	"testing"

	"tscore/internal/types"
)

func TestIsSubtype_PrimitivesAndAny(t *testing.T) {
	in := types.NewInterner()
	c := New(in)

	if !c.IsSubtype(in.Builtins().Any, in.Builtins().String) {
		t.Fatal("any must be a subtype of everything")
	}
	if !c.IsSubtype(in.Builtins().String, in.Builtins().Any) {
		t.Fatal("everything must be a subtype of any")
	}
	if !c.IsSubtype(in.Builtins().Never, in.Builtins().String) {
		t.Fatal("never must be a subtype of everything")
	}
	if c.IsSubtype(in.Builtins().String, in.Builtins().Never) {
		t.Fatal("nothing but never is a subtype of never")
	}
	if c.IsSubtype(in.Builtins().String, in.Builtins().Number) {
		t.Fatal("string must not be a subtype of number")
	}
}

func TestIsSubtype_LiteralWidensToBase(t *testing.T) {
	in := types.NewInterner()
	c := New(in)

	lit := in.LiteralBoolean(true)
	if !c.IsSubtype(lit, in.Builtins().Boolean) {
		t.Fatal("a boolean literal must be a subtype of boolean")
	}
	if c.IsSubtype(in.Builtins().Boolean, lit) {
		t.Fatal("boolean must not be a subtype of a narrower literal")
	}
}

func TestIsSubtype_Union(t *testing.T) {
	in := types.NewInterner()
	c := New(in)

	union := in.Union([]types.TypeID{in.Builtins().String, in.Builtins().Number})
	if !c.IsSubtype(in.Builtins().String, union) {
		t.Fatal("string must be a subtype of string | number")
	}
	if c.IsSubtype(union, in.Builtins().String) {
		t.Fatal("string | number must not be a subtype of string alone")
	}
}

func TestIsSubtype_ArrayCovariant(t *testing.T) {
	in := types.NewInterner()
	c := New(in)

	strArr := in.Array(in.Builtins().String)
	anyArr := in.Array(in.Builtins().Any)
	if !c.IsSubtype(strArr, anyArr) {
		t.Fatal("string[] must be a subtype of any[]")
	}
}

func TestIsSubtype_ReadonlyAcceptsMutable(t *testing.T) {
	in := types.NewInterner()
	c := New(in)

	mutable := in.Array(in.Builtins().String)
	readonly := in.Readonly(in.Builtins().String)
	if !c.IsSubtype(mutable, readonly) {
		t.Fatal("Array<string> must be a subtype of ReadonlyArray<string>")
	}
	if c.IsSubtype(readonly, mutable) {
		t.Fatal("ReadonlyArray<string> must not be a subtype of Array<string>")
	}
}

func TestIsSubtype_ObjectWidthSubtyping(t *testing.T) {
	in := types.NewInterner()
	c := New(in)

	wide := in.Object([]types.PropertyInfo{
		{Name: in.Strings.Intern("a"), ReadType: in.Builtins().String, WriteType: in.Builtins().String},
		{Name: in.Strings.Intern("b"), ReadType: in.Builtins().Number, WriteType: in.Builtins().Number},
	})
	narrow := in.Object([]types.PropertyInfo{
		{Name: in.Strings.Intern("a"), ReadType: in.Builtins().String, WriteType: in.Builtins().String},
	})

	if !c.IsSubtype(wide, narrow) {
		t.Fatal("an object with extra properties must be a subtype of one requiring fewer")
	}
	if c.IsSubtype(narrow, wide) {
		t.Fatal("an object missing a required property must not satisfy the wider shape")
	}
}

func TestIsSubtype_ObjectMissingOptionalPropertyIsFine(t *testing.T) {
	in := types.NewInterner()
	c := New(in)

	withOptional := in.Object([]types.PropertyInfo{
		{Name: in.Strings.Intern("a"), ReadType: in.Builtins().String, WriteType: in.Builtins().String, Optional: true},
	})
	empty := in.Object(nil)

	if !c.IsSubtype(empty, withOptional) {
		t.Fatal("an object missing only an optional property must still satisfy the shape")
	}
}

func TestIsSubtype_TupleRestAbsorbsRemainder(t *testing.T) {
	in := types.NewInterner()
	c := New(in)

	s := in.Tuple([]types.TupleElement{
		{Type: in.Builtins().String},
		{Type: in.Builtins().String},
	})
	tgt := in.Tuple([]types.TupleElement{
		{Type: in.Builtins().String, Rest: true},
	})

	if !c.IsSubtype(s, tgt) {
		t.Fatal("[string, string] must satisfy [...string[]]")
	}
}

func TestIsSubtype_FunctionParamsContravariant(t *testing.T) {
	in := types.NewInterner()
	c := New(in)

	wideParam := in.Function(types.CallSignature{
		Params:     []types.ParamInfo{{Type: in.Builtins().Any}},
		ReturnType: in.Builtins().Void,
	})
	narrowParam := in.Function(types.CallSignature{
		Params:     []types.ParamInfo{{Type: in.Builtins().String}},
		ReturnType: in.Builtins().Void,
	})

	// (x: any) => void must be usable wherever (x: string) => void is expected.
	if !c.IsSubtype(wideParam, narrowParam) {
		t.Fatal("a function accepting a wider parameter must be a subtype")
	}
	if c.IsSubtype(narrowParam, wideParam) {
		t.Fatal("a function accepting a narrower parameter must not be a subtype")
	}
}

func TestIsSubtype_ErrorAbsorbs(t *testing.T) {
	in := types.NewInterner()
	c := New(in)

	if !c.IsSubtype(in.Builtins().Error, in.Builtins().String) {
		t.Fatal("ERROR must be a subtype of everything")
	}
	if !c.IsSubtype(in.Builtins().String, in.Builtins().Error) {
		t.Fatal("everything must be a subtype of ERROR")
	}
}
