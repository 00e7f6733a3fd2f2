// printer_test.go
package norem

import "testing"

func Test_Printer_Values(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{UnitVal(), "()"},
		{IntVal(42), "42"},
		{IntVal(-7), "-7"},
		{DataVal("Nil", nil), "Nil"},
		{DataVal("Cons", []Value{IntVal(1), DataVal("Nil", nil)}), "Cons(1, Nil)"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.v); got != tc.want {
			t.Fatalf("FormatValue = %q, want %q", got, tc.want)
		}
	}
}

func Test_Printer_ClosureAndExtern(t *testing.T) {
	cl := Value{Tag: VTClosure, Data: &Closure{Name: "length", Params: []string{"xs"}}}
	if got := FormatValue(cl); got != "fun length(xs)" {
		t.Fatalf("closure = %q", got)
	}
	nv := Value{Tag: VTNative, Data: &NativeRef{Name: "print", Arity: 1}}
	if got := FormatValue(nv); got != "extern print" {
		t.Fatalf("extern = %q", got)
	}
}

func Test_Printer_Call(t *testing.T) {
	c := NativeCall{Name: "print", Args: []Value{IntVal(5), UnitVal()}}
	if got := FormatCall(c); got != "print(5, ())" {
		t.Fatalf("FormatCall = %q", got)
	}
}

func Test_Printer_ProgramRoundTrip(t *testing.T) {
	prog := mustParse(t, lengthProgram)
	rendered := FormatProgram(prog)
	again, err := Parse(rendered)
	if err != nil {
		t.Fatalf("rendered program does not reparse: %v\n%s", err, rendered)
	}
	if FormatProgram(again) != rendered {
		t.Fatalf("rendering is not a fixed point:\n--- first ---\n%s\n--- second ---\n%s",
			rendered, FormatProgram(again))
	}
}

func Test_Printer_RoundTripPreservesSemantics(t *testing.T) {
	prog := mustParse(t, lengthProgram)
	again := mustParse(t, FormatProgram(prog))

	for _, p := range []*Program{prog, again} {
		eng := NewEngine()
		eng.RegisterExtern("print", unitExtern)
		res, err := eng.Run(p)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		wantEffects(t, res, "print(5)")
	}
}

func Test_Printer_Types(t *testing.T) {
	prog := mustParse(t, `
begin
  extern fold: fun(fun(Int, Int) -> Int, Int, List[Int]) -> ();
in
  0;
end
`)
	d := prog.Externs[0]
	if got := FormatType(d.Params[0]); got != "fun(Int, Int) -> Int" {
		t.Fatalf("param 0 = %q", got)
	}
	if got := FormatType(d.Params[2]); got != "List[Int]" {
		t.Fatalf("param 2 = %q", got)
	}
	if got := FormatType(d.Return); got != "()" {
		t.Fatalf("return = %q", got)
	}
}

func Test_Printer_ExprOneLine(t *testing.T) {
	prog := mustParse(t, `
begin
  data Flag = On | Off end
in
  let f = On;
  case f of
  | On => { @iadd(1, 2) }
  | _ => { #log(0) }
  end;
end
`)
	got := FormatExpr(prog.Body)
	want := "let f = On; case f of | On => { @iadd(1, 2) } | _ => { #log(0) } end"
	if got != want {
		t.Fatalf("FormatExpr:\n got %q\nwant %q", got, want)
	}
}
