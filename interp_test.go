// interp_test.go
package norem

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

const lengthProgram = `
begin
  extern print: fun(Int) -> ();
  data List[T] =
  | Cons(T, List[T])
  | Nil
  end
  fun length(xs) => {
    case xs of
    | Cons(head, rest) => { @iadd(1, length(rest)) }
    | Nil => { 0 }
    end
  }
in
  let xs = Cons(1, Cons(2, Cons(3, Cons(4, Cons(5, Nil)))));
  #print(length(xs));
end
`

func unitExtern(args []Value) (Value, error) { return UnitVal(), nil }

func runProgram(t *testing.T, src string, externs map[string]NativeFunc) *Result {
	t.Helper()
	res, err := tryRun(t, src, externs)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	return res
}

func tryRun(t *testing.T, src string, externs map[string]NativeFunc) (*Result, error) {
	t.Helper()
	prog := mustParse(t, src)
	eng := NewEngine()
	for name, fn := range externs {
		eng.RegisterExtern(name, fn)
	}
	return eng.Run(prog)
}

func wantInt(t *testing.T, v Value, n int64) {
	t.Helper()
	if v.Tag != VTInt || v.AsInt() != n {
		t.Fatalf("value = %s, want %d", FormatValue(v), n)
	}
}

func wantEffects(t *testing.T, res *Result, want ...string) {
	t.Helper()
	got := make([]string, len(res.Effects))
	for i, c := range res.Effects {
		got[i] = FormatCall(c)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("effects = %v, want %v", got, want)
	}
}

func Test_Interp_LengthOfFiveElementList(t *testing.T) {
	res := runProgram(t, lengthProgram, map[string]NativeFunc{"print": unitExtern})
	if res.Value.Tag != VTUnit {
		t.Fatalf("value = %s, want ()", FormatValue(res.Value))
	}
	wantEffects(t, res, "print(5)")
}

func Test_Interp_LengthOfNil(t *testing.T) {
	res := runProgram(t, `
begin
  data List[T] = Cons(T, List[T]) | Nil end
  fun length(xs) => {
    case xs of
    | Cons(h, rest) => { @iadd(1, length(rest)) }
    | Nil => { 0 }
    end
  }
in
  length(Nil);
end
`, nil)
	wantInt(t, res.Value, 0)
}

func Test_Interp_DeepRecursion(t *testing.T) {
	const depth = 10000
	var b strings.Builder
	b.WriteString(`
begin
  data List[T] = Cons(T, List[T]) | Nil end
  fun length(xs) => {
    case xs of
    | Cons(h, rest) => { @iadd(1, length(rest)) }
    | Nil => { 0 }
    end
  }
in
  length(`)
	for i := 0; i < depth; i++ {
		b.WriteString("Cons(1, ")
	}
	b.WriteString("Nil")
	b.WriteString(strings.Repeat(")", depth))
	b.WriteString(");\nend\n")

	res := runProgram(t, b.String(), nil)
	wantInt(t, res.Value, depth)
}

func Test_Interp_LetShadowing(t *testing.T) {
	res := runProgram(t, `
begin
in
  let x = 1;
  let y = let x = 2; x;
  @iadd(x, y);
end
`, nil)
	wantInt(t, res.Value, 3)
}

func Test_Interp_CallerLocalsInvisibleToCallee(t *testing.T) {
	// Functions close over the global scope only, never the caller's locals.
	_, err := tryRun(t, `
begin
  fun f() => { y }
in
  let y = 5;
  f();
end
`, nil)
	ue, ok := err.(*UnboundVariableError)
	if !ok {
		t.Fatalf("want *UnboundVariableError, got %T: %v", err, err)
	}
	if ue.Name != "y" {
		t.Fatalf("name = %q", ue.Name)
	}
}

func Test_Interp_MutualRecursion(t *testing.T) {
	src := `
begin
  data Nat = S(Nat) | Z end
  fun even(n) => {
    case n of
    | Z => { 1 }
    | S(m) => { odd(m) }
    end
  }
  fun odd(n) => {
    case n of
    | Z => { 0 }
    | S(m) => { even(m) }
    end
  }
in
  even(S(S(S(Z))));
end
`
	res := runProgram(t, src, nil)
	wantInt(t, res.Value, 0)
}

func Test_Interp_UnitBodyValue(t *testing.T) {
	res := runProgram(t, `begin in (); end`, nil)
	if res.Value.Tag != VTUnit {
		t.Fatalf("value = %s, want ()", FormatValue(res.Value))
	}
}

func Test_Interp_Intrinsics(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{"@iadd(2, 3)", 5},
		{"@isub(2, 3)", -1},
		{"@imul(4, 3)", 12},
		{"@idiv(7, 2)", 3},
		{"@irem(7, 2)", 1},
		{"@ineg(9)", -9},
		{"@icmpeq(2, 2)", 1},
		{"@icmpne(2, 2)", 0},
		{"@icmpls(1, 2)", 1},
		{"@icmple(2, 2)", 1},
		{"@icmpgr(1, 2)", 0},
		{"@icmpge(2, 3)", 0},
	}
	for _, tc := range cases {
		res := runProgram(t, "begin in "+tc.expr+"; end", nil)
		if res.Value.Tag != VTInt || res.Value.AsInt() != tc.want {
			t.Fatalf("%s = %s, want %d", tc.expr, FormatValue(res.Value), tc.want)
		}
	}
}

func Test_Interp_DivisionByZero(t *testing.T) {
	_, err := tryRun(t, `begin in @idiv(1, 0); end`, nil)
	ne, ok := err.(*NativeError)
	if !ok {
		t.Fatalf("want *NativeError, got %T: %v", err, err)
	}
	if ne.Name != "@idiv" {
		t.Fatalf("name = %q", ne.Name)
	}
}

func Test_Interp_UnknownIntrinsic(t *testing.T) {
	_, err := tryRun(t, `begin in @fadd(1, 2); end`, nil)
	if _, ok := err.(*UnknownIntrinsicError); !ok {
		t.Fatalf("want *UnknownIntrinsicError, got %T: %v", err, err)
	}
}

func Test_Interp_IntrinsicOperandCount(t *testing.T) {
	_, err := tryRun(t, `begin in @iadd(1); end`, nil)
	ie, ok := err.(*IntrinsicArityError)
	if !ok {
		t.Fatalf("want *IntrinsicArityError, got %T: %v", err, err)
	}
	if ie.Want != 2 || ie.Got != 1 {
		t.Fatalf("arity = %+v", ie)
	}
}

func Test_Interp_IntrinsicOperandKind(t *testing.T) {
	_, err := tryRun(t, `begin in @iadd(1, ()); end`, nil)
	if _, ok := err.(*TypeMismatchError); !ok {
		t.Fatalf("want *TypeMismatchError, got %T: %v", err, err)
	}
}

func Test_Interp_RegisteredIntrinsic(t *testing.T) {
	prog := mustParse(t, `begin in @imax(3, 8); end`)
	eng := NewEngine()
	eng.Bridge().RegisterIntrinsic("imax", 2, func(args []int64) (int64, error) {
		if args[0] > args[1] {
			return args[0], nil
		}
		return args[1], nil
	})
	res, err := eng.Run(prog)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	wantInt(t, res.Value, 8)
}

func Test_Interp_UnboundVariable(t *testing.T) {
	_, err := tryRun(t, `begin in nowhere; end`, nil)
	if _, ok := err.(*UnboundVariableError); !ok {
		t.Fatalf("want *UnboundVariableError, got %T: %v", err, err)
	}
}

func Test_Interp_FunctionArity(t *testing.T) {
	_, err := tryRun(t, `
begin
  fun pair(a, b) => { a }
in
  pair(1);
end
`, nil)
	ae, ok := err.(*ArityError)
	if !ok {
		t.Fatalf("want *ArityError, got %T: %v", err, err)
	}
	if ae.Name != "pair" || ae.Want != 2 || ae.Got != 1 {
		t.Fatalf("arity = %+v", ae)
	}
}

func Test_Interp_ConstructorArity(t *testing.T) {
	_, err := tryRun(t, `
begin
  data List[T] = Cons(T, List[T]) | Nil end
in
  Cons(1);
end
`, nil)
	ae, ok := err.(*ArityError)
	if !ok {
		t.Fatalf("want *ArityError, got %T: %v", err, err)
	}
	if ae.Name != "Cons" || ae.Want != 2 {
		t.Fatalf("arity = %+v", ae)
	}
}

func Test_Interp_CallingAnInteger(t *testing.T) {
	_, err := tryRun(t, `
begin
in
  let n = 3;
  n(1);
end
`, nil)
	if _, ok := err.(*TypeMismatchError); !ok {
		t.Fatalf("want *TypeMismatchError, got %T: %v", err, err)
	}
}

func Test_Interp_NonExhaustiveMatch(t *testing.T) {
	_, err := tryRun(t, `
begin
  data List[T] = Cons(T, List[T]) | Nil end
in
  case Cons(1, Nil) of
  | Nil => { 0 }
  end;
end
`, nil)
	ne, ok := err.(*NonExhaustiveMatchError)
	if !ok {
		t.Fatalf("want *NonExhaustiveMatchError, got %T: %v", err, err)
	}
	if ne.Tag != "Cons" {
		t.Fatalf("tag = %q, want Cons", ne.Tag)
	}
}

func Test_Interp_ExternReturnValue(t *testing.T) {
	res := runProgram(t, `
begin
  extern add1: fun(Int) -> Int;
in
  add1(4);
end
`, map[string]NativeFunc{
		"add1": func(args []Value) (Value, error) {
			return IntVal(args[0].AsInt() + 1), nil
		},
	})
	wantInt(t, res.Value, 5)
	wantEffects(t, res, "add1(4)")
}

func Test_Interp_ExternDeclaredArity(t *testing.T) {
	// The declared signature governs, whatever the host function accepts.
	_, err := tryRun(t, `
begin
  extern add1: fun(Int) -> Int;
in
  add1(4, 5);
end
`, map[string]NativeFunc{"add1": unitExtern})
	if _, ok := err.(*ArityError); !ok {
		t.Fatalf("want *ArityError, got %T: %v", err, err)
	}
}

func Test_Interp_UnresolvedExtern(t *testing.T) {
	_, err := tryRun(t, `
begin
  extern ghost: fun(Int) -> ();
in
  ghost(1);
end
`, nil)
	ue, ok := err.(*UnresolvedExternError)
	if !ok {
		t.Fatalf("want *UnresolvedExternError, got %T: %v", err, err)
	}
	if ue.Name != "ghost" {
		t.Fatalf("name = %q", ue.Name)
	}
}

func Test_Interp_DirectiveReturnsUnit(t *testing.T) {
	res := runProgram(t, `
begin
in
  #log(1, 2);
end
`, map[string]NativeFunc{"log": unitExtern})
	if res.Value.Tag != VTUnit {
		t.Fatalf("value = %s, want ()", FormatValue(res.Value))
	}
	wantEffects(t, res, "log(1, 2)")
}

func Test_Interp_EffectsInEvaluationOrder(t *testing.T) {
	res := runProgram(t, `
begin
in
  let a = #log(1);
  let b = #log(2);
  #log(3);
end
`, map[string]NativeFunc{"log": unitExtern})
	wantEffects(t, res, "log(1)", "log(2)", "log(3)")
}

func Test_Interp_PartialEffectsOnFailure(t *testing.T) {
	// The failing call resolves before dispatch, so only calls completed
	// before it appear — and they appear in order.
	res, err := func() (*Result, error) {
		prog := mustParse(t, `
begin
in
  let a = #log(1);
  let b = #missing(2);
  #log(3);
end
`)
		eng := NewEngine()
		eng.RegisterExtern("log", unitExtern)
		return eng.Run(prog)
	}()
	if _, ok := err.(*UnresolvedExternError); !ok {
		t.Fatalf("want *UnresolvedExternError, got %T: %v", err, err)
	}
	if res == nil {
		t.Fatalf("result must be non-nil on error")
	}
	wantEffects(t, res, "log(1)")
}

func Test_Interp_FailingExternStillTraced(t *testing.T) {
	res, err := func() (*Result, error) {
		prog := mustParse(t, `begin in #boom(7); end`)
		eng := NewEngine()
		eng.RegisterExtern("boom", func(args []Value) (Value, error) {
			return Value{}, fmt.Errorf("host refused")
		})
		return eng.Run(prog)
	}()
	ne, ok := err.(*NativeError)
	if !ok {
		t.Fatalf("want *NativeError, got %T: %v", err, err)
	}
	if ne.Name != "boom" {
		t.Fatalf("name = %q", ne.Name)
	}
	wantEffects(t, res, "boom(7)")
}

func Test_Interp_Deterministic(t *testing.T) {
	prog := mustParse(t, lengthProgram)
	eng := NewEngine()
	eng.RegisterExtern("print", unitExtern)

	first, err := eng.Run(prog)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := eng.Run(prog)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if FormatValue(first.Value) != FormatValue(second.Value) {
		t.Fatalf("values differ: %s vs %s", FormatValue(first.Value), FormatValue(second.Value))
	}
	if !reflect.DeepEqual(first.Effects, second.Effects) {
		t.Fatalf("effect traces differ: %v vs %v", first.Effects, second.Effects)
	}
}
