// bridge.go: the native bridge — host-supplied externs and the intrinsic
// operator table.
//
// Externs are Go functions the host registers by name before running a
// program; an `extern` declaration only states the signature, and calling a
// name the host never registered fails with *UnresolvedExternError at the
// call site. Intrinsics (`@iadd` and family) are fixed-arity integer
// primitives owned by the bridge so the set can grow without touching the
// evaluator.
package norem

import "fmt"

// NativeFunc is a host-supplied extern implementation. Arguments arrive
// already evaluated, left to right. A returned error aborts the run.
type NativeFunc func(args []Value) (Value, error)

// NativeCall records one observed extern or directive invocation: the name
// and the evaluated argument values, in evaluation order.
type NativeCall struct {
	Name string
	Args []Value
}

// Bridge maps extern names to host implementations and intrinsic names to
// primitive operations.
type Bridge struct {
	externs    map[string]NativeFunc
	intrinsics map[string]intrinsicOp
}

type intrinsicOp struct {
	arity int
	apply func(args []int64) (int64, error)
}

// NewBridge returns a bridge with the standard intrinsic table and no
// externs.
func NewBridge() *Bridge {
	return &Bridge{
		externs:    map[string]NativeFunc{},
		intrinsics: standardIntrinsics(),
	}
}

// RegisterExtern installs (or replaces) a host implementation for name.
func (b *Bridge) RegisterExtern(name string, fn NativeFunc) {
	b.externs[name] = fn
}

// LookupExtern resolves an extern implementation.
func (b *Bridge) LookupExtern(name string) (NativeFunc, bool) {
	fn, ok := b.externs[name]
	return fn, ok
}

// RegisterIntrinsic extends the intrinsic table with a fixed-arity integer
// operation. The standard set covers integer arithmetic and comparisons;
// hosts may add more.
func (b *Bridge) RegisterIntrinsic(name string, arity int, apply func(args []int64) (int64, error)) {
	b.intrinsics[name] = intrinsicOp{arity: arity, apply: apply}
}

func (b *Bridge) lookupIntrinsic(name string) (intrinsicOp, bool) {
	op, ok := b.intrinsics[name]
	return op, ok
}

// standardIntrinsics builds the default operator table: two-operand integer
// arithmetic, one-operand negation, and comparisons yielding 0 or 1.
func standardIntrinsics() map[string]intrinsicOp {
	bin := func(f func(a, b int64) (int64, error)) intrinsicOp {
		return intrinsicOp{arity: 2, apply: func(args []int64) (int64, error) {
			return f(args[0], args[1])
		}}
	}
	cmp := func(f func(a, b int64) bool) intrinsicOp {
		return bin(func(a, b int64) (int64, error) {
			if f(a, b) {
				return 1, nil
			}
			return 0, nil
		})
	}
	return map[string]intrinsicOp{
		"iadd": bin(func(a, b int64) (int64, error) { return a + b, nil }),
		"isub": bin(func(a, b int64) (int64, error) { return a - b, nil }),
		"imul": bin(func(a, b int64) (int64, error) { return a * b, nil }),
		"idiv": bin(func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return a / b, nil
		}),
		"irem": bin(func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, fmt.Errorf("remainder by zero")
			}
			return a % b, nil
		}),
		"ineg": {arity: 1, apply: func(args []int64) (int64, error) { return -args[0], nil }},
		"icmpeq": cmp(func(a, b int64) bool { return a == b }),
		"icmpne": cmp(func(a, b int64) bool { return a != b }),
		"icmpls": cmp(func(a, b int64) bool { return a < b }),
		"icmple": cmp(func(a, b int64) bool { return a <= b }),
		"icmpgr": cmp(func(a, b int64) bool { return a > b }),
		"icmpge": cmp(func(a, b int64) bool { return a >= b }),
	}
}
