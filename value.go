// value.go: runtime values and lexical environments.
package norem

import "fmt"

// ValueTag discriminates the runtime value union.
type ValueTag int

const (
	VTUnit ValueTag = iota
	VTInt
	VTData
	VTClosure
	VTNative
)

func (t ValueTag) String() string {
	switch t {
	case VTUnit:
		return "unit"
	case VTInt:
		return "int"
	case VTData:
		return "data value"
	case VTClosure:
		return "function"
	case VTNative:
		return "extern"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// Value is the runtime value union. Data holds int64 for VTInt, *DataObject
// for VTData, *Closure for VTClosure, *NativeRef for VTNative and nil for
// VTUnit.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// DataObject is a constructed algebraic value: a constructor tag plus its
// field values in declaration order. Fields always has exactly the arity of
// the constructor; the evaluator checks this before building one.
type DataObject struct {
	Cons   string
	Fields []Value
}

// Closure is a declared function value. Env is the scope the body evaluates
// under — the global declaration scope, never a caller's locals.
type Closure struct {
	Name   string
	Params []string
	Body   Expr
	Env    *Env
}

// NativeRef is a declared extern, resolved through the bridge at call time.
// Arity comes from the declared signature.
type NativeRef struct {
	Name  string
	Arity int
}

// constructors

func UnitVal() Value       { return Value{Tag: VTUnit} }
func IntVal(n int64) Value { return Value{Tag: VTInt, Data: n} }
func DataVal(c string, fields []Value) Value {
	return Value{Tag: VTData, Data: &DataObject{Cons: c, Fields: fields}}
}

// AsInt returns the int64 payload; valid only for VTInt values.
func (v Value) AsInt() int64 { return v.Data.(int64) }

// AsData returns the data payload; valid only for VTData values.
func (v Value) AsData() *DataObject { return v.Data.(*DataObject) }

// tagName names a value's dynamic shape for match and error reporting: the
// constructor tag for data values, the kind name otherwise.
func tagName(v Value) string {
	if v.Tag == VTData {
		return v.AsData().Cons
	}
	return v.Tag.String()
}

// Env is one scope layer: a mapping from names to values chained to the
// enclosing layer. Each call, let-binding and match arm owns exactly one
// fresh layer, dropped when its frame returns.
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv creates an empty scope layered over parent (nil for the outermost).
func NewEnv(parent *Env) *Env {
	return &Env{vars: map[string]Value{}, parent: parent}
}

// Define binds name in this layer, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Get walks outward until name is found.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}
