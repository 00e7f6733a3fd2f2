// interp.go: the tree-walking evaluator.
//
// Evaluation is single-threaded, eager and strictly ordered: a depth-first
// walk of the expression tree against a chain of scopes. Each Run owns a
// fresh global scope and consults the program's constructor table; nothing is
// shared between runs, so re-running the same program against the same
// extern table yields identical results and an identical effects sequence.
//
// Failures are raised internally as a typed panic (rtErr) and recovered at
// the public entry point, surfacing as the structured errors of errors.go.
// Runaway recursion is not caught: stack exhaustion is fatal, not an error
// kind.
package norem

// Engine runs parsed programs against a native bridge. The zero value is not
// usable; NewEngine installs the standard intrinsic table.
type Engine struct {
	bridge *Bridge
}

// NewEngine returns an engine with a fresh bridge and no externs registered.
func NewEngine() *Engine {
	return &Engine{bridge: NewBridge()}
}

// Bridge exposes the engine's native bridge for intrinsic registration.
func (e *Engine) Bridge() *Bridge { return e.bridge }

// RegisterExtern installs a host implementation for an extern name.
func (e *Engine) RegisterExtern(name string, fn NativeFunc) {
	e.bridge.RegisterExtern(name, fn)
}

// Result is the outcome of one program run: the value of the `in ... end`
// body and the ordered trace of every extern and directive call performed.
// On error the Value field is meaningless but Effects still holds the calls
// observed before the failure — effects are emitted in evaluation order,
// never batched.
type Result struct {
	Value   Value
	Effects []NativeCall
}

// rtErr carries a structured evaluation error up the walk.
type rtErr struct {
	err error
}

type run struct {
	bridge  *Bridge
	table   *ConsTable
	globals *Env
	effects []NativeCall
}

func (r *run) fail(err error) {
	panic(rtErr{err: err})
}

// Run evaluates a parsed program. Declarations are bound into a fresh global
// scope first — order-independent, so functions may recurse directly and
// mutually — then the body is evaluated. The returned Result is non-nil even
// on error, carrying the partial effects trace.
func (e *Engine) Run(prog *Program) (res *Result, err error) {
	r := &run{
		bridge:  e.bridge,
		table:   prog.Table,
		globals: NewEnv(nil),
	}
	res = &Result{}
	defer func() {
		res.Effects = r.effects
		if rec := recover(); rec != nil {
			sig, ok := rec.(rtErr)
			if !ok {
				panic(rec)
			}
			err = sig.err
		}
	}()

	for _, d := range prog.Funs {
		r.globals.Define(d.Name, Value{Tag: VTClosure, Data: &Closure{
			Name:   d.Name,
			Params: d.Params,
			Body:   d.Body,
			Env:    r.globals,
		}})
	}
	for _, d := range prog.Externs {
		r.globals.Define(d.Name, Value{Tag: VTNative, Data: &NativeRef{
			Name:  d.Name,
			Arity: len(d.Params),
		}})
	}

	res.Value = r.eval(prog.Body, r.globals)
	return res, nil
}

// eval walks one expression node. All failures panic with rtErr.
func (r *run) eval(e Expr, env *Env) Value {
	switch ex := e.(type) {
	case *IntLit:
		return IntVal(ex.Value)

	case *UnitLit:
		return UnitVal()

	case *VarExpr:
		v, ok := env.Get(ex.Name)
		if !ok {
			r.fail(&UnboundVariableError{Name: ex.Name, Line: ex.Pos_.Line, Col: ex.Pos_.Col})
		}
		return v

	case *ConsExpr:
		return r.evalCons(ex, env)

	case *CallExpr:
		return r.evalCall(ex, env)

	case *PrimExpr:
		return r.evalPrim(ex, env)

	case *CaseExpr:
		return r.evalCase(ex, env)

	case *LetExpr:
		bound := r.eval(ex.Value, env)
		scope := NewEnv(env)
		scope.Define(ex.Name, bound)
		return r.eval(ex.Body, scope)

	case *DirectiveExpr:
		args := r.evalArgs(ex.Args, env)
		r.dispatchNative(ex.Name, args, -1, ex.Pos_)
		return UnitVal()

	default:
		r.fail(&TypeMismatchError{
			Op:   "evaluate",
			Want: "a known expression form",
			Got:  "unknown node",
			Line: e.Position().Line,
			Col:  e.Position().Col,
		})
		return Value{}
	}
}

func (r *run) evalArgs(args []Expr, env *Env) []Value {
	vals := make([]Value, len(args))
	for i, a := range args {
		vals[i] = r.eval(a, env)
	}
	return vals
}

func (r *run) evalCons(ex *ConsExpr, env *Env) Value {
	desc, ok := r.table.LookupConstructor(ex.Name)
	if !ok {
		r.fail(&UnknownConstructorError{Name: ex.Name, Line: ex.Pos_.Line, Col: ex.Pos_.Col})
	}
	args := r.evalArgs(ex.Args, env)
	if len(args) != desc.Arity {
		r.fail(&ArityError{
			Name: ex.Name,
			Want: desc.Arity,
			Got:  len(args),
			Line: ex.Pos_.Line,
			Col:  ex.Pos_.Col,
		})
	}
	return DataVal(desc.Name, args)
}

func (r *run) evalCall(ex *CallExpr, env *Env) Value {
	args := r.evalArgs(ex.Args, env)
	callee, ok := env.Get(ex.Name)
	if !ok {
		r.fail(&UnboundVariableError{Name: ex.Name, Line: ex.Pos_.Line, Col: ex.Pos_.Col})
	}
	switch callee.Tag {
	case VTClosure:
		cl := callee.Data.(*Closure)
		if len(args) != len(cl.Params) {
			r.fail(&ArityError{
				Name: cl.Name,
				Want: len(cl.Params),
				Got:  len(args),
				Line: ex.Pos_.Line,
				Col:  ex.Pos_.Col,
			})
		}
		// Fresh scope over the closure's environment (the global declaration
		// scope), never over the caller's locals.
		scope := NewEnv(cl.Env)
		for i, p := range cl.Params {
			scope.Define(p, args[i])
		}
		return r.eval(cl.Body, scope)

	case VTNative:
		ref := callee.Data.(*NativeRef)
		return r.dispatchNative(ref.Name, args, ref.Arity, ex.Pos_)

	default:
		r.fail(&TypeMismatchError{
			Op:   "call " + ex.Name,
			Want: "a function or extern",
			Got:  tagName(callee),
			Line: ex.Pos_.Line,
			Col:  ex.Pos_.Col,
		})
		return Value{}
	}
}

// dispatchNative resolves name through the bridge, records the call on the
// effects trace, and invokes the host implementation. arity < 0 skips the
// declared-arity check (directive calls carry no declared signature).
func (r *run) dispatchNative(name string, args []Value, arity int, pos Pos) Value {
	fn, ok := r.bridge.LookupExtern(name)
	if !ok {
		r.fail(&UnresolvedExternError{Name: name, Line: pos.Line, Col: pos.Col})
	}
	if arity >= 0 && len(args) != arity {
		r.fail(&ArityError{Name: name, Want: arity, Got: len(args), Line: pos.Line, Col: pos.Col})
	}
	// The call is observable from this point: the trace entry precedes the
	// host invocation so a failing extern still appears in order.
	r.effects = append(r.effects, NativeCall{Name: name, Args: args})
	out, err := fn(args)
	if err != nil {
		r.fail(&NativeError{Name: name, Err: err, Line: pos.Line, Col: pos.Col})
	}
	return out
}

func (r *run) evalPrim(ex *PrimExpr, env *Env) Value {
	op, ok := r.bridge.lookupIntrinsic(ex.Op)
	if !ok {
		r.fail(&UnknownIntrinsicError{Op: ex.Op, Line: ex.Pos_.Line, Col: ex.Pos_.Col})
	}
	args := r.evalArgs(ex.Args, env)
	if len(args) != op.arity {
		r.fail(&IntrinsicArityError{
			Op:   ex.Op,
			Want: op.arity,
			Got:  len(args),
			Line: ex.Pos_.Line,
			Col:  ex.Pos_.Col,
		})
	}
	operands := make([]int64, len(args))
	for i, a := range args {
		if a.Tag != VTInt {
			r.fail(&TypeMismatchError{
				Op:   "@" + ex.Op,
				Want: "int",
				Got:  tagName(a),
				Line: ex.Pos_.Line,
				Col:  ex.Pos_.Col,
			})
		}
		operands[i] = a.AsInt()
	}
	n, err := op.apply(operands)
	if err != nil {
		r.fail(&NativeError{Name: "@" + ex.Op, Err: err, Line: ex.Pos_.Line, Col: ex.Pos_.Col})
	}
	return IntVal(n)
}

func (r *run) evalCase(ex *CaseExpr, env *Env) Value {
	scrut := r.eval(ex.Scrutinee, env)
	arms, err := compileMatch(r.table, ex.Arms)
	if err != nil {
		r.fail(err)
	}
	arm, scope, ok := selectArm(arms, scrut, env)
	if !ok {
		r.fail(&NonExhaustiveMatchError{
			Tag:  tagName(scrut),
			Line: ex.Pos_.Line,
			Col:  ex.Pos_.Col,
		})
	}
	return r.eval(arm.body, scope)
}
