// match.go: the pattern-match compiler.
//
// A case expression's arms are validated against the constructor table and
// turned into a dispatch plan before any arm runs. Selection is first-match
// in source order; exhaustiveness is not checked, so a scrutinee matching no
// arm is a runtime failure (*NonExhaustiveMatchError), never a default.
package norem

// compiledArm is one validated arm: either a constructor arm (cons != nil)
// binding each field in order, or a catch-all (cons == nil) optionally
// binding the whole scrutinee.
type compiledArm struct {
	cons  *ConsDesc // nil for catch-all arms
	binds []string  // field binders, or the single whole-value binder
	body  Expr
	pos   Pos
}

// compileMatch validates every arm of a case expression. A constructor
// pattern must name a registered constructor and carry one binder per field;
// a variable or wildcard pattern compiles to a catch-all. Arms after the
// first catch-all are unreachable but legal — first-match semantics make
// them inert.
func compileMatch(table *ConsTable, arms []*CaseArm) ([]compiledArm, error) {
	compiled := make([]compiledArm, 0, len(arms))
	for _, arm := range arms {
		switch pat := arm.Pat.(type) {
		case *ConsPattern:
			desc, ok := table.LookupConstructor(pat.Name)
			if !ok {
				return nil, &UnknownConstructorError{
					Name: pat.Name,
					Line: pat.Pos_.Line,
					Col:  pat.Pos_.Col,
				}
			}
			if len(pat.Binds) != desc.Arity {
				return nil, &ArityError{
					Name: pat.Name,
					Want: desc.Arity,
					Got:  len(pat.Binds),
					Line: pat.Pos_.Line,
					Col:  pat.Pos_.Col,
				}
			}
			compiled = append(compiled, compiledArm{
				cons:  desc,
				binds: pat.Binds,
				body:  arm.Body,
				pos:   arm.Pos_,
			})
		case *VarPattern:
			compiled = append(compiled, compiledArm{
				binds: []string{pat.Name},
				body:  arm.Body,
				pos:   arm.Pos_,
			})
		case *WildPattern:
			compiled = append(compiled, compiledArm{
				body: arm.Body,
				pos:  arm.Pos_,
			})
		}
	}
	return compiled, nil
}

// selectArm picks the first arm matching the scrutinee and returns it with a
// fresh scope holding the arm's bindings, layered over env. The second return
// is false when no arm matches.
func selectArm(arms []compiledArm, scrutinee Value, env *Env) (*compiledArm, *Env, bool) {
	for i := range arms {
		arm := &arms[i]
		if arm.cons == nil {
			scope := NewEnv(env)
			if len(arm.binds) == 1 {
				scope.Define(arm.binds[0], scrutinee)
			}
			return arm, scope, true
		}
		if scrutinee.Tag != VTData {
			continue
		}
		obj := scrutinee.AsData()
		if obj.Cons != arm.cons.Name {
			continue
		}
		scope := NewEnv(env)
		for j, name := range arm.binds {
			if name == "_" {
				continue
			}
			scope.Define(name, obj.Fields[j])
		}
		return arm, scope, true
	}
	return nil, nil, false
}
