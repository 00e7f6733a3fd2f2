// parser.go: recursive-descent parser for norem.
//
// The parser consumes the token slice produced by the lexer (lexer.go) and
// builds the Program AST (ast.go). The grammar is fully keyword-delimited and
// unambiguous, so parsing is a single deterministic descent with one token of
// lookahead and no precedence climbing.
//
// Grammar:
//
//	program     := "begin" decl* "in" expr ";" "end"
//	decl        := externDecl | dataDecl | funDecl
//	externDecl  := "extern" IDENT ":" "fun" "(" typeList ")" "->" type ";"
//	dataDecl    := "data" IDENT ["[" IDENT ("," IDENT)* "]"] "=" ctorAlt ("|" ctorAlt)* "end"
//	ctorAlt     := "|"? IDENT ["(" type ("," type)* ")"]
//	funDecl     := "fun" IDENT "(" IDENT ("," IDENT)* ")" "=>" "{" expr "}"
//	expr        := INT | "(" ")" | IDENT | IDENT "(" exprList ")"
//	             | "@" IDENT "(" exprList ")" | "#" IDENT "(" exprList ")"
//	             | "case" expr "of" armAlt+ "end"
//	             | "let" IDENT "=" expr ";" expr
//	armAlt      := "|" IDENT ["(" IDENT ("," IDENT)* ")"] "=>" "{" expr "}"
//	type        := "(" ")" | "fun" "(" typeList ")" "->" type
//	             | IDENT ["[" type ("," type)* "]"]
//
// Declarations are parsed first and the constructor table is built from the
// data declarations; a resolution pass then rewrites identifier occurrences in
// every expression and pattern constructor-first against the table. The pass
// runs after all declarations are in, so a function may use constructors of a
// data type declared later.
//
// Errors: *ParseError on any token mismatch, *DuplicateDeclarationError when
// two top-level declarations share a name, *DuplicateConstructorError (from
// table.go) when a constructor name is reused.
package norem

import "fmt"

// Parse lexes and parses a complete program.
func Parse(src string) (*Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseProgram()
}

// Parser walks the token slice with one token of lookahead.
type Parser struct {
	toks []Token
	pos  int
}

// ParseError reports a token mismatch with its position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ----- token plumbing -----

func (p *Parser) cur() Token { return p.toks[p.pos] }

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if t.Type != EOF {
		p.pos++
	}
	return t
}

func (p *Parser) check(tt TokenType) bool { return p.cur().Type == tt }

func (p *Parser) match(tt TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.errf("expected %s, found %s", what, describeToken(p.cur()))
}

func (p *Parser) errf(format string, args ...interface{}) error {
	t := p.cur()
	return &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)}
}

func posOf(t Token) Pos { return Pos{Line: t.Line, Col: t.Col} }

func describeToken(t Token) string {
	switch t.Type {
	case EOF:
		return "end of input"
	case INTEGER:
		return fmt.Sprintf("integer %v", t.Literal)
	case INTRINSIC:
		return fmt.Sprintf("'@%s'", t.Literal)
	case DIRECTIVE:
		return fmt.Sprintf("'#%s'", t.Literal)
	default:
		return fmt.Sprintf("'%s'", t.Lexeme)
	}
}

// ----- program & declarations -----

func (p *Parser) parseProgram() (*Program, error) {
	if _, err := p.expect(BEGIN, "'begin'"); err != nil {
		return nil, err
	}

	prog := &Program{}
	seen := map[string]bool{}
	declared := func(name string, pos Pos) error {
		if seen[name] {
			return &DuplicateDeclarationError{Name: name, Line: pos.Line, Col: pos.Col}
		}
		seen[name] = true
		return nil
	}

	for {
		switch p.cur().Type {
		case EXTERN:
			d, err := p.parseExternDecl()
			if err != nil {
				return nil, err
			}
			if err := declared(d.Name, d.Pos_); err != nil {
				return nil, err
			}
			prog.Externs = append(prog.Externs, d)
			continue
		case DATA:
			d, err := p.parseDataDecl()
			if err != nil {
				return nil, err
			}
			if err := declared(d.Name, d.Pos_); err != nil {
				return nil, err
			}
			prog.Datas = append(prog.Datas, d)
			continue
		case FUNCTION:
			d, err := p.parseFunDecl()
			if err != nil {
				return nil, err
			}
			if err := declared(d.Name, d.Pos_); err != nil {
				return nil, err
			}
			prog.Funs = append(prog.Funs, d)
			continue
		}
		break
	}

	table, err := BuildConsTable(prog.Datas)
	if err != nil {
		return nil, err
	}
	prog.Table = table

	if _, err := p.expect(IN, "'in' or a declaration"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	prog.Body = body
	if _, err := p.expect(SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(END, "'end'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(EOF, "end of input"); err != nil {
		return nil, err
	}

	for _, f := range prog.Funs {
		f.Body = resolveExpr(table, f.Body)
	}
	prog.Body = resolveExpr(table, prog.Body)
	return prog, nil
}

// ----- constructor-first name resolution -----

// resolveExpr rewrites name occurrences against the constructor table: a call
// whose callee is a registered constructor becomes a construction, and a bare
// variable reference that names a constructor becomes a zero-argument
// construction. Everything else is left as parsed. The ambiguity between
// constructor and variable names is resolved purely lexically here.
func resolveExpr(t *ConsTable, e Expr) Expr {
	switch ex := e.(type) {
	case *VarExpr:
		if t.IsConstructor(ex.Name) {
			return &ConsExpr{Name: ex.Name, Pos_: ex.Pos_}
		}
		return ex
	case *CallExpr:
		for i := range ex.Args {
			ex.Args[i] = resolveExpr(t, ex.Args[i])
		}
		if t.IsConstructor(ex.Name) {
			return &ConsExpr{Name: ex.Name, Args: ex.Args, Pos_: ex.Pos_}
		}
		return ex
	case *ConsExpr:
		for i := range ex.Args {
			ex.Args[i] = resolveExpr(t, ex.Args[i])
		}
		return ex
	case *PrimExpr:
		for i := range ex.Args {
			ex.Args[i] = resolveExpr(t, ex.Args[i])
		}
		return ex
	case *DirectiveExpr:
		for i := range ex.Args {
			ex.Args[i] = resolveExpr(t, ex.Args[i])
		}
		return ex
	case *LetExpr:
		ex.Value = resolveExpr(t, ex.Value)
		ex.Body = resolveExpr(t, ex.Body)
		return ex
	case *CaseExpr:
		ex.Scrutinee = resolveExpr(t, ex.Scrutinee)
		for _, arm := range ex.Arms {
			arm.Pat = resolvePattern(t, arm.Pat)
			arm.Body = resolveExpr(t, arm.Body)
		}
		return ex
	default:
		return ex
	}
}

// resolvePattern upgrades a bare binding name to a zero-argument constructor
// pattern when the name is registered in the table.
func resolvePattern(t *ConsTable, pat Pattern) Pattern {
	if vp, ok := pat.(*VarPattern); ok && t.IsConstructor(vp.Name) {
		return &ConsPattern{Name: vp.Name, Pos_: vp.Pos_}
	}
	return pat
}

// externDecl := "extern" IDENT ":" "fun" "(" typeList ")" "->" type ";"
func (p *Parser) parseExternDecl() (*ExternDecl, error) {
	kw := p.advance() // extern
	name, err := p.expect(ID, "extern name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "':'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(FUNCTION, "'fun'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(LROUND, "'('"); err != nil {
		return nil, err
	}
	params, err := p.parseTypeList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ARROW, "'->'"); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ExternDecl{
		Name:   name.Literal.(string),
		Params: params,
		Return: ret,
		Pos_:   posOf(kw),
	}, nil
}

// dataDecl := "data" IDENT ["[" IDENT ("," IDENT)* "]"] "=" ctorAlt ("|" ctorAlt)* "end"
func (p *Parser) parseDataDecl() (*DataDecl, error) {
	kw := p.advance() // data
	name, err := p.expect(ID, "data type name")
	if err != nil {
		return nil, err
	}
	d := &DataDecl{Name: name.Literal.(string), Pos_: posOf(kw)}

	if p.match(LSQUARE) {
		for {
			tp, err := p.expect(ID, "type parameter")
			if err != nil {
				return nil, err
			}
			d.TypeParams = append(d.TypeParams, tp.Literal.(string))
			if !p.match(COMMA) {
				break
			}
		}
		if _, err := p.expect(RSQUARE, "']'"); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(ASSIGN, "'='"); err != nil {
		return nil, err
	}
	p.match(PIPE) // leading '|' is optional
	for {
		ctor, err := p.parseCtorAlt()
		if err != nil {
			return nil, err
		}
		d.Ctors = append(d.Ctors, ctor)
		if !p.match(PIPE) {
			break
		}
	}
	if _, err := p.expect(END, "'|' or 'end'"); err != nil {
		return nil, err
	}
	return d, nil
}

// ctorAlt := IDENT ["(" type ("," type)* ")"]
func (p *Parser) parseCtorAlt() (*CtorDecl, error) {
	name, err := p.expect(ID, "constructor name")
	if err != nil {
		return nil, err
	}
	c := &CtorDecl{Name: name.Literal.(string), Pos_: posOf(name)}
	if p.match(LROUND) {
		for {
			ft, err := p.parseType()
			if err != nil {
				return nil, err
			}
			c.Fields = append(c.Fields, ft)
			if !p.match(COMMA) {
				break
			}
		}
		if _, err := p.expect(RROUND, "')'"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// funDecl := "fun" IDENT "(" IDENT ("," IDENT)* ")" "=>" "{" expr "}"
func (p *Parser) parseFunDecl() (*FunDecl, error) {
	kw := p.advance() // fun
	name, err := p.expect(ID, "function name")
	if err != nil {
		return nil, err
	}
	d := &FunDecl{Name: name.Literal.(string), Pos_: posOf(kw)}
	if _, err := p.expect(LROUND, "'('"); err != nil {
		return nil, err
	}
	if !p.check(RROUND) {
		for {
			par, err := p.expect(ID, "parameter name")
			if err != nil {
				return nil, err
			}
			d.Params = append(d.Params, par.Literal.(string))
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(RROUND, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(FATARROW, "'=>'"); err != nil {
		return nil, err
	}
	body, err := p.parseBracedExpr()
	if err != nil {
		return nil, err
	}
	d.Body = body
	return d, nil
}

// ----- types -----

func (p *Parser) parseTypeList() ([]TypeExpr, error) {
	var list []TypeExpr
	if p.match(RROUND) {
		return list, nil
	}
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		list = append(list, t)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RROUND, "')'"); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseType() (TypeExpr, error) {
	switch p.cur().Type {
	case LROUND:
		open := p.advance()
		if _, err := p.expect(RROUND, "')' (the unit type)"); err != nil {
			return nil, err
		}
		return &UnitType{Pos_: posOf(open)}, nil
	case FUNCTION:
		kw := p.advance()
		if _, err := p.expect(LROUND, "'('"); err != nil {
			return nil, err
		}
		params, err := p.parseTypeList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ARROW, "'->'"); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &FunType{Params: params, Return: ret, Pos_: posOf(kw)}, nil
	case ID:
		name := p.advance()
		if !p.match(LSQUARE) {
			return &NamedType{Name: name.Literal.(string), Pos_: posOf(name)}, nil
		}
		app := &AppType{Name: name.Literal.(string), Pos_: posOf(name)}
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			app.Args = append(app.Args, arg)
			if !p.match(COMMA) {
				break
			}
		}
		if _, err := p.expect(RSQUARE, "']'"); err != nil {
			return nil, err
		}
		return app, nil
	default:
		return nil, p.errf("expected a type, found %s", describeToken(p.cur()))
	}
}

// ----- expressions -----

func (p *Parser) parseExpr() (Expr, error) {
	switch p.cur().Type {
	case INTEGER:
		t := p.advance()
		return &IntLit{Value: t.Literal.(int64), Pos_: posOf(t)}, nil
	case LROUND:
		open := p.advance()
		if _, err := p.expect(RROUND, "')' (the unit literal)"); err != nil {
			return nil, err
		}
		return &UnitLit{Pos_: posOf(open)}, nil
	case LET:
		return p.parseLetExpr()
	case CASE:
		return p.parseCaseExpr()
	case INTRINSIC:
		t := p.advance()
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &PrimExpr{Op: t.Literal.(string), Args: args, Pos_: posOf(t)}, nil
	case DIRECTIVE:
		t := p.advance()
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &DirectiveExpr{Name: t.Literal.(string), Args: args, Pos_: posOf(t)}, nil
	case ID:
		return p.parseNameExpr()
	default:
		return nil, p.errf("expected an expression, found %s", describeToken(p.cur()))
	}
}

// parseNameExpr parses an identifier occurrence: a name followed by '(' is a
// call, anything else a variable reference. The resolution pass afterwards
// rewrites constructor names into constructions.
func (p *Parser) parseNameExpr() (Expr, error) {
	t := p.advance()
	name := t.Literal.(string)
	if p.check(LROUND) {
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &CallExpr{Name: name, Args: args, Pos_: posOf(t)}, nil
	}
	return &VarExpr{Name: name, Pos_: posOf(t)}, nil
}

// letExpr := "let" IDENT "=" expr ";" expr
func (p *Parser) parseLetExpr() (Expr, error) {
	kw := p.advance() // let
	name, err := p.expect(ID, "binding name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &LetExpr{
		Name:  name.Literal.(string),
		Value: value,
		Body:  body,
		Pos_:  posOf(kw),
	}, nil
}

// caseExpr := "case" expr "of" armAlt+ "end"
func (p *Parser) parseCaseExpr() (Expr, error) {
	kw := p.advance() // case
	scrut, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(OF, "'of'"); err != nil {
		return nil, err
	}
	ce := &CaseExpr{Scrutinee: scrut, Pos_: posOf(kw)}
	for p.check(PIPE) {
		arm, err := p.parseCaseArm()
		if err != nil {
			return nil, err
		}
		ce.Arms = append(ce.Arms, arm)
	}
	if len(ce.Arms) == 0 {
		return nil, p.errf("expected at least one '|' case arm, found %s", describeToken(p.cur()))
	}
	if _, err := p.expect(END, "'|' or 'end'"); err != nil {
		return nil, err
	}
	return ce, nil
}

// armAlt := "|" IDENT ["(" IDENT ("," IDENT)* ")"] "=>" "{" expr "}"
func (p *Parser) parseCaseArm() (*CaseArm, error) {
	bar := p.advance() // '|'
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(FATARROW, "'=>'"); err != nil {
		return nil, err
	}
	body, err := p.parseBracedExpr()
	if err != nil {
		return nil, err
	}
	return &CaseArm{Pat: pat, Body: body, Pos_: posOf(bar)}, nil
}

// parsePattern parses one arm pattern. A bare "_" is a wildcard; a
// parenthesized binder list always yields a constructor pattern; a bare name
// is a variable binding until the resolution pass classifies it against the
// constructor table. Validation of constructor patterns is the match
// compiler's job (match.go).
func (p *Parser) parsePattern() (Pattern, error) {
	name, err := p.expect(ID, "a pattern")
	if err != nil {
		return nil, err
	}
	head := name.Literal.(string)
	pos := posOf(name)
	if p.match(LROUND) {
		cp := &ConsPattern{Name: head, Pos_: pos}
		for {
			b, err := p.expect(ID, "binding name")
			if err != nil {
				return nil, err
			}
			cp.Binds = append(cp.Binds, b.Literal.(string))
			if !p.match(COMMA) {
				break
			}
		}
		if _, err := p.expect(RROUND, "')'"); err != nil {
			return nil, err
		}
		return cp, nil
	}
	if head == "_" {
		return &WildPattern{Pos_: pos}, nil
	}
	return &VarPattern{Name: head, Pos_: pos}, nil
}

// parseBracedExpr parses "{" expr "}".
func (p *Parser) parseBracedExpr() (Expr, error) {
	if _, err := p.expect(LCURLY, "'{'"); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RCURLY, "'}'"); err != nil {
		return nil, err
	}
	return e, nil
}

// parseArgList parses "(" [expr ("," expr)*] ")".
func (p *Parser) parseArgList() ([]Expr, error) {
	if _, err := p.expect(LROUND, "'('"); err != nil {
		return nil, err
	}
	var args []Expr
	if p.match(RROUND) {
		return args, nil
	}
	for {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RROUND, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}
