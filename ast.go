// ast.go: syntax tree for norem programs.
//
// The tree is a closed set of variants per syntactic class (Decl, Expr,
// Pattern, TypeExpr), each a small struct implementing a marker method. Nodes
// are owned by the tree that contains them; nothing is shared or cyclic. Every
// node carries the position of its first token for diagnostics.
package norem

// Pos is a 1-based line and 0-based column, matching Token coordinates.
type Pos struct {
	Line int
	Col  int
}

// Node is implemented by every syntax tree node.
type Node interface {
	Position() Pos
}

// Program is the top-level unit: all declarations plus the single body
// expression of the `in ... end` block. Table is built from the data
// declarations during parsing and is immutable afterwards.
type Program struct {
	Externs []*ExternDecl
	Datas   []*DataDecl
	Funs    []*FunDecl
	Body    Expr
	Table   *ConsTable
}

// ----- declarations -----

type Decl interface {
	Node
	declNode()
}

// ExternDecl is a function signature whose implementation the host supplies.
// The parameter and return types are kept as documentation only.
type ExternDecl struct {
	Name   string
	Params []TypeExpr
	Return TypeExpr
	Pos_   Pos
}

// DataDecl declares an algebraic data type and its constructors.
type DataDecl struct {
	Name       string
	TypeParams []string
	Ctors      []*CtorDecl
	Pos_       Pos
}

// CtorDecl is one constructor alternative of a data declaration.
type CtorDecl struct {
	Name   string
	Fields []TypeExpr
	Pos_   Pos
}

// FunDecl is a named function. Parameters are untyped names; the body is a
// single expression.
type FunDecl struct {
	Name   string
	Params []string
	Body   Expr
	Pos_   Pos
}

func (d *ExternDecl) declNode() {}
func (d *DataDecl) declNode()   {}
func (d *FunDecl) declNode()    {}

func (d *ExternDecl) Position() Pos { return d.Pos_ }
func (d *DataDecl) Position() Pos   { return d.Pos_ }
func (d *CtorDecl) Position() Pos   { return d.Pos_ }
func (d *FunDecl) Position() Pos    { return d.Pos_ }

// ----- expressions -----

type Expr interface {
	Node
	exprNode()
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	Pos_  Pos
}

// UnitLit is the `()` literal.
type UnitLit struct {
	Pos_ Pos
}

// VarExpr references a binding by name.
type VarExpr struct {
	Name string
	Pos_ Pos
}

// CallExpr applies a named function or extern to arguments.
type CallExpr struct {
	Name string
	Args []Expr
	Pos_ Pos
}

// PrimExpr applies an intrinsic operator, written `@name(...)`.
type PrimExpr struct {
	Op   string
	Args []Expr
	Pos_ Pos
}

// ConsExpr builds a data value, written `Ctor(...)` or bare `Ctor`.
type ConsExpr struct {
	Name string
	Args []Expr
	Pos_ Pos
}

// CaseExpr scrutinizes a value against an ordered list of arms.
type CaseExpr struct {
	Scrutinee Expr
	Arms      []*CaseArm
	Pos_      Pos
}

// CaseArm is one `| pattern => { body }` alternative.
type CaseArm struct {
	Pat  Pattern
	Body Expr
	Pos_ Pos
}

// LetExpr binds a name for the extent of its body.
type LetExpr struct {
	Name  string
	Value Expr
	Body  Expr
	Pos_  Pos
}

// DirectiveExpr invokes a host function for effect, written `#name(...)`.
// Its value is unit; the call itself is reported to the host.
type DirectiveExpr struct {
	Name string
	Args []Expr
	Pos_ Pos
}

func (e *IntLit) exprNode()        {}
func (e *UnitLit) exprNode()       {}
func (e *VarExpr) exprNode()       {}
func (e *CallExpr) exprNode()      {}
func (e *PrimExpr) exprNode()      {}
func (e *ConsExpr) exprNode()      {}
func (e *CaseExpr) exprNode()      {}
func (e *LetExpr) exprNode()       {}
func (e *DirectiveExpr) exprNode() {}

func (e *IntLit) Position() Pos        { return e.Pos_ }
func (e *UnitLit) Position() Pos       { return e.Pos_ }
func (e *VarExpr) Position() Pos       { return e.Pos_ }
func (e *CallExpr) Position() Pos      { return e.Pos_ }
func (e *PrimExpr) Position() Pos      { return e.Pos_ }
func (e *ConsExpr) Position() Pos      { return e.Pos_ }
func (e *CaseExpr) Position() Pos      { return e.Pos_ }
func (e *LetExpr) Position() Pos       { return e.Pos_ }
func (e *DirectiveExpr) Position() Pos { return e.Pos_ }

// ----- patterns -----

type Pattern interface {
	Node
	patNode()
}

// ConsPattern matches a data value by constructor tag and binds its fields in
// order. Binds has one name per field; "_" skips a field binding.
type ConsPattern struct {
	Name  string
	Binds []string
	Pos_  Pos
}

// VarPattern matches anything and binds the whole scrutinee.
type VarPattern struct {
	Name string
	Pos_ Pos
}

// WildPattern matches anything and binds nothing, written `_`.
type WildPattern struct {
	Pos_ Pos
}

func (p *ConsPattern) patNode() {}
func (p *VarPattern) patNode()  {}
func (p *WildPattern) patNode() {}

func (p *ConsPattern) Position() Pos { return p.Pos_ }
func (p *VarPattern) Position() Pos  { return p.Pos_ }
func (p *WildPattern) Position() Pos { return p.Pos_ }

// ----- type annotations -----
//
// Types appear only in extern signatures and data declarations. The engine
// parses them for fidelity and diagnostics but never checks them.

type TypeExpr interface {
	Node
	typeNode()
}

// NamedType is a bare type name: `Int`, `T`, `List`.
type NamedType struct {
	Name string
	Pos_ Pos
}

// UnitType is the `()` type annotation.
type UnitType struct {
	Pos_ Pos
}

// AppType applies a type constructor to arguments: `List[T]`.
type AppType struct {
	Name string
	Args []TypeExpr
	Pos_ Pos
}

// FunType is a function type annotation: `fun(Int, Int) -> Int`.
type FunType struct {
	Params []TypeExpr
	Return TypeExpr
	Pos_   Pos
}

func (t *NamedType) typeNode() {}
func (t *UnitType) typeNode()  {}
func (t *AppType) typeNode()   {}
func (t *FunType) typeNode()   {}

func (t *NamedType) Position() Pos { return t.Pos_ }
func (t *UnitType) Position() Pos  { return t.Pos_ }
func (t *AppType) Position() Pos   { return t.Pos_ }
func (t *FunType) Position() Pos   { return t.Pos_ }
