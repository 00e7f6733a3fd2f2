// printer.go: rendering of runtime values and programs back to source form.
package norem

import (
	"fmt"
	"strconv"
	"strings"
)

/* ---------- globals & tiny helpers ---------- */

var EnableColor = false // REPL-only; tests leave this false

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
)

func colorize(s, c string) string {
	if !EnableColor {
		return s
	}
	return c + s + colorReset
}

func blue(s string) string  { return colorize(s, colorBlue) }
func green(s string) string { return colorize(s, colorGreen) }

/* ---------- values ---------- */

// FormatValue renders a runtime value in source-like form:
// `5`, `()`, `Cons(1, Cons(2, Nil))`, `fun length(xs)`.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTUnit:
		return "()"
	case VTInt:
		return strconv.FormatInt(v.AsInt(), 10)
	case VTData:
		obj := v.AsData()
		if len(obj.Fields) == 0 {
			return green(obj.Cons)
		}
		parts := make([]string, len(obj.Fields))
		for i, f := range obj.Fields {
			parts[i] = FormatValue(f)
		}
		return green(obj.Cons) + "(" + strings.Join(parts, ", ") + ")"
	case VTClosure:
		cl := v.Data.(*Closure)
		return blue("fun " + cl.Name + "(" + strings.Join(cl.Params, ", ") + ")")
	case VTNative:
		ref := v.Data.(*NativeRef)
		return blue("extern " + ref.Name)
	default:
		return fmt.Sprintf("<%s>", v.Tag)
	}
}

// FormatCall renders an observed native call, `print(5)`.
func FormatCall(c NativeCall) string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = FormatValue(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

/* ---------- programs ---------- */

// FormatProgram renders a parsed program back to source form with two-space
// indentation. The output reparses to the same tree.
func FormatProgram(prog *Program) string {
	var b strings.Builder
	b.WriteString("begin\n")
	for _, d := range prog.Externs {
		b.WriteString("  " + formatExtern(d) + "\n")
	}
	for _, d := range prog.Datas {
		writeData(&b, d, 1)
	}
	for _, d := range prog.Funs {
		writeFun(&b, d, 1)
	}
	b.WriteString("in\n")
	writeExpr(&b, prog.Body, 1)
	b.WriteString(";\nend\n")
	return b.String()
}

func formatExtern(d *ExternDecl) string {
	params := make([]string, len(d.Params))
	for i, t := range d.Params {
		params[i] = FormatType(t)
	}
	return fmt.Sprintf("extern %s: fun(%s) -> %s;", d.Name, strings.Join(params, ", "), FormatType(d.Return))
}

func writeData(b *strings.Builder, d *DataDecl, depth int) {
	ind := strings.Repeat("  ", depth)
	b.WriteString(ind + "data " + d.Name)
	if len(d.TypeParams) > 0 {
		b.WriteString("[" + strings.Join(d.TypeParams, ", ") + "]")
	}
	b.WriteString(" =\n")
	for _, c := range d.Ctors {
		b.WriteString(ind + "| " + c.Name)
		if len(c.Fields) > 0 {
			fields := make([]string, len(c.Fields))
			for i, f := range c.Fields {
				fields[i] = FormatType(f)
			}
			b.WriteString("(" + strings.Join(fields, ", ") + ")")
		}
		b.WriteString("\n")
	}
	b.WriteString(ind + "end\n")
}

func writeFun(b *strings.Builder, d *FunDecl, depth int) {
	ind := strings.Repeat("  ", depth)
	b.WriteString(ind + "fun " + d.Name + "(" + strings.Join(d.Params, ", ") + ") => {\n")
	writeExpr(b, d.Body, depth+1)
	b.WriteString("\n" + ind + "}\n")
}

// writeExpr writes an expression at the given indent depth. Let chains and
// case expressions break across lines; everything else renders inline.
func writeExpr(b *strings.Builder, e Expr, depth int) {
	ind := strings.Repeat("  ", depth)
	switch ex := e.(type) {
	case *LetExpr:
		b.WriteString(ind + "let " + ex.Name + " = " + FormatExpr(ex.Value) + ";\n")
		writeExpr(b, ex.Body, depth)
	case *CaseExpr:
		b.WriteString(ind + "case " + FormatExpr(ex.Scrutinee) + " of\n")
		for _, arm := range ex.Arms {
			b.WriteString(ind + "| " + formatPattern(arm.Pat) + " => { " + FormatExpr(arm.Body) + " }\n")
		}
		b.WriteString(ind + "end")
	default:
		b.WriteString(ind + FormatExpr(e))
	}
}

// FormatExpr renders an expression on one line.
func FormatExpr(e Expr) string {
	switch ex := e.(type) {
	case *IntLit:
		return strconv.FormatInt(ex.Value, 10)
	case *UnitLit:
		return "()"
	case *VarExpr:
		return ex.Name
	case *CallExpr:
		return ex.Name + "(" + formatArgs(ex.Args) + ")"
	case *PrimExpr:
		return "@" + ex.Op + "(" + formatArgs(ex.Args) + ")"
	case *DirectiveExpr:
		return "#" + ex.Name + "(" + formatArgs(ex.Args) + ")"
	case *ConsExpr:
		if len(ex.Args) == 0 {
			return ex.Name
		}
		return ex.Name + "(" + formatArgs(ex.Args) + ")"
	case *LetExpr:
		return "let " + ex.Name + " = " + FormatExpr(ex.Value) + "; " + FormatExpr(ex.Body)
	case *CaseExpr:
		var b strings.Builder
		b.WriteString("case " + FormatExpr(ex.Scrutinee) + " of")
		for _, arm := range ex.Arms {
			b.WriteString(" | " + formatPattern(arm.Pat) + " => { " + FormatExpr(arm.Body) + " }")
		}
		b.WriteString(" end")
		return b.String()
	default:
		return fmt.Sprintf("<expr %T>", e)
	}
}

func formatArgs(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = FormatExpr(a)
	}
	return strings.Join(parts, ", ")
}

func formatPattern(p Pattern) string {
	switch pat := p.(type) {
	case *WildPattern:
		return "_"
	case *VarPattern:
		return pat.Name
	case *ConsPattern:
		if len(pat.Binds) == 0 {
			return pat.Name
		}
		return pat.Name + "(" + strings.Join(pat.Binds, ", ") + ")"
	default:
		return "<pattern>"
	}
}

// FormatType renders a type annotation.
func FormatType(t TypeExpr) string {
	switch ty := t.(type) {
	case *UnitType:
		return "()"
	case *NamedType:
		return ty.Name
	case *AppType:
		args := make([]string, len(ty.Args))
		for i, a := range ty.Args {
			args[i] = FormatType(a)
		}
		return ty.Name + "[" + strings.Join(args, ", ") + "]"
	case *FunType:
		params := make([]string, len(ty.Params))
		for i, p := range ty.Params {
			params[i] = FormatType(p)
		}
		return "fun(" + strings.Join(params, ", ") + ") -> " + FormatType(ty.Return)
	default:
		return "<type>"
	}
}
