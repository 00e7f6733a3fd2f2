// errors.go: error taxonomy and caret-snippet rendering.
//
// Every failure the engine can report is a distinct struct carrying the
// source position where it was detected. Lex/parse errors abort before any
// declaration is registered; evaluation errors abort the whole Program run.
// Nothing is retried internally — the engine has no transient failures.
//
// WrapErrorWithSource recognizes the engine's error kinds and re-renders them
// as a multi-line snippet with a caret under the offending column:
//
//	PARSE ERROR at 3:12: expected ')', found ';'
//
//	   2 | fun length(xs) => {
//	   3 |   case xs of
//	       |            ^
//	   4 |   | Nil => { 0 }
//
// Other errors are returned unchanged.
package norem

import (
	"fmt"
	"strings"
)

// ----- parse-time duplicates -----

// DuplicateConstructorError reports a constructor name declared by two data
// types (or twice within one).
type DuplicateConstructorError struct {
	Name     string
	TypeName string // type attempting the re-declaration
	Prev     string // type that declared it first
	Line     int
	Col      int
}

func (e *DuplicateConstructorError) Error() string {
	return fmt.Sprintf("constructor %q of data %s already declared by data %s", e.Name, e.TypeName, e.Prev)
}

// DuplicateDeclarationError reports two top-level declarations sharing a name.
type DuplicateDeclarationError struct {
	Name string
	Line int
	Col  int
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("duplicate top-level declaration %q", e.Name)
}

// ----- evaluation failures -----

// UnboundVariableError reports a name absent from every enclosing scope.
type UnboundVariableError struct {
	Name string
	Line int
	Col  int
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}

// UnresolvedExternError reports a call to an extern (or directive) name the
// host never provided an implementation for.
type UnresolvedExternError struct {
	Name string
	Line int
	Col  int
}

func (e *UnresolvedExternError) Error() string {
	return fmt.Sprintf("extern %q has no host implementation", e.Name)
}

// ArityError reports a call or construction with the wrong argument count.
type ArityError struct {
	Name string
	Want int
	Got  int
	Line int
	Col  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s expects %d argument(s) but received %d", e.Name, e.Want, e.Got)
}

// IntrinsicArityError reports an intrinsic applied to the wrong operand count.
type IntrinsicArityError struct {
	Op   string
	Want int
	Got  int
	Line int
	Col  int
}

func (e *IntrinsicArityError) Error() string {
	return fmt.Sprintf("@%s expects %d operand(s) but received %d", e.Op, e.Want, e.Got)
}

// TypeMismatchError reports a value of the wrong kind reaching an operation
// (a non-integer operand to @iadd, a call target that is not callable, and so
// on). Op names the operation, Want the expected kind, Got what arrived.
type TypeMismatchError struct {
	Op   string
	Want string
	Got  string
	Line int
	Col  int
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Want, e.Got)
}

// NonExhaustiveMatchError reports a case expression whose scrutinee tag
// matched no arm. Exhaustiveness is not checked statically, so this surfaces
// at run time.
type NonExhaustiveMatchError struct {
	Tag  string
	Line int
	Col  int
}

func (e *NonExhaustiveMatchError) Error() string {
	return fmt.Sprintf("no case arm matches %s", e.Tag)
}

// UnknownConstructorError reports a pattern applying argument bindings to a
// name that is not a registered constructor.
type UnknownConstructorError struct {
	Name string
	Line int
	Col  int
}

func (e *UnknownConstructorError) Error() string {
	return fmt.Sprintf("pattern names unknown constructor %q", e.Name)
}

// UnknownIntrinsicError reports an `@name` the bridge's intrinsic table does
// not define.
type UnknownIntrinsicError struct {
	Op   string
	Line int
	Col  int
}

func (e *UnknownIntrinsicError) Error() string {
	return fmt.Sprintf("unknown intrinsic @%s", e.Op)
}

// NativeError wraps a failure raised by a host-supplied extern function or a
// failing intrinsic (Name carries the "@" prefix for intrinsics).
type NativeError struct {
	Name string
	Err  error
	Line int
	Col  int
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("native call %s failed: %v", e.Name, e.Err)
}

func (e *NativeError) Unwrap() error { return e.Err }

/* ===========================
   PUBLIC API
   =========================== */

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes the engine's error kinds and
// leaves other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("in <name>")
// included in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	header, line, col, msg, ok := classify(err)
	if !ok {
		return err
	}
	return fmt.Errorf("%s", prettyErrorStringLabeled(src, header, srcName, line, col, msg))
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: helpers & rendering
   =========================== */

// classify extracts header text and 1-based coordinates from the engine's
// error kinds. Lexer/parser/runtime columns are 0-based internally; rendering
// is 1-based.
func classify(err error) (header string, line, col int, msg string, ok bool) {
	switch e := err.(type) {
	case *LexError:
		return "LEXICAL ERROR", e.Line, e.Col + 1, e.Msg, true
	case *ParseError:
		return "PARSE ERROR", e.Line, e.Col + 1, e.Msg, true
	case *DuplicateConstructorError:
		return "PARSE ERROR", e.Line, e.Col + 1, e.Error(), true
	case *DuplicateDeclarationError:
		return "PARSE ERROR", e.Line, e.Col + 1, e.Error(), true
	case *UnboundVariableError:
		return "RUNTIME ERROR", e.Line, e.Col + 1, e.Error(), true
	case *UnresolvedExternError:
		return "RUNTIME ERROR", e.Line, e.Col + 1, e.Error(), true
	case *ArityError:
		return "RUNTIME ERROR", e.Line, e.Col + 1, e.Error(), true
	case *IntrinsicArityError:
		return "RUNTIME ERROR", e.Line, e.Col + 1, e.Error(), true
	case *TypeMismatchError:
		return "RUNTIME ERROR", e.Line, e.Col + 1, e.Error(), true
	case *NonExhaustiveMatchError:
		return "RUNTIME ERROR", e.Line, e.Col + 1, e.Error(), true
	case *UnknownConstructorError:
		return "RUNTIME ERROR", e.Line, e.Col + 1, e.Error(), true
	case *UnknownIntrinsicError:
		return "RUNTIME ERROR", e.Line, e.Col + 1, e.Error(), true
	case *NativeError:
		return "RUNTIME ERROR", e.Line, e.Col + 1, e.Error(), true
	default:
		return "", 0, 0, "", false
	}
}

// prettyErrorStringLabeled builds a snippet with a header and a caret. It
// shows at most one previous and one next line when available. Coordinates
// are treated as 1-based and clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
