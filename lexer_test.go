// lexer_test.go
package norem

import (
	"reflect"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := NewLexer(src).Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	end := len(tokens)
	if end > 0 && tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_ExternDeclaration(t *testing.T) {
	wantTypes(t, `extern print: fun(Int) -> ();`, []TokenType{
		EXTERN, ID, COLON, FUNCTION, LROUND, ID, RROUND,
		ARROW, LROUND, RROUND, SEMICOLON,
	})
}

func Test_Lexer_DataDeclaration(t *testing.T) {
	src := `
data List[T] =
| Cons(T, List[T])
| Nil
end
`
	wantTypes(t, src, []TokenType{
		DATA, ID, LSQUARE, ID, RSQUARE, ASSIGN,
		PIPE, ID, LROUND, ID, COMMA, ID, LSQUARE, ID, RSQUARE, RROUND,
		PIPE, ID,
		END,
	})
}

func Test_Lexer_FunDeclaration(t *testing.T) {
	got := wantTypes(t, `fun length(xs) => { 0 }`, []TokenType{
		FUNCTION, ID, LROUND, ID, RROUND, FATARROW, LCURLY, INTEGER, RCURLY,
	})
	if got[7].Literal.(int64) != 0 {
		t.Fatalf("integer literal = %v, want 0", got[7].Literal)
	}
}

func Test_Lexer_IntrinsicAndDirective(t *testing.T) {
	got := wantTypes(t, `@iadd(1, x) #print(y)`, []TokenType{
		INTRINSIC, LROUND, INTEGER, COMMA, ID, RROUND,
		DIRECTIVE, LROUND, ID, RROUND,
	})
	if got[0].Literal.(string) != "iadd" {
		t.Fatalf("intrinsic name = %v, want iadd", got[0].Literal)
	}
	if got[6].Literal.(string) != "print" {
		t.Fatalf("directive name = %v, want print", got[6].Literal)
	}
}

func Test_Lexer_ArrowsAndAssign(t *testing.T) {
	wantTypes(t, `= => ->`, []TokenType{ASSIGN, FATARROW, ARROW})
}

func Test_Lexer_KeywordsVersusIdents(t *testing.T) {
	got := wantTypes(t, `begin end in case of let extern data fun lets Case`, []TokenType{
		BEGIN, END, IN, CASE, OF, LET, EXTERN, DATA, FUNCTION, ID, ID,
	})
	if got[9].Literal.(string) != "lets" || got[10].Literal.(string) != "Case" {
		t.Fatalf("identifier literals wrong: %v %v", got[9].Literal, got[10].Literal)
	}
}

func Test_Lexer_Positions(t *testing.T) {
	ts := toks(t, "let x = 1;\ncase y of")
	var caseTok *Token
	for i := range ts {
		if ts[i].Type == CASE {
			caseTok = &ts[i]
		}
	}
	if caseTok == nil {
		t.Fatalf("no CASE token")
	}
	if caseTok.Line != 2 || caseTok.Col != 0 {
		t.Fatalf("CASE at %d:%d, want 2:0", caseTok.Line, caseTok.Col)
	}
}

func Test_Lexer_IntegerOverflow(t *testing.T) {
	_, err := NewLexer("92233720368547758079").Scan()
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("want *LexError, got %v", err)
	}
}

func Test_Lexer_DigitThenLetter(t *testing.T) {
	if _, err := NewLexer("12abc").Scan(); err == nil {
		t.Fatalf("want error for identifier starting with a digit")
	}
}

func Test_Lexer_UnrecognizedCharacter(t *testing.T) {
	_, err := NewLexer("let x = $").Scan()
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %v", err)
	}
	if le.Line != 1 || le.Col != 8 {
		t.Fatalf("error at %d:%d, want 1:8", le.Line, le.Col)
	}
}

func Test_Lexer_BareMarkerRejected(t *testing.T) {
	if _, err := NewLexer("@ (").Scan(); err == nil {
		t.Fatalf("want error for '@' without a name")
	}
	if _, err := NewLexer("#1").Scan(); err == nil {
		t.Fatalf("want error for '#' without a name")
	}
}

func Test_Lexer_LoneMinusRejected(t *testing.T) {
	_, err := NewLexer("let x = 1 - 2").Scan()
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("want *LexError for lone '-', got %v", err)
	}
}
