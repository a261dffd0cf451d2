package huckleberry

import "testing"

func mustScan(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := Scan(src)
	if err != nil {
		t.Fatalf("scan error for %q: %v", src, err)
	}
	return toks
}

func wantToken(t *testing.T, tok Token, tt TokenType, lexeme string) {
	t.Helper()
	if tok.Type != tt || tok.Lexeme != lexeme {
		t.Fatalf("want token (%v, %q), got (%v, %q)", tt, lexeme, tok.Type, tok.Lexeme)
	}
}

func Test_Lexer_Brackets_And_Amp(t *testing.T) {
	toks := mustScan(t, "()<>[]{}&")
	types := []TokenType{LPAREN, RPAREN, LANGLE, RANGLE, LSQUARE, RSQUARE, LCURLY, RCURLY, AMP, EOF}
	if len(toks) != len(types) {
		t.Fatalf("want %d tokens, got %d", len(types), len(toks))
	}
	for i, tt := range types {
		if toks[i].Type != tt {
			t.Fatalf("token %d: want %v, got %v", i, tt, toks[i].Type)
		}
	}
}

func Test_Lexer_Numbers(t *testing.T) {
	toks := mustScan(t, "1 2.5 10.125")
	wantToken(t, toks[0], NUMBER, "1")
	if toks[1].Literal.(float64) != 2.5 {
		t.Fatalf("want 2.5, got %v", toks[1].Literal)
	}
	if toks[2].Literal.(float64) != 10.125 {
		t.Fatalf("want 10.125, got %v", toks[2].Literal)
	}
}

func Test_Lexer_Symbols_Allow_Operator_Characters(t *testing.T) {
	toks := mustScan(t, "+ set! number? for-each hello2")
	for i, want := range []string{"+", "set!", "number?", "for-each", "hello2"} {
		wantToken(t, toks[i], SYMBOL, want)
	}
}

func Test_Lexer_Labels_And_Keywords(t *testing.T) {
	toks := mustScan(t, "to: :name do:")
	wantToken(t, toks[0], LABEL, "to:")
	if toks[0].Literal.(string) != "to" {
		t.Fatalf("label literal should drop the colon, got %q", toks[0].Literal)
	}
	wantToken(t, toks[1], KEYWORD, ":name")
	if toks[1].Literal.(string) != ":name" {
		t.Fatalf("keyword literal should keep the colon, got %q", toks[1].Literal)
	}
	wantToken(t, toks[2], LABEL, "do:")
}

func Test_Lexer_Strings_Span_Lines(t *testing.T) {
	toks := mustScan(t, "\"one\ntwo\"")
	wantToken(t, toks[0], STRING, "\"one\ntwo\"")
	if toks[0].Literal.(string) != "one\ntwo" {
		t.Fatalf("unexpected string literal %q", toks[0].Literal)
	}
}

func Test_Lexer_Booleans_And_Nil(t *testing.T) {
	toks := mustScan(t, "true false nil trueish")
	wantToken(t, toks[0], BOOLEAN, "true")
	wantToken(t, toks[1], BOOLEAN, "false")
	wantToken(t, toks[2], NIL, "nil")
	wantToken(t, toks[3], SYMBOL, "trueish")
}

func Test_Lexer_Comments_Skipped(t *testing.T) {
	toks := mustScan(t, "1 ; the rest is ignored\n2")
	wantToken(t, toks[0], NUMBER, "1")
	wantToken(t, toks[1], NUMBER, "2")
	if toks[1].Line != 2 {
		t.Fatalf("want line 2, got %d", toks[1].Line)
	}
}

func Test_Lexer_Tracks_Positions(t *testing.T) {
	toks := mustScan(t, "(def x\n  42)")
	wantToken(t, toks[0], LPAREN, "(")
	if toks[0].Line != 1 || toks[0].Col != 0 {
		t.Fatalf("lparen at %d:%d", toks[0].Line, toks[0].Col)
	}
	wantToken(t, toks[3], NUMBER, "42")
	if toks[3].Line != 2 || toks[3].Col != 2 {
		t.Fatalf("42 at %d:%d", toks[3].Line, toks[3].Col)
	}
}

func Test_Lexer_Unterminated_String_Is_Incomplete(t *testing.T) {
	_, err := Scan(`"open`)
	if err == nil || !IsIncomplete(err) {
		t.Fatalf("expected incomplete lex error, got %v", err)
	}
}

func Test_Lexer_Rejects_Unexpected_Character(t *testing.T) {
	_, err := Scan("1 @ 2")
	if err == nil {
		t.Fatalf("expected error for @")
	}
	if IsIncomplete(err) {
		t.Fatalf("@ is not an incomplete error")
	}
}

func Test_Lexer_Empty_Keyword_Rejected(t *testing.T) {
	if _, err := Scan(": foo"); err == nil {
		t.Fatalf("expected error for bare colon")
	}
}
