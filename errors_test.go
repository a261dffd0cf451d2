package huckleberry

import (
	"strings"
	"testing"
)

func Test_ErrorKind_Names(t *testing.T) {
	cases := map[ErrorKind]string{
		ErrSyntax:   "SyntaxError",
		ErrUnbound:  "UnboundVariableError",
		ErrNoMethod: "NoMethodFoundError",
		ErrArity:    "ArityError",
		ErrType:     "TypeError",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Fatalf("kind %d: want %q, got %q", kind, want, kind.String())
		}
	}
}

func Test_Error_String_With_And_Without_Anchor(t *testing.T) {
	anchored := &Error{Kind: ErrNoMethod, Msg: "boom", Line: 2, Col: 5}
	if got := anchored.Error(); !strings.Contains(got, "NoMethodFoundError") || !strings.Contains(got, "2:5") {
		t.Fatalf("unexpected rendering %q", got)
	}
	bare := &Error{Kind: ErrType, Msg: "boom"}
	if got := bare.Error(); strings.Contains(got, "0:0") {
		t.Fatalf("anchorless errors should not print coordinates, got %q", got)
	}
}

func Test_WrapErrorWithName_Parse_Error_Snippet(t *testing.T) {
	src := "(def x\n<f to: 1 do:>"
	_, err := ParseSource("<f to: 1 do:>")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	wrapped := WrapErrorWithName(err, "<repl>", src)
	text := wrapped.Error()
	if !strings.Contains(text, "SyntaxError") || !strings.Contains(text, "<repl>") {
		t.Fatalf("missing header parts: %q", text)
	}
	if !strings.Contains(text, "^") {
		t.Fatalf("expected a caret marker: %q", text)
	}
}

func Test_WrapErrorWithName_Passes_Through_Unanchored(t *testing.T) {
	err := &Error{Kind: ErrType, Msg: "boom"}
	if got := WrapErrorWithName(err, "<repl>", "src"); got != err {
		t.Fatalf("anchorless runtime errors pass through unchanged")
	}
}

func Test_WrapErrorWithName_Runtime_Anchor(t *testing.T) {
	src := "<5 vanish>"
	_, err := NewRuntime().EvalPersistentSource(src)
	if err == nil {
		t.Fatalf("expected dispatch failure")
	}
	text := WrapErrorWithName(err, "script.huck", src).Error()
	if !strings.Contains(text, "NoMethodFoundError") || !strings.Contains(text, "script.huck") {
		t.Fatalf("unexpected rendering %q", text)
	}
	if !strings.Contains(text, src) {
		t.Fatalf("snippet should include the source line: %q", text)
	}
}

func Test_Runtime_Errors_Are_Structured(t *testing.T) {
	_, err := NewRuntime().EvalPersistentSource("<5 vanish>")
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("want *Error, got %T", err)
	}
	if e.Kind != ErrNoMethod || e.Line != 1 {
		t.Fatalf("unexpected error %#v", e)
	}
}
