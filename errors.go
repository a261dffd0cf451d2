// errors.go: runtime error kinds and caret-snippet rendering
//
// Huckleberry surfaces every failure as a *Error carrying one of the five
// documented kinds. Lexer and parser diagnostics (which arrive as *LexError /
// *ParseError with 1-based line and 0-based column) are upgraded to
// SyntaxError by the eval entry points. `WrapErrorWithName` turns any of these
// into a readable, Python-style snippet with a caret pointing at the offending
// column:
//
//	SyntaxError in <repl> at 2:13: keyword label without a value
//
//	   1 | (def f (fn [a] a))
//	   2 | <f to: 1 do:>
//	     |             ^
//
// Inside the evaluator, failures are raised with the fail* helpers, which
// panic with a rtErr; the top-level run boundary in interp.go recovers them
// into a *Error. Code outside this package only ever sees *Error.
package huckleberry

import (
	"fmt"
	"strings"
)

// ErrorKind enumerates the failure classes the runtime can report.
type ErrorKind int

const (
	ErrSyntax   ErrorKind = iota // malformed source (lexer/reader stage)
	ErrUnbound                   // symbol lookup failed across the env chain
	ErrNoMethod                  // dispatch exhausted both registry paths
	ErrArity                     // argument count or label mismatch
	ErrType                      // a form or builtin received a malformed value
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "SyntaxError"
	case ErrUnbound:
		return "UnboundVariableError"
	case ErrNoMethod:
		return "NoMethodFoundError"
	case ErrArity:
		return "ArityError"
	case ErrType:
		return "TypeError"
	default:
		return "Error"
	}
}

// Error is the single error type surfaced by Eval* and Apply.
// Line/Col are 1-based when known, zero when the failure has no source anchor.
type Error struct {
	Kind ErrorKind
	Msg  string
	Line int
	Col  int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// rtErr is the internal panic carrier used while a form is being evaluated.
// Always raise it through the fail* helpers; runTop recovers it.
type rtErr struct {
	kind ErrorKind
	msg  string
	line int
	col  int
}

func fail(kind ErrorKind, format string, args ...interface{}) {
	panic(rtErr{kind: kind, msg: fmt.Sprintf(format, args...)})
}

func failAt(kind ErrorKind, line, col int, format string, args ...interface{}) {
	panic(rtErr{kind: kind, msg: fmt.Sprintf(format, args...), line: line, col: col})
}

func failUnbound(name string) { fail(ErrUnbound, "undefined variable: %s", name) }

func failType(msg string, v Value) {
	fail(ErrType, "%s, got %s", msg, TypeName(v))
}

func failArity(name string, want string, got int) {
	fail(ErrArity, "%s expects %s argument(s), got %d", name, want, got)
}

func failNoMethod(name string, target Value) {
	fail(ErrNoMethod, "no method %q for %s", name, TypeName(target))
}

// WrapErrorWithName augments lex/parse/runtime errors with a caret-annotated
// snippet of the source. Other errors are returned unchanged. The srcName
// (e.g. "<repl>" or a file path) appears in the header when non-empty.
func WrapErrorWithName(err error, srcName, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Lex/parse cols are 0-based; render as 1-based.
		return fmt.Errorf("%s", snippet(src, ErrSyntax.String(), srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, ErrSyntax.String(), srcName, e.Line, e.Col+1, e.Msg))
	case *Error:
		if e.Line <= 0 {
			return err
		}
		return fmt.Errorf("%s", snippet(src, e.Kind.String(), srcName, e.Line, e.Col, e.Msg))
	default:
		return err
	}
}

// snippet builds the header plus up to one line of context either side,
// with a caret under the 1-based column. Coordinates are clamped.
func snippet(src, header, name string, line, col int, msg string) string {
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

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
