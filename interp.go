// interp.go — public API surface of the Huckleberry runtime.
//
// The Interpreter owns two well-known environment frames and the method
// registry:
//   - Core: builtins and native methods, installed by NewRuntime. User code
//     can shadow these names but never rebinds the frame itself.
//   - Global: persistent program state (REPL globals, script definitions).
//   - Registry: the shared multimethod tables mutated by defm, defmethod
//     and class forms. Created once, mutated in place for the process life.
//
// Entry points differ only in which environment they target:
//   - EvalSource evaluates in a fresh child of Global, so definitions made
//     by the program stay in a throwaway frame.
//   - EvalPersistentSource evaluates in Global itself; this is what the REPL
//     and the script runner use.
//   - Apply calls a Huckleberry function value from Go.
//
// All entry points return (Value, error). Internally the evaluator raises
// failures by panicking with a rtErr (see errors.go); runTop is the single
// recovery boundary that converts them into *Error values. No rtErr ever
// escapes this package.
//
// Evaluation is single threaded and synchronous: a method body runs to
// completion before control returns, and registry mutations are visible to
// every later dispatch, including recursive calls, because method lookup
// happens at call time.
package huckleberry

import (
	"io"
	"os"
)

// Interpreter evaluates Huckleberry forms against its environments and
// method registry. Stdout is where print and println write; it defaults to
// os.Stdout and may be replaced by embedders.
type Interpreter struct {
	Core     *Env
	Global   *Env
	Registry *MethodRegistry
	Stdout   io.Writer
}

// NewInterpreter creates a bare engine with empty environments and an empty
// method registry. Most callers want NewRuntime, which also installs the
// builtins and the prelude.
func NewInterpreter() *Interpreter {
	ip := &Interpreter{}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	ip.Registry = NewMethodRegistry()
	ip.Stdout = os.Stdout
	return ip
}

// EvalSource parses and evaluates src in a fresh child of Global. Top-level
// definitions land in the throwaway frame; Global is unchanged unless the
// program mutates it through set!.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	forms, err := ParseSource(src)
	if err != nil {
		return Nil, err
	}
	return ip.EvalForms(forms, NewEnv(ip.Global))
}

// EvalPersistentSource parses and evaluates src in Global itself, so
// definitions persist across calls. This is the REPL entry point.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	forms, err := ParseSource(src)
	if err != nil {
		return Nil, err
	}
	return ip.EvalForms(forms, ip.Global)
}

// EvalForms evaluates the given forms in order in env and returns the value
// of the last one, or Nil for an empty program.
func (ip *Interpreter) EvalForms(forms []Value, env *Env) (Value, error) {
	return ip.runTop(func() Value {
		result := Nil
		for _, form := range forms {
			result = ip.eval(form, env)
		}
		return result
	})
}

// Apply calls a function, builtin or class constructor value with the given
// already-evaluated arguments.
func (ip *Interpreter) Apply(fn Value, args []Value) (Value, error) {
	return ip.runTop(func() Value {
		return ip.apply(fn, args)
	})
}

// runTop is the recovery boundary between the panicking evaluator core and
// the error-returning public API.
func (ip *Interpreter) runTop(f func() Value) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(rtErr)
			if !ok {
				panic(r)
			}
			err = &Error{Kind: re.kind, Msg: re.msg, Line: re.line, Col: re.col}
		}
	}()
	return f(), nil
}
