// runtime.go — full runtime assembly.
//
// NewInterpreter (interp.go) gives a bare engine; NewRuntime layers the
// builtin table, the native method set and the in-language prelude on top.
// Everything a program can reach is installed here, in one place.
package huckleberry

// prelude holds the method definitions written in the language itself.
// It is evaluated once per runtime, in Global, before any user code.
const prelude = `
(defm number? [to: max] (range this max))
(defm number? [to: max do: f] (for-each n (range this max) (f n)))
`

// NewRuntime returns an interpreter with all builtins, native methods and
// the prelude installed. It panics if the embedded prelude fails to
// evaluate, since that is a build defect, not a runtime condition.
func NewRuntime() *Interpreter {
	ip := NewInterpreter()
	registerCoreBuiltins(ip)
	registerCoreMethods(ip)
	if err := ip.LoadPrelude(prelude); err != nil {
		panic("huckleberry: prelude failed: " + err.Error())
	}
	return ip
}

// LoadPrelude evaluates additional in-language definitions in Global.
// Embedders can use it to extend the runtime with their own method set.
func (ip *Interpreter) LoadPrelude(src string) error {
	if _, err := ip.EvalPersistentSource(src); err != nil {
		return err
	}
	return nil
}
