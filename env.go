// env.go — lexical environments.
//
// An Env is one frame in a chain: lookups walk parent-ward, Define binds in
// the current frame (shadowing any outer binding), Set updates the nearest
// existing binding. A child frame is created per function/method call and per
// for-each iteration; only closures extend a frame's lifetime past the call
// that created it (the Go GC handles reclamation).
package huckleberry

// Env is a lexical environment frame with a parent link.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name in the current frame.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return Nil, false
}

// Set updates the nearest existing binding of name. It reports false when no
// frame in the chain binds the name; it never implicitly defines.
func (e *Env) Set(name string, v Value) bool {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.table[name]; ok {
			f.table[name] = v
			return true
		}
	}
	return false
}
