// registry.go — the multimethod registry behind message dispatch.
//
// Two tables live here. The class table keys (class identity, method name)
// pairs directly to a method; redefinition overwrites, lookup is a single map
// probe. The function table keeps, per method name, an ordered list of
// (selector, method) pairs; registration only ever appends, and a successful
// dispatch promotes the winning pair to the front so hot predicates are tried
// first on later calls. Order affects cost, never outcome: the scan still
// stops at the first selector that answers truthy.
//
// The registry is shared, mutable state owned by one interpreter. Evaluation
// is single threaded, so there is no locking here.
package huckleberry

type classKey struct {
	class *ClassDescriptor
	name  string
}

type funcEntry struct {
	selector Value // predicate applied to the receiver
	method   *Method
}

// MethodRegistry stores every method registered by defm, defmethod and class.
type MethodRegistry struct {
	classes map[classKey]*Method
	funcs   map[string][]*funcEntry
}

func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{
		classes: make(map[classKey]*Method),
		funcs:   make(map[string][]*funcEntry),
	}
}

// RegisterClassMethod binds a method under (class, name). Last write wins.
func (r *MethodRegistry) RegisterClassMethod(class *ClassDescriptor, name string, m *Method) {
	r.classes[classKey{class: class, name: name}] = m
}

// RegisterFunctionMethod appends a (selector, method) pair to the list for
// name. Earlier entries are never displaced or deduplicated.
func (r *MethodRegistry) RegisterFunctionMethod(name string, selector Value, m *Method) {
	r.funcs[name] = append(r.funcs[name], &funcEntry{selector: selector, method: m})
}

// LookupClassMethod probes the class table.
func (r *MethodRegistry) LookupClassMethod(class *ClassDescriptor, name string) (*Method, bool) {
	m, ok := r.classes[classKey{class: class, name: name}]
	return m, ok
}

// functionMethods returns the current scan order for name. The slice is the
// registry's own; callers must not retain it across a registration.
func (r *MethodRegistry) functionMethods(name string) []*funcEntry {
	return r.funcs[name]
}

// promote moves the entry at index i to the front of name's list, shifting
// the entries before it one slot right.
func (r *MethodRegistry) promote(name string, i int) {
	list := r.funcs[name]
	if i <= 0 || i >= len(list) {
		return
	}
	winner := list[i]
	copy(list[1:i+1], list[0:i])
	list[0] = winner
}

// FunctionMethodCount reports how many entries are registered under name.
func (r *MethodRegistry) FunctionMethodCount(name string) int {
	return len(r.funcs[name])
}
