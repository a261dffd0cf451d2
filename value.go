// value.go — the Huckleberry runtime value model.
//
// Value is the universal tagged carrier used for both syntax and runtime
// data: the reader produces Values (lists, sends, literals) and the evaluator
// reduces them to Values. The tag determines which Go type lives in Data:
//
//	VTNil      — nil payload
//	VTBool     — bool
//	VTNumber   — float64 (one numeric representation; equality is arithmetic)
//	VTString   — string
//	VTSymbol   — string (identifier)
//	VTKeyword  — string, includes the leading colon (":name")
//	VTLabel    — string, a `name:` token inside name vectors and sends
//	VTAmp      — nil payload, the `&` rest marker in parameter vectors
//	VTVector   — []Value
//	VTMap      — *MapObject (insertion-ordered, value-keyed)
//	VTList     — []Value, an application form `(head args...)`
//	VTSend     — *SendNode, a message send `<recv label: arg ...>`
//	VTSpecial  — *SpecialNode, a recognized special form
//	VTFun      — *Fun (closure)
//	VTBuiltin  — *Builtin (native function)
//	VTClass    — *ClassDescriptor (also acts as the instance constructor)
//	VTInstance — *Instance
//
// Values are immutable once constructed: `set!` rebinds a name in an Env
// frame, it never mutates a Value in place. This keeps structural equality
// sound: no value ever changes identity-visibly.
package huckleberry

// ValueTag discriminates the active case of a Value.
type ValueTag int

const (
	VTNil ValueTag = iota
	VTBool
	VTNumber
	VTString
	VTSymbol
	VTKeyword
	VTLabel
	VTAmp
	VTVector
	VTMap
	VTList
	VTSend
	VTSpecial
	VTFun
	VTBuiltin
	VTClass
	VTInstance
)

// Value is the tagged variant over every runtime datum and AST node.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil Value.
var Nil = Value{Tag: VTNil}

// Constructors, in the convenience style of the public API.
func Bool(b bool) Value      { return Value{Tag: VTBool, Data: b} }
func Number(f float64) Value { return Value{Tag: VTNumber, Data: f} }
func Str(s string) Value     { return Value{Tag: VTString, Data: s} }
func Symbol(s string) Value  { return Value{Tag: VTSymbol, Data: s} }
func Keyword(s string) Value { return Value{Tag: VTKeyword, Data: s} }
func Label(s string) Value   { return Value{Tag: VTLabel, Data: s} }
func Vector(xs []Value) Value { return Value{Tag: VTVector, Data: xs} }
func List(xs []Value) Value   { return Value{Tag: VTList, Data: xs} }

// MapVal wraps a MapObject into a Value.
func MapVal(m *MapObject) Value { return Value{Tag: VTMap, Data: m} }

// FunVal wraps a closure into a Value.
func FunVal(f *Fun) Value { return Value{Tag: VTFun, Data: f} }

// BuiltinVal wraps a native function into a Value.
func BuiltinVal(b *Builtin) Value { return Value{Tag: VTBuiltin, Data: b} }

// ClassVal wraps a class descriptor into a Value.
func ClassVal(c *ClassDescriptor) Value { return Value{Tag: VTClass, Data: c} }

// InstanceVal wraps an instance into a Value.
func InstanceVal(i *Instance) Value { return Value{Tag: VTInstance, Data: i} }

// TypeName reports the user-facing type of a Value, used in error messages.
func TypeName(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return "boolean"
	case VTNumber:
		return "number"
	case VTString:
		return "string"
	case VTSymbol:
		return "symbol"
	case VTKeyword:
		return "keyword"
	case VTLabel:
		return "label"
	case VTAmp:
		return "&"
	case VTVector:
		return "vector"
	case VTMap:
		return "map"
	case VTList:
		return "list"
	case VTSend:
		return "message send"
	case VTSpecial:
		return "special form"
	case VTFun:
		return "function"
	case VTBuiltin:
		return "builtin"
	case VTClass:
		return "class"
	case VTInstance:
		if i, ok := v.Data.(*Instance); ok {
			return "instance of " + i.Class.Name
		}
		return "instance"
	default:
		return "unknown"
	}
}

// isTruthy implements the language's conditional semantics: everything is
// truthy except nil and false.
func isTruthy(v Value) bool {
	if v.Tag == VTNil {
		return false
	}
	if v.Tag == VTBool {
		return v.Data.(bool)
	}
	return true
}

// MapObject is an insertion-ordered map keyed by arbitrary Values. Lookup
// uses structural equality (Equal), so {:a 1} and a separately built {:a 1}
// index the same slot. Insertion order is preserved for iteration and
// printing but is irrelevant to equality.
type MapObject struct {
	keys []Value
	vals []Value
}

// NewMapObject returns an empty map.
func NewMapObject() *MapObject { return &MapObject{} }

// Len reports the number of entries.
func (m *MapObject) Len() int { return len(m.keys) }

// Get returns the value stored under a structurally equal key.
func (m *MapObject) Get(k Value) (Value, bool) {
	for i, key := range m.keys {
		if Equal(key, k) {
			return m.vals[i], true
		}
	}
	return Nil, false
}

// Set stores v under k, replacing any structurally equal existing key.
func (m *MapObject) Set(k, v Value) {
	for i, key := range m.keys {
		if Equal(key, k) {
			m.vals[i] = v
			return
		}
	}
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

// At returns the i-th entry in insertion order.
func (m *MapObject) At(i int) (Value, Value) { return m.keys[i], m.vals[i] }

// Clone returns a shallow copy sharing no slot storage with the original.
func (m *MapObject) Clone() *MapObject {
	out := &MapObject{
		keys: append([]Value(nil), m.keys...),
		vals: append([]Value(nil), m.vals...),
	}
	return out
}

// Fun is a user-defined function: parameter names, an optional rest
// parameter (from `[a & rest]`), a body of forms, and the closure Env
// captured at definition time.
type Fun struct {
	Params []string
	Rest   string // rest-parameter name; "" when the function is not variadic
	Body   []Value
	Env    *Env
}

// BuiltinImpl is the native implementation signature. Arguments arrive
// already evaluated; implementations return a Value or raise via fail*.
type BuiltinImpl func(ip *Interpreter, args []Value) Value

// Builtin is a named native function with an arity window.
// MaxArgs < 0 means unbounded.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int
	Impl    BuiltinImpl
}

func (b *Builtin) checkArity(n int) {
	if n < b.MinArgs || (b.MaxArgs >= 0 && n > b.MaxArgs) {
		failArity(b.Name, b.arityString(), n)
	}
}

func (b *Builtin) arityString() string {
	switch {
	case b.MaxArgs < 0 && b.MinArgs == 0:
		return "any number of"
	case b.MaxArgs < 0:
		return "at least " + itoa(b.MinArgs)
	case b.MinArgs == b.MaxArgs:
		return itoa(b.MinArgs)
	default:
		return itoa(b.MinArgs) + ".." + itoa(b.MaxArgs)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// NativeMethodImpl is the implementation signature for builtin function-list
// methods such as `less-than:`; the receiver arrives separately from the
// labeled arguments.
type NativeMethodImpl func(ip *Interpreter, target Value, args []Value) Value

// Method is a registered multimethod implementation. Labels holds the
// keyword labels in declared order (empty for a bare-name method), Params
// the binder symbols. Either Body+Env (user methods) or Native (builtin
// methods) is set.
type Method struct {
	Name   string
	Labels []string
	Params []string
	Body   []Value
	Env    *Env
	Native NativeMethodImpl
}

// ClassDescriptor names a class and carries its default fields. The
// descriptor doubles as the constructor: applying a class value to an
// optional override map yields an Instance (defaults merged with overrides).
// Identity is pointer identity; Name is for display and errors.
type ClassDescriptor struct {
	Name     string
	Defaults *MapObject
}

// Instance pairs a class reference with its field map.
type Instance struct {
	Class  *ClassDescriptor
	Fields *MapObject
}

// SendNode is a parsed message send. Name is the method name derived from
// the keyword labels in source order ("to:do:"), or the bare selector for
// argument-less sends. Line/Col anchor runtime dispatch errors.
type SendNode struct {
	Recv Value
	Name string
	Args []Value
	Line int
	Col  int
}

// SpecialNode is a reader-recognized special form; Args are unevaluated.
type SpecialNode struct {
	Name string
	Args []Value
	Line int
	Col  int
}
