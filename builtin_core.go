// builtin_core.go — the builtin function table and the native method set.
//
// Builtins are ordinary Builtin values defined in the Core frame; the
// evaluator knows nothing about them beyond the calling convention. The
// keyword-named operations (get:, less-than:, equals:, ...) are native
// function-list methods registered through the same registry user code
// reaches with defm, each guarded by a type-predicate selector.
package huckleberry

import (
	"fmt"

	"github.com/google/uuid"
)

// RegisterBuiltin defines a native function in the Core frame.
func (ip *Interpreter) RegisterBuiltin(name string, minArgs, maxArgs int, impl BuiltinImpl) {
	ip.Core.Define(name, BuiltinVal(&Builtin{
		Name:    name,
		MinArgs: minArgs,
		MaxArgs: maxArgs,
		Impl:    impl,
	}))
}

func asNumber(name string, v Value) float64 {
	if v.Tag != VTNumber {
		failType(name+" expects numbers", v)
	}
	return v.Data.(float64)
}

func registerCoreBuiltins(ip *Interpreter) {
	numericFold := func(name string, op func(a, b float64) float64) {
		ip.RegisterBuiltin(name, 1, -1, func(ip *Interpreter, args []Value) Value {
			acc := asNumber(name, args[0])
			for _, v := range args[1:] {
				acc = op(acc, asNumber(name, v))
			}
			return Number(acc)
		})
	}
	numericFold("+", func(a, b float64) float64 { return a + b })
	numericFold("-", func(a, b float64) float64 { return a - b })
	numericFold("*", func(a, b float64) float64 { return a * b })
	numericFold("/", func(a, b float64) float64 { return a / b })

	// The comparison builtins test the first argument against every later
	// argument, matching the rest of the language's variadic style.
	numericCompare := func(name string, op func(a, b float64) bool) {
		ip.RegisterBuiltin(name, 2, -1, func(ip *Interpreter, args []Value) Value {
			first := asNumber(name, args[0])
			for _, v := range args[1:] {
				if !op(first, asNumber(name, v)) {
					return Bool(false)
				}
			}
			return Bool(true)
		})
	}
	numericCompare("lt", func(a, b float64) bool { return a < b })
	numericCompare("lte", func(a, b float64) bool { return a <= b })
	numericCompare("gt", func(a, b float64) bool { return a > b })
	numericCompare("gte", func(a, b float64) bool { return a >= b })

	ip.RegisterBuiltin("=", 2, -1, func(ip *Interpreter, args []Value) Value {
		for _, v := range args[1:] {
			if !Equal(args[0], v) {
				return Bool(false)
			}
		}
		return Bool(true)
	})
	ip.RegisterBuiltin("!=", 2, -1, func(ip *Interpreter, args []Value) Value {
		for _, v := range args[1:] {
			if Equal(args[0], v) {
				return Bool(false)
			}
		}
		return Bool(true)
	})

	ip.RegisterBuiltin("str", 0, -1, func(ip *Interpreter, args []Value) Value {
		out := ""
		for _, v := range args {
			out += FormatValue(v)
		}
		return Str(out)
	})

	ip.RegisterBuiltin("get", 2, 2, func(ip *Interpreter, args []Value) Value {
		return getFrom(args[0], args[1])
	})

	ip.RegisterBuiltin("range", 2, 2, func(ip *Interpreter, args []Value) Value {
		return makeRange(asNumber("range", args[0]), asNumber("range", args[1]))
	})

	typePred := func(name string, tag ValueTag) {
		ip.RegisterBuiltin(name, 1, 1, func(ip *Interpreter, args []Value) Value {
			return Bool(args[0].Tag == tag)
		})
	}
	typePred("number?", VTNumber)
	typePred("string?", VTString)
	typePred("vector?", VTVector)
	typePred("map?", VTMap)

	ip.RegisterBuiltin("print", 0, -1, func(ip *Interpreter, args []Value) Value {
		for _, v := range args {
			fmt.Fprint(ip.Stdout, FormatValue(v))
		}
		return Nil
	})
	ip.RegisterBuiltin("println", 0, -1, func(ip *Interpreter, args []Value) Value {
		for _, v := range args {
			fmt.Fprint(ip.Stdout, FormatValue(v))
		}
		fmt.Fprintln(ip.Stdout)
		return Nil
	})

	ip.RegisterBuiltin("uuid", 0, 0, func(ip *Interpreter, args []Value) Value {
		return Str(uuid.NewString())
	})
}

// getFrom is the lookup shared by the get builtin and the get: method.
// Missing keys and out-of-range indexes yield nil, never an error.
// Instances expose their field map.
func getFrom(target, key Value) Value {
	switch target.Tag {
	case VTMap:
		v, _ := target.Data.(*MapObject).Get(key)
		return v
	case VTInstance:
		v, _ := target.Data.(*Instance).Fields.Get(key)
		return v
	case VTVector:
		if key.Tag != VTNumber {
			failType("a vector index must be a number", key)
		}
		xs := target.Data.([]Value)
		i := int(key.Data.(float64))
		if i < 0 || i >= len(xs) {
			return Nil
		}
		return xs[i]
	default:
		failType("get is not supported here", target)
		return Nil
	}
}

// makeRange builds the half-open integer range [min, max) as a vector.
func makeRange(min, max float64) Value {
	lo, hi := int(min), int(max)
	if hi < lo {
		hi = lo
	}
	out := make([]Value, 0, hi-lo)
	for n := lo; n < hi; n++ {
		out = append(out, Number(float64(n)))
	}
	return Vector(out)
}

// methodLabels recovers the keyword labels from a canonical method name.
func methodLabels(name string) []string {
	var labels []string
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			labels = append(labels, name[start:i])
			start = i + 1
		}
	}
	return labels
}

// registerCoreMethods installs the keyword-named native methods on the
// function-list side of the registry. Selectors are the same predicate
// builtins user code sees, so user-registered methods for these names
// append behind them and obey the same promotion rules.
func registerCoreMethods(ip *Interpreter) {
	selector := func(name string) Value {
		v, ok := ip.Core.Get(name)
		if !ok {
			panic("core builtin " + name + " is not registered")
		}
		return v
	}

	register := func(sel Value, name string, params []string, impl NativeMethodImpl) {
		ip.Registry.RegisterFunctionMethod(name, sel, &Method{
			Name:   name,
			Labels: methodLabels(name),
			Params: params,
			Native: impl,
		})
	}

	// get: works on vectors and maps; two entries, one selector each.
	getImpl := func(ip *Interpreter, target Value, args []Value) Value {
		return getFrom(target, args[0])
	}
	register(selector("vector?"), "get:", []string{"key"}, getImpl)
	register(selector("map?"), "get:", []string{"key"}, getImpl)

	numberP := selector("number?")
	compare := func(name string, op func(a, b float64) bool) {
		register(numberP, name, []string{"other"}, func(ip *Interpreter, target Value, args []Value) Value {
			return Bool(op(asNumber(name, target), asNumber(name, args[0])))
		})
	}
	compare("less-than:", func(a, b float64) bool { return a < b })
	compare("less-than-eq:", func(a, b float64) bool { return a <= b })
	compare("greater-than:", func(a, b float64) bool { return a > b })
	compare("greater-than-eq:", func(a, b float64) bool { return a >= b })

	// equals: answers on any receiver.
	anyValue := BuiltinVal(&Builtin{
		Name:    "any?",
		MinArgs: 1,
		MaxArgs: 1,
		Impl: func(ip *Interpreter, args []Value) Value {
			return Bool(true)
		},
	})
	register(anyValue, "equals:", []string{"other"}, func(ip *Interpreter, target Value, args []Value) Value {
		return Bool(Equal(target, args[0]))
	})
}
