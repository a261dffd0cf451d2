// eval.go — the tree evaluator.
//
// Forms arrive as Values from the reader. Literals evaluate to themselves,
// symbols resolve through the environment chain, vectors and maps evaluate
// their elements, lists apply their head, sends go through dispatch, and
// special-form nodes are handled by name. Failures are raised with the fail*
// helpers and recovered at runTop in interp.go.
package huckleberry

import "github.com/google/uuid"

func (ip *Interpreter) eval(form Value, env *Env) Value {
	switch form.Tag {
	case VTSymbol:
		name := form.Data.(string)
		if v, ok := env.Get(name); ok {
			return v
		}
		failUnbound(name)
		return Nil
	case VTVector:
		elems := form.Data.([]Value)
		out := make([]Value, len(elems))
		for i, e := range elems {
			out[i] = ip.eval(e, env)
		}
		return Vector(out)
	case VTMap:
		src := form.Data.(*MapObject)
		out := NewMapObject()
		for i := 0; i < src.Len(); i++ {
			k, v := src.At(i)
			out.Set(ip.eval(k, env), ip.eval(v, env))
		}
		return MapVal(out)
	case VTList:
		return ip.evalCall(form.Data.([]Value), env)
	case VTSend:
		return ip.evalSend(form.Data.(*SendNode), env)
	case VTSpecial:
		return ip.evalSpecial(form.Data.(*SpecialNode), env)
	default:
		// Numbers, strings, keywords, booleans, nil and already-made
		// runtime values are self-evaluating.
		return form
	}
}

func (ip *Interpreter) evalBody(body []Value, env *Env) Value {
	result := Nil
	for _, form := range body {
		result = ip.eval(form, env)
	}
	return result
}

func (ip *Interpreter) evalCall(elems []Value, env *Env) Value {
	if len(elems) == 0 {
		fail(ErrSyntax, "an empty list is not a valid call")
	}
	fn := ip.eval(elems[0], env)
	args := make([]Value, len(elems)-1)
	for i, a := range elems[1:] {
		args[i] = ip.eval(a, env)
	}
	return ip.apply(fn, args)
}

func (ip *Interpreter) evalSend(n *SendNode, env *Env) Value {
	target := ip.eval(n.Recv, env)
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = ip.eval(a, env)
	}
	return ip.dispatch(n.Name, target, args, n.Line, n.Col)
}

// apply calls a function-like value with already-evaluated arguments.
func (ip *Interpreter) apply(fn Value, args []Value) Value {
	switch fn.Tag {
	case VTBuiltin:
		b := fn.Data.(*Builtin)
		b.checkArity(len(args))
		return b.Impl(ip, args)
	case VTFun:
		return ip.callFun(fn.Data.(*Fun), args)
	case VTClass:
		return ip.construct(fn.Data.(*ClassDescriptor), args)
	default:
		fail(ErrType, "a %s value is not callable", TypeName(fn))
		return Nil
	}
}

func (ip *Interpreter) callFun(f *Fun, args []Value) Value {
	if f.Rest == "" {
		if len(args) != len(f.Params) {
			failArity("fn", itoa(len(f.Params)), len(args))
		}
	} else if len(args) < len(f.Params) {
		failArity("fn", "at least "+itoa(len(f.Params)), len(args))
	}
	env := NewEnv(f.Env)
	for i, p := range f.Params {
		env.Define(p, args[i])
	}
	if f.Rest != "" {
		env.Define(f.Rest, Vector(append([]Value(nil), args[len(f.Params):]...)))
	}
	return ip.evalBody(f.Body, env)
}

// construct applies a class value: the optional single argument is an
// override map merged over the class defaults.
func (ip *Interpreter) construct(c *ClassDescriptor, args []Value) Value {
	if len(args) > 1 {
		failArity(c.Name, "0..1", len(args))
	}
	fields := c.Defaults.Clone()
	if len(args) == 1 {
		if args[0].Tag != VTMap {
			failType("a class constructor takes an override map", args[0])
		}
		overrides := args[0].Data.(*MapObject)
		for i := 0; i < overrides.Len(); i++ {
			k, v := overrides.At(i)
			fields.Set(k, v)
		}
	}
	return InstanceVal(&Instance{Class: c, Fields: fields})
}

// dispatch resolves a message send. Instances are first probed against the
// class table; everything else, and instances whose class has no entry for
// the name, falls through to the ordered selector scan. A winning selector
// promotes its entry to the front of the list.
func (ip *Interpreter) dispatch(name string, target Value, args []Value, line, col int) Value {
	if target.Tag == VTInstance {
		inst := target.Data.(*Instance)
		if m, ok := ip.Registry.LookupClassMethod(inst.Class, name); ok {
			return ip.callMethod(m, target, args)
		}
	}
	for i, entry := range ip.Registry.functionMethods(name) {
		if isTruthy(ip.apply(entry.selector, []Value{target})) {
			ip.Registry.promote(name, i)
			return ip.callMethod(entry.method, target, args)
		}
	}
	failAt(ErrNoMethod, line, col, "no method %q for %s", name, TypeName(target))
	return Nil
}

// callMethod binds the receiver and the labeled arguments and runs the
// method body. Both self and this name the receiver.
func (ip *Interpreter) callMethod(m *Method, target Value, args []Value) Value {
	if len(args) != len(m.Params) {
		failArity(m.Name, itoa(len(m.Params)), len(args))
	}
	if m.Native != nil {
		return m.Native(ip, target, args)
	}
	env := NewEnv(m.Env)
	env.Define("self", target)
	env.Define("this", target)
	for i, p := range m.Params {
		env.Define(p, args[i])
	}
	return ip.evalBody(m.Body, env)
}

func (ip *Interpreter) evalSpecial(n *SpecialNode, env *Env) Value {
	switch n.Name {
	case "def", "var":
		return ip.evalDef(n, env)
	case "set!":
		return ip.evalSet(n, env)
	case "fn":
		return ip.evalFn(n, env)
	case "if":
		return ip.evalIf(n, env)
	case "defm", "defmethod":
		return ip.evalDefm(n, env)
	case "class":
		return ip.evalClass(n, env)
	case "for-each", "foreach":
		return ip.evalForEach(n, env)
	}
	fail(ErrSyntax, "unknown special form %s", n.Name)
	return Nil
}

func (ip *Interpreter) evalDef(n *SpecialNode, env *Env) Value {
	if len(n.Args) < 1 || len(n.Args) > 2 {
		failAt(ErrArity, n.Line, n.Col, "%s expects 1..2 argument(s), got %d", n.Name, len(n.Args))
	}
	if n.Args[0].Tag != VTSymbol {
		failType("only symbols can be defined", n.Args[0])
	}
	v := Nil
	if len(n.Args) == 2 {
		v = ip.eval(n.Args[1], env)
	}
	env.Define(n.Args[0].Data.(string), v)
	return Nil
}

func (ip *Interpreter) evalSet(n *SpecialNode, env *Env) Value {
	if len(n.Args) != 2 {
		failAt(ErrArity, n.Line, n.Col, "set! expects 2 argument(s), got %d", len(n.Args))
	}
	if n.Args[0].Tag != VTSymbol {
		failType("only symbols can be set", n.Args[0])
	}
	name := n.Args[0].Data.(string)
	if !env.Set(name, ip.eval(n.Args[1], env)) {
		failAt(ErrUnbound, n.Line, n.Col, "undefined variable: %s", name)
	}
	return Nil
}

func (ip *Interpreter) evalFn(n *SpecialNode, env *Env) Value {
	if len(n.Args) < 1 {
		failAt(ErrArity, n.Line, n.Col, "fn expects at least 1 argument(s), got %d", len(n.Args))
	}
	params, rest := parseParamVector(n.Args[0])
	return FunVal(&Fun{
		Params: params,
		Rest:   rest,
		Body:   n.Args[1:],
		Env:    env,
	})
}

// parseParamVector reads a fn parameter vector such as [a b] or [a & rest].
func parseParamVector(v Value) (params []string, rest string) {
	if v.Tag != VTVector {
		failType("fn expects a parameter vector", v)
	}
	elems := v.Data.([]Value)
	for i := 0; i < len(elems); i++ {
		switch elems[i].Tag {
		case VTSymbol:
			params = append(params, elems[i].Data.(string))
		case VTAmp:
			if i != len(elems)-2 || elems[i+1].Tag != VTSymbol {
				fail(ErrType, "& must be followed by exactly one rest parameter symbol")
			}
			return params, elems[i+1].Data.(string)
		default:
			failType("fn parameters must be symbols", elems[i])
		}
	}
	return params, ""
}

func (ip *Interpreter) evalIf(n *SpecialNode, env *Env) Value {
	if len(n.Args) < 2 || len(n.Args) > 3 {
		failAt(ErrArity, n.Line, n.Col, "if expects 2..3 argument(s), got %d", len(n.Args))
	}
	if isTruthy(ip.eval(n.Args[0], env)) {
		return ip.eval(n.Args[1], env)
	}
	if len(n.Args) == 3 {
		return ip.eval(n.Args[2], env)
	}
	return Nil
}

// evalDefm registers a method. The first argument decides the strategy: a
// class value routes to the class table, a function or builtin becomes the
// selector of a function-list entry.
func (ip *Interpreter) evalDefm(n *SpecialNode, env *Env) Value {
	if len(n.Args) < 2 {
		failAt(ErrArity, n.Line, n.Col, "%s expects at least 2 argument(s), got %d", n.Name, len(n.Args))
	}
	target := ip.eval(n.Args[0], env)
	name, labels, params := parseMethodNameVector(n.Args[1])
	m := &Method{
		Name:   name,
		Labels: labels,
		Params: params,
		Body:   n.Args[2:],
		Env:    env,
	}
	switch target.Tag {
	case VTClass:
		ip.Registry.RegisterClassMethod(target.Data.(*ClassDescriptor), name, m)
	case VTFun, VTBuiltin:
		ip.Registry.RegisterFunctionMethod(name, target, m)
	default:
		failType("the first argument to "+n.Name+" must be a class or a selector function", target)
	}
	return Nil
}

// parseMethodNameVector reads a method name vector. A single symbol names an
// argument-less method; otherwise label and binder symbols alternate, and
// the labels concatenate into the method name ("to:do:").
func parseMethodNameVector(v Value) (name string, labels, params []string) {
	if v.Tag != VTVector {
		failType("defm expects a method name vector", v)
	}
	elems := v.Data.([]Value)
	if len(elems) == 0 {
		fail(ErrType, "a method name vector cannot be empty")
	}
	if len(elems) == 1 {
		if elems[0].Tag != VTSymbol {
			failType("an argument-less method name must be a symbol", elems[0])
		}
		return elems[0].Data.(string), nil, nil
	}
	if len(elems)%2 != 0 {
		fail(ErrType, "a method name vector alternates labels and parameter symbols")
	}
	for i := 0; i < len(elems); i += 2 {
		var part string
		switch elems[i].Tag {
		case VTLabel, VTSymbol:
			part = elems[i].Data.(string)
		default:
			failType("expected a method name label", elems[i])
		}
		if elems[i+1].Tag != VTSymbol {
			failType("expected a parameter symbol after "+part+":", elems[i+1])
		}
		name += part + ":"
		labels = append(labels, part)
		params = append(params, elems[i+1].Data.(string))
	}
	return name, labels, params
}

// evalClass builds a ClassDescriptor from a defaults map. The named form
// (class Point {:x 0 :y 0}) also binds the class in the current frame;
// anonymous classes get a generated name.
func (ip *Interpreter) evalClass(n *SpecialNode, env *Env) Value {
	args := n.Args
	var bind string
	if len(args) == 2 {
		if args[0].Tag != VTSymbol {
			failType("a class name must be a symbol", args[0])
		}
		bind = args[0].Data.(string)
		args = args[1:]
	}
	if len(args) != 1 {
		failAt(ErrArity, n.Line, n.Col, "class expects 1..2 argument(s), got %d", len(n.Args))
	}
	defaults := ip.eval(args[0], env)
	if defaults.Tag != VTMap {
		failType("class expects a defaults map", defaults)
	}
	name := bind
	if name == "" {
		name = "class-" + uuid.NewString()
	}
	c := &ClassDescriptor{Name: name, Defaults: defaults.Data.(*MapObject).Clone()}
	v := ClassVal(c)
	if bind != "" {
		env.Define(bind, v)
	}
	return v
}

// evalForEach iterates a vector, binding each element in a fresh child frame
// and yielding the last body result of the last iteration.
func (ip *Interpreter) evalForEach(n *SpecialNode, env *Env) Value {
	if len(n.Args) < 2 {
		failAt(ErrArity, n.Line, n.Col, "%s expects at least 2 argument(s), got %d", n.Name, len(n.Args))
	}
	if n.Args[0].Tag != VTSymbol {
		failType("for-each expects a binding symbol", n.Args[0])
	}
	binding := n.Args[0].Data.(string)
	seq := ip.eval(n.Args[1], env)
	if seq.Tag != VTVector {
		failType("for-each expects a vector to iterate", seq)
	}
	result := Nil
	for _, elem := range seq.Data.([]Value) {
		frame := NewEnv(env)
		frame.Define(binding, elem)
		result = ip.evalBody(n.Args[2:], frame)
	}
	return result
}
