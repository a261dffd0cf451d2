package huckleberry

import "testing"

// matchNumber builds a selector builtin that answers true only for n.
func matchNumber(n float64) Value {
	return BuiltinVal(&Builtin{
		Name:    "match",
		MinArgs: 1,
		MaxArgs: 1,
		Impl: func(ip *Interpreter, args []Value) Value {
			return Bool(Equal(args[0], Number(n)))
		},
	})
}

func constMethod(name, result string) *Method {
	return &Method{
		Name: name,
		Native: func(ip *Interpreter, target Value, args []Value) Value {
			return Str(result)
		},
	}
}

func Test_Registry_Class_Overwrite(t *testing.T) {
	r := NewMethodRegistry()
	c := &ClassDescriptor{Name: "C", Defaults: NewMapObject()}

	m1 := constMethod("m", "first")
	m2 := constMethod("m", "second")
	r.RegisterClassMethod(c, "m", m1)
	r.RegisterClassMethod(c, "m", m2)

	got, ok := r.LookupClassMethod(c, "m")
	if !ok || got != m2 {
		t.Fatalf("redefinition should leave only the second method")
	}
}

func Test_Registry_Class_Key_Is_Class_Identity(t *testing.T) {
	r := NewMethodRegistry()
	c1 := &ClassDescriptor{Name: "C", Defaults: NewMapObject()}
	c2 := &ClassDescriptor{Name: "C", Defaults: NewMapObject()}

	r.RegisterClassMethod(c1, "m", constMethod("m", "one"))
	if _, ok := r.LookupClassMethod(c2, "m"); ok {
		t.Fatalf("a same-named class must not share methods")
	}
}

func Test_Registry_Function_List_Appends_Without_Dedup(t *testing.T) {
	r := NewMethodRegistry()
	sel := matchNumber(1)
	m := constMethod("m", "x")

	for i := 0; i < 3; i++ {
		r.RegisterFunctionMethod("m", sel, m)
	}
	if got := r.FunctionMethodCount("m"); got != 3 {
		t.Fatalf("want 3 entries, got %d", got)
	}
}

func Test_Registry_Move_To_Front(t *testing.T) {
	ip := NewInterpreter()
	r := ip.Registry

	m1 := constMethod("pick", "m1")
	m2 := constMethod("pick", "m2")
	m3 := constMethod("pick", "m3")
	r.RegisterFunctionMethod("pick", matchNumber(1), m1)
	r.RegisterFunctionMethod("pick", matchNumber(2), m2)
	r.RegisterFunctionMethod("pick", matchNumber(3), m3)

	v := ip.dispatch("pick", Number(3), nil, 0, 0)
	wantStr(t, v, "m3")

	list := r.functionMethods("pick")
	if list[0].method != m3 || list[1].method != m1 || list[2].method != m2 {
		t.Fatalf("want order [m3 m1 m2], got [%s %s %s]",
			list[0].method.Name, list[1].method.Name, list[2].method.Name)
	}

	// A match at the front does not reorder.
	wantStr(t, ip.dispatch("pick", Number(3), nil, 0, 0), "m3")
	list = r.functionMethods("pick")
	if list[0].method != m3 {
		t.Fatalf("front entry should stay in place")
	}
}

func Test_Registry_Promotion_Never_Evicts(t *testing.T) {
	ip := NewInterpreter()
	r := ip.Registry

	for i, n := range []float64{1, 2, 3, 4} {
		r.RegisterFunctionMethod("pick", matchNumber(n), constMethod("pick", string(rune('a'+i))))
	}
	ip.dispatch("pick", Number(4), nil, 0, 0)
	ip.dispatch("pick", Number(2), nil, 0, 0)

	if got := r.FunctionMethodCount("pick"); got != 4 {
		t.Fatalf("promotion must not drop entries, have %d", got)
	}
	// Every receiver still resolves.
	for _, n := range []float64{1, 2, 3, 4} {
		ip.dispatch("pick", Number(n), nil, 0, 0)
	}
}

func Test_Registry_Scan_Stops_At_First_Truthy(t *testing.T) {
	ip := NewInterpreter()
	r := ip.Registry

	calls := 0
	counting := BuiltinVal(&Builtin{
		Name: "count", MinArgs: 1, MaxArgs: 1,
		Impl: func(ip *Interpreter, args []Value) Value {
			calls++
			return Bool(true)
		},
	})
	r.RegisterFunctionMethod("m", counting, constMethod("m", "first"))
	r.RegisterFunctionMethod("m", counting, constMethod("m", "second"))

	wantStr(t, ip.dispatch("m", Number(0), nil, 0, 0), "first")
	if calls != 1 {
		t.Fatalf("scan should stop at the first truthy selector, ran %d", calls)
	}
}
