package huckleberry

import "testing"

func mustParse(t *testing.T, src string) []Value {
	t.Helper()
	forms, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse error for %q: %v", src, err)
	}
	return forms
}

func parseOne(t *testing.T, src string) Value {
	t.Helper()
	forms := mustParse(t, src)
	if len(forms) != 1 {
		t.Fatalf("want 1 form, got %d", len(forms))
	}
	return forms[0]
}

func mustIncomplete(t *testing.T, src string) {
	t.Helper()
	_, err := ParseSource(src)
	if err == nil || !IsIncomplete(err) {
		t.Fatalf("expected incomplete for %q, got %v", src, err)
	}
}

func sendOf(t *testing.T, v Value) *SendNode {
	t.Helper()
	if v.Tag != VTSend {
		t.Fatalf("want send node, got %#v", v)
	}
	return v.Data.(*SendNode)
}

func Test_Parser_Application_List(t *testing.T) {
	v := parseOne(t, "(+ 1 1)")
	if v.Tag != VTList {
		t.Fatalf("want list, got %#v", v)
	}
	elems := v.Data.([]Value)
	if len(elems) != 3 || elems[0].Data.(string) != "+" {
		t.Fatalf("unexpected list %#v", elems)
	}
}

func Test_Parser_Nested_Send_In_List(t *testing.T) {
	v := parseOne(t, "(+ 1.25 <1 * 2>)")
	elems := v.Data.([]Value)
	n := sendOf(t, elems[2])
	if n.Name != "*:" {
		t.Fatalf("want name *:, got %q", n.Name)
	}
}

func Test_Parser_Send_Keyword_Labels_Concatenate(t *testing.T) {
	n := sendOf(t, parseOne(t, "<p to: 5 do: f>"))
	if n.Name != "to:do:" {
		t.Fatalf("want to:do:, got %q", n.Name)
	}
	if len(n.Args) != 2 {
		t.Fatalf("want 2 args, got %d", len(n.Args))
	}
	wantNum(t, n.Args[0], 5)
}

func Test_Parser_Send_Bare_Symbol_With_Argument(t *testing.T) {
	n := sendOf(t, parseOne(t, "<1 + 2>"))
	if n.Name != "+:" {
		t.Fatalf("want +:, got %q", n.Name)
	}
	if len(n.Args) != 1 {
		t.Fatalf("want 1 arg, got %d", len(n.Args))
	}
}

func Test_Parser_Send_No_Argument(t *testing.T) {
	n := sendOf(t, parseOne(t, "<v first>"))
	if n.Name != "first" || len(n.Args) != 0 {
		t.Fatalf("want bare name first, got %q with %d args", n.Name, len(n.Args))
	}
}

func Test_Parser_Send_Missing_Label_Value(t *testing.T) {
	_, err := ParseSource("<f to: 1 do:>")
	if err == nil {
		t.Fatalf("expected error for dangling label")
	}
	if IsIncomplete(err) {
		t.Fatalf("a dangling label is a hard error, not incomplete")
	}
}

func Test_Parser_Send_Needs_Method_Name(t *testing.T) {
	if _, err := ParseSource("<>"); err == nil {
		t.Fatalf("expected error for empty send")
	}
	if _, err := ParseSource("<x>"); err == nil {
		t.Fatalf("expected error for receiver-only send")
	}
}

func Test_Parser_Special_Forms_Recognized(t *testing.T) {
	for _, src := range []string{
		"(def x 1)", "(var x 1)", "(set! x 1)", "(fn [x] x)", "(if true 1 2)",
		"(defm f [x: a] a)", "(defmethod f [x: a] a)", "(class C {})",
		"(for-each x [1] x)", "(foreach x [1] x)",
	} {
		v := parseOne(t, src)
		if v.Tag != VTSpecial {
			t.Fatalf("%q: want special node, got %#v", src, v)
		}
	}
}

func Test_Parser_Special_Head_Only_At_Head(t *testing.T) {
	// As an argument, a special-form name is an ordinary symbol.
	v := parseOne(t, "(f def)")
	if v.Tag != VTList {
		t.Fatalf("want list, got %#v", v)
	}
}

func Test_Parser_Vector_And_Amp(t *testing.T) {
	v := parseOne(t, "[1 true & nil]")
	xs := v.Data.([]Value)
	if len(xs) != 4 {
		t.Fatalf("want 4 elements, got %d", len(xs))
	}
	if xs[2].Tag != VTAmp {
		t.Fatalf("want amp, got %#v", xs[2])
	}
}

func Test_Parser_Map_Literal(t *testing.T) {
	v := parseOne(t, `{:key "value" [true] false}`)
	if v.Tag != VTMap {
		t.Fatalf("want map, got %#v", v)
	}
	if v.Data.(*MapObject).Len() != 2 {
		t.Fatalf("want 2 entries")
	}
}

func Test_Parser_Map_Odd_Elements_Rejected(t *testing.T) {
	_, err := ParseSource("{:a 1 :b}")
	if err == nil || IsIncomplete(err) {
		t.Fatalf("odd map literal should be a hard error, got %v", err)
	}
}

func Test_Parser_Incomplete_Forms(t *testing.T) {
	mustIncomplete(t, "(def x")
	mustIncomplete(t, "<1 +")
	mustIncomplete(t, "[1 2")
	mustIncomplete(t, "{:a 1")
	mustIncomplete(t, "(def x (fn [a]")
}

func Test_Parser_Multiple_Top_Level_Forms(t *testing.T) {
	forms := mustParse(t, "(def x 1) x")
	if len(forms) != 2 {
		t.Fatalf("want 2 forms, got %d", len(forms))
	}
}
