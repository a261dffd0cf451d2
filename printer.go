// printer.go — display formatting for runtime values.
//
// FormatValue renders the form the REPL prints and the form str/print build
// from. Strings render bare (display, not readable), keywords keep their
// colon, vectors and maps space-join their elements inside their brackets.
package huckleberry

import (
	"strconv"
	"strings"
)

// FormatValue renders v for display.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTNumber:
		return formatNumber(v.Data.(float64))
	case VTString:
		return v.Data.(string)
	case VTSymbol:
		return v.Data.(string)
	case VTKeyword:
		return v.Data.(string)
	case VTLabel:
		return v.Data.(string) + ":"
	case VTAmp:
		return "&"
	case VTVector:
		return "[" + joinValues(v.Data.([]Value)) + "]"
	case VTList:
		return "(" + joinValues(v.Data.([]Value)) + ")"
	case VTMap:
		return formatMap(v.Data.(*MapObject))
	case VTFun:
		return "#<function>"
	case VTBuiltin:
		return "#<builtin " + v.Data.(*Builtin).Name + ">"
	case VTClass:
		return "#<class " + v.Data.(*ClassDescriptor).Name + ">"
	case VTInstance:
		inst := v.Data.(*Instance)
		return "#<" + inst.Class.Name + " " + formatMap(inst.Fields) + ">"
	case VTSend:
		return "#<send " + v.Data.(*SendNode).Name + ">"
	case VTSpecial:
		return "#<" + v.Data.(*SpecialNode).Name + ">"
	default:
		return "#<unknown>"
	}
}

// formatNumber prints whole numbers without a fractional part and keeps the
// shortest representation that round-trips for everything else.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinValues(xs []Value) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = FormatValue(x)
	}
	return strings.Join(parts, " ")
}

func formatMap(m *MapObject) string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < m.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		k, v := m.At(i)
		b.WriteString(FormatValue(k))
		b.WriteByte(' ')
		b.WriteString(FormatValue(v))
	}
	b.WriteByte('}')
	return b.String()
}
