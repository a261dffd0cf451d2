// equal.go — structural equality over the closed Value tag set.
//
// Equal is total: it returns false for incomparable combinations instead of
// erroring, because equality backs dispatch predicates, the `=` builtin, and
// map-key lookup, all of which must never raise. It is reflexive, symmetric
// and transitive over values built from the documented variants; recursion
// terminates because values are immutable and constructed acyclically.
package huckleberry

// Equal reports structural equality of two Values.
//
//   - numbers compare by arithmetic value
//   - vectors compare element-wise, order-sensitive
//   - maps compare by key set and per-key value, order-insensitive
//   - instances compare by class identity plus field-map equality
//   - functions, builtins and classes compare by identity only
func Equal(a, b Value) bool {
	switch a.Tag {
	case VTNil:
		return b.Tag == VTNil
	case VTBool:
		return b.Tag == VTBool && a.Data.(bool) == b.Data.(bool)
	case VTNumber:
		return b.Tag == VTNumber && a.Data.(float64) == b.Data.(float64)
	case VTString:
		return b.Tag == VTString && a.Data.(string) == b.Data.(string)
	case VTSymbol:
		return b.Tag == VTSymbol && a.Data.(string) == b.Data.(string)
	case VTKeyword:
		return b.Tag == VTKeyword && a.Data.(string) == b.Data.(string)
	case VTLabel:
		return b.Tag == VTLabel && a.Data.(string) == b.Data.(string)
	case VTAmp:
		return b.Tag == VTAmp
	case VTVector:
		if b.Tag != VTVector {
			return false
		}
		return equalSlices(a.Data.([]Value), b.Data.([]Value))
	case VTList:
		if b.Tag != VTList {
			return false
		}
		return equalSlices(a.Data.([]Value), b.Data.([]Value))
	case VTMap:
		if b.Tag != VTMap {
			return false
		}
		return equalMaps(a.Data.(*MapObject), b.Data.(*MapObject))
	case VTInstance:
		if b.Tag != VTInstance {
			return false
		}
		ia, ib := a.Data.(*Instance), b.Data.(*Instance)
		return ia.Class == ib.Class && equalMaps(ia.Fields, ib.Fields)
	case VTFun:
		return b.Tag == VTFun && a.Data.(*Fun) == b.Data.(*Fun)
	case VTBuiltin:
		return b.Tag == VTBuiltin && a.Data.(*Builtin) == b.Data.(*Builtin)
	case VTClass:
		return b.Tag == VTClass && a.Data.(*ClassDescriptor) == b.Data.(*ClassDescriptor)
	default:
		return false
	}
}

func equalSlices(xs, ys []Value) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Equal(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

// equalMaps: same key set, equal values per key, insertion order irrelevant.
func equalMaps(ma, mb *MapObject) bool {
	if ma.Len() != mb.Len() {
		return false
	}
	for i := 0; i < ma.Len(); i++ {
		k, va := ma.At(i)
		vb, ok := mb.Get(k)
		if !ok || !Equal(va, vb) {
			return false
		}
	}
	return true
}
