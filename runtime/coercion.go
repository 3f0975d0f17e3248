package runtime

import "strings"

// Equals implements == : structural for primitives, identity for objects.
func Equals(a, b *Value) bool {
	if a.IsUndefined() || b.IsUndefined() {
		return a.IsUndefined() && b.IsUndefined()
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeInteger:
		return a.Int == b.Int
	case TypeString:
		return a.Str == b.Str
	case TypeObject:
		return a.Object == b.Object
	default:
		return false
	}
}

// Compare orders two integers or two strings. Any other pairing has no
// total ordering and is a type error.
func Compare(a, b *Value) (int, error) {
	switch {
	case a.Type == TypeInteger && b.Type == TypeInteger:
		switch {
		case a.Int < b.Int:
			return -1, nil
		case a.Int > b.Int:
			return 1, nil
		}
		return 0, nil
	case a.Type == TypeString && b.Type == TypeString:
		return strings.Compare(a.Str, b.Str), nil
	}
	return 0, TypeErrorf("cannot compare %s with %s", a.Repr(), b.Repr())
}

// ToInteger checks that v is an integer operand.
func ToInteger(v *Value) (int, error) {
	if v == nil || v.Type != TypeInteger {
		return 0, TypeErrorf("%s is not an integer", v.Repr())
	}
	return v.Int, nil
}

// ToObject checks that v refers to an object.
func ToObject(v *Value) (*Object, error) {
	obj := v.AsObject()
	if obj == nil {
		return nil, TypeErrorf("%s is not an object", v.Repr())
	}
	return obj, nil
}
