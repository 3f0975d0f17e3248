package runtime

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueType represents the dynamic type of a smalljs value.
type ValueType int

const (
	TypeUndefined ValueType = iota
	TypeInteger
	TypeString
	TypeObject
)

func (t ValueType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeInteger:
		return "integer"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value represents a smalljs value.
type Value struct {
	Type   ValueType
	Int    int
	Str    string
	Object *Object
}

// Undefined is the "no value" sentinel returned by failed lookups.
var Undefined = &Value{Type: TypeUndefined}

func NewInteger(n int) *Value {
	return &Value{Type: TypeInteger, Int: n}
}

func NewString(s string) *Value {
	return &Value{Type: TypeString, Str: s}
}

func NewObject(obj *Object) *Value {
	return &Value{Type: TypeObject, Object: obj}
}

// NewBool encodes a truth value the way the language does: integer 1 or 0.
func NewBool(b bool) *Value {
	if b {
		return NewInteger(1)
	}
	return NewInteger(0)
}

func (v *Value) IsUndefined() bool {
	return v == nil || v.Type == TypeUndefined
}

// Truthy reports whether v selects the then-branch of an if.
// Only undefined and the integer 0 are falsy.
func (v *Value) Truthy() bool {
	if v.IsUndefined() {
		return false
	}
	if v.Type == TypeInteger {
		return v.Int != 0
	}
	return true
}

// AsObject returns the object a value refers to, or nil for primitives.
func (v *Value) AsObject() *Object {
	if v == nil || v.Type != TypeObject {
		return nil
	}
	return v.Object
}

// String renders a value the way print writes it.
func (v *Value) String() string {
	if v == nil {
		return "undefined"
	}
	switch v.Type {
	case TypeUndefined:
		return "undefined"
	case TypeInteger:
		return strconv.Itoa(v.Int)
	case TypeString:
		return v.Str
	case TypeObject:
		return v.Object.String()
	default:
		return "undefined"
	}
}

// Repr is like String but quotes strings, for diagnostics.
func (v *Value) Repr() string {
	if v != nil && v.Type == TypeString {
		return strconv.Quote(v.Str)
	}
	return v.String()
}

// MarshalJSON encodes primitive values for the AST dump.
func (v *Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.IsUndefined():
		return []byte("null"), nil
	case v.Type == TypeInteger:
		return json.Marshal(v.Int)
	case v.Type == TypeString:
		return json.Marshal(v.Str)
	default:
		return json.Marshal(v.String())
	}
}

func (o *Object) String() string {
	return o.render(make(map[*Object]bool))
}

func (o *Object) render(seen map[*Object]bool) string {
	if o == nil {
		return "undefined"
	}
	switch o.Kind {
	case KindFunction:
		return "function " + o.Name
	case KindEnvironment:
		return "[env]"
	}
	if seen[o] {
		return "[circular]"
	}
	seen[o] = true
	defer delete(seen, o)

	var b strings.Builder
	b.WriteByte('{')
	for i, name := range o.order {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		field := o.fields[name]
		if field.Type == TypeObject {
			b.WriteString(field.Object.render(seen))
			continue
		}
		b.WriteString(field.Repr())
	}
	b.WriteByte('}')
	return b.String()
}
