package attr

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the concrete type held by a Value.
type Kind string

const (
	// KindString is a plain string value.
	KindString Kind = "string"

	// KindNumber is a numeric value, stored as float64.
	KindNumber Kind = "number"

	// KindBool is a boolean value.
	KindBool Kind = "bool"

	// KindTime is a timestamp value.
	KindTime Kind = "time"

	// KindStringList is an ordered list of strings.
	KindStringList Kind = "string_list"
)

// IsValid returns true if the kind is one of the defined constants.
func (k Kind) IsValid() bool {
	switch k {
	case KindString, KindNumber, KindBool, KindTime, KindStringList:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Value is a closed variant holding exactly one of the supported attribute
// types. The zero Value is a KindString holding the empty string.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
	list []string
}

// String creates a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number creates a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Int creates a numeric Value from an integer.
func Int(i int) Value {
	return Value{kind: KindNumber, num: float64(i)}
}

// Bool creates a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Time creates a timestamp Value.
func Time(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}

// StringList creates a string-list Value. The slice is copied.
func StringList(items ...string) Value {
	list := make([]string, len(items))
	copy(list, items)
	return Value{kind: KindStringList, list: list}
}

// Kind returns the kind of the value. The zero Value reports KindString.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindString
	}
	return v.kind
}

// IsScalar returns true for values that are not lists.
func (v Value) IsScalar() bool {
	return v.Kind() != KindStringList
}

// StringVal returns the underlying string. It is only meaningful for
// KindString values.
func (v Value) StringVal() string { return v.str }

// NumberVal returns the underlying number. It is only meaningful for
// KindNumber values.
func (v Value) NumberVal() float64 { return v.num }

// BoolVal returns the underlying boolean. It is only meaningful for
// KindBool values.
func (v Value) BoolVal() bool { return v.b }

// TimeVal returns the underlying timestamp. It is only meaningful for
// KindTime values.
func (v Value) TimeVal() time.Time { return v.t }

// ListVal returns a copy of the underlying string list. It is only
// meaningful for KindStringList values.
func (v Value) ListVal() []string {
	if v.list == nil {
		return nil
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out
}

// String returns a human-readable representation of the value. Lists are
// flattened to a comma-separated string, timestamps use RFC 3339.
func (v Value) String() string {
	switch v.Kind() {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	case KindStringList:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// Flatten returns the value unchanged for scalars and a single string
// Value for lists, keeping the attribute model flat.
func (v Value) Flatten() Value {
	if v.IsScalar() {
		return v
	}
	return String(v.String())
}

// Equal reports whether two values hold the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindTime:
		return v.t.Equal(other.t)
	case KindStringList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the value as its natural JSON type: strings and
// timestamps as JSON strings, numbers as JSON numbers, booleans as JSON
// booleans, lists as JSON arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindTime:
		return json.Marshal(v.t.Format(time.RFC3339Nano))
	case KindStringList:
		if v.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.list)
	default:
		return nil, fmt.Errorf("attr: cannot marshal value of kind %q", v.Kind())
	}
}
