// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"strconv"
	"strings"
)

// Kind is the JSON type of a Value.
type Kind uint8

const (
	// KindNull is the JSON null value and the zero Value.
	KindNull Kind = iota
	// KindBool is a JSON boolean.
	KindBool
	// KindNumber is a JSON number kept as its source literal.
	KindNumber
	// KindString is a JSON string.
	KindString
	// KindArray is an ordered sequence of values.
	KindArray
	// KindObject is an ordered mapping from string keys to values.
	KindObject
)

// String returns JSON type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Member is one key/value pair of an object value.
type Member struct {
	Key   string
	Value Value
}

// Value is a read-only parsed schema value.
//
// Objects keep members in declared order, numbers keep their literal text.
// The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	text    string
	items   []Value
	members []Member
	index   map[string]int
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool returns boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// String returns string value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number returns number value from literal text. The literal is not validated.
func Number(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// Int returns integer number value.
func Int(n int64) Value {
	return Number(strconv.FormatInt(n, 10))
}

// Array returns array value holding items in given order.
func Array(items ...Value) Value {
	out := make([]Value, len(items))
	copy(out, items)
	return Value{kind: KindArray, items: out}
}

// Object returns object value with members in given order.
// Later duplicate keys replace the earlier value in place.
func Object(members ...Member) Value {
	v := Value{kind: KindObject, index: make(map[string]int, len(members))}
	for _, m := range members {
		v.setMember(m.Key, m.Value)
	}

	return v
}

// setMember appends or replaces one member; only used while building.
func (v *Value) setMember(key string, value Value) {
	if at, ok := v.index[key]; ok {
		v.members[at].Value = value
		return
	}

	v.index[key] = len(v.members)
	v.members = append(v.members, Member{Key: key, Value: value})
}

// Kind returns the JSON type of value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsObject reports whether value is an object.
func (v Value) IsObject() bool {
	return v.kind == KindObject
}

// IsArray reports whether value is an array.
func (v Value) IsArray() bool {
	return v.kind == KindArray
}

// Str returns string content and whether value is a string.
func (v Value) Str() (string, bool) {
	return v.text, v.kind == KindString
}

// BoolValue returns boolean content and whether value is a boolean.
func (v Value) BoolValue() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// NumberText returns number literal and whether value is a number.
func (v Value) NumberText() (string, bool) {
	return v.text, v.kind == KindNumber
}

// Float returns number as float64.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// Len returns number of array items or object members, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns array item at position.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}

	return v.items[i], true
}

// Items returns array items. The slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}

	return v.items
}

// Get returns object member value by key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	at, ok := v.index[key]
	if !ok {
		return Value{}, false
	}

	return v.members[at].Value, true
}

// Has reports whether object has member with key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Members returns object members in declared order. The slice must not be modified.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}

	return v.members
}

// Keys returns object keys in declared order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}

	out := make([]string, 0, len(v.members))
	for _, m := range v.members {
		out = append(out, m.Key)
	}

	return out
}

// Without returns shallow object copy without listed keys.
func (v Value) Without(keys ...string) Value {
	if v.kind != KindObject {
		return v
	}

	skip := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		skip[key] = struct{}{}
	}

	out := Value{kind: KindObject, index: make(map[string]int, len(v.members))}
	for _, m := range v.members {
		if _, ok := skip[m.Key]; ok {
			continue
		}

		out.setMember(m.Key, m.Value)
	}

	return out
}

// IsEmpty reports falsy values: null, false, zero, empty string, empty array or object.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return !v.boolean
	case KindNumber:
		f, ok := v.Float()
		return ok && f == 0
	case KindString:
		return v.text == ""
	default:
		return v.Len() == 0
	}
}

// StringList returns string items of array value, or the single string value.
func (v Value) StringList() ([]string, bool) {
	switch v.kind {
	case KindString:
		return []string{v.text}, true
	case KindArray:
		out := make([]string, 0, len(v.items))
		for _, item := range v.items {
			text, ok := item.Str()
			if !ok {
				return nil, false
			}

			out = append(out, text)
		}

		return out, true
	default:
		return nil, false
	}
}

// Equal reports deep equality; object member order is not significant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		a, okA := v.Float()
		b, okB := other.Float()
		if okA && okB {
			return a == b
		}

		return v.text == other.text
	case KindString:
		return v.text == other.text
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}

		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}

		return true
	default:
		if len(v.members) != len(other.members) {
			return false
		}

		for _, m := range v.members {
			value, ok := other.Get(m.Key)
			if !ok || !m.Value.Equal(value) {
				return false
			}
		}

		return true
	}
}

// GoString renders compact JSON for debugging and test failure output.
func (v Value) GoString() string {
	return v.JSON("")
}

// String renders compact JSON text.
func (v Value) String() string {
	return v.JSON("")
}

// inlineText renders scalar values as plain text and composites as compact JSON.
func (v Value) inlineText() string {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNull:
		return "null"
	default:
		return strings.TrimSpace(v.JSON(""))
	}
}
