// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"net/url"
	"strconv"
	"strings"
)

// Pointer is a parsed RFC 6901 JSON pointer: unescaped path segments.
// The empty pointer denotes the document root.
type Pointer []string

// ParsePointer parses pointer text such as "/definitions/a~1b".
func ParsePointer(text string) (Pointer, error) {
	if text == "" {
		return Pointer{}, nil
	}

	if text[0] != '/' {
		return nil, &PointerError{Pointer: text, Segment: -1, Message: `must be empty or start with "/"`}
	}

	raw := strings.Split(text[1:], "/")
	out := make(Pointer, 0, len(raw))
	for i, token := range raw {
		segment, ok := unescapeToken(token)
		if !ok {
			return nil, &PointerError{Pointer: text, Segment: i, Message: `"~" must be followed by "0" or "1"`}
		}

		out = append(out, segment)
	}

	return out, nil
}

// ParseFragment parses URI fragment form such as "#/definitions/Item" or "#".
func ParseFragment(fragment string) (Pointer, error) {
	text := strings.TrimPrefix(fragment, "#")
	decoded, err := url.PathUnescape(text)
	if err != nil {
		return nil, &PointerError{Pointer: fragment, Segment: -1, Message: err.Error()}
	}

	return ParsePointer(decoded)
}

// MustPointer parses pointer text and panics on error; for literals in code and tests.
func MustPointer(text string) Pointer {
	p, err := ParsePointer(text)
	if err != nil {
		panic(err)
	}

	return p
}

// unescapeToken decodes "~1" and "~0" in one left-to-right pass,
// so "~01" yields "~1" and never "/".
func unescapeToken(token string) (string, bool) {
	if !strings.Contains(token, "~") {
		return token, true
	}

	var out strings.Builder
	out.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '~' {
			out.WriteByte(c)
			continue
		}

		if i+1 >= len(token) {
			return "", false
		}

		switch token[i+1] {
		case '0':
			out.WriteByte('~')
		case '1':
			out.WriteByte('/')
		default:
			return "", false
		}

		i++
	}

	return out.String(), true
}

// escapeToken escapes "~" before "/" so output parses back to the same segment.
func escapeToken(segment string) string {
	segment = strings.ReplaceAll(segment, "~", "~0")
	return strings.ReplaceAll(segment, "/", "~1")
}

// String returns pointer text; the root pointer is the empty string.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}

	var out strings.Builder
	for _, segment := range p {
		out.WriteByte('/')
		out.WriteString(escapeToken(segment))
	}

	return out.String()
}

// Fragment returns "#"-prefixed pointer text used in $ref values.
func (p Pointer) Fragment() string {
	return "#" + p.String()
}

// Append returns new pointer with extra segments; p is not modified.
func (p Pointer) Append(segments ...string) Pointer {
	out := make(Pointer, 0, len(p)+len(segments))
	out = append(out, p...)
	return append(out, segments...)
}

// AppendIndex returns new pointer with array index segment.
func (p Pointer) AppendIndex(index int) Pointer {
	return p.Append(strconv.Itoa(index))
}

// Parent returns pointer without last segment; root is its own parent.
func (p Pointer) Parent() Pointer {
	if len(p) == 0 {
		return p
	}

	return p[:len(p)-1:len(p)-1]
}

// Last returns last segment or empty string for root.
func (p Pointer) Last() string {
	if len(p) == 0 {
		return ""
	}

	return p[len(p)-1]
}

// Equal reports segment-wise equality.
func (p Pointer) Equal(other Pointer) bool {
	if len(p) != len(other) {
		return false
	}

	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}

// HasPrefix reports whether p equals prefix or descends from it.
func (p Pointer) HasPrefix(prefix Pointer) bool {
	if len(prefix) > len(p) {
		return false
	}

	return p[:len(prefix)].Equal(prefix)
}

// Resolve walks pointer from root and returns addressed value.
func Resolve(root Value, p Pointer) (Value, error) {
	current := root
	for i, segment := range p {
		switch current.Kind() {
		case KindObject:
			next, ok := current.Get(segment)
			if !ok {
				return Value{}, &PointerError{Pointer: p.String(), Segment: i, Message: "no member " + strconv.Quote(segment)}
			}

			current = next
		case KindArray:
			index, ok := arrayIndex(segment)
			if !ok {
				return Value{}, &PointerError{Pointer: p.String(), Segment: i, Message: "invalid array index " + strconv.Quote(segment)}
			}

			next, ok := current.Index(index)
			if !ok {
				return Value{}, &PointerError{
					Pointer: p.String(),
					Segment: i,
					Message: "array index " + strconv.Itoa(index) + " out of range (length " + strconv.Itoa(current.Len()) + ")",
				}
			}

			current = next
		default:
			return Value{}, &PointerError{Pointer: p.String(), Segment: i, Message: "cannot traverse into " + current.Kind().String()}
		}
	}

	return current, nil
}

// ResolveString parses pointer text and resolves it against root.
func ResolveString(root Value, text string) (Value, error) {
	p, err := ParsePointer(text)
	if err != nil {
		return Value{}, err
	}

	return Resolve(root, p)
}

// arrayIndex parses RFC 6901 array index: decimal without sign or leading zeros.
func arrayIndex(segment string) (int, bool) {
	if segment == "" || (len(segment) > 1 && segment[0] == '0') {
		return 0, false
	}

	for _, c := range segment {
		if c < '0' || c > '9' {
			return 0, false
		}
	}

	index, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}

	return index, true
}
