// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKeepsMemberOrder(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, "two"]}`))
	require.NoError(t, err)
	require.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Keys())

	alpha, ok := doc.Get("alpha")
	require.True(t, ok)
	require.Equal(t, []string{"b", "a"}, alpha.Keys())
	require.Equal(t, `{"zeta":1,"alpha":{"b":true,"a":null},"mid":[1,"two"]}`, doc.JSON(""))
}

func TestParsePreservesNumberLiterals(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"a": 1.0, "b": 10000000000000000000001, "c": -0.5}`))
	require.NoError(t, err)

	for key, want := range map[string]string{"a": "1.0", "c": "-0.5"} {
		value, ok := doc.Get(key)
		require.True(t, ok)

		text, ok := value.NumberText()
		require.True(t, ok, key)
		require.Equal(t, want, text, key)
	}

	big, _ := doc.Get("b")
	require.Equal(t, KindNumber, big.Kind())
}

func TestParseYAMLAliasesAndMergeKeys(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`
definitions:
  base: &base
    type: string
    minLength: 1
  name:
    <<: *base
    minLength: 3
  alias: *base
`))
	require.NoError(t, err)

	name, err := ResolveString(doc, "/definitions/name")
	require.NoError(t, err)
	require.Equal(t, []string{"minLength", "type"}, name.Keys())

	minLength, _ := name.Get("minLength")
	require.Equal(t, "3", minLength.inlineText())

	alias, err := ResolveString(doc, "/definitions/alias/type")
	require.NoError(t, err)
	require.Equal(t, String("string"), alias)
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, doc.Keys())

	a, _ := doc.Get("a")
	require.Equal(t, "3", a.inlineText())
}

func TestParseRejectsEmptyAndBrokenInput(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("  \n"))
	require.ErrorIs(t, err, ErrDecodeSchema)

	_, err = Parse([]byte(`{"a": [1, 2}`))
	require.ErrorIs(t, err, ErrDecodeSchema)
}

func TestValueIsEmpty(t *testing.T) {
	t.Parallel()

	empty := []Value{Null(), Bool(false), Int(0), Number("0.0"), String(""), Array(), Object()}
	for _, value := range empty {
		require.True(t, value.IsEmpty(), value.String())
	}

	nonEmpty := []Value{Bool(true), Int(2), String("x"), Array(Null()), Object(Member{Key: "a", Value: Null()})}
	for _, value := range nonEmpty {
		require.False(t, value.IsEmpty(), value.String())
	}
}

func TestValueStringList(t *testing.T) {
	t.Parallel()

	list, ok := String("one").StringList()
	require.True(t, ok)
	require.Equal(t, []string{"one"}, list)

	list, ok = Array(String("a"), String("b")).StringList()
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, list)

	_, ok = Array(String("a"), Int(1)).StringList()
	require.False(t, ok)
}

func TestValueEqualIgnoresMemberOrder(t *testing.T) {
	t.Parallel()

	a := Object(Member{Key: "x", Value: Int(1)}, Member{Key: "y", Value: Array(String("z"))})
	b := Object(Member{Key: "y", Value: Array(String("z"))}, Member{Key: "x", Value: Number("1.0")})
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(a.Without("y")))
	require.Equal(t, []string{"x", "y"}, a.Keys())
}

func TestValueJSONEscaping(t *testing.T) {
	t.Parallel()

	value := String("tab\tquote\"back\bslash\\<html>\x01")
	text := value.JSON("")
	require.True(t, strings.HasPrefix(text, `"tab\tquote\"back\`), text)
	require.Contains(t, text, `slash\\<html>\u0001"`)
	require.NotContains(t, text, "\b")

	back, err := Parse([]byte(text))
	require.NoError(t, err)
	require.True(t, value.Equal(back), text)
}

func TestValueYAML(t *testing.T) {
	t.Parallel()

	value := Object(
		Member{Key: "name", Value: String("svc")},
		Member{Key: "ports", Value: Array(Int(80), Int(443))},
		Member{Key: "debug", Value: Bool(false)},
	)

	text, err := value.YAML()
	require.NoError(t, err)
	require.Equal(t, "name: svc\nports:\n  - 80\n  - 443\ndebug: false", text)
}

func TestFromAnySortsMapKeys(t *testing.T) {
	t.Parallel()

	value, err := FromAny(map[string]any{
		"type":       "object",
		"properties": map[string]any{"b": true, "a": false},
		"enum":       []any{1, 2.5, nil},
	})
	require.NoError(t, err)
	require.Equal(t, `{"enum":[1,2.5,null],"properties":{"a":false,"b":true},"type":"object"}`, value.JSON(""))
}

func TestFromAnyStructUsesJSONTags(t *testing.T) {
	t.Parallel()

	type schema struct {
		Type  string `json:"type"`
		Title string `json:"title,omitempty"`
	}

	value, err := FromAny(schema{Type: "string"})
	require.NoError(t, err)
	require.Equal(t, `{"type":"string"}`, value.JSON(""))
}

func TestFromAnyRejectsUnsupportedValues(t *testing.T) {
	t.Parallel()

	_, err := FromAny(make(chan int))
	require.ErrorIs(t, err, ErrUnsupportedGoValue)
}
