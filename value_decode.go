// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxAliasDepth bounds YAML alias expansion chains.
const maxAliasDepth = 64

// Parse decodes YAML or JSON document bytes into ordered schema value.
// Input that YAML cannot scan is retried as plain JSON.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, fmt.Errorf("%w: empty document", ErrDecodeSchema)
	}

	var document yaml.Node
	yamlErr := yaml.Unmarshal(data, &document)
	if yamlErr == nil {
		value, err := valueFromYAMLNode(&document, 0)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
		}

		return value, nil
	}

	value, jsonErr := parseJSON(data)
	if jsonErr != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrDecodeSchema, errors.Join(yamlErr, jsonErr))
	}

	return value, nil
}

// valueFromYAMLNode converts one yaml.v3 node into ordered value.
func valueFromYAMLNode(node *yaml.Node, depth int) (Value, error) {
	if node == nil {
		return Value{}, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Value{}, nil
		}

		return valueFromYAMLNode(node.Content[0], depth)

	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return Value{}, fmt.Errorf("yaml alias %q nests deeper than %d", node.Value, maxAliasDepth)
		}

		return valueFromYAMLNode(node.Alias, depth+1)

	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := valueFromYAMLNode(child, depth)
			if err != nil {
				return Value{}, err
			}

			items = append(items, item)
		}

		return Value{kind: KindArray, items: items}, nil

	case yaml.MappingNode:
		return objectFromYAMLMapping(node, depth)

	case yaml.ScalarNode:
		return scalarFromYAMLNode(node), nil

	default:
		return Value{}, fmt.Errorf("unsupported yaml node kind %d at line %d", node.Kind, node.Line)
	}
}

// objectFromYAMLMapping builds ordered object and flattens "<<" merge keys.
func objectFromYAMLMapping(node *yaml.Node, depth int) (Value, error) {
	out := Value{kind: KindObject, index: make(map[string]int, len(node.Content)/2)}
	var merged []Member

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
			sources, err := mergeSources(valueNode, depth)
			if err != nil {
				return Value{}, err
			}

			merged = append(merged, sources...)
			continue
		}

		key, err := valueFromYAMLNode(keyNode, depth)
		if err != nil {
			return Value{}, err
		}

		value, err := valueFromYAMLNode(valueNode, depth)
		if err != nil {
			return Value{}, err
		}

		out.setMember(key.inlineText(), value)
	}

	// explicit keys win over merged ones
	for _, m := range merged {
		if _, exists := out.index[m.Key]; exists {
			continue
		}

		out.setMember(m.Key, m.Value)
	}

	return out, nil
}

// mergeSources returns members contributed by one YAML merge key value.
func mergeSources(node *yaml.Node, depth int) ([]Member, error) {
	value, err := valueFromYAMLNode(node, depth)
	if err != nil {
		return nil, err
	}

	switch value.Kind() {
	case KindObject:
		return value.Members(), nil
	case KindArray:
		var out []Member
		seen := make(map[string]struct{})
		for _, item := range value.Items() {
			if !item.IsObject() {
				return nil, fmt.Errorf("yaml merge at line %d expects mappings", node.Line)
			}

			for _, m := range item.Members() {
				if _, ok := seen[m.Key]; ok {
					continue
				}

				seen[m.Key] = struct{}{}
				out = append(out, m)
			}
		}

		return out, nil
	default:
		return nil, fmt.Errorf("yaml merge at line %d expects mapping", node.Line)
	}
}

// scalarFromYAMLNode maps resolved YAML scalar tags to JSON kinds.
func scalarFromYAMLNode(node *yaml.Node) Value {
	switch node.ShortTag() {
	case "!!null":
		return Value{}
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err == nil {
			return Bool(b)
		}
	case "!!int":
		var n int64
		if err := node.Decode(&n); err == nil {
			return Int(n)
		}

		return Number(node.Value)
	case "!!float":
		var f float64
		if err := node.Decode(&f); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			if isJSONNumberLiteral(node.Value) {
				return Number(node.Value)
			}

			return Number(strconv.FormatFloat(f, 'g', -1, 64))
		}
	}

	return String(node.Value)
}

// isJSONNumberLiteral reports whether text is a valid JSON number literal.
func isJSONNumberLiteral(text string) bool {
	return json.Valid([]byte(text)) && text != "" && (text[0] == '-' || (text[0] >= '0' && text[0] <= '9'))
}

// parseJSON decodes JSON keeping object member order.
func parseJSON(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, err := decodeJSONValue(decoder)
	if err != nil {
		return Value{}, err
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("unexpected data after top-level value")
	}

	return value, nil
}

// decodeJSONValue reads one value from token stream.
func decodeJSONValue(decoder *json.Decoder) (Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return Value{}, err
	}

	switch typed := token.(type) {
	case json.Delim:
		switch typed {
		case '{':
			out := Value{kind: KindObject, index: make(map[string]int)}
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return Value{}, err
				}

				key, ok := keyToken.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key must be string, got %v", keyToken)
				}

				value, err := decodeJSONValue(decoder)
				if err != nil {
					return Value{}, err
				}

				out.setMember(key, value)
			}

			_, err := decoder.Token()
			return out, err

		case '[':
			out := Value{kind: KindArray}
			for decoder.More() {
				value, err := decodeJSONValue(decoder)
				if err != nil {
					return Value{}, err
				}

				out.items = append(out.items, value)
			}

			_, err := decoder.Token()
			return out, err

		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", typed)
		}
	case json.Number:
		return Number(typed.String()), nil
	case string:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case nil:
		return Value{}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", token)
	}
}

// FromAny converts in-memory Go data into schema value.
//
// Go maps have no order, so their keys are sorted for deterministic output.
func FromAny(in any) (Value, error) {
	switch typed := in.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return typed, nil
	case *yaml.Node:
		return valueFromYAMLNode(typed, 0)
	case yaml.Node:
		return valueFromYAMLNode(&typed, 0)
	case json.Number:
		return Number(typed.String()), nil
	case json.RawMessage:
		return Parse(typed)
	case bool:
		return Bool(typed), nil
	case string:
		return String(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case int32:
		return Int(int64(typed)), nil
	case uint:
		return Number(strconv.FormatUint(uint64(typed), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(typed, 10)), nil
	case float32:
		return floatValue(float64(typed))
	case float64:
		return floatValue(typed)
	case []any:
		items := make([]Value, 0, len(typed))
		for _, item := range typed {
			value, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}

			items = append(items, value)
		}

		return Value{kind: KindArray, items: items}, nil
	case []string:
		items := make([]Value, 0, len(typed))
		for _, item := range typed {
			items = append(items, String(item))
		}

		return Value{kind: KindArray, items: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)
		out := Value{kind: KindObject, index: make(map[string]int, len(keys))}
		for _, key := range keys {
			value, err := FromAny(typed[key])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}

			out.setMember(key, value)
		}

		return out, nil
	default:
		return fromReflect(in)
	}
}

// fromReflect handles remaining numeric kinds and falls back to JSON round trip for structs.
func fromReflect(in any) (Value, error) {
	rv := reflect.ValueOf(in)
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16:
		return Int(rv.Int()), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return Number(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Pointer:
		data, err := json.Marshal(in)
		if err != nil {
			return Value{}, fmt.Errorf("%w %T: %w", ErrUnsupportedGoValue, in, err)
		}

		return parseJSON(data)
	default:
		return Value{}, fmt.Errorf("%w %T", ErrUnsupportedGoValue, in)
	}
}

// floatValue converts finite float to number literal.
func floatValue(f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, fmt.Errorf("%w: non-finite number %v", ErrUnsupportedGoValue, f)
	}

	return Number(strings.TrimSpace(strconv.FormatFloat(f, 'g', -1, 64))), nil
}
