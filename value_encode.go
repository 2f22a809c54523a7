// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes value as JSON keeping object member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var out bytes.Buffer
	if err := writeJSONValue(&out, v); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// JSON renders value as JSON text; non-empty indent enables pretty output.
func (v Value) JSON(indent string) string {
	data, err := v.MarshalJSON()
	if err != nil {
		return v.text
	}

	if indent == "" {
		return string(data)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", indent); err != nil {
		return string(data)
	}

	return pretty.String()
}

// YAML renders value as YAML document text without trailing newline.
func (v Value) YAML() (string, error) {
	node := yamlNodeForValue(v)
	data, err := marshalYAMLNode(node)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(data), "\n"), nil
}

// writeJSONValue appends JSON encoding of one value.
func writeJSONValue(out *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindNull:
		out.WriteString("null")
	case KindBool:
		out.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		if !isJSONNumberLiteral(v.text) {
			return writeJSONString(out, v.text)
		}

		out.WriteString(v.text)
	case KindString:
		return writeJSONString(out, v.text)
	case KindArray:
		out.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				out.WriteByte(',')
			}

			if err := writeJSONValue(out, item); err != nil {
				return err
			}
		}
		out.WriteByte(']')
	case KindObject:
		out.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				out.WriteByte(',')
			}

			if err := writeJSONString(out, m.Key); err != nil {
				return err
			}

			out.WriteByte(':')
			if err := writeJSONValue(out, m.Value); err != nil {
				return err
			}
		}
		out.WriteByte('}')
	}

	return nil
}

// writeJSONString quotes text with standard escapes and no HTML escaping.
func writeJSONString(out *bytes.Buffer, text string) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(text); err != nil {
		return err
	}

	out.Write(bytes.TrimRight(buf.Bytes(), "\n"))
	return nil
}

// yamlNodeForValue builds deterministic yaml.Node tree from ordered value.
func yamlNodeForValue(v Value) *yaml.Node {
	switch v.kind {
	case KindNull:
		return yamlScalarNode("!!null", "null")
	case KindBool:
		return yamlScalarNode("!!bool", strconv.FormatBool(v.boolean))
	case KindNumber:
		if _, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return yamlScalarNode("!!int", v.text)
		}

		if _, ok := v.Float(); ok {
			return yamlScalarNode("!!float", v.text)
		}

		return yamlScalarNode("!!str", v.text)
	case KindString:
		return yamlScalarNode("!!str", v.text)
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			node.Content = append(node.Content, yamlNodeForValue(item))
		}

		return node
	default:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.members {
			node.Content = append(node.Content, yamlScalarNode("!!str", m.Key), yamlNodeForValue(m.Value))
		}

		return node
	}
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}

// marshalYAMLNode serializes node as YAML document with two-space indent.
func marshalYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
