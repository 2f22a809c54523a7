// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"slices"
	"strconv"
)

// keywordFormatter turns one keyword value of schema at sc into table rows.
type keywordFormatter func(r *renderer, sc scope, key string, value Value, schema Value) ([]*Node, error)

// keywordFormatters binds known keywords to formatters; unknown keywords use formatRaw.
// Filled in init because formatters recurse back into the renderer.
var keywordFormatters map[string]keywordFormatter

func init() {
	keywordFormatters = map[string]keywordFormatter{
		"$schema": formatLiteral,
		"$id":     formatLiteral,
		"id":      formatLiteral,
		"$ref":    formatRef,

		"title":         formatText,
		"$comment":      formatText,
		"description":   formatDescription,
		"$$description": formatDescription,

		"type":   formatType,
		"enum":   formatEnum,
		"const":  formatValueBlock,
		"format": formatLiteral,

		"default":  formatValueBlock,
		"example":  formatValueBlock,
		"examples": formatExamples,

		"properties":           formatProperties,
		"patternProperties":    formatProperties,
		"additionalProperties": formatSchemaOrFlag,
		"propertyNames":        formatSchema,
		"required":             formatRequired,
		"dependencies":         formatDependencies,

		"items":           formatItems,
		"additionalItems": formatSchemaOrFlag,
		"contains":        formatSchema,

		"allOf": formatSchemaList,
		"anyOf": formatSchemaList,
		"oneOf": formatSchemaList,
		"not":   formatSchema,

		"if":   formatConditional,
		"then": formatConditional,
		"else": formatConditional,

		"definitions": formatDefinitions,

		"minimum":          formatLiteral,
		"maximum":          formatLiteral,
		"exclusiveMinimum": formatLiteral,
		"exclusiveMaximum": formatLiteral,
		"multipleOf":       formatLiteral,
		"minLength":        formatLiteral,
		"maxLength":        formatLiteral,
		"pattern":          formatLiteral,
		"minItems":         formatLiteral,
		"maxItems":         formatLiteral,
		"uniqueItems":      formatLiteral,
		"minProperties":    formatLiteral,
		"maxProperties":    formatLiteral,
		"readOnly":         formatLiteral,
		"writeOnly":        formatLiteral,
	}
}

// nonSchemaKeywords hold data values, never subschemas.
var nonSchemaKeywords = map[string]struct{}{
	"default":  {},
	"example":  {},
	"examples": {},
	"enum":     {},
	"const":    {},
}

// conditionalKeywords are rendered together in this order.
var conditionalKeywords = []string{"if", "then", "else"}

// formatterFor returns formatter bound to keyword or the raw fallback.
func formatterFor(key string) keywordFormatter {
	if format, ok := keywordFormatters[key]; ok {
		return format
	}

	return formatRaw
}

// unsupported builds UnsupportedValueError for keyword at sc.
func unsupported(sc scope, key string, value Value, want string) error {
	return &UnsupportedValueError{
		Keyword: key,
		Path:    sc.path.Append(key).String(),
		Got:     value.Kind(),
		Want:    want,
	}
}

// formatRaw renders unknown keywords as "key: value".
func formatRaw(_ *renderer, _ scope, key string, value Value, _ Value) ([]*Node, error) {
	switch value.Kind() {
	case KindArray, KindObject:
		return []*Node{newRow(key, literalBlock(value, LiteralJSON))}, nil
	default:
		return []*Node{newRow(key, newLiteral(value.inlineText()))}, nil
	}
}

// formatLiteral renders scalar keyword values inline.
func formatLiteral(r *renderer, sc scope, key string, value Value, schema Value) ([]*Node, error) {
	if value.Kind() == KindArray || value.Kind() == KindObject {
		return nil, unsupported(sc, key, value, "scalar")
	}

	return formatRaw(r, sc, key, value, schema)
}

// formatText renders plain text keywords.
func formatText(_ *renderer, sc scope, key string, value Value, _ Value) ([]*Node, error) {
	text, ok := value.Str()
	if !ok {
		return nil, unsupported(sc, key, value, "string")
	}

	return []*Node{newRow(key, newText(text))}, nil
}

// formatDescription renders a string or array of strings, one paragraph per element.
func formatDescription(_ *renderer, sc scope, key string, value Value, _ Value) ([]*Node, error) {
	paragraphs, ok := value.StringList()
	if !ok {
		return nil, unsupported(sc, key, value, "string or array of strings")
	}

	row := newRow(key)
	for _, text := range paragraphs {
		row.Append(newParagraph(text))
	}

	return []*Node{row}, nil
}

// formatType renders one type name or a disjunction of names.
func formatType(_ *renderer, sc scope, key string, value Value, _ Value) ([]*Node, error) {
	if name, ok := value.Str(); ok {
		return []*Node{newRow(key, newLiteral(name))}, nil
	}

	names, ok := value.StringList()
	if !ok || len(names) == 0 {
		return nil, unsupported(sc, key, value, "string or non-empty array of strings")
	}

	disjunction := &Node{Kind: KindParagraph}
	for i, name := range names {
		if i > 0 {
			disjunction.Append(newText(" or "))
		}

		disjunction.Append(newLiteral(name))
	}

	return []*Node{newRow(key, disjunction)}, nil
}

// formatEnum lists allowed values.
func formatEnum(_ *renderer, sc scope, key string, value Value, _ Value) ([]*Node, error) {
	if !value.IsArray() {
		return nil, unsupported(sc, key, value, "array")
	}

	list := &Node{Kind: KindList}
	for _, item := range value.Items() {
		list.Append(&Node{Kind: KindItem, Children: []*Node{newLiteral(item.JSON(""))}})
	}

	return []*Node{newRow(key, list)}, nil
}

// formatValueBlock renders one literal value block.
func formatValueBlock(r *renderer, _ scope, key string, value Value, _ Value) ([]*Node, error) {
	return []*Node{newRow(key, literalBlock(value, r.opt.LiteralFormat))}, nil
}

// formatExamples renders one literal block per example.
func formatExamples(r *renderer, sc scope, key string, value Value, schema Value) ([]*Node, error) {
	if !value.IsArray() {
		return formatValueBlock(r, sc, key, value, schema)
	}

	list := &Node{Kind: KindList}
	for _, item := range value.Items() {
		list.Append(&Node{Kind: KindItem, Children: []*Node{literalBlock(item, r.opt.LiteralFormat)}})
	}

	return []*Node{newRow(key, list)}, nil
}

// formatProperties renders one row per member schema in declared order.
func formatProperties(r *renderer, sc scope, key string, value Value, schema Value) ([]*Node, error) {
	if !value.IsObject() {
		return nil, unsupported(sc, key, value, "object")
	}

	var required []string
	if key == "properties" {
		required = r.visibleRequired(sc, schema)
	}

	base := sc.path.Append(key)
	table := &Node{Kind: KindTable}
	for _, m := range value.Members() {
		path := base.Append(m.Key)
		if r.hiddenAt(sc, path, m.Value) {
			continue
		}

		content, err := r.child(sc, path, m.Value)
		if err != nil {
			return nil, err
		}

		row := newRow(m.Key, content)
		if slices.Contains(required, m.Key) {
			row.Text = "required"
		}

		table.Append(row)
	}

	return []*Node{newRow(key, table)}, nil
}

// formatRequired lists required names unless property rows already carry the marker.
func formatRequired(r *renderer, sc scope, key string, value Value, schema Value) ([]*Node, error) {
	names, ok := value.StringList()
	if !ok || value.Kind() != KindArray {
		return nil, unsupported(sc, key, value, "array of strings")
	}

	if properties, ok := schema.Get("properties"); ok && properties.IsObject() && !r.hiddenAt(sc, sc.path.Append("properties"), properties) {
		return nil, nil
	}

	return []*Node{newRow(key, literalList(names))}, nil
}

// formatSchema renders a single subschema.
func formatSchema(r *renderer, sc scope, key string, value Value, _ Value) ([]*Node, error) {
	content, err := r.child(sc, sc.path.Append(key), value)
	if err != nil {
		return nil, err
	}

	return []*Node{newRow(key, content)}, nil
}

// formatSchemaOrFlag renders boolean as allowed/not allowed, otherwise a subschema.
func formatSchemaOrFlag(r *renderer, sc scope, key string, value Value, schema Value) ([]*Node, error) {
	if allowed, ok := value.BoolValue(); ok {
		text := "not allowed"
		if allowed {
			text = "allowed"
		}

		return []*Node{newRow(key, newText(text))}, nil
	}

	if !value.IsObject() {
		return nil, unsupported(sc, key, value, "boolean or object")
	}

	return formatSchema(r, sc, key, value, schema)
}

// formatItems renders one schema for every item, or a per-position tuple listing.
func formatItems(r *renderer, sc scope, key string, value Value, schema Value) ([]*Node, error) {
	switch value.Kind() {
	case KindObject, KindBool:
		return formatSchema(r, sc, key, value, schema)
	case KindArray:
		return formatPositional(r, sc, key, value, true)
	default:
		return nil, unsupported(sc, key, value, "object or array")
	}
}

// formatSchemaList renders allOf/anyOf/oneOf branches in order.
func formatSchemaList(r *renderer, sc scope, key string, value Value, _ Value) ([]*Node, error) {
	if !value.IsArray() {
		return nil, unsupported(sc, key, value, "array")
	}

	return formatPositional(r, sc, key, value, false)
}

// formatPositional renders array of subschemas as ordered list; labeled adds index titles.
func formatPositional(r *renderer, sc scope, key string, value Value, labeled bool) ([]*Node, error) {
	base := sc.path.Append(key)
	list := &Node{Kind: KindList, Ordered: true}
	for i, item := range value.Items() {
		path := base.AppendIndex(i)
		if r.hiddenAt(sc, path, item) {
			continue
		}

		content, err := r.child(sc, path, item)
		if err != nil {
			return nil, err
		}

		entry := &Node{Kind: KindItem, Children: []*Node{content}}
		if labeled {
			entry.Title = strconv.Itoa(i)
		}

		list.Append(entry)
	}

	return []*Node{newRow(key, list)}, nil
}

// formatDependencies renders property requirement lists and dependent schemas.
func formatDependencies(r *renderer, sc scope, key string, value Value, _ Value) ([]*Node, error) {
	if !value.IsObject() {
		return nil, unsupported(sc, key, value, "object")
	}

	base := sc.path.Append(key)
	table := &Node{Kind: KindTable}
	for _, m := range value.Members() {
		path := base.Append(m.Key)
		if r.hiddenAt(sc, path, m.Value) {
			continue
		}

		switch m.Value.Kind() {
		case KindArray:
			names, ok := m.Value.StringList()
			if !ok {
				table.Append(newRow(m.Key, newWarning(unsupported(sc.at(base), m.Key, m.Value, "array of strings or schema"))))
				continue
			}

			table.Append(newRow(m.Key, newText("requires"), literalList(names)))
		case KindObject, KindBool:
			content, err := r.child(sc, path, m.Value)
			if err != nil {
				return nil, err
			}

			table.Append(newRow(m.Key, newText("when present, schema applies"), content))
		default:
			table.Append(newRow(m.Key, newWarning(unsupported(sc.at(base), m.Key, m.Value, "array of strings or schema"))))
		}
	}

	return []*Node{newRow(key, table)}, nil
}

// formatConditional renders if/then/else as one row at the first visible branch keyword.
func formatConditional(r *renderer, sc scope, key string, _ Value, schema Value) ([]*Node, error) {
	present := make(map[string]Value, len(conditionalKeywords))
	first := ""
	for _, m := range schema.Members() {
		if !slices.Contains(conditionalKeywords, m.Key) || r.hiddenAt(sc, sc.path.Append(m.Key), m.Value) {
			continue
		}

		if first == "" {
			first = m.Key
		}

		present[m.Key] = m.Value
	}

	if first != key {
		return nil, nil
	}

	table := &Node{Kind: KindTable}
	for _, branch := range conditionalKeywords {
		value, ok := present[branch]
		if !ok {
			continue
		}

		content, err := r.child(sc, sc.path.Append(branch), value)
		if err != nil {
			return nil, err
		}

		table.Append(newRow(branch, content))
	}

	return []*Node{newRow("conditional", table)}, nil
}

// formatDefinitions renders named subschemas in place; lifting is handled by the renderer.
func formatDefinitions(r *renderer, sc scope, key string, value Value, _ Value) ([]*Node, error) {
	if !value.IsObject() {
		return nil, unsupported(sc, key, value, "object")
	}

	base := sc.path.Append(key)
	table := &Node{Kind: KindTable}
	for _, m := range value.Members() {
		path := base.Append(m.Key)
		if r.hiddenAt(sc, path, m.Value) {
			continue
		}

		content, err := r.child(sc, path, m.Value)
		if err != nil {
			return nil, err
		}

		table.Append(newRow(m.Key, content))
	}

	return []*Node{newRow(key, table)}, nil
}

// formatRef renders $ref as link or in-place expansion.
func formatRef(r *renderer, sc scope, key string, value Value, _ Value) ([]*Node, error) {
	ref, ok := value.Str()
	if !ok {
		return nil, unsupported(sc, key, value, "string")
	}

	content, err := r.reference(sc, ref)
	if err != nil {
		return nil, err
	}

	return []*Node{newRow(key, content...)}, nil
}

// visibleRequired returns names of schema required keyword unless hidden.
func (r *renderer) visibleRequired(sc scope, schema Value) []string {
	value, ok := schema.Get("required")
	if !ok || r.hiddenAt(sc, sc.path.Append("required"), value) {
		return nil
	}

	names, _ := value.StringList()
	return names
}

// literalList renders names as unordered list of inline literals.
func literalList(names []string) *Node {
	list := &Node{Kind: KindList}
	for _, name := range names {
		list.Append(&Node{Kind: KindItem, Children: []*Node{newLiteral(name)}})
	}

	return list
}
