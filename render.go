// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"context"
	"fmt"
)

// Render converts schema value into a document tree rooted at one section.
func Render(schema Value, opt Options) (*Node, error) {
	return RenderAt(schema, nil, opt)
}

// RenderAt renders the subschema of document addressed by start.
// Hide and pass-through patterns are relative to start.
func RenderAt(document Value, start Pointer, opt Options) (*Node, error) {
	value, err := Resolve(document, start)
	if err != nil {
		return nil, err
	}

	return newRenderer(document, start, opt).run(value)
}

// RenderBytes decodes JSON or YAML schema text and renders it.
func RenderBytes(data []byte, opt Options) (*Node, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return Render(doc, opt)
}

// RenderAny converts in-memory Go value (maps, slices, scalars, structs) and renders it.
func RenderAny(schema any, opt Options) (*Node, error) {
	doc, err := FromAny(schema)
	if err != nil {
		return nil, err
	}

	return Render(doc, opt)
}

// RenderFile loads schema from file path or URL with optional "#pointer" suffix
// and renders addressed subschema. External references resolve relative to the source
// unless opt.Resolver is set.
func RenderFile(ref string, opt Options) (*Node, error) {
	src, err := LoadSource(context.Background(), ref, opt)
	if err != nil {
		return nil, err
	}

	opt.Document = src.Document
	if opt.Resolver == nil {
		opt.Resolver = NewFileResolver(opt)
	}

	return RenderAt(src.Root, src.Pointer, opt)
}

// RenderMarkdown renders schema file reference straight into markdown text.
func RenderMarkdown(ref string, opt Options, md MarkdownOptions) (string, error) {
	root, err := RenderFile(ref, opt)
	if err != nil {
		return "", fmt.Errorf("render %q: %w", ref, err)
	}

	return Markdown(root, md), nil
}
