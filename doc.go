// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

// Package schematree renders JSON Schema (draft 4) documents as documentation trees.
//
// A render call walks the schema keyword by keyword and builds a *Node tree of
// sections, keyword tables, lists, literal blocks, links and warnings. The tree
// is backend neutral; Markdown converts it into CommonMark text.
//
// Render from file, optionally addressing a subschema with a JSON pointer:
//
//	root, err := schematree.RenderFile("schema.json#/definitions/Config", schematree.Options{
//		LiftTitle:       true,
//		LiftDescription: true,
//		AutoReference:   true,
//	})
//	if err != nil {
//		return err
//	}
//
//	fmt.Print(schematree.Markdown(root, schematree.MarkdownOptions{WrapWidth: 100}))
//
// Render in-memory document:
//
//	doc, err := schematree.Parse(schemaBytes)
//	if err != nil {
//		return err
//	}
//
//	root, err := schematree.Render(doc, schematree.Options{
//		HideKey: []string{"/properties/*/examples", "/**/$comment"},
//	})
//
// Hide and pass-through options take JSON pointer patterns relative to the
// rendered schema: "*" matches exactly one segment, "**" any number of segments.
// A hidden location is rendered as if it were absent, so a $ref into it does
// not resolve.
//
// With AutoTarget or AutoReference every location is expanded once; later
// references and recursive references render as links to the expansion.
// Recursion deeper than Options.MaxDepth aborts with ErrDepthExceeded.
//
// Global options may be loaded from the [jsonschema] table of a TOML file:
//
//	opt, err := schematree.LoadConfig("schematree.toml")
//	if err != nil {
//		return err
//	}
//
//	local := opt.Apply(schematree.Overrides{HideKey: []string{"/definitions"}})
package schematree
