// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import "strings"

// NodeKind identifies the role of a document node.
type NodeKind uint8

const (
	// KindSection is a titled container; Title is the heading, Target an optional anchor.
	KindSection NodeKind = iota + 1
	// KindParagraph groups inline children or holds Text.
	KindParagraph
	// KindText is inline plain text.
	KindText
	// KindLiteral is inline verbatim text.
	KindLiteral
	// KindLiteralBlock is a verbatim block; Title holds the language hint.
	KindLiteralBlock
	// KindTable holds KindRow children.
	KindTable
	// KindRow is a labeled entry; Title is the label, Text an annotation such as "required".
	KindRow
	// KindList holds KindItem children; Ordered selects numbering.
	KindList
	// KindItem is one list entry; Title is an optional label.
	KindItem
	// KindReference links to Target; Text is the link text.
	KindReference
	// KindWarning reports a localized rendering problem.
	KindWarning
)

var nodeKindNames = map[NodeKind]string{
	KindSection:      "section",
	KindParagraph:    "paragraph",
	KindText:         "text",
	KindLiteral:      "literal",
	KindLiteralBlock: "literal_block",
	KindTable:        "table",
	KindRow:          "row",
	KindList:         "list",
	KindItem:         "item",
	KindReference:    "reference",
	KindWarning:      "warning",
}

// String returns kind name.
func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}

	return "unknown"
}

// Node is one unit of the rendered document tree. Each node owns its children.
type Node struct {
	Kind     NodeKind
	Title    string
	Text     string
	Target   string
	Ordered  bool
	Children []*Node
}

// Append adds non-nil children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}

	return n
}

// Walk visits n and descendants depth-first in order; returning false skips children.
func (n *Node) Walk(visit func(node *Node, depth int) bool) {
	n.walk(visit, 0)
}

func (n *Node) walk(visit func(node *Node, depth int) bool, depth int) {
	if n == nil || !visit(n, depth) {
		return
	}

	for _, child := range n.Children {
		child.walk(visit, depth+1)
	}
}

// Find returns all descendant nodes (including n) matching predicate in document order.
func (n *Node) Find(match func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(node *Node, _ int) bool {
		if match(node) {
			out = append(out, node)
		}

		return true
	})

	return out
}

// FindKind returns all nodes of kind in document order.
func (n *Node) FindKind(kind NodeKind) []*Node {
	return n.Find(func(node *Node) bool { return node.Kind == kind })
}

// Row returns direct table row child with label, looking through a single table child.
func (n *Node) Row(label string) *Node {
	if n == nil {
		return nil
	}

	for _, child := range n.Children {
		switch child.Kind {
		case KindRow:
			if child.Title == label {
				return child
			}
		case KindTable:
			if row := child.Row(label); row != nil {
				return row
			}
		}
	}

	return nil
}

// PlainText joins titles and texts of n and descendants with spaces.
func (n *Node) PlainText() string {
	parts := make([]string, 0, 8)
	n.Walk(func(node *Node, _ int) bool {
		if node.Title != "" && node.Kind != KindLiteralBlock {
			parts = append(parts, node.Title)
		}

		if node.Text != "" {
			parts = append(parts, node.Text)
		}

		return true
	})

	return strings.Join(parts, " ")
}

func newText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

func newLiteral(text string) *Node {
	return &Node{Kind: KindLiteral, Text: text}
}

func newParagraph(text string) *Node {
	return &Node{Kind: KindParagraph, Text: text}
}

func newRow(label string, children ...*Node) *Node {
	return (&Node{Kind: KindRow, Title: label}).Append(children...)
}

func newWarning(err error) *Node {
	return &Node{Kind: KindWarning, Text: err.Error()}
}
