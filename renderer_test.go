// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderKeywordTable(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"type": "string", "minLength": 1, "x-vendor": {"a": 1}}`, Options{})
	want := sectionNode("",
		tableNode(
			rowNode("type", literalNode("string")),
			rowNode("minLength", literalNode("1")),
			rowNode("x-vendor", &Node{Kind: KindLiteralBlock, Title: "json", Text: "{\n  \"a\": 1\n}"}),
		),
	)

	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLiftTitleAndDescription(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"title": "T", "description": "D", "type": "object"}`, Options{
		LiftTitle:       true,
		LiftDescription: true,
	})

	want := &Node{Kind: KindSection, Title: "T", Children: []*Node{
		{Kind: KindParagraph, Text: "D"},
		tableNode(rowNode("type", literalNode("object"))),
	}}

	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLiftDescriptionOnNestedSchemas(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{
		"description": "Root.",
		"properties": {"a": {"description": ["One.", "Two."], "type": "string"}}
	}`, Options{LiftDescription: true})

	want := sectionNode("",
		&Node{Kind: KindParagraph, Text: "Root."},
		tableNode(
			rowNode("properties", tableNode(
				rowNode("a", &Node{Kind: KindTable, Text: "One.\n\nTwo.", Children: []*Node{
					rowNode("type", literalNode("string")),
				}}),
			)),
		),
	)

	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderDescriptionArrayAsParagraphs(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"description": ["First.", "Second."]}`, Options{})
	row := root.Row("description")
	if row == nil {
		t.Fatalf("description row missing:\n%s", root.PlainText())
	}

	want := rowNode("description", &Node{Kind: KindParagraph, Text: "First."}, &Node{Kind: KindParagraph, Text: "Second."})
	if diff := cmp.Diff(want, row); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHiddenKeyEqualsRemovedKey(t *testing.T) {
	t.Parallel()

	full := `{
		"type": "object",
		"properties": {
			"a": {"type": "string", "description": "A"},
			"b": {"$ref": "#/definitions/B"}
		},
		"required": ["a", "b"],
		"definitions": {"B": {"type": "integer"}}
	}`
	stripped := `{
		"type": "object",
		"properties": {
			"a": {"type": "string", "description": "A"}
		},
		"required": ["a", "b"],
		"definitions": {}
	}`

	for _, opt := range []Options{{}, {AutoReference: true}, {AutoTarget: true, LiftTitle: true}} {
		hidden := opt
		hidden.HideKey = []string{"/properties/b", "/definitions/B"}

		want := renderJSON(t, stripped, opt)
		got := renderJSON(t, full, hidden)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("hidden render differs from stripped schema (-want +got):\n%s", diff)
		}
	}
}

func TestRenderHiddenReferenceTargetIsUnresolvable(t *testing.T) {
	t.Parallel()

	schema := `{
		"properties": {"a": {"$ref": "#/definitions/X"}},
		"definitions": {"X": {"description": "SECRET", "properties": {"y": {"type": "string"}}}}
	}`

	for _, hide := range []string{"/definitions/X", "/definitions", "/**/X"} {
		for _, opt := range []Options{{}, {AutoReference: true}, {AutoTarget: true}} {
			opt.HideKey = []string{hide}
			logger := &recordingLogger{}
			opt.Logger = logger

			root := renderJSON(t, schema, opt)
			if strings.Contains(root.PlainText(), "SECRET") {
				t.Fatalf("hidden %s rendered through $ref:\n%s", hide, root.PlainText())
			}

			row := root.Row("properties").Row("a").Row("$ref")
			want := rowNode("$ref",
				literalNode("#/definitions/X"),
				&Node{Kind: KindWarning, Text: `unresolvable local reference "#/definitions/X": location "/definitions/X" is hidden`},
			)
			if diff := cmp.Diff(want, row); diff != "" {
				t.Fatalf("row mismatch for %s (-want +got):\n%s", hide, diff)
			}

			if logger.count() != 1 {
				t.Fatalf("expected one logged warning for %s, got %d", hide, logger.count())
			}
		}
	}

	root := renderJSON(t, `{
		"properties": {"a": {"$ref": "#/definitions/X/properties/y"}},
		"definitions": {"X": {"properties": {"y": {"type": "string"}}}}
	}`, Options{HideKey: []string{"/definitions/X"}})
	if root.Row("properties").Row("a").Row("$ref").Children[1].Kind != KindWarning {
		t.Fatalf("reference into hidden subtree must not resolve:\n%s", root.PlainText())
	}
}

func TestRenderHideKeyIfEmpty(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"properties": {"a": {"description": ""}, "b": {"description": "x"}}}`, Options{
		HideKeyIfEmpty: []string{"/properties/*/description"},
	})

	properties := root.Row("properties")
	if properties.Row("a").Row("description") != nil {
		t.Fatalf("empty description of a should be hidden")
	}

	if properties.Row("b").Row("description") == nil {
		t.Fatalf("description of b should stay")
	}
}

func TestRenderAutoTargetLinksToDefinitions(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{
		"properties": {"x": {"$ref": "#/definitions/T"}},
		"definitions": {"T": {"type": "string"}}
	}`, Options{AutoTarget: true})

	want := sectionNode("",
		tableNode(
			rowNode("properties", tableNode(
				rowNode("x", tableNode(
					rowNode("$ref", &Node{Kind: KindReference, Text: "#/definitions/T", Target: "definitions-t"}),
				)),
			)),
			rowNode("definitions", tableNode(
				rowNode("T", &Node{Kind: KindTable, Target: "definitions-t", Children: []*Node{
					rowNode("type", literalNode("string")),
				}}),
			)),
		),
	)

	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAutoReferenceExpandsFirstUse(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{
		"properties": {"x": {"$ref": "#/definitions/T"}},
		"definitions": {"T": {"type": "string"}}
	}`, Options{AutoReference: true})

	want := sectionNode("",
		tableNode(
			rowNode("properties", tableNode(
				rowNode("x", tableNode(
					rowNode("$ref",
						literalNode("#/definitions/T"),
						&Node{Kind: KindTable, Target: "definitions-t", Children: []*Node{
							rowNode("type", literalNode("string")),
						}},
					),
				)),
			)),
			rowNode("definitions", tableNode(
				rowNode("T", &Node{Kind: KindReference, Text: "#/definitions/T", Target: "definitions-t"}),
			)),
		),
	)

	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderReferenceAfterNaturalPositionLinks(t *testing.T) {
	t.Parallel()

	schema := `{"properties": {"a": {"description": "ONCE"}, "b": {"$ref": "#/properties/a"}}}`
	want := sectionNode("",
		tableNode(
			rowNode("properties", tableNode(
				rowNode("a", &Node{Kind: KindTable, Target: "properties-a", Children: []*Node{
					rowNode("description", &Node{Kind: KindParagraph, Text: "ONCE"}),
				}}),
				rowNode("b", tableNode(
					rowNode("$ref", &Node{Kind: KindReference, Text: "#/properties/a", Target: "properties-a"}),
				)),
			)),
		),
	)

	for _, opt := range []Options{{AutoReference: true}, {AutoTarget: true, AutoReference: true}} {
		root := renderJSON(t, schema, opt)
		if diff := cmp.Diff(want, root); diff != "" {
			t.Fatalf("tree mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRenderWithoutTrackingExpandsEveryReference(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{
		"properties": {
			"a": {"$ref": "#/definitions/T"},
			"b": {"$ref": "#/definitions/T"}
		},
		"definitions": {"T": {"type": "string"}}
	}`, Options{})

	if got := len(root.FindKind(KindReference)); got != 0 {
		t.Fatalf("expected no links without tracking, got %d", got)
	}

	types := root.Find(func(n *Node) bool { return n.Kind == KindRow && n.Title == "type" })
	if len(types) != 3 {
		t.Fatalf("expected 3 expansions of T, got %d", len(types))
	}
}

const cyclicSchema = `{
	"definitions": {
		"A": {"properties": {"b": {"$ref": "#/definitions/B"}}},
		"B": {"properties": {"a": {"$ref": "#/definitions/A"}}}
	},
	"$ref": "#/definitions/A"
}`

func TestRenderCycleWithTracking(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, cyclicSchema, Options{AutoReference: true})

	targets := root.Find(func(n *Node) bool { return n.Kind == KindTable && n.Target != "" })
	got := make([]string, 0, len(targets))
	for _, node := range targets {
		got = append(got, node.Target)
	}

	if diff := cmp.Diff([]string{"definitions-a", "definitions-b"}, got); diff != "" {
		t.Fatalf("each definition must be expanded once (-want +got):\n%s", diff)
	}

	links := map[string]int{}
	for _, link := range root.FindKind(KindReference) {
		if link.Target == "" {
			t.Fatalf("link %q has no target", link.Text)
		}

		links[link.Target]++
	}

	if diff := cmp.Diff(map[string]int{"definitions-a": 2, "definitions-b": 1}, links); diff != "" {
		t.Fatalf("link count mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCycleWithoutTracking(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, cyclicSchema, Options{})

	links := root.FindKind(KindReference)
	if len(links) == 0 {
		t.Fatalf("cycle must be broken by a link")
	}

	for _, link := range links {
		if link.Target != "" {
			t.Fatalf("untracked cycle link %q should have no target, got %q", link.Text, link.Target)
		}
	}
}

func TestRenderSelfReferenceAtRoot(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"properties": {"next": {"$ref": "#"}}}`, Options{AutoReference: true})
	if root.Target != "root" {
		t.Fatalf("root target = %q, want root", root.Target)
	}

	link := root.Row("properties").Row("next").Row("$ref")
	want := rowNode("$ref", &Node{Kind: KindReference, Text: "#", Target: "root"})
	if diff := cmp.Diff(want, link); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTargetPrefix(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{
		"properties": {"x": {"$ref": "#/definitions/T"}},
		"definitions": {"T": {"type": "string"}}
	}`, Options{AutoTarget: true, TargetPrefix: "cfg-"})

	link := root.FindKind(KindReference)
	if len(link) != 1 || link[0].Target != "cfg-definitions-t" {
		t.Fatalf("unexpected links: %+v", link)
	}
}

func TestRenderDependencies(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"dependencies": {"a": ["b", "c"], "d": {"required": ["e"]}}}`, Options{})
	want := sectionNode("",
		tableNode(
			rowNode("dependencies", tableNode(
				rowNode("a", textNode("requires"), listNode(itemNode(literalNode("b")), itemNode(literalNode("c")))),
				rowNode("d", textNode("when present, schema applies"), tableNode(
					rowNode("required", listNode(itemNode(literalNode("e")))),
				)),
			)),
		),
	)

	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRequiredMarksPropertyRows(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"properties": {"a": {}, "b": {}}, "required": ["b"]}`, Options{})
	properties := root.Row("properties")

	if got := properties.Row("a").Text; got != "" {
		t.Fatalf("a marker = %q, want empty", got)
	}

	if got := properties.Row("b").Text; got != "required" {
		t.Fatalf("b marker = %q, want required", got)
	}

	if root.Row("required") != nil {
		t.Fatalf("required keyword should be folded into property rows")
	}

	standalone := renderJSON(t, `{"required": ["x"]}`, Options{})
	want := rowNode("required", listNode(itemNode(literalNode("x"))))
	if diff := cmp.Diff(want, standalone.Row("required")); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTypeDisjunction(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"type": ["string", "null"]}`, Options{})
	want := rowNode("type", &Node{Kind: KindParagraph, Children: []*Node{
		literalNode("string"),
		textNode(" or "),
		literalNode("null"),
	}})

	if diff := cmp.Diff(want, root.Row("type")); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBooleanSchemasAndFlags(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"properties": {"any": true, "none": false}, "additionalProperties": false}`, Options{})
	properties := root.Row("properties")

	want := rowNode("any", &Node{Kind: KindParagraph, Text: "any value is valid"})
	if diff := cmp.Diff(want, properties.Row("any")); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}

	want = rowNode("none", &Node{Kind: KindParagraph, Text: "no value is valid"})
	if diff := cmp.Diff(want, properties.Row("none")); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}

	want = rowNode("additionalProperties", textNode("not allowed"))
	if diff := cmp.Diff(want, root.Row("additionalProperties")); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTupleItems(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"items": [{"type": "string"}, {"type": "integer"}]}`, Options{})
	want := rowNode("items", &Node{Kind: KindList, Ordered: true, Children: []*Node{
		{Kind: KindItem, Title: "0", Children: []*Node{tableNode(rowNode("type", literalNode("string")))}},
		{Kind: KindItem, Title: "1", Children: []*Node{tableNode(rowNode("type", literalNode("integer")))}},
	}})

	if diff := cmp.Diff(want, root.Row("items")); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderConditionalInFixedOrder(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"else": {"type": "null"}, "type": "object", "if": {"required": ["a"]}}`, Options{})
	table := root.Children[0]

	labels := make([]string, 0, len(table.Children))
	for _, row := range table.Children {
		labels = append(labels, row.Title)
	}

	if diff := cmp.Diff([]string{"conditional", "type"}, labels); diff != "" {
		t.Fatalf("row order mismatch (-want +got):\n%s", diff)
	}

	branches := make([]string, 0, 2)
	for _, row := range table.Children[0].Children[0].Children {
		branches = append(branches, row.Title)
	}

	if diff := cmp.Diff([]string{"if", "else"}, branches); diff != "" {
		t.Fatalf("branch order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLiftDefinitionsAppendix(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{
		"properties": {"a": {"definitions": {"Inner": {"type": "string"}}}},
		"definitions": {"Outer": {"title": "Outer Title", "type": "integer"}}
	}`, Options{LiftDefinitions: true, LiftTitle: true})

	if len(root.Children) != 3 {
		t.Fatalf("expected table and two appendix sections, got %d children", len(root.Children))
	}

	titles := []string{root.Children[1].Title, root.Children[2].Title}
	if diff := cmp.Diff([]string{"Inner", "Outer Title"}, titles); diff != "" {
		t.Fatalf("appendix mismatch (-want +got):\n%s", diff)
	}

	rows := root.Find(func(n *Node) bool { return n.Kind == KindRow && n.Title == "definitions" })
	if len(rows) != 0 {
		t.Fatalf("lifted definitions must not stay as rows")
	}
}

func TestRenderDepthExceeded(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"properties": {"a": {"properties": {"b": {"properties": {"c": {"type": "string"}}}}}}}`)

	_, err := Render(doc, Options{MaxDepth: 3})
	if !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("expected ErrDepthExceeded, got %v", err)
	}

	var depthErr *DepthExceededError
	if !errors.As(err, &depthErr) || depthErr.Limit != 3 {
		t.Fatalf("expected DepthExceededError with limit 3, got %#v", err)
	}

	if _, err := Render(doc, Options{MaxDepth: 4}); err != nil {
		t.Fatalf("render within limit: %v", err)
	}
}

func TestRenderUnsupportedValuesBecomeWarnings(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	root := renderJSON(t, `{"properties": {"a": 5}, "type": 7}`, Options{Logger: logger})

	typeRow := root.Row("type")
	if typeRow == nil || len(typeRow.Children) != 1 || typeRow.Children[0].Kind != KindWarning {
		t.Fatalf("type row should hold one warning: %+v", typeRow)
	}

	if !strings.Contains(typeRow.Children[0].Text, `keyword "type"`) {
		t.Fatalf("unexpected warning text %q", typeRow.Children[0].Text)
	}

	a := root.Row("properties").Row("a")
	if a == nil || a.Children[0].Kind != KindWarning {
		t.Fatalf("non-schema property should render a warning: %+v", a)
	}

	if got := logger.count(); got != 2 {
		t.Fatalf("expected 2 logged warnings, got %d", got)
	}
}

func TestRenderUnresolvableReference(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"$ref": "#/definitions/Missing"}`, Options{AutoReference: true})
	row := root.Row("$ref")
	if row == nil || len(row.Children) != 2 {
		t.Fatalf("expected literal and warning: %+v", row)
	}

	if row.Children[0].Kind != KindLiteral || row.Children[1].Kind != KindWarning {
		t.Fatalf("unexpected children kinds %s, %s", row.Children[0].Kind, row.Children[1].Kind)
	}

	if !strings.Contains(row.Children[1].Text, "unresolvable local reference") {
		t.Fatalf("unexpected warning text %q", row.Children[1].Text)
	}
}

func TestRenderMalformedPatternIsReported(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"type": "string"}`, Options{HideKey: []string{"/properties/*", "/type"}})
	if root.Children[0].Kind != KindWarning || !strings.Contains(root.Children[0].Text, "hide_key") {
		t.Fatalf("expected leading warning, got %+v", root.Children[0])
	}

	if root.Row("type") != nil {
		t.Fatalf("valid pattern must still apply")
	}
}

func TestRenderPassUnmodified(t *testing.T) {
	t.Parallel()

	schema := `{
		"properties": {"a": {"$ref": "#/definitions/X", "description": "*not emphasis*"}},
		"definitions": {"X": {"type": "string"}}
	}`

	root := renderJSON(t, schema, Options{PassUnmodified: []string{"/properties/a"}, AutoReference: true})
	a := root.Row("properties").Row("a")

	want := rowNode("$ref", literalNode("#/definitions/X"))
	if diff := cmp.Diff(want, a.Row("$ref")); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}

	want = rowNode("description", literalNode("*not emphasis*"))
	if diff := cmp.Diff(want, a.Row("description")); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}

	all := renderJSON(t, `{"description": ["a", "b"]}`, Options{PassUnmodified: []string{"All"}})
	want = rowNode("description", &Node{Kind: KindLiteralBlock, Text: "a\nb"})
	if diff := cmp.Diff(want, all.Row("description")); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAtUsesRelativePatterns(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"definitions": {
			"Item": {"properties": {"id": {"type": "string"}, "secret": {"type": "string"}}}
		}
	}`)

	root, err := RenderAt(doc, MustPointer("/definitions/Item"), Options{HideKey: []string{"/properties/secret"}})
	if err != nil {
		t.Fatalf("RenderAt: %v", err)
	}

	properties := root.Row("properties")
	if properties.Row("id") == nil || properties.Row("secret") != nil {
		t.Fatalf("unexpected properties: %s", properties.PlainText())
	}

	_, err = RenderAt(doc, MustPointer("/definitions/Missing"), Options{})
	if !errors.Is(err, ErrPointer) {
		t.Fatalf("expected ErrPointer, got %v", err)
	}
}

func TestRenderExternalReferences(t *testing.T) {
	t.Parallel()

	common := mustParse(t, `{
		"definitions": {
			"Id": {"$ref": "#/definitions/Uuid"},
			"Uuid": {"type": "string", "format": "uuid"}
		}
	}`)

	var loads []string
	resolver := ResolverFunc(func(uri string) (Value, error) {
		loads = append(loads, uri)
		if uri != "/schemas/common.json" {
			return Value{}, errors.New("not found")
		}

		return common, nil
	})

	root := renderJSON(t, `{
		"properties": {
			"id": {"$ref": "common.json#/definitions/Id"},
			"owner": {"$ref": "common.json#/definitions/Id"},
			"broken": {"$ref": "missing.json"}
		}
	}`, Options{Document: "/schemas/service.json", Resolver: resolver, AutoReference: true})

	properties := root.Row("properties")
	id := properties.Row("id").Row("$ref")
	if len(id.Children) != 2 || id.Children[1].Target != "common-json-definitions-id" {
		t.Fatalf("unexpected id expansion: %+v", id.Children)
	}

	if id.Children[1].Row("$ref").Children[1].Row("format") == nil {
		t.Fatalf("local reference inside external document must resolve against it:\n%s", root.PlainText())
	}

	owner := properties.Row("owner").Row("$ref")
	want := rowNode("$ref", &Node{Kind: KindReference, Text: "common.json#/definitions/Id", Target: "common-json-definitions-id"})
	if diff := cmp.Diff(want, owner); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}

	broken := properties.Row("broken").Row("$ref")
	if broken.Children[1].Kind != KindWarning || !strings.Contains(broken.Children[1].Text, "unresolvable external reference") {
		t.Fatalf("unexpected broken reference rendering: %+v", broken.Children)
	}

	if diff := cmp.Diff([]string{"/schemas/common.json", "/schemas/missing.json"}, loads); diff != "" {
		t.Fatalf("documents must be loaded once (-want +got):\n%s", diff)
	}
}

func TestRenderExternalReferenceWithoutResolver(t *testing.T) {
	t.Parallel()

	root := renderJSON(t, `{"$ref": "other.json#/definitions/X"}`, Options{})
	row := root.Row("$ref")
	if len(row.Children) != 2 || !strings.Contains(row.Children[1].Text, "no resolver") {
		t.Fatalf("unexpected rendering: %+v", row.Children)
	}
}

func TestRenderAny(t *testing.T) {
	t.Parallel()

	root, err := RenderAny(map[string]any{"type": "string", "title": "Name"}, Options{LiftTitle: true})
	if err != nil {
		t.Fatalf("RenderAny: %v", err)
	}

	if root.Title != "Name" || root.Row("type") == nil {
		t.Fatalf("unexpected tree: %s", root.PlainText())
	}
}

func TestJoinDocument(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base string
		ref  string
		want string
	}{
		{"", "common.json", "common.json"},
		{"/schemas/service.json", "common.json", "/schemas/common.json"},
		{"/schemas/service.json", "../shared/id.json", "/shared/id.json"},
		{"/schemas/service.json", "/abs/x.json", "/abs/x.json"},
		{"https://example.com/schemas/a.json", "b.json", "https://example.com/schemas/b.json"},
		{"/schemas/service.json", "https://example.com/c.json", "https://example.com/c.json"},
	}

	for _, tc := range cases {
		if got := joinDocument(tc.base, tc.ref); got != tc.want {
			t.Fatalf("joinDocument(%q, %q) = %q, want %q", tc.base, tc.ref, got, tc.want)
		}
	}
}

func renderJSON(t *testing.T, schema string, opt Options) *Node {
	t.Helper()

	root, err := Render(mustParse(t, schema), opt)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	return root
}

func mustParse(t testing.TB, text string) Value {
	t.Helper()

	doc, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	return doc
}

func sectionNode(title string, children ...*Node) *Node {
	return &Node{Kind: KindSection, Title: title, Children: children}
}

func tableNode(rows ...*Node) *Node {
	return &Node{Kind: KindTable, Children: rows}
}

func rowNode(label string, children ...*Node) *Node {
	return &Node{Kind: KindRow, Title: label, Children: children}
}

func listNode(items ...*Node) *Node {
	return &Node{Kind: KindList, Children: items}
}

func itemNode(children ...*Node) *Node {
	return &Node{Kind: KindItem, Children: children}
}

func literalNode(text string) *Node {
	return &Node{Kind: KindLiteral, Text: text}
}

func textNode(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}

func (l *recordingLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) With(...any) Logger { return l }

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warnings)
}
