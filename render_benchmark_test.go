// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkParse measures ordered schema decoding cost.
func BenchmarkParse(b *testing.B) {
	schemaBytes := readBenchmarkFile(b, filepath.Join("testdata", "service.schema.json"))

	b.ReportAllocs()
	b.SetBytes(int64(len(schemaBytes)))

	for i := 0; i < b.N; i++ {
		if _, err := Parse(schemaBytes); err != nil {
			b.Fatalf("Parse: %v", err)
		}
	}
}

// BenchmarkRenderPlain measures tree building with every reference expanded in place.
func BenchmarkRenderPlain(b *testing.B) {
	benchmarkRender(b, Options{})
}

// BenchmarkRenderTracked measures tree building with reference tracking and lifts.
func BenchmarkRenderTracked(b *testing.B) {
	benchmarkRender(b, Options{
		LiftTitle:       true,
		LiftDescription: true,
		AutoTarget:      true,
		HideKey:         []string{"/**/$schema"},
	})
}

// BenchmarkMarkdown measures markdown conversion of a rendered tree.
func BenchmarkMarkdown(b *testing.B) {
	root, err := RenderFile(filepath.Join("testdata", "service.schema.json"), Options{AutoReference: true})
	if err != nil {
		b.Fatalf("RenderFile: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if out := Markdown(root, MarkdownOptions{}); out == "" {
			b.Fatalf("empty markdown")
		}
	}
}

// BenchmarkRenderMarkdownFile measures read, resolve and render flow from file path.
func BenchmarkRenderMarkdownFile(b *testing.B) {
	schemaPath := filepath.Join("testdata", "service.schema.json")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := RenderMarkdown(schemaPath, Options{AutoReference: true}, MarkdownOptions{Title: "schema reference"})
		if err != nil {
			b.Fatalf("RenderMarkdown: %v", err)
		}
	}
}

// benchmarkRender runs in-memory render benchmark with local references only.
func benchmarkRender(b *testing.B, opt Options) {
	doc := mustParse(b, string(readBenchmarkFile(b, filepath.Join("testdata", "service.schema.json"))))
	opt.Resolver = ResolverFunc(func(string) (Value, error) {
		return mustParse(b, `{"definitions": {"Id": {"type": "string"}}}`), nil
	})

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Render(doc, opt); err != nil {
			b.Fatalf("Render: %v", err)
		}
	}
}

// readBenchmarkFile loads benchmark fixture file and fails benchmark on read errors.
func readBenchmarkFile(b *testing.B, path string) []byte {
	b.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatalf("read benchmark file %q: %v", path, err)
	}

	if len(data) == 0 {
		b.Fatalf("empty benchmark file: %s", path)
	}

	return data
}
