// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"fmt"
	"strings"
)

// transforms is the per-call view configuration built from Options.
// Patterns are relative to the rendered schema root of the primary document.
type transforms struct {
	hide        []Pattern
	hideIfEmpty []Pattern
	pass        []Pattern
	passAll     bool

	liftTitle       bool
	liftDescription bool
	liftDefinitions bool

	// problems lists malformed option values rendered as warnings.
	problems []error
}

// newTransforms validates pattern options; malformed ones are reported, not fatal.
func newTransforms(opt Options) transforms {
	t := transforms{
		liftTitle:       opt.LiftTitle,
		liftDescription: opt.LiftDescription,
		liftDefinitions: opt.LiftDefinitions,
	}

	t.hide = t.parsePatterns("hide_key", opt.HideKey)
	t.hideIfEmpty = t.parsePatterns("hide_key_if_empty", opt.HideKeyIfEmpty)

	for _, text := range opt.PassUnmodified {
		if strings.EqualFold(strings.TrimSpace(text), PassAll) {
			t.passAll = true
		}
	}

	if !t.passAll {
		t.pass = t.parsePatterns("pass_unmodified", opt.PassUnmodified)
	}

	return t
}

// parsePatterns parses option patterns and records failures.
func (t *transforms) parsePatterns(option string, texts []string) []Pattern {
	out := make([]Pattern, 0, len(texts))
	for _, text := range texts {
		pattern, err := ParsePattern(strings.TrimSpace(text))
		if err != nil {
			t.problems = append(t.problems, fmt.Errorf("option %s: %w", option, err))
			continue
		}

		out = append(out, pattern)
	}

	return out
}

// hidden reports whether view location is excised; value is the location content.
// Only exact matches are checked here because traversal never enters hidden parents.
func (t *transforms) hidden(location Pointer, value Value) bool {
	for _, pattern := range t.hide {
		if pattern.Match(location) {
			return true
		}
	}

	if !value.IsEmpty() {
		return false
	}

	for _, pattern := range t.hideIfEmpty {
		if pattern.Match(location) {
			return true
		}
	}

	return false
}

// verbatim reports whether view location is shown unmodified.
func (t *transforms) verbatim(location Pointer) bool {
	if t.passAll {
		return true
	}

	for _, pattern := range t.pass {
		if pattern.Covers(location) {
			return true
		}
	}

	return false
}

// liftedParts holds values moved from a schema body to its container.
type liftedParts struct {
	title       string
	description []string
	keys        map[string]struct{}
}

// skip reports whether key was lifted out of the keyword table.
func (l liftedParts) skip(key string) bool {
	_, ok := l.keys[key]
	return ok
}

// lift selects title/description/definitions to relocate from schema body.
// visible reports whether a keyword survives hiding; hides apply before lifts.
func (t *transforms) lift(schema Value, visible func(key string, value Value) bool) liftedParts {
	out := liftedParts{keys: make(map[string]struct{}, 3)}

	if t.liftTitle {
		if value, ok := schema.Get("title"); ok && visible("title", value) {
			if text, ok := value.Str(); ok {
				out.title = text
				out.keys["title"] = struct{}{}
			}
		}
	}

	if t.liftDescription {
		for _, key := range []string{"description", "$$description"} {
			value, ok := schema.Get(key)
			if !ok || !visible(key, value) {
				continue
			}

			if paragraphs, ok := value.StringList(); ok {
				out.description = append(out.description, paragraphs...)
				out.keys[key] = struct{}{}
			}
		}
	}

	if t.liftDefinitions {
		if value, ok := schema.Get("definitions"); ok && value.IsObject() {
			out.keys["definitions"] = struct{}{}
		}
	}

	return out
}
