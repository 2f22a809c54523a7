// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"strconv"
	"strings"
	"unicode"
)

// Location is a canonical schema location: document identity plus pointer.
// Document is empty for the primary document.
type Location struct {
	Document string
	Pointer  string
}

// NewLocation builds location from document identity and parsed pointer.
func NewLocation(document string, p Pointer) Location {
	return Location{Document: document, Pointer: p.String()}
}

// String returns "document#pointer" text.
func (l Location) String() string {
	return l.Document + "#" + l.Pointer
}

// TargetState describes the rendering progress of a tracked location.
type TargetState uint8

const (
	// TargetDeclared is a planned target not rendered yet.
	TargetDeclared TargetState = iota
	// TargetExpanding is being rendered right now.
	TargetExpanding
	// TargetRendered has been rendered in full once.
	TargetRendered
)

// ReferenceEntry is one tracked location and its assigned target identifier.
type ReferenceEntry struct {
	Location Location
	ID       string
	State    TargetState
}

// Tracker assigns stable target identifiers to schema locations during one render call.
// A Tracker must not be shared between concurrent render calls.
type Tracker struct {
	prefix  string
	entries map[Location]*ReferenceEntry
	order   []Location
	ids     map[string]struct{}
}

// NewTracker creates empty tracker; prefix is prepended to every identifier.
func NewTracker(prefix string) *Tracker {
	return &Tracker{
		prefix:  prefix,
		entries: make(map[Location]*ReferenceEntry),
		ids:     make(map[string]struct{}),
	}
}

// Target returns identifier for location, creating an expanding entry on first call.
// alreadyRendered is false only for the call that created the entry.
func (t *Tracker) Target(loc Location) (string, bool) {
	if entry, ok := t.entries[loc]; ok {
		return entry.ID, true
	}

	entry := t.add(loc, TargetExpanding)
	return entry.ID, false
}

// Declare registers planned target for location and returns its identifier.
// Declaring a known location keeps its current state.
func (t *Tracker) Declare(loc Location) string {
	if entry, ok := t.entries[loc]; ok {
		return entry.ID
	}

	return t.add(loc, TargetDeclared).ID
}

// Begin moves location to expanding state, creating it when unknown.
func (t *Tracker) Begin(loc Location) string {
	entry, ok := t.entries[loc]
	if !ok {
		return t.add(loc, TargetExpanding).ID
	}

	entry.State = TargetExpanding
	return entry.ID
}

// MarkRendered records that location has been rendered in full.
func (t *Tracker) MarkRendered(loc Location) {
	if entry, ok := t.entries[loc]; ok {
		entry.State = TargetRendered
	}
}

// Lookup returns tracked entry for location.
func (t *Tracker) Lookup(loc Location) (ReferenceEntry, bool) {
	entry, ok := t.entries[loc]
	if !ok {
		return ReferenceEntry{}, false
	}

	return *entry, true
}

// Entries returns tracked entries in creation order.
func (t *Tracker) Entries() []ReferenceEntry {
	out := make([]ReferenceEntry, 0, len(t.order))
	for _, loc := range t.order {
		out = append(out, *t.entries[loc])
	}

	return out
}

// add creates entry with unique deterministic identifier.
func (t *Tracker) add(loc Location, state TargetState) *ReferenceEntry {
	base := t.prefix + targetSlug(loc)
	id := base
	for n := 2; ; n++ {
		if _, taken := t.ids[id]; !taken {
			break
		}

		id = base + "-" + strconv.Itoa(n)
	}

	t.ids[id] = struct{}{}
	entry := &ReferenceEntry{Location: loc, ID: id, State: state}
	t.entries[loc] = entry
	t.order = append(t.order, loc)
	return entry
}

// targetSlug converts location into anchor-safe identifier text.
func targetSlug(loc Location) string {
	text := loc.Pointer
	if doc := strings.TrimSpace(loc.Document); doc != "" {
		if slash := strings.LastIndexAny(doc, `/\`); slash >= 0 {
			doc = doc[slash+1:]
		}

		text = doc + "/" + text
	}

	slug := anchorSlug(text)
	if slug == "" {
		return "root"
	}

	return slug
}

// anchorSlug lowercases text and joins letter/digit runs with single dashes.
func anchorSlug(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}

	var out strings.Builder
	out.Grow(len(trimmed))

	lastDash := false
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			out.WriteRune(r)
			lastDash = false
		default:
			if lastDash || out.Len() == 0 {
				continue
			}

			out.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(out.String(), "-")
}
