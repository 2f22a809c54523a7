// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"encoding/csv"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultMaxDepth bounds schema nesting not broken by reference tracking.
	DefaultMaxDepth = 100
	// DefaultTimeout bounds schema downloads.
	DefaultTimeout = 30 * time.Second
	// DefaultEncoding is used for schema files when caller does not set one.
	DefaultEncoding = "utf-8"
	// PassAll is the pass_unmodified value that applies to every location.
	PassAll = "all"
)

// LiteralFormat selects the notation of default, const and example blocks.
type LiteralFormat string

const (
	// LiteralJSON renders value blocks as indented JSON.
	LiteralJSON LiteralFormat = "json"
	// LiteralYAML renders value blocks as YAML.
	LiteralYAML LiteralFormat = "yaml"
)

// ParseLiteralFormat parses format name; empty text selects LiteralJSON.
func ParseLiteralFormat(text string) (LiteralFormat, error) {
	switch LiteralFormat(strings.ToLower(strings.TrimSpace(text))) {
	case "", LiteralJSON:
		return LiteralJSON, nil
	case LiteralYAML, "yml":
		return LiteralYAML, nil
	default:
		return "", fmt.Errorf("%w: literal format %q: choose from \"json\" or \"yaml\"", ErrInvalidFlag, text)
	}
}

// Resolver loads external documents referenced by $ref.
type Resolver interface {
	// Document returns parsed document for absolute or base-relative URI without fragment.
	Document(uri string) (Value, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(uri string) (Value, error)

// Document calls f.
func (f ResolverFunc) Document(uri string) (Value, error) {
	return f(uri)
}

// Options configures one render call. The zero value renders with all
// transforms disabled.
type Options struct {
	// LiftTitle renders section titles as headings instead of table rows.
	LiftTitle bool
	// LiftDescription renders section descriptions as leading paragraphs.
	LiftDescription bool
	// LiftDefinitions moves every definitions keyword into the root appendix.
	LiftDefinitions bool
	// AutoTarget declares every definition as a cross-reference target.
	AutoTarget bool
	// AutoReference renders repeated references as links to one expansion.
	AutoReference bool

	// HideKey lists pointer patterns excised from output.
	HideKey []string
	// HideKeyIfEmpty lists pointer patterns excised when their value is empty.
	HideKeyIfEmpty []string
	// PassUnmodified lists pointer patterns shown verbatim, or the single entry "all".
	PassUnmodified []string

	// Encoding is the source file encoding name.
	Encoding string
	// Timeout bounds URL downloads; negative disables the limit.
	Timeout time.Duration
	// MaxDepth bounds recursion; zero selects DefaultMaxDepth.
	MaxDepth int
	// TargetPrefix is prepended to generated target identifiers.
	TargetPrefix string
	// LiteralFormat selects value block notation; empty selects LiteralJSON.
	LiteralFormat LiteralFormat

	// BaseDir resolves relative file sources and external references.
	BaseDir string
	// Document is the identity of the rendered document used for external references.
	Document string
	// Resolver loads external $ref documents; nil makes external refs unresolvable.
	Resolver Resolver
	// Logger receives rendering diagnostics; nil discards them.
	Logger Logger
}

// Overrides holds per-invocation option values; nil fields keep the global value.
type Overrides struct {
	LiftTitle       *bool
	LiftDescription *bool
	LiftDefinitions *bool
	AutoTarget      *bool
	AutoReference   *bool
	HideKey         []string
	HideKeyIfEmpty  []string
	PassUnmodified  []string
	Encoding        *string
	Timeout         *time.Duration
}

// Apply returns copy of o with non-nil override values applied.
// Override lists replace global lists when non-empty.
func (o Options) Apply(local Overrides) Options {
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	setBool(&o.LiftTitle, local.LiftTitle)
	setBool(&o.LiftDescription, local.LiftDescription)
	setBool(&o.LiftDefinitions, local.LiftDefinitions)
	setBool(&o.AutoTarget, local.AutoTarget)
	setBool(&o.AutoReference, local.AutoReference)

	if len(local.HideKey) > 0 {
		o.HideKey = slices.Clone(local.HideKey)
	}

	if len(local.HideKeyIfEmpty) > 0 {
		o.HideKeyIfEmpty = slices.Clone(local.HideKeyIfEmpty)
	}

	if len(local.PassUnmodified) > 0 {
		o.PassUnmodified = slices.Clone(local.PassUnmodified)
	}

	if local.Encoding != nil {
		o.Encoding = *local.Encoding
	}

	if local.Timeout != nil {
		o.Timeout = *local.Timeout
	}

	return o
}

// tracking reports whether reference tracker is engaged.
func (o Options) tracking() bool {
	return o.AutoTarget || o.AutoReference
}

// normalized fills defaults without touching caller value.
func (o Options) normalized() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}

	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}

	if strings.TrimSpace(o.Encoding) == "" {
		o.Encoding = DefaultEncoding
	}

	if o.LiteralFormat == "" {
		o.LiteralFormat = LiteralJSON
	}

	if o.Logger == nil {
		o.Logger = NopLogger{}
	}

	return o
}

// ParseFlag parses directive flag text: "on"/"true" and "off"/"false"
// in any case. Empty text means the flag is present, so true.
func ParseFlag(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "on", "true":
		return true, nil
	case "off", "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w %q: choose from \"On\", \"True\", \"Off\" or \"False\"", ErrInvalidFlag, text)
	}
}

// SplitKeyList splits comma separated pointer list with CSV quoting, so
// pointers containing commas can be quoted.
func SplitKeyList(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty key list", ErrInvalidFlag)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.TrimLeadingSpace = true
	record, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: key list %q: %w", ErrInvalidFlag, text, err)
	}

	out := make([]string, 0, len(record))
	for _, item := range record {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}

	return out, nil
}
