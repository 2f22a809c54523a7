// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

const (
	// wildcardOne matches exactly one pointer segment.
	wildcardOne = "*"
	// wildcardAny matches zero or more pointer segments.
	wildcardAny = "**"
)

// Pattern is a pointer that may contain "*" and "**" wildcard segments.
// It selects locations for hide_key, hide_key_if_empty and pass_unmodified.
type Pattern struct {
	text     string
	segments Pointer
}

// ParsePattern parses pattern text. A pattern must not end with a wildcard
// and must not contain two wildcard segments in a row.
func ParsePattern(text string) (Pattern, error) {
	if text == "" {
		return Pattern{}, &PointerError{Pointer: text, Segment: -1, Message: "empty pattern selects the whole document"}
	}

	p, err := ParsePointer(text)
	if err != nil {
		return Pattern{}, err
	}

	if isWildcard(p.Last()) {
		return Pattern{}, &PointerError{Pointer: text, Segment: len(p) - 1, Message: "pattern must not end with a wildcard"}
	}

	for i := 1; i < len(p); i++ {
		if isWildcard(p[i-1]) && isWildcard(p[i]) {
			return Pattern{}, &PointerError{Pointer: text, Segment: i, Message: "consecutive wildcards"}
		}
	}

	return Pattern{text: text, segments: p}, nil
}

// String returns original pattern text.
func (pt Pattern) String() string {
	return pt.text
}

// Match reports whether location is selected by the pattern exactly.
func (pt Pattern) Match(location Pointer) bool {
	return matchSegments(pt.segments, location)
}

// Covers reports whether location is selected or descends from a selected location.
func (pt Pattern) Covers(location Pointer) bool {
	for n := len(location); n >= 0; n-- {
		if matchSegments(pt.segments, location[:n]) {
			return true
		}
	}

	return false
}

// matchSegments matches pattern segments against location segments.
func matchSegments(pattern, location Pointer) bool {
	if len(pattern) == 0 {
		return len(location) == 0
	}

	switch pattern[0] {
	case wildcardAny:
		for skip := 0; skip <= len(location); skip++ {
			if matchSegments(pattern[1:], location[skip:]) {
				return true
			}
		}

		return false
	case wildcardOne:
		if len(location) == 0 {
			return false
		}

		return matchSegments(pattern[1:], location[1:])
	default:
		if len(location) == 0 || location[0] != pattern[0] {
			return false
		}

		return matchSegments(pattern[1:], location[1:])
	}
}

// isWildcard reports whether segment is a wildcard token.
func isWildcard(segment string) bool {
	return segment == wildcardOne || segment == wildcardAny
}
