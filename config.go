// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// configFile is the TOML layout of a global options file:
//
//	[jsonschema]
//	lift_title = true
//	hide_key = ["/properties/secret"]
//	timeout = "10s"
type configFile struct {
	JSONSchema configOptions `toml:"jsonschema"`
}

// configOptions mirrors Options with TOML friendly duration text.
type configOptions struct {
	LiftTitle       *bool    `toml:"lift_title"`
	LiftDescription *bool    `toml:"lift_description"`
	LiftDefinitions *bool    `toml:"lift_definitions"`
	AutoTarget      *bool    `toml:"auto_target"`
	AutoReference   *bool    `toml:"auto_reference"`
	HideKey         []string `toml:"hide_key"`
	HideKeyIfEmpty  []string `toml:"hide_key_if_empty"`
	PassUnmodified  []string `toml:"pass_unmodified"`
	Encoding        *string  `toml:"encoding"`
	Timeout         string   `toml:"timeout"`
	MaxDepth        int      `toml:"max_depth"`
	TargetPrefix    string   `toml:"target_prefix"`
	LiteralFormat   string   `toml:"literal_format"`
}

// LoadConfig reads global options from TOML file.
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("%w %q: %w", ErrLoadConfig, path, err)
	}

	return ParseConfig(string(data))
}

// ParseConfig decodes global options from TOML text.
func ParseConfig(text string) (Options, error) {
	var file configFile
	meta, err := toml.Decode(text, &file)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return Options{}, fmt.Errorf("%w: unknown keys %s", ErrLoadConfig, strings.Join(keys, ", "))
	}

	section := file.JSONSchema
	overrides := Overrides{
		LiftTitle:       section.LiftTitle,
		LiftDescription: section.LiftDescription,
		LiftDefinitions: section.LiftDefinitions,
		AutoTarget:      section.AutoTarget,
		AutoReference:   section.AutoReference,
		HideKey:         section.HideKey,
		HideKeyIfEmpty:  section.HideKeyIfEmpty,
		PassUnmodified:  section.PassUnmodified,
		Encoding:        section.Encoding,
	}

	if text := strings.TrimSpace(section.Timeout); text != "" {
		timeout, err := time.ParseDuration(text)
		if err != nil {
			return Options{}, fmt.Errorf("%w: timeout: %w", ErrLoadConfig, err)
		}

		overrides.Timeout = &timeout
	}

	opt := Options{}.Apply(overrides)
	opt.MaxDepth = section.MaxDepth
	opt.TargetPrefix = section.TargetPrefix

	format, err := ParseLiteralFormat(section.LiteralFormat)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	opt.LiteralFormat = format
	return opt, nil
}
