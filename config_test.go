// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	opt, err := ParseConfig(`
[jsonschema]
lift_title = true
auto_reference = true
hide_key = ["/properties/secret", "/**/$comment"]
pass_unmodified = ["all"]
encoding = "windows-1252"
timeout = "5s"
max_depth = 12
target_prefix = "cfg-"
literal_format = "yml"
`)
	require.NoError(t, err)

	require.True(t, opt.LiftTitle)
	require.False(t, opt.LiftDescription)
	require.True(t, opt.AutoReference)
	require.Equal(t, []string{"/properties/secret", "/**/$comment"}, opt.HideKey)
	require.Equal(t, []string{"all"}, opt.PassUnmodified)
	require.Equal(t, "windows-1252", opt.Encoding)
	require.Equal(t, 5*time.Second, opt.Timeout)
	require.Equal(t, 12, opt.MaxDepth)
	require.Equal(t, "cfg-", opt.TargetPrefix)
	require.Equal(t, LiteralYAML, opt.LiteralFormat)
}

func TestParseConfigEmptyKeepsDefaults(t *testing.T) {
	t.Parallel()

	opt, err := ParseConfig("")
	require.NoError(t, err)
	require.Equal(t, Options{LiteralFormat: LiteralJSON}, opt)
}

func TestParseConfigRejectsBadInput(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown key":    "[jsonschema]\nlift_everything = true\n",
		"bad duration":   "[jsonschema]\ntimeout = \"soon\"\n",
		"bad format":     "[jsonschema]\nliteral_format = \"xml\"\n",
		"wrong type":     "[jsonschema]\nlift_title = \"yes\"\n",
		"broken toml":    "[jsonschema\n",
		"unknown tables": "[other]\nkey = 1\n",
	}

	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseConfig(text)
			require.ErrorIs(t, err, ErrLoadConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schematree.toml")
	require.NoError(t, os.WriteFile(path, []byte("[jsonschema]\nlift_definitions = true\n"), 0o600))

	opt, err := LoadConfig(path)
	require.NoError(t, err)
	require.True(t, opt.LiftDefinitions)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, ErrLoadConfig)
}

func TestOptionsApplyOverrides(t *testing.T) {
	t.Parallel()

	global := Options{
		LiftTitle:      true,
		AutoTarget:     true,
		HideKey:        []string{"/definitions"},
		PassUnmodified: []string{"/examples"},
		Encoding:       "utf-8",
	}

	off := false
	encoding := "latin1"
	timeout := time.Second
	local := global.Apply(Overrides{
		LiftTitle: &off,
		HideKey:   []string{"/properties/a"},
		Encoding:  &encoding,
		Timeout:   &timeout,
	})

	require.False(t, local.LiftTitle)
	require.True(t, local.AutoTarget)
	require.Equal(t, []string{"/properties/a"}, local.HideKey)
	require.Equal(t, []string{"/examples"}, local.PassUnmodified)
	require.Equal(t, "latin1", local.Encoding)
	require.Equal(t, time.Second, local.Timeout)

	require.True(t, global.LiftTitle, "apply must not modify receiver")
	require.Equal(t, []string{"/definitions"}, global.HideKey)
}

func TestParseFlag(t *testing.T) {
	t.Parallel()

	for text, want := range map[string]bool{"": true, "On": true, "TRUE": true, " off ": false, "False": false} {
		got, err := ParseFlag(text)
		require.NoError(t, err, text)
		require.Equal(t, want, got, text)
	}

	_, err := ParseFlag("yes")
	require.ErrorIs(t, err, ErrInvalidFlag)
}

func TestParseLiteralFormat(t *testing.T) {
	t.Parallel()

	for text, want := range map[string]LiteralFormat{"": LiteralJSON, "JSON": LiteralJSON, "yaml": LiteralYAML, " yml ": LiteralYAML} {
		got, err := ParseLiteralFormat(text)
		require.NoError(t, err, text)
		require.Equal(t, want, got, text)
	}

	_, err := ParseLiteralFormat("toml")
	require.ErrorIs(t, err, ErrInvalidFlag)
}

func TestSplitKeyList(t *testing.T) {
	t.Parallel()

	got, err := SplitKeyList(`/definitions, /properties/*/title,"/properties/a,b"`)
	require.NoError(t, err)
	require.Equal(t, []string{"/definitions", "/properties/*/title", "/properties/a,b"}, got)

	_, err = SplitKeyList("   ")
	require.ErrorIs(t, err, ErrInvalidFlag)

	_, err = SplitKeyList(`"/unterminated`)
	require.ErrorIs(t, err, ErrInvalidFlag)
}
