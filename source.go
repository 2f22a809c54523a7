// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source is a loaded schema document and the pointer to render from it.
type Source struct {
	// Document is the document identity: cleaned absolute path or URL.
	Document string
	// Root is the whole parsed document.
	Root Value
	// Pointer addresses the rendered subschema inside Root.
	Pointer Pointer
}

// SplitSourceRef splits "location#pointer" at the last '#'.
func SplitSourceRef(ref string) (location string, fragment string) {
	index := strings.LastIndex(ref, "#")
	if index < 0 {
		return ref, ""
	}

	return ref[:index], ref[index+1:]
}

// LoadSource reads file or http(s) URL reference, decodes it with opt.Encoding,
// parses it and checks that the fragment pointer resolves.
func LoadSource(ctx context.Context, ref string, opt Options) (Source, error) {
	opt = opt.normalized()
	location, fragment := SplitSourceRef(ref)
	if strings.TrimSpace(location) == "" {
		return Source{}, fmt.Errorf("%w: empty source location", ErrReadSchemaFile)
	}

	pointer, err := ParseFragment(fragment)
	if err != nil {
		return Source{}, err
	}

	document := sourceIdentity(location, opt.BaseDir)
	data, err := readSource(ctx, document, opt)
	if err != nil {
		return Source{}, err
	}

	root, err := ParseEncoded(data, opt.Encoding)
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", document, err)
	}

	if _, err := Resolve(root, pointer); err != nil {
		return Source{}, err
	}

	return Source{Document: document, Root: root, Pointer: pointer}, nil
}

// ParseEncoded converts data from named encoding to UTF-8 and parses it.
// Encoding names follow the WHATWG encoding standard labels; a byte order mark overrides the name.
func ParseEncoded(data []byte, encoding string) (Value, error) {
	if strings.TrimSpace(encoding) == "" {
		encoding = DefaultEncoding
	}

	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return Value{}, fmt.Errorf("%w %q: %w", ErrUnknownEncoding, encoding, err)
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %s: %w", ErrDecodeSchema, encoding, err)
	}

	return Parse(decoded)
}

// isRemote reports whether location is an http or https URL.
func isRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}

// sourceIdentity returns URL unchanged and file path made absolute against baseDir.
func sourceIdentity(location, baseDir string) string {
	if isRemote(location) {
		return location
	}

	if !filepath.IsAbs(location) && baseDir != "" {
		location = filepath.Join(baseDir, location)
	}

	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}

	return filepath.Clean(location)
}

// readSource returns raw bytes of file or URL document.
func readSource(ctx context.Context, document string, opt Options) ([]byte, error) {
	if isRemote(document) {
		return fetchSource(ctx, document, opt.Timeout)
	}

	data, err := os.ReadFile(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	return data, nil
}

// fetchSource downloads document; non-200 status is an error.
func fetchSource(ctx context.Context, uri string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrFetchSchema, uri, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrFetchSchema, uri, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %q: status %s", ErrFetchSchema, uri, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrFetchSchema, uri, err)
	}

	return data, nil
}

// FileResolver loads external $ref documents from files and URLs.
// Each document is loaded once per resolver; it is safe for concurrent use.
type FileResolver struct {
	opt   Options
	mu    sync.Mutex
	cache map[string]Value
}

// NewFileResolver creates resolver using opt BaseDir, Encoding and Timeout.
func NewFileResolver(opt Options) *FileResolver {
	return &FileResolver{opt: opt, cache: make(map[string]Value)}
}

// Document returns parsed document for uri.
func (f *FileResolver) Document(uri string) (Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if doc, ok := f.cache[uri]; ok {
		return doc, nil
	}

	src, err := LoadSource(context.Background(), uri, f.opt)
	if err != nil {
		return Value{}, err
	}

	f.cache[uri] = src.Root
	return src.Root, nil
}
