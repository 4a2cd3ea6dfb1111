/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package fileparse

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser reads delimited text files (package registry exports, service unit
// files, tool configuration) into lines or key-value maps.
type Parser struct {
	delimiter       string
	maxSize         int
	skipComments    bool
	kvDelimiter     string
	vDefault        string
	vTrimChars      string
	skipEmptyValues bool
	foldKeys        bool
}

// WithDelimiter sets the entry delimiter. Default is newline ("\n").
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the maximum file size in bytes. Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments controls skipping of lines starting with "#".
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key-value delimiter used by GetMap. Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithVDefault sets the value used for keys without an associated value.
// Default is an empty string.
func WithVDefault(vDefault string) Option {
	return func(p *Parser) {
		p.vDefault = vDefault
	}
}

// WithVTrimChars sets characters trimmed from values in GetMap, e.g. quotes
// around versions in registry exports. Default is no trimming.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// WithSkipEmptyValues drops entries whose value resolves to the empty string.
// Default is false.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// WithFoldKeys lowercases keys in GetMap so lookups are case-insensitive.
// Registry exports are not consistent about key casing. Default is false.
func WithFoldKeys(fold bool) Option {
	return func(p *Parser) {
		p.foldKeys = fold
	}
}

// NewParser creates a Parser with the provided options applied over the
// defaults: newline delimiter, 1MB max size, comments skipped, "=" key-value
// delimiter.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:    "\n",
		maxSize:      1 << 20,
		skipComments: true,
		kvDelimiter:  "=",
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetMap reads the file at path and parses its entries into key-value pairs
// using the configured delimiter. Entries without the delimiter get the
// configured default value. Returns an error if the file cannot be read.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	parts, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string)
	for _, part := range parts {
		kv := strings.SplitN(part, p.kvDelimiter, 2)
		key := strings.TrimSpace(kv[0])
		if p.foldKeys {
			key = strings.ToLower(key)
		}

		if len(kv) != 2 {
			slog.Debug("entry without value, using default",
				"entry", part,
				"delimiter", p.kvDelimiter,
			)
			if p.skipEmptyValues && p.vDefault == "" {
				continue
			}
			result[key] = p.vDefault
			continue
		}

		value := strings.TrimSpace(kv[1])
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}
		if p.skipEmptyValues && value == "" {
			slog.Debug("skipping entry with empty value", "key", key)
			continue
		}

		result[key] = value
	}

	return result, nil
}

// GetLines reads the file at path and splits its content into non-empty,
// trimmed entries using the configured delimiter. An error is returned if the
// file cannot be read, exceeds the maximum size, or is not valid UTF-8.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	parts := strings.Split(string(b), p.delimiter)

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		cleanPart := strings.TrimSpace(part)
		if cleanPart == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(cleanPart, "#") {
			continue
		}
		result = append(result, cleanPart)
	}

	return result, nil
}
