// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown splits a lesson-plan document into heading-keyed sections.
//
// Only the first three ATX heading levels open sections and they share one
// flat key space. Everything else in the markdown dialect is treated as
// plain text and copied into the current section unchanged.
package markdown

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var headingPrefixes = []string{"# ", "## ", "### "}

// Sections maps a heading to the raw text under it. Each stored line is
// followed by a newline.
type Sections map[string]string

// Parse scans text line by line. A heading line opens the section named by
// its trimmed remainder, appending to it when the heading repeats. Lines
// before the first heading are dropped, as are lines after a heading with
// an empty remainder.
func Parse(text string) Sections {
	s := make(Sections)
	current := ""
	for line := range strings.Lines(text) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if key, ok := heading(line); ok {
			current = key
			if key != "" {
				if _, seen := s[key]; !seen {
					s[key] = ""
				}
			}
			continue
		}
		if current != "" {
			s[current] += line + "\n"
		}
	}
	return s
}

func heading(line string) (string, bool) {
	for _, p := range headingPrefixes {
		if rest, ok := strings.CutPrefix(line, p); ok {
			return norm.NFC.String(strings.TrimSpace(rest)), true
		}
	}
	return "", false
}

// Read parses r as UTF-8, dropping a leading byte order mark.
func Read(r io.Reader) (Sections, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

// ReadFile parses the markdown file at path.
func ReadFile(path string) (Sections, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, nil
}

// Get returns the trimmed value for key, or "" when the key is absent.
func (s Sections) Get(key string) string {
	return strings.TrimSpace(s[norm.NFC.String(key)])
}

// Lookup returns the raw value for key and whether it was present.
func (s Sections) Lookup(key string) (string, bool) {
	v, ok := s[norm.NFC.String(key)]
	return v, ok
}

// Keys returns the section keys in sorted order.
func (s Sections) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// YAML renders the sections as a YAML mapping.
func (s Sections) YAML() ([]byte, error) {
	return yaml.Marshal(map[string]string(s))
}
