// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frontmatter extracts and parses the key/value block at the
// beginning of a document.
//
// A frontmatter block starts with a "---" line at the very beginning of the
// document and ends with the next "---" line:
//
//	---
//	title: Hello
//	date: 2025-05-28
//	template: post.html
//	---
//	# Hello
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Split splits src into its frontmatter block, without the delimiters, and
// the body that follows it. Lines can end with "\n" or "\r\n". If src does
// not start with a frontmatter block, Split returns an empty block, src as
// body and false.
func Split(src string) (front, body string, ok bool) {
	rest, ok := cutLine(src, delimiter)
	if !ok {
		return "", src, false
	}
	for i := 0; i <= len(rest); {
		end := strings.IndexByte(rest[i:], '\n')
		next := len(rest)
		line := rest[i:]
		if end >= 0 {
			next = i + end + 1
			line = rest[i : i+end]
		}
		if strings.TrimSuffix(line, "\r") == delimiter {
			front = rest[:i]
			front = strings.TrimSuffix(front, "\n")
			front = strings.TrimSuffix(front, "\r")
			return front, rest[next:], true
		}
		if end < 0 {
			break
		}
		i = next
	}
	return "", src, false
}

// cutLine returns s without its first line and reports whether the first
// line is equal to line.
func cutLine(s, line string) (string, bool) {
	if !strings.HasPrefix(s, line) {
		return s, false
	}
	rest := s[len(line):]
	if strings.HasPrefix(rest, "\r\n") {
		return rest[2:], true
	}
	if strings.HasPrefix(rest, "\n") {
		return rest[1:], true
	}
	return s, false
}

// Parse parses a frontmatter block and returns its keys and values.
//
// The block is decoded as YAML and only the top-level keys with scalar
// values are returned, with the values as written in the block. If the
// block is not a YAML mapping, it is parsed line by line: each non-empty
// line with a colon is split at the first colon, key and value are trimmed
// and a pair of quotes around the value is removed.
func Parse(front string) map[string]string {
	vars := map[string]string{}
	if strings.TrimSpace(front) == "" {
		return vars
	}
	if parseYAML(front, vars) {
		return vars
	}
	clear(vars)
	parseLines(front, vars)
	return vars
}

// Document splits src and parses its frontmatter block. It returns the
// parsed keys and values and the body.
func Document(src string) (map[string]string, string) {
	front, body, _ := Split(src)
	return Parse(front), body
}

// parseYAML parses front as a YAML mapping and stores its scalar values in
// vars. It reports whether front is a YAML mapping.
func parseYAML(front string, vars map[string]string) bool {
	var doc yaml.Node
	err := yaml.Unmarshal([]byte(front), &doc)
	if err != nil || doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return false
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			continue
		}
		if value.Tag == "!!null" {
			vars[key.Value] = ""
			continue
		}
		vars[key.Value] = value.Value
	}
	return true
}

// parseLines parses front line by line.
func parseLines(front string, vars map[string]string) {
	for _, line := range strings.Split(front, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		vars[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
	}
}

// unquote removes a pair of single or double quotes around s.
func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}
