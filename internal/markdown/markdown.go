// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package markdown converts the Markdown bodies of the documents to HTML.
package markdown

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter converts CommonMark sources to HTML. Raw HTML in the source is
// passed through. A Converter is safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

// New returns a new Converter.
func New() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Convert converts src and writes the HTML to out.
func (c *Converter) Convert(src []byte, out io.Writer) error {
	return c.md.Convert(src, out)
}

// ConvertString converts src and returns the HTML.
func (c *Converter) ConvertString(src string) (string, error) {
	var b bytes.Buffer
	err := c.md.Convert([]byte(src), &b)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
