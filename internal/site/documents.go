// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package site

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pinealpha/arc/internal/frontmatter"

	"github.com/dustin/go-humanize"
)

// Document types.
const (
	TypePost = "post"
	TypePage = "page"
)

// Document is a Markdown document of a site.
type Document struct {
	Path   string            // slash-separated path relative to the application directory
	Output string            // slash-separated path of the HTML file relative to the output directory
	Meta   map[string]string // metadata
}

// Type returns the type of d.
func (d *Document) Type() string {
	return d.Meta["type"]
}

// loadDocuments loads the documents in the posts and pages directories.
// Posts come before pages, each in lexical order.
func (b *Builder) loadDocuments(ctx context.Context) ([]*Document, error) {
	var docs []*Document
	fsys := os.DirFS(b.appDir)
	for _, dir := range []string{PostsDir, PagesDir} {
		paths, err := discover(fsys, dir, filepath.Base(b.outDir))
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
			src, err := fs.ReadFile(fsys, p)
			if err != nil {
				return nil, err
			}
			doc, err := b.newDocument(p, dir, string(src))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		b.log.Debug("found documents", "dir", dir, "count", len(paths))
	}
	return docs, nil
}

// discover returns the paths of the Markdown files in the directory dir of
// fsys, skipping hidden directories and the directories named skip. It
// returns no paths if dir does not exist.
func discover(fsys fs.FS, dir, skip string) ([]string, error) {
	var paths []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != dir && (strings.HasPrefix(name, ".") || name == skip) {
				return fs.SkipDir
			}
			return nil
		}
		if path.Ext(name) == ".md" && !strings.HasPrefix(name, ".") {
			paths = append(paths, p)
		}
		return nil
	})
	return paths, err
}

// newDocument returns the document with path p, in the directory dir, and
// source src.
func (b *Builder) newDocument(p, dir, src string) (*Document, error) {
	meta, body := frontmatter.Document(src)
	html, err := b.md.ConvertString(body)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Path:   p,
		Output: outputPath(p),
		Meta:   meta,
	}
	meta["url"] = "/" + doc.Output
	meta["content"] = body
	meta["rendered_content"] = html
	if date, ok := meta["date"]; ok {
		if s, ok := formatDate(date); ok {
			meta["formatted_date"] = s
		}
	}
	if meta["type"] == "" {
		meta["type"] = TypePage
		if dir == PostsDir {
			meta["type"] = TypePost
		}
	}
	return doc, nil
}

// outputPath returns the output path of the document with path p. A
// document directly in a pages directory is written to the root of the
// output directory.
func outputPath(p string) string {
	p = strings.TrimSuffix(p, ".md") + ".html"
	if path.Base(path.Dir(p)) == PagesDir {
		return path.Base(p)
	}
	return p
}

// formatDate formats an ISO date as "May 28th, 2025".
func formatDate(date string) (string, bool) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return "", false
	}
	return t.Format("January") + " " + humanize.Ordinal(t.Day()) + ", " + strconv.Itoa(t.Year()), true
}

// postsOf returns the posts of docs sorted from the newest.
func postsOf(docs []*Document) []*Document {
	var posts []*Document
	for _, doc := range docs {
		if doc.Type() == TypePost {
			posts = append(posts, doc)
		}
	}
	slices.SortStableFunc(posts, func(a, b *Document) int {
		return compareDates(a.Meta, b.Meta)
	})
	return posts
}

// compareDates compares the dates of two posts, newest first. Posts without
// a date come last. Dates that are not ISO dates are compared as strings.
func compareDates(a, b map[string]string) int {
	da, okA := a["date"]
	db, okB := b["date"]
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	ta, errA := time.Parse(time.DateOnly, strings.TrimSpace(da))
	tb, errB := time.Parse(time.DateOnly, strings.TrimSpace(db))
	if errA == nil && errB == nil {
		return tb.Compare(ta)
	}
	return strings.Compare(db, da)
}
