// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package site

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pinealpha/arc"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

var now = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

const blog = `
-- site.config --
---
title: Notes
url: https://example.com/
---
-- posts/first.md --
---
title: First
date: 2025-05-01
template: post.html
---
First post.
-- posts/second.md --
---
title: Second
date: 2025-05-28
template: post.html
excerpt: The second
---
Second post.
-- posts/.drafts/draft.md --
---
title: Draft
---
-- pages/index.md --
---
title: Home
template: index.html
---
-- pages/docs/guide.md --
---
title: Guide
template: page.html
---
Read *this*.
-- templates/post.html --
<h1>{{title}}</h1><time>{{formatted_date}}</time>{{content}}{% include "footer.html" %}
-- templates/index.html --
{% for p in posts %}<a href="{{p.url}}">{{p.title}}</a>{% endfor %}|{{latest_post.title}}
-- templates/page.html --
<h1>{{title}}</h1>{{content}}{{unknown}}
-- templates/footer.html --
<footer>{{site.title}} {{type}}</footer>
-- assets/css/style.css --
body {}
`

// writeArchive writes the files of a txtar archive to dir.
func writeArchive(t *testing.T, dir, archive string) {
	t.Helper()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		name := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(name, f.Data, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// newBuilder returns a Builder for the application in archive.
func newBuilder(t *testing.T, archive string, logger *slog.Logger) *Builder {
	t.Helper()
	dir := t.TempDir()
	app := filepath.Join(dir, "app")
	writeArchive(t, app, archive)
	return New(Options{
		AppDir: app,
		OutDir: filepath.Join(dir, "site"),
		Logger: logger,
		Now:    func() time.Time { return now },
	})
}

func readOutput(t *testing.T, b *Builder, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(b.OutDir(), filepath.FromSlash(name)))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestBuild(t *testing.T) {
	b := newBuilder(t, blog, nil)
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Posts != 2 || res.Pages != 2 || res.Assets != 1 || res.FeedItems != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Documents() != 4 {
		t.Fatalf("expecting 4 documents, got %d", res.Documents())
	}
	if !strings.HasPrefix(res.Digest, "h1:") {
		t.Fatalf("unexpected digest %q", res.Digest)
	}
	outputs := map[string]string{
		"posts/second.html":     "<h1>Second</h1><time>May 28th, 2025</time><p>Second post.</p>\n<footer>Notes post</footer>\n\n",
		"posts/first.html":      "<h1>First</h1><time>May 1st, 2025</time><p>First post.</p>\n<footer>Notes post</footer>\n\n",
		"index.html":            "<a href=\"/posts/second.html\">Second</a><a href=\"/posts/first.html\">First</a>|Second\n",
		"pages/docs/guide.html": "<h1>Guide</h1><p>Read <em>this</em>.</p>\n{{unknown}}\n",
		"assets/css/style.css":  "body {}\n",
	}
	for name, want := range outputs {
		if got := readOutput(t, b, name); got != want {
			t.Errorf("%s: expecting %q, got %q", name, want, got)
		}
	}
	if _, err := os.Stat(filepath.Join(b.OutDir(), "posts", ".drafts")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expecting hidden directory to be skipped, got %v", err)
	}
	feed := readOutput(t, b, FeedFile)
	for _, s := range []string{
		"<title>Notes</title>",
		"<link>https://example.com/posts/second.html</link>",
		"<description>The second</description>",
		"<lastBuildDate>Sun, 01 Jun 2025 12:00:00 +0000</lastBuildDate>",
	} {
		if !strings.Contains(feed, s) {
			t.Errorf("feed does not contain %q:\n%s", s, feed)
		}
	}
	if i, j := strings.Index(feed, "second.html"), strings.Index(feed, "first.html"); i > j {
		t.Errorf("expecting newest post first in feed:\n%s", feed)
	}
}

func TestBuildIsReproducible(t *testing.T) {
	b := newBuilder(t, blog, nil)
	res1, err := b.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	res2, err := b.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res1.Digest != res2.Digest {
		t.Fatalf("expecting same digest, got %q and %q", res1.Digest, res2.Digest)
	}
}

func TestBuildClean(t *testing.T) {
	b := newBuilder(t, blog, nil)
	stale := filepath.Join(b.OutDir(), "stale.html")
	if err := os.MkdirAll(b.OutDir(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); err != nil {
		t.Fatalf("expecting stale file to be kept, got %v", err)
	}
	b.clean = true
	if _, err := b.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expecting stale file to be removed, got %v", err)
	}
}

func TestBuildWithoutPosts(t *testing.T) {
	b := newBuilder(t, `
-- pages/about.md --
---
title: About
template: page.html
---
-- templates/page.html --
{{title}}|{{latest_post}}|{% for p in posts %}x{% endfor %}|{{site.title}}
`, nil)
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Posts != 0 || res.Pages != 1 || res.FeedItems != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if got, want := readOutput(t, b, "about.html"), "About|||My Arc Site\n"; got != want {
		t.Fatalf("expecting %q, got %q", want, got)
	}
	if _, err := os.Stat(filepath.Join(b.OutDir(), FeedFile)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expecting no feed, got %v", err)
	}
}

func TestBuildLogsTip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	b := newBuilder(t, `
-- posts/a.md --
---
title: A
date: 2025-05-28
template: t.html
---
-- templates/t.html --
{{title}}
`, logger)
	if _, err := b.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	log := buf.String()
	for _, s := range []string{"msg=generated", `msg="generated feed"`, "items=1", "TIP: create"} {
		if !strings.Contains(log, s) {
			t.Errorf("log does not contain %q:\n%s", s, log)
		}
	}
}

func TestBuildTypeFromMetadata(t *testing.T) {
	b := newBuilder(t, `
-- pages/news.md --
---
title: News
date: 2025-05-28
type: post
template: t.html
---
-- posts/note.md --
---
title: Note
type: note
template: t.html
---
-- pages/list.md --
---
title: List
template: list.html
---
-- templates/t.html --
{{type}}
-- templates/list.html --
{% for p in posts %}{{p.title}}{% endfor %}
`, nil)
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Posts != 1 || res.Pages != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := readOutput(t, b, "list.html"); got != "News\n" {
		t.Fatalf("expecting %q, got %q", "News\n", got)
	}
	if got := readOutput(t, b, "posts/note.html"); got != "note\n" {
		t.Fatalf("expecting %q, got %q", "note\n", got)
	}
}

func TestBuildErrors(t *testing.T) {

	b := newBuilder(t, `
-- pages/bad.md --
---
title: Bad
---
`, nil)
	_, err := b.Build(context.Background())
	if err == nil || err.Error() != "pages/bad.md: no template specified in frontmatter" {
		t.Fatalf("unexpected error %v", err)
	}

	b = newBuilder(t, `
-- pages/bad.md --
---
template: missing.html
---
`, nil)
	_, err = b.Build(context.Background())
	var nf *arc.NotFoundError
	if !errors.As(err, &nf) || nf.Name != "missing.html" {
		t.Fatalf("expecting *arc.NotFoundError for missing.html, got %v", err)
	}

	b = newBuilder(t, `
-- pages/loop.md --
---
template: loop.html
---
-- templates/loop.html --
{% include "loop.html" %}
`, nil)
	_, err = b.Build(context.Background())
	var rl *arc.RecursionLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expecting *arc.RecursionLimitError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "pages/loop.md: ") {
		t.Fatalf("expecting error to name the document, got %q", err)
	}

	b = New(Options{AppDir: filepath.Join(t.TempDir(), "missing")})
	_, err = b.Build(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expecting fs.ErrNotExist, got %v", err)
	}
}

func TestBuildCancelled(t *testing.T) {
	b := newBuilder(t, blog, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Build(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expecting context.Canceled, got %v", err)
	}
}

var outputPathTests = []struct {
	path   string
	output string
}{
	{"posts/hello.md", "posts/hello.html"},
	{"posts/2025/hello.md", "posts/2025/hello.html"},
	{"pages/about.md", "about.html"},
	{"pages/docs/guide.md", "pages/docs/guide.html"},
	{"posts/pages/x.md", "x.html"},
	{"posts/a.md.md", "posts/a.md.html"},
}

func TestOutputPath(t *testing.T) {
	for _, test := range outputPathTests {
		if got := outputPath(test.path); got != test.output {
			t.Errorf("path %q: expecting %q, got %q", test.path, test.output, got)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		date string
		s    string
		ok   bool
	}{
		{"2025-05-28", "May 28th, 2025", true},
		{"2025-01-01", "January 1st, 2025", true},
		{"2024-02-22", "February 22nd, 2024", true},
		{"2024-03-13", "March 13th, 2024", true},
		{" 2024-03-03 ", "March 3rd, 2024", true},
		{"28/05/2025", "", false},
		{"", "", false},
	}
	for _, test := range tests {
		s, ok := formatDate(test.date)
		if s != test.s || ok != test.ok {
			t.Errorf("date %q: expecting (%q, %t), got (%q, %t)", test.date, test.s, test.ok, s, ok)
		}
	}
}

func TestPostsOf(t *testing.T) {
	doc := func(title, date string) *Document {
		meta := map[string]string{"title": title, "type": TypePost}
		if date != "" {
			meta["date"] = date
		}
		return &Document{Meta: meta}
	}
	docs := []*Document{
		doc("none", ""),
		doc("old", "2024-01-10"),
		{Meta: map[string]string{"title": "page", "type": TypePage, "date": "2030-01-01"}},
		doc("new", "2025-05-28"),
		doc("mid", "2025-01-01"),
	}
	var titles []string
	for _, post := range postsOf(docs) {
		titles = append(titles, post.Meta["title"])
	}
	want := []string{"new", "mid", "old", "none"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCompareDates(t *testing.T) {
	tests := []struct {
		a, b string
		cmp  int
	}{
		{"2025-05-28", "2025-05-01", -1},
		{"2025-05-01", "2025-05-28", 1},
		{"2025-05-28", "2025-05-28", 0},
		{"May 2025", "April 2025", -1},
		{"2025-05-28", "", -1},
		{"", "2025-05-28", 1},
		{"", "", 0},
	}
	meta := func(date string) map[string]string {
		if date == "" {
			return map[string]string{}
		}
		return map[string]string{"date": date}
	}
	for _, test := range tests {
		if got := compareDates(meta(test.a), meta(test.b)); got != test.cmp {
			t.Errorf("compareDates(%q, %q): expecting %d, got %d", test.a, test.b, test.cmp, got)
		}
	}
}
