// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package site builds a static site from an application directory.
//
// An application directory has the following layout:
//
//	app/
//	  site.config    optional site configuration
//	  posts/         Markdown posts
//	  pages/         Markdown pages
//	  templates/     templates named by the "template" key of the documents
//	  assets/        files copied as is
//
// Every document is rendered with its template and written, as HTML, to the
// output directory. If there are posts, the RSS feed is written to feed.xml.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pinealpha/arc"
	"github.com/pinealpha/arc/internal/frontmatter"
	"github.com/pinealpha/arc/internal/markdown"
	"github.com/pinealpha/arc/internal/rss"

	"github.com/natefinch/atomic"
	"golang.org/x/mod/sumdb/dirhash"
)

// Names of the files and directories of an application directory.
const (
	PostsDir     = "posts"
	PagesDir     = "pages"
	TemplatesDir = "templates"
	AssetsDir    = "assets"
	ConfigFile   = "site.config"
	FeedFile     = "feed.xml"
)

// Default directories.
const (
	DefaultAppDir = "app"
	DefaultOutDir = "site"
)

// Options are the options of a Builder.
type Options struct {

	// AppDir is the application directory. If it is empty, DefaultAppDir is
	// used.
	AppDir string

	// OutDir is the output directory. If it is empty, DefaultOutDir is used.
	OutDir string

	// Clean removes the output directory before every build.
	Clean bool

	// MaxIncludeDepth is the maximum number of nested include statements.
	// If it is zero, arc.DefaultMaxIncludeDepth is used.
	MaxIncludeDepth int

	// Logger is the logger. If it is nil, nothing is logged.
	Logger *slog.Logger

	// Now returns the current time, used as build date of the feed. If it
	// is nil, time.Now is used.
	Now func() time.Time
}

// Result is the result of a build.
type Result struct {
	Posts     int           // number of rendered posts
	Pages     int           // number of rendered pages
	Assets    int           // number of copied assets
	FeedItems int           // number of items of the feed
	Digest    string        // digest of the output directory
	Duration  time.Duration // duration of the build
}

// Documents returns the number of rendered documents.
func (r *Result) Documents() int {
	return r.Posts + r.Pages
}

// Builder builds a site. A Builder can be used for more builds, but not
// concurrently.
type Builder struct {
	appDir   string
	outDir   string
	clean    bool
	maxDepth int
	log      *slog.Logger
	now      func() time.Time
	md       *markdown.Converter
}

// New returns a new Builder with the given options.
func New(options Options) *Builder {
	b := &Builder{
		appDir:   options.AppDir,
		outDir:   options.OutDir,
		clean:    options.Clean,
		maxDepth: options.MaxIncludeDepth,
		log:      options.Logger,
		now:      options.Now,
		md:       markdown.New(),
	}
	if b.appDir == "" {
		b.appDir = DefaultAppDir
	}
	if b.outDir == "" {
		b.outDir = DefaultOutDir
	}
	if b.log == nil {
		b.log = slog.New(slog.DiscardHandler)
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// AppDir returns the application directory.
func (b *Builder) AppDir() string {
	return b.appDir
}

// OutDir returns the output directory.
func (b *Builder) OutDir() string {
	return b.outDir
}

// Build builds the site. It stops at the first error and it returns the
// context error if ctx is cancelled during the build.
func (b *Builder) Build(ctx context.Context) (*Result, error) {

	start := time.Now()
	res := &Result{}

	st, err := os.Stat(b.appDir)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", b.appDir)
	}

	if b.clean {
		err = os.RemoveAll(b.outDir)
		if err != nil {
			return nil, err
		}
	}
	err = os.MkdirAll(b.outDir, 0755)
	if err != nil {
		return nil, err
	}

	res.Assets, err = b.copyAssets(ctx)
	if err != nil {
		return nil, err
	}

	config, err := b.readConfig()
	if err != nil {
		return nil, err
	}

	docs, err := b.loadDocuments(ctx)
	if err != nil {
		return nil, err
	}
	posts := postsOf(docs)

	engine := arc.New(arc.DirStore(filepath.Join(b.appDir, TemplatesDir)), &arc.Options{
		Globals:         globals(posts, config),
		MaxIncludeDepth: b.maxDepth,
	})
	for _, doc := range docs {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		err = b.render(engine, doc)
		if err != nil {
			return nil, err
		}
		if doc.Type() == TypePost {
			res.Posts++
		} else {
			res.Pages++
		}
	}

	if len(posts) > 0 {
		res.FeedItems, err = b.writeFeed(posts, config)
		if err != nil {
			return nil, err
		}
	}

	res.Digest, err = dirhash.HashDir(b.outDir, "", dirhash.Hash1)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)

	return res, nil
}

// readConfig reads the site configuration. It returns nil if the
// configuration file does not exist.
func (b *Builder) readConfig() (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(b.appDir, ConfigFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	front, body, ok := frontmatter.Split(string(data))
	if !ok {
		// A configuration without delimiters is a bare block.
		front = body
	}
	return frontmatter.Parse(front), nil
}

// render renders doc and writes it to the output directory.
func (b *Builder) render(engine *arc.Engine, doc *Document) error {
	name, ok := doc.Meta["template"]
	if !ok || name == "" {
		return fmt.Errorf("%s: no template specified in frontmatter", doc.Path)
	}
	vars := arc.Strings(doc.Meta)
	vars[arc.ContentVar] = arc.StringValue(doc.Meta["rendered_content"])
	out, err := engine.Execute(name, vars)
	if err != nil {
		return fmt.Errorf("%s: %w", doc.Path, err)
	}
	dst := filepath.Join(b.outDir, filepath.FromSlash(doc.Output))
	err = writeFile(dst, out)
	if err != nil {
		return err
	}
	b.log.Info("generated", "path", dst)
	return nil
}

// writeFeed writes the RSS feed of posts and returns the number of items.
func (b *Builder) writeFeed(posts []*Document, config map[string]string) (int, error) {
	metas := make([]map[string]string, len(posts))
	for i, post := range posts {
		metas[i] = post.Meta
	}
	cfg := rss.ConfigFrom(config)
	feed := rss.NewFeed(metas, cfg, b.now())
	data, err := rss.Marshal(feed)
	if err != nil {
		return 0, err
	}
	dst := filepath.Join(b.outDir, FeedFile)
	err = writeFile(dst, string(data))
	if err != nil {
		return 0, err
	}
	n := len(feed.Channel.Items)
	b.log.Info("generated feed", "path", dst, "items", n)
	if config == nil {
		b.log.Info("TIP: create "+filepath.Join(b.appDir, ConfigFile)+" to configure the feed",
			"example", cfg.String())
	}
	return n, nil
}

// globals returns the global variables of a build.
func globals(posts []*Document, config map[string]string) arc.Mapping {
	list := make(arc.Sequence, len(posts))
	for i, post := range posts {
		list[i] = arc.Strings(post.Meta)
	}
	var latest arc.Value = arc.Absent{}
	if len(list) > 0 {
		latest = list[0]
	}
	cfg := rss.ConfigFrom(config)
	site := arc.Strings(config)
	for k, v := range map[string]string{
		"title":       cfg.Title,
		"description": cfg.Description,
		"url":         cfg.URL,
		"language":    cfg.Language,
	} {
		if _, ok := site[k]; !ok {
			site[k] = arc.StringValue(v)
		}
	}
	return arc.Mapping{
		"posts":       list,
		"latest_post": latest,
		"site":        site,
	}
}

// writeFile atomically writes s to the file name, creating its directory.
func writeFile(name, s string) error {
	err := os.MkdirAll(filepath.Dir(name), 0755)
	if err != nil {
		return err
	}
	return atomic.WriteFile(name, strings.NewReader(s))
}
