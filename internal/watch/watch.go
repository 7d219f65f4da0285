// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package watch rebuilds a site when the files of its application directory
// change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pinealpha/arc/internal/site"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the default value of Options.Delay.
const DefaultDelay = 100 * time.Millisecond

// Builder is implemented by the site builders.
type Builder interface {
	Build(ctx context.Context) (*site.Result, error)
}

// Options are the options of a Watcher.
type Options struct {

	// Dir is the watched directory.
	Dir string

	// Skip are the directories not to watch, usually the output directory.
	Skip []string

	// Delay is the time waited after a change before rebuilding, so that
	// more changes in a short time result in a single build. If it is zero,
	// DefaultDelay is used.
	Delay time.Duration

	// Logger is the logger. If it is nil, nothing is logged.
	Logger *slog.Logger

	// Built, if not nil, is called after every build.
	Built func(*site.Result, error)
}

// Watcher watches a directory tree and rebuilds a site when a relevant file
// changes.
type Watcher struct {
	builder Builder
	dir     string
	skip    map[string]bool
	delay   time.Duration
	log     *slog.Logger
	built   func(*site.Result, error)
	digest  string
}

// New returns a new Watcher that calls builder on the changes in the
// options' directory.
func New(builder Builder, options Options) *Watcher {
	w := &Watcher{
		builder: builder,
		dir:     options.Dir,
		skip:    map[string]bool{},
		delay:   options.Delay,
		log:     options.Logger,
		built:   options.Built,
	}
	for _, dir := range options.Skip {
		w.skip[absPath(dir)] = true
	}
	if w.delay <= 0 {
		w.delay = DefaultDelay
	}
	if w.log == nil {
		w.log = slog.New(slog.DiscardHandler)
	}
	return w
}

// Run builds the site, then it watches the directory and rebuilds the site
// on every batch of changes until ctx is cancelled. Builds are sequential
// and a failed build does not stop the watcher.
//
// Run returns a non-nil error only if the directory can not be watched.
func (w *Watcher) Run(ctx context.Context) error {

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = w.add(watcher, w.dir)
	if err != nil {
		return err
	}

	w.build(ctx)

	timer := time.NewTimer(w.delay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					if !w.skipped(event.Name) {
						if err := w.add(watcher, event.Name); err != nil {
							w.log.Warn("cannot watch directory", "dir", event.Name, "error", err)
						}
					}
					continue
				}
			}
			if event.Op == fsnotify.Chmod || !Relevant(event.Name) {
				continue
			}
			w.log.Info("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.delay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch error", "error", err)
		case <-timer.C:
			w.build(ctx)
		}
	}
}

// build builds the site and logs the result.
func (w *Watcher) build(ctx context.Context) {
	res, err := w.builder.Build(ctx)
	if w.built != nil {
		defer w.built(res, err)
	}
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error("rebuild failed", "error", err)
		}
		return
	}
	changed := res.Digest != w.digest
	w.digest = res.Digest
	w.log.Info("built",
		"documents", res.Documents(),
		"assets", res.Assets,
		"changed", changed,
		"duration", res.Duration.Round(time.Millisecond))
}

// add adds dir and its subdirectories to watcher, except the hidden and the
// skipped ones.
func (w *Watcher) add(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skipped(path) {
			return filepath.SkipDir
		}
		w.log.Debug("watching", "dir", path)
		return watcher.Add(path)
	})
}

// skipped reports whether the directory dir must not be watched.
func (w *Watcher) skipped(dir string) bool {
	return strings.HasPrefix(filepath.Base(dir), ".") || w.skip[absPath(dir)]
}

// Relevant reports whether a change to the file name requires a rebuild.
func Relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if base == site.ConfigFile {
		return true
	}
	switch filepath.Ext(base) {
	case ".md", ".html", ".css", ".js":
		return true
	}
	return false
}

// absPath returns the absolute and clean path of path. If it can not be
// made absolute, it returns path cleaned.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
