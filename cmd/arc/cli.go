// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pinealpha/arc"
	"github.com/pinealpha/arc/ast/astutil"
	"github.com/pinealpha/arc/internal/site"
	"github.com/pinealpha/arc/internal/watch"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// CLI is the command line interface of arc.
type CLI struct {
	App          string `default:"app"                    env:"ARC_APP" help:"Application directory." type:"path"`
	Out          string `default:"site"                   env:"ARC_OUT" help:"Output directory."      type:"path"`
	Clean        bool   `help:"Remove the output directory before building."`
	IncludeDepth int    `default:"${defaultIncludeDepth}" help:"Maximum depth of nested includes." name:"include-depth"`

	Log logConfig `embed:"" prefix:"log-"`

	Build buildCmd `cmd:"" default:"1" help:"Build the site."`
	Watch watchCmd `cmd:""             help:"Build the site and rebuild it when a file changes."`
	Tree  treeCmd  `cmd:""             help:"Print the tree of a template."`

	logger *slog.Logger `kong:"-"`
}

// builder returns the site builder configured by the flags.
func (cli *CLI) builder() *site.Builder {
	return site.New(site.Options{
		AppDir:          cli.App,
		OutDir:          cli.Out,
		Clean:           cli.Clean,
		MaxIncludeDepth: cli.IncludeDepth,
		Logger:          cli.logger,
	})
}

type buildCmd struct{}

func (*buildCmd) Run(ctx context.Context, cli *CLI) error {
	res, err := cli.builder().Build(ctx)
	if err != nil {
		return err
	}
	cli.logger.Info("built",
		"documents", res.Documents(),
		"posts", res.Posts,
		"pages", res.Pages,
		"assets", res.Assets,
		"feed_items", res.FeedItems,
		"duration", res.Duration.Round(time.Millisecond))
	return nil
}

type watchCmd struct {
	Serve string `help:"Serve the output directory at the given address, as host:port." placeholder:"ADDR"`
}

func (c *watchCmd) Run(ctx context.Context, ktx *kong.Context, cli *CLI) error {

	lines := []string{"Watching " + cli.App + " for changes"}

	if c.Serve != "" {
		addr, err := parseAddr(c.Serve)
		if err != nil {
			return fmt.Errorf("invalid value for --serve flag: %s", err)
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		srv := &http.Server{
			Handler:        http.FileServer(http.Dir(cli.Out)),
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		go func() {
			if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
				cli.logger.Error("serve failed", "error", err)
			}
		}()
		defer func() {
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdown)
		}()
		lines = append(lines, "Site is available at http://"+addr+"/")
	}

	lines = append(lines, "Press Ctrl+C to stop")
	banner(ktx.Stderr, lines...)

	w := watch.New(cli.builder(), watch.Options{
		Dir:    cli.App,
		Skip:   []string{cli.Out},
		Logger: cli.logger,
	})
	return w.Run(ctx)
}

type treeCmd struct {
	Template string `arg:"" help:"Template name, relative to the templates directory."`
}

func (c *treeCmd) Run(ktx *kong.Context, cli *CLI) error {
	store := arc.DirStore(filepath.Join(cli.App, site.TemplatesDir))
	src, err := store.Read(c.Template)
	if err != nil {
		return err
	}
	t, err := arc.New(store, &arc.Options{MaxIncludeDepth: cli.IncludeDepth}).Build(c.Template, src)
	if err != nil {
		return err
	}
	cli.logger.Debug("template read", "name", c.Template, "size", humanize.Bytes(uint64(len(src))))
	return astutil.Dump(ktx.Stdout, t.Tree())
}

// banner writes lines to w, in bold green if w is a terminal.
func banner(w io.Writer, lines ...string) {
	c := color.New(color.FgGreen, color.Bold)
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	for _, line := range lines {
		_, _ = c.Fprintln(w, line)
	}
	_, _ = fmt.Fprintln(w)
}
