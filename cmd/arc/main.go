// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Arc builds a static site from Markdown documents and templates.
//
// Usage:
//
//	arc [flags] [build]
//	arc [flags] watch [--serve ADDR]
//	arc [flags] tree TEMPLATE
//
// The build command, the default, renders the documents of the application
// directory to the output directory. The watch command also rebuilds the
// site when a file changes and, with --serve, serves the output directory.
// The tree command prints the tree of a template, includes expanded.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pinealpha/arc"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Exit)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run runs the command line args. exit is called by the help flag.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, exit func(int)) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("arc"),
		kong.Description("Build a static site from Markdown documents and templates."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.Vars{
			"defaultIncludeDepth": strconv.Itoa(arc.DefaultMaxIncludeDepth),
		},
	)
	if err != nil {
		return err
	}
	ktx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "arc: %s\n", err)
		return err
	}
	cli.logger = newLogger(stderr, cli.Log)
	err = ktx.Run(&cli)
	if err != nil {
		cli.logger.Error("run failed", "error", err)
	}
	return err
}
