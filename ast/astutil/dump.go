// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package astutil implements methods to walk and dump a tree.
package astutil

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/pinealpha/arc/ast"
)

type dumper struct {
	output      io.Writer
	indentLevel int
}

type errVisitor struct {
	err error
}

func (e errVisitor) Error() string {
	return e.err.Error()
}

// Visit elaborates a node of a tree, writing on a Writer the representation
// of the same node correctly indented. The Visit method is called by the Walk
// function.
func (d *dumper) Visit(node ast.Node) Visitor {

	// Management of the v.Visit(nil) call made by Walk.
	if node == nil {
		d.indentLevel--
		return nil
	}

	d.indentLevel++

	if n, ok := node.(*ast.Tree); ok {
		_, err := fmt.Fprintf(d.output, "\nTree: %v:%v\n", strconv.Quote(n.Path), n.Position)
		if err != nil {
			panic(errVisitor{err})
		}
		return d
	}

	var text string
	switch n := node.(type) {
	case *ast.Text:
		text = n.Text
		if len(n.Text) > 30 {
			text = string(truncate([]byte(n.Text), 30)) + "..."
		}
		text = strconv.Quote(text)
	case fmt.Stringer:
		text = n.String()
	default:
		text = fmt.Sprintf("%v", node)
	}

	for i := 0; i < d.indentLevel; i++ {
		_, err := fmt.Fprint(d.output, "│    ")
		if err != nil {
			panic(errVisitor{err})
		}
	}

	// Determines the type by removing the prefix "*ast."
	typeStr := fmt.Sprintf("%T", node)[5:]

	posStr := "-"
	if pos := node.Pos(); pos != nil {
		posStr = pos.String()
	}

	_, err := fmt.Fprintf(d.output, "%v (%v) %v\n", typeStr, posStr, text)
	if err != nil {
		panic(errVisitor{err})
	}

	return d
}

// Dump writes the tree dump on w. It returns an error if node is nil or if
// writing to w fails.
func Dump(w io.Writer, node ast.Node) (err error) {

	defer func() {
		if r := recover(); r != nil {
			if t, ok := r.(errVisitor); ok {
				err = t.err
			} else {
				panic(r)
			}
		}
	}()

	if node == nil {
		return errors.New("can't dump a nil tree")
	}

	d := dumper{w, -1}
	Walk(&d, node)

	return nil
}

func truncate(b []byte, maxRunes int) []byte {
	if maxRunes < 0 {
		panic("arc/astutil: maxRunes can not be negative")
	}
	if len(b) > maxRunes {
		var n = 1
		for pos := range string(b) {
			if n > maxRunes {
				return b[:pos]
			}
			n++
		}
	}
	return b
}
