// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arc

import (
	"errors"
	"io"
	"maps"
	"strings"

	"github.com/pinealpha/arc/ast"
	"github.com/pinealpha/arc/internal/compiler"
)

// ContentVar is the name of the variable bound to the body of a document.
const ContentVar = "content"

// DefaultMaxIncludeDepth is the default value of Options.MaxIncludeDepth.
const DefaultMaxIncludeDepth = compiler.DefaultMaxIncludeDepth

// Options are the options of an Engine.
type Options struct {

	// Globals are the global variables, visible in every render unless a
	// document variable with the same name hides them. They are copied by
	// New.
	Globals Mapping

	// MaxIncludeDepth is the maximum number of nested include statements.
	// If it is zero, DefaultMaxIncludeDepth is used.
	MaxIncludeDepth int
}

// Engine renders templates whose included templates are read from a store.
// An Engine is safe for concurrent use by multiple goroutines, provided that
// its store is.
type Engine struct {
	store    Store
	globals  Mapping
	maxDepth int
}

// New returns a new engine that reads the included templates from store.
// If store is nil, no template can be included. options can be nil.
func New(store Store, options *Options) *Engine {
	if store == nil {
		store = MapStore{}
	}
	e := &Engine{store: store, globals: Mapping{}}
	if options != nil {
		e.globals = maps.Clone(options.Globals)
		if e.globals == nil {
			e.globals = Mapping{}
		}
		e.maxDepth = options.MaxIncludeDepth
	}
	return e
}

// Template is a template built by the Build method of an Engine.
type Template struct {
	tree    *ast.Tree
	globals Mapping
}

// Build builds the template source src with the given name. The name is
// only used in the error messages. Build reads the included templates from
// the store of the engine, so it returns an error if an included template
// does not exist, also if the include statement is in a condition that will
// be false when rendering.
//
// If an included template can not be read, Build returns an *IncludeError.
// If the include statements are nested too deep, it returns a
// *RecursionLimitError.
func (e *Engine) Build(name, src string) (*Template, error) {
	tree, err := compiler.ParseTemplate(name, src, e.store, e.maxDepth)
	if err != nil {
		return nil, err
	}
	return &Template{tree: tree, globals: e.globals}, nil
}

// Render renders the template source src with the document variables vars
// and the document body content, bound to the "content" variable. The
// document variables hide the global variables with the same names.
func (e *Engine) Render(src string, vars map[string]string, content string) (string, error) {
	doc := Strings(vars)
	doc[ContentVar] = StringValue(content)
	return e.render("", src, doc)
}

// Execute reads the named template from the store and renders it with the
// document variables vars.
func (e *Engine) Execute(name string, vars Mapping) (string, error) {
	src, err := e.store.Read(name)
	if err != nil {
		return "", err
	}
	return e.render(name, src, vars)
}

func (e *Engine) render(name, src string, vars Mapping) (string, error) {
	t, err := e.Build(name, src)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	err = t.Run(&b, t.Scope(vars))
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Scope returns a new scope with the global variables of the engine that
// built t as outermost layer and vars as innermost layer.
func (t *Template) Scope(vars Mapping) *Scope {
	return NewScope(t.globals, vars)
}

// Tree returns the expanded tree of t. The returned tree must not be
// modified.
func (t *Template) Tree() *ast.Tree {
	return t.tree
}

// Run renders t with the given scope and writes the result to out. If
// scope is nil, it renders with an empty scope.
//
// Run returns an error only if writing to out fails.
func (t *Template) Run(out io.Writer, scope *Scope) error {
	if out == nil {
		return errors.New("invalid nil out")
	}
	if scope == nil {
		scope = NewScope()
	}
	s := &state{path: t.tree.Path, out: out}
	return s.render(t.tree.Nodes, scope)
}

// Render renders the template source src with the variables vars, reading
// the included templates from store. It is a shorthand for
//
//	New(store, nil).Build("", src)
//
// followed by a Run with vars as only scope layer. store can be nil if src
// has no include statements.
func Render(src string, vars Mapping, store Store) (string, error) {
	t, err := New(store, nil).Build("", src)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	err = t.Run(&b, NewScope(vars))
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
