// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compiler

import (
	"fmt"
	"strings"

	"github.com/pinealpha/arc/ast"
)

// DefaultMaxIncludeDepth is the maximum include depth used when ParseTemplate
// is called with a non-positive maximum depth.
const DefaultMaxIncludeDepth = 32

// Reader is implemented by the template stores.
type Reader interface {
	// Read returns the source of the named template. If the template does
	// not exist, the returned error should satisfy
	// errors.Is(err, fs.ErrNotExist).
	Read(name string) (string, error)
}

// IncludeError records an error occurred including a template.
type IncludeError struct {
	Path string        // path of the template with the include statement.
	Pos  *ast.Position // position of the include statement.
	Name string        // name of the included template.
	Err  error         // error returned reading the included template.
}

func (e *IncludeError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteByte(':')
	}
	if e.Pos != nil {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "include %q: %s", e.Name, e.Err)
	return b.String()
}

func (e *IncludeError) Unwrap() error {
	return e.Err
}

// RecursionLimitError is returned by ParseTemplate when the include
// statements are nested deeper than the maximum include depth, as happens
// when a template includes itself.
type RecursionLimitError struct {
	Limit int           // maximum include depth.
	Paths []string      // include chain, the first is the parsed template.
	Pos   *ast.Position // position of the include statement exceeding the limit.
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("include depth limit of %d exceeded\n\t%s",
		e.Limit, strings.Join(e.Paths, "\n\tincludes "))
}

// ParseTemplate parses the template source src with the given name and
// expands its include statements, reading the included templates from
// reader. Included templates are expanded recursively, up to maxDepth nested
// includes; a non-positive maxDepth means DefaultMaxIncludeDepth.
//
// The source of an included template takes the place of the include
// statement before the blocks are parsed, so a block opened in a template
// can be closed in another one. In the tree, an expanded Include node is
// followed by the nodes of the included template.
//
// Includes are expanded everywhere in the source, also in the bodies of if
// and for statements, so all the included templates must exist.
//
// If an included template can not be read, the returned error is an
// *IncludeError. If the limit is exceeded, it is a *RecursionLimitError.
func ParseTemplate(name, src string, reader Reader, maxDepth int) (*ast.Tree, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxIncludeDepth
	}
	pp := &templateExpansion{
		reader:   reader,
		maxDepth: maxDepth,
		tokens:   map[string][]token{},
		paths:    []string{name},
	}
	tokens, err := pp.expand(scan(name, src))
	if err != nil {
		return nil, err
	}
	return ast.NewTree(name, parse(tokens)), nil
}

// templateExpansion represents the state of a template expansion.
type templateExpansion struct {
	reader   Reader
	maxDepth int
	tokens   map[string][]token // tokens of the templates already read, by name.
	paths    []string           // include chain of the tokens being expanded.
}

// scan scans the source of the template with the given path.
func scan(path, src string) []token {
	tokens := scanTemplate(src)
	for i := range tokens {
		tokens[i].path = path
	}
	return tokens
}

// read reads and scans the named template. Only one call per name is made
// to the reader.
func (pp *templateExpansion) read(name string) ([]token, error) {
	if tokens, ok := pp.tokens[name]; ok {
		return tokens, nil
	}
	src, err := pp.reader.Read(name)
	if err != nil {
		return nil, err
	}
	tokens := scan(name, src)
	pp.tokens[name] = tokens
	return tokens, nil
}

// expand returns tokens with the tokens of the included templates, expanded
// recursively, after their include statements.
func (pp *templateExpansion) expand(tokens []token) ([]token, error) {

	expanded := make([]token, 0, len(tokens))

	for _, tok := range tokens {

		name, ok := includeName(tok)
		if !ok {
			expanded = append(expanded, tok)
			continue
		}

		if len(pp.paths) > pp.maxDepth {
			paths := make([]string, len(pp.paths), len(pp.paths)+1)
			copy(paths, pp.paths)
			return nil, &RecursionLimitError{
				Limit: pp.maxDepth,
				Paths: append(paths, name),
				Pos:   tok.pos,
			}
		}
		included, err := pp.read(name)
		if err != nil {
			return nil, &IncludeError{
				Path: tok.path,
				Pos:  tok.pos,
				Name: name,
				Err:  err,
			}
		}
		pp.paths = append(pp.paths, name)
		included, err = pp.expand(included)
		if err != nil {
			return nil, err
		}
		pp.paths = pp.paths[:len(pp.paths)-1]

		tok.expanded = true
		expanded = append(expanded, tok)
		expanded = append(expanded, included...)

	}

	return expanded, nil
}

// includeName returns the name of the included template if tok is a well
// formed include statement.
func includeName(tok token) (string, bool) {
	if tok.typ != tokenStatement {
		return "", false
	}
	keyword, rest := cutKeyword(tok.body)
	if keyword != "include" {
		return "", false
	}
	return quotedName(rest)
}
