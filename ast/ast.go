// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast declares the types used to define template trees.
//
// For example, the source in a template file named "index.html":
//
//	{% for post in posts %}
//	<li>{{ post.title }}</li>
//	{% endfor %}
//
// is represented with the tree:
//
//	ast.NewTree("index.html", []ast.Node{
//		ast.NewFor(
//			&ast.Position{Line: 1, Column: 1, Start: 0, End: 22},
//			"post", "posts",
//			[]ast.Node{
//				ast.NewText(&ast.Position{Line: 1, Column: 24, Start: 23, End: 27}, "\n<li>"),
//				ast.NewShow(&ast.Position{Line: 2, Column: 5, Start: 28, End: 45}, "post.title", "{{ post.title }}"),
//				ast.NewText(&ast.Position{Line: 2, Column: 22, Start: 46, End: 51}, "</li>\n"),
//			},
//		),
//	})
package ast

import (
	"strconv"
	"strings"
)

// Node is a node of a tree.
type Node interface {
	Pos() *Position // position in the original source
}

// Position is a position of a node in the source.
type Position struct {
	Line   int // line starting from 1
	Column int // column in characters starting from 1
	Start  int // index of the first byte
	End    int // index of the last byte
}

// Pos returns the position p.
func (p *Position) Pos() *Position {
	return p
}

// String returns the line and column separated by a colon, for example "37:18".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// WithEnd returns a copy of the position but with the given end index.
func (p *Position) WithEnd(end int) *Position {
	pp := *p
	pp.End = end
	return &pp
}

// Tree node represents a tree.
type Tree struct {
	*Position
	Path  string // path of the tree.
	Nodes []Node // nodes of the first level of the tree.
}

// NewTree returns a new Tree node.
func NewTree(path string, nodes []Node) *Tree {
	if nodes == nil {
		nodes = []Node{}
	}
	return &Tree{
		Position: &Position{1, 1, 0, 0},
		Path:     path,
		Nodes:    nodes,
	}
}

// Text node represents a text in the source.
type Text struct {
	*Position        // position in the source.
	Text      string // text.
}

// NewText returns a new Text node.
func NewText(pos *Position, text string) *Text {
	return &Text{pos, text}
}

// String returns the string representation of n.
func (n *Text) String() string {
	return n.Text
}

// Show node represents a {{ path }} placeholder.
type Show struct {
	*Position        // position in the source.
	Path      string // variable path, for example "post.title".
	Source    string // placeholder as written in the source.
}

// NewShow returns a new Show node.
func NewShow(pos *Position, path, source string) *Show {
	return &Show{pos, path, source}
}

// Dotted reports whether the path of n has more than one segment.
func (n *Show) Dotted() bool {
	return strings.Contains(n.Path, ".")
}

// String returns the string representation of n.
func (n *Show) String() string {
	return "{{ " + n.Path + " }}"
}

// ConditionKind represents the kind of condition of an if statement.
type ConditionKind int

const (
	ConditionTruth ConditionKind = iota // {% if path %}
	ConditionEqual                      // {% if path == "value" %}
)

// Condition is the condition of an If node.
type Condition struct {
	Kind  ConditionKind
	Path  string // variable path on the left side.
	Value string // unquoted right operand, only for ConditionEqual.
}

// String returns the string representation of c.
func (c Condition) String() string {
	if c.Kind == ConditionEqual {
		return c.Path + " == " + strconv.Quote(c.Value)
	}
	return c.Path
}

// If node represents a statement {% if ... %}.
type If struct {
	*Position           // position in the source.
	Condition Condition // condition.
	Then      []Node    // nodes to render if the condition is true.
	Closed    bool      // reports whether it is closed by {% endif %}.
}

// NewIf returns a new If node.
func NewIf(pos *Position, cond Condition, then []Node) *If {
	return &If{Position: pos, Condition: cond, Then: then}
}

// String returns the string representation of n.
func (n *If) String() string {
	return "if " + n.Condition.String()
}

// For node represents a statement {% for ... in ... %}.
type For struct {
	*Position         // position in the source.
	Item       string // name of the loop variable.
	Collection string // variable path of the collection.
	Body       []Node // nodes of the body.
}

// NewFor returns a new For node.
func NewFor(pos *Position, item, collection string, body []Node) *For {
	if body == nil {
		body = []Node{}
	}
	return &For{pos, item, collection, body}
}

// String returns the string representation of n.
func (n *For) String() string {
	return "for " + n.Item + " in " + n.Collection
}

// Include node represents a statement {% include "..." %}.
//
// When expanded, the node is followed by the nodes of the included template,
// so the blocks of the included template can be closed after it.
type Include struct {
	*Position        // position in the source.
	Name      string // name of the included template.
	Expanded  bool   // reports whether the included nodes follow the node.
}

// NewInclude returns a new Include node.
func NewInclude(pos *Position, name string) *Include {
	return &Include{Position: pos, Name: name}
}

// String returns the string representation of n.
func (n *Include) String() string {
	return "include " + strconv.Quote(n.Name)
}
