// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compiler implements the parsing of template sources and the
// expansion of the included templates.
package compiler

import (
	"strings"

	"github.com/pinealpha/arc/ast"
)

// frame is an open block statement, an If or a For, waiting for its end.
type frame struct {
	node  ast.Node   // *ast.If or *ast.For
	tok   token      // token that opened the block
	index int        // index of tok in the parsed tokens
	nodes []ast.Node // nodes of the block parsed so far
}

// parsing is a parsing state.
type parsing struct {
	nodes  []ast.Node // nodes of the tree at the first level
	frames []*frame   // open blocks, innermost last
}

// ParseTemplateSource parses src and returns its tree. Include nodes are not
// expanded, to get an expanded tree call ParseTemplate.
//
// Parsing never fails. Directives that are not well formed are kept in the
// tree as text.
//
// An {% endfor %} closes the innermost open for, and the ifs opened in its
// body and not yet closed end with the body. An {% endif %} closes the
// innermost open block only if it is an if. An {% if %} without its end
// extends to the end of the source. A {% for %} without its end is not a
// loop: it is kept as text and the source that follows it is parsed again
// as if the for statement was not there.
func ParseTemplateSource(src string) *ast.Tree {
	return ast.NewTree("", parse(scanTemplate(src)))
}

// parse parses tokens and returns the nodes of the first level.
func parse(tokens []token) []ast.Node {
	p := &parsing{nodes: []ast.Node{}}
	for i := 0; ; i++ {
		for ; i < len(tokens); i++ {
			p.parseToken(tokens[i], i)
		}
		f := p.unclosedFor()
		if f == nil {
			break
		}
		p.literal(f.tok)
		i = f.index
	}
	for len(p.frames) > 0 {
		p.closeIf(p.pop())
	}
	return p.nodes
}

// parseToken parses the token at index i.
func (p *parsing) parseToken(tok token, i int) {
	switch tok.typ {
	case tokenText:
		p.add(ast.NewText(tok.pos, tok.txt))
	case tokenValue:
		p.parseValue(tok)
	case tokenStatement:
		p.parseStatement(tok, i)
	}
}

// unclosedFor discards the outermost open for, and the blocks opened after
// it, and returns its frame. It returns nil if there are no open fors.
func (p *parsing) unclosedFor() *frame {
	for k, f := range p.frames {
		if _, ok := f.node.(*ast.For); ok {
			p.frames = p.frames[:k]
			return f
		}
	}
	return nil
}

// closeIf adds the if of the frame f, not closed by an endif.
func (p *parsing) closeIf(f *frame) {
	n := f.node.(*ast.If)
	n.Then = f.nodes
	p.add(n)
}

// add adds node to the innermost open block, or to the tree.
func (p *parsing) add(node ast.Node) {
	if n := len(p.frames); n > 0 {
		p.frames[n-1].nodes = append(p.frames[n-1].nodes, node)
		return
	}
	p.nodes = append(p.nodes, node)
}

// top returns the innermost open block or nil if there are no open blocks.
func (p *parsing) top() *frame {
	if len(p.frames) == 0 {
		return nil
	}
	return p.frames[len(p.frames)-1]
}

func (p *parsing) push(node ast.Node, tok token, i int) {
	p.frames = append(p.frames, &frame{node: node, tok: tok, index: i, nodes: []ast.Node{}})
}

func (p *parsing) pop() *frame {
	f := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	return f
}

// literal adds tok as text.
func (p *parsing) literal(tok token) {
	p.add(ast.NewText(tok.pos, tok.txt))
}

// blockEnd returns the position of the block opened by f extended to the end
// of tok. The position is not extended if tok is in another source.
func blockEnd(f *frame, tok token) *ast.Position {
	pos := f.node.Pos()
	if f.tok.path != tok.path {
		return pos
	}
	return pos.WithEnd(tok.pos.End)
}

// parseValue parses a {{ ... }} token.
func (p *parsing) parseValue(tok token) {
	path := strings.TrimSpace(tok.body)
	if isDottedPath(path) || isSimpleName(path) {
		p.add(ast.NewShow(tok.pos, path, tok.txt))
		return
	}
	p.literal(tok)
}

// parseStatement parses the {% ... %} token at index i.
func (p *parsing) parseStatement(tok token, i int) {

	keyword, rest := cutKeyword(tok.body)

	switch keyword {

	case "include":
		name, ok := quotedName(rest)
		if !ok {
			p.literal(tok)
			return
		}
		n := ast.NewInclude(tok.pos, name)
		n.Expanded = tok.expanded
		p.add(n)

	case "if":
		if rest == "" || strings.ContainsAny(rest, "%}") {
			p.literal(tok)
			return
		}
		p.push(ast.NewIf(tok.pos, parseCondition(rest), nil), tok, i)

	case "endif":
		f := p.top()
		if rest != "" || f == nil {
			p.literal(tok)
			return
		}
		n, ok := f.node.(*ast.If)
		if !ok {
			p.literal(tok)
			return
		}
		p.pop()
		n.Then = f.nodes
		n.Closed = true
		n.Position = blockEnd(f, tok)
		p.add(n)

	case "for":
		fields := strings.Fields(rest)
		if len(fields) != 3 || fields[1] != "in" || !isWord(fields[0]) || !isPath(fields[2]) {
			p.literal(tok)
			return
		}
		p.push(ast.NewFor(tok.pos, fields[0], fields[2], nil), tok, i)

	case "endfor":
		k := len(p.frames) - 1
		for k >= 0 {
			if _, ok := p.frames[k].node.(*ast.For); ok {
				break
			}
			k--
		}
		if rest != "" || k < 0 {
			p.literal(tok)
			return
		}
		for len(p.frames)-1 > k {
			p.closeIf(p.pop())
		}
		f := p.pop()
		n := f.node.(*ast.For)
		n.Body = f.nodes
		n.Position = blockEnd(f, tok)
		p.add(n)

	default:
		p.literal(tok)

	}

}

// cutKeyword returns the first word of a statement body and the rest of the
// body, both without leading and trailing white space.
func cutKeyword(body string) (keyword, rest string) {
	body = strings.TrimSpace(body)
	i := strings.IndexFunc(body, isSpace)
	if i < 0 {
		return body, ""
	}
	return body[:i], strings.TrimSpace(body[i:])
}

// parseCondition parses the condition of an if statement.
func parseCondition(cond string) ast.Condition {
	if left, right, ok := strings.Cut(cond, "=="); ok {
		return ast.Condition{
			Kind:  ast.ConditionEqual,
			Path:  strings.TrimSpace(left),
			Value: unquote(strings.TrimSpace(right)),
		}
	}
	return ast.Condition{Kind: ast.ConditionTruth, Path: strings.TrimSpace(cond)}
}

// unquote removes one layer of matching single or double quotes from s.
func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// quotedName returns the name in s if s is a non-empty double-quoted string
// without inner quotes.
func quotedName(s string) (string, bool) {
	if len(s) < 3 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	name := s[1 : len(s)-1]
	if strings.Contains(name, `"`) {
		return "", false
	}
	return name, true
}

// isSimpleName reports whether s can be the name of a simple placeholder, that
// is, a non-empty string without dots, white space and delimiters.
func isSimpleName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '.', '{', '}', '%', '"', '\'':
			return false
		default:
			if isSpace(rune(c)) {
				return false
			}
		}
	}
	return true
}

// isDottedPath reports whether s is an identifier followed by a dot and by
// a sequence of dots, letters, digits and underscores, as in "post.title".
func isDottedPath(s string) bool {
	head, tail, ok := strings.Cut(s, ".")
	if !ok || tail == "" || !isIdentifier(head) {
		return false
	}
	for i := 0; i < len(tail); i++ {
		if c := tail[i]; c != '.' && !isWordByte(c) {
			return false
		}
	}
	return true
}

// isPath reports whether s is an identifier or a dotted path.
func isPath(s string) bool {
	return isIdentifier(s) || isDottedPath(s)
}

// isIdentifier reports whether s is a letter or underscore followed by
// letters, digits and underscores.
func isIdentifier(s string) bool {
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		return false
	}
	return isWord(s)
}

// isWord reports whether s is a non-empty sequence of letters, digits and
// underscores.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}

func isWordByte(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}
