// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compiler

import (
	"strings"
	"unicode/utf8"

	"github.com/pinealpha/arc/ast"
)

// lexer maintains the scanner status.
type lexer struct {
	text   string  // text on which the scan is performed
	tokens []token // scanned tokens
	cursor int     // index of the byte where line and column refer to
	line   int     // line of cursor, starting from 1
	column int     // column of cursor in characters, starting from 1
}

// scanTemplate scans a template source and returns its tokens.
//
// A '{{' without a following '}}', and a '{%' without a following '%}', are
// scanned as text. In a run of opening braces, as in "{{{", the value starts
// at the last two braces. A value never contains '{{' or '{%' and a
// statement never contains '{%': the first delimiter is scanned as text and
// the scan goes on from the next one.
func scanTemplate(text string) []token {
	lex := &lexer{text: text, line: 1, column: 1}
	lex.scan()
	return lex.tokens
}

func (l *lexer) scan() {
	p := 0 // start of the current text
	i := 0
	for i < len(l.text)-1 {
		if l.text[i] != '{' {
			i++
			continue
		}
		var typ tokenTyp
		var end string
		switch l.text[i+1] {
		case '{':
			for i+2 < len(l.text) && l.text[i+2] == '{' {
				i++
			}
			typ, end = tokenValue, "}}"
		case '%':
			typ, end = tokenStatement, "%}"
		default:
			i++
			continue
		}
		n := strings.Index(l.text[i+2:], end)
		if n < 0 {
			i++
			continue
		}
		body := l.text[i+2 : i+2+n]
		if strings.Contains(body, "{%") || typ == tokenValue && strings.Contains(body, "{{") {
			i++
			continue
		}
		if p < i {
			l.emit(tokenText, p, i, "")
		}
		stop := i + 2 + n + 2
		l.emit(typ, i, stop, body)
		i = stop
		p = i
	}
	if p < len(l.text) {
		l.emit(tokenText, p, len(l.text), "")
	}
}

// emit emits a token of type typ with source text[start:stop].
func (l *lexer) emit(typ tokenTyp, start, stop int, body string) {
	pos := l.position(start, stop)
	l.tokens = append(l.tokens, token{
		typ:  typ,
		pos:  pos,
		txt:  l.text[start:stop],
		body: body,
	})
}

// position returns the position of text[start:stop]. Calls to position must
// have non decreasing values of start.
func (l *lexer) position(start, stop int) *ast.Position {
	for l.cursor < start {
		r, size := utf8.DecodeRuneInString(l.text[l.cursor:])
		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.cursor += size
	}
	return &ast.Position{
		Line:   l.line,
		Column: l.column,
		Start:  start,
		End:    stop - 1,
	}
}
