// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compiler

import (
	"github.com/pinealpha/arc/ast"
)

// Token type.
type tokenTyp int

const (
	tokenText      tokenTyp = iota // text
	tokenValue                     // {{ ... }}
	tokenStatement                 // {% ... %}
)

var tokenTypeName = [...]string{
	tokenText:      "text",
	tokenValue:     "{{ }}",
	tokenStatement: "{% %}",
}

func (tt tokenTyp) String() string {
	return tokenTypeName[tt]
}

// token is a lexical token.
type token struct {
	typ      tokenTyp      // type
	pos      *ast.Position // position in the source
	txt      string        // token source, delimiters included
	body     string        // text between the delimiters, only for values and statements
	path     string        // path of the source, empty if unknown
	expanded bool          // for include statements, the included tokens follow
}

// String returns the string representation of tok.
func (tok token) String() string {
	if tok.typ == tokenText {
		return "text"
	}
	return tok.txt
}
