// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arc

import (
	"io"
	"strings"

	"github.com/pinealpha/arc/ast"
)

// show renders a {{ ... }} placeholder.
//
// A dotted path is replaced with the string form of the resolved value. For
// a loop variable, only a field of the element can be shown, so a deeper
// path as {{ item.a.b }} is replaced with an empty string.
//
// A simple name is replaced with the string form of its value if it is
// bound, otherwise the placeholder is written as is. A loop variable is not
// a value to show and its placeholder is also written as is.
func (s *state) show(node *ast.Show, scope *Scope) error {
	var text string
	if name, rest, dotted := strings.Cut(node.Path, "."); dotted {
		_, _, loop := scope.lookup(name)
		if !loop || !strings.Contains(rest, ".") {
			text = scope.Resolve(node.Path).String()
		}
	} else if v, ok, loop := scope.lookup(node.Path); ok && !loop {
		text = v.String()
	} else {
		text = node.Source
	}
	if text == "" {
		return nil
	}
	_, err := io.WriteString(s.out, text)
	return err
}
