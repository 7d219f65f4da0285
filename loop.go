// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arc

import (
	"github.com/pinealpha/arc/ast"
)

// renderFor renders a for statement. The body is rendered once for each
// element of the collection, with a child scope that binds the loop
// variable to the element. If the collection is not a Sequence, nothing is
// rendered.
func (s *state) renderFor(node *ast.For, scope *Scope) error {
	seq, ok := scope.Resolve(node.Collection).(Sequence)
	if !ok || len(node.Body) == 0 {
		return nil
	}
	for _, v := range seq {
		if v == nil {
			v = Absent{}
		}
		err := s.render(node.Body, scope.bind(node.Item, v))
		if err != nil {
			return err
		}
	}
	return nil
}
