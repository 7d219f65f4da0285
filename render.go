// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arc

import (
	"fmt"
	"io"

	"github.com/pinealpha/arc/ast"
)

// state represents the state of rendering of a tree.
type state struct {
	path string    // path of the rendered tree.
	out  io.Writer // output.
}

// render renders nodes with the given scope.
func (s *state) render(nodes []ast.Node, scope *Scope) error {

	for _, n := range nodes {

		switch node := n.(type) {

		case *ast.Text:

			if node.Text == "" {
				continue
			}
			_, err := io.WriteString(s.out, node.Text)
			if err != nil {
				return err
			}

		case *ast.Show:

			err := s.show(node, scope)
			if err != nil {
				return err
			}

		case *ast.If:

			if !evalCondition(node.Condition, scope) {
				continue
			}
			err := s.render(node.Then, scope)
			if err != nil {
				return err
			}

		case *ast.For:

			err := s.renderFor(node, scope)
			if err != nil {
				return err
			}

		case *ast.Include:

			if !node.Expanded {
				return fmt.Errorf("%s:%s: include %q is not expanded", s.path, node.Pos(), node.Name)
			}

		default:

			panic(fmt.Sprintf("arc: unexpected node %T", n))

		}

	}

	return nil
}
