// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arc

import (
	"github.com/pinealpha/arc/ast"
)

// evalCondition evaluates the condition of an if statement.
//
// An equality condition is true if its path resolves to a StringValue equal
// to its value. Any other condition is true if its path resolves to a truthy
// value.
func evalCondition(cond ast.Condition, scope *Scope) bool {
	v := scope.Resolve(cond.Path)
	if cond.Kind == ast.ConditionEqual {
		s, ok := v.(StringValue)
		return ok && string(s) == cond.Value
	}
	return v.Truth()
}
